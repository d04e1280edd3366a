package sandbox

// Job is one sandbox submission: a self-contained source program, the
// stdin it reads, and optionally the output the sandbox should diff
// against. One Job is built per test case and the whole set for a
// grading request is always submitted as a single batch.
type Job struct {
	LanguageID     int
	SourceCode     string
	Stdin          string
	ExpectedOutput *string
}

// wire form of a batch submit entry; payloads are base64 encoded
type jobPayload struct {
	LanguageID     int     `json:"language_id"`
	SourceCode     string  `json:"source_code"`
	Stdin          string  `json:"stdin"`
	ExpectedOutput *string `json:"expected_output,omitempty"`
}

// Status ids follow the Judge0 numbering: 1 in queue, 2 processing,
// 3 accepted, 4 wrong answer, 5 time limit exceeded, higher runtime
// and internal errors.
const (
	StatusInQueue           = 1
	StatusProcessing        = 2
	StatusAccepted          = 3
	StatusWrongAnswer       = 4
	StatusTimeLimitExceeded = 5
)

// JobResult is one job's decoded outcome.
type JobResult struct {
	Token             string
	StatusID          int
	StatusDescription string
	Stdout            string
	Stderr            string
	CompileOutput     string
	Message           string
	TimeSec           float64
	MemoryKb          float64
}

// InFlight reports whether the job had not finished executing when the
// result was fetched.
func (r JobResult) InFlight() bool {
	return r.StatusID == StatusInQueue || r.StatusID == StatusProcessing
}

// TimedOut reports a sandbox-enforced time limit.
func (r JobResult) TimedOut() bool {
	return r.StatusID == StatusTimeLimitExceeded
}

type jobResultPayload struct {
	Token  string `json:"token"`
	Status struct {
		ID          int    `json:"id"`
		Description string `json:"description"`
	} `json:"status"`
	Stdout        *string `json:"stdout"`
	Stderr        *string `json:"stderr"`
	CompileOutput *string `json:"compile_output"`
	Message       *string `json:"message"`
	Time          *string `json:"time"`
	Memory        *float64 `json:"memory"`
}

// LanguageInfo is one entry of the sandbox's language catalog.
type LanguageInfo struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// HealthInfo is the diagnostic view of the sandbox backend.
type HealthInfo struct {
	Reachable bool           `json:"reachable"`
	Languages []LanguageInfo `json:"languages,omitempty"`
	Error     string         `json:"error,omitempty"`
}
