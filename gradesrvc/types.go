package gradesrvc

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/algoprep/grader/testparam"
)

// GradeRequest is the inbound grading request from the application
// layer. TestCases may be omitted when ProblemID identifies a stored
// problem whose test cases and canonical signature are fetched.
type GradeRequest struct {
	Language  string        `json:"language"`
	Code      string        `json:"code"`
	ProblemID string        `json:"problemId,omitempty"`
	TestCases []RawTestCase `json:"testCases,omitempty"`
}

// RawTestCase mirrors the stored representation: input is either a
// structured JSON object or a legacy free-text string.
type RawTestCase struct {
	Input     any  `json:"input"`
	Expected  any  `json:"expected"`
	IsExample bool `json:"isExample,omitempty"`
}

// Submission is the immutable unit of work for one grading request,
// built once the request has been validated and its test cases
// normalized.
type Submission struct {
	ID         uuid.UUID
	Language   string
	SourceCode string
	ProblemID  string
	TestCases  []TestCase
}

// TestCase is a normalized test case: ordered parameters matching the
// resolved call plan plus the expected value.
type TestCase struct {
	Input     testparam.Params
	Expected  any
	IsExample bool
}

// GradeResult is the terminal outcome for one test case. Results are
// returned in the same order as the submission's test cases.
type GradeResult struct {
	Input     string  `json:"input"`
	Expected  any     `json:"expected"`
	Actual    any     `json:"actual"`
	Passed    bool    `json:"passed"`
	Status    string  `json:"status"`
	TimeMs    float64 `json:"time_ms"`
	MemoryKb  float64 `json:"memory_kb"`
	Stderr    string  `json:"stderr,omitempty"`
	Hint      string  `json:"hint,omitempty"`
	IsExample bool    `json:"is_example,omitempty"`
}

// displayInput renders the ordered parameters for result payloads,
// e.g. `nums = [2,7,11,15], target = 9`.
func displayInput(params testparam.Params) string {
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = fmt.Sprintf("%s = %s", p.Name, compactJson(p.Value))
	}
	return strings.Join(parts, ", ")
}
