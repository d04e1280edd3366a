package problemsrvc

// Problem is the grading pipeline's view of a stored problem: the
// canonical function signature plus its test cases. Authoring and
// presentation fields stay out of this service.
type Problem struct {
	ID            string
	Title         string
	FuncSignature string
	SmartCompare  bool
	TestCases     []TestCase
}

// TestCase carries the raw stored input representation: either a
// structured JSON object or a legacy free-text string. Normalization
// into ordered parameters happens downstream against the signature.
type TestCase struct {
	Input     any
	Expected  any
	IsExample bool
}
