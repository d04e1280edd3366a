package gradesrvc

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/algoprep/grader/problemsrvc"
	"github.com/algoprep/grader/sandbox"
	"github.com/algoprep/grader/srvcerror"
	"github.com/algoprep/grader/testparam"
)

// stubSandbox records submissions and serves canned results, one per
// submitted job, in order.
type stubSandbox struct {
	submitCalls int
	fetchCalls  int
	jobs        []sandbox.Job
	results     []sandbox.JobResult
	submitErr   error
	fetchErr    error
}

func (s *stubSandbox) SubmitBatch(ctx context.Context, jobs []sandbox.Job) ([]string, error) {
	s.submitCalls++
	s.jobs = jobs
	if s.submitErr != nil {
		return nil, s.submitErr
	}
	tokens := make([]string, len(jobs))
	for i := range jobs {
		tokens[i] = "tok-" + string(rune('0'+i))
	}
	return tokens, nil
}

func (s *stubSandbox) WaitAndFetch(ctx context.Context, tokens []string) ([]sandbox.JobResult, error) {
	s.fetchCalls++
	if s.fetchErr != nil {
		return nil, s.fetchErr
	}
	return s.results, nil
}

func accepted(stdout string) sandbox.JobResult {
	return sandbox.JobResult{
		StatusID:          sandbox.StatusAccepted,
		StatusDescription: "Accepted",
		Stdout:            stdout,
		TimeSec:           0.02,
		MemoryKb:          3400,
	}
}

func newTestService(sb *stubSandbox, problems *problemsrvc.InMemProblemStore) *GradeService {
	if problems == nil {
		return NewGradeService(sb, nil)
	}
	return NewGradeService(sb, problems)
}

const pyTwoSum = `class Solution:
    def twoSum(self, nums, target):
        seen = {}
        for i, n in enumerate(nums):
            if target - n in seen:
                return [seen[target - n], i]
            seen[n] = i
`

func twoSumRequest() GradeRequest {
	return GradeRequest{
		Language:  "python3",
		Code:      pyTwoSum,
		ProblemID: "two-sum",
		TestCases: []RawTestCase{
			{
				Input:     map[string]any{"nums": []any{2.0, 7.0, 11.0, 15.0}, "target": 9.0},
				Expected:  []any{0.0, 1.0},
				IsExample: true,
			},
			{
				Input:    map[string]any{"nums": []any{3.0, 2.0, 4.0}, "target": 6.0},
				Expected: []any{1.0, 2.0},
			},
		},
	}
}

func TestGradeTwoSumEndToEnd(t *testing.T) {
	sb := &stubSandbox{results: []sandbox.JobResult{
		accepted("[0,1]"),
		accepted("[1,0]"),
	}}
	svc := newTestService(sb, nil)

	results, warnings, err := svc.Grade(context.Background(), twoSumRequest())
	require.NoError(t, err)
	assert.Empty(t, warnings)
	require.Len(t, results, 2)

	assert.Equal(t, "nums = [2,7,11,15], target = 9", results[0].Input)
	assert.Equal(t, []any{0.0, 1.0}, results[0].Actual)
	assert.True(t, results[0].Passed)
	assert.True(t, results[0].IsExample)
	assert.InDelta(t, 20.0, results[0].TimeMs, 1e-9)

	// wrong order fails under exact comparison, in test-case order
	assert.Equal(t, []any{1.0, 0.0}, results[1].Actual)
	assert.False(t, results[1].Passed)
	assert.False(t, results[1].IsExample)
}

func TestGradeSubmitsOneBatchWithIndexStdin(t *testing.T) {
	sb := &stubSandbox{results: []sandbox.JobResult{
		accepted("[0,1]"),
		accepted("[1,2]"),
	}}
	svc := newTestService(sb, nil)

	_, _, err := svc.Grade(context.Background(), twoSumRequest())
	require.NoError(t, err)

	assert.Equal(t, 1, sb.submitCalls)
	require.Len(t, sb.jobs, 2)
	assert.Equal(t, 71, sb.jobs[0].LanguageID)
	assert.Equal(t, "0", sb.jobs[0].Stdin)
	assert.Equal(t, "1", sb.jobs[1].Stdin)
	// every job carries the same generated program
	assert.Equal(t, sb.jobs[0].SourceCode, sb.jobs[1].SourceCode)
	assert.Contains(t, sb.jobs[0].SourceCode, "_TESTS")
}

func TestGradeUnsupportedLanguageNeverReachesSandbox(t *testing.T) {
	sb := &stubSandbox{}
	svc := newTestService(sb, nil)

	req := twoSumRequest()
	req.Language = "cobol"
	_, _, err := svc.Grade(context.Background(), req)

	require.Error(t, err)
	srvcErr := &srvcerror.Error{}
	require.ErrorAs(t, err, &srvcErr)
	for _, name := range []string{"java", "javascript", "python3"} {
		assert.Contains(t, srvcErr.Error(), name)
	}
	assert.Zero(t, sb.submitCalls)
	assert.Zero(t, sb.fetchCalls)
}

func TestGradeRequestValidation(t *testing.T) {
	svc := newTestService(&stubSandbox{}, nil)

	req := twoSumRequest()
	req.Language = " "
	_, _, err := svc.Grade(context.Background(), req)
	assertErrCode(t, err, ErrCodeMissingLanguage)

	req = twoSumRequest()
	req.Code = ""
	_, _, err = svc.Grade(context.Background(), req)
	assertErrCode(t, err, ErrCodeMissingCode)

	req = twoSumRequest()
	req.TestCases = nil
	req.ProblemID = ""
	_, _, err = svc.Grade(context.Background(), req)
	assertErrCode(t, err, ErrCodeMissingTestSource)
}

func TestGradeAnalysisFailure(t *testing.T) {
	sb := &stubSandbox{}
	svc := newTestService(sb, nil)

	req := twoSumRequest()
	req.Code = "x = 41 + 1"
	_, _, err := svc.Grade(context.Background(), req)

	assertErrCode(t, err, ErrCodeAnalysisFailed)
	assert.Zero(t, sb.submitCalls)
}

func TestGradeStoredProblemResolvesSignatureAndCases(t *testing.T) {
	problems := problemsrvc.NewInMemProblemStore()
	problems.Put(&problemsrvc.Problem{
		ID:            "two-sum",
		FuncSignature: "twoSum(nums, target)",
		TestCases: []problemsrvc.TestCase{
			// legacy free-text positional input, resolved against the
			// stored signature
			{Input: "[2,7,11,15]\n9", Expected: []any{0.0, 1.0}, IsExample: true},
		},
	})
	sb := &stubSandbox{results: []sandbox.JobResult{accepted("[0,1]")}}
	svc := newTestService(sb, problems)

	req := GradeRequest{Language: "python3", Code: pyTwoSum, ProblemID: "two-sum"}
	results, _, err := svc.Grade(context.Background(), req)
	require.NoError(t, err)

	require.Len(t, results, 1)
	assert.Equal(t, "nums = [2,7,11,15], target = 9", results[0].Input)
	assert.True(t, results[0].Passed)
}

func TestGradeUnknownProblemWithoutInlineCases(t *testing.T) {
	svc := newTestService(&stubSandbox{}, problemsrvc.NewInMemProblemStore())

	req := GradeRequest{Language: "python3", Code: pyTwoSum, ProblemID: "no-such-problem"}
	_, _, err := svc.Grade(context.Background(), req)
	assert.Error(t, err)
}

func TestGradeSmartCompareFromStoredProblem(t *testing.T) {
	problems := problemsrvc.NewInMemProblemStore()
	problems.Put(&problemsrvc.Problem{
		ID:            "custom-grouping",
		FuncSignature: "solve(nums)",
		SmartCompare:  true,
		TestCases: []problemsrvc.TestCase{
			{
				Input:    map[string]any{"nums": []any{1.0, 2.0, 3.0}},
				Expected: []any{[]any{2.0, 1.0}, []any{3.0}},
			},
		},
	})
	sb := &stubSandbox{results: []sandbox.JobResult{accepted("[[3],[1,2]]")}}
	svc := newTestService(sb, problems)

	req := GradeRequest{
		Language:  "python3",
		Code:      "def solve(nums):\n    return []\n",
		ProblemID: "custom-grouping",
	}
	results, _, err := svc.Grade(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.True(t, results[0].Passed)
}

func TestGradePendingResultKeepsDistinctStatus(t *testing.T) {
	sb := &stubSandbox{results: []sandbox.JobResult{
		accepted("[0,1]"),
		{StatusID: sandbox.StatusProcessing, StatusDescription: "Processing"},
	}}
	svc := newTestService(sb, nil)

	results, _, err := svc.Grade(context.Background(), twoSumRequest())
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.True(t, results[0].Passed)
	assert.Equal(t, "Execution Still Pending", results[1].Status)
	assert.Equal(t, hintStillPending, results[1].Hint)
	assert.False(t, results[1].Passed)
}

func TestGradeTimeLimitHint(t *testing.T) {
	sb := &stubSandbox{results: []sandbox.JobResult{
		{StatusID: sandbox.StatusTimeLimitExceeded, StatusDescription: "Time Limit Exceeded"},
		accepted("[1,2]"),
	}}
	svc := newTestService(sb, nil)

	results, _, err := svc.Grade(context.Background(), twoSumRequest())
	require.NoError(t, err)
	assert.Equal(t, hintTimeLimit, results[0].Hint)
	assert.False(t, results[0].Passed)
}

func TestGradeNoOutputHint(t *testing.T) {
	sb := &stubSandbox{results: []sandbox.JobResult{
		{StatusID: sandbox.StatusWrongAnswer, StatusDescription: "Wrong Answer"},
		accepted("[1,2]"),
	}}
	svc := newTestService(sb, nil)

	results, _, err := svc.Grade(context.Background(), twoSumRequest())
	require.NoError(t, err)
	assert.Equal(t, hintNoOutput, results[0].Hint)
}

func TestGradeDebugOutputBeforeResultLine(t *testing.T) {
	sb := &stubSandbox{results: []sandbox.JobResult{
		accepted("checking pair 2 7\nchecking pair 7 2\n[0,1]"),
		accepted("[1,2]"),
	}}
	svc := newTestService(sb, nil)

	results, _, err := svc.Grade(context.Background(), twoSumRequest())
	require.NoError(t, err)
	assert.True(t, results[0].Passed)
	assert.Equal(t, []any{0.0, 1.0}, results[0].Actual)
}

func TestGradeSandboxSubmitFailure(t *testing.T) {
	sb := &stubSandbox{submitErr: errors.New("connection refused")}
	svc := newTestService(sb, nil)

	_, _, err := svc.Grade(context.Background(), twoSumRequest())
	assertErrCode(t, err, ErrCodeSandboxFailure)
}

func TestGradeResultCountMismatch(t *testing.T) {
	sb := &stubSandbox{results: []sandbox.JobResult{accepted("[0,1]")}}
	svc := newTestService(sb, nil)

	_, _, err := svc.Grade(context.Background(), twoSumRequest())
	assertErrCode(t, err, ErrCodeSandboxFailure)
}

func TestGradeAmbiguousCodeReturnsWarning(t *testing.T) {
	sb := &stubSandbox{results: []sandbox.JobResult{accepted("1"), accepted("2")}}
	svc := newTestService(sb, nil)

	req := twoSumRequest()
	req.Code = "def helperOne(nums, target):\n    return 1\n\ndef helperTwo(nums, target):\n    return 2\n"
	_, warnings, err := svc.Grade(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "helperOne")
}

func TestRawStdinJoinsValuesLinewise(t *testing.T) {
	params := testparam.Params{
		{Name: "nums", Value: []any{2.0, 7.0}},
		{Name: "target", Value: 9.0},
		{Name: "word", Value: "abc"},
	}
	assert.Equal(t, "[2,7]\n9\n\"abc\"", rawStdin(params))
}

func assertErrCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	srvcErr := &srvcerror.Error{}
	require.ErrorAs(t, err, &srvcErr)
	assert.Equal(t, code, srvcErr.ErrorCode())
}
