package gradesrvc

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/algoprep/grader/callplan"
	"github.com/algoprep/grader/compare"
	"github.com/algoprep/grader/langexec"
	"github.com/algoprep/grader/sandbox"
	"github.com/algoprep/grader/strategy"
	"github.com/algoprep/grader/testparam"
)

// Grade runs the full pipeline for one request:
// 1. validates the request and resolves the language executor;
// 2. resolves test cases and the canonical signature (stored problem
//    or inline test cases);
// 3. analyzes the code into a call plan and selects a strategy;
// 4. generates one program and one sandbox job per test case,
//    submitted together as a single batch;
// 5. waits, fetches and scores the results in test-case order.
// Analysis warnings (e.g. ambiguous function choice) are returned
// alongside the results for the caller to surface.
func (s *GradeService) Grade(ctx context.Context, req GradeRequest) ([]GradeResult, []string, error) {
	if strings.TrimSpace(req.Language) == "" {
		return nil, nil, ErrMissingLanguage()
	}
	if strings.TrimSpace(req.Code) == "" {
		return nil, nil, ErrMissingCode()
	}

	// resolve the executor before anything touches the sandbox;
	// unsupported languages never cause a sandbox call
	executor, err := langexec.Get(req.Language)
	if err != nil {
		return nil, nil, err
	}

	rawCases, signature, smart, err := s.resolveTestCases(ctx, req)
	if err != nil {
		return nil, nil, err
	}

	plan, err := callplan.Analyze(req.Code, signature, req.Language)
	if err != nil {
		return nil, nil, ErrAnalysisFailed(err)
	}

	strat := strategy.Select(req.ProblemID, req.Code, plan)
	s.logger.Info("resolved grading plan",
		"problem", req.ProblemID,
		"language", executor.Language(),
		"func", plan.FuncName,
		"call_kind", plan.CallKind.String(),
		"strategy", strat.Kind().String(),
		"cases", len(rawCases))

	submID, err := uuid.NewV7()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to generate submission id: %w", err)
	}

	subm := Submission{
		ID:         submID,
		Language:   executor.Language(),
		SourceCode: req.Code,
		ProblemID:  req.ProblemID,
		TestCases:  make([]TestCase, len(rawCases)),
	}
	for i, raw := range rawCases {
		subm.TestCases[i] = TestCase{
			Input:     testparam.Extract(raw.Input, plan.ParamNames, s.logger),
			Expected:  testparam.UnwrapEnvelope(raw.Expected),
			IsExample: raw.IsExample,
		}
	}

	program, err := s.buildProgram(executor, strat, plan, req.Code, subm.TestCases)
	if err != nil {
		return nil, plan.Warnings, err
	}

	jobs := make([]sandbox.Job, len(subm.TestCases))
	for i, tc := range subm.TestCases {
		stdin := strconv.Itoa(i)
		if !executor.UsesIndexProtocol() {
			stdin = rawStdin(tc.Input)
		}
		jobs[i] = sandbox.Job{
			LanguageID: executor.SandboxLanguageID(),
			SourceCode: program,
			Stdin:      stdin,
		}
	}

	tokens, err := s.sandbox.SubmitBatch(ctx, jobs)
	if err != nil {
		return nil, plan.Warnings, ErrSandboxFailure(err)
	}
	s.logger.Debug("batch submitted", "submission", subm.ID, "jobs", len(tokens))

	jobResults, err := s.sandbox.WaitAndFetch(ctx, tokens)
	if err != nil {
		return nil, plan.Warnings, ErrSandboxFailure(err)
	}
	if len(jobResults) != len(subm.TestCases) {
		return nil, plan.Warnings, ErrSandboxFailure(
			fmt.Errorf("got %d results for %d test cases", len(jobResults), len(subm.TestCases)))
	}

	mode := compare.Exact
	if smart {
		mode = compare.Smart
	}

	results := make([]GradeResult, len(subm.TestCases))
	for i, tc := range subm.TestCases {
		results[i] = scoreCase(tc, jobResults[i], mode)
	}
	return results, plan.Warnings, nil
}

// resolveTestCases returns the raw test cases, the canonical function
// signature and whether smart comparison applies.
func (s *GradeService) resolveTestCases(ctx context.Context, req GradeRequest) ([]RawTestCase, string, bool, error) {
	smart := strategy.IsSmartCompare(req.ProblemID)

	if len(req.TestCases) > 0 {
		signature := ""
		if req.ProblemID != "" && s.problems != nil {
			if problem, err := s.problems.GetProblem(ctx, req.ProblemID); err == nil {
				signature = problem.FuncSignature
				smart = smart || problem.SmartCompare
			} else {
				s.logger.Warn("could not resolve problem for inline test cases",
					"problem", req.ProblemID, "error", err)
			}
		}
		return req.TestCases, signature, smart, nil
	}

	if req.ProblemID == "" {
		return nil, "", false, ErrMissingTestSource()
	}
	if s.problems == nil {
		return nil, "", false, ErrMissingTestSource()
	}

	problem, err := s.problems.GetProblem(ctx, req.ProblemID)
	if err != nil {
		return nil, "", false, err
	}
	rawCases := make([]RawTestCase, len(problem.TestCases))
	for i, tc := range problem.TestCases {
		rawCases[i] = RawTestCase{Input: tc.Input, Expected: tc.Expected, IsExample: tc.IsExample}
	}
	if len(rawCases) == 0 {
		return nil, "", false, ErrMissingTestSource()
	}
	return rawCases, problem.FuncSignature, smart || problem.SmartCompare, nil
}

func (s *GradeService) buildProgram(
	executor langexec.Executor,
	strat strategy.Strategy,
	plan callplan.CallPlan,
	source string,
	cases []TestCase,
) (string, error) {
	prepared, err := strat.PrepareCode(source, executor.Language())
	if err != nil {
		return "", ErrCodegenFailed(err)
	}
	callBlock, err := strat.CallExpr(plan, executor.Language())
	if err != nil {
		return "", ErrCodegenFailed(err)
	}
	inputs := make([]testparam.Params, len(cases))
	for i, tc := range cases {
		inputs[i] = tc.Input
	}
	program, err := executor.BuildProgram(prepared, callBlock, inputs, plan)
	if err != nil {
		return "", ErrCodegenFailed(err)
	}
	return program, nil
}

// scoreCase turns one sandbox job result into a GradeResult.
func scoreCase(tc TestCase, jr sandbox.JobResult, mode compare.Mode) GradeResult {
	res := GradeResult{
		Input:     displayInput(tc.Input),
		Expected:  tc.Expected,
		Status:    jr.StatusDescription,
		TimeMs:    jr.TimeSec * 1000,
		MemoryKb:  jr.MemoryKb,
		Stderr:    strings.TrimSpace(jr.Stderr),
		IsExample: tc.IsExample,
	}

	if jr.InFlight() {
		res.Status = "Execution Still Pending"
		res.Hint = hintStillPending
		return res
	}

	stdout := strings.TrimSpace(jr.Stdout)
	if res.Stderr == "" && jr.CompileOutput != "" {
		res.Stderr = strings.TrimSpace(jr.CompileOutput)
	}

	switch {
	case jr.TimedOut():
		res.Hint = hintTimeLimit
	case stdout == "" && res.Stderr == "":
		res.Hint = hintNoOutput
	}

	if stdout != "" {
		var actual any
		if err := json.Unmarshal([]byte(lastLine(stdout)), &actual); err == nil {
			res.Actual = actual
			res.Passed = compare.Compare(actual, tc.Expected, mode)
		} else {
			// user printed something other than the result line
			res.Actual = stdout
		}
	}
	return res
}

// lastLine returns the final non-empty line; code that prints debug
// output before the result line still grades on the result line.
func lastLine(s string) string {
	lines := strings.Split(s, "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if line := strings.TrimSpace(lines[i]); line != "" {
			return line
		}
	}
	return s
}

// rawStdin renders input values joined by newlines for languages that
// do not follow the test-case-index protocol.
func rawStdin(params testparam.Params) string {
	lines := make([]string, len(params))
	for i, p := range params {
		lines[i] = compactJson(p.Value)
	}
	return strings.Join(lines, "\n")
}

func compactJson(v any) string {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(raw)
}
