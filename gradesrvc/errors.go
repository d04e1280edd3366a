package gradesrvc

import (
	"fmt"
	"net/http"

	"github.com/algoprep/grader/srvcerror"
)

const (
	ErrCodeMissingLanguage   = "missing_language"
	ErrCodeMissingCode       = "missing_code"
	ErrCodeMissingTestSource = "missing_test_source"
	ErrCodeAnalysisFailed    = "analysis_failed"
	ErrCodeCodegenFailed     = "codegen_failed"
	ErrCodeSandboxFailure    = "sandbox_failure"
)

func ErrMissingLanguage() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeMissingLanguage,
		"language is required",
	).SetHttpStatusCode(http.StatusBadRequest)
}

func ErrMissingCode() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeMissingCode,
		"code is required",
	).SetHttpStatusCode(http.StatusBadRequest)
}

func ErrMissingTestSource() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeMissingTestSource,
		"either testCases or problemId must be provided",
	).SetHttpStatusCode(http.StatusBadRequest)
}

func ErrAnalysisFailed(detail error) *srvcerror.Error {
	return srvcerror.New(
		ErrCodeAnalysisFailed,
		fmt.Sprintf("could not analyze submitted code: %v", detail),
	).SetHttpStatusCode(http.StatusUnprocessableEntity).SetDebug(detail)
}

func ErrCodegenFailed(detail error) *srvcerror.Error {
	return srvcerror.New(
		ErrCodeCodegenFailed,
		fmt.Sprintf("could not build a test program: %v", detail),
	).SetHttpStatusCode(http.StatusUnprocessableEntity).SetDebug(detail)
}

func ErrSandboxFailure(detail error) *srvcerror.Error {
	return srvcerror.New(
		ErrCodeSandboxFailure,
		"code execution backend is unavailable",
	).SetHttpStatusCode(http.StatusBadGateway).SetDebug(detail)
}
