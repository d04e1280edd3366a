package problemsrvc

import (
	"fmt"
	"net/http"

	"github.com/algoprep/grader/srvcerror"
)

const ErrCodeProblemNotFound = "problem_not_found"

func ErrProblemNotFound(problemID string) *srvcerror.Error {
	return srvcerror.New(
		ErrCodeProblemNotFound,
		fmt.Sprintf("problem %q was not found", problemID),
	).SetHttpStatusCode(http.StatusNotFound)
}
