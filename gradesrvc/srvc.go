package gradesrvc

import (
	"context"
	"log/slog"

	"github.com/algoprep/grader/problemsrvc"
	"github.com/algoprep/grader/sandbox"
)

type sandboxRunner interface {
	SubmitBatch(ctx context.Context, jobs []sandbox.Job) ([]string, error)
	WaitAndFetch(ctx context.Context, tokens []string) ([]sandbox.JobResult, error)
}

type problemStore interface {
	GetProblem(ctx context.Context, id string) (*problemsrvc.Problem, error)
}

// GradeService runs the grading pipeline. It holds no mutable state
// across requests; every submission's derived artifacts are
// request-scoped and discarded with the response.
type GradeService struct {
	logger   *slog.Logger
	sandbox  sandboxRunner
	problems problemStore
}

func NewGradeService(sandboxClient sandboxRunner, problems problemStore) *GradeService {
	return &GradeService{
		logger:   slog.Default().With("module", "grade"),
		sandbox:  sandboxClient,
		problems: problems,
	}
}
