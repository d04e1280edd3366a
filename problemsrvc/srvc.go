package problemsrvc

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/puzpuzpuz/xsync/v3"
	"golang.org/x/sync/errgroup"
)

type problemRows interface {
	Get(ctx context.Context, id string) (*ProblemRow, error)
}

type blobStore interface {
	Download(ctx context.Context, key string) ([]byte, error)
}

// ProblemService resolves problems for grading requests. Problems are
// immutable per deploy, so resolved problems are kept in a
// read-through cache shared across requests.
type ProblemService struct {
	logger *slog.Logger

	rows  problemRows
	blobs blobStore
	cache *xsync.MapOf[string, *Problem]
}

func NewProblemService(rows *DynamoDbProblemTable, blobs *S3BlobStore) *ProblemService {
	s := &ProblemService{
		logger: slog.Default().With("module", "problems"),
		rows:   rows,
		cache:  xsync.NewMapOf[string, *Problem](),
	}
	if blobs != nil {
		s.blobs = blobs
	}
	return s
}

// GetProblem returns the problem with its test cases fully resolved,
// downloading any S3-backed payloads in parallel.
func (s *ProblemService) GetProblem(ctx context.Context, id string) (*Problem, error) {
	if cached, ok := s.cache.Load(id); ok {
		return cached, nil
	}

	row, err := s.rows.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch problem %q: %w", id, err)
	}
	if row == nil {
		return nil, ErrProblemNotFound(id)
	}

	problem := &Problem{
		ID:            row.ID,
		Title:         row.Title,
		FuncSignature: row.FuncSignature,
		SmartCompare:  row.SmartCompare,
		TestCases:     make([]TestCase, len(row.TestCases)),
	}

	g, gctx := errgroup.WithContext(ctx)
	for i, tcRow := range row.TestCases {
		g.Go(func() error {
			tc, err := s.resolveTestCase(gctx, tcRow)
			if err != nil {
				return fmt.Errorf("test case %d of problem %q: %w", i, id, err)
			}
			problem.TestCases[i] = tc
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	s.cache.Store(id, problem)
	return problem, nil
}

func (s *ProblemService) resolveTestCase(ctx context.Context, row TestCaseRow) (TestCase, error) {
	if row.BlobS3Key != nil {
		if s.blobs == nil {
			return TestCase{}, fmt.Errorf("test case references S3 key %q but no blob store is configured", *row.BlobS3Key)
		}
		content, err := s.blobs.Download(ctx, *row.BlobS3Key)
		if err != nil {
			return TestCase{}, err
		}
		var blob struct {
			Input    any `json:"input"`
			Expected any `json:"expected"`
		}
		if err := json.Unmarshal(content, &blob); err != nil {
			return TestCase{}, fmt.Errorf("malformed blob %q: %w", *row.BlobS3Key, err)
		}
		return TestCase{Input: blob.Input, Expected: blob.Expected, IsExample: row.IsExample}, nil
	}

	tc := TestCase{IsExample: row.IsExample}
	if err := json.Unmarshal([]byte(row.InputJson), &tc.Input); err != nil {
		// legacy rows store free-text input, not JSON; pass it through
		// for downstream legacy parsing
		tc.Input = row.InputJson
	}
	if row.ExpectedJson != "" {
		if err := json.Unmarshal([]byte(row.ExpectedJson), &tc.Expected); err != nil {
			tc.Expected = row.ExpectedJson
		}
	}
	return tc, nil
}
