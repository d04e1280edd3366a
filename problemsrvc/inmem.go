package problemsrvc

import (
	"context"
	"sync"
)

// InMemProblemStore backs tests and the one-shot CLI, where grading
// runs against locally supplied problems.
type InMemProblemStore struct {
	mu       sync.RWMutex
	problems map[string]*Problem
}

func NewInMemProblemStore() *InMemProblemStore {
	return &InMemProblemStore{problems: make(map[string]*Problem)}
}

func (s *InMemProblemStore) Put(problem *Problem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.problems[problem.ID] = problem
}

func (s *InMemProblemStore) GetProblem(ctx context.Context, id string) (*Problem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if problem, ok := s.problems[id]; ok {
		return problem, nil
	}
	return nil, ErrProblemNotFound(id)
}
