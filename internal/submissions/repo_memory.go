package submissions

import (
	"context"
	"sync"
)

// MemoryRepo keeps audit rows in process memory.
type MemoryRepo struct {
	mu   sync.RWMutex
	rows []Submission
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{}
}

func (r *MemoryRepo) Create(ctx context.Context, sub Submission) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows = append(r.rows, sub)
	return nil
}

// All returns rows in insertion order.
func (r *MemoryRepo) All() []Submission {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Submission, len(r.rows))
	copy(out, r.rows)
	return out
}
