package shipments

import (
	"context"
	"sync"
)

// MemoryRepo is an in-memory NotificationRepo.
type MemoryRepo struct {
	mu   sync.RWMutex
	rows []Notification
	sent map[string]bool
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{sent: make(map[string]bool)}
}

func (r *MemoryRepo) AlreadySent(ctx context.Context, trackingNumber string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sent[trackingNumber], nil
}

func (r *MemoryRepo) Record(ctx context.Context, n Notification) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows = append(r.rows, n)
	if n.EmailStatus == EmailSent {
		r.sent[n.TrackingNumber] = true
	}
	return nil
}

// All returns recorded notifications in insertion order.
func (r *MemoryRepo) All() []Notification {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Notification, len(r.rows))
	copy(out, r.rows)
	return out
}
