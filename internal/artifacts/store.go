package artifacts

import (
	"context"
	"fmt"
	"time"

	"intake-backend/internal/shared/storage/object"
)

const prefix = "summaries"

// Store holds short-lived files produced while a request is in flight.
type Store struct {
	objects object.ObjectStore
}

func New(objects object.ObjectStore) *Store {
	return &Store{objects: objects}
}

// Put writes data under a unique key. Concurrent puts with the same name never collide.
func (s *Store) Put(ctx context.Context, owner, name string, data []byte) (string, error) {
	key, err := object.UniqueKey(prefix, owner, name)
	if err != nil {
		return "", fmt.Errorf("artifact put %s: %w", name, err)
	}
	if err := s.objects.Put(ctx, key, "application/pdf", data); err != nil {
		return "", fmt.Errorf("artifact put %s: %w", name, err)
	}
	return key, nil
}

func (s *Store) Read(ctx context.Context, key string) ([]byte, error) {
	data, err := s.objects.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("artifact read: %w", err)
	}
	return data, nil
}

// Remove deletes key. Removing a missing key is not an error.
func (s *Store) Remove(ctx context.Context, key string) error {
	return s.objects.Delete(ctx, key)
}

// Sweep removes artifacts older than maxAge.
func (s *Store) Sweep(ctx context.Context, now time.Time, maxAge time.Duration) (int, error) {
	return object.DeleteOlderThan(ctx, s.objects, prefix+"/", now.Add(-maxAge))
}
