package object

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"intake-backend/internal/shared/util"
)

// ErrInvalidKey is returned for empty keys and keys that escape the store root.
var ErrInvalidKey = errors.New("invalid object key")

// Object describes one stored object as reported by List.
type Object struct {
	Key     string
	Size    int64
	ModTime time.Time
}

// ObjectStore keeps submission artifacts and snapshots by key.
type ObjectStore interface {
	// Put writes data at key, replacing any previous object.
	Put(ctx context.Context, key, contentType string, data []byte) error
	Get(ctx context.Context, key string) ([]byte, error)
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// List returns every object whose key starts with prefix.
	List(ctx context.Context, prefix string) ([]Object, error)
}

// CleanKey normalizes key to a slash-separated relative path.
func CleanKey(key string) (string, error) {
	clean := path.Clean("/" + strings.TrimSpace(key))
	clean = strings.TrimPrefix(clean, "/")
	if clean == "" || clean == "." || strings.Contains(key, "..") {
		return "", ErrInvalidKey
	}
	return clean, nil
}

// UniqueKey returns prefix/<owner hash>/<random>_<name>. Two calls with the
// same arguments never return the same key.
func UniqueKey(prefix, owner, name string) (string, error) {
	safe, err := util.SanitizeFileName(name)
	if err != nil {
		return "", fmt.Errorf("object key: %w", err)
	}
	return path.Join(prefix, util.HashKey(owner)[:16], randomID()+"_"+safe), nil
}

// DeleteOlderThan removes objects under prefix last modified before cutoff.
// It keeps going after individual delete failures and reports the first one.
func DeleteOlderThan(ctx context.Context, store ObjectStore, prefix string, cutoff time.Time) (int, error) {
	objects, err := store.List(ctx, prefix)
	if err != nil {
		return 0, err
	}
	removed := 0
	var firstErr error
	for _, obj := range objects {
		if err := ctx.Err(); err != nil {
			return removed, err
		}
		if !obj.ModTime.Before(cutoff) {
			continue
		}
		if err := store.Delete(ctx, obj.Key); err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		removed++
	}
	return removed, firstErr
}

func randomID() string {
	var b [12]byte
	if _, err := rand.Read(b[:]); err != nil {
		return fmt.Sprintf("%d", time.Now().UnixNano())
	}
	return hex.EncodeToString(b[:])
}
