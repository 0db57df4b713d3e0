package artifacts

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"intake-backend/internal/shared/metrics"
	"intake-backend/internal/shared/storage/object/local"
)

func newStore(t *testing.T) (*Store, string) {
	t.Helper()
	dir := t.TempDir()
	return New(local.New(dir)), dir
}

func TestPutReadRemove(t *testing.T) {
	ctx := context.Background()
	s, _ := newStore(t)

	a, err := s.Put(ctx, "req-1", "patient_Jane_Doe.pdf", []byte("one"))
	require.NoError(t, err)
	b, err := s.Put(ctx, "req-1", "patient_Jane_Doe.pdf", []byte("two"))
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
	assert.True(t, strings.HasPrefix(a, "summaries/"), a)
	assert.True(t, strings.HasSuffix(a, "_patient_Jane_Doe.pdf"), a)

	got, err := s.Read(ctx, a)
	require.NoError(t, err)
	assert.Equal(t, "one", string(got))

	require.NoError(t, s.Remove(ctx, a))
	_, err = s.Read(ctx, a)
	assert.Error(t, err)
	assert.NoError(t, s.Remove(ctx, a))

	got, err = s.Read(ctx, b)
	require.NoError(t, err)
	assert.Equal(t, "two", string(got))
}

func TestPutSanitizesName(t *testing.T) {
	s, _ := newStore(t)
	key, err := s.Put(context.Background(), "req-1", "patient_Zoë O'Neil.pdf", []byte("x"))
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(key, "_patient_Zo_O_Neil.pdf"), key)
}

func TestSweeperRemovesOldArtifacts(t *testing.T) {
	ctx := context.Background()
	s, dir := newStore(t)
	oldKey, err := s.Put(ctx, "req-old", "old.pdf", []byte("x"))
	require.NoError(t, err)
	freshKey, err := s.Put(ctx, "req-new", "new.pdf", []byte("y"))
	require.NoError(t, err)

	past := time.Now().Add(-2 * time.Hour)
	require.NoError(t, os.Chtimes(filepath.Join(dir, filepath.FromSlash(oldKey)), past, past))

	before := metrics.ArtifactsSwept.Value()
	sw := NewSweeper(s, time.Hour, time.Minute)
	assert.Equal(t, 1, sw.RunOnce(ctx))
	assert.Equal(t, before+1, metrics.ArtifactsSwept.Value())

	_, err = s.Read(ctx, oldKey)
	assert.Error(t, err)
	_, err = s.Read(ctx, freshKey)
	assert.NoError(t, err)
}

func TestSweeperStartStop(t *testing.T) {
	s, _ := newStore(t)
	sw := NewSweeper(s, time.Hour, time.Hour)
	require.NoError(t, sw.Start())
	sw.Stop()
}

func TestSweepMissingDir(t *testing.T) {
	s := New(local.New(filepath.Join(t.TempDir(), "missing")))
	n, err := s.Sweep(context.Background(), time.Now(), time.Minute)
	assert.NoError(t, err)
	assert.Zero(t, n)
}
