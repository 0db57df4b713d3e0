package local

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"intake-backend/internal/shared/storage/object"
)

func TestPutGetDelete(t *testing.T) {
	ctx := context.Background()
	store := New(t.TempDir())

	require.NoError(t, store.Put(ctx, "summaries/a/patient_Jane_Doe.pdf", "application/pdf", []byte("%PDF-1.3 body")))

	data, err := store.Get(ctx, "summaries/a/patient_Jane_Doe.pdf")
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.3 body", string(data))

	info, err := os.Stat(filepath.Join(store.BaseDir(), "summaries", "a", "patient_Jane_Doe.pdf"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	require.NoError(t, store.Delete(ctx, "summaries/a/patient_Jane_Doe.pdf"))
	_, err = store.Get(ctx, "summaries/a/patient_Jane_Doe.pdf")
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.NoError(t, store.Delete(ctx, "summaries/a/patient_Jane_Doe.pdf"), "deleting twice is not an error")
}

func TestPutOverwrites(t *testing.T) {
	ctx := context.Background()
	store := New(t.TempDir())

	require.NoError(t, store.Put(ctx, "submissions/last_submission.json", "application/json", []byte(`{"a":1}`)))
	require.NoError(t, store.Put(ctx, "submissions/last_submission.json", "application/json", []byte(`{"b":2}`)))

	data, err := os.ReadFile(filepath.Join(store.BaseDir(), "submissions", "last_submission.json"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"b":2}`, string(data))

	objects, err := store.List(ctx, "submissions/")
	require.NoError(t, err)
	require.Len(t, objects, 1, "temp files must not survive a put")
}

func TestInvalidKeysRejected(t *testing.T) {
	ctx := context.Background()
	store := New(t.TempDir())

	for _, key := range []string{"../escape", "/abs/path", ".", ""} {
		_, err := store.Get(ctx, key)
		assert.ErrorIs(t, err, object.ErrInvalidKey, key)
		assert.ErrorIs(t, store.Delete(ctx, key), object.ErrInvalidKey, key)
	}
}

func TestListFiltersByPrefix(t *testing.T) {
	ctx := context.Background()
	store := New(t.TempDir())
	require.NoError(t, store.Put(ctx, "summaries/x/one.pdf", "application/pdf", []byte("1")))
	require.NoError(t, store.Put(ctx, "submissions/last_submission.json", "application/json", []byte("{}")))

	objects, err := store.List(ctx, "summaries/")
	require.NoError(t, err)
	require.Len(t, objects, 1)
	assert.Equal(t, "summaries/x/one.pdf", objects[0].Key)
	assert.Equal(t, int64(1), objects[0].Size)
}

func TestDeleteOlderThan(t *testing.T) {
	ctx := context.Background()
	store := New(t.TempDir())

	oldKey, err := object.UniqueKey("summaries", "req-1", "old.pdf")
	require.NoError(t, err)
	newKey, err := object.UniqueKey("summaries", "req-1", "new.pdf")
	require.NoError(t, err)
	require.NoError(t, store.Put(ctx, oldKey, "application/pdf", []byte("old")))
	require.NoError(t, store.Put(ctx, newKey, "application/pdf", []byte("new")))

	past := time.Now().Add(-2 * time.Hour)
	require.NoError(t, os.Chtimes(filepath.Join(store.BaseDir(), filepath.FromSlash(oldKey)), past, past))

	removed, err := object.DeleteOlderThan(ctx, store, "summaries/", time.Now().Add(-time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	_, err = store.Get(ctx, oldKey)
	assert.Error(t, err)
	_, err = store.Get(ctx, newKey)
	assert.NoError(t, err)
}

func TestListMissingDir(t *testing.T) {
	store := New(filepath.Join(t.TempDir(), "never-created"))
	objects, err := store.List(context.Background(), "")
	assert.NoError(t, err)
	assert.Empty(t, objects)
}
