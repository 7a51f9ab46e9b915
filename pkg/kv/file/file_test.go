package file

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_GetSet(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	s, err := New(dir)
	require.NoError(t, err)

	_, found, err := s.Get(ctx, "users")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, s.Set(ctx, "users", `[{"username":"sakura"}]`))

	value, found, err := s.Get(ctx, "users")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `[{"username":"sakura"}]`, value)

	raw, err := os.ReadFile(filepath.Join(dir, "users.json"))
	require.NoError(t, err)
	assert.Equal(t, `[{"username":"sakura"}]`, string(raw))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")
}

func TestStore_ExternalEdit(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	s, err := New(dir)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "users.json"), []byte("not json"), 0o600))

	value, found, err := s.Get(ctx, "users")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "not json", value)
}

func TestStore_InvalidKey(t *testing.T) {
	s, err := New(t.TempDir())
	require.NoError(t, err)

	for _, key := range []string{"", "../users", "a/b", "users.json"} {
		_, _, err := s.Get(context.Background(), key)
		assert.True(t, errors.Is(err, ErrInvalidKey), "key %q", key)
		assert.True(t, errors.Is(s.Set(context.Background(), key, "x"), ErrInvalidKey), "key %q", key)
	}
}

func TestNew(t *testing.T) {
	_, err := New("")
	assert.Error(t, err)

	nested := filepath.Join(t.TempDir(), "a", "b")
	s, err := New(nested)
	require.NoError(t, err)
	assert.NoError(t, s.Ping(context.Background()))
	assert.NoError(t, s.Close(context.Background()))
}
