package identity

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestGet_CreatesAndPersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "user_id")
	store := NewStore(path, zap.NewNop())

	id, err := store.Get()
	require.NoError(t, err)
	_, err = uuid.Parse(id)
	assert.NoError(t, err, "generated id should be a uuid")

	again, err := store.Get()
	require.NoError(t, err)
	assert.Equal(t, id, again)

	// A fresh store over the same file reads the same id back.
	other := NewStore(path, zap.NewNop())
	persisted, err := other.Get()
	require.NoError(t, err)
	assert.Equal(t, id, persisted)
}

func TestGet_ReadsExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "user_id")
	require.NoError(t, os.WriteFile(path, []byte("existing-id\n"), 0o600))

	store := NewStore(path, zap.NewNop())
	id, err := store.Get()
	require.NoError(t, err)
	assert.Equal(t, "existing-id", id)
}
