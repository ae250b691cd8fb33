package services

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/isdelr/todo-sync-be/internal/database"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *database.SQLiteStore {
	t.Helper()
	store, err := database.NewSQLiteStore(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close(context.Background()) })
	return store
}

func requireKind(t *testing.T, want Kind, err error) {
	t.Helper()
	require.Error(t, err)
	require.Equal(t, want, KindOf(err), "unexpected error: %v", err)
}
