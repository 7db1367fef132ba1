package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/studiowebux/restcommander/internal/types"
)

func TestMemory_Contract(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	_, err := m.List(ctx)
	assert.ErrorIs(t, err, ErrNotInitialized)

	require.NoError(t, m.Initialize(ctx))
	require.NoError(t, m.Put(ctx, types.NewRequest("b")))
	require.NoError(t, m.Put(ctx, types.NewRequest("a")))

	updated := types.NewRequest("b")
	updated.Title = "renamed"
	require.NoError(t, m.Put(ctx, updated))

	list, err := m.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "a", list[0].ID)
	assert.Equal(t, "renamed", list[1].Title)
}

func TestMemory_ImplementsStore(t *testing.T) {
	var _ Store = NewMemory()
	var _ Store = NewSQLite("unused.db")
}
