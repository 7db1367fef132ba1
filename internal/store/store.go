package store

import (
	"context"
	"errors"

	"github.com/studiowebux/restcommander/internal/types"
)

// ErrNotInitialized is returned when a store is used before Initialize
var ErrNotInitialized = errors.New("store not initialized")

// ErrNotFound is returned by Get for an unknown id
var ErrNotFound = errors.New("request not found")

// Store is the durable single-table home of saved requests, keyed by id.
// Each Put is a single-row upsert; there is no delete and no multi-row
// transaction.
type Store interface {
	// Initialize opens the requests table, creating it if absent.
	// Calling it again is a no-op.
	Initialize(ctx context.Context) error
	// List returns every stored request.
	List(ctx context.Context) ([]types.Request, error)
	// Put inserts the request or fully replaces the row with the same id.
	Put(ctx context.Context, req types.Request) error
}
