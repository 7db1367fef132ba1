package store

import (
	"context"
	"sort"
	"sync"

	"github.com/studiowebux/restcommander/internal/types"
)

// Memory implements Store in memory, for tests and persistence-less runs
type Memory struct {
	mu          sync.RWMutex
	requests    map[string]types.Request
	initialized bool
}

// NewMemory creates an empty in-memory store
func NewMemory() *Memory {
	return &Memory{
		requests: make(map[string]types.Request),
	}
}

// Initialize marks the store ready
func (m *Memory) Initialize(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.initialized = true
	return nil
}

// List returns stored requests ordered by id
func (m *Memory) List(ctx context.Context) ([]types.Request, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if !m.initialized {
		return nil, ErrNotInitialized
	}

	requests := make([]types.Request, 0, len(m.requests))
	for _, req := range m.requests {
		requests = append(requests, req)
	}
	sort.Slice(requests, func(i, j int) bool {
		return requests[i].ID < requests[j].ID
	})
	return requests, nil
}

// Put stores a copy of the request, replacing any with the same id
func (m *Memory) Put(ctx context.Context, req types.Request) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return ErrNotInitialized
	}
	m.requests[req.ID] = req
	return nil
}
