package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/studiowebux/restcommander/internal/store"
	"github.com/studiowebux/restcommander/internal/types"
)

// recordingStore wraps store.Memory, counting calls and injecting failures
type recordingStore struct {
	*store.Memory

	mu       sync.Mutex
	puts     []types.Request
	lists    int
	failList bool
	failPut  bool
	failInit bool
}

func newRecordingStore(t *testing.T) *recordingStore {
	t.Helper()
	return &recordingStore{Memory: store.NewMemory()}
}

func (s *recordingStore) Initialize(ctx context.Context) error {
	if s.failInit {
		return errors.New("disk on fire")
	}
	return s.Memory.Initialize(ctx)
}

func (s *recordingStore) List(ctx context.Context) ([]types.Request, error) {
	s.mu.Lock()
	s.lists++
	fail := s.failList
	s.mu.Unlock()
	if fail {
		return nil, errors.New("list unavailable")
	}
	return s.Memory.List(ctx)
}

func (s *recordingStore) Put(ctx context.Context, req types.Request) error {
	s.mu.Lock()
	s.puts = append(s.puts, req)
	fail := s.failPut
	s.mu.Unlock()
	if fail {
		return errors.New("put unavailable")
	}
	return s.Memory.Put(ctx, req)
}

func (s *recordingStore) putCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.puts)
}

func (s *recordingStore) stored(t *testing.T) map[string]types.Request {
	t.Helper()
	list, err := s.Memory.List(context.Background())
	require.NoError(t, err)
	byID := make(map[string]types.Request, len(list))
	for _, req := range list {
		byID[req.ID] = req
	}
	return byID
}

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("%04d", n)
	}
}

func newOpenController(t *testing.T, opts ...Option) (*Controller, *recordingStore) {
	t.Helper()
	st := newRecordingStore(t)
	opts = append([]Option{WithIDGenerator(sequentialIDs())}, opts...)
	c := NewController(st, opts...)
	c.Open(context.Background())
	require.True(t, c.Persistent())
	return c, st
}

func TestNewController_Defaults(t *testing.T) {
	c := NewController(nil)

	assert.Equal(t, -1, c.CurrentIndex())
	assert.Equal(t, 0, c.Len())
	assert.Equal(t, "{}", c.BodyText())
	assert.Equal(t, "{}", c.HeadersText())
	assert.False(t, c.Response().HasResult())

	_, ok := c.Current()
	assert.False(t, ok)
}

func TestNewRequest_AppendsSelectsAndPersists(t *testing.T) {
	c, st := newOpenController(t)
	ctx := context.Background()

	const n = 5
	seen := make(map[string]bool)
	for i := 1; i <= n; i++ {
		req, err := c.NewRequest(ctx)
		require.NoError(t, err)

		assert.Equal(t, i, c.Len())
		assert.Equal(t, i-1, c.CurrentIndex())
		assert.False(t, seen[req.ID], "duplicate id %s", req.ID)
		seen[req.ID] = true

		assert.Equal(t, types.MethodGet, req.Type)
		assert.Equal(t, "", req.URL)
		assert.Equal(t, "New Request", req.Title)
	}

	assert.Equal(t, n, st.putCount())
	assert.Len(t, st.stored(t), n)
	assert.Len(t, c.States(), n)
	for _, state := range c.States() {
		assert.False(t, state.IsEdit)
	}
}

func TestNewID_UniqueAndSortable(t *testing.T) {
	prev := ""
	for i := 0; i < 200; i++ {
		id := NewID()
		assert.Greater(t, id, prev)
		prev = id
	}
}

func TestClick_InteractionCounts(t *testing.T) {
	c, _ := newOpenController(t)
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		_, err := c.NewRequest(ctx)
		require.NoError(t, err)
	}

	require.NoError(t, c.Click(0, 1))
	assert.Equal(t, 0, c.CurrentIndex())
	assert.False(t, c.IsEditing(0))

	require.NoError(t, c.Click(1, 2))
	assert.True(t, c.IsEditing(1))
	assert.Equal(t, 0, c.CurrentIndex(), "double click does not move selection on its own")

	require.NoError(t, c.Click(2, 3))
	require.NoError(t, c.Click(2, 0))
	assert.Equal(t, 0, c.CurrentIndex())
	assert.False(t, c.IsEditing(2))

	require.NoError(t, c.Click(2, 1))
	assert.Equal(t, 2, c.CurrentIndex())
	assert.True(t, c.IsEditing(1), "select does not affect edit state")

	assert.ErrorIs(t, c.Click(9, 1), ErrIndexOutOfRange)
	assert.ErrorIs(t, c.Click(-1, 2), ErrIndexOutOfRange)
}

func TestTitleEdit_OnlyCommitPersists(t *testing.T) {
	c, st := newOpenController(t)
	ctx := context.Background()
	_, err := c.NewRequest(ctx)
	require.NoError(t, err)
	before := st.putCount()

	assert.ErrorIs(t, c.SetTitle(0, "x"), ErrNotEditing)

	require.NoError(t, c.BeginEdit(0))
	for _, text := range []string{"L", "Li", "Lis", "List users"} {
		require.NoError(t, c.SetTitle(0, text))
	}
	assert.Equal(t, before, st.putCount(), "keystrokes must not persist")
	assert.Equal(t, "List users", c.Requests()[0].Title)

	require.NoError(t, c.CommitTitle(ctx, 0))
	assert.Equal(t, before+1, st.putCount())
	assert.False(t, c.IsEditing(0))

	req, _ := c.Current()
	assert.Equal(t, "List users", st.stored(t)[req.ID].Title)
}

func TestCommitTitle_NotEditingIsNoop(t *testing.T) {
	c, st := newOpenController(t)
	ctx := context.Background()
	_, err := c.NewRequest(ctx)
	require.NoError(t, err)
	before := st.putCount()

	require.NoError(t, c.CommitTitle(ctx, 0))
	assert.Equal(t, before, st.putCount())
	assert.ErrorIs(t, c.CommitTitle(ctx, 5), ErrIndexOutOfRange)
}

func TestTitleEdit_ToggleWithoutChangeLeavesRecordIdentical(t *testing.T) {
	c, st := newOpenController(t)
	ctx := context.Background()
	for i := 0; i < 4; i++ {
		_, err := c.NewRequest(ctx)
		require.NoError(t, err)
	}
	require.NoError(t, c.SetURL(ctx, "http://example.test/last"))

	before := st.stored(t)
	for i := 0; i < c.Len(); i++ {
		require.NoError(t, c.Click(i, 2))
		require.NoError(t, c.CommitTitle(ctx, i))
	}

	assert.Equal(t, before, st.stored(t))
}

func TestCommitTitle_OnlyTouchesThatEntry(t *testing.T) {
	c, st := newOpenController(t)
	ctx := context.Background()
	for i := 0; i < 5; i++ {
		_, err := c.NewRequest(ctx)
		require.NoError(t, err)
	}
	before := st.stored(t)
	target := c.Requests()[2]

	require.NoError(t, c.Click(2, 2))
	require.NoError(t, c.SetTitle(2, "Renamed"))
	require.NoError(t, c.CommitTitle(ctx, 2))

	after := st.stored(t)
	for id, req := range before {
		if id == target.ID {
			assert.Equal(t, "Renamed", after[id].Title)
			continue
		}
		assert.Equal(t, req, after[id], "entry %s must be untouched", id)
	}
	for i, state := range c.States() {
		assert.False(t, state.IsEdit, "entry %d should be viewing", i)
	}
}

func TestCommitTitle_KeepsOtherEntriesEditing(t *testing.T) {
	c, _ := newOpenController(t)
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		_, err := c.NewRequest(ctx)
		require.NoError(t, err)
	}

	require.NoError(t, c.Click(0, 2))
	require.NoError(t, c.Click(1, 2))
	require.NoError(t, c.CommitTitle(ctx, 1))

	assert.True(t, c.IsEditing(0))
	assert.False(t, c.IsEditing(1))
}

func TestCommitTitle_FailedWriteStaysEditing(t *testing.T) {
	c, st := newOpenController(t)
	ctx := context.Background()
	_, err := c.NewRequest(ctx)
	require.NoError(t, err)

	require.NoError(t, c.Click(0, 2))
	st.failPut = true

	assert.Error(t, c.CommitTitle(ctx, 0))
	assert.True(t, c.IsEditing(0))
}

func TestSetMethodAndURL_PersistCurrent(t *testing.T) {
	c, st := newOpenController(t)
	ctx := context.Background()
	first, err := c.NewRequest(ctx)
	require.NoError(t, err)
	second, err := c.NewRequest(ctx)
	require.NoError(t, err)

	require.NoError(t, c.SetMethod(ctx, types.MethodPut))
	require.NoError(t, c.SetURL(ctx, "http://example.test/items/1"))

	stored := st.stored(t)
	assert.Equal(t, types.MethodPut, stored[second.ID].Type)
	assert.Equal(t, "http://example.test/items/1", stored[second.ID].URL)
	assert.Equal(t, first, stored[first.ID])

	assert.ErrorIs(t, c.SetMethod(ctx, types.Method("PATCH")), types.ErrUnknownMethod)
	cur, _ := c.Current()
	assert.Equal(t, types.MethodPut, cur.Type)
}

func TestSetMethodAndURL_RequireSelection(t *testing.T) {
	c, st := newOpenController(t)
	ctx := context.Background()

	assert.ErrorIs(t, c.SetMethod(ctx, types.MethodPost), ErrNoSelection)
	assert.ErrorIs(t, c.SetURL(ctx, "http://x"), ErrNoSelection)
	assert.Equal(t, 0, st.putCount())
}

func TestSetURL_FailedWriteKeepsMemory(t *testing.T) {
	c, st := newOpenController(t)
	ctx := context.Background()
	_, err := c.NewRequest(ctx)
	require.NoError(t, err)
	st.failPut = true

	assert.Error(t, c.SetURL(ctx, "http://x"))
	cur, _ := c.Current()
	assert.Equal(t, "http://x", cur.URL)
}

func TestLoad_ReplacesListAndSelectsFirst(t *testing.T) {
	st := newRecordingStore(t)
	ctx := context.Background()
	require.NoError(t, st.Memory.Initialize(ctx))

	persisted := []types.Request{
		{ID: "01", Type: types.MethodGet, URL: "http://a", Title: "A"},
		{ID: "02", Type: types.MethodPost, URL: "http://b", Title: "B"},
		{ID: "03", Type: types.MethodDelete, URL: "http://c", Title: "C"},
	}
	for _, req := range persisted {
		require.NoError(t, st.Memory.Put(ctx, req))
	}

	c := NewController(st)
	c.Open(ctx)

	assert.Equal(t, 0, c.CurrentIndex())
	assert.Equal(t, persisted, c.Requests())
	assert.Len(t, c.States(), 3)
	for _, state := range c.States() {
		assert.False(t, state.IsEdit)
	}
}

func TestLoad_SimulatedReload(t *testing.T) {
	c, st := newOpenController(t)
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		_, err := c.NewRequest(ctx)
		require.NoError(t, err)
	}
	require.NoError(t, c.Click(1, 2))

	reloaded := NewController(st)
	reloaded.Open(ctx)

	assert.Equal(t, 0, reloaded.CurrentIndex())
	assert.Equal(t, c.Requests(), reloaded.Requests())
	assert.False(t, reloaded.IsEditing(1))
}

func TestLoad_EmptyStoreHasNoSelection(t *testing.T) {
	c, _ := newOpenController(t)
	assert.Equal(t, -1, c.CurrentIndex())
}

func TestLoad_FailureKeepsCurrentList(t *testing.T) {
	c, st := newOpenController(t)
	ctx := context.Background()
	_, err := c.NewRequest(ctx)
	require.NoError(t, err)
	_, err = c.NewRequest(ctx)
	require.NoError(t, err)
	before := c.Requests()

	st.failList = true
	c.Load(ctx)

	assert.Equal(t, before, c.Requests())
	assert.Equal(t, 1, c.CurrentIndex())
}

func TestOpen_UnavailableStoreRunsInMemory(t *testing.T) {
	st := newRecordingStore(t)
	st.failInit = true

	c := NewController(st)
	c.Open(context.Background())
	assert.False(t, c.Persistent())

	_, err := c.NewRequest(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, c.Len())
	assert.Equal(t, 0, st.putCount())
}

func TestFind_FuzzyTitle(t *testing.T) {
	c, _ := newOpenController(t)
	ctx := context.Background()
	for _, title := range []string{"List users", "Create order", "Delete user"} {
		_, err := c.NewRequest(ctx)
		require.NoError(t, err)
		idx := c.CurrentIndex()
		require.NoError(t, c.BeginEdit(idx))
		require.NoError(t, c.SetTitle(idx, title))
		require.NoError(t, c.CommitTitle(ctx, idx))
	}

	idx, ok := c.Find("crord")
	assert.True(t, ok)
	assert.Equal(t, 1, idx)

	_, ok = c.Find("zzzz")
	assert.False(t, ok)

	_, ok = c.Find("")
	assert.False(t, ok)
}

func TestIndexOf(t *testing.T) {
	c, _ := newOpenController(t)
	req, err := c.NewRequest(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, c.IndexOf(req.ID))
	assert.Equal(t, -1, c.IndexOf("nope"))
}
