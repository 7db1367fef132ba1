package session

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/sahilm/fuzzy"
	"github.com/sirupsen/logrus"
	"github.com/studiowebux/restcommander/internal/config"
	"github.com/studiowebux/restcommander/internal/executor"
	"github.com/studiowebux/restcommander/internal/logging"
	"github.com/studiowebux/restcommander/internal/store"
	"github.com/studiowebux/restcommander/internal/types"
)

var (
	// ErrNoSelection is returned by operations that need a current request
	ErrNoSelection = errors.New("no request selected")
	// ErrIndexOutOfRange is returned for an index outside the request list
	ErrIndexOutOfRange = errors.New("request index out of range")
	// ErrNotEditing is returned when a title change targets an entry not in edit mode
	ErrNotEditing = errors.New("request title is not being edited")
)

// Controller holds the in-memory request list, the selection, per-entry
// UI state, the pending body/headers text and the last response. Every
// durable change is written through to the store.
//
// A Controller is not safe for concurrent use; it is driven from a single
// event loop. Only PendingSend.Run may execute off that loop.
type Controller struct {
	store  store.Store
	client *http.Client
	log    *logrus.Entry
	newID  func() string

	requests []types.Request
	states   map[string]types.RequestState
	current  int

	bodyText    string
	headersText string

	response types.Response
	sendSeq  uint64
}

// Option configures a Controller
type Option func(*Controller)

// WithIDGenerator replaces the request id generator
func WithIDGenerator(fn func() string) Option {
	return func(c *Controller) {
		c.newID = fn
	}
}

// WithClient sets the HTTP client used for sends
func WithClient(client *http.Client) Option {
	return func(c *Controller) {
		c.client = client
	}
}

// WithDefaultTexts sets the initial pending body and headers text
func WithDefaultTexts(body, headers string) Option {
	return func(c *Controller) {
		c.bodyText = body
		c.headersText = headers
	}
}

// NewController creates a controller over st. A nil store runs without
// persistence: every write is skipped.
func NewController(st store.Store, opts ...Option) *Controller {
	c := &Controller{
		store:       st,
		client:      executor.NewClient(0),
		log:         logging.For("session"),
		newID:       NewID,
		states:      make(map[string]types.RequestState),
		current:     -1,
		bodyText:    config.DefaultBodyText,
		headersText: config.DefaultHeadersText,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewID returns a unique id whose string form sorts by creation time
func NewID() string {
	return uuid.Must(uuid.NewV7()).String()
}

// Open initializes the store and performs the initial load. If the store
// cannot be opened the controller continues without persistence.
func (c *Controller) Open(ctx context.Context) {
	if c.store == nil {
		return
	}
	if err := c.store.Initialize(ctx); err != nil {
		c.log.WithError(err).Warn("store unavailable, continuing without persistence")
		c.store = nil
		return
	}
	c.Load(ctx)
}

// Persistent reports whether writes reach a store
func (c *Controller) Persistent() bool {
	return c.store != nil
}

// Load replaces the in-memory list with the stored requests, all in
// viewing state, and selects the first one. If the store cannot be read
// the current list is left untouched.
func (c *Controller) Load(ctx context.Context) {
	if c.store == nil {
		return
	}

	requests, err := c.store.List(ctx)
	if err != nil {
		c.log.WithError(err).Warn("failed to load requests, keeping current list")
		return
	}

	c.requests = append([]types.Request(nil), requests...)
	c.states = make(map[string]types.RequestState, len(requests))
	for _, req := range requests {
		c.states[req.ID] = types.RequestState{}
	}

	if len(c.requests) > 0 {
		c.current = 0
	} else {
		c.current = -1
	}

	c.log.WithField("count", len(c.requests)).Debug("requests loaded")
}

// NewRequest appends a default request, selects it and persists it
func (c *Controller) NewRequest(ctx context.Context) (types.Request, error) {
	req := types.NewRequest(c.newID())

	c.requests = append(c.requests, req)
	c.states[req.ID] = types.RequestState{}
	c.current = len(c.requests) - 1

	return req, c.put(ctx, req)
}

// Select makes the entry at index current. Edit state is untouched.
func (c *Controller) Select(index int) error {
	if !c.valid(index) {
		return fmt.Errorf("%w: %d", ErrIndexOutOfRange, index)
	}
	c.current = index
	return nil
}

// Click applies a pointer interaction: one click selects, two start
// editing the title, any other count does nothing.
func (c *Controller) Click(index, count int) error {
	switch count {
	case 1:
		return c.Select(index)
	case 2:
		return c.BeginEdit(index)
	default:
		return nil
	}
}

// BeginEdit switches the entry's title into edit mode
func (c *Controller) BeginEdit(index int) error {
	if !c.valid(index) {
		return fmt.Errorf("%w: %d", ErrIndexOutOfRange, index)
	}
	c.setEditing(c.requests[index].ID, true)
	return nil
}

// SetTitle updates the in-memory title of an entry being edited.
// Nothing is persisted until CommitTitle.
func (c *Controller) SetTitle(index int, title string) error {
	if !c.valid(index) {
		return fmt.Errorf("%w: %d", ErrIndexOutOfRange, index)
	}
	if !c.IsEditing(index) {
		return ErrNotEditing
	}
	c.requests[index].Title = title
	return nil
}

// CommitTitle persists the edited entry and returns it to viewing state.
// It is a no-op for an entry that is not being edited. If the write
// fails the entry stays in edit mode.
func (c *Controller) CommitTitle(ctx context.Context, index int) error {
	if !c.valid(index) {
		return fmt.Errorf("%w: %d", ErrIndexOutOfRange, index)
	}
	if !c.IsEditing(index) {
		return nil
	}

	req := c.requests[index]
	if err := c.put(ctx, req); err != nil {
		return err
	}
	c.setEditing(req.ID, false)
	return nil
}

// SetMethod changes the current request's method and persists it
func (c *Controller) SetMethod(ctx context.Context, method types.Method) error {
	if _, err := types.ParseMethod(string(method)); err != nil {
		return err
	}
	if !c.valid(c.current) {
		return ErrNoSelection
	}

	c.requests[c.current].Type = method
	return c.put(ctx, c.requests[c.current])
}

// SetURL changes the current request's URL and persists it
func (c *Controller) SetURL(ctx context.Context, url string) error {
	if !c.valid(c.current) {
		return ErrNoSelection
	}

	c.requests[c.current].URL = url
	return c.put(ctx, c.requests[c.current])
}

// SetBodyText replaces the pending request body text
func (c *Controller) SetBodyText(text string) {
	c.bodyText = text
}

// BodyText returns the pending request body text
func (c *Controller) BodyText() string {
	return c.bodyText
}

// SetHeadersText replaces the pending headers text
func (c *Controller) SetHeadersText(text string) {
	c.headersText = text
}

// HeadersText returns the pending headers text
func (c *Controller) HeadersText() string {
	return c.headersText
}

// Requests returns a copy of the request list
func (c *Controller) Requests() []types.Request {
	return append([]types.Request(nil), c.requests...)
}

// States returns the UI state of each entry, aligned with Requests
func (c *Controller) States() []types.RequestState {
	states := make([]types.RequestState, len(c.requests))
	for i, req := range c.requests {
		states[i] = c.states[req.ID]
	}
	return states
}

// Len returns the number of requests
func (c *Controller) Len() int {
	return len(c.requests)
}

// CurrentIndex returns the selected index, -1 when the list is empty
func (c *Controller) CurrentIndex() int {
	return c.current
}

// Current returns the selected request
func (c *Controller) Current() (types.Request, bool) {
	if !c.valid(c.current) {
		return types.Request{}, false
	}
	return c.requests[c.current], true
}

// IsEditing reports whether the entry's title is in edit mode
func (c *Controller) IsEditing(index int) bool {
	if !c.valid(index) {
		return false
	}
	return c.states[c.requests[index].ID].IsEdit
}

// Response returns the last response
func (c *Controller) Response() types.Response {
	return c.response
}

// IndexOf returns the index of the request with the given id, or -1
func (c *Controller) IndexOf(id string) int {
	for i, req := range c.requests {
		if req.ID == id {
			return i
		}
	}
	return -1
}

// titles adapts the request list to fuzzy.Source
type titles []types.Request

func (t titles) String(i int) string { return t[i].Title }
func (t titles) Len() int            { return len(t) }

// Find returns the index of the title that best matches query
func (c *Controller) Find(query string) (int, bool) {
	if query == "" || len(c.requests) == 0 {
		return -1, false
	}
	matches := fuzzy.FindFrom(query, titles(c.requests))
	if len(matches) == 0 {
		return -1, false
	}
	return matches[0].Index, true
}

func (c *Controller) valid(index int) bool {
	return index >= 0 && index < len(c.requests)
}

func (c *Controller) setEditing(id string, editing bool) {
	state := c.states[id]
	state.IsEdit = editing
	c.states[id] = state
}

func (c *Controller) put(ctx context.Context, req types.Request) error {
	if c.store == nil {
		return nil
	}
	if err := c.store.Put(ctx, req); err != nil {
		c.log.WithError(err).WithField("id", req.ID).Warn("failed to persist request")
		return fmt.Errorf("failed to persist request: %w", err)
	}
	return nil
}
