package types

import "time"

// Request is a saved request definition. It is the only durable record.
type Request struct {
	ID    string `json:"id" yaml:"id"`
	Type  Method `json:"type" yaml:"type"`
	URL   string `json:"url" yaml:"url"`
	Title string `json:"title" yaml:"title"`
}

// Default request field values used by the "new request" action
const (
	DefaultTitle  = "New Request"
	DefaultMethod = MethodGet
	DefaultURL    = ""
)

// NewRequest returns a request with default fields and the given id
func NewRequest(id string) Request {
	return Request{
		ID:    id,
		Type:  DefaultMethod,
		URL:   DefaultURL,
		Title: DefaultTitle,
	}
}

// RequestState is the transient UI state of one request entry
type RequestState struct {
	IsEdit bool `json:"isEdit"`
}

// Response is the outcome of the latest send. It is never persisted.
//
// Code is zero until a send has produced a result. Time is nil when no
// network call was attempted. Headers is empty when no header set was
// received.
type Response struct {
	Code    int    `json:"code,omitempty" yaml:"code,omitempty"`
	Body    string `json:"body" yaml:"body"`
	OK      bool   `json:"ok" yaml:"ok"`
	Time    *int64 `json:"time" yaml:"time"`
	Headers string `json:"headers,omitempty" yaml:"headers,omitempty"`
}

// HasResult reports whether a send has populated the response
func (r Response) HasResult() bool {
	return r.Code != 0
}

// Elapsed returns the elapsed time as a duration, zero when unset
func (r Response) Elapsed() time.Duration {
	if r.Time == nil {
		return 0
	}
	return time.Duration(*r.Time) * time.Millisecond
}

// Millis is a helper for building a Response time value
func Millis(ms int64) *int64 {
	return &ms
}

// IsOKStatus reports whether a status code falls in the 2xx-3xx range
func IsOKStatus(status int) bool {
	return status >= 200 && status < 400
}
