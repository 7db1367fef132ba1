package session

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/studiowebux/restcommander/internal/executor"
	"github.com/studiowebux/restcommander/internal/types"
)

// ErrInvalidBody is returned by BeginSend when a body-bearing request has
// body text that is not valid JSON. The response is already set.
var ErrInvalidBody = errors.New("request body is not valid JSON")

// JSONContentType is the default content type of body-bearing sends
const JSONContentType = "application/json"

// PendingSend is a send that passed validation and awaits its network call
type PendingSend struct {
	seq    uint64
	client *http.Client

	Call  executor.Call
	Start time.Time
}

// Run performs the network call. It touches no controller state and may
// run on any goroutine.
func (p *PendingSend) Run(ctx context.Context) types.Response {
	return executor.Execute(ctx, p.client, p.Call, p.Start)
}

// BeginSend validates the current request and builds its outbound call.
//
// For POST and PUT the pending body text must be valid JSON; otherwise the
// response becomes a 400 "Bad Request" with no time, nothing is sent and
// ErrInvalidBody is returned. The headers text, when it parses as a JSON
// object, is merged over the default headers; malformed headers text is
// ignored.
func (c *Controller) BeginSend() (*PendingSend, error) {
	req, ok := c.Current()
	if !ok {
		return nil, ErrNoSelection
	}

	c.sendSeq++
	hasBody := req.Type.HasBody()

	if hasBody && !json.Valid([]byte(c.bodyText)) {
		c.response = types.Response{
			Code: http.StatusBadRequest,
			Body: "Bad Request",
			OK:   false,
		}
		return nil, ErrInvalidBody
	}

	start := time.Now()

	call := executor.Call{
		Method:  req.Type,
		URL:     req.URL,
		Headers: c.buildHeaders(req.Type),
	}
	if hasBody {
		call.Body = c.bodyText
	}

	c.log.WithFields(logrus.Fields{
		"id":     req.ID,
		"method": req.Type,
		"url":    req.URL,
	}).Debug("sending request")

	return &PendingSend{
		seq:    c.sendSeq,
		client: c.client,
		Call:   call,
		Start:  start,
	}, nil
}

// Complete records the outcome of a pending send. A completion from a
// send older than the latest BeginSend is discarded and false is returned.
func (c *Controller) Complete(p *PendingSend, resp types.Response) bool {
	if p == nil || p.seq != c.sendSeq {
		c.log.Debug("discarding stale response")
		return false
	}
	c.response = resp
	return true
}

// Send runs BeginSend, the call and Complete in sequence
func (c *Controller) Send(ctx context.Context) (types.Response, error) {
	pending, err := c.BeginSend()
	if errors.Is(err, ErrInvalidBody) {
		return c.response, nil
	}
	if err != nil {
		return types.Response{}, err
	}

	c.Complete(pending, pending.Run(ctx))
	return c.response, nil
}

// buildHeaders returns the default headers for the method with the
// pending headers text merged over them
func (c *Controller) buildHeaders(method types.Method) map[string]string {
	headers := make(map[string]string)
	if method.HasBody() {
		headers["content-type"] = JSONContentType
	}

	if strings.TrimSpace(c.headersText) == "" {
		return headers
	}

	extra, err := ParseHeaders(c.headersText)
	if err != nil {
		c.log.WithError(err).Debug("ignoring malformed headers text")
		return headers
	}

	for name, value := range extra {
		for existing := range headers {
			if strings.EqualFold(existing, name) {
				delete(headers, existing)
			}
		}
		headers[name] = value
	}
	return headers
}

// ParseHeaders parses headers text as a strict JSON object of names to
// values. Non-string values are rendered as their JSON text.
func ParseHeaders(text string) (map[string]string, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return nil, fmt.Errorf("invalid headers: %w", err)
	}
	if raw == nil {
		return nil, errors.New("invalid headers: expected an object")
	}

	headers := make(map[string]string, len(raw))
	for name, value := range raw {
		var s string
		if err := json.Unmarshal(value, &s); err == nil {
			headers[name] = s
			continue
		}
		var compact bytes.Buffer
		if err := json.Compact(&compact, value); err != nil {
			return nil, fmt.Errorf("invalid headers: %w", err)
		}
		headers[name] = compact.String()
	}
	return headers, nil
}
