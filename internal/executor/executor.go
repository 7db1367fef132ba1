package executor

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/studiowebux/restcommander/internal/types"
)

// FallbackStatus is reported when a failure carries no status of its own
const FallbackStatus = http.StatusInternalServerError

// Call is a fully built outbound request
type Call struct {
	Method  types.Method
	URL     string
	Body    string
	Headers map[string]string
}

// StatusCoder is implemented by errors that know which status to report
type StatusCoder interface {
	StatusCode() int
}

// NewClient returns the HTTP client used for sends. A zero timeout means
// the call may wait indefinitely.
func NewClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout:   timeout,
		Transport: http.DefaultTransport,
	}
}

// Execute performs the call and decodes the JSON reply into a Response.
// Elapsed time is measured from start, which the caller records before
// building the call.
func Execute(ctx context.Context, client *http.Client, call Call, start time.Time) types.Response {
	var bodyReader io.Reader
	if call.Method.HasBody() {
		bodyReader = strings.NewReader(call.Body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, string(call.Method), call.URL, bodyReader)
	if err != nil {
		return Failure(fmt.Errorf("failed to create request: %w", err), start)
	}

	for key, value := range call.Headers {
		httpReq.Header.Set(key, value)
	}

	resp, err := client.Do(httpReq)
	if err != nil {
		return Failure(err, start)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return Failure(fmt.Errorf("failed to read response body: %w", err), start)
	}

	body, err := PrettyJSON(raw)
	if err != nil {
		return Failure(err, start)
	}

	headers, err := FormatHeaders(resp.Header)
	if err != nil {
		return Failure(err, start)
	}

	return types.Response{
		Code:    resp.StatusCode,
		Body:    body,
		OK:      types.IsOKStatus(resp.StatusCode),
		Time:    types.Millis(time.Since(start).Milliseconds()),
		Headers: headers,
	}
}

// Failure builds the Response for a failed call or decode
func Failure(err error, start time.Time) types.Response {
	code := FallbackStatus
	var coder StatusCoder
	if errors.As(err, &coder) && coder.StatusCode() != 0 {
		code = coder.StatusCode()
	}

	message := "Unknown Error"
	if err != nil && err.Error() != "" {
		message = err.Error()
	}

	return types.Response{
		Code: code,
		Body: message,
		OK:   false,
		Time: types.Millis(time.Since(start).Milliseconds()),
	}
}

// PrettyJSON parses raw as JSON and re-serializes it with two-space
// indentation. Numbers keep their original text.
func PrettyJSON(raw []byte) (string, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var value any
	if err := dec.Decode(&value); err != nil {
		return "", fmt.Errorf("invalid JSON response body: %w", err)
	}
	if dec.More() {
		return "", errors.New("invalid JSON response body: trailing data")
	}

	return marshalIndent(value)
}

// FormatHeaders renders a header set as an indented JSON object with
// lower-case names; repeated values are joined with ", ".
func FormatHeaders(h http.Header) (string, error) {
	flat := make(map[string]string, len(h))
	for key, values := range h {
		flat[strings.ToLower(key)] = strings.Join(values, ", ")
	}
	return marshalIndent(flat)
}

func marshalIndent(value any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(value); err != nil {
		return "", fmt.Errorf("failed to format JSON: %w", err)
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

// FormatDuration formats duration in milliseconds to human-readable string
func FormatDuration(ms int64) string {
	if ms < 1000 {
		return fmt.Sprintf("%dms", ms)
	}
	seconds := float64(ms) / 1000.0
	return fmt.Sprintf("%.2fs", seconds)
}
