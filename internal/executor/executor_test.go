package executor

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/studiowebux/restcommander/internal/types"
)

func newUpstream(t *testing.T) *httptest.Server {
	t.Helper()

	r := chi.NewRouter()
	r.Get("/items", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Add("X-Multi", "a")
		w.Header().Add("X-Multi", "b")
		io.WriteString(w, `{"items":[1,2],"big":12345678901234567890}`)
	})
	r.Post("/echo", func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{
			"body":         string(body),
			"content-type": r.Header.Get("Content-Type"),
			"x-test":       r.Header.Get("X-Test"),
		})
	})
	r.Delete("/items/1", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		io.WriteString(w, `{"error":"missing"}`)
	})
	r.Get("/html", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "<html>nope</html>")
	})

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func TestExecute_PrettyPrintsJSON(t *testing.T) {
	srv := newUpstream(t)

	resp := Execute(context.Background(), NewClient(0), Call{
		Method: types.MethodGet,
		URL:    srv.URL + "/items",
	}, time.Now())

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.True(t, resp.OK)
	require.NotNil(t, resp.Time)
	assert.GreaterOrEqual(t, *resp.Time, int64(0))
	assert.Equal(t, "{\n  \"big\": 12345678901234567890,\n  \"items\": [\n    1,\n    2\n  ]\n}", resp.Body)

	var headers map[string]string
	require.NoError(t, json.Unmarshal([]byte(resp.Headers), &headers))
	assert.Equal(t, "application/json", headers["content-type"])
	assert.Equal(t, "a, b", headers["x-multi"])
	assert.Contains(t, resp.Headers, "\n  \"content-type\"")
}

func TestExecute_SendsBodyAndHeaders(t *testing.T) {
	srv := newUpstream(t)

	resp := Execute(context.Background(), NewClient(0), Call{
		Method: types.MethodPost,
		URL:    srv.URL + "/echo",
		Body:   `{"a":1}`,
		Headers: map[string]string{
			"content-type": "application/json",
			"X-Test":       "1",
		},
	}, time.Now())

	require.Equal(t, http.StatusOK, resp.Code, resp.Body)

	var echoed map[string]string
	require.NoError(t, json.Unmarshal([]byte(resp.Body), &echoed))
	assert.Equal(t, `{"a":1}`, echoed["body"])
	assert.Equal(t, "application/json", echoed["content-type"])
	assert.Equal(t, "1", echoed["x-test"])
}

func TestExecute_GetIgnoresBody(t *testing.T) {
	var gotLength int64 = -2
	r := chi.NewRouter()
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		gotLength = r.ContentLength
		io.WriteString(w, `{}`)
	})
	srv := httptest.NewServer(r)
	defer srv.Close()

	resp := Execute(context.Background(), NewClient(0), Call{
		Method: types.MethodGet,
		URL:    srv.URL + "/",
		Body:   "{not json",
	}, time.Now())

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, int64(0), gotLength)
}

func TestExecute_ErrorStatusStillDecoded(t *testing.T) {
	srv := newUpstream(t)

	resp := Execute(context.Background(), NewClient(0), Call{
		Method: types.MethodDelete,
		URL:    srv.URL + "/items/1",
	}, time.Now())

	assert.Equal(t, http.StatusNotFound, resp.Code)
	assert.False(t, resp.OK)
	assert.Contains(t, resp.Body, `"error": "missing"`)
	assert.NotEmpty(t, resp.Headers)
}

func TestExecute_NonJSONBodyIsFailure(t *testing.T) {
	srv := newUpstream(t)

	resp := Execute(context.Background(), NewClient(0), Call{
		Method: types.MethodGet,
		URL:    srv.URL + "/html",
	}, time.Now())

	assert.Equal(t, FallbackStatus, resp.Code)
	assert.False(t, resp.OK)
	assert.Contains(t, resp.Body, "invalid JSON response body")
	assert.Empty(t, resp.Headers)
	assert.NotNil(t, resp.Time)
}

func TestExecute_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	resp := Execute(context.Background(), NewClient(0), Call{
		Method: types.MethodGet,
		URL:    url,
	}, time.Now())

	assert.Equal(t, FallbackStatus, resp.Code)
	assert.False(t, resp.OK)
	assert.NotEmpty(t, resp.Body)
	assert.Empty(t, resp.Headers)
	assert.NotNil(t, resp.Time)
}

func TestExecute_EmptyURL(t *testing.T) {
	resp := Execute(context.Background(), NewClient(0), Call{Method: types.MethodGet}, time.Now())

	assert.Equal(t, FallbackStatus, resp.Code)
	assert.False(t, resp.OK)
}

type teapotError struct{}

func (teapotError) Error() string   { return "short and stout" }
func (teapotError) StatusCode() int { return http.StatusTeapot }

func TestFailure_UsesStatusFromError(t *testing.T) {
	start := time.Now().Add(-25 * time.Millisecond)

	resp := Failure(teapotError{}, start)
	assert.Equal(t, http.StatusTeapot, resp.Code)
	assert.Equal(t, "short and stout", resp.Body)
	require.NotNil(t, resp.Time)
	assert.GreaterOrEqual(t, *resp.Time, int64(25))

	wrapped := Failure(errors.Join(errors.New("outer"), teapotError{}), start)
	assert.Equal(t, http.StatusTeapot, wrapped.Code)
}

func TestFailure_EmptyMessage(t *testing.T) {
	resp := Failure(errors.New(""), time.Now())
	assert.Equal(t, "Unknown Error", resp.Body)
	assert.Equal(t, FallbackStatus, resp.Code)
}

func TestPrettyJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"object", `{"a":1}`, "{\n  \"a\": 1\n}", false},
		{"html kept", `{"h":"<b>&</b>"}`, "{\n  \"h\": \"<b>&</b>\"\n}", false},
		{"scalar", `42`, "42", false},
		{"empty", ``, "", true},
		{"trailing", `{} {}`, "", true},
		{"garbage", `{invalid`, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := PrettyJSON([]byte(tt.input))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "999ms", FormatDuration(999))
	assert.Equal(t, "1.50s", FormatDuration(1500))
}

func TestFormatHeaders_Empty(t *testing.T) {
	got, err := FormatHeaders(http.Header{})
	require.NoError(t, err)
	assert.Equal(t, "{}", got)
	assert.False(t, strings.Contains(got, "\n"))
}
