package types

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestParseMethod(t *testing.T) {
	tests := []struct {
		input   string
		want    Method
		wantErr bool
	}{
		{"GET", MethodGet, false},
		{"post", MethodPost, false},
		{" Put ", MethodPut, false},
		{"delete", MethodDelete, false},
		{"PATCH", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseMethod(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownMethod) {
					t.Errorf("ParseMethod(%q) error = %v, want ErrUnknownMethod", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseMethod(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseMethod(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestMethod_HasBody(t *testing.T) {
	want := map[Method]bool{
		MethodGet:    false,
		MethodPost:   true,
		MethodPut:    true,
		MethodDelete: false,
	}
	for m, hasBody := range want {
		if m.HasBody() != hasBody {
			t.Errorf("%s.HasBody() = %v, want %v", m, m.HasBody(), hasBody)
		}
	}
}

func TestMethod_NextCycles(t *testing.T) {
	m := MethodGet
	seen := []Method{m}
	for i := 0; i < len(Methods); i++ {
		m = m.Next()
		seen = append(seen, m)
	}
	want := []Method{MethodGet, MethodPost, MethodPut, MethodDelete, MethodGet}
	for i := range want {
		if seen[i] != want[i] {
			t.Fatalf("cycle = %v, want %v", seen, want)
		}
	}

	if got := Method("TRACE").Next(); got != MethodGet {
		t.Errorf("unknown.Next() = %q, want GET", got)
	}
}

func TestRequest_JSONRoundTripRejectsUnknownMethod(t *testing.T) {
	var req Request
	if err := json.Unmarshal([]byte(`{"id":"1","type":"post","url":"u","title":"t"}`), &req); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if req.Type != MethodPost {
		t.Errorf("Type = %q, want POST", req.Type)
	}

	if err := json.Unmarshal([]byte(`{"id":"1","type":"PATCH"}`), &req); err == nil {
		t.Error("expected error for unknown method")
	}
}

func TestResponse_Helpers(t *testing.T) {
	var empty Response
	if empty.HasResult() {
		t.Error("zero Response should have no result")
	}
	if empty.Elapsed() != 0 {
		t.Errorf("Elapsed() = %v, want 0", empty.Elapsed())
	}

	resp := Response{Code: 200, Time: Millis(1500)}
	if !resp.HasResult() {
		t.Error("expected result")
	}
	if resp.Elapsed().Milliseconds() != 1500 {
		t.Errorf("Elapsed() = %v, want 1.5s", resp.Elapsed())
	}
}

func TestIsOKStatus(t *testing.T) {
	cases := map[int]bool{199: false, 200: true, 204: true, 399: true, 400: false, 500: false}
	for status, want := range cases {
		if got := IsOKStatus(status); got != want {
			t.Errorf("IsOKStatus(%d) = %v, want %v", status, got, want)
		}
	}
}
