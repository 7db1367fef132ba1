package filter

import (
	"strings"
	"testing"
)

const sample = `{
  "items": [
    {"name": "alpha", "status": "active"},
    {"name": "beta", "status": "inactive"},
    {"name": "gamma", "status": "active"}
  ],
  "total": 3
}`

func TestApply(t *testing.T) {
	tests := []struct {
		name       string
		expression string
		want       string
		wantErr    bool
	}{
		{
			name:       "empty expression returns body",
			expression: "   ",
			want:       sample,
		},
		{
			name:       "field",
			expression: "total",
			want:       "3",
		},
		{
			name:       "projection",
			expression: "items[].name",
			want:       "[\n  \"alpha\",\n  \"beta\",\n  \"gamma\"\n]",
		},
		{
			name:       "filter",
			expression: "items[?status=='active'].name",
			want:       "[\n  \"alpha\",\n  \"gamma\"\n]",
		},
		{
			name:       "missing field is null",
			expression: "nothing",
			want:       "null",
		},
		{
			name:       "invalid expression",
			expression: "items[?",
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Apply(sample, tt.expression)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %q", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Apply() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestApply_KeepsLargeIntegers(t *testing.T) {
	body := `{"id": 12345678901234567890, "seq": 9007199254740993, "n": 2, "items": [{"id": 12345678901234567891, "v": 5}]}`

	tests := []struct {
		expression string
		want       string
	}{
		{"id", "12345678901234567890"},
		{"seq", "9007199254740993"},
		{"items[0].id", "12345678901234567891"},
		{"items[?v > `4`].id | [0]", "12345678901234567891"},
		{"n", "2"},
	}

	for _, tt := range tests {
		t.Run(tt.expression, func(t *testing.T) {
			got, err := Apply(body, tt.expression)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Apply(%q) = %q, want %q", tt.expression, got, tt.want)
			}
		})
	}
}

func TestApply_InvalidJSON(t *testing.T) {
	_, err := Apply("Bad Request", "a")
	if err == nil || !strings.Contains(err.Error(), "invalid JSON") {
		t.Errorf("expected invalid JSON error, got %v", err)
	}
}

func TestIsValidJMESPath(t *testing.T) {
	if !IsValidJMESPath("items[0].name") {
		t.Error("expected valid expression")
	}
	if IsValidJMESPath("items[") {
		t.Error("expected invalid expression")
	}
}
