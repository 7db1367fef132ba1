package tui

import (
	"bytes"
	"encoding/json"

	"github.com/alecthomas/chroma/v2/quick"
)

const (
	highlightFormatter = "terminal256"
	highlightStyle     = "monokai"
)

// highlightJSON colors valid JSON for the terminal. Anything else is
// returned unchanged.
func highlightJSON(src string) string {
	if src == "" || !json.Valid([]byte(src)) {
		return src
	}

	var buf bytes.Buffer
	if err := quick.Highlight(&buf, src, "json", highlightFormatter, highlightStyle); err != nil {
		return src
	}
	return buf.String()
}
