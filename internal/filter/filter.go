package filter

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jmespath/go-jmespath"
)

// Apply runs a JMESPath expression over a JSON response body and returns
// the result as indented JSON. An empty expression returns body unchanged.
func Apply(body string, expression string) (string, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return body, nil
	}

	dec := json.NewDecoder(strings.NewReader(body))
	dec.UseNumber()

	var data interface{}
	if err := dec.Decode(&data); err != nil {
		return "", fmt.Errorf("invalid JSON: %w", err)
	}
	data = normalizeNumbers(data)

	jp, err := jmespath.Compile(expression)
	if err != nil {
		return "", fmt.Errorf("invalid JMESPath expression '%s': %w", expression, err)
	}

	result, err := jp.Search(data)
	if err != nil {
		return "", fmt.Errorf("JMESPath search failed: %w", err)
	}

	if result == nil {
		return "null", nil
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		return "", fmt.Errorf("failed to marshal result: %w", err)
	}

	return strings.TrimSuffix(buf.String(), "\n"), nil
}

// normalizeNumbers turns decoded numbers into float64 so JMESPath can
// compare them, except integers a float64 cannot hold exactly, which stay
// as json.Number and keep their original digits
func normalizeNumbers(v interface{}) interface{} {
	switch val := v.(type) {
	case map[string]interface{}:
		for k, item := range val {
			val[k] = normalizeNumbers(item)
		}
	case []interface{}:
		for i, item := range val {
			val[i] = normalizeNumbers(item)
		}
	case json.Number:
		if !strings.ContainsAny(val.String(), ".eE") {
			i, err := val.Int64()
			if err != nil || int64(float64(i)) != i {
				return val
			}
		}
		if f, err := val.Float64(); err == nil {
			return f
		}
		return val
	}
	return v
}

// IsValidJMESPath checks if an expression is valid JMESPath syntax
func IsValidJMESPath(expression string) bool {
	_, err := jmespath.Compile(expression)
	return err == nil
}
