package types

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Method is the HTTP verb of a saved request
type Method string

const (
	MethodGet    Method = "GET"
	MethodPost   Method = "POST"
	MethodPut    Method = "PUT"
	MethodDelete Method = "DELETE"
)

// Methods lists the supported verbs in display order
var Methods = []Method{MethodGet, MethodPost, MethodPut, MethodDelete}

// ErrUnknownMethod is returned for a verb outside Methods
var ErrUnknownMethod = errors.New("unknown request method")

// ParseMethod validates a verb, case-insensitively
func ParseMethod(s string) (Method, error) {
	m := Method(strings.ToUpper(strings.TrimSpace(s)))
	for _, known := range Methods {
		if m == known {
			return m, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMethod, s)
}

// HasBody reports whether the verb carries a request body
func (m Method) HasBody() bool {
	return m == MethodPost || m == MethodPut
}

// Next returns the verb after m in Methods, wrapping around
func (m Method) Next() Method {
	for i, known := range Methods {
		if m == known {
			return Methods[(i+1)%len(Methods)]
		}
	}
	return Methods[0]
}

func (m Method) String() string {
	return string(m)
}

// UnmarshalJSON rejects verbs outside Methods
func (m *Method) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return errors.New("request method must be a string")
	}
	parsed, err := ParseMethod(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
