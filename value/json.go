package value

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrTrailingData is returned by DecodeJSON when the text holds more than
// one JSON value.
var ErrTrailingData = errors.New("trailing data after JSON value")

// DecodeJSON decodes text into the candidate value model: objects become
// map[string]any, arrays []any, numbers float64, null nil.
func DecodeJSON(text string) (any, error) {
	return DecodeJSONReader(strings.NewReader(text))
}

// DecodeJSONReader decodes exactly one JSON value from r.
func DecodeJSONReader(r io.Reader) (any, error) {
	dec := json.NewDecoder(r)

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("decoding JSON candidate: %w", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, ErrTrailingData
	}
	return v, nil
}
