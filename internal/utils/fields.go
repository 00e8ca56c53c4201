package utils

import (
	"bytes"
	"errors"

	"github.com/goccy/go-json"
)

var ErrNotObject = errors.New("request body must be a JSON object")

// Fields records which top-level keys a JSON object body carried and their
// raw values, so partial updates can tell an omitted key from an explicit null.
type Fields map[string]json.RawMessage

func ParseFields(body []byte) (Fields, error) {
	fields := Fields{}
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return fields, nil
	}
	if trimmed[0] != '{' {
		return nil, ErrNotObject
	}
	if err := json.Unmarshal(trimmed, &fields); err != nil {
		return nil, err
	}
	return fields, nil
}

func (f Fields) Has(key string) bool {
	_, ok := f[key]
	return ok
}
