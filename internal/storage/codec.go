package storage

import (
	"encoding/json"
	"fmt"
)

// List-valued columns (image URIs, event membership) are stored as JSON
// arrays in TEXT columns. Values may contain any delimiter character, so a
// plain join would not round-trip.

// EncodeStringList encodes an ordered string sequence for a TEXT column.
// A nil or empty slice encodes as "[]".
func EncodeStringList(values []string) (string, error) {
	if values == nil {
		values = []string{}
	}
	data, err := json.Marshal(values)
	if err != nil {
		return "", fmt.Errorf("%w: encoding string list: %v", ErrStorage, err)
	}
	return string(data), nil
}

// DecodeStringList decodes a TEXT column produced by EncodeStringList.
// An empty column value decodes as an empty list.
func DecodeStringList(raw string) ([]string, error) {
	if raw == "" {
		return []string{}, nil
	}
	var values []string
	if err := json.Unmarshal([]byte(raw), &values); err != nil {
		return nil, fmt.Errorf("%w: decoding string list: %v", ErrStorage, err)
	}
	if values == nil {
		values = []string{}
	}
	return values, nil
}
