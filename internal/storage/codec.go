package storage

import (
	"encoding/json"
	"fmt"
)

// EncodeIDList marshals a member-id set for the split_with column.
// The column holds a JSON array in both backends.
func EncodeIDList(ids []string) (string, error) {
	if len(ids) == 0 {
		return "[]", nil
	}
	data, err := json.Marshal(ids)
	if err != nil {
		return "", fmt.Errorf("failed to encode id list: %w", err)
	}
	return string(data), nil
}

// DecodeIDList unmarshals a split_with column value.
func DecodeIDList(raw string) ([]string, error) {
	if raw == "" || raw == "[]" {
		return nil, nil
	}
	var ids []string
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		return nil, fmt.Errorf("failed to decode id list: %w", err)
	}
	return ids, nil
}
