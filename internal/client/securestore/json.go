package securestore

import (
	"context"
	"encoding/json"
	"fmt"
)

// PutJSON marshals v and stores it under key.
func PutJSON(ctx context.Context, s ItemStore, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return &StorageError{Op: "set", Key: key, Err: fmt.Errorf("marshal: %w", err)}
	}
	return s.SetItem(ctx, key, string(b))
}

// GetJSON loads key into v. It returns false when the key is absent.
// A stored value that no longer decodes is reported as a StorageError.
func GetJSON(ctx context.Context, s ItemStore, key string, v any) (bool, error) {
	raw, ok, err := s.GetItem(ctx, key)
	if err != nil || !ok {
		return false, err
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return false, &StorageError{Op: "get", Key: key, Err: fmt.Errorf("unmarshal: %w", err)}
	}
	return true, nil
}
