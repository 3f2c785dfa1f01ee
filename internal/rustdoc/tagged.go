package rustdoc

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// decodeTagged splits serde's externally tagged enum encoding. Unit variants
// arrive as a bare string and yield a nil payload.
func decodeTagged(data []byte) (string, json.RawMessage, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return "", nil, nil
	}
	if data[0] == '"' {
		var tag string
		if err := json.Unmarshal(data, &tag); err != nil {
			return "", nil, err
		}
		return tag, nil, nil
	}

	var wrapped map[string]json.RawMessage
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return "", nil, err
	}
	if len(wrapped) != 1 {
		return "", nil, fmt.Errorf("expected exactly one variant key, got %d", len(wrapped))
	}
	for tag, payload := range wrapped {
		return tag, payload, nil
	}
	return "", nil, nil
}

func decodePayload(tag string, payload json.RawMessage, dst any) error {
	if len(payload) == 0 {
		return fmt.Errorf("variant %q has no payload", tag)
	}
	if err := json.Unmarshal(payload, dst); err != nil {
		return fmt.Errorf("decode %s: %w", tag, err)
	}
	return nil
}
