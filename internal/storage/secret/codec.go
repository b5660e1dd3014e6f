package secret

import (
	"encoding/json"
	"fmt"
)

func marshalContainer(c container) ([]byte, error) {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode secret store: %w", err)
	}
	return data, nil
}

func unmarshalContainer(data []byte, c *container) error {
	if err := json.Unmarshal(data, c); err != nil {
		return fmt.Errorf("corrupt secret store: %w", err)
	}
	return nil
}
