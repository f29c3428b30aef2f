package config

import (
	"fmt"
	"os"

	"github.com/go-json-experiment/json"
)

// LoadJSON reads a luna2d JSON file that must hold a single object.
func LoadJSON(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if m == nil {
		return nil, fmt.Errorf("failed to parse %s: not a JSON object", path)
	}
	return m, nil
}
