package display

import (
	"encoding/json"
)

// MarshalJSON marshals JSON with indentation so reports stay diffable in CI logs
func MarshalJSON(v interface{}) ([]byte, error) {
	return json.MarshalIndent(v, "", "  ")
}
