package product

import (
	"bytes"
	"encoding/json"
	"log"
)

var emptySpecs = json.RawMessage(`{}`)

// IsSpecsObject reports whether raw is a JSON object.
func IsSpecsObject(raw []byte) bool {
	var obj map[string]any
	return json.Unmarshal(bytes.TrimSpace(raw), &obj) == nil && obj != nil
}

// NormalizeSpecs returns raw when it is a JSON object and `{}` otherwise.
func NormalizeSpecs(raw []byte) json.RawMessage {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return emptySpecs
	}
	if !IsSpecsObject(raw) {
		log.Printf("[product] malformed specifications replaced by {}: %.60q", raw)
		return emptySpecs
	}
	return json.RawMessage(raw)
}
