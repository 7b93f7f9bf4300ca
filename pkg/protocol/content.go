package protocol

import "encoding/json"

// ParseContent decodes an event's free-text content as a JSON object.
// Content is untrusted relay data: malformed, empty, or non-object
// content yields an empty map, never an error.
func ParseContent(content string) map[string]any {
	if content == "" {
		return map[string]any{}
	}
	var parsed map[string]any
	if err := json.Unmarshal([]byte(content), &parsed); err != nil || parsed == nil {
		return map[string]any{}
	}
	return parsed
}

// ContentString returns the string at key in a parsed content map, or ""
// when absent or not a string.
func ContentString(content map[string]any, key string) string {
	s, _ := content[key].(string)
	return s
}
