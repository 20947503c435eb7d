package ai

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ParseError reports oracle output that could not be decoded into the
// expected schema. Raw carries the model text for diagnostics.
type ParseError struct {
	Raw string
	Err error
}

func (e *ParseError) Error() string { return fmt.Sprintf("ai: parse oracle output: %v", e.Err) }
func (e *ParseError) Unwrap() error { return e.Err }

// CleanJSON strips markdown code fences and surrounding junk that models
// emit despite instructions, keeping only the outermost JSON object.
func CleanJSON(raw string) string {
	s := strings.TrimSpace(raw)

	if strings.HasPrefix(s, "```") {
		// Drop the first line (``` or ```json).
		if idx := strings.Index(s, "\n"); idx != -1 {
			s = s[idx+1:]
		} else {
			return s
		}
		s = strings.TrimSpace(s)
	}
	if idx := strings.LastIndex(s, "```"); idx != -1 {
		s = s[:idx]
	}
	s = strings.TrimSpace(s)

	// If there's still prose around the object, keep first '{' to last '}'.
	if start := strings.Index(s, "{"); start != -1 {
		if end := strings.LastIndex(s, "}"); end != -1 && end > start {
			s = strings.TrimSpace(s[start : end+1])
		}
	}
	return s
}

// Decode cleans raw oracle text and unmarshals it into v. Any failure is a
// *ParseError; partial or garbage fields never leak through.
func Decode(raw string, v any) error {
	clean := CleanJSON(raw)
	if err := json.Unmarshal([]byte(clean), v); err != nil {
		return &ParseError{Raw: raw, Err: err}
	}
	return nil
}
