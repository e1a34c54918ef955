package llm

import (
	"encoding/json"
)

// ParseError marks model output that could not be turned into the expected
// JSON shape. It is a distinct type so callers can map it to a 422 instead of
// confusing it with provider or persistence failures.
type ParseError struct {
	Reason string
}

func (e *ParseError) Error() string {
	return "llm: unparseable model output: " + e.Reason
}

// JSONSpan returns the first balanced top-level {...} span in raw. Models
// often wrap their JSON in prose or markdown fences even when told not to;
// braces inside JSON strings are skipped.
func JSONSpan(raw string) (string, error) {
	start := -1
	depth := 0
	inString := false
	escaped := false

	for i := 0; i < len(raw); i++ {
		ch := raw[i]

		if inString {
			if escaped {
				escaped = false
			} else if ch == '\\' {
				escaped = true
			} else if ch == '"' {
				inString = false
			}
			continue
		}

		switch ch {
		case '"':
			if start >= 0 {
				inString = true
			}
		case '{':
			if start < 0 {
				start = i
			}
			depth++
		case '}':
			if start >= 0 {
				depth--
				if depth == 0 {
					return raw[start : i+1], nil
				}
			}
		}
	}

	if start < 0 {
		return "", &ParseError{Reason: "no JSON object found in response"}
	}
	return "", &ParseError{Reason: "unterminated JSON object in response"}
}

// ExtractJSON locates the JSON object in raw model output and unmarshals it
// into v. Any failure comes back as a *ParseError; there is no degraded
// placeholder path.
func ExtractJSON(raw string, v interface{}) error {
	span, err := JSONSpan(raw)
	if err != nil {
		return err
	}

	if err := json.Unmarshal([]byte(span), v); err != nil {
		return &ParseError{Reason: err.Error()}
	}
	return nil
}
