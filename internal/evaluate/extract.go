package evaluate

import (
	"encoding/json"
	"errors"
	"strings"
)

// ErrNoPayload is returned when no JSON object can be recovered from a
// model response.
var ErrNoPayload = errors.New("no JSON object in response")

// ExtractObject recovers a JSON object from free-form model output. Models
// asked for bare JSON still wrap it in markdown fences or prose often enough
// that the strict path alone is not reliable. Strategies, in order:
//
//  1. the whole trimmed text parses as a JSON object;
//  2. the contents of the first ```json (or bare ```) fence parse;
//  3. the first balanced {...} region parses.
//
// The result is valid JSON; interpreting its fields is the caller's problem.
func ExtractObject(raw string) (json.RawMessage, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil, ErrNoPayload
	}

	if obj, ok := tryObject(s); ok {
		return obj, nil
	}
	if fenced, ok := insideFence(s); ok {
		if obj, ok := tryObject(fenced); ok {
			return obj, nil
		}
	}
	if region, ok := balancedObject(s); ok {
		if obj, ok := tryObject(region); ok {
			return obj, nil
		}
	}
	return nil, ErrNoPayload
}

func tryObject(s string) (json.RawMessage, bool) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "{") {
		return nil, false
	}
	var probe map[string]json.RawMessage
	if err := json.Unmarshal([]byte(s), &probe); err != nil {
		return nil, false
	}
	return json.RawMessage(s), true
}

// insideFence returns the contents of the first markdown code fence.
func insideFence(s string) (string, bool) {
	start := strings.Index(s, "```")
	if start < 0 {
		return "", false
	}
	rest := s[start+3:]
	// Skip an optional language tag on the opening fence line.
	if nl := strings.IndexByte(rest, '\n'); nl >= 0 {
		firstLine := strings.TrimSpace(rest[:nl])
		if firstLine == "json" || firstLine == "" {
			rest = rest[nl+1:]
		}
	}
	end := strings.Index(rest, "```")
	if end < 0 {
		// Truncated response: take everything after the fence and let the
		// balanced scan decide.
		return rest, true
	}
	return rest[:end], true
}

// balancedObject finds the first brace-balanced region, tracking JSON string
// literals so braces inside strings don't count.
func balancedObject(s string) (string, bool) {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return "", false
	}
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1], true
			}
		}
	}
	return "", false
}
