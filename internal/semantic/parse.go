// Package semantic turns free-form shopping queries and model output into filter sets.
package semantic

import (
	"encoding/json"
	"regexp"
	"strings"
)

// maxObjectStarts bounds how many '{' positions the balanced scan tries.
const maxObjectStarts = 32

var fencedBlock = regexp.MustCompile("(?s)```[a-zA-Z]*\\s*(.*?)\\s*```")

// ParseFilters recovers a JSON object from raw model output. It tries, in
// order: the whole text, the text with markdown fences removed, the span from
// the first '{' to the last '}', and the first balanced object. The result is
// accepted only if it decodes to an object with at least one key.
func ParseFilters(raw string) (map[string]any, bool) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return nil, false
	}

	for _, candidate := range []string{
		text,
		stripFences(text),
		outermostObject(text),
	} {
		if obj, ok := decodeObject(candidate); ok {
			return obj, true
		}
	}
	return firstBalancedObject(text)
}

func decodeObject(s string) (map[string]any, bool) {
	if s == "" {
		return nil, false
	}
	var obj map[string]any
	if err := json.Unmarshal([]byte(s), &obj); err != nil {
		return nil, false
	}
	if len(obj) == 0 {
		return nil, false
	}
	return obj, true
}

func stripFences(s string) string {
	if m := fencedBlock.FindStringSubmatch(s); m != nil {
		return strings.TrimSpace(m[1])
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

func outermostObject(s string) string {
	start := strings.IndexByte(s, '{')
	end := strings.LastIndexByte(s, '}')
	if start < 0 || end <= start {
		return ""
	}
	return s[start : end+1]
}

// firstBalancedObject scans for brace-balanced spans, honoring JSON strings,
// and returns the first one that decodes.
func firstBalancedObject(s string) (map[string]any, bool) {
	starts := 0
	for i := 0; i < len(s) && starts < maxObjectStarts; i++ {
		if s[i] != '{' {
			continue
		}
		starts++
		end := balancedEnd(s, i)
		if end < 0 {
			continue
		}
		if obj, ok := decodeObject(s[i : end+1]); ok {
			return obj, true
		}
	}
	return nil, false
}

// balancedEnd returns the index of the '}' closing the '{' at start, or -1.
func balancedEnd(s string, start int) int {
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
				return i
			}
		}
	}
	return -1
}
