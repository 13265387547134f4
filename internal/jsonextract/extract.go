// Package jsonextract pulls the first well-formed JSON object out of
// free-form model output. Providers often wrap their JSON answer in prose or
// markdown fences; adapters use this before giving up on a response.
package jsonextract

import "encoding/json"

// FirstObject returns the first balanced JSON object found in s, or "" when
// none exists. Matching is done with a small brace scanner that is aware of
// string literals and escape sequences, so braces inside string values do
// not break the balance. Candidates that balance but fail to parse are
// skipped and scanning continues from the next opening brace.
func FirstObject(s string) string {
	for start := 0; start < len(s); start++ {
		if s[start] != '{' {
			continue
		}

		end := matchObject(s, start)
		if end < 0 {
			// No balanced close for this opener; a later opener cannot
			// balance either.
			return ""
		}

		candidate := s[start : end+1]
		if json.Valid([]byte(candidate)) {
			return candidate
		}
		start = end
	}
	return ""
}

// Unmarshal extracts the first JSON object from s and decodes it into v.
// Returns false when no valid object is present.
func Unmarshal(s string, v interface{}) bool {
	obj := FirstObject(s)
	if obj == "" {
		return false
	}
	return json.Unmarshal([]byte(obj), v) == nil
}

// matchObject returns the index of the brace closing the object opened at
// start, or -1 when the input ends before it balances.
func matchObject(s string, start int) int {
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
