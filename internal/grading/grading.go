// Package grading decides correctness for multiple-choice answers and
// normalizes free-form answer-key values to option letters.
package grading

import "strings"

// Letters are the only valid choices for a stored answer or a submission.
var Letters = []string{"A", "B", "C", "D"}

// IsLetter reports whether s is a single option letter, ignoring case.
func IsLetter(s string) bool {
	if len(s) != 1 {
		return false
	}
	c := strings.ToUpper(s)
	return c >= "A" && c <= "D"
}

// Correct compares a stored answer-key value against a submitted letter.
// The stored value may carry whitespace or case variance ("b ", " B"); the
// first character decides. A stored value that is not a letter never matches.
func Correct(stored, choice string) bool {
	stored = strings.TrimSpace(stored)
	if stored == "" {
		return false
	}
	key := strings.ToUpper(stored[:1])
	if !IsLetter(key) {
		return false
	}
	return key == strings.ToUpper(strings.TrimSpace(choice))
}

// Normalize resolves a raw answer-key value to a single option letter:
// an already-single-letter value passes through uppercased; otherwise the
// value is matched case-insensitively against the four option texts; as a
// last resort the first A-D character found in the value is used. When
// nothing resolves, the raw value is returned unchanged with ok=false so
// callers can reject or flag it.
func Normalize(raw string, options [4]string) (letter string, ok bool) {
	ans := strings.TrimSpace(raw)
	if ans == "" {
		return "", false
	}
	if IsLetter(ans) {
		return strings.ToUpper(ans), true
	}
	for i, opt := range options {
		if strings.EqualFold(ans, strings.TrimSpace(opt)) {
			return Letters[i], true
		}
	}
	for _, ch := range strings.ToUpper(ans) {
		if ch >= 'A' && ch <= 'D' {
			return string(ch), true
		}
	}
	return ans, false
}
