package strings

import (
	stdstrings "strings"
)

// TrimSpace returns a trimmed view of the string (no allocation via bounds check).
// Removes leading and trailing whitespace: space, tab, carriage return, and newline.
//
// ASCII-only whitespace checking is sufficient for stylesheet sources and is
// measurably faster than the standard library's Unicode-aware version, which
// matters in the tokenizer hot path.
func TrimSpace(s string) string {
	start := 0
	end := len(s)

	for start < end && isSpace(s[start]) {
		start++
	}

	for end > start && isSpace(s[end-1]) {
		end--
	}

	return s[start:end]
}

// isSpace checks if a byte is ASCII whitespace (space, tab, carriage return, or newline).
func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\r' || b == '\n'
}

// IsQuoted reports whether s is wrapped in matching single or double quotes.
func IsQuoted(s string) bool {
	return len(s) >= 2 &&
		((s[0] == '"' && s[len(s)-1] == '"') ||
			(s[0] == '\'' && s[len(s)-1] == '\''))
}

// Unquote strips one level of matching quotes and unescapes the quote
// character inside. Strings that are not quoted are returned unchanged.
func Unquote(s string) string {
	if !IsQuoted(s) {
		return s
	}
	quote := s[0]
	body := s[1 : len(s)-1]
	if !stdstrings.ContainsRune(body, '\\') {
		return body
	}

	var b Builder
	b.Grow(len(body))
	for i := 0; i < len(body); i++ {
		if body[i] == '\\' && i+1 < len(body) && body[i+1] == quote {
			i++
		}
		b.WriteByte(body[i])
	}
	return b.String()
}

// Builder is an alias for strings.Builder for efficient string concatenation
type Builder = stdstrings.Builder

// Aliases for commonly used strings functions
var (

	// HasPrefix tests whether the string s begins with prefix.
	HasPrefix = stdstrings.HasPrefix

	// HasSuffix tests whether the string s ends with suffix.
	HasSuffix = stdstrings.HasSuffix

	// Contains reports whether substr is within s.
	Contains = stdstrings.Contains

	// Index returns the index of the first instance of substr in s, or -1 if substr is not present in s.
	Index = stdstrings.Index

	// TrimPrefix returns s without the provided leading prefix string. If s doesn't start with prefix, s is returned unchanged.
	TrimPrefix = stdstrings.TrimPrefix

	// TrimSuffix returns s without the provided trailing suffix string. If s doesn't end with suffix, s is returned unchanged.
	TrimSuffix = stdstrings.TrimSuffix

	// Split slices s into all substrings separated by sep and returns a slice of the substrings between those separators.
	Split = stdstrings.Split

	// Join concatenates the elements of its first argument to create a single string. The separator string sep is placed between elements in the resulting string.
	Join = stdstrings.Join

	// ReplaceAll returns a copy of the string s with all non-overlapping instances of old replaced by new.
	ReplaceAll = stdstrings.ReplaceAll

	// ToLower returns s with all Unicode letters mapped to their lower case.
	ToLower = stdstrings.ToLower

	// EqualFold reports whether s and t are equal under simple Unicode case-folding.
	EqualFold = stdstrings.EqualFold
)
