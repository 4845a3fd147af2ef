package codec

import (
	"strings"
	"time"
)

// ParseTime parses an RFC 3339 timestamp. Fractional seconds are optional
// (RFC3339Nano with trailing zeros trimmed is accepted). Date-only or
// zone-less inputs are rejected.
func ParseTime(s string) (time.Time, error) {
	// Go's parser accepts a lowercase "t"/"z" only in some layouts; normalize
	// so that both spellings allowed by RFC 3339 section 5.6 behave the same.
	s = strings.Map(func(r rune) rune {
		switch r {
		case 't':
			return 'T'
		case 'z':
			return 'Z'
		}
		return r
	}, s)
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		if t2, err2 := time.Parse(time.RFC3339, s); err2 == nil {
			return t2, nil
		}
		return time.Time{}, err
	}
	return t, nil
}

// FormatTime renders t in canonical form: UTC, RFC3339Nano (Go trims
// trailing zeros).
func FormatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

// IsTime reports whether s is a well-formed RFC 3339 timestamp.
func IsTime(s string) bool {
	_, err := ParseTime(s)
	return err == nil
}
