package engine

import (
	"strconv"
	"strings"
)

// Segment is one step of a location: an object key or a sequence index.
// Keeping the two apart lets a key such as "123" render as a key.
type Segment struct {
	Key     string
	Index   int
	IsIndex bool
}

// KeySegment returns an object key step.
func KeySegment(k string) Segment { return Segment{Key: k} }

// IndexSegment returns a sequence index step.
func IndexSegment(i int) Segment { return Segment{Index: i, IsIndex: true} }

// Append returns segs extended with s. The input is never modified, so
// siblings may extend the same prefix.
func Append(segs []Segment, s Segment) []Segment {
	out := make([]Segment, len(segs)+1)
	copy(out, segs)
	out[len(segs)] = s
	return out
}

var pointerEscaper = strings.NewReplacer("~", "~0", "/", "~1")

// Pointer renders segs as a JSON Pointer ("/" for the root).
func Pointer(segs []Segment) string {
	if len(segs) == 0 {
		return "/"
	}
	var sb strings.Builder
	for _, s := range segs {
		sb.WriteByte('/')
		if s.IsIndex {
			sb.WriteString(strconv.Itoa(s.Index))
			continue
		}
		sb.WriteString(pointerEscaper.Replace(s.Key))
	}
	return sb.String()
}

// NewIssue builds a SimpleIssue located at segs.
func NewIssue(code string, at []Segment, msg string) SimpleIssue {
	return SimpleIssue{Code: code, Path: Pointer(at), At: at, Message: msg}
}
