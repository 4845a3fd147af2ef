package engine

import (
	"errors"
	"io"
	"testing"

	"github.com/reoring/skema/value"
)

type sliceSource struct {
	toks []Token
	i    int
}

func (s *sliceSource) NextToken() (Token, error) {
	if s.i >= len(s.toks) {
		return Token{}, io.EOF
	}
	t := s.toks[s.i]
	s.i++
	return t, nil
}

func (s *sliceSource) Location() int64 { return int64(s.i) }

func obj(kv ...Token) []Token {
	out := []Token{{Kind: KindBeginObject}}
	out = append(out, kv...)
	return append(out, Token{Kind: KindEndObject})
}

func key(k string) Token { return Token{Kind: KindKey, String: k} }
func str(s string) Token { return Token{Kind: KindString, String: s} }
func num(n string) Token { return Token{Kind: KindNumber, Number: n} }

func TestDecodeValue_OrderedMap(t *testing.T) {
	toks := obj(key("b"), num("1"), key("a"), Token{Kind: KindNull}, key("b"), str("x"))
	v, err := DecodeValue(&sliceSource{toks: toks})
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := value.Map(value.KV("b", value.String("x")), value.KV("a", value.Null()))
	if !value.Equal(v, want) {
		t.Fatalf("got %v want %v", v, want)
	}
	if keys := v.Keys(); keys[0] != "b" {
		t.Fatalf("first position must be kept: %v", keys)
	}
}

func TestDecodeValue_Errors(t *testing.T) {
	if _, err := DecodeValue(&sliceSource{toks: []Token{{Kind: KindBeginArray}, num("1")}}); !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Fatalf("expected unexpected EOF, got %v", err)
	}
	if _, err := DecodeValue(&sliceSource{toks: []Token{num("1"), num("2")}}); !errors.Is(err, ErrTrailingData) {
		t.Fatalf("expected trailing data error, got %v", err)
	}
	if _, err := DecodeValue(&sliceSource{toks: []Token{num("1e400")}}); err == nil {
		t.Fatalf("expected range error")
	}
}

func TestEnforcement_DuplicateKeys(t *testing.T) {
	toks := []Token{{Kind: KindBeginArray}}
	toks = append(toks, obj(key("a"), num("1"), key("a"), num("2"))...)
	toks = append(toks, Token{Kind: KindEndArray})

	var got []SimpleIssue
	src := WrapWithEnforcement(&sliceSource{toks: toks}, EnforceOptions{
		OnDuplicate: DupWarn,
		IssueSink:   func(si SimpleIssue) { got = append(got, si) },
	})
	if _, err := DecodeValue(src); err != nil {
		t.Fatalf("warn mode must not fail: %v", err)
	}
	if len(got) != 1 || got[0].Code != "duplicate_key" || got[0].Path != "/0/a" {
		t.Fatalf("unexpected issues: %+v", got)
	}

	src = WrapWithEnforcement(&sliceSource{toks: toks}, EnforceOptions{OnDuplicate: DupError})
	_, err := DecodeValue(src)
	var ie IssueError
	if !errors.As(err, &ie) || ie.Code != "duplicate_key" {
		t.Fatalf("expected duplicate_key error, got %v", err)
	}
}

func TestEnforcement_MaxDepthAndBytes(t *testing.T) {
	toks := []Token{{Kind: KindBeginArray}, {Kind: KindBeginArray}, {Kind: KindEndArray}, {Kind: KindEndArray}}
	_, err := DecodeValue(WrapWithEnforcement(&sliceSource{toks: toks}, EnforceOptions{MaxDepth: 1}))
	var ie IssueError
	if !errors.As(err, &ie) || ie.Code != "parse_error" || ie.Path != "/0" {
		t.Fatalf("expected depth error at /0, got %v", err)
	}
	_, err = DecodeValue(WrapWithEnforcement(&sliceSource{toks: toks}, EnforceOptions{MaxBytes: 2}))
	if !errors.As(err, &ie) || ie.Code != "truncated" {
		t.Fatalf("expected truncated, got %v", err)
	}
}

func TestPointer(t *testing.T) {
	base := []Segment{KeySegment("a/b"), IndexSegment(2)}
	x := Append(base, KeySegment("~x"))
	y := Append(base, KeySegment("12"))
	if got := Pointer(x); got != "/a~1b/2/~0x" {
		t.Fatalf("unexpected pointer %q", got)
	}
	if got := Pointer(y); got != "/a~1b/2/12" || y[2].IsIndex {
		t.Fatalf("unexpected pointer %q", got)
	}
	if got := Pointer(nil); got != "/" {
		t.Fatalf("root must render as /, got %q", got)
	}
}
