// Package json adapts goccy/go-json's token decoder to the engine's
// TokenSource so untrusted JSON can be decoded with duplicate-key, depth
// and size enforcement applied while tokens stream. The token decoder does
// not check separators, so a document is syntax-checked as a whole before
// it is tokenized.
package json

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"

	gojson "github.com/goccy/go-json"

	eng "github.com/reoring/skema/internal/engine"
	"github.com/reoring/skema/value"
)

type frame struct {
	object  bool
	wantKey bool
}

type source struct {
	dec   *gojson.Decoder
	stack []frame
	off   int64
}

// NewReader wraps r into an engine.TokenSource.
func NewReader(r io.Reader) eng.TokenSource {
	dec := gojson.NewDecoder(r)
	dec.UseNumber()
	return &source{dec: dec, off: -1}
}

// NewBytes wraps b into an engine.TokenSource.
func NewBytes(b []byte) eng.TokenSource { return NewReader(bytes.NewReader(b)) }

// ErrSyntax reports input that is not a single well-formed JSON document.
var ErrSyntax = errors.New("json: invalid syntax")

// Decode reads exactly one JSON document into a value tree. At most
// MaxBytes+1 bytes are read from r when MaxBytes is set.
func Decode(r io.Reader, opt eng.EnforceOptions) (value.Value, error) {
	if opt.MaxBytes > 0 {
		r = io.LimitReader(r, opt.MaxBytes+1)
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return value.Value{}, err
	}
	return DecodeBytes(b, opt)
}

// DecodeBytes decodes exactly one JSON document held in b.
func DecodeBytes(b []byte, opt eng.EnforceOptions) (value.Value, error) {
	if opt.MaxBytes > 0 && int64(len(b)) > opt.MaxBytes {
		return value.Value{}, eng.IssueError{SimpleIssue: eng.NewIssue("truncated", nil, "max bytes exceeded")}
	}
	if !gojson.Valid(b) {
		return value.Value{}, syntaxError(b)
	}
	return eng.DecodeValue(eng.WrapWithEnforcement(NewBytes(b), opt))
}

func syntaxError(b []byte) error {
	var v any
	if err := gojson.Unmarshal(b, &v); err != nil {
		return fmt.Errorf("%w: %v", ErrSyntax, err)
	}
	return ErrSyntax
}

func (s *source) NextToken() (eng.Token, error) {
	tok, err := s.dec.Token()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return eng.Token{}, io.EOF
		}
		return eng.Token{}, err
	}
	s.off = s.dec.InputOffset()

	switch v := tok.(type) {
	case gojson.Delim:
		switch v {
		case '{':
			s.stack = append(s.stack, frame{object: true, wantKey: true})
			return s.token(eng.KindBeginObject), nil
		case '[':
			s.stack = append(s.stack, frame{})
			return s.token(eng.KindBeginArray), nil
		case '}':
			s.pop()
			return s.token(eng.KindEndObject), nil
		case ']':
			s.pop()
			return s.token(eng.KindEndArray), nil
		}
	case string:
		if n := len(s.stack); n > 0 && s.stack[n-1].object && s.stack[n-1].wantKey {
			s.stack[n-1].wantKey = false
			t := s.token(eng.KindKey)
			t.String = v
			return t, nil
		}
		s.scalarDone()
		t := s.token(eng.KindString)
		t.String = v
		return t, nil
	case bool:
		s.scalarDone()
		t := s.token(eng.KindBool)
		t.Bool = v
		return t, nil
	case gojson.Number:
		s.scalarDone()
		t := s.token(eng.KindNumber)
		t.Number = string(v)
		return t, nil
	case float64:
		s.scalarDone()
		t := s.token(eng.KindNumber)
		t.Number = strconv.FormatFloat(v, 'g', -1, 64)
		return t, nil
	}
	s.scalarDone()
	return s.token(eng.KindNull), nil
}

func (s *source) Location() int64 { return s.off }

func (s *source) token(k eng.Kind) eng.Token { return eng.Token{Kind: k, Offset: s.off} }

func (s *source) pop() {
	if n := len(s.stack); n > 0 {
		s.stack = s.stack[:n-1]
	}
	s.scalarDone()
}

// scalarDone flips the enclosing object back to expecting a key.
func (s *source) scalarDone() {
	if n := len(s.stack); n > 0 && s.stack[n-1].object {
		s.stack[n-1].wantKey = true
	}
}
