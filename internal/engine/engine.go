// Package engine turns token streams from input decoders into value trees.
package engine

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/reoring/skema/value"
)

// Kind represents token kinds from a generic source.
type Kind int

const (
	KindBeginObject Kind = iota
	KindEndObject
	KindBeginArray
	KindEndArray
	KindKey
	KindString
	KindNumber
	KindBool
	KindNull
)

// Token represents a streaming token with approximate input offset.
type Token struct {
	Kind   Kind
	String string
	Number string
	Bool   bool
	Offset int64
}

// TokenSource is a minimal interface required by the engine.
type TokenSource interface {
	NextToken() (Token, error)
	Location() int64
}

// ErrTrailingData is returned when a document holds more than one root value.
var ErrTrailingData = errors.New("unexpected data after top-level value")

// DecodeValue builds one value tree from src and requires the stream to end
// afterwards. Mapping keys keep input order; a repeated key keeps its first
// position and its last value.
func DecodeValue(src TokenSource) (value.Value, error) {
	tok, err := src.NextToken()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return value.Value{}, io.ErrUnexpectedEOF
		}
		return value.Value{}, err
	}
	v, err := decodeValue(src, tok)
	if err != nil {
		return value.Value{}, err
	}
	if _, err := src.NextToken(); !errors.Is(err, io.EOF) {
		if err != nil {
			return value.Value{}, err
		}
		return value.Value{}, ErrTrailingData
	}
	return v, nil
}

func decodeValue(src TokenSource, tok Token) (value.Value, error) {
	switch tok.Kind {
	case KindBeginObject:
		return decodeObject(src)
	case KindBeginArray:
		return decodeArray(src)
	case KindString:
		return value.String(tok.String), nil
	case KindNumber:
		f, err := strconv.ParseFloat(tok.Number, 64)
		if err != nil || math.IsInf(f, 0) {
			return value.Value{}, fmt.Errorf("number %q out of range", tok.Number)
		}
		return value.Number(f), nil
	case KindBool:
		return value.Bool(tok.Bool), nil
	case KindNull:
		return value.Null(), nil
	default:
		return value.Value{}, io.ErrUnexpectedEOF
	}
}

func decodeObject(src TokenSource) (value.Value, error) {
	var entries []value.Entry
	for {
		tok, err := src.NextToken()
		if err != nil {
			return value.Value{}, eofIsUnexpected(err)
		}
		if tok.Kind == KindEndObject {
			return value.Map(entries...), nil
		}
		if tok.Kind != KindKey {
			return value.Value{}, io.ErrUnexpectedEOF
		}
		vt, err := src.NextToken()
		if err != nil {
			return value.Value{}, eofIsUnexpected(err)
		}
		v, err := decodeValue(src, vt)
		if err != nil {
			return value.Value{}, err
		}
		entries = append(entries, value.KV(tok.String, v))
	}
}

func decodeArray(src TokenSource) (value.Value, error) {
	items := []value.Value{}
	for {
		tok, err := src.NextToken()
		if err != nil {
			return value.Value{}, eofIsUnexpected(err)
		}
		if tok.Kind == KindEndArray {
			return value.Seq(items...), nil
		}
		v, err := decodeValue(src, tok)
		if err != nil {
			return value.Value{}, err
		}
		items = append(items, v)
	}
}

func eofIsUnexpected(err error) error {
	if errors.Is(err, io.EOF) {
		return io.ErrUnexpectedEOF
	}
	return err
}
