// Package cbor decodes a CBOR data item into a value tree with
// fxamacker/cbor. Tag 0 and tag 1 timestamps become date values. Mapping
// keys must be text strings; mappings come out ordered by key since CBOR
// maps decode into Go maps.
package cbor

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/fxamacker/cbor/v2"

	eng "github.com/reoring/skema/internal/engine"
	"github.com/reoring/skema/value"
)

const maxNestedLevels = 65535

// Decode reads exactly one CBOR data item from data.
func Decode(data []byte, opt eng.EnforceOptions) (value.Value, error) {
	if opt.MaxBytes > 0 && int64(len(data)) > opt.MaxBytes {
		return value.Value{}, issue("truncated", nil, "max bytes exceeded")
	}
	dm, err := decMode(opt)
	if err != nil {
		return value.Value{}, err
	}
	var raw any
	if err := dm.Unmarshal(data, &raw); err != nil {
		var dup *cbor.DupMapKeyError
		if errors.As(err, &dup) {
			return value.Value{}, issue("duplicate_key", nil, fmt.Sprintf("key '%v' duplicated", dup.Key))
		}
		var deep *cbor.MaxNestedLevelError
		if errors.As(err, &deep) {
			return value.Value{}, issue("parse_error", nil, "max depth exceeded")
		}
		return value.Value{}, err
	}
	v, err := value.FromAny(raw)
	if err != nil {
		return value.Value{}, fmt.Errorf("cbor: %w", err)
	}
	if opt.MaxDepth > 0 {
		if p, over := tooDeep(v, nil, 0, opt.MaxDepth); over {
			return value.Value{}, issue("parse_error", p, "max depth exceeded")
		}
	}
	return v, nil
}

func decMode(opt eng.EnforceOptions) (cbor.DecMode, error) {
	dup := cbor.DupMapKeyQuiet
	if opt.OnDuplicate == eng.DupError || (opt.FailFast && opt.OnDuplicate != eng.DupIgnore) {
		dup = cbor.DupMapKeyEnforcedAPF
	}
	return cbor.DecOptions{
		DupMapKey:       dup,
		MaxNestedLevels: maxNestedLevels,
		DefaultMapType:  reflect.TypeOf(map[string]any(nil)),
		TimeTagToAny:    cbor.TimeTagToTime,
	}.DecMode()
}

func tooDeep(v value.Value, at []eng.Segment, depth, limit int) ([]eng.Segment, bool) {
	switch v.Kind() {
	case value.KindMap:
		if depth+1 > limit {
			return at, true
		}
		for _, e := range v.Entries() {
			if p, over := tooDeep(e.Value, eng.Append(at, eng.KeySegment(e.Key)), depth+1, limit); over {
				return p, true
			}
		}
	case value.KindSeq:
		if depth+1 > limit {
			return at, true
		}
		for i, it := range v.Items() {
			if p, over := tooDeep(it, eng.Append(at, eng.IndexSegment(i)), depth+1, limit); over {
				return p, true
			}
		}
	}
	return nil, false
}

func issue(code string, at []eng.Segment, msg string) error {
	return eng.IssueError{SimpleIssue: eng.NewIssue(code, at, msg)}
}
