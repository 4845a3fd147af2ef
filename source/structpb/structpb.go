// Package structpb converts protobuf Struct/Value messages, as carried by
// gRPC and Connect payloads, into value trees.
package structpb

import (
	"fmt"
	"sort"

	spb "google.golang.org/protobuf/types/known/structpb"

	eng "github.com/reoring/skema/internal/engine"
	"github.com/reoring/skema/value"
)

// Decode converts v. A nil message or a Value without a kind is null.
// Struct fields come out ordered by key.
func Decode(v *spb.Value, opt eng.EnforceOptions) (value.Value, error) {
	return convert(v, nil, 0, opt)
}

// DecodeStruct converts a Struct message into a mapping.
func DecodeStruct(s *spb.Struct, opt eng.EnforceOptions) (value.Value, error) {
	return convert(spb.NewStructValue(s), nil, 0, opt)
}

func convert(v *spb.Value, at []eng.Segment, depth int, opt eng.EnforceOptions) (value.Value, error) {
	switch k := v.GetKind().(type) {
	case nil, *spb.Value_NullValue:
		return value.Null(), nil
	case *spb.Value_BoolValue:
		return value.Bool(k.BoolValue), nil
	case *spb.Value_NumberValue:
		return value.Number(k.NumberValue), nil
	case *spb.Value_StringValue:
		return value.String(k.StringValue), nil
	case *spb.Value_ListValue:
		if err := checkDepth(at, depth+1, opt); err != nil {
			return value.Value{}, err
		}
		vals := k.ListValue.GetValues()
		items := make([]value.Value, len(vals))
		for i, it := range vals {
			c, err := convert(it, eng.Append(at, eng.IndexSegment(i)), depth+1, opt)
			if err != nil {
				return value.Value{}, err
			}
			items[i] = c
		}
		return value.Seq(items...), nil
	case *spb.Value_StructValue:
		if err := checkDepth(at, depth+1, opt); err != nil {
			return value.Value{}, err
		}
		fields := k.StructValue.GetFields()
		keys := make([]string, 0, len(fields))
		for key := range fields {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		entries := make([]value.Entry, 0, len(keys))
		for _, key := range keys {
			c, err := convert(fields[key], eng.Append(at, eng.KeySegment(key)), depth+1, opt)
			if err != nil {
				return value.Value{}, err
			}
			entries = append(entries, value.KV(key, c))
		}
		return value.Map(entries...), nil
	}
	return value.Value{}, fmt.Errorf("structpb: unsupported kind %T", v.GetKind())
}

func checkDepth(at []eng.Segment, depth int, opt eng.EnforceOptions) error {
	if opt.MaxDepth > 0 && depth > opt.MaxDepth {
		return eng.IssueError{SimpleIssue: eng.NewIssue("parse_error", at, "max depth exceeded")}
	}
	return nil
}
