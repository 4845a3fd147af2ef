package skema

import (
	"fmt"
	"sort"
	"time"

	"github.com/reoring/skema/value"
)

// Variant is the output of a discriminated union: the selected tag and the
// member object's fields (the tag field included).
type Variant struct {
	Tag    string
	Fields map[string]any
}

// Choice is the output of a heterogeneous union: the position of the member
// that matched and its output.
type Choice struct {
	Member int
	Value  any
}

// Unset is the type of NotSet.
type Unset struct{}

// NotSet is returned when the root schema is optional and the input was
// absent. Absent optional fields inside objects are simply left out.
var NotSet = Unset{}

// ToValue converts generic output back into a value tree. Validating the
// result against the same schema yields identical output. Object keys are
// written in sorted order.
func ToValue(out any) (value.Value, error) {
	switch t := out.(type) {
	case nil:
		return value.Null(), nil
	case Unset, notSetMarker:
		return value.Absent(), nil
	case string:
		return value.String(t), nil
	case float64:
		return value.Number(t), nil
	case bool:
		return value.Bool(t), nil
	case time.Time:
		return value.Date(t), nil
	case Variant:
		return ToValue(t.Fields)
	case *Variant:
		return ToValue(t.Fields)
	case Choice:
		return ToValue(t.Value)
	case *Choice:
		return ToValue(t.Value)
	case []any:
		items := make([]value.Value, len(t))
		for i, it := range t {
			v, err := ToValue(it)
			if err != nil {
				return value.Value{}, fmt.Errorf("[%d]: %w", i, err)
			}
			items[i] = v
		}
		return value.Seq(items...), nil
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		entries := make([]value.Entry, 0, len(keys))
		for _, k := range keys {
			v, err := ToValue(t[k])
			if err != nil {
				return value.Value{}, fmt.Errorf("%s: %w", k, err)
			}
			entries = append(entries, value.KV(k, v))
		}
		return value.Map(entries...), nil
	}
	return value.FromAny(out)
}

// MustToValue is like ToValue but panics on error.
func MustToValue(out any) value.Value {
	v, err := ToValue(out)
	if err != nil {
		panic(err)
	}
	return v
}
