// Package value defines the untyped tree that decoders produce and the
// validation engine consumes.
//
// A Value is one of: absent, null, boolean, number, string, date, sequence or
// mapping. The zero Value is absent. Absence (a key that is not present) is a
// distinct state from an explicit null; Mapping.Get returns an absent Value
// for missing keys so optional-field handling never has to guess.
//
// Values are immutable once constructed: constructors copy their inputs and
// accessors return copies of internal slices.
package value

import (
	"math"
	"time"
)

// Kind identifies the runtime kind of a Value.
type Kind uint8

const (
	KindAbsent Kind = iota
	KindNull
	KindBool
	KindNumber
	KindString
	KindDate
	KindSeq
	KindMap
)

var kindNames = [...]string{
	KindAbsent: "absent",
	KindNull:   "null",
	KindBool:   "boolean",
	KindNumber: "number",
	KindString: "string",
	KindDate:   "date",
	KindSeq:    "array",
	KindMap:    "object",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Value is a node of the decoded-but-unvalidated input tree.
type Value struct {
	kind  Kind
	b     bool
	n     float64
	s     string
	t     time.Time
	items []Value
	m     *mapping
}

// Entry is one key/value pair of a mapping.
type Entry struct {
	Key   string
	Value Value
}

type mapping struct {
	entries []Entry
	index   map[string]int
}

// Absent returns the absent value (same as the zero Value).
func Absent() Value { return Value{} }

// Null returns an explicit null.
func Null() Value { return Value{kind: KindNull} }

// Bool wraps a boolean.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Number wraps a float64. Non-finite numbers are representable so that
// callers building trees by hand can exercise the engine's finiteness check.
func Number(n float64) Value { return Value{kind: KindNumber, n: n} }

// String wraps a string.
func String(s string) Value { return Value{kind: KindString, s: s} }

// Date wraps a timestamp.
func Date(t time.Time) Value { return Value{kind: KindDate, t: t} }

// Seq builds a sequence. Absent elements are stored as null since a
// sequence slot cannot be missing.
func Seq(items ...Value) Value {
	cp := make([]Value, len(items))
	for i, it := range items {
		if it.kind == KindAbsent {
			it = Null()
		}
		cp[i] = it
	}
	return Value{kind: KindSeq, items: cp}
}

// KV is shorthand for an Entry literal.
func KV(key string, v Value) Entry { return Entry{Key: key, Value: v} }

// Map builds a mapping preserving the order of first appearance. A repeated
// key keeps its first position and takes the last value. Entries holding an
// absent value are dropped: an absent entry is indistinguishable from a
// missing key.
func Map(entries ...Entry) Value {
	m := &mapping{entries: make([]Entry, 0, len(entries)), index: make(map[string]int, len(entries))}
	for _, e := range entries {
		if e.Value.kind == KindAbsent {
			continue
		}
		if i, ok := m.index[e.Key]; ok {
			m.entries[i].Value = e.Value
			continue
		}
		m.index[e.Key] = len(m.entries)
		m.entries = append(m.entries, e)
	}
	return Value{kind: KindMap, m: m}
}

// Kind returns the runtime kind.
func (v Value) Kind() Kind { return v.kind }

// IsAbsent reports whether v is the absent value.
func (v Value) IsAbsent() bool { return v.kind == KindAbsent }

// IsNull reports whether v is an explicit null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// AsBool returns the boolean payload.
func (v Value) AsBool() (bool, bool) { return v.b, v.kind == KindBool }

// AsNumber returns the numeric payload.
func (v Value) AsNumber() (float64, bool) { return v.n, v.kind == KindNumber }

// IsFinite reports whether v is a finite number.
func (v Value) IsFinite() bool {
	return v.kind == KindNumber && !math.IsNaN(v.n) && !math.IsInf(v.n, 0)
}

// AsString returns the string payload.
func (v Value) AsString() (string, bool) { return v.s, v.kind == KindString }

// AsDate returns the timestamp payload.
func (v Value) AsDate() (time.Time, bool) { return v.t, v.kind == KindDate }

// Len returns the number of elements of a sequence or entries of a mapping.
func (v Value) Len() int {
	switch v.kind {
	case KindSeq:
		return len(v.items)
	case KindMap:
		return len(v.m.entries)
	}
	return 0
}

// Index returns the i-th element of a sequence, or absent when out of range.
func (v Value) Index(i int) Value {
	if v.kind != KindSeq || i < 0 || i >= len(v.items) {
		return Value{}
	}
	return v.items[i]
}

// Items returns a copy of the sequence elements.
func (v Value) Items() []Value {
	if v.kind != KindSeq {
		return nil
	}
	return append([]Value(nil), v.items...)
}

// Entries returns a copy of the mapping entries in insertion order.
func (v Value) Entries() []Entry {
	if v.kind != KindMap {
		return nil
	}
	return append([]Entry(nil), v.m.entries...)
}

// Keys returns mapping keys in insertion order.
func (v Value) Keys() []string {
	if v.kind != KindMap {
		return nil
	}
	out := make([]string, len(v.m.entries))
	for i, e := range v.m.entries {
		out[i] = e.Key
	}
	return out
}

// Get returns the value stored under key. It returns the absent value when v
// is not a mapping or the key is missing; an explicit null stays null.
func (v Value) Get(key string) Value {
	if v.kind != KindMap {
		return Value{}
	}
	if i, ok := v.m.index[key]; ok {
		return v.m.entries[i].Value
	}
	return Value{}
}

// Has reports whether the mapping contains key (null values count as present).
func (v Value) Has(key string) bool {
	if v.kind != KindMap {
		return false
	}
	_, ok := v.m.index[key]
	return ok
}

// Equal reports strict structural equality: kinds must match exactly (no
// number/string coercion), mappings compare irrespective of key order, and
// dates compare as instants.
func Equal(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindAbsent, KindNull:
		return true
	case KindBool:
		return a.b == b.b
	case KindNumber:
		return a.n == b.n
	case KindString:
		return a.s == b.s
	case KindDate:
		return a.t.Equal(b.t)
	case KindSeq:
		if len(a.items) != len(b.items) {
			return false
		}
		for i := range a.items {
			if !Equal(a.items[i], b.items[i]) {
				return false
			}
		}
		return true
	case KindMap:
		if len(a.m.entries) != len(b.m.entries) {
			return false
		}
		for _, e := range a.m.entries {
			j, ok := b.m.index[e.Key]
			if !ok || !Equal(e.Value, b.m.entries[j].Value) {
				return false
			}
		}
		return true
	}
	return false
}
