package value_test

import (
	"math"
	"testing"
	"time"

	json "github.com/goccy/go-json"

	"github.com/reoring/skema/value"
)

func TestValue_AbsentVsNull(t *testing.T) {
	m := value.Map(value.KV("control", value.Null()))
	if !m.Has("control") {
		t.Fatalf("expected key to be present")
	}
	if got := m.Get("control"); !got.IsNull() {
		t.Fatalf("expected null, got %v", got.Kind())
	}
	if got := m.Get("missing"); !got.IsAbsent() {
		t.Fatalf("expected absent for missing key, got %v", got.Kind())
	}
	if m.Has("missing") {
		t.Fatalf("missing key must not be reported as present")
	}
	var zero value.Value
	if !zero.IsAbsent() {
		t.Fatalf("zero value must be absent")
	}
}

func TestValue_MapOrderAndDuplicates(t *testing.T) {
	m := value.Map(
		value.KV("b", value.Number(1)),
		value.KV("a", value.Number(2)),
		value.KV("b", value.Number(3)),
		value.KV("skip", value.Absent()),
	)
	keys := m.Keys()
	if len(keys) != 2 || keys[0] != "b" || keys[1] != "a" {
		t.Fatalf("unexpected keys: %v", keys)
	}
	if n, _ := m.Get("b").AsNumber(); n != 3 {
		t.Fatalf("expected last value to win, got %v", n)
	}
	b, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `{"b":3,"a":2}` {
		t.Fatalf("unexpected json: %s", b)
	}
}

func TestValue_FromAnyAndBack(t *testing.T) {
	created := time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)
	in := map[string]any{
		"url":     "https://example.com",
		"n":       3,
		"f":       1.5,
		"ok":      true,
		"nil":     nil,
		"items":   []any{"x", json.Number("2")},
		"created": created,
	}
	v, err := value.FromAny(in)
	if err != nil {
		t.Fatalf("FromAny: %v", err)
	}
	if v.Kind() != value.KindMap || v.Len() != len(in) {
		t.Fatalf("unexpected value: %v", v)
	}
	if k := v.Get("items").Index(1).Kind(); k != value.KindNumber {
		t.Fatalf("json.Number should become a number, got %v", k)
	}
	if d, ok := v.Get("created").AsDate(); !ok || !d.Equal(created) {
		t.Fatalf("expected date, got %v", v.Get("created"))
	}
	back, err := value.FromAny(v.ToAny())
	if err != nil {
		t.Fatalf("FromAny(ToAny): %v", err)
	}
	if !value.Equal(v, back) {
		t.Fatalf("roundtrip mismatch: %v vs %v", v, back)
	}
	if _, err := value.FromAny(struct{}{}); err == nil {
		t.Fatalf("expected error for unsupported type")
	}
}

func TestValue_EqualIsStrict(t *testing.T) {
	if value.Equal(value.Number(1), value.String("1")) {
		t.Fatalf("number 1 must not equal string \"1\"")
	}
	if value.Equal(value.Null(), value.Absent()) {
		t.Fatalf("null must not equal absent")
	}
	a := value.Map(value.KV("x", value.Number(1)), value.KV("y", value.Bool(true)))
	b := value.Map(value.KV("y", value.Bool(true)), value.KV("x", value.Number(1)))
	if !value.Equal(a, b) {
		t.Fatalf("mappings should compare irrespective of order")
	}
}

func TestValue_NonFinite(t *testing.T) {
	v := value.Number(math.Inf(1))
	if v.IsFinite() {
		t.Fatalf("inf is not finite")
	}
	if _, err := v.MarshalJSON(); err == nil {
		t.Fatalf("expected marshal error for inf")
	}
	if s := v.String(); s != "+Inf" {
		t.Fatalf("unexpected render: %s", s)
	}
}
