package dsl

import (
	"strconv"

	"github.com/reoring/skema/value"
)

var (
	stringSchema = &PrimitiveSchema{typ: TypeString}
	numberSchema = &PrimitiveSchema{typ: TypeNumber}
	boolSchema   = &PrimitiveSchema{typ: TypeBool}
	dateSchema   = &PrimitiveSchema{typ: TypeDate}
)

// String returns the string primitive schema.
func String() *PrimitiveSchema { return stringSchema }

// Number returns the finite number primitive schema.
func Number() *PrimitiveSchema { return numberSchema }

// Bool returns the boolean primitive schema.
func Bool() *PrimitiveSchema { return boolSchema }

// Date returns the date primitive schema. It accepts a date value or an
// RFC 3339 string.
func Date() *PrimitiveSchema { return dateSchema }

// LiteralString matches exactly s.
func LiteralString(s string) *LiteralSchema { return &LiteralSchema{v: value.String(s)} }

// LiteralNumber matches exactly n.
func LiteralNumber(n float64) *LiteralSchema { return &LiteralSchema{v: value.Number(n)} }

// LiteralBool matches exactly b.
func LiteralBool(b bool) *LiteralSchema { return &LiteralSchema{v: value.Bool(b)} }

// Enum builds a string enum. Members must be unique and at least one is required.
func Enum(members ...string) (*EnumSchema, error) {
	if len(members) == 0 {
		return nil, schemaErr("Enum", ErrEmptyEnum, "")
	}
	set := make(map[string]struct{}, len(members))
	for _, m := range members {
		if _, dup := set[m]; dup {
			return nil, schemaErr("Enum", ErrDuplicateEnumMember, strconv.Quote(m))
		}
		set[m] = struct{}{}
	}
	return &EnumSchema{members: append([]string(nil), members...), set: set}, nil
}

// MustEnum is like Enum but panics on error.
func MustEnum(members ...string) *EnumSchema {
	e, err := Enum(members...)
	if err != nil {
		panic(err)
	}
	return e
}

// Optional allows s to be absent. Optional(Optional(x)) is Optional(x).
func Optional(s Schema) Schema {
	mustSchema("Optional", s)
	if o, ok := s.(*OptionalSchema); ok {
		return o
	}
	return &OptionalSchema{inner: s}
}

// Nullable allows s to be an explicit null. Nullable(Nullable(x)) is Nullable(x).
func Nullable(s Schema) Schema {
	mustSchema("Nullable", s)
	if n, ok := s.(*NullableSchema); ok {
		return n
	}
	return &NullableSchema{inner: s}
}

// Array matches a sequence of elem.
func Array(elem Schema) *ArraySchema {
	mustSchema("Array", elem)
	return &ArraySchema{elem: elem}
}

func mustSchema(op string, s Schema) {
	if s == nil {
		panic("dsl: " + op + ": nil schema")
	}
}
