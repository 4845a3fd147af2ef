package dsl

import "github.com/reoring/skema/value"

// Kind identifies a schema node type.
type Kind int

const (
	KindPrimitive Kind = iota
	KindLiteral
	KindEnum
	KindOptional
	KindNullable
	KindArray
	KindObject
	KindDiscriminatedUnion
	KindUnion
)

// Schema is the sealed interface implemented by every schema node.
type Schema interface {
	Kind() Kind
	sealed()
}

// PrimitiveType enumerates primitive schemas.
type PrimitiveType int

const (
	TypeString PrimitiveType = iota
	TypeNumber
	TypeBool
	TypeDate
)

func (p PrimitiveType) String() string {
	switch p {
	case TypeString:
		return "string"
	case TypeNumber:
		return "number"
	case TypeBool:
		return "boolean"
	case TypeDate:
		return "date"
	}
	return "unknown"
}

// UnknownPolicy controls how keys not declared by an object schema are handled.
type UnknownPolicy int

const (
	UnknownStrip       UnknownPolicy = iota // Ignore unknown keys (default).
	UnknownStrict                           // Reject unknown keys with an issue.
	UnknownPassthrough                      // Keep unknown keys under a target key of the output.
)

// PrimitiveSchema matches a value of one primitive kind.
type PrimitiveSchema struct{ typ PrimitiveType }

func (*PrimitiveSchema) Kind() Kind { return KindPrimitive }
func (*PrimitiveSchema) sealed()    {}

// Type returns the primitive type.
func (p *PrimitiveSchema) Type() PrimitiveType { return p.typ }

// LiteralSchema matches exactly one scalar value under strict equality.
type LiteralSchema struct{ v value.Value }

func (*LiteralSchema) Kind() Kind { return KindLiteral }
func (*LiteralSchema) sealed()    {}

// Value returns the literal value.
func (l *LiteralSchema) Value() value.Value { return l.v }

// EnumSchema matches one of a fixed set of strings.
type EnumSchema struct {
	members []string
	set     map[string]struct{}
}

func (*EnumSchema) Kind() Kind { return KindEnum }
func (*EnumSchema) sealed()    {}

// Members returns the members in declaration order.
func (e *EnumSchema) Members() []string { return append([]string(nil), e.members...) }

// Contains reports whether s is a member.
func (e *EnumSchema) Contains(s string) bool {
	_, ok := e.set[s]
	return ok
}

// OptionalSchema lets a value be absent.
type OptionalSchema struct{ inner Schema }

func (*OptionalSchema) Kind() Kind { return KindOptional }
func (*OptionalSchema) sealed()    {}

// Inner returns the wrapped schema.
func (o *OptionalSchema) Inner() Schema { return o.inner }

// NullableSchema lets a value be an explicit null.
type NullableSchema struct{ inner Schema }

func (*NullableSchema) Kind() Kind { return KindNullable }
func (*NullableSchema) sealed()    {}

// Inner returns the wrapped schema.
func (n *NullableSchema) Inner() Schema { return n.inner }

// ArraySchema matches a sequence whose elements all match Elem.
type ArraySchema struct{ elem Schema }

func (*ArraySchema) Kind() Kind { return KindArray }
func (*ArraySchema) sealed()    {}

// Elem returns the element schema.
func (a *ArraySchema) Elem() Schema { return a.elem }

// Field is one declared object field.
type Field struct {
	Name   string
	Schema Schema
}

// Required reports whether the field must be present.
func (f Field) Required() bool { return !IsOptional(f.Schema) }

// ObjectSchema matches a mapping with declared fields.
type ObjectSchema struct {
	fields        []Field
	index         map[string]int
	unknown       UnknownPolicy
	unknownTarget string
}

func (*ObjectSchema) Kind() Kind { return KindObject }
func (*ObjectSchema) sealed()    {}

// Fields returns the declared fields in declaration order.
func (o *ObjectSchema) Fields() []Field { return append([]Field(nil), o.fields...) }

// NumFields returns the number of declared fields.
func (o *ObjectSchema) NumFields() int { return len(o.fields) }

// FieldAt returns the i-th declared field.
func (o *ObjectSchema) FieldAt(i int) Field { return o.fields[i] }

// Lookup returns the schema of a declared field.
func (o *ObjectSchema) Lookup(name string) (Schema, bool) {
	i, ok := o.index[name]
	if !ok {
		return nil, false
	}
	return o.fields[i].Schema, true
}

// Unknown returns the unknown-key policy and, for passthrough, the output key
// receiving unknown entries.
func (o *ObjectSchema) Unknown() (UnknownPolicy, string) { return o.unknown, o.unknownTarget }

// DiscriminatedUnionSchema selects one object member by the string value of
// a tag field.
type DiscriminatedUnionSchema struct {
	tag      string
	tags     []string
	members  []*ObjectSchema
	byTag    map[string]int
	unitOnly bool
}

func (*DiscriminatedUnionSchema) Kind() Kind { return KindDiscriminatedUnion }
func (*DiscriminatedUnionSchema) sealed()    {}

// Tag returns the discriminator field name.
func (d *DiscriminatedUnionSchema) Tag() string { return d.tag }

// Tags returns the selector values in declaration order.
func (d *DiscriminatedUnionSchema) Tags() []string { return append([]string(nil), d.tags...) }

// Member returns the object schema selected by tag.
func (d *DiscriminatedUnionSchema) Member(tag string) (*ObjectSchema, bool) {
	i, ok := d.byTag[tag]
	if !ok {
		return nil, false
	}
	return d.members[i], true
}

// UnitOnly reports whether every member declares nothing but the tag field.
// Such a union is equivalent to an enum over its tags.
func (d *DiscriminatedUnionSchema) UnitOnly() bool { return d.unitOnly }

// UnionSchema matches the first member, in declaration order, that the value
// fully validates against.
type UnionSchema struct{ members []Schema }

func (*UnionSchema) Kind() Kind { return KindUnion }
func (*UnionSchema) sealed()    {}

// Members returns the members in declaration order.
func (u *UnionSchema) Members() []Schema { return append([]Schema(nil), u.members...) }

// NumMembers returns the number of members.
func (u *UnionSchema) NumMembers() int { return len(u.members) }

// MemberAt returns the i-th member.
func (u *UnionSchema) MemberAt(i int) Schema { return u.members[i] }

// IsOptional reports whether s accepts an absent value.
func IsOptional(s Schema) bool {
	switch t := s.(type) {
	case *OptionalSchema:
		return true
	case *NullableSchema:
		return IsOptional(t.inner)
	}
	return false
}
