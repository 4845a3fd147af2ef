package dsl

import "strconv"

// UnionVariant pairs a selector key with its member object.
type UnionVariant struct {
	key    string
	schema *ObjectSchema
}

// Variant constructs a UnionVariant. The member must declare the tag field
// as LiteralString(key).
func Variant(key string, s *ObjectSchema) UnionVariant {
	return UnionVariant{key: key, schema: s}
}

// UnionBuilder builds a discriminated union with explicit selector keys.
type UnionBuilder struct {
	tag      string
	variants []UnionVariant
}

// Discriminated starts a discriminated union on tag.
func Discriminated(tag string) *UnionBuilder { return &UnionBuilder{tag: tag} }

// OneOf appends variants in declaration order.
func (b *UnionBuilder) OneOf(vars ...UnionVariant) *UnionBuilder {
	b.variants = append(b.variants, vars...)
	return b
}

// Build validates the variants and returns the union schema.
func (b *UnionBuilder) Build() (*DiscriminatedUnionSchema, error) {
	members := make([]*ObjectSchema, 0, len(b.variants))
	for _, v := range b.variants {
		if v.schema == nil {
			return nil, schemaErr("Discriminated", ErrMissingTag, "nil member for "+strconv.Quote(v.key))
		}
		lit, err := tagLiteral("Discriminated", b.tag, v.schema)
		if err != nil {
			return nil, err
		}
		if lit != v.key {
			return nil, schemaErr("Discriminated", ErrTagMismatch, strconv.Quote(v.key)+" != "+strconv.Quote(lit))
		}
		members = append(members, v.schema)
	}
	return newDiscriminatedUnion("Discriminated", b.tag, members)
}

// MustBuild is like Build but panics on error.
func (b *UnionBuilder) MustBuild() *DiscriminatedUnionSchema {
	s, err := b.Build()
	if err != nil {
		panic(err)
	}
	return s
}

// DiscriminatedUnion builds a union selected by the string value of tag.
// Selector keys are taken from each member's tag literal.
func DiscriminatedUnion(tag string, members ...*ObjectSchema) (*DiscriminatedUnionSchema, error) {
	return newDiscriminatedUnion("DiscriminatedUnion", tag, members)
}

// MustDiscriminatedUnion is like DiscriminatedUnion but panics on error.
func MustDiscriminatedUnion(tag string, members ...*ObjectSchema) *DiscriminatedUnionSchema {
	s, err := DiscriminatedUnion(tag, members...)
	if err != nil {
		panic(err)
	}
	return s
}

func newDiscriminatedUnion(op, tag string, members []*ObjectSchema) (*DiscriminatedUnionSchema, error) {
	if tag == "" {
		return nil, schemaErr(op, ErrEmptyFieldName, "tag")
	}
	if len(members) == 0 {
		return nil, schemaErr(op, ErrEmptyUnion, "")
	}
	u := &DiscriminatedUnionSchema{
		tag:      tag,
		tags:     make([]string, 0, len(members)),
		members:  make([]*ObjectSchema, 0, len(members)),
		byTag:    make(map[string]int, len(members)),
		unitOnly: true,
	}
	for _, m := range members {
		if m == nil {
			return nil, schemaErr(op, ErrMissingTag, "nil member")
		}
		lit, err := tagLiteral(op, tag, m)
		if err != nil {
			return nil, err
		}
		if _, dup := u.byTag[lit]; dup {
			return nil, schemaErr(op, ErrDuplicateTag, strconv.Quote(lit))
		}
		u.byTag[lit] = len(u.members)
		u.tags = append(u.tags, lit)
		u.members = append(u.members, m)
		if m.NumFields() != 1 {
			u.unitOnly = false
		}
	}
	return u, nil
}

func tagLiteral(op, tag string, m *ObjectSchema) (string, error) {
	fs, ok := m.Lookup(tag)
	if !ok {
		return "", schemaErr(op, ErrMissingTag, strconv.Quote(tag))
	}
	lit, ok := fs.(*LiteralSchema)
	if !ok {
		return "", schemaErr(op, ErrTagNotLiteral, strconv.Quote(tag))
	}
	s, ok := lit.Value().AsString()
	if !ok {
		return "", schemaErr(op, ErrTagNotLiteral, strconv.Quote(tag)+" is "+lit.Value().Kind().String())
	}
	return s, nil
}

// Union builds a heterogeneous union whose members are tried in order.
func Union(members ...Schema) (*UnionSchema, error) {
	if len(members) == 0 {
		return nil, schemaErr("Union", ErrEmptyUnion, "")
	}
	for i, m := range members {
		if m == nil {
			return nil, schemaErr("Union", ErrEmptyUnion, "nil member #"+strconv.Itoa(i))
		}
	}
	return &UnionSchema{members: append([]Schema(nil), members...)}, nil
}

// MustUnion is like Union but panics on error.
func MustUnion(members ...Schema) *UnionSchema {
	u, err := Union(members...)
	if err != nil {
		panic(err)
	}
	return u
}
