package dsl

import "strconv"

// ObjectBuilder accumulates fields and an unknown-key policy.
// The zero policy is UnknownStrip.
type ObjectBuilder struct {
	fields        []Field
	unknownPolicy UnknownPolicy
	unknownTarget string
}

// Object creates a new object builder. Unknown keys are stripped unless
// UnknownStrict or UnknownPassthrough is selected.
func Object() *ObjectBuilder {
	return &ObjectBuilder{unknownPolicy: UnknownStrip}
}

// Field declares a field. Wrap s in Optional to make the field optional.
func (b *ObjectBuilder) Field(name string, s Schema) *ObjectBuilder {
	mustSchema("Object.Field", s)
	b.fields = append(b.fields, Field{Name: name, Schema: s})
	return b
}

// UnknownStrict rejects keys that are not declared.
func (b *ObjectBuilder) UnknownStrict() *ObjectBuilder {
	b.unknownPolicy = UnknownStrict
	b.unknownTarget = ""
	return b
}

// UnknownStrip ignores keys that are not declared.
func (b *ObjectBuilder) UnknownStrip() *ObjectBuilder {
	b.unknownPolicy = UnknownStrip
	b.unknownTarget = ""
	return b
}

// UnknownPassthrough keeps undeclared keys in the output under target.
func (b *ObjectBuilder) UnknownPassthrough(target string) *ObjectBuilder {
	b.unknownPolicy = UnknownPassthrough
	b.unknownTarget = target
	return b
}

// Discriminator turns the builder into a discriminated union on key.
// Fields declared so far are ignored.
func (b *ObjectBuilder) Discriminator(key string) *UnionBuilder {
	return &UnionBuilder{tag: key}
}

// Build validates the builder and returns the object schema.
func (b *ObjectBuilder) Build() (*ObjectSchema, error) {
	index := make(map[string]int, len(b.fields))
	for i, f := range b.fields {
		if f.Name == "" {
			return nil, schemaErr("Object", ErrEmptyFieldName, "field #"+strconv.Itoa(i))
		}
		if _, dup := index[f.Name]; dup {
			return nil, schemaErr("Object", ErrDuplicateField, strconv.Quote(f.Name))
		}
		index[f.Name] = i
	}
	if b.unknownPolicy == UnknownPassthrough {
		if b.unknownTarget == "" {
			return nil, schemaErr("Object", ErrPassthroughTarget, "empty target")
		}
		if _, clash := index[b.unknownTarget]; clash {
			return nil, schemaErr("Object", ErrPassthroughTarget, strconv.Quote(b.unknownTarget)+" is a declared field")
		}
	}
	return &ObjectSchema{
		fields:        append([]Field(nil), b.fields...),
		index:         index,
		unknown:       b.unknownPolicy,
		unknownTarget: b.unknownTarget,
	}, nil
}

// MustBuild is like Build but panics on error.
func (b *ObjectBuilder) MustBuild() *ObjectSchema {
	s, err := b.Build()
	if err != nil {
		panic(err)
	}
	return s
}
