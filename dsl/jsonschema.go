package dsl

import (
	"fmt"

	js "github.com/reoring/skema/jsonschema"
)

// JSONSchema projects s to a JSON Schema document. Optional fields are left
// out of "required"; Nullable becomes anyOf with {"type":"null"}; discriminated
// unions carry an OpenAPI discriminator next to oneOf.
func JSONSchema(s Schema) (*js.Schema, error) {
	switch t := s.(type) {
	case *PrimitiveSchema:
		switch t.typ {
		case TypeString:
			return &js.Schema{Type: "string"}, nil
		case TypeNumber:
			return &js.Schema{Type: "number"}, nil
		case TypeBool:
			return &js.Schema{Type: "boolean"}, nil
		case TypeDate:
			return &js.Schema{Type: "string", Format: "date-time"}, nil
		}
	case *LiteralSchema:
		out := &js.Schema{Const: t.v.ToAny()}
		out.Type = jsonType(t)
		return out, nil
	case *EnumSchema:
		enum := make([]any, len(t.members))
		for i, m := range t.members {
			enum[i] = m
		}
		return &js.Schema{Type: "string", Enum: enum}, nil
	case *OptionalSchema:
		return JSONSchema(t.inner)
	case *NullableSchema:
		inner, err := JSONSchema(t.inner)
		if err != nil {
			return nil, err
		}
		return &js.Schema{AnyOf: []*js.Schema{inner, {Type: "null"}}}, nil
	case *ArraySchema:
		items, err := JSONSchema(t.elem)
		if err != nil {
			return nil, err
		}
		return &js.Schema{Type: "array", Items: items}, nil
	case *ObjectSchema:
		out := &js.Schema{Type: "object", Properties: make(map[string]*js.Schema, len(t.fields))}
		for _, f := range t.fields {
			fs, err := JSONSchema(f.Schema)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", f.Name, err)
			}
			out.Properties[f.Name] = fs
			if f.Required() {
				out.Required = append(out.Required, f.Name)
			}
		}
		out.AdditionalProperties = t.unknown != UnknownStrict
		return out, nil
	case *DiscriminatedUnionSchema:
		out := &js.Schema{Discriminator: &js.Discriminator{PropertyName: t.tag}}
		for i, m := range t.members {
			ms, err := JSONSchema(m)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", t.tags[i], err)
			}
			out.OneOf = append(out.OneOf, ms)
		}
		return out, nil
	case *UnionSchema:
		out := &js.Schema{}
		for _, m := range t.members {
			ms, err := JSONSchema(m)
			if err != nil {
				return nil, err
			}
			out.AnyOf = append(out.AnyOf, ms)
		}
		return out, nil
	}
	return nil, fmt.Errorf("dsl: JSONSchema: unsupported schema %T", s)
}

func jsonType(l *LiteralSchema) string {
	switch l.v.ToAny().(type) {
	case string:
		return "string"
	case bool:
		return "boolean"
	case float64:
		return "number"
	}
	return ""
}
