package dsl

import (
	"strconv"
	"strings"
)

// Describe renders a short human description of s, used for the expected
// side of issues: "string", `literal "One"`, "object{Two}".
func Describe(s Schema) string {
	var sb strings.Builder
	describe(&sb, s)
	return sb.String()
}

func describe(sb *strings.Builder, s Schema) {
	switch t := s.(type) {
	case *PrimitiveSchema:
		sb.WriteString(t.typ.String())
	case *LiteralSchema:
		sb.WriteString("literal ")
		sb.WriteString(t.v.String())
	case *EnumSchema:
		sb.WriteString("enum{")
		for i, m := range t.members {
			if i > 0 {
				sb.WriteByte(',')
			}
			sb.WriteString(strconv.Quote(m))
		}
		sb.WriteByte('}')
	case *OptionalSchema:
		sb.WriteString("optional ")
		describe(sb, t.inner)
	case *NullableSchema:
		sb.WriteString("nullable ")
		describe(sb, t.inner)
	case *ArraySchema:
		sb.WriteString("array<")
		describe(sb, t.elem)
		sb.WriteByte('>')
	case *ObjectSchema:
		sb.WriteString("object{")
		for i, f := range t.fields {
			if i > 0 {
				sb.WriteByte(',')
			}
			sb.WriteString(f.Name)
		}
		sb.WriteByte('}')
	case *DiscriminatedUnionSchema:
		sb.WriteString("union on ")
		sb.WriteString(strconv.Quote(t.tag))
		sb.WriteString(" {")
		sb.WriteString(strings.Join(t.tags, ","))
		sb.WriteByte('}')
	case *UnionSchema:
		for i, m := range t.members {
			if i > 0 {
				sb.WriteString(" | ")
			}
			describe(sb, m)
		}
	default:
		sb.WriteString("unknown")
	}
}
