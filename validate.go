package skema

import (
	"github.com/reoring/skema/codec"
	"github.com/reoring/skema/dsl"
	"github.com/reoring/skema/value"
)

// validator walks one schema against one value tree. It records failures in
// its collector and builds generic output for subtrees that succeed.
type validator struct {
	c *collector
}

// notSet marks an absent optional while output is being built. Objects drop
// it; at the root it surfaces as NotSet.
type notSetMarker struct{}

var notSet = notSetMarker{}

func (vd *validator) validate(s dsl.Schema, v value.Value, p Path) (any, bool) {
	if v.IsAbsent() && !dsl.IsOptional(s) {
		vd.c.record(IssueAt(p, CodeRequired, dsl.Describe(s), "absent"))
		return nil, false
	}
	switch t := s.(type) {
	case *dsl.PrimitiveSchema:
		return vd.primitive(t, v, p)
	case *dsl.LiteralSchema:
		if value.Equal(t.Value(), v) {
			return v.ToAny(), true
		}
		vd.c.record(IssueAt(p, CodeInvalidLiteral, t.Value().String(), v.String()))
		return nil, false
	case *dsl.EnumSchema:
		str, ok := v.AsString()
		if !ok {
			vd.c.record(IssueAt(p, CodeInvalidType, dsl.Describe(t), v.Kind().String(), t.Members()...))
			return nil, false
		}
		if !t.Contains(str) {
			vd.c.record(IssueAt(p, CodeInvalidEnum, dsl.Describe(t), v.String(), t.Members()...))
			return nil, false
		}
		return str, true
	case *dsl.OptionalSchema:
		if v.IsAbsent() {
			return notSet, true
		}
		return vd.validate(t.Inner(), v, p)
	case *dsl.NullableSchema:
		if v.IsNull() {
			return nil, true
		}
		return vd.validate(t.Inner(), v, p)
	case *dsl.ArraySchema:
		return vd.array(t, v, p)
	case *dsl.ObjectSchema:
		if v.Kind() != value.KindMap {
			vd.c.record(IssueAt(p, CodeInvalidType, dsl.Describe(t), v.Kind().String()))
			return nil, false
		}
		return vd.object(t, v, p)
	case *dsl.DiscriminatedUnionSchema:
		return vd.discriminated(t, v, p)
	case *dsl.UnionSchema:
		return vd.union(t, v, p)
	}
	vd.c.record(IssueAt(p, CodeInvalidType, "known schema", v.Kind().String()))
	return nil, false
}

func (vd *validator) primitive(s *dsl.PrimitiveSchema, v value.Value, p Path) (any, bool) {
	switch s.Type() {
	case dsl.TypeString:
		if str, ok := v.AsString(); ok {
			return str, true
		}
	case dsl.TypeBool:
		if b, ok := v.AsBool(); ok {
			return b, true
		}
	case dsl.TypeNumber:
		if n, ok := v.AsNumber(); ok {
			if v.IsFinite() {
				return n, true
			}
			it := IssueAt(p, CodeInvalidType, "number", v.String())
			it.Hint = "numbers must be finite"
			vd.c.record(it)
			return nil, false
		}
	case dsl.TypeDate:
		if d, ok := v.AsDate(); ok {
			return d.UTC(), true
		}
		if str, ok := v.AsString(); ok {
			if d, err := codec.ParseTime(str); err == nil {
				return d.UTC(), true
			}
			it := IssueAt(p, CodeInvalidType, "date", "string")
			it.Hint = "expected an RFC 3339 date-time"
			vd.c.record(it)
			return nil, false
		}
	}
	vd.c.record(IssueAt(p, CodeInvalidType, s.Type().String(), v.Kind().String()))
	return nil, false
}

func (vd *validator) array(s *dsl.ArraySchema, v value.Value, p Path) (any, bool) {
	if v.Kind() != value.KindSeq {
		vd.c.record(IssueAt(p, CodeInvalidType, dsl.Describe(s), v.Kind().String()))
		return nil, false
	}
	out := make([]any, 0, v.Len())
	ok := true
	for i, it := range v.Items() {
		o, good := vd.validate(s.Elem(), it, p.Index(i))
		if !good {
			ok = false
			if vd.c.stopped() {
				return nil, false
			}
			continue
		}
		out = append(out, o)
	}
	if !ok {
		return nil, false
	}
	return out, true
}

// object validates declared fields in declaration order, then unknown keys in
// input order.
func (vd *validator) object(s *dsl.ObjectSchema, v value.Value, p Path) (map[string]any, bool) {
	out := make(map[string]any, s.NumFields())
	ok := true
	for i := 0; i < s.NumFields(); i++ {
		f := s.FieldAt(i)
		fv := v.Get(f.Name)
		fp := p.Field(f.Name)
		if fv.IsAbsent() {
			if f.Required() {
				ok = false
				if !vd.c.record(IssueAt(fp, CodeRequired, dsl.Describe(f.Schema), "absent")) {
					return nil, false
				}
			}
			continue
		}
		o, good := vd.validate(f.Schema, fv, fp)
		if !good {
			ok = false
			if vd.c.stopped() {
				return nil, false
			}
			continue
		}
		if o != notSet {
			out[f.Name] = o
		}
	}

	policy, target := s.Unknown()
	if policy != dsl.UnknownStrip {
		var extra map[string]any
		for _, e := range v.Entries() {
			if _, declared := s.Lookup(e.Key); declared {
				continue
			}
			if policy == dsl.UnknownStrict {
				ok = false
				if !vd.c.record(IssueAt(p.Field(e.Key), CodeUnknownKey, "no such key", e.Value.Kind().String())) {
					return nil, false
				}
				continue
			}
			if extra == nil {
				extra = make(map[string]any)
			}
			extra[e.Key] = e.Value.ToAny()
		}
		if extra != nil {
			out[target] = extra
		}
	}
	if !ok {
		return nil, false
	}
	return out, true
}

func (vd *validator) discriminated(s *dsl.DiscriminatedUnionSchema, v value.Value, p Path) (any, bool) {
	if v.Kind() != value.KindMap {
		vd.c.record(IssueAt(p, CodeInvalidType, dsl.Describe(s), v.Kind().String()))
		return nil, false
	}
	tp := p.Field(s.Tag())
	tv := v.Get(s.Tag())
	if tv.IsAbsent() {
		vd.c.record(IssueAt(tp, CodeRequired, "string", "absent", s.Tags()...))
		return nil, false
	}
	tag, isStr := tv.AsString()
	if !isStr {
		vd.c.record(IssueAt(tp, CodeInvalidType, "string", tv.Kind().String(), s.Tags()...))
		return nil, false
	}
	member, found := s.Member(tag)
	if !found {
		// A union of unit members is an enum over its tags.
		code := CodeDiscriminatorUnknown
		if s.UnitOnly() {
			code = CodeInvalidEnum
		}
		vd.c.record(IssueAt(tp, code, dsl.Describe(s), tv.String(), s.Tags()...))
		return nil, false
	}
	fields, ok := vd.object(member, v, p)
	if !ok {
		return nil, false
	}
	return Variant{Tag: tag, Fields: fields}, true
}

func (vd *validator) union(s *dsl.UnionSchema, v value.Value, p Path) (any, bool) {
	branches := make([]UnionBranch, 0, s.NumMembers())
	for i := 0; i < s.NumMembers(); i++ {
		m := s.MemberAt(i)
		br := UnionBranch{Member: i, Expected: dsl.Describe(m)}
		if !compatible(m, v) {
			br.Issues = Issues{IssueAt(p, CodeInvalidType, br.Expected, v.Kind().String())}
			branches = append(branches, br)
			continue
		}
		br.Attempted = true
		sub := &validator{c: newCollector(vd.c.failFast)}
		o, ok := sub.validate(m, v, p)
		if ok {
			return Choice{Member: i, Value: o}, true
		}
		br.Issues = sub.c.issues
		branches = append(branches, br)
	}
	it := IssueAt(p, CodeUnionNoMatch, dsl.Describe(s), v.Kind().String())
	it.Branches = branches
	vd.c.record(it)
	return nil, false
}

// compatible reports whether the runtime kind of v can ever satisfy s.
// Heterogeneous unions only attempt compatible members.
func compatible(s dsl.Schema, v value.Value) bool {
	k := v.Kind()
	switch t := s.(type) {
	case *dsl.PrimitiveSchema:
		switch t.Type() {
		case dsl.TypeString:
			return k == value.KindString
		case dsl.TypeNumber:
			return k == value.KindNumber
		case dsl.TypeBool:
			return k == value.KindBool
		case dsl.TypeDate:
			return k == value.KindDate || k == value.KindString
		}
	case *dsl.LiteralSchema:
		return t.Value().Kind() == k
	case *dsl.EnumSchema:
		return k == value.KindString
	case *dsl.OptionalSchema:
		return k == value.KindAbsent || compatible(t.Inner(), v)
	case *dsl.NullableSchema:
		return k == value.KindNull || compatible(t.Inner(), v)
	case *dsl.ArraySchema:
		return k == value.KindSeq
	case *dsl.ObjectSchema, *dsl.DiscriminatedUnionSchema:
		return k == value.KindMap
	case *dsl.UnionSchema:
		for i := 0; i < t.NumMembers(); i++ {
			if compatible(t.MemberAt(i), v) {
				return true
			}
		}
	}
	return false
}
