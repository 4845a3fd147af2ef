// Package dsl provides the schema model for skema: immutable schema nodes
// built from primitives and combinators, checked once at construction time
// and then shared by any number of concurrent validation calls.
//
// # Overview
//
//   - Primitives: String(), Number(), Bool(), Date().
//   - Scalars: LiteralString/LiteralNumber/LiteralBool, Enum(members...).
//   - Wrappers: Optional(s) (may be absent), Nullable(s) (may be null), Array(elem).
//   - Objects: Object().Field(name, s)...Build(); unknown keys are stripped
//     unless UnknownStrict() or UnknownPassthrough(target) is chosen.
//   - Discriminated unions: DiscriminatedUnion(tag, members...) or the builder
//     form Object().Discriminator(tag).OneOf(Variant(key, obj)...).Build().
//   - Heterogeneous unions: Union(members...), tried in declaration order.
//
// # Construction-time invariants
//
// Every constructor that can be misused returns a *SchemaError (or panics in
// its Must* form). Errors wrap sentinels so callers can branch with
// errors.Is: ErrMissingTag, ErrTagNotLiteral, ErrDuplicateTag, ErrTagMismatch,
// ErrDuplicateEnumMember, ErrEmptyEnum, ErrEmptyUnion, ErrDuplicateField,
// ErrEmptyFieldName, ErrPassthroughTarget. These are schema-definition errors, reported separately
// from the Issues produced when validating values.
//
// # Example
//
//	blocked := dsl.Object().Field("kind", dsl.LiteralString("Blocked")).MustBuild()
//	allowed := dsl.Object().
//	    Field("kind", dsl.LiteralString("Allowed")).
//	    Field("reason", dsl.MustEnum("OwnedByFirstParty", "RuleException")).
//	    MustBuild()
//	state := dsl.MustDiscriminatedUnion("kind", blocked, allowed)
//
//	out, err := skema.ParseFrom(ctx, state, skema.JSONBytes(data))
//
// # JSON Schema output
//
//	sch, _ := dsl.JSONSchema(state)
//	// UnknownStrict => additionalProperties=false,
//	// UnknownStrip/UnknownPassthrough => additionalProperties=true
package dsl
