package protocol

import "github.com/reoring/skema/dsl"

// Tag is the discriminator field shared by every tagged union of the protocol.
const Tag = "kind"

func unit(kind string) *dsl.ObjectSchema {
	return dsl.Object().Field(Tag, dsl.LiteralString(kind)).MustBuild()
}

func tagged(kind string) *dsl.ObjectBuilder {
	return dsl.Object().Field(Tag, dsl.LiteralString(kind))
}

var (
	AllowReasonSchema = dsl.MustEnum(
		string(ProtectionDisabled),
		string(OwnedByFirstParty),
		string(RuleException),
		string(AdClickAttribution),
		string(OtherThirdPartyRequest),
	)

	BlockingStateSchema = dsl.Object().Discriminator(Tag).OneOf(
		dsl.Variant("Blocked", unit("Blocked")),
		dsl.Variant("Allowed", tagged("Allowed").Field("reason", AllowReasonSchema).MustBuild()),
	).MustBuild()

	DetectedRequestSchema = dsl.Object().
		Field("url", dsl.String()).
		Field("state", BlockingStateSchema).
		Field("owner_name", dsl.Optional(dsl.String())).
		Field("entity_name", dsl.Optional(dsl.String())).
		Field("category", dsl.Optional(dsl.String())).
		Field("prevalence", dsl.Optional(dsl.Number())).
		Field("page_url", dsl.String()).
		MustBuild()

	ControlSchema = dsl.MustDiscriminatedUnion(Tag,
		tagged("Start").Field("time", dsl.Number()).MustBuild(),
		unit("Stop"),
		unit("Toggle"),
	)

	TestSchema = dsl.MustDiscriminatedUnion(Tag, unit("One"), unit("Two"))

	TimerResultSchema = dsl.MustDiscriminatedUnion(Tag,
		unit("Ended"),
		tagged("EndedPrematurely").Field("after", dsl.Number()).MustBuild(),
		tagged("Other").Field("items", dsl.Array(dsl.Array(TestSchema))).MustBuild(),
		tagged("WithOptional").Field("control", dsl.Optional(ControlSchema)).MustBuild(),
	)

	StatusSchema = dsl.MustDiscriminatedUnion(Tag,
		tagged("Start").Field("elapsed", dsl.Number()).Field("rem", dsl.Number()).MustBuild(),
		tagged("Tick").Field("elapsed", dsl.Number()).Field("rem", dsl.Number()).MustBuild(),
		tagged("End").Field("result", TimerResultSchema).MustBuild(),
	)

	MixedEnumSchema = dsl.MustUnion(
		dsl.LiteralString("One"),
		dsl.Object().Field("Two", dsl.String()).MustBuild(),
		dsl.Object().Field("Three", dsl.Object().Field("temp", dsl.Number()).MustBuild()).MustBuild(),
	)

	UnitOnlyEnumSchema = dsl.MustEnum(string(UnitStop), string(UnitToggle))

	StateSchema = dsl.Object().Field("control", UnitOnlyEnumSchema).MustBuild()

	OrderSchema = dsl.Object().Field("created", dsl.Date()).MustBuild()
)
