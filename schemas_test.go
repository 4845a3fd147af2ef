package skema_test

import "github.com/reoring/skema/dsl"

// Fixtures mirroring the message declarations used throughout the tests.
var (
	allowReason = dsl.MustEnum("OwnedByFirstParty", "RuleException")

	blockingState = dsl.MustDiscriminatedUnion("kind",
		dsl.Object().Field("kind", dsl.LiteralString("Blocked")).MustBuild(),
		dsl.Object().
			Field("kind", dsl.LiteralString("Allowed")).
			Field("reason", allowReason).
			MustBuild(),
	)

	control = dsl.MustDiscriminatedUnion("kind",
		dsl.Object().Field("kind", dsl.LiteralString("Start")).Field("time", dsl.Date()).MustBuild(),
		dsl.Object().Field("kind", dsl.LiteralString("Stop")).MustBuild(),
		dsl.Object().Field("kind", dsl.LiteralString("Toggle")).MustBuild(),
	)

	test = dsl.MustDiscriminatedUnion("kind",
		dsl.Object().Field("kind", dsl.LiteralString("One")).MustBuild(),
		dsl.Object().Field("kind", dsl.LiteralString("Two")).MustBuild(),
	)

	withItems = dsl.Object().Field("items", dsl.Array(dsl.Array(test))).MustBuild()

	withOptional = dsl.Object().Field("control", dsl.Optional(control)).MustBuild()

	mixedEnum = dsl.MustUnion(
		dsl.LiteralString("One"),
		dsl.Object().Field("Two", dsl.String()).MustBuild(),
		dsl.Object().Field("Three", dsl.Object().Field("temp", dsl.Number()).MustBuild()).MustBuild(),
	)

	detected = dsl.Object().
		Field("url", dsl.String()).
		Field("state", blockingState).
		MustBuild()
)
