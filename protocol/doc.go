// Package protocol declares the messages of the tracker-blocking and timer
// protocol as skema schemas, together with the Go types they bind to.
//
// Each message has a package-level schema (StatusSchema, OrderSchema, ...)
// and a ParseX function that decodes a skema.Source, validates it and
// returns the typed value. Lookup and Names expose the same messages by name.
package protocol
