package protocol

import (
	"context"
	"sort"

	"github.com/reoring/skema"
	"github.com/reoring/skema/dsl"
)

// Entry is one named message of the protocol.
type Entry struct {
	Name   string
	Schema dsl.Schema
	// Parse decodes src and returns the typed message.
	Parse func(ctx context.Context, src skema.Source, opts ...skema.ParseOpt) (any, error)
}

func entry[T any](name string, s dsl.Schema, parse func(context.Context, skema.Source, ...skema.ParseOpt) (T, error)) Entry {
	return Entry{Name: name, Schema: s, Parse: func(ctx context.Context, src skema.Source, opts ...skema.ParseOpt) (any, error) {
		v, err := parse(ctx, src, opts...)
		if err != nil {
			return nil, err
		}
		return v, nil
	}}
}

var entries = map[string]Entry{}

func register(e Entry) { entries[e.Name] = e }

func init() {
	register(entry("AllowReason", AllowReasonSchema, ParseAllowReason))
	register(entry("BlockingState", BlockingStateSchema, ParseBlockingState))
	register(entry("DetectedRequest", DetectedRequestSchema, ParseDetectedRequest))
	register(entry("Control", ControlSchema, ParseControl))
	register(entry("Test", TestSchema, ParseTest))
	register(entry("TimerResult", TimerResultSchema, ParseTimerResult))
	register(entry("Status", StatusSchema, ParseStatus))
	register(entry("MixedEnum", MixedEnumSchema, ParseMixedEnum))
	register(entry("UnitOnlyEnum", UnitOnlyEnumSchema, ParseUnitOnlyEnum))
	register(entry("State", StateSchema, ParseState))
	register(entry("Order", OrderSchema, ParseOrder))
}

// Lookup returns the named message.
func Lookup(name string) (Entry, bool) {
	e, ok := entries[name]
	return e, ok
}

// Names returns the registered message names in sorted order.
func Names() []string {
	out := make([]string, 0, len(entries))
	for n := range entries {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}
