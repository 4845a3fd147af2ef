// Package skema validates untrusted, loosely typed values against
// declarative schemas and materializes them into typed output or a precise,
// path-annotated list of issues.
//
// Design policy:
//   - Keep only public APIs in the root package; decoders live under source/,
//     the token engine under internal/engine, and the schema model under dsl/.
//   - Schemas are immutable after construction and safe to share between
//     goroutines; every call owns its issue collector and output.
//   - Malformed input is an expected outcome: it is reported as Issues,
//     never as a panic.
//
// Typical usage:
//
//	out, err := skema.ParseFrom(ctx, schema, skema.JSONBytes(data))
//	if iss, ok := skema.AsIssues(err); ok {
//		for _, it := range iss {
//			fmt.Println(it.Code, it.Path, it.Message)
//		}
//	}
//
//	st, err := skema.Typed[Status](ctx, schema, skema.YAMLBytes(doc))
//
// Output shapes: Primitive values become string, float64, bool or
// time.Time; null becomes nil; arrays []any; objects map[string]any with
// absent optional fields left out; discriminated unions Variant; heterogeneous
// unions Choice. ToValue converts output back into a value tree.
package skema
