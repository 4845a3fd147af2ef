package dsl

import (
	"errors"
	"fmt"
)

// Sentinels wrapped by SchemaError. Use errors.Is to branch on them.
var (
	ErrMissingTag          = errors.New("discriminated member does not declare the tag field")
	ErrTagNotLiteral       = errors.New("tag field is not a string literal")
	ErrDuplicateTag        = errors.New("duplicate tag value")
	ErrTagMismatch         = errors.New("variant key differs from the member's tag literal")
	ErrDuplicateEnumMember = errors.New("duplicate enum member")
	ErrEmptyEnum           = errors.New("enum has no members")
	ErrEmptyUnion          = errors.New("union has no members")
	ErrDuplicateField      = errors.New("duplicate field name")
	ErrEmptyFieldName      = errors.New("empty field name")
	ErrPassthroughTarget   = errors.New("invalid passthrough target")
)

// SchemaError reports a schema that violates a construction-time invariant.
// It is a programmer error and never produced while validating values.
type SchemaError struct {
	Op     string // constructor that failed, e.g. "DiscriminatedUnion"
	Detail string // offending name or value
	Err    error  // one of the Err* sentinels
}

func (e *SchemaError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("dsl: %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("dsl: %s: %v: %s", e.Op, e.Err, e.Detail)
}

func (e *SchemaError) Unwrap() error { return e.Err }

func schemaErr(op string, err error, detail string) *SchemaError {
	return &SchemaError{Op: op, Detail: detail, Err: err}
}
