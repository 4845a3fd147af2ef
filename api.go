package skema

import (
	"context"
	"errors"

	"github.com/reoring/skema/dsl"
	eng "github.com/reoring/skema/internal/engine"
	"github.com/reoring/skema/i18n"
	"github.com/reoring/skema/value"
)

// Parse validates v against s and returns the generic output: string,
// float64, bool, time.Time, nil, []any, map[string]any, Variant, Choice or
// NotSet. On failure the error is Issues.
func Parse(ctx context.Context, s dsl.Schema, v value.Value, opts ...ParseOpt) (any, error) {
	if s == nil {
		return nil, singleIssue(CodeParseError, "nil schema")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	opt := lastOpt(opts)
	c := newCollector(opt.Mode == FailFast || IsFailFast(ctx))
	vd := &validator{c: c}
	out, ok := vd.validate(s, v, Root())
	if err := c.finish(); err != nil {
		return nil, err
	}
	if !ok {
		// unreachable: a failing subtree always records an issue
		return nil, singleIssue(CodeParseError, "validation failed")
	}
	if out == notSet {
		return NotSet, nil
	}
	return out, nil
}

// Validate reports whether v conforms to s, returning Issues when it does not.
func Validate(ctx context.Context, s dsl.Schema, v value.Value, opts ...ParseOpt) error {
	_, err := Parse(ctx, s, v, opts...)
	return err
}

// ParseFrom is the primary entry point. It decodes the Source with the
// enforcement options and delegates validation to Parse.
func ParseFrom(ctx context.Context, s dsl.Schema, src Source, opts ...ParseOpt) (any, error) {
	if s == nil {
		return nil, singleIssue(CodeParseError, "nil schema")
	}
	if src == nil {
		return nil, singleIssue(CodeParseError, "nil source")
	}
	opt := lastOpt(opts)
	if IsFailFast(ctx) {
		opt.Mode = FailFast
	}
	v, err := src.Decode(opt)
	if err != nil {
		return nil, toIssues(err)
	}
	return Parse(ctx, s, v, opt)
}

// Is reports whether v conforms to s.
func Is(ctx context.Context, s dsl.Schema, v value.Value) bool {
	return Validate(ctx, s, v) == nil
}

// ---- Parse-time context options ----

type contextKey int

const _ctxKeyFailFast contextKey = iota

// WithFailFast returns a child context that marks fail-fast parsing behavior.
// It is equivalent to ParseOpt{Mode: FailFast}.
func WithFailFast(ctx context.Context, enabled bool) context.Context {
	return context.WithValue(ctx, _ctxKeyFailFast, enabled)
}

// IsFailFast reports whether the current parse should stop on the first issue.
func IsFailFast(ctx context.Context) bool {
	v := ctx.Value(_ctxKeyFailFast)
	b, _ := v.(bool)
	return b
}

// ---- error mapping ----

func toIssues(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := AsIssues(err); ok {
		return err
	}
	var ie eng.IssueError
	if errors.As(err, &ie) {
		return AppendIssues(nil, fromEngineIssue(ie.SimpleIssue))
	}
	it := Issue{Code: CodeParseError, Pointer: "/", Message: i18n.T(CodeParseError, nil), Hint: err.Error(), Cause: err}
	return AppendIssues(nil, it)
}

func fromEngineIssue(si eng.SimpleIssue) Issue {
	p := pathFromSegments(si.At)
	if len(si.At) == 0 {
		p = PathFromPointer(si.Path)
	}
	return Issue{
		Code:    si.Code,
		Path:    p.String(),
		Pointer: p.Pointer(),
		Message: i18n.T(si.Code, nil),
		Hint:    si.Message,
	}
}

func singleIssue(code, hint string) Issues {
	return AppendIssues(nil, Issue{Code: code, Pointer: "/", Message: i18n.T(code, nil), Hint: hint})
}
