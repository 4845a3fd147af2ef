package protocol

import (
	"context"

	"github.com/reoring/skema"
)

// ParseAllowReason decodes and validates an AllowReason.
func ParseAllowReason(ctx context.Context, src skema.Source, opts ...skema.ParseOpt) (AllowReason, error) {
	return skema.Typed[AllowReason](ctx, AllowReasonSchema, src, opts...)
}

// ParseBlockingState decodes and validates a BlockingState.
func ParseBlockingState(ctx context.Context, src skema.Source, opts ...skema.ParseOpt) (BlockingState, error) {
	return skema.Typed[BlockingState](ctx, BlockingStateSchema, src, opts...)
}

// ParseDetectedRequest decodes and validates a DetectedRequest. Unknown keys
// are ignored.
func ParseDetectedRequest(ctx context.Context, src skema.Source, opts ...skema.ParseOpt) (DetectedRequest, error) {
	return skema.Typed[DetectedRequest](ctx, DetectedRequestSchema, src, opts...)
}

func ParseControl(ctx context.Context, src skema.Source, opts ...skema.ParseOpt) (Control, error) {
	return skema.Typed[Control](ctx, ControlSchema, src, opts...)
}

func ParseTest(ctx context.Context, src skema.Source, opts ...skema.ParseOpt) (Test, error) {
	return skema.Typed[Test](ctx, TestSchema, src, opts...)
}

func ParseTimerResult(ctx context.Context, src skema.Source, opts ...skema.ParseOpt) (TimerResult, error) {
	return skema.Typed[TimerResult](ctx, TimerResultSchema, src, opts...)
}

func ParseStatus(ctx context.Context, src skema.Source, opts ...skema.ParseOpt) (Status, error) {
	return skema.Typed[Status](ctx, StatusSchema, src, opts...)
}

// ParseMixedEnum tries the members in declaration order; the first full
// match wins.
func ParseMixedEnum(ctx context.Context, src skema.Source, opts ...skema.ParseOpt) (MixedEnum, error) {
	return skema.Typed[MixedEnum](ctx, MixedEnumSchema, src, opts...)
}

func ParseUnitOnlyEnum(ctx context.Context, src skema.Source, opts ...skema.ParseOpt) (UnitOnlyEnum, error) {
	return skema.Typed[UnitOnlyEnum](ctx, UnitOnlyEnumSchema, src, opts...)
}

func ParseState(ctx context.Context, src skema.Source, opts ...skema.ParseOpt) (State, error) {
	return skema.Typed[State](ctx, StateSchema, src, opts...)
}

// ParseOrder decodes and validates an Order. Created is normalized to UTC.
func ParseOrder(ctx context.Context, src skema.Source, opts ...skema.ParseOpt) (Order, error) {
	return skema.Typed[Order](ctx, OrderSchema, src, opts...)
}
