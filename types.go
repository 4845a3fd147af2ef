package skema

import eng "github.com/reoring/skema/internal/engine"

// Mode selects how many issues a call reports.
type Mode int

const (
	Aggregate Mode = iota // Report every issue (default).
	FailFast              // Stop at the first issue.
)

// Severity expresses the severity level for input-boundary findings.
type Severity int

const (
	Ignore Severity = iota
	Warn
	Error
)

// Strictness configures enforcement at the input boundary.
type Strictness struct {
	OnDuplicateKey Severity // Ignore, Warn or Error on repeated mapping keys.
}

// ParseOpt bundles parsing options.
type ParseOpt struct {
	Mode       Mode
	Strictness Strictness
	MaxDepth   int   // Maximum nesting of sequences and mappings (0 = unlimited).
	MaxBytes   int64 // Maximum input size (0 = unlimited).
	// OnWarning receives non-fatal findings such as duplicate keys under Warn.
	OnWarning func(Issue)
}

func lastOpt(opts []ParseOpt) ParseOpt {
	if len(opts) == 0 {
		return ParseOpt{}
	}
	return opts[len(opts)-1]
}

func (o ParseOpt) enforce() eng.EnforceOptions {
	eo := eng.EnforceOptions{
		OnDuplicate: toEngineDup(o.Strictness.OnDuplicateKey),
		MaxDepth:    o.MaxDepth,
		MaxBytes:    o.MaxBytes,
		FailFast:    o.Mode == FailFast,
	}
	if o.OnWarning != nil {
		warn := o.OnWarning
		eo.IssueSink = func(si eng.SimpleIssue) { warn(fromEngineIssue(si)) }
	}
	return eo
}

func toEngineDup(s Severity) eng.DuplicateStrictness {
	switch s {
	case Error:
		return eng.DupError
	case Warn:
		return eng.DupWarn
	default:
		return eng.DupIgnore
	}
}
