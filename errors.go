package skema

import (
	"errors"
	"fmt"
	"strings"
)

// Issue codes (exported consts for IDE completion and type safety by convention)
const (
	CodeInvalidType          = "invalid_type"
	CodeInvalidLiteral       = "invalid_literal"
	CodeInvalidEnum          = "invalid_enum"
	CodeRequired             = "required"
	CodeDiscriminatorUnknown = "discriminator_unknown"
	CodeUnionNoMatch         = "union_no_match"
	CodeUnknownKey           = "unknown_key"
	// Input boundary
	CodeParseError   = "parse_error"
	CodeDuplicateKey = "duplicate_key"
	CodeTruncated    = "truncated"
)

// Issue represents a single validation entry.
type Issue struct {
	Code    string `json:"code"`    // One of the codes listed above.
	Path    string `json:"path"`    // Dot/bracket form, e.g. items[1][0].kind ("" for the root).
	Pointer string `json:"pointer"` // JSON Pointer form of Path, e.g. /items/1/0/kind.
	Message string `json:"message"`
	// Expected and Found describe a mismatch in human terms
	// ("string", `literal "One"`, "number").
	Expected string `json:"expected,omitempty"`
	Found    string `json:"found,omitempty"`
	// Allowed lists the accepted values for enum and tag mismatches.
	Allowed []string `json:"allowed,omitempty"`
	// Branches records the outcome of every member of a heterogeneous union
	// when none matched.
	Branches []UnionBranch `json:"branches,omitempty"`
	Hint     string        `json:"hint,omitempty"` // Optional remediation hint.
	Cause    error         `json:"-"`              // Optional underlying error (decode failures).
}

// UnionBranch is the outcome of trying one union member.
type UnionBranch struct {
	Member   int    `json:"member"`   // Position in the union.
	Expected string `json:"expected"` // Member description.
	// Attempted is false when the member was skipped because the value's
	// kind can never satisfy it.
	Attempted bool   `json:"attempted"`
	Issues    Issues `json:"issues,omitempty"`
}

// Issues is a collection of validation errors that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	lim := min(len(iss), maxShown)
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		// e.g. invalid_enum at items[1][0].kind
		fmt.Fprintf(b, "%s at %s", it.Code, it.where())
	}
	if len(iss) > lim {
		fmt.Fprintf(b, "; ... (total %d)", len(iss))
	}
	return b.String()
}

func (it Issue) where() string {
	if it.Path == "" {
		return "<root>"
	}
	return it.Path
}

// Codes returns the issue codes in order.
func (iss Issues) Codes() []string {
	out := make([]string, len(iss))
	for i, it := range iss {
		out[i] = it.Code
	}
	return out
}

// AppendIssues appends issues to the destination, initializing the slice when
// needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	dst = append(dst, more...)
	return dst
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}
