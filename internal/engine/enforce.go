package engine

// DuplicateStrictness controls how repeated object keys are treated.
type DuplicateStrictness int

const (
	DupIgnore DuplicateStrictness = iota
	DupWarn
	DupError
)

// SimpleIssue is the lightweight issue produced below the root package.
// Path is a JSON Pointer ("/" for the root). At holds the same location as
// typed segments when the producer knows them.
type SimpleIssue struct {
	Code    string
	Path    string
	At      []Segment
	Message string
}

// IssueError is a lightweight error carrying a SimpleIssue.
type IssueError struct{ SimpleIssue }

func (e IssueError) Error() string { return e.SimpleIssue.Message }

// EnforceOptions controls runtime enforcement behavior.
type EnforceOptions struct {
	OnDuplicate DuplicateStrictness
	MaxDepth    int
	MaxBytes    int64
	// IssueSink receives non-fatal issues (duplicate keys under DupWarn).
	IssueSink func(SimpleIssue)
	// FailFast turns every reported issue into an error.
	FailFast bool
}

type frame struct {
	object    bool
	keys      map[string]struct{}
	seg       Segment
	hasSeg    bool
	nextIndex int
	key       string
	wantKey   bool
}

type enforcingTokenSource struct {
	inner TokenSource
	opt   EnforceOptions
	stack []frame
	// step locates the current token within the top frame, if it has one.
	step    Segment
	hasStep bool
}

// WrapWithEnforcement returns a TokenSource that enforces the duplicate key
// policy, maximum nesting depth and maximum consumed bytes while tokens flow.
func WrapWithEnforcement(inner TokenSource, opt EnforceOptions) TokenSource {
	return &enforcingTokenSource{inner: inner, opt: opt}
}

func (e *enforcingTokenSource) Location() int64 { return e.inner.Location() }

func (e *enforcingTokenSource) NextToken() (Token, error) {
	tok, err := e.inner.NextToken()
	if err != nil {
		return Token{}, err
	}
	e.hasStep = false

	switch tok.Kind {
	case KindBeginObject, KindBeginArray:
		obj := tok.Kind == KindBeginObject
		f := frame{object: obj, wantKey: obj}
		f.seg, f.hasSeg = e.childStep()
		if obj {
			f.keys = make(map[string]struct{})
		}
		e.stack = append(e.stack, f)
		if e.opt.MaxDepth > 0 && len(e.stack) > e.opt.MaxDepth {
			return Token{}, e.fatal("parse_error", "max depth exceeded")
		}
	case KindEndObject, KindEndArray:
		if n := len(e.stack); n > 0 {
			e.stack = e.stack[:n-1]
		}
		e.valueDone()
	case KindKey:
		if n := len(e.stack); n > 0 && e.stack[n-1].object {
			top := &e.stack[n-1]
			e.step, e.hasStep = KeySegment(tok.String), true
			if _, dup := top.keys[tok.String]; dup && e.opt.OnDuplicate != DupIgnore {
				si := NewIssue("duplicate_key", e.path(), "key '"+tok.String+"' duplicated")
				if e.opt.OnDuplicate == DupError || e.opt.FailFast {
					return Token{}, e.raise(si)
				}
				if e.opt.IssueSink != nil {
					e.opt.IssueSink(si)
				}
			}
			top.keys[tok.String] = struct{}{}
			top.key = tok.String
			top.wantKey = false
		}
	default:
		e.step, e.hasStep = e.childStep()
		e.valueDone()
	}

	if e.opt.MaxBytes > 0 {
		if off := e.Location(); off > e.opt.MaxBytes {
			return Token{}, e.fatal("truncated", "max bytes exceeded")
		}
	}
	return tok, nil
}

func (e *enforcingTokenSource) fatal(code, msg string) error {
	return e.raise(NewIssue(code, e.path(), msg))
}

func (e *enforcingTokenSource) raise(si SimpleIssue) error {
	if e.opt.IssueSink != nil {
		e.opt.IssueSink(si)
	}
	return IssueError{si}
}

// valueDone marks the pending key of the enclosing object as consumed.
func (e *enforcingTokenSource) valueDone() {
	if n := len(e.stack); n > 0 && e.stack[n-1].object {
		e.stack[n-1].wantKey = true
		e.stack[n-1].key = ""
	}
}

// childStep returns the step from the top frame to the value starting now,
// advancing the array index.
func (e *enforcingTokenSource) childStep() (Segment, bool) {
	n := len(e.stack)
	if n == 0 {
		return Segment{}, false
	}
	top := &e.stack[n-1]
	if !top.object {
		s := IndexSegment(top.nextIndex)
		top.nextIndex++
		return s, true
	}
	if !top.wantKey {
		return KeySegment(top.key), true
	}
	return Segment{}, false
}

// path is computed only when an issue is raised.
func (e *enforcingTokenSource) path() []Segment {
	var segs []Segment
	for _, f := range e.stack {
		if f.hasSeg {
			segs = append(segs, f.seg)
		}
	}
	if e.hasStep {
		segs = append(segs, e.step)
	}
	return segs
}
