package skema

import (
	"strconv"
	"strings"

	eng "github.com/reoring/skema/internal/engine"
)

// Path locates a value inside the input. It is an immutable, parent-linked
// value: Field and Index allocate a new node and never touch the receiver,
// so sibling subtrees can extend the same prefix independently. The zero
// Path is the root.
type Path struct{ n *pathNode }

type pathNode struct {
	parent *pathNode
	key    string
	index  int
	isIdx  bool
	depth  int
}

// Root returns the empty path.
func Root() Path { return Path{} }

// Field extends p with an object key.
func (p Path) Field(name string) Path {
	return Path{n: &pathNode{parent: p.n, key: name, depth: p.Len() + 1}}
}

// Index extends p with a sequence index.
func (p Path) Index(i int) Path {
	return Path{n: &pathNode{parent: p.n, index: i, isIdx: true, depth: p.Len() + 1}}
}

// IsRoot reports whether p is the empty path.
func (p Path) IsRoot() bool { return p.n == nil }

// Len returns the number of segments.
func (p Path) Len() int {
	if p.n == nil {
		return 0
	}
	return p.n.depth
}

// Last returns the final segment rendered as text ("" for the root).
func (p Path) Last() string {
	if p.n == nil {
		return ""
	}
	if p.n.isIdx {
		return strconv.Itoa(p.n.index)
	}
	return p.n.key
}

func (p Path) nodes() []*pathNode {
	out := make([]*pathNode, p.Len())
	for n, i := p.n, p.Len()-1; n != nil; n, i = n.parent, i-1 {
		out[i] = n
	}
	return out
}

// String renders the dot/bracket form: items[1][0].kind. Keys that are not
// plain identifiers are written as quoted brackets: meta["a.b"].
func (p Path) String() string {
	var sb strings.Builder
	for _, n := range p.nodes() {
		switch {
		case n.isIdx:
			sb.WriteByte('[')
			sb.WriteString(strconv.Itoa(n.index))
			sb.WriteByte(']')
		case plainKey(n.key):
			if sb.Len() > 0 {
				sb.WriteByte('.')
			}
			sb.WriteString(n.key)
		default:
			sb.WriteByte('[')
			sb.WriteString(strconv.Quote(n.key))
			sb.WriteByte(']')
		}
	}
	return sb.String()
}

// Pointer renders the RFC 6901 JSON Pointer form ("/" for the root).
func (p Path) Pointer() string {
	if p.n == nil {
		return "/"
	}
	var sb strings.Builder
	for _, n := range p.nodes() {
		sb.WriteByte('/')
		if n.isIdx {
			sb.WriteString(strconv.Itoa(n.index))
			continue
		}
		sb.WriteString(pointerEscaper.Replace(n.key))
	}
	return sb.String()
}

var (
	pointerEscaper   = strings.NewReplacer("~", "~0", "/", "~1")
	pointerUnescaper = strings.NewReplacer("~1", "/", "~0", "~")
)

// PathFromPointer parses a JSON Pointer. All-digit segments are read as
// sequence indices, so a mapping key such as "123" comes back as [123].
// Issues raised while decoding carry typed segments and do not go through
// this conversion.
func PathFromPointer(ptr string) Path {
	var p Path
	if ptr == "" || ptr == "/" {
		return p
	}
	for _, seg := range strings.Split(strings.TrimPrefix(ptr, "/"), "/") {
		if i, err := strconv.Atoi(seg); err == nil && i >= 0 && isDigits(seg) {
			p = p.Index(i)
			continue
		}
		p = p.Field(pointerUnescaper.Replace(seg))
	}
	return p
}

func pathFromSegments(segs []eng.Segment) Path {
	var p Path
	for _, s := range segs {
		if s.IsIndex {
			p = p.Index(s.Index)
			continue
		}
		p = p.Field(s.Key)
	}
	return p
}

func plainKey(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_' || r == '$' || r == '-':
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}
