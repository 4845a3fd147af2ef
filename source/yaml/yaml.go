// Package yaml decodes a single YAML document into a value tree using
// yaml.v3 nodes, so mapping order and duplicate keys stay observable.
// Timestamps tagged !!timestamp become date values.
package yaml

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"time"

	"gopkg.in/yaml.v3"

	eng "github.com/reoring/skema/internal/engine"
	"github.com/reoring/skema/value"
)

// ErrMultipleDocuments is returned when the input holds more than one document.
var ErrMultipleDocuments = errors.New("yaml: expected a single document")

// Decode reads exactly one YAML document from data. Duplicate keys and depth
// are enforced per opt; MaxBytes is applied to the raw input length.
func Decode(data []byte, opt eng.EnforceOptions) (value.Value, error) {
	if opt.MaxBytes > 0 && int64(len(data)) > opt.MaxBytes {
		return value.Value{}, eng.IssueError{SimpleIssue: eng.NewIssue("truncated", nil, "max bytes exceeded")}
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	var root yaml.Node
	if err := dec.Decode(&root); err != nil {
		if errors.Is(err, io.EOF) {
			return value.Value{}, io.ErrUnexpectedEOF
		}
		return value.Value{}, err
	}
	var extra yaml.Node
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		if err != nil {
			return value.Value{}, err
		}
		return value.Value{}, ErrMultipleDocuments
	}
	c := converter{opt: opt}
	return c.node(&root, nil, 0)
}

type converter struct {
	opt eng.EnforceOptions
}

func (c *converter) node(n *yaml.Node, at []eng.Segment, depth int) (value.Value, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return value.Null(), nil
		}
		return c.node(n.Content[0], at, depth)
	case yaml.AliasNode:
		return c.node(n.Alias, at, depth)
	case yaml.MappingNode:
		if err := c.checkDepth(at, depth+1); err != nil {
			return value.Value{}, err
		}
		entries := make([]value.Entry, 0, len(n.Content)/2)
		first := make(map[string][2]int, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			k, v := n.Content[i], n.Content[i+1]
			if k.Kind != yaml.ScalarNode {
				return value.Value{}, fmt.Errorf("yaml: non-scalar key at %d:%d", k.Line, k.Column)
			}
			kp := eng.Append(at, eng.KeySegment(k.Value))
			if pos, dup := first[k.Value]; dup && c.opt.OnDuplicate != eng.DupIgnore {
				si := eng.NewIssue("duplicate_key", kp,
					fmt.Sprintf("key '%s' duplicated at %d:%d (first at %d:%d)", k.Value, k.Line, k.Column, pos[0], pos[1]))
				if c.opt.OnDuplicate == eng.DupError || c.opt.FailFast {
					return value.Value{}, eng.IssueError{SimpleIssue: si}
				}
				if c.opt.IssueSink != nil {
					c.opt.IssueSink(si)
				}
			}
			if _, dup := first[k.Value]; !dup {
				first[k.Value] = [2]int{k.Line, k.Column}
			}
			vv, err := c.node(v, kp, depth+1)
			if err != nil {
				return value.Value{}, err
			}
			entries = append(entries, value.KV(k.Value, vv))
		}
		return value.Map(entries...), nil
	case yaml.SequenceNode:
		if err := c.checkDepth(at, depth+1); err != nil {
			return value.Value{}, err
		}
		items := make([]value.Value, 0, len(n.Content))
		for i, it := range n.Content {
			v, err := c.node(it, eng.Append(at, eng.IndexSegment(i)), depth+1)
			if err != nil {
				return value.Value{}, err
			}
			items = append(items, v)
		}
		return value.Seq(items...), nil
	case yaml.ScalarNode:
		return scalar(n)
	}
	return value.Value{}, fmt.Errorf("yaml: unsupported node kind %d at %d:%d", n.Kind, n.Line, n.Column)
}

func (c *converter) checkDepth(at []eng.Segment, depth int) error {
	if c.opt.MaxDepth > 0 && depth > c.opt.MaxDepth {
		return eng.IssueError{SimpleIssue: eng.NewIssue("parse_error", at, "max depth exceeded")}
	}
	return nil
}

func scalar(n *yaml.Node) (value.Value, error) {
	switch n.ShortTag() {
	case "!!null":
		return value.Null(), nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return value.Value{}, err
		}
		return value.Bool(b), nil
	case "!!int", "!!float":
		var f float64
		if err := n.Decode(&f); err != nil {
			return value.Value{}, err
		}
		// .inf and .nan pass through; the number primitive rejects them.
		return value.Number(f), nil
	case "!!timestamp":
		var t time.Time
		if err := n.Decode(&t); err != nil {
			return value.Value{}, err
		}
		return value.Date(t), nil
	case "!!binary":
		return value.Value{}, fmt.Errorf("yaml: binary scalars are not supported at %d:%d", n.Line, n.Column)
	}
	return value.String(n.Value), nil
}
