package yaml_test

import (
	"errors"
	"testing"
	"time"

	eng "github.com/reoring/skema/internal/engine"
	yamlsrc "github.com/reoring/skema/source/yaml"
)

func TestDecode_Scalars(t *testing.T) {
	doc := []byte(`
kind: WithOptional
created: 2024-05-06T07:08:09Z
count: 3
ratio: 0.5
ok: true
note: null
name: "2024-05-06T07:08:09Z"
`)
	v, err := yamlsrc.Decode(doc, eng.EnforceOptions{})
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if keys := v.Keys(); len(keys) != 7 || keys[0] != "kind" || keys[6] != "name" {
		t.Fatalf("unexpected key order: %v", keys)
	}
	d, ok := v.Get("created").AsDate()
	if !ok || !d.Equal(time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)) {
		t.Fatalf("expected timestamp to decode as date, got %v", v.Get("created"))
	}
	if _, ok := v.Get("name").AsString(); !ok {
		t.Fatalf("quoted timestamp must stay a string")
	}
	if n, _ := v.Get("count").AsNumber(); n != 3 {
		t.Fatalf("unexpected count: %v", v.Get("count"))
	}
	if !v.Get("note").IsNull() {
		t.Fatalf("expected null")
	}
}

func TestDecode_DuplicateKeys(t *testing.T) {
	doc := []byte("a:\n  b: 1\n  b: 2\n")
	_, err := yamlsrc.Decode(doc, eng.EnforceOptions{OnDuplicate: eng.DupError})
	var ie eng.IssueError
	if !errors.As(err, &ie) || ie.Code != "duplicate_key" || ie.Path != "/a/b" {
		t.Fatalf("expected duplicate_key at /a/b, got %v", err)
	}
	v, err := yamlsrc.Decode(doc, eng.EnforceOptions{})
	if err != nil {
		t.Fatalf("ignore mode: %v", err)
	}
	if n, _ := v.Get("a").Get("b").AsNumber(); n != 2 {
		t.Fatalf("last value should win, got %v", v)
	}
}

func TestDecode_Limits(t *testing.T) {
	if _, err := yamlsrc.Decode([]byte("a: 1\n---\nb: 2\n"), eng.EnforceOptions{}); !errors.Is(err, yamlsrc.ErrMultipleDocuments) {
		t.Fatalf("expected ErrMultipleDocuments, got %v", err)
	}
	_, err := yamlsrc.Decode([]byte("a:\n  b:\n    c: 1\n"), eng.EnforceOptions{MaxDepth: 2})
	var ie eng.IssueError
	if !errors.As(err, &ie) || ie.Path != "/a/b" {
		t.Fatalf("expected depth error at /a/b, got %v", err)
	}
	if _, err := yamlsrc.Decode([]byte("a: 1"), eng.EnforceOptions{MaxBytes: 2}); !errors.As(err, &ie) || ie.Code != "truncated" {
		t.Fatalf("expected truncated, got %v", err)
	}
}
