package skema_test

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/fxamacker/cbor/v2"
	spb "google.golang.org/protobuf/types/known/structpb"

	"github.com/reoring/skema"
	"github.com/reoring/skema/dsl"
)

func TestParseFrom_DuplicateKeys(t *testing.T) {
	s := dsl.Object().Field("a", dsl.Number()).MustBuild()
	doc := []byte(`{"a":1,"a":2}`)
	ctx := context.Background()

	out, err := skema.ParseFrom(ctx, s, skema.JSONBytes(doc))
	if err != nil {
		t.Fatalf("duplicates are ignored by default: %v", err)
	}
	if out.(map[string]any)["a"] != 2.0 {
		t.Fatalf("last value must win: %v", out)
	}

	var warned []skema.Issue
	opt := skema.ParseOpt{
		Strictness: skema.Strictness{OnDuplicateKey: skema.Warn},
		OnWarning:  func(it skema.Issue) { warned = append(warned, it) },
	}
	if _, err := skema.ParseFrom(ctx, s, skema.JSONBytes(doc), opt); err != nil {
		t.Fatalf("warn must not fail: %v", err)
	}
	if len(warned) != 1 || warned[0].Code != skema.CodeDuplicateKey || warned[0].Pointer != "/a" {
		t.Fatalf("unexpected warnings: %+v", warned)
	}

	_, err = skema.ParseFrom(ctx, s, skema.JSONBytes(doc), skema.ParseOpt{Strictness: skema.Strictness{OnDuplicateKey: skema.Error}})
	iss, ok := skema.AsIssues(err)
	if !ok || len(iss) != 1 || iss[0].Code != skema.CodeDuplicateKey || iss[0].Path != "a" {
		t.Fatalf("expected duplicate_key at a, got %v", err)
	}
}

func TestParseFrom_Limits(t *testing.T) {
	doc := []byte(`{"items":[[{"kind":"One"}]]}`)
	ctx := context.Background()

	_, err := skema.ParseFrom(ctx, withItems, skema.JSONBytes(doc), skema.ParseOpt{MaxDepth: 2})
	if iss, _ := skema.AsIssues(err); len(iss) != 1 || iss[0].Code != skema.CodeParseError {
		t.Fatalf("expected parse_error for depth, got %v", err)
	}
	if _, err := skema.ParseFrom(ctx, withItems, skema.JSONBytes(doc), skema.ParseOpt{MaxDepth: 4}); err != nil {
		t.Fatalf("depth 4 must be accepted: %v", err)
	}
	_, err = skema.ParseFrom(ctx, withItems, skema.JSONBytes(doc), skema.ParseOpt{MaxBytes: 5})
	if iss, _ := skema.AsIssues(err); len(iss) != 1 || iss[0].Code != skema.CodeTruncated {
		t.Fatalf("expected truncated, got %v", err)
	}
}

func TestParseFrom_Malformed(t *testing.T) {
	ctx := context.Background()
	pair := dsl.Object().Field("a", dsl.Array(dsl.Number())).Field("b", dsl.String()).MustBuild()
	cases := []struct {
		schema dsl.Schema
		doc    string
	}{
		{blockingState, `{"kind":`},
		{blockingState, `{"kind":"Blocked"} {}`},
		{blockingState, `not json`},
		{blockingState, ``},
		{pair, `{"a":[1 2],"b":"x"}`},
		{pair, `{"a":[1,2] "b":"x"}`},
		{pair, `{"a" [1,2],"b":"x"}`},
		{pair, `{"a":[1,2],"b":"x",}`},
		{pair, `{"a":[1,2,],"b":"x"}`},
		{pair, `{"a":[1,2]:"b":"x"}`},
	}
	for _, tc := range cases {
		for _, src := range []skema.Source{skema.JSONBytes([]byte(tc.doc)), skema.JSONReader(strings.NewReader(tc.doc))} {
			_, err := skema.ParseFrom(ctx, tc.schema, src)
			iss, ok := skema.AsIssues(err)
			if !ok || len(iss) != 1 || iss[0].Code != skema.CodeParseError {
				t.Fatalf("%q: expected parse_error, got %v", tc.doc, err)
			}
			if iss[0].Cause == nil || iss[0].Hint == "" {
				t.Fatalf("%q: parse_error must carry its cause", tc.doc)
			}
		}
	}
	if _, err := skema.ParseFrom(ctx, pair, skema.JSONBytes([]byte(`{"a":[1,2],"b":"x"}`))); err != nil {
		t.Fatalf("well-formed document rejected: %v", err)
	}
}

// fillReader yields prefix followed by size filler bytes without holding
// them in memory, counting what was read.
type fillReader struct {
	prefix []byte
	size   int64
	read   int64
}

func (f *fillReader) Read(p []byte) (int, error) {
	n := 0
	for n < len(p) && len(f.prefix) > 0 {
		p[n] = f.prefix[0]
		f.prefix = f.prefix[1:]
		n++
	}
	for n < len(p) && f.size > 0 {
		p[n] = 'x'
		f.size--
		n++
	}
	f.read += int64(n)
	if n == 0 {
		return 0, io.EOF
	}
	return n, nil
}

func TestParseFrom_ReaderStopsAtMaxBytes(t *testing.T) {
	s := dsl.Object().Field("a", dsl.String()).MustBuild()
	r := &fillReader{prefix: []byte(`{"a":"`), size: 50 << 20}

	_, err := skema.ParseFrom(context.Background(), s, skema.JSONReader(r), skema.ParseOpt{MaxBytes: 1024})
	iss, _ := skema.AsIssues(err)
	if len(iss) != 1 || iss[0].Code != skema.CodeTruncated || iss[0].Pointer != "/" {
		t.Fatalf("expected truncated at the root, got %v", err)
	}
	if r.read > 1025 {
		t.Fatalf("read %d bytes past a 1024 byte limit", r.read)
	}
}

func TestParseFrom_JSONBytesReusable(t *testing.T) {
	src := skema.JSONBytes([]byte(`{"kind":"Blocked"}`))
	for i := 0; i < 2; i++ {
		if _, err := skema.ParseFrom(context.Background(), blockingState, src); err != nil {
			t.Fatalf("decode %d: %v", i+1, err)
		}
	}
}

func TestParseFrom_DigitKeysStayKeys(t *testing.T) {
	strict := skema.ParseOpt{Strictness: skema.Strictness{OnDuplicateKey: skema.Error}}
	s := dsl.Object().Field("m", dsl.Object().Field("123", dsl.Number()).MustBuild()).MustBuild()
	srcs := []skema.Source{
		skema.JSONBytes([]byte(`{"m":{"123":1,"123":2}}`)),
		skema.YAMLBytes([]byte("m:\n  \"123\": 1\n  \"123\": 2\n")),
	}
	for _, src := range srcs {
		_, err := skema.ParseFrom(context.Background(), s, src, strict)
		iss, _ := skema.AsIssues(err)
		if len(iss) != 1 || iss[0].Code != skema.CodeDuplicateKey {
			t.Fatalf("%s: expected duplicate_key, got %v", src.Format(), err)
		}
		if iss[0].Path != `m["123"]` || iss[0].Pointer != "/m/123" {
			t.Fatalf("%s: unexpected location %q %q", src.Format(), iss[0].Path, iss[0].Pointer)
		}
	}
}

func TestParseFrom_YAML(t *testing.T) {
	doc := "url: https://example.com\nstate:\n  kind: Allowed\n  reason: RuleException\n"
	out, err := skema.ParseFrom(context.Background(), detected, skema.YAMLBytes([]byte(doc)))
	if err != nil {
		t.Fatalf("yaml: %v", err)
	}
	st := out.(map[string]any)["state"].(skema.Variant)
	if st.Tag != "Allowed" || st.Fields["reason"] != "RuleException" {
		t.Fatalf("unexpected state: %#v", st)
	}

	_, err = skema.ParseFrom(context.Background(), detected, skema.YAMLBytes([]byte("url: a\nurl: b\nstate: {kind: Blocked}\n")),
		skema.ParseOpt{Strictness: skema.Strictness{OnDuplicateKey: skema.Error}})
	if iss, _ := skema.AsIssues(err); len(iss) != 1 || iss[0].Code != skema.CodeDuplicateKey || iss[0].Path != "url" {
		t.Fatalf("expected yaml duplicate_key, got %v", err)
	}
}

func TestParseFrom_CBOR(t *testing.T) {
	b, err := cbor.Marshal(map[string]any{
		"url":   "u",
		"state": map[string]any{"kind": "Blocked"},
	})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	src := skema.CBORBytes(b)
	if src.Format() != "cbor" {
		t.Fatalf("unexpected format %q", src.Format())
	}
	out, err := skema.ParseFrom(context.Background(), detected, src)
	if err != nil {
		t.Fatalf("cbor: %v", err)
	}
	if out.(map[string]any)["state"].(skema.Variant).Tag != "Blocked" {
		t.Fatalf("unexpected output: %v", out)
	}
}

func TestParseFrom_StructPB(t *testing.T) {
	pv, err := spb.NewValue(map[string]any{
		"items": []any{[]any{map[string]any{"kind": "Two"}, map[string]any{"kind": "Three"}}},
	})
	if err != nil {
		t.Fatalf("structpb: %v", err)
	}
	_, err = skema.ParseFrom(context.Background(), withItems, skema.StructPB(pv))
	iss, _ := skema.AsIssues(err)
	if len(iss) != 1 || iss[0].Path != "items[0][1].kind" || iss[0].Code != skema.CodeInvalidEnum {
		t.Fatalf("unexpected result: %v", err)
	}
}

func TestParseFrom_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := skema.ParseFrom(ctx, detected, skema.JSONReader(strings.NewReader(`{}`)))
	if err != context.Canceled {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
