package main

import (
	"bufio"
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reoring/skema/i18n"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("SKEMA_CONFIG", "")
	var out, errOut bytes.Buffer
	cmd := newRootCmd(&out, &errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func TestValidate_Reports(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	good := writeFile(t, dir, "good.json", `{"kind":"End","result":{"kind":"EndedPrematurely","after":4}}`)
	bad := writeFile(t, dir, "bad.yaml", "kind: End\nresult:\n  kind: Other\n  items: [[{kind: One}], [{kind: Bad}]]\n")

	out, err := run(t, "validate", "--schema", "Status", good, bad)
	require.ErrorIs(t, err, errInvalid)

	var reports []report
	sc := bufio.NewScanner(strings.NewReader(out))
	for sc.Scan() {
		var r struct {
			report
			Output json.RawMessage `json:"output"`
		}
		require.NoError(t, json.Unmarshal(sc.Bytes(), &r))
		reports = append(reports, r.report)
		if r.Valid {
			assert.JSONEq(t, `{"kind":"End","result":{"after":4,"kind":"EndedPrematurely"}}`, string(r.Output))
		}
	}
	require.Len(t, reports, 2)
	assert.True(t, reports[0].Valid)
	assert.NotEmpty(t, reports[0].RequestID)
	assert.False(t, reports[1].Valid)
	require.Len(t, reports[1].Issues, 1)
	assert.Equal(t, "result.items[1][0].kind", reports[1].Issues[0].Path)
	assert.Equal(t, "invalid_enum", reports[1].Issues[0].Code)
}

func TestValidate_FailFastAndLanguage(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Cleanup(func() { i18n.SetLanguage("en") })
	f := writeFile(t, dir, "req.json", `{"owner_name": 1}`)

	out, err := run(t, "validate", "-s", "DetectedRequest", "--fail-fast", "--lang", "ja", f)
	require.ErrorIs(t, err, errInvalid)
	var r report
	require.NoError(t, json.Unmarshal([]byte(out), &r))
	require.Len(t, r.Issues, 1)
	assert.Equal(t, "url", r.Issues[0].Path)
	assert.Equal(t, "必須プロパティが不足しています", r.Issues[0].Message)
}

func TestValidate_UnknownSchema(t *testing.T) {
	t.Chdir(t.TempDir())
	_, err := run(t, "validate", "-s", "Nope", "x.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown schema")
}

func TestSchemasAndJSONSchema(t *testing.T) {
	t.Chdir(t.TempDir())
	out, err := run(t, "schemas")
	require.NoError(t, err)
	assert.Contains(t, out, "BlockingState")
	assert.Contains(t, out, `union on "kind"`)

	out, err = run(t, "jsonschema", "State")
	require.NoError(t, err)
	var sch map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &sch))
	assert.Equal(t, "object", sch["type"])
	assert.Equal(t, []any{"control"}, sch["required"])
}

func TestPickFormat(t *testing.T) {
	assert.Equal(t, "cbor", pickFormat("CBOR", "a.json", "json"))
	assert.Equal(t, "yaml", pickFormat("", "a.yml", "json"))
	assert.Equal(t, "json", pickFormat("", "-", "json"))
}
