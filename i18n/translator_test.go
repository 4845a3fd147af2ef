package i18n

import "testing"

func TestTranslator_DefaultAndJapanese(t *testing.T) {
	defer SetLanguage("en")

	msg := T("invalid_type", map[string]string{"expected": "string", "found": "number"})
	if msg != "expected string, found number" {
		t.Fatalf("unexpected english message: %q", msg)
	}

	SetLanguage("ja-JP")
	if msg := T("required", nil); msg != "必須プロパティが不足しています" {
		t.Fatalf("expected japanese message, got %q", msg)
	}

	SetLanguage("fr")
	if msg := T("required", nil); msg != "required property missing" {
		t.Fatalf("unsupported language must fall back to english, got %q", msg)
	}
}

func TestTranslator_MissingDataAndUnknownCode(t *testing.T) {
	if msg := T("invalid_enum", nil); msg != "expected one of ?, found ?" {
		t.Fatalf("unexpected message: %q", msg)
	}
	if msg := T("no_such_code", nil); msg != "no_such_code" {
		t.Fatalf("unknown codes must echo the code, got %q", msg)
	}
}

type upper struct{}

func (upper) Message(code string, _ map[string]string) string { return "X:" + code }

func TestSetTranslator(t *testing.T) {
	SetTranslator(upper{})
	if msg := T("required", nil); msg != "X:required" {
		t.Fatalf("custom translator not used: %q", msg)
	}
	SetTranslator(nil)
	if msg := T("required", nil); msg != "required property missing" {
		t.Fatalf("nil must restore english: %q", msg)
	}
}

func TestMatch(t *testing.T) {
	if got := Match("ja,en;q=0.5").String(); got != "ja" {
		t.Fatalf("expected ja, got %s", got)
	}
	if got := Match("!!").String(); got != "en" {
		t.Fatalf("malformed input must fall back to en, got %s", got)
	}
}
