// Package i18n renders human-readable messages for issue codes.
package i18n

import (
	"strings"
	"sync/atomic"

	"golang.org/x/text/language"
)

// Translator retrieves localized messages for Issue codes.
// data provides optional metadata to embed in the message (for example
// "expected", "found", "allowed" or "key").
type Translator interface {
	Message(code string, data map[string]string) string
}

var dictionaries = map[language.Tag]map[string]string{
	language.English: {
		"invalid_type":          "expected {expected}, found {found}",
		"invalid_literal":       "expected literal {expected}, found {found}",
		"invalid_enum":          "expected one of {allowed}, found {found}",
		"required":              "required property missing",
		"discriminator_unknown": "unknown variant {found}, expected one of {allowed}",
		"union_no_match":        "value matched no union member ({expected})",
		"unknown_key":           "unknown key {key}",
		"duplicate_key":         "duplicate key",
		"parse_error":           "parse error",
		"truncated":             "truncated",
	},
	language.Japanese: {
		"invalid_type":          "型が不正です ({expected} を期待しましたが {found} でした)",
		"invalid_literal":       "リテラル {expected} を期待しましたが {found} でした",
		"invalid_enum":          "{allowed} のいずれかを期待しましたが {found} でした",
		"required":              "必須プロパティが不足しています",
		"discriminator_unknown": "未知のバリアント {found} です ({allowed} のいずれか)",
		"union_no_match":        "どのユニオンメンバーにも一致しません ({expected})",
		"unknown_key":           "未知のキーです: {key}",
		"duplicate_key":         "キーが重複しています",
		"parse_error":           "解析エラー",
		"truncated":             "打ち切られました",
	},
}

var matcher = language.NewMatcher([]language.Tag{language.English, language.Japanese})

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ dict map[string]string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	tmpl, ok := t.dict[code]
	if !ok {
		return code
	}
	return expand(tmpl, data)
}

// expand replaces {name} placeholders with data values. Missing values
// render as "?" so a message never leaks raw braces.
func expand(tmpl string, data map[string]string) string {
	if !strings.Contains(tmpl, "{") {
		return tmpl
	}
	var sb strings.Builder
	for {
		i := strings.IndexByte(tmpl, '{')
		if i < 0 {
			sb.WriteString(tmpl)
			return sb.String()
		}
		j := strings.IndexByte(tmpl[i:], '}')
		if j < 0 {
			sb.WriteString(tmpl)
			return sb.String()
		}
		sb.WriteString(tmpl[:i])
		if v, ok := data[tmpl[i+1:i+j]]; ok && v != "" {
			sb.WriteString(v)
		} else {
			sb.WriteByte('?')
		}
		tmpl = tmpl[i+j+1:]
	}
}

type holder struct{ tr Translator }

var current atomic.Value

func init() { current.Store(holder{tr: dictTranslator{dict: dictionaries[language.English]}}) }

// SetLanguage switches the built-in Translator to the best match for lang,
// a BCP 47 tag or Accept-Language value ("ja", "ja-JP", "en-US,en;q=0.8").
// Unsupported or malformed input falls back to English.
func SetLanguage(lang string) {
	current.Store(holder{tr: dictTranslator{dict: dictionaries[Match(lang)]}})
}

// Match returns the supported language closest to lang.
func Match(lang string) language.Tag {
	tags, _, err := language.ParseAcceptLanguage(lang)
	if err != nil || len(tags) == 0 {
		return language.English
	}
	_, idx, conf := matcher.Match(tags...)
	if conf == language.No {
		return language.English
	}
	return []language.Tag{language.English, language.Japanese}[idx]
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version). nil restores English.
func SetTranslator(tr Translator) {
	if tr == nil {
		SetLanguage("en")
		return
	}
	current.Store(holder{tr: tr})
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string {
	return current.Load().(holder).tr.Message(code, data)
}
