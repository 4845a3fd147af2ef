package skema

import (
	"strconv"

	"github.com/reoring/skema/i18n"
)

// IssueAt creates an Issue at p with a localized message. expected, found
// and allowed feed both the Issue fields and the message template.
func IssueAt(p Path, code, expected, found string, allowed ...string) Issue {
	data := map[string]string{"expected": expected, "found": found}
	if len(allowed) > 0 {
		data["allowed"] = quoteList(allowed)
	}
	if code == CodeUnknownKey {
		data["key"] = p.Last()
	}
	return Issue{
		Code:     code,
		Path:     p.String(),
		Pointer:  p.Pointer(),
		Message:  i18n.T(code, data),
		Expected: expected,
		Found:    found,
		Allowed:  allowed,
	}
}

func quoteList(ss []string) string {
	b := make([]byte, 0, 16*len(ss))
	b = append(b, '[')
	for i, s := range ss {
		if i > 0 {
			b = append(b, ',')
		}
		b = strconv.AppendQuote(b, s)
	}
	return string(append(b, ']'))
}
