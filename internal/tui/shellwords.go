package tui

import (
	"strings"
	"unicode"
)

// splitShellWords splits an editor command like `code --wait` or
// `vim -c "set ft=markdown"` into argv. Single quotes, double quotes and
// backslash escapes (outside single quotes) are honored; nothing else of the
// shell is emulated.
func splitShellWords(s string) []string {
	var (
		out     []string
		cur     strings.Builder
		started bool
		quote   rune
		escaped bool
	)

	emit := func() {
		if !started {
			return
		}
		out = append(out, cur.String())
		cur.Reset()
		started = false
	}

	for _, r := range s {
		switch {
		case escaped:
			cur.WriteRune(r)
			started = true
			escaped = false
		case r == '\\' && quote != '\'':
			escaped = true
		case quote != 0:
			if r == quote {
				quote = 0
			} else {
				cur.WriteRune(r)
			}
		case r == '\'' || r == '"':
			quote = r
			started = true
		case unicode.IsSpace(r):
			emit()
		default:
			cur.WriteRune(r)
			started = true
		}
	}
	emit()
	return out
}
