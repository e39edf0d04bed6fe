// File: contract/naming.go
package contract

import (
	"strings"
	"unicode"
)

// SnakeCase converts a PascalCase identifier to snake_case. Word boundaries
// sit before an uppercase rune that follows a lowercase rune or digit, and
// before the last rune of an uppercase run that is followed by a lowercase
// rune, so "MsgOne" -> "msg_one" and "HTTPServer" -> "http_server". The
// result is deterministic and a valid identifier whenever the input is one.
func SnakeCase(ident string) string {
	runes := []rune(ident)
	var b strings.Builder
	for i, r := range runes {
		if unicode.IsUpper(r) && i > 0 {
			prev := runes[i-1]
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
				b.WriteByte('_')
			}
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}
