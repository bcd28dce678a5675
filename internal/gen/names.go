package gen

import (
	"go/token"
	"strings"
	"unicode"
)

// unexport lowercases the leading word of name. A leading acronym is
// lowercased whole: ID -> id, URLPath -> urlPath.
func unexport(name string) string {
	runes := []rune(name)

	n := 0
	for n < len(runes) && unicode.IsUpper(runes[n]) {
		n++
	}

	if n == 0 {
		return name
	}

	if n > 1 && n < len(runes) && unicode.IsLower(runes[n]) {
		n--
	}

	for i := range n {
		runes[i] = unicode.ToLower(runes[i])
	}

	s := string(runes)
	if token.IsKeyword(s) {
		s += "_"
	}

	return s
}

// receiverName picks a method receiver for typeName that does not shadow
// an imported package.
func receiverName(typeName string, taken map[string]bool) string {
	for _, r := range typeName {
		name := string(unicode.ToLower(r))
		if name != "_" && !taken[name] {
			return name
		}

		break
	}

	return "recv"
}

// sanitizePackageName turns a directory name into a package name.
func sanitizePackageName(base string) string {
	var b strings.Builder

	for _, r := range strings.ToLower(base) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			b.WriteRune(r)
		}
	}

	name := b.String()
	if name == "" || !token.IsIdentifier(name) || token.IsKeyword(name) {
		return "generated"
	}

	return name
}
