package migrate

import (
	"regexp"
)

// ColorsKey is the config key whose object literal holds the palette.
const ColorsKey = "colors"

func keyPattern(key string) *regexp.Regexp {
	q := regexp.QuoteMeta(key)
	return regexp.MustCompile(`(?:["'` + "`" + `]` + q + `["'` + "`" + `]|\b` + q + `\b)\s*:`)
}

// ExtractBlock returns the balanced {...} literal that directly follows the
// first `key:` in text whose value is an object. String literals and
// comments are skipped while counting braces. Unbalanced input reports
// not found rather than a partial span.
func ExtractBlock(text, key string) (string, bool) {
	for _, loc := range keyPattern(key).FindAllStringIndex(text, -1) {
		start := skipSpace(text, loc[1])
		if start >= len(text) || text[start] != '{' {
			continue
		}
		end, ok := matchBrace(text, start)
		if !ok {
			return "", false
		}
		return text[start : end+1], true
	}
	return "", false
}

func skipSpace(s string, i int) int {
	for i < len(s) {
		switch {
		case s[i] == ' ' || s[i] == '\t' || s[i] == '\n' || s[i] == '\r':
			i++
		case hasAt(s, i, "//"):
			i = lineEnd(s, i)
		case hasAt(s, i, "/*"):
			i = commentEnd(s, i)
		default:
			return i
		}
	}
	return i
}

// matchBrace returns the index of the brace closing the one at open.
func matchBrace(s string, open int) (int, bool) {
	depth := 0
	for i := open; i < len(s); {
		switch c := s[i]; {
		case c == '"' || c == '\'' || c == '`':
			end, ok := stringEnd(s, i)
			if !ok {
				return 0, false
			}
			i = end + 1
		case hasAt(s, i, "//"):
			i = lineEnd(s, i)
		case hasAt(s, i, "/*"):
			i = commentEnd(s, i)
		case c == '{':
			depth++
			i++
		case c == '}':
			depth--
			if depth == 0 {
				return i, true
			}
			i++
		default:
			i++
		}
	}
	return 0, false
}

// stringEnd returns the index of the quote closing the literal at i.
func stringEnd(s string, i int) (int, bool) {
	quote := s[i]
	for j := i + 1; j < len(s); j++ {
		switch s[j] {
		case '\\':
			j++
		case quote:
			return j, true
		case '\n':
			if quote != '`' {
				return 0, false
			}
		}
	}
	return 0, false
}

func hasAt(s string, i int, tok string) bool {
	return len(s)-i >= len(tok) && s[i:i+len(tok)] == tok
}

func lineEnd(s string, i int) int {
	for i < len(s) && s[i] != '\n' {
		i++
	}
	return i
}

func commentEnd(s string, i int) int {
	for j := i + 2; j+1 < len(s); j++ {
		if s[j] == '*' && s[j+1] == '/' {
			return j + 2
		}
	}
	return len(s)
}
