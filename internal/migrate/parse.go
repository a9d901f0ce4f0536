package migrate

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Field is one key of a colour tree. Leaves carry Value; branches carry
// Children (non-nil, possibly empty).
type Field struct {
	Key      string
	Value    string
	Children Tree
}

func (f Field) IsLeaf() bool { return f.Children == nil }

// Tree is an object literal in source order.
type Tree []Field

// Lookup walks path and returns the field it names.
func (t Tree) Lookup(path ...string) (Field, bool) {
	cur := t
	var found Field
	for i, key := range path {
		ok := false
		for _, f := range cur {
			if f.Key == key {
				found, ok = f, true
				break
			}
		}
		if !ok || (i < len(path)-1 && found.IsLeaf()) {
			return Field{}, false
		}
		cur = found.Children
	}
	return found, len(path) > 0
}

// set keeps the position of the first occurrence and the value of the last.
func (t Tree) set(f Field) Tree {
	for i := range t {
		if t[i].Key == f.Key {
			t[i] = f
			return t
		}
	}
	return append(t, f)
}

// ParseError reports a malformed object literal.
type ParseError struct {
	Msg string
}

func (e *ParseError) Error() string { return e.Msg }

func parseErr(format string, args ...any) error {
	return &ParseError{Msg: fmt.Sprintf(format, args...)}
}

// ParseTree reads a JavaScript-style object literal: unquoted keys, single,
// double or backtick quotes, trailing commas and comments are accepted.
// Keys are always strings, so `50: "#eee"` keeps the key "50".
func ParseTree(block string) (Tree, error) {
	src, err := normalize(block)
	if err != nil {
		return nil, err
	}
	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(src), &doc); err != nil {
		return nil, parseErr("%s", strings.TrimPrefix(err.Error(), "yaml: "))
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) != 1 {
		return nil, parseErr("expected a single object literal")
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, parseErr("line %d: expected an object literal", root.Line)
	}
	return walk(root, "")
}

func walk(n *yaml.Node, path string) (Tree, error) {
	out := Tree{}
	for i := 0; i+1 < len(n.Content); i += 2 {
		k, v := n.Content[i], n.Content[i+1]
		if k.Kind != yaml.ScalarNode {
			return nil, parseErr("line %d: object keys must be names or strings", k.Line)
		}
		name := joinPath(path, k.Value)
		switch v.Kind {
		case yaml.ScalarNode:
			if v.ShortTag() == "!!null" && v.Style == 0 {
				return nil, parseErr("line %d: %s has no value", v.Line, name)
			}
			out = out.set(Field{Key: k.Value, Value: v.Value})
		case yaml.MappingNode:
			children, err := walk(v, name)
			if err != nil {
				return nil, err
			}
			out = out.set(Field{Key: k.Value, Children: children})
		case yaml.SequenceNode:
			return nil, parseErr("line %d: %s: arrays are not colour values", v.Line, name)
		default:
			return nil, parseErr("line %d: %s: unsupported value", v.Line, name)
		}
	}
	return out, nil
}

func joinPath(parent, key string) string {
	if parent == "" {
		return key
	}
	return parent + "." + key
}

// normalize rewrites the literal into a YAML flow mapping: comments are
// dropped, every string becomes a JSON-quoted string, a space follows each
// colon and trailing commas are removed.
func normalize(src string) (string, error) {
	var b strings.Builder
	b.Grow(len(src) + len(src)/8)
	for i := 0; i < len(src); {
		c := src[i]
		switch {
		case c == '"' || c == '\'' || c == '`':
			end, ok := stringEnd(src, i)
			if !ok {
				return "", parseErr("line %d: unterminated string", lineOf(src, i))
			}
			lit, err := unquote(src[i : end+1])
			if err != nil {
				return "", parseErr("line %d: %v", lineOf(src, i), err)
			}
			quoted, _ := json.Marshal(lit)
			b.Write(quoted)
			i = end + 1
		case hasAt(src, i, "//"):
			i = lineEnd(src, i)
		case hasAt(src, i, "/*"):
			end := commentEnd(src, i)
			if end-2 < i+2 || !hasAt(src, end-2, "*/") {
				return "", parseErr("line %d: unterminated comment", lineOf(src, i))
			}
			for _, r := range src[i:end] {
				if r == '\n' {
					b.WriteByte('\n')
				}
			}
			b.WriteByte(' ')
			i = end
		case c == ',':
			if next := skipSpace(src, i+1); next < len(src) && (src[next] == '}' || src[next] == ']') {
				i++
				continue
			}
			b.WriteByte(c)
			i++
		case c == ':':
			b.WriteString(": ")
			i++
		case c == '\t':
			b.WriteByte(' ')
			i++
		default:
			b.WriteByte(c)
			i++
		}
	}
	return b.String(), nil
}

// unquote decodes a JS string literal including its quotes.
func unquote(lit string) (string, error) {
	body := lit[1 : len(lit)-1]
	if !strings.Contains(body, `\`) {
		return body, nil
	}
	var b strings.Builder
	for i := 0; i < len(body); i++ {
		if body[i] != '\\' || i+1 >= len(body) {
			b.WriteByte(body[i])
			continue
		}
		i++
		switch body[i] {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		case '\n':
		case 'u':
			if i+4 >= len(body) {
				return "", fmt.Errorf("bad unicode escape in %s", lit)
			}
			var r rune
			if _, err := fmt.Sscanf(body[i+1:i+5], "%04x", &r); err != nil {
				return "", fmt.Errorf("bad unicode escape in %s", lit)
			}
			b.WriteRune(r)
			i += 4
		default:
			b.WriteByte(body[i])
		}
	}
	return b.String(), nil
}

func lineOf(s string, i int) int {
	return strings.Count(s[:i], "\n") + 1
}
