// Package envfile parses, validates and exports .env variable lists.
package envfile

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

// Variable is one editable .env entry.
type Variable struct {
	ID          string `json:"id"`
	Key         string `json:"key"`
	Value       string `json:"value"`
	Description string `json:"description,omitempty"`
	Optional    bool   `json:"optional"`
	Secret      bool   `json:"secret"`
}

// NewVariable assigns a fresh id and derives the secret flag from key.
func NewVariable(key, value string) Variable {
	k := strings.TrimSpace(key)
	return Variable{
		ID:     uuid.NewString(),
		Key:    k,
		Value:  value,
		Secret: IsSecretKey(k),
	}
}

// IsSecretKey reports whether a key name looks sensitive.
func IsSecretKey(key string) bool {
	k := strings.ToLower(key)
	return strings.Contains(k, "secret") || strings.Contains(k, "password")
}

// Masked returns the value with secrets hidden.
func (v Variable) Masked() string {
	if !v.Secret || v.Value == "" {
		return v.Value
	}
	return strings.Repeat("*", 8)
}

// Parse reads .env content line by line. Blank lines and # comments are
// skipped, the key is everything before the first '=', a leading "export "
// is dropped and a value wrapped in matching quotes is unquoted. Lines with
// an empty key are ignored.
func Parse(content string) []Variable {
	var out []Variable
	sc := bufio.NewScanner(strings.NewReader(content))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, _ := strings.Cut(line, "=")
		key = strings.TrimSpace(strings.TrimPrefix(key, "export "))
		if key == "" {
			continue
		}
		out = append(out, NewVariable(key, unquote(strings.TrimSpace(value))))
	}
	return out
}

func unquote(v string) string {
	if len(v) >= 2 {
		first, last := v[0], v[len(v)-1]
		if (first == '"' || first == '\'') && first == last {
			return v[1 : len(v)-1]
		}
	}
	return v
}

// Validate returns a message per offending variable id. Multiple problems
// on one variable are joined with "; ".
func Validate(vars []Variable) map[string]string {
	counts := make(map[string]int, len(vars))
	for _, v := range vars {
		counts[v.Key]++
	}
	errs := make(map[string]string)
	for _, v := range vars {
		var msgs []string
		switch {
		case strings.TrimSpace(v.Key) == "":
			msgs = append(msgs, "Key is required")
		case counts[v.Key] > 1:
			msgs = append(msgs, "Duplicate key")
		}
		if !v.Optional && strings.TrimSpace(v.Value) == "" {
			msgs = append(msgs, "Value is required")
		}
		if len(msgs) > 0 {
			errs[v.ID] = strings.Join(msgs, "; ")
		}
	}
	return errs
}

// ExportEnv renders KEY=value entries separated by blank lines, each
// preceded by its description comment when set.
func ExportEnv(vars []Variable) string {
	blocks := make([]string, 0, len(vars))
	for _, v := range vars {
		var b strings.Builder
		if d := strings.TrimSpace(v.Description); d != "" {
			b.WriteString("# Description: " + d + "\n")
		}
		b.WriteString(v.Key + "=" + v.Value)
		blocks = append(blocks, b.String())
	}
	return strings.Join(blocks, "\n\n")
}

// ExportExample renders a .env.example with values blanked and optional
// keys commented out.
func ExportExample(vars []Variable) string {
	lines := make([]string, 0, len(vars))
	for _, v := range vars {
		if v.Optional {
			lines = append(lines, "# "+v.Key+"=")
			continue
		}
		lines = append(lines, v.Key+"=")
	}
	return strings.Join(lines, "\n")
}

// ExportJSON renders {"KEY": "value"} with two-space indentation in source
// order. A repeated key keeps its first position and its last value.
func ExportJSON(vars []Variable) (string, error) {
	index := make(map[string]int, len(vars))
	keys := make([]string, 0, len(vars))
	values := make([]string, 0, len(vars))
	for _, v := range vars {
		if i, ok := index[v.Key]; ok {
			values[i] = v.Value
			continue
		}
		index[v.Key] = len(keys)
		keys = append(keys, v.Key)
		values = append(values, v.Value)
	}
	if len(keys) == 0 {
		return "{}", nil
	}
	var b bytes.Buffer
	b.WriteString("{\n")
	for i, k := range keys {
		kj, err := json.Marshal(k)
		if err != nil {
			return "", err
		}
		vj, err := json.Marshal(values[i])
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&b, "  %s: %s", kj, vj)
		if i < len(keys)-1 {
			b.WriteByte(',')
		}
		b.WriteByte('\n')
	}
	b.WriteString("}")
	return b.String(), nil
}

// ExportDotenv renders the canonical dotenv form: sorted keys with values
// quoted and escaped.
func ExportDotenv(vars []Variable) (string, error) {
	m := make(map[string]string, len(vars))
	for _, v := range vars {
		m[v.Key] = v.Value
	}
	return godotenv.Marshal(m)
}

// Resolve loads the exported file the way a dotenv loader would, including
// ${VAR} expansion between entries.
func Resolve(vars []Variable) (map[string]string, error) {
	m, err := godotenv.Unmarshal(ExportEnv(vars))
	if err != nil {
		return nil, fmt.Errorf("resolve env: %w", err)
	}
	return m, nil
}
