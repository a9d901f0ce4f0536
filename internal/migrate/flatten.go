package migrate

import "devkit/internal/palette"

// Variable is one CSS custom property produced from a colour tree leaf.
type Variable struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Flatten walks the tree depth-first in source order and joins path
// segments with '-'. A DEFAULT key is not special: primary.DEFAULT becomes
// primary-DEFAULT.
func Flatten(t Tree) []Variable {
	out := make([]Variable, 0, len(t))
	return flatten(out, t, "")
}

func flatten(out []Variable, t Tree, prefix string) []Variable {
	for _, f := range t {
		name := f.Key
		if prefix != "" {
			name = prefix + "-" + f.Key
		}
		if f.IsLeaf() {
			out = append(out, Variable{Name: name, Value: f.Value})
			continue
		}
		out = flatten(out, f.Children, name)
	}
	return out
}

// ConvertValue turns hex literals into oklch(); other values are kept.
func ConvertValue(v string) string {
	return palette.ConvertLiteral(v)
}

// Convert applies ConvertValue to every variable, returning a new slice.
func Convert(vars []Variable) []Variable {
	out := make([]Variable, len(vars))
	for i, v := range vars {
		out[i] = Variable{Name: v.Name, Value: ConvertValue(v.Value)}
	}
	return out
}
