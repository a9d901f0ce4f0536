package palette

import (
	"fmt"
	"strings"
)

// UnfoldCategories are the shaded groups in a Django Unfold COLORS setting.
var UnfoldCategories = []string{"primary", "secondary", "success", "warning", "danger"}

// FontColors are the three text tones Unfold expects under "font".
type FontColors struct {
	Subtle    string `json:"subtle"`
	Default   string `json:"default"`
	Important string `json:"important"`
}

// UnfoldColors holds one ShadeSet per category plus the font tones.
type UnfoldColors struct {
	Shades map[string]ShadeSet `json:"shades"`
	Font   FontColors          `json:"font"`
}

// DefaultUnfoldBases are the 500-level bases the generator starts from.
var DefaultUnfoldBases = map[string]string{
	"primary":   "40 110 180",
	"secondary": "70 110 60",
	"success":   "60 120 50",
	"warning":   "230 130 40",
	"danger":    "180 40 40",
}

var DefaultFontColors = FontColors{
	Subtle:    "120 120 130",
	Default:   "50 50 60",
	Important: "20 20 25",
}

// NewUnfoldColors generates every category from bases, falling back to
// DefaultUnfoldBases for missing entries.
func NewUnfoldColors(bases map[string]string, font FontColors) (UnfoldColors, error) {
	out := UnfoldColors{Shades: make(map[string]ShadeSet, len(UnfoldCategories)), Font: font}
	for _, cat := range UnfoldCategories {
		base := strings.TrimSpace(bases[cat])
		if base == "" {
			base = DefaultUnfoldBases[cat]
		}
		set, err := Shades(base)
		if err != nil {
			return UnfoldColors{}, fmt.Errorf("%s: %w", cat, err)
		}
		out.Shades[cat] = set
	}
	if out.Font.Subtle == "" {
		out.Font.Subtle = DefaultFontColors.Subtle
	}
	if out.Font.Default == "" {
		out.Font.Default = DefaultFontColors.Default
	}
	if out.Font.Important == "" {
		out.Font.Important = DefaultFontColors.Important
	}
	return out, nil
}

// PythonDict renders the "COLORS" entry for an UNFOLD settings dict. The
// outer brace is not closed; the caller pastes the fragment in place.
func (u UnfoldColors) PythonDict() string {
	var groups []string
	for _, cat := range UnfoldCategories {
		set := u.Shades[cat]
		lines := make([]string, 0, len(set))
		for _, sh := range set {
			lines = append(lines, fmt.Sprintf("            %q: %q", sh.Key, sh.RGB))
		}
		groups = append(groups, pyGroup(cat, lines))
	}
	groups = append(groups, pyGroup("font", []string{
		fmt.Sprintf("            %q: %q", "subtle", u.Font.Subtle),
		fmt.Sprintf("            %q: %q", "default", u.Font.Default),
		fmt.Sprintf("            %q: %q", "important", u.Font.Important),
	}))
	return "\"COLORS\": {\n" + strings.Join(groups, ",\n") + "\n"
}

func pyGroup(name string, lines []string) string {
	return fmt.Sprintf("        %q: {\n%s\n        }", name, strings.Join(lines, ",\n"))
}
