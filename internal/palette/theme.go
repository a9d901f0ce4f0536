package palette

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

type Mode string

const (
	ModeLight Mode = "light"
	ModeDark  Mode = "dark"
)

// ParseMode accepts "light" or "dark" in any case.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeLight:
		return ModeLight, nil
	case ModeDark:
		return ModeDark, nil
	default:
		return "", fmt.Errorf("unknown theme mode %q (want light or dark)", s)
	}
}

// ThemeColor is one design token. Value is an oklch() literal and Hex its
// sRGB approximation.
type ThemeColor struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Value string `json:"value"`
	Hex   string `json:"hex"`
}

// ThemeConfig holds the light and dark token sets in declaration order.
type ThemeConfig struct {
	Light []ThemeColor `json:"light"`
	Dark  []ThemeColor `json:"dark"`
}

type themeSeed struct {
	id, name, light, hex, dark string
}

var basicSeeds = []themeSeed{
	{"background", "Background", "oklch(1 0 0)", "#FFFFFF", "oklch(0.145 0 0)"},
	{"foreground", "Foreground", "oklch(0.145 0 0)", "#000000", "oklch(0.985 0 0)"},
	{"primary", "Primary", "oklch(0.205 0 0)", "#000000", "oklch(0.922 0 0)"},
	{"primary-foreground", "Primary Foreground", "oklch(0.985 0 0)", "#FFFFFF", "oklch(0.205 0 0)"},
	{"secondary", "Secondary", "oklch(0.97 0 0)", "#F5F5F5", "oklch(0.269 0 0)"},
	{"secondary-foreground", "Secondary Foreground", "oklch(0.205 0 0)", "#000000", "oklch(0.985 0 0)"},
	{"accent", "Accent", "oklch(0.97 0 0)", "#F5F5F5", "oklch(0.269 0 0)"},
	{"accent-foreground", "Accent Foreground", "oklch(0.205 0 0)", "#000000", "oklch(0.985 0 0)"},
	{"destructive", "Destructive", "oklch(0.577 0.245 27.325)", "#D32F2F", "oklch(0.704 0.191 22.216)"},
	{"border", "Border", "oklch(0.922 0 0)", "#E0E0E0", "oklch(1 0 0 / 10%)"},
	{"input", "Input", "oklch(0.922 0 0)", "#E0E0E0", "oklch(1 0 0 / 15%)"},
	{"ring", "Ring", "oklch(0.708 0 0)", "#888888", "oklch(0.556 0 0)"},
}

var advancedSeeds = []themeSeed{
	{"card", "Card", "oklch(1 0 0)", "#FFFFFF", "oklch(0.205 0 0)"},
	{"card-foreground", "Card Foreground", "oklch(0.145 0 0)", "#000000", "oklch(0.985 0 0)"},
	{"popover", "Popover", "oklch(1 0 0)", "#FFFFFF", "oklch(0.205 0 0)"},
	{"popover-foreground", "Popover Foreground", "oklch(0.145 0 0)", "#000000", "oklch(0.985 0 0)"},
	{"muted", "Muted", "oklch(0.97 0 0)", "#F5F5F5", "oklch(0.269 0 0)"},
	{"muted-foreground", "Muted Foreground", "oklch(0.556 0 0)", "#666666", "oklch(0.708 0 0)"},
	{"chart-1", "Chart 1", "oklch(0.646 0.222 41.116)", "#FF9800", "oklch(0.488 0.243 264.376)"},
	{"chart-2", "Chart 2", "oklch(0.6 0.118 184.704)", "#00BCD4", "oklch(0.696 0.17 162.48)"},
	{"chart-3", "Chart 3", "oklch(0.398 0.07 227.392)", "#3F51B5", "oklch(0.769 0.188 70.08)"},
	{"chart-4", "Chart 4", "oklch(0.828 0.189 84.429)", "#4CAF50", "oklch(0.627 0.265 303.9)"},
	{"chart-5", "Chart 5", "oklch(0.769 0.188 70.08)", "#8BC34A", "oklch(0.645 0.246 16.439)"},
	{"sidebar", "Sidebar", "oklch(0.985 0 0)", "#FAFAFA", "oklch(0.205 0 0)"},
	{"sidebar-foreground", "Sidebar Foreground", "oklch(0.145 0 0)", "#000000", "oklch(0.985 0 0)"},
	{"sidebar-primary", "Sidebar Primary", "oklch(0.205 0 0)", "#000000", "oklch(0.488 0.243 264.376)"},
	{"sidebar-primary-foreground", "Sidebar Primary Foreground", "oklch(0.985 0 0)", "#FFFFFF", "oklch(0.985 0 0)"},
	{"sidebar-accent", "Sidebar Accent", "oklch(0.97 0 0)", "#F5F5F5", "oklch(0.269 0 0)"},
	{"sidebar-accent-foreground", "Sidebar Accent Foreground", "oklch(0.205 0 0)", "#000000", "oklch(0.985 0 0)"},
	{"sidebar-border", "Sidebar Border", "oklch(0.922 0 0)", "#E0E0E0", "oklch(1 0 0 / 10%)"},
	{"sidebar-ring", "Sidebar Ring", "oklch(0.708 0 0)", "#888888", "oklch(0.556 0 0)"},
}

// BasicTheme returns the twelve core shadcn-style tokens.
func BasicTheme() ThemeConfig {
	return buildTheme(basicSeeds)
}

// AdvancedTheme adds card, popover, muted, chart and sidebar tokens.
func AdvancedTheme() ThemeConfig {
	seeds := make([]themeSeed, 0, len(basicSeeds)+len(advancedSeeds))
	seeds = append(seeds, basicSeeds...)
	seeds = append(seeds, advancedSeeds...)
	return buildTheme(seeds)
}

func buildTheme(seeds []themeSeed) ThemeConfig {
	cfg := ThemeConfig{
		Light: make([]ThemeColor, 0, len(seeds)),
		Dark:  make([]ThemeColor, 0, len(seeds)),
	}
	for _, s := range seeds {
		cfg.Light = append(cfg.Light, ThemeColor{ID: s.id, Name: s.name, Value: s.light, Hex: s.hex})
		darkHex := "#000000"
		if c, err := ParseOKLCH(s.dark); err == nil {
			darkHex = strings.ToUpper(c.Hex())
		}
		cfg.Dark = append(cfg.Dark, ThemeColor{ID: s.id, Name: s.name, Value: s.dark, Hex: darkHex})
	}
	return cfg
}

func (t *ThemeConfig) colors(mode Mode) *[]ThemeColor {
	if mode == ModeDark {
		return &t.Dark
	}
	return &t.Light
}

// Get returns the token key in mode.
func (t ThemeConfig) Get(mode Mode, key string) (ThemeColor, bool) {
	for _, c := range *t.colors(mode) {
		if c.ID == key {
			return c, true
		}
	}
	return ThemeColor{}, false
}

// SetColor replaces the token key in mode with the OKLCH form of hex.
// Unknown keys are rejected so the light and dark sets stay aligned.
func (t *ThemeConfig) SetColor(mode Mode, key, hex string) error {
	value, err := ToOKLCH(hex)
	if err != nil {
		return err
	}
	list := *t.colors(mode)
	for i := range list {
		if list[i].ID == strings.TrimSpace(key) {
			list[i].Value = value
			list[i].Hex = strings.ToUpper(strings.TrimSpace(hex))
			return nil
		}
	}
	return fmt.Errorf("unknown theme colour %q", key)
}

// GenerateThemeCSS renders a Tailwind v4 globals.css.
func GenerateThemeCSS(cfg ThemeConfig) string {
	var b strings.Builder
	b.WriteString("@import \"tailwindcss\";\n")
	b.WriteString("@import \"tw-animate-css\";\n\n")
	b.WriteString("@custom-variant dark (&:is(.dark *));\n\n")

	b.WriteString("@theme inline {\n")
	for _, c := range cfg.Light {
		fmt.Fprintf(&b, "  --color-%s: var(--%s);\n", c.ID, c.ID)
	}
	b.WriteString("  --font-sans: var(--font-geist-sans);\n")
	b.WriteString("  --font-mono: var(--font-geist-mono);\n")
	b.WriteString("  --radius-sm: calc(var(--radius) - 4px);\n")
	b.WriteString("  --radius-md: calc(var(--radius) - 2px);\n")
	b.WriteString("  --radius-lg: var(--radius);\n")
	b.WriteString("  --radius-xl: calc(var(--radius) + 4px);\n")
	b.WriteString("}\n\n")

	b.WriteString(":root {\n  --radius: 0.625rem;\n")
	writeVars(&b, cfg.Light)
	b.WriteString("}\n\n")

	b.WriteString(".dark {\n")
	writeVars(&b, cfg.Dark)
	b.WriteString("}\n\n")

	b.WriteString("@layer base {\n")
	b.WriteString("  * {\n    @apply border-border outline-ring/50;\n  }\n")
	b.WriteString("  body {\n    @apply bg-background text-foreground;\n  }\n")
	b.WriteString("}\n")
	return b.String()
}

func writeVars(b *strings.Builder, colors []ThemeColor) {
	for _, c := range colors {
		fmt.Fprintf(b, "  --%s: %s;\n", c.ID, c.Value)
	}
}

// GenerateThemeJSON renders a v3-style config object with light values under
// theme.colors and dark values under theme.extend.colors. Keys keep
// declaration order.
func GenerateThemeJSON(cfg ThemeConfig) ([]byte, error) {
	doc := orderedObject{
		{"theme", orderedObject{
			{"colors", valuesOf(cfg.Light)},
			{"extend", orderedObject{{"colors", valuesOf(cfg.Dark)}}},
		}},
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}
	var out bytes.Buffer
	if err := json.Indent(&out, raw, "", "  "); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

func valuesOf(colors []ThemeColor) orderedObject {
	out := make(orderedObject, 0, len(colors))
	for _, c := range colors {
		out = append(out, member{c.ID, c.Value})
	}
	return out
}

type member struct {
	key   string
	value any
}

// orderedObject marshals as a JSON object without sorting its keys.
type orderedObject []member

func (o orderedObject) MarshalJSON() ([]byte, error) {
	var b bytes.Buffer
	b.WriteByte('{')
	for i, m := range o {
		if i > 0 {
			b.WriteByte(',')
		}
		k, err := json.Marshal(m.key)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(m.value)
		if err != nil {
			return nil, err
		}
		b.Write(k)
		b.WriteByte(':')
		b.Write(v)
	}
	b.WriteByte('}')
	return b.Bytes(), nil
}
