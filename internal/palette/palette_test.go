package palette

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertLiteral(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"#ffffff":          "oklch(1.000 0.000 0.00)",
		"#FFF":             "oklch(1.000 0.000 0.00)",
		"#000000":          "oklch(0.000 0.000 0.00)",
		"hsl(200 50% 50%)": "hsl(200 50% 50%)",
		"rgb(0 0 0)":       "rgb(0 0 0)",
		"#zzzzzz":          "#zzzzzz",
		"#ffffffaa":        "oklch(1.000 0.000 0.00)",
		"#000a":            "oklch(0.000 0.000 0.00)",
		"#ffffffzz":        "#ffffffzz",
		"#fffff":           "#fffff",
		"transparent":      "transparent",
	}
	for in, want := range cases {
		assert.Equal(t, want, ConvertLiteral(in), in)
	}
}

func TestHexToOKLCHKnownColour(t *testing.T) {
	t.Parallel()

	// sRGB #3b82f6 (Tailwind v3 blue-500) is oklch(0.623 0.188 259.8).
	// v4's blue-500 is a wider-gamut colour with more chroma.
	c, err := HexToOKLCH("#3b82f6")
	require.NoError(t, err)
	assert.InDelta(t, 0.623, c.L, 0.003)
	assert.InDelta(t, 0.188, c.C, 0.003)
	assert.InDelta(t, 259.8, c.H, 0.5)
	assert.True(t, strings.HasPrefix(c.String(), "oklch(0.6"))

	withAlpha, err := HexToOKLCH("#3b82f680")
	require.NoError(t, err)
	assert.Equal(t, c, withAlpha)
}

func TestParseOKLCH(t *testing.T) {
	t.Parallel()

	c, err := ParseOKLCH("oklch(0.577 0.245 27.325)")
	require.NoError(t, err)
	assert.Equal(t, OKLCH{L: 0.577, C: 0.245, H: 27.325}, c)

	c, err = ParseOKLCH("oklch(1 0 0 / 10%)")
	require.NoError(t, err)
	assert.Equal(t, 1.0, c.L)
	assert.Equal(t, "#ffffff", c.Hex())

	_, err = ParseOKLCH("rgb(1 2 3)")
	assert.Error(t, err)
	_, err = ParseOKLCH("oklch(1 0)")
	assert.Error(t, err)
}

func TestShades(t *testing.T) {
	t.Parallel()

	set, err := Shades("40 110 180")
	require.NoError(t, err)
	require.Len(t, set, len(ShadeKeys))
	for i, sh := range set {
		assert.Equal(t, ShadeKeys[i], sh.Key)
		assert.Len(t, strings.Fields(sh.RGB), 3)
	}

	fromHex, err := Shades("#286eb4")
	require.NoError(t, err)
	assert.Equal(t, set, fromHex)

	// Lightness decreases monotonically through the scale.
	prev := 256 * 3
	for _, sh := range set {
		c, err := ParseRGB(sh.RGB)
		require.NoError(t, err)
		r, g, b := c.RGB255()
		sum := int(r) + int(g) + int(b)
		assert.Less(t, sum, prev, sh.Key)
		prev = sum
	}
}

func TestShadesGrey(t *testing.T) {
	t.Parallel()

	set, err := Shades("128 128 128")
	require.NoError(t, err)
	v, ok := set.Get("50")
	require.True(t, ok)
	assert.Equal(t, "242 242 242", v)
	v, _ = set.Get("950")
	assert.Equal(t, "13 13 13", v)
}

func TestShadesRejectsBadInput(t *testing.T) {
	t.Parallel()

	for _, in := range []string{"", "1 2", "300 0 0", "#12", "red"} {
		_, err := Shades(in)
		assert.Error(t, err, in)
	}
}

func TestUnfoldPythonDict(t *testing.T) {
	t.Parallel()

	u, err := NewUnfoldColors(map[string]string{"primary": "#ff0000"}, FontColors{})
	require.NoError(t, err)
	assert.Equal(t, DefaultFontColors, u.Font)

	out := u.PythonDict()
	assert.True(t, strings.HasPrefix(out, "\"COLORS\": {\n        \"primary\": {\n            \"50\": "))
	assert.Contains(t, out, "        \"font\": {\n            \"subtle\": \"120 120 130\",")
	assert.Contains(t, out, "\"important\": \"20 20 25\"\n        }\n")
	for _, cat := range UnfoldCategories {
		assert.Contains(t, out, "\""+cat+"\": {")
	}
}

func TestThemeDefaults(t *testing.T) {
	t.Parallel()

	basic := BasicTheme()
	assert.Len(t, basic.Light, 12)
	assert.Len(t, basic.Dark, 12)

	adv := AdvancedTheme()
	assert.Len(t, adv.Light, 31)
	for i := range adv.Light {
		assert.Equal(t, adv.Light[i].ID, adv.Dark[i].ID)
	}
	bg, ok := adv.Get(ModeDark, "background")
	require.True(t, ok)
	assert.Equal(t, "oklch(0.145 0 0)", bg.Value)
	assert.True(t, strings.HasPrefix(bg.Hex, "#"))
}

func TestThemeSetColor(t *testing.T) {
	t.Parallel()

	cfg := BasicTheme()
	require.NoError(t, cfg.SetColor(ModeLight, "primary", "#ffffff"))
	c, _ := cfg.Get(ModeLight, "primary")
	assert.Equal(t, "oklch(1.000 0.000 0.00)", c.Value)
	assert.Equal(t, "#FFFFFF", c.Hex)

	dark, _ := cfg.Get(ModeDark, "primary")
	assert.Equal(t, "oklch(0.922 0 0)", dark.Value)

	assert.Error(t, cfg.SetColor(ModeLight, "nope", "#ffffff"))
	assert.Error(t, cfg.SetColor(ModeLight, "primary", "blue"))
}

func TestGenerateThemeCSS(t *testing.T) {
	t.Parallel()

	css := GenerateThemeCSS(BasicTheme())
	assert.Contains(t, css, "@theme inline {\n  --color-background: var(--background);\n")
	assert.Contains(t, css, ":root {\n  --radius: 0.625rem;\n  --background: oklch(1 0 0);\n")
	assert.Contains(t, css, ".dark {\n  --background: oklch(0.145 0 0);\n")
	assert.Contains(t, css, "  --border: oklch(1 0 0 / 10%);\n")
	assert.Contains(t, css, "@apply bg-background text-foreground;")
}

func TestGenerateThemeJSONKeepsOrder(t *testing.T) {
	t.Parallel()

	raw, err := GenerateThemeJSON(BasicTheme())
	require.NoError(t, err)

	var doc struct {
		Theme struct {
			Colors map[string]string `json:"colors"`
			Extend struct {
				Colors map[string]string `json:"colors"`
			} `json:"extend"`
		} `json:"theme"`
	}
	require.NoError(t, json.Unmarshal(raw, &doc))
	assert.Equal(t, "oklch(1 0 0)", doc.Theme.Colors["background"])
	assert.Equal(t, "oklch(0.145 0 0)", doc.Theme.Extend.Colors["background"])

	text := string(raw)
	assert.Less(t, strings.Index(text, "\"background\""), strings.Index(text, "\"ring\""))
	assert.Contains(t, text, "\n  \"theme\": {\n    \"colors\": {\n")
}
