package migrate

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `theme: {
  colors: {
    background: "#ffffff",
    foreground: "#111827",
    primary: {
      DEFAULT: "#3b82f6",
      foreground: "#ffffff",
      50: "#eff6ff",
      100: "#dbeafe",
      200: "#bfdbfe"
    },
    secondary: {
      DEFAULT: "#6b7280",
      foreground: "#ffffff",
      50: "#f9fafb",
      100: "#f3f4f6"
    }
  }
}`

func TestExtractBlock(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   string
		want string
	}{
		{"plain", `module.exports = { colors: { a: "#fff" } }`, `{ a: "#fff" }`},
		{"quoted key", `{"colors": {"a": {"b": 1}}}`, `{"a": {"b": 1}}`},
		{"braces in strings", `colors: { a: "}", b: '{' }`, `{ a: "}", b: '{' }`},
		{"braces in comments", "colors: { // }\n a: 1 /* { */ }", "{ // }\n a: 1 /* { */ }"},
		{"non-object value skipped", `colors: require('x'), extend: { colors: { a: "#000" } }`, `{ a: "#000" }`},
		{"comment before brace", "colors: /* palette */ {a: 1}", "{a: 1}"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := ExtractBlock(tc.in, ColorsKey)
			require.True(t, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestExtractBlockNotFound(t *testing.T) {
	t.Parallel()

	for _, in := range []string{
		"colors: { primary: {",
		"",
		"theme: { extend: {} }",
		"bgcolors: { a: 1 }",
		`colors: { a: "unterminated }`,
		"colors: 'red'",
	} {
		_, ok := ExtractBlock(in, ColorsKey)
		assert.False(t, ok, in)
	}
}

func TestParseTreeLenientSyntax(t *testing.T) {
	t.Parallel()

	tree, err := ParseTree(`{
		// line comment
		primary: {
			DEFAULT: '#fff', /* block */
			50: "#eee",
			'100': ` + "`#ddd`" + `,
		},
		accent:"hsl(200 50% 50%)",
		accent: 'rgb(0 0 0)',
		"it's": 'a \'quoted\' value',
		empty: {},
	}`)
	require.NoError(t, err)

	keys := make([]string, 0, len(tree))
	for _, f := range tree {
		keys = append(keys, f.Key)
	}
	assert.Equal(t, []string{"primary", "accent", "it's", "empty"}, keys)

	f, ok := tree.Lookup("primary", "50")
	require.True(t, ok)
	assert.Equal(t, "#eee", f.Value)
	f, ok = tree.Lookup("primary", "100")
	require.True(t, ok)
	assert.Equal(t, "#ddd", f.Value)

	f, _ = tree.Lookup("accent")
	assert.Equal(t, "rgb(0 0 0)", f.Value)
	f, _ = tree.Lookup("it's")
	assert.Equal(t, "a 'quoted' value", f.Value)

	f, ok = tree.Lookup("empty")
	require.True(t, ok)
	assert.False(t, f.IsLeaf())
	assert.Empty(t, f.Children)

	_, ok = tree.Lookup("accent", "x")
	assert.False(t, ok)
}

func TestParseTreeErrors(t *testing.T) {
	t.Parallel()

	for _, in := range []string{
		`{a: [1, 2]}`,
		`{a: , b: "#fff"}`,
		`{a: "x"`,
		`{a: 'unterminated}`,
		`{a: 1 /* open`,
		`"just a string"`,
		`{a: "#fff" "#000"}`,
	} {
		tree, err := ParseTree(in)
		assert.Nil(t, tree, in)
		var pe *ParseError
		assert.True(t, errors.As(err, &pe), "%s: %v", in, err)
	}
}

func TestFlattenKeepsDefaultSuffix(t *testing.T) {
	t.Parallel()

	tree, err := ParseTree(`{primary:{DEFAULT:"#fff",50:"#eee"}}`)
	require.NoError(t, err)
	assert.Equal(t, []Variable{
		{Name: "primary-DEFAULT", Value: "#fff"},
		{Name: "primary-50", Value: "#eee"},
	}, Flatten(tree))
}

func TestFlattenDeepNesting(t *testing.T) {
	t.Parallel()

	tree, err := ParseTree(`{brand: {ui: {bg: "#000"}}, flat: "red"}`)
	require.NoError(t, err)
	assert.Equal(t, []Variable{
		{Name: "brand-ui-bg", Value: "#000"},
		{Name: "flat", Value: "red"},
	}, Flatten(tree))
}

func TestConvert(t *testing.T) {
	t.Parallel()

	in := []Variable{{Name: "a", Value: "#ffffff"}, {Name: "b", Value: "hsl(200 50% 50%)"}, {Name: "c", Value: "#nothex"}}
	out := Convert(in)
	assert.Equal(t, "oklch(1.000 0.000 0.00)", out[0].Value)
	assert.Equal(t, "hsl(200 50% 50%)", out[1].Value)
	assert.Equal(t, "#nothex", out[2].Value)
	assert.Equal(t, "#ffffff", in[0].Value)
}

func TestRender(t *testing.T) {
	t.Parallel()

	got := Render([]Variable{{Name: "bg", Value: "red"}, {Name: "fg", Value: "blue"}})
	want := "@theme inline {\n" +
		"  --color-bg: var(--bg);\n" +
		"  --color-fg: var(--fg);\n" +
		"}\n\n" +
		":root {\n  --bg: red;\n  --fg: blue;\n}\n\n" +
		".dark {\n  --bg: red;\n  --fg: blue;\n}\n"
	assert.Equal(t, want, got)
}

func blockBody(css, selector string) string {
	start := strings.Index(css, selector+" {\n")
	if start < 0 {
		return ""
	}
	rest := css[start+len(selector)+3:]
	return rest[:strings.Index(rest, "}")]
}

func TestMigrateSampleConfig(t *testing.T) {
	t.Parallel()

	out := Migrate(sampleConfig)
	assert.Contains(t, out, "--primary-50:")
	assert.Contains(t, out, "--primary-DEFAULT:")
	assert.Contains(t, out, "--color-secondary-100: var(--secondary-100);")
	assert.Contains(t, out, "  --background: oklch(1.000 0.000 0.00);\n")

	root := blockBody(out, ":root")
	dark := blockBody(out, ".dark")
	require.NotEmpty(t, root)
	assert.Equal(t, root, dark)
	assert.Equal(t, 11, strings.Count(root, "--"))
	assert.NotContains(t, root, "#")
}

func TestMigrateFailures(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "// Could not find or extract 'colors' block", Migrate("module.exports = {}"))
	assert.Equal(t, "// Could not find or extract 'colors' block", Migrate("colors: { primary: {"))

	out := Migrate(`colors: { primary: ["#fff"] }`)
	assert.True(t, strings.HasPrefix(out, "// Error parsing config: "), out)

	_, err := Run("nothing here")
	assert.ErrorIs(t, err, ErrNoColorsBlock)
}
