package migrate

import (
	"fmt"
	"strings"
)

// Render emits the @theme inline index followed by :root and .dark blocks.
// The .dark block repeats the :root values.
func Render(vars []Variable) string {
	var b strings.Builder
	b.WriteString("@theme inline {\n")
	for _, v := range vars {
		fmt.Fprintf(&b, "  --color-%s: var(--%s);\n", v.Name, v.Name)
	}
	b.WriteString("}\n\n")
	writeBlock(&b, ":root", vars)
	b.WriteString("\n")
	writeBlock(&b, ".dark", vars)
	return b.String()
}

func writeBlock(b *strings.Builder, selector string, vars []Variable) {
	b.WriteString(selector + " {\n")
	for _, v := range vars {
		fmt.Fprintf(b, "  --%s: %s;\n", v.Name, v.Value)
	}
	b.WriteString("}\n")
}
