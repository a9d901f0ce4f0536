// Package faq serves the embedded help pages for each tool.
package faq

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"path"
	"sort"
	"strings"
	"sync"

	"devkit/internal/appinfo"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

//go:embed topics/*.md
var topicsFS embed.FS

var aliases = map[string]string{
	"cronmate":  "cron",
	"schedule":  "cron",
	"migrate":   "tailwind",
	"theme":     "tailwind",
	"unfold":    "palette",
	"envbuddy":  "env",
	"dotenv":    "env",
	"secret":    "keygen",
	"django":    "keygen",
	"secretkey": "keygen",
}

// Topics lists the available topic names in sorted order.
func Topics() []string {
	entries, err := topicsFS.ReadDir("topics")
	if err != nil {
		return nil
	}
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, strings.TrimSuffix(e.Name(), ".md"))
	}
	sort.Strings(out)
	return out
}

func resolve(topic string) string {
	t := strings.ToLower(strings.TrimSpace(topic))
	if a, ok := aliases[t]; ok {
		return a
	}
	return t
}

// Markdown returns the raw page for topic or one of its aliases.
func Markdown(topic string) (string, error) {
	name := resolve(topic)
	if name == "" || strings.ContainsAny(name, `/\.`) {
		return "", unknownTopic(topic)
	}
	b, err := topicsFS.ReadFile(path.Join("topics", name+".md"))
	if err != nil {
		return "", unknownTopic(topic)
	}
	return string(b), nil
}

func unknownTopic(topic string) error {
	return fmt.Errorf("unknown faq topic %q (available: %s)", topic, strings.Join(Topics(), ", "))
}

var faqMarkdown = goldmark.New(
	goldmark.WithExtensions(extension.GFM, extension.Linkify),
	goldmark.WithParserOptions(parser.WithAutoHeadingID()),
	goldmark.WithRendererOptions(html.WithXHTML()),
)

var faqMarkdownMu sync.Mutex

// Fragment renders the topic body as HTML without a page wrapper.
func Fragment(topic string) (string, error) {
	md, err := Markdown(topic)
	if err != nil {
		return "", err
	}
	var out bytes.Buffer
	faqMarkdownMu.Lock()
	err = faqMarkdown.Convert([]byte(md), &out)
	faqMarkdownMu.Unlock()
	if err != nil {
		return "", fmt.Errorf("render faq %s: %w", topic, err)
	}
	return out.String(), nil
}

var pageTemplate = template.Must(template.New("faq").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body{font-family:system-ui,sans-serif;max-width:46rem;margin:2rem auto;padding:0 1rem;line-height:1.55;color:#1f2937}
code{background:#f3f4f6;padding:.1rem .3rem;border-radius:4px}
h2{margin-top:2rem;border-bottom:1px solid #e5e7eb}
footer{margin-top:3rem;color:#6b7280;font-size:.85rem}
</style>
</head>
<body>
{{.Body}}
<footer>{{.Footer}}</footer>
</body>
</html>
`))

type pageData struct {
	Title  string
	Body   template.HTML
	Footer string
}

// HTML renders the topic as a standalone page.
func HTML(topic string) (string, error) {
	body, err := Fragment(topic)
	if err != nil {
		return "", err
	}
	data := pageData{
		Title:  appinfo.Name + " FAQ: " + resolve(topic),
		Body:   template.HTML(body),
		Footer: appinfo.Display(),
	}
	var out bytes.Buffer
	if err := pageTemplate.Execute(&out, data); err != nil {
		return "", err
	}
	return out.String(), nil
}
