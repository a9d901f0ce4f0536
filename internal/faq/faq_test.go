package faq

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTopics(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"cron", "env", "keygen", "palette", "tailwind"}, Topics())
}

func TestMarkdownAliases(t *testing.T) {
	t.Parallel()

	direct, err := Markdown("cron")
	require.NoError(t, err)
	viaAlias, err := Markdown(" CronMate ")
	require.NoError(t, err)
	assert.Equal(t, direct, viaAlias)
	assert.Contains(t, direct, "every 15 minutes")
}

func TestMarkdownUnknown(t *testing.T) {
	t.Parallel()

	for _, topic := range []string{"", "nope", "../faq", "cron.md"} {
		_, err := Markdown(topic)
		require.Error(t, err, topic)
		assert.Contains(t, err.Error(), "available: cron, env")
	}
}

func TestHTML(t *testing.T) {
	t.Parallel()

	page, err := HTML("keygen")
	require.NoError(t, err)
	assert.Contains(t, page, "<title>devkit FAQ: keygen</title>")
	assert.Contains(t, page, `<h2 id="how-long-should-it-be">How long should it be?</h2>`)
	assert.Contains(t, page, "<code>--length</code>")

	frag, err := Fragment("tailwind")
	require.NoError(t, err)
	assert.NotContains(t, frag, "<html")
	assert.Contains(t, frag, "<h1")
}
