package mcpserver

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"devkit/internal/history"
	"devkit/internal/tools"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func connect(t *testing.T) *mcp.ClientSession {
	t.Helper()

	reg := tools.NewDefaultRegistry(tools.Options{
		Timezone: "UTC",
		RunCount: 2,
		History:  history.Nop{},
		Now:      func() time.Time { return time.Date(2026, 3, 10, 10, 7, 30, 0, time.UTC) },
	})
	srv, err := New(reg, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	serverTransport, clientTransport := mcp.NewInMemoryTransports()
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, serverTransport) }()

	session, err := NewClient().Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = session.Close()
		cancel()
		<-done
	})
	return session
}

func TestNewRequiresRegistry(t *testing.T) {
	t.Parallel()

	_, err := New(nil, nil)
	require.Error(t, err)
}

func TestListTools(t *testing.T) {
	t.Parallel()

	session := connect(t)
	list, err := ListTools(context.Background(), session)
	require.NoError(t, err)

	names := make([]string, 0, len(list))
	for _, tool := range list {
		names = append(names, tool.Name)
		assert.NotEmpty(t, tool.Description, tool.Name)
	}
	assert.Contains(t, names, "cron_from_phrase")
	assert.Contains(t, names, "tailwind_migrate_colors")
	assert.Contains(t, names, "secret_key_generate")
	assert.Len(t, names, 9)
}

func TestCallTool(t *testing.T) {
	t.Parallel()

	session := connect(t)
	out, err := CallText(context.Background(), session, "cron_from_phrase", json.RawMessage(`{"phrase":"every 2 hours"}`))
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "0 */2 * * *", got["expression"])
	assert.Equal(t, []any{"3/10/2026, 12:00:00 PM", "3/10/2026, 2:00:00 PM"}, got["next_runs"])
}

func TestCallToolErrorIsResult(t *testing.T) {
	t.Parallel()

	session := connect(t)
	res, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      "cron_from_phrase",
		Arguments: map[string]any{"phrase": "whenever"},
	})
	require.NoError(t, err)
	assert.True(t, res.IsError)
	text := joinText(res.Content)
	assert.Contains(t, text, "Unsupported phrase")

	_, err = CallText(context.Background(), session, "palette_shades", json.RawMessage(`{"color":"#zzzzzz"}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "palette_shades:")
}
