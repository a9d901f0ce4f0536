package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"devkit/internal/appinfo"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// NewClient returns an MCP client identifying as devkit.
func NewClient() *mcp.Client {
	return mcp.NewClient(&mcp.Implementation{
		Name:    appinfo.Name + "-client",
		Version: appinfo.Version,
	}, nil)
}

// ListTools pages through every tool the session exposes.
func ListTools(ctx context.Context, session *mcp.ClientSession) ([]*mcp.Tool, error) {
	out := make([]*mcp.Tool, 0)
	cursor := ""
	for {
		params := &mcp.ListToolsParams{}
		if cursor != "" {
			params.Cursor = cursor
		}
		res, err := session.ListTools(ctx, params)
		if err != nil {
			return nil, err
		}
		out = append(out, res.Tools...)
		if res.NextCursor == "" {
			return out, nil
		}
		cursor = res.NextCursor
	}
}

// CallText invokes name with raw JSON args and flattens the text content.
// An IsError result comes back as an error carrying the tool's message.
func CallText(ctx context.Context, session *mcp.ClientSession, name string, args json.RawMessage) (string, error) {
	var parsed any
	if len(args) > 0 {
		if err := json.Unmarshal(args, &parsed); err != nil {
			return "", fmt.Errorf("invalid arguments: %w", err)
		}
	}
	res, err := session.CallTool(ctx, &mcp.CallToolParams{Name: name, Arguments: parsed})
	if err != nil {
		return "", err
	}
	text, err := formatResult(res)
	if err != nil {
		return "", err
	}
	if res.IsError {
		return "", fmt.Errorf("%s: %s", name, text)
	}
	return text, nil
}

func formatResult(res *mcp.CallToolResult) (string, error) {
	if res == nil {
		return "", nil
	}
	if res.StructuredContent == nil && allText(res.Content) {
		return joinText(res.Content), nil
	}
	data, err := json.Marshal(res)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func allText(content []mcp.Content) bool {
	for _, item := range content {
		if _, ok := item.(*mcp.TextContent); !ok {
			return false
		}
	}
	return true
}

func joinText(content []mcp.Content) string {
	parts := make([]string, 0, len(content))
	for _, item := range content {
		if text, ok := item.(*mcp.TextContent); ok {
			parts = append(parts, text.Text)
		}
	}
	return strings.Join(parts, "\n")
}
