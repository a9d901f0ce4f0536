// Package mcpserver exposes the tool registry over the Model Context Protocol.
package mcpserver

import (
	"context"
	"errors"
	"strings"

	"devkit/internal/appinfo"
	"devkit/internal/logging"
	"devkit/internal/tools"

	"github.com/charmbracelet/log"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type Server struct {
	registry *tools.Registry
	logger   *log.Logger
	server   *mcp.Server
}

// New registers every tool in reg on a fresh MCP server.
func New(reg *tools.Registry, logger *log.Logger) (*Server, error) {
	if reg == nil {
		return nil, errors.New("mcp server requires a tool registry")
	}
	if logger == nil {
		logger = logging.Discard()
	}
	s := &Server{
		registry: reg,
		logger:   logger,
		server: mcp.NewServer(&mcp.Implementation{
			Name:    appinfo.Name,
			Version: appinfo.Version,
		}, nil),
	}
	for _, def := range reg.Definitions() {
		s.server.AddTool(toolFromDefinition(def), s.handler(def.Name))
	}
	return s, nil
}

func toolFromDefinition(def tools.Definition) *mcp.Tool {
	schema := def.Parameters
	if schema == nil {
		schema = map[string]any{"type": "object", "properties": map[string]any{}}
	}
	return &mcp.Tool{
		Name:        def.Name,
		Description: strings.TrimSpace(def.Description),
		InputSchema: schema,
	}
}

// handler maps a tool failure onto an IsError result so the client sees the
// message instead of a protocol error.
func (s *Server) handler(name string) mcp.ToolHandler {
	return func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args []byte
		if req != nil && req.Params != nil {
			args = req.Params.Arguments
		}
		out, err := s.registry.Call(ctx, name, args)
		if err != nil {
			s.logger.Debug("tool call failed", "tool", name, "err", err)
			return &mcp.CallToolResult{
				IsError: true,
				Content: []mcp.Content{&mcp.TextContent{Text: err.Error()}},
			}, nil
		}
		s.logger.Debug("tool call", "tool", name, "bytes", len(out))
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: out}},
		}, nil
	}
}

// MCP returns the underlying server, mainly for tests that attach their own
// transport.
func (s *Server) MCP() *mcp.Server {
	return s.server
}

// ServeStdio blocks serving over stdin/stdout until ctx ends or the client
// disconnects.
func (s *Server) ServeStdio(ctx context.Context) error {
	s.logger.Info("serving MCP over stdio", "tools", len(s.registry.Definitions()))
	return s.Serve(ctx, &mcp.StdioTransport{})
}

func (s *Server) Serve(ctx context.Context, transport mcp.Transport) error {
	err := s.server.Run(ctx, transport)
	if err != nil && errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
