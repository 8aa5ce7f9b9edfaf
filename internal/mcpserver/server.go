// Package mcpserver exposes the tool registry over the Model Context Protocol.
package mcpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"leantime-mcp/internal/tools"
)

// ServerName is the implementation name announced during initialization.
const ServerName = "leantime-mcp"

// Dispatcher runs tools by name.
type Dispatcher interface {
	Registry() *tools.Registry
	Dispatch(ctx context.Context, name string, input map[string]interface{}) (map[string]interface{}, error)
}

// New builds an MCP server with one MCP tool per registered tool. Calls are
// routed through dispatcher, so each call gets its own backend session.
func New(dispatcher Dispatcher, version string, logger *slog.Logger) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{Name: ServerName, Version: version}, nil)

	for _, d := range dispatcher.Registry().Descriptors() {
		server.AddTool(&mcp.Tool{
			Name:        d.Name,
			Description: d.Description,
			InputSchema: d.InputSchema,
		}, callHandler(dispatcher, d.Name, logger))
	}

	return server
}

func callHandler(dispatcher Dispatcher, name string, logger *slog.Logger) mcp.ToolHandler {
	return func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		input, err := decodeArguments(req.Params.Arguments)
		if err != nil {
			return errorResult(err), nil
		}

		output, err := dispatcher.Dispatch(ctx, name, input)
		if err != nil {
			// Tool failures are reported in-band so the model can see them
			logger.Debug("mcp tool call failed", "tool", name, "error", err)
			return errorResult(err), nil
		}

		text, err := json.Marshal(output)
		if err != nil {
			return nil, fmt.Errorf("encode %s output: %w", name, err)
		}
		return &mcp.CallToolResult{
			Content:           []mcp.Content{&mcp.TextContent{Text: string(text)}},
			StructuredContent: output,
		}, nil
	}
}

func decodeArguments(raw json.RawMessage) (map[string]interface{}, error) {
	input := map[string]interface{}{}
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return input, nil
	}
	if err := json.Unmarshal(trimmed, &input); err != nil {
		return nil, fmt.Errorf("invalid arguments: %w", err)
	}
	return input, nil
}

func errorResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: err.Error()}},
		IsError: true,
	}
}

// HTTPHandler serves server over the streamable HTTP transport.
func HTTPHandler(server *mcp.Server) http.Handler {
	return mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return server
	}, nil)
}

// RunStdio serves server on stdin/stdout until ctx is done or the client
// disconnects.
func RunStdio(ctx context.Context, server *mcp.Server) error {
	return server.Run(ctx, &mcp.StdioTransport{})
}
