package server

import (
	"context"
	"encoding/json"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/wsyqhh/Accessibility-Service/internal/action"
	"github.com/wsyqhh/Accessibility-Service/internal/model"
	"github.com/wsyqhh/Accessibility-Service/internal/version"
)

// ServeMCP exposes the same operations as the HTTP API as MCP tools over
// stdio, for agent clients that speak the protocol directly.
func (s *Server) ServeMCP() error {
	srv := mcpserver.NewMCPServer("a11y-bridge", version.Version)

	srv.AddTool(
		mcp.NewTool("screen",
			mcp.WithDescription("Read the current UI hierarchy as a flat node list with breadth-first IDs"),
		),
		s.mcpScreen,
	)
	srv.AddTool(
		mcp.NewTool("click",
			mcp.WithDescription("Find an element by its exact label and click it"),
			mcp.WithString("text", mcp.Required(), mcp.Description("Label to match against element text or description")),
		),
		s.mcpClick,
	)
	srv.AddTool(
		mcp.NewTool("tap",
			mcp.WithDescription("Tap at absolute screen coordinates"),
			mcp.WithNumber("x", mcp.Required(), mcp.Description("X coordinate in pixels")),
			mcp.WithNumber("y", mcp.Required(), mcp.Description("Y coordinate in pixels")),
		),
		s.mcpTap,
	)
	srv.AddTool(
		mcp.NewTool("swipe",
			mcp.WithDescription("Swipe between two points"),
			mcp.WithNumber("x1", mcp.Required(), mcp.Description("Start X")),
			mcp.WithNumber("y1", mcp.Required(), mcp.Description("Start Y")),
			mcp.WithNumber("x2", mcp.Required(), mcp.Description("End X")),
			mcp.WithNumber("y2", mcp.Required(), mcp.Description("End Y")),
			mcp.WithNumber("dur", mcp.Description("Duration in milliseconds (default 300)")),
		),
		s.mcpSwipe,
	)
	srv.AddTool(
		mcp.NewTool("key",
			mcp.WithDescription("Press a named key: home, back, enter, menu"),
			mcp.WithString("name", mcp.Required(), mcp.Description("Key name")),
		),
		s.mcpKey,
	)

	return mcpserver.ServeStdio(srv)
}

func (s *Server) mcpScreen(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	snap := s.store.Current()
	resp := screenResponse{
		TS:    snap.Captured.UnixMilli(),
		Rev:   snap.Revision,
		Pkg:   snap.Package,
		Nodes: model.Flatten(snap.Root),
	}
	return jsonToolResult(resp), nil
}

func (s *Server) mcpClick(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text := stringArg(request.GetArguments(), "text")
	if text == "" {
		return mcp.NewToolResultError("text is required"), nil
	}
	ok := s.exec.ClickLabel(ctx, s.store.Current().Root, text)
	return jsonToolResult(okResponse{OK: ok}), nil
}

func (s *Server) mcpTap(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	x, okX := intArg(params, "x")
	y, okY := intArg(params, "y")
	if !okX || !okY {
		return mcp.NewToolResultError("x and y are required integers"), nil
	}
	ok := s.exec.Tap(ctx, x, y)
	return jsonToolResult(okResponse{OK: ok}), nil
}

func (s *Server) mcpSwipe(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	coords := make(map[string]int, 4)
	for _, name := range []string{"x1", "y1", "x2", "y2"} {
		v, valid := intArg(params, name)
		if !valid {
			return mcp.NewToolResultError(name + " is a required integer"), nil
		}
		coords[name] = v
	}
	dur := action.DefaultSwipeDuration
	if ms, valid := intArg(params, "dur"); valid {
		dur = time.Duration(ms) * time.Millisecond
	}
	ok := s.exec.Swipe(ctx, coords["x1"], coords["y1"], coords["x2"], coords["y2"], dur)
	return jsonToolResult(okResponse{OK: ok}), nil
}

func (s *Server) mcpKey(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name := stringArg(request.GetArguments(), "name")
	ok := s.exec.Key(ctx, name)
	return jsonToolResult(okResponse{OK: ok}), nil
}

func jsonToolResult(v any) *mcp.CallToolResult {
	b, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError("serialize result: " + err.Error())
	}
	return mcp.NewToolResultText(string(b))
}

func stringArg(params map[string]any, key string) string {
	if v, ok := params[key].(string); ok {
		return v
	}
	return ""
}

// intArg reads a numeric argument; MCP clients send numbers as float64.
func intArg(params map[string]any, key string) (int, bool) {
	switch v := params[key].(type) {
	case float64:
		return int(v), true
	case int:
		return v, true
	default:
		return 0, false
	}
}
