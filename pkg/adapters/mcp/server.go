// Package mcp exposes a Mosaic session manager as an MCP server, so agent
// tooling can drive and inspect tiling sessions over stdio.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aretw0/mosaic"
	"github.com/aretw0/mosaic/pkg/domain"
	"github.com/aretw0/mosaic/pkg/schema"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Sessions is the session orchestration surface the MCP server needs.
// Implemented by session.Manager.
type Sessions interface {
	Apply(ctx context.Context, sessionID string, event domain.Event) (*domain.State, error)
	Load(ctx context.Context, sessionID string) (*domain.State, error)
	List(ctx context.Context) ([]string, error)
}

// Server wraps a Mosaic session manager and exposes it as an MCP Server.
type Server struct {
	sessions  Sessions
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance.
func NewServer(sessions Sessions) *Server {
	s := &Server{
		sessions:  sessions,
		mcpServer: server.NewMCPServer("mosaic-mcp", mosaic.Version),
	}
	s.registerTools()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

func (s *Server) registerTools() {
	// TOOL: connect_client
	s.mcpServer.AddTool(mcp.NewTool("connect_client",
		mcp.WithDescription("Connect a device to a tiling session. Creates the client and its singleton cluster."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Session identifier")),
		mcp.WithString("client_id", mcp.Required(), mcp.Description("Device identifier")),
		mcp.WithNumber("width", mcp.Required(), mcp.Description("Screen width in pixels")),
		mcp.WithNumber("height", mcp.Required(), mcp.Description("Screen height in pixels")),
	), s.handleEvent(domain.EventConnect, func(args map[string]any) map[string]any {
		return map[string]any{
			"id":   args["client_id"],
			"size": map[string]any{"width": args["width"], "height": args["height"]},
		}
	}))

	// TOOL: swipe
	s.mcpServer.AddTool(mcp.NewTool("swipe",
		mcp.WithDescription("Register a swipe gesture. Two swipes from distinct clusters within the coincidence window merge them."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Session identifier")),
		mcp.WithString("client_id", mcp.Required(), mcp.Description("Swiping device")),
		mcp.WithString("direction", mcp.Required(), mcp.Description("UP, DOWN, LEFT or RIGHT")),
		mcp.WithNumber("x", mcp.Description("Swipe position x on the device screen")),
		mcp.WithNumber("y", mcp.Description("Swipe position y on the device screen")),
	), s.handleEvent(domain.EventSwipe, func(args map[string]any) map[string]any {
		return map[string]any{
			"id":        args["client_id"],
			"direction": args["direction"],
			"position":  map[string]any{"x": args["x"], "y": args["y"]},
		}
	}))

	// TOOL: leave_cluster
	s.mcpServer.AddTool(mcp.NewTool("leave_cluster",
		mcp.WithDescription("Detach a client from its cluster without disconnecting it."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Session identifier")),
		mcp.WithString("client_id", mcp.Required(), mcp.Description("Device identifier")),
	), s.handleEvent(domain.EventLeaveCluster, clientIDPayload))

	// TOOL: disconnect_client
	s.mcpServer.AddTool(mcp.NewTool("disconnect_client",
		mcp.WithDescription("Remove a client from the session entirely."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Session identifier")),
		mcp.WithString("client_id", mcp.Required(), mcp.Description("Device identifier")),
	), s.handleEvent(domain.EventDisconnect, clientIDPayload))

	// TOOL: tick
	s.mcpServer.AddTool(mcp.NewTool("tick",
		mcp.WithDescription("Apply the host policy's update hooks to every client and cluster payload."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Session identifier")),
	), s.handleEvent(domain.EventNextState, nil))

	// TOOL: get_state
	s.mcpServer.AddTool(mcp.NewTool("get_state",
		mcp.WithDescription("Get the latest snapshot of a session."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Session identifier")),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		sessionID, err := request.RequireString("session_id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		state, err := s.sessions.Load(ctx, sessionID)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("load failed: %v", err)), nil
		}
		return jsonResult(state)
	})

	// TOOL: list_sessions
	s.mcpServer.AddTool(mcp.NewTool("list_sessions",
		mcp.WithDescription("List the ids of all stored sessions."),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		sessions, err := s.sessions.List(ctx)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("list failed: %v", err)), nil
		}
		return jsonResult(map[string]any{"sessions": sessions})
	})
}

// handleEvent builds a tool handler that assembles an event envelope from
// tool arguments and applies it. buildData may be nil for payload-less
// events (NEXT_STATE).
func (s *Server) handleEvent(eventType domain.EventType, buildData func(map[string]any) map[string]any) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()
		sessionID, _ := args["session_id"].(string)
		if sessionID == "" {
			return mcp.NewToolResultError("session_id is required"), nil
		}

		envelope := map[string]any{"type": string(eventType)}
		if buildData != nil {
			envelope["data"] = buildData(args)
		}
		event, err := schema.DecodeEvent(envelope)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid event: %v", err)), nil
		}

		state, err := s.sessions.Apply(ctx, sessionID, event)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("event rejected: %v", err)), nil
		}
		return jsonResult(state)
	}
}

func clientIDPayload(args map[string]any) map[string]any {
	return map[string]any{"id": args["client_id"]}
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encode failed: %v", err)), nil
	}
	return mcp.NewToolResultText(string(b)), nil
}
