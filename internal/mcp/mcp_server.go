// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/huangsam/lifespan/internal/contract"
	"github.com/huangsam/lifespan/internal/log"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the Lifespan MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, mgr contract.CacheManager) *server.MCPServer {
	s := server.NewMCPServer(
		"Lifespan Attention Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		mgr:     mgr,
	}

	s.AddTool(mcp.NewTool("analyze_attention",
		mcp.WithDescription("Compute peak, half-life, total attention and decay for every event in an attention CSV, classify events as shock or persistent, and fit total attention on peak per regime."),
		mcp.WithString("path", mcp.Description("Path to the attention CSV file."), mcp.Required()),
		mcp.WithNumber("limit", mcp.Description("Limit the number of metrics rows returned (0 returns all).")),
		mcp.WithString("encoding", mcp.Description("Input encoding. Defaults to 'auto'."), mcp.Enum("auto", "latin1", "utf8")),
	), h.handleAnalyzeAttention)

	s.AddTool(mcp.NewTool("get_event_metrics",
		mcp.WithDescription("Return the metrics record and regime of a single event from an attention CSV."),
		mcp.WithString("path", mcp.Description("Path to the attention CSV file."), mcp.Required()),
		mcp.WithString("event", mcp.Description("Event column name."), mcp.Required()),
		mcp.WithString("encoding", mcp.Description("Input encoding. Defaults to 'auto'."), mcp.Enum("auto", "latin1", "utf8")),
	), h.handleGetEventMetrics)

	return s
}

// StartMCPServer starts the Lifespan MCP server on stdio.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, mgr contract.CacheManager) error {
	s := NewMCPServer(baseCfg, mgr)
	log.Infow("serving MCP on stdio", "cache_backend", baseCfg.CacheBackend)
	return server.ServeStdio(s)
}
