package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/huangsam/lifespan/core"
	"github.com/huangsam/lifespan/internal/contract"
	"github.com/huangsam/lifespan/internal/log"
	"github.com/huangsam/lifespan/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	mgr     contract.CacheManager
}

// requestConfig derives a per-call config from the base config and the shared
// path and encoding arguments.
func (h *toolHandler) requestConfig(request mcp.CallToolRequest) (*contract.Config, error) {
	cfg := h.baseCfg.Clone()
	cfg.InputPath = request.GetString("path", "")
	if cfg.InputPath == "" {
		return nil, fmt.Errorf("path is required")
	}
	if e := request.GetString("encoding", ""); e != "" {
		enc := schema.Encoding(e)
		if _, ok := schema.ValidEncodings[enc]; !ok {
			return nil, fmt.Errorf("invalid encoding %q", e)
		}
		cfg.Encoding = enc
	}
	return cfg, nil
}

func (h *toolHandler) handleAnalyzeAttention(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.requestConfig(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid parameters: %v", err)), nil
	}
	limit := request.GetInt("limit", 0)
	if limit < 0 || limit > contract.MaxResultLimit {
		return mcp.NewToolResultError(fmt.Sprintf("invalid parameters: limit must be between 0 and %d", contract.MaxResultLimit)), nil
	}

	report, err := core.GetAnalysisReport(core.WithSuppressHeader(ctx), cfg, h.mgr)
	if err != nil {
		log.Errorw("analysis failed", "path", cfg.InputPath, "error", err)
		return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
	}
	report.Metrics = report.Top(limit)

	jsonData, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encoding report failed: %v", err)), nil
	}
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetEventMetrics(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.requestConfig(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid parameters: %v", err)), nil
	}
	event := request.GetString("event", "")
	if event == "" {
		return mcp.NewToolResultError("invalid parameters: event is required"), nil
	}

	report, err := core.GetAnalysisReport(core.WithSuppressHeader(ctx), cfg, h.mgr)
	if err != nil {
		log.Errorw("analysis failed", "path", cfg.InputPath, "error", err)
		return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
	}
	for _, m := range report.Metrics {
		if m.Event == event {
			jsonData, err := json.MarshalIndent(m, "", "  ")
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("encoding metrics failed: %v", err)), nil
			}
			return mcp.NewToolResultText(string(jsonData)), nil
		}
	}
	return mcp.NewToolResultError(fmt.Sprintf("event %q not found or has no attention", event)), nil
}
