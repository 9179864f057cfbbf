package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/janus-clew/clew/core"
	"github.com/janus-clew/clew/internal/contract"
	"github.com/janus-clew/clew/internal/history"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	version string
}

func (h *toolHandler) handleAnalyzeRepositories(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()

	var repos []string
	for _, part := range strings.Split(request.GetString("repos", ""), ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			repos = append(repos, trimmed)
		}
	}
	if len(repos) == 0 {
		return mcp.NewToolResultError("at least one repository path is required"), nil
	}

	store := history.NewFileStore(cfg.HistoryDir)
	engine := core.NewEngine(contract.NewLocalGitClient(), store, h.version)

	batch, err := engine.Run(ctx, repos, false)
	if err != nil {
		// A failed history write still leaves a displayable batch.
		if batch == nil {
			return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
		}
		batch.Errors = append(batch.Errors, err.Error())
	}

	jsonData, _ := json.MarshalIndent(batch, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetLatestAnalysis(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	store := history.NewFileStore(h.baseCfg.HistoryDir)

	latest, err := store.Latest()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to read history: %v", err)), nil
	}
	if latest == nil {
		return mcp.NewToolResultError("no analysis history found. Run analyze_repositories first"), nil
	}

	jsonData, _ := json.MarshalIndent(latest, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetGrowthHistory(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	store := history.NewFileStore(h.baseCfg.HistoryDir)

	entries, err := store.LoadAll()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to read history: %v", err)), nil
	}

	if limit := request.GetInt("limit", 0); limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}

	out := make([]map[string]any, len(entries))
	for i, entry := range entries {
		out[i] = map[string]any{"file": entry.Name, "batch": entry.Batch}
	}

	jsonData, _ := json.MarshalIndent(out, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
