// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/janus-clew/clew/internal/contract"
)

// NewMCPServer initializes and configures the clew MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, version string) *server.MCPServer {
	s := server.NewMCPServer(
		"Clew Growth Analysis Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		version: version,
	}

	// --- 1. Tool: analyze_repositories ---
	s.AddTool(mcp.NewTool("analyze_repositories",
		mcp.WithDescription("Analyze one or more local Git repositories: complexity score, technology set and growth versus the previous run. The result is appended to the growth history."),
		mcp.WithString("repos", mcp.Description("Comma-separated list of repository paths to analyze."), mcp.Required()),
	), h.handleAnalyzeRepositories)

	// --- 2. Tool: get_latest_analysis ---
	s.AddTool(mcp.NewTool("get_latest_analysis",
		mcp.WithDescription("Return the most recent stored analysis batch from the growth history."),
	), h.handleGetLatestAnalysis)

	// --- 3. Tool: get_growth_history ---
	s.AddTool(mcp.NewTool("get_growth_history",
		mcp.WithDescription("Return stored analysis batches, newest first."),
		mcp.WithNumber("limit", mcp.Description("Limit the number of batches returned.")),
	), h.handleGetGrowthHistory)

	return s
}

// StartMCPServer starts the clew MCP server over stdio.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, version string) error {
	s := NewMCPServer(baseCfg, version)
	return server.ServeStdio(s)
}
