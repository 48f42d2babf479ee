// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/perfgate/perfgate/internal/contract"
)

// NewMCPServer initializes and configures the Perfgate MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, store contract.BaselineStore) *server.MCPServer {
	s := server.NewMCPServer(
		"Perfgate Regression Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		store:   store,
	}

	// --- 1. Tool: plan_samples ---
	s.AddTool(mcp.NewTool("plan_samples",
		mcp.WithDescription("Compute the minimum benchmark sample count needed to detect a target effect."),
		mcp.WithNumber("effect_target", mcp.Description("Smallest relative change worth detecting, e.g. 0.05 for 5%."), mcp.Required()),
		mcp.WithNumber("rel_stddev", mcp.Description("Relative standard deviation of the measurement, e.g. 0.10 for 10%."), mcp.Required()),
		mcp.WithNumber("power", mcp.Description("Probability of detecting a true effect. Defaults to 0.80.")),
		mcp.WithNumber("alpha", mcp.Description("Two-sided significance level. Defaults to 0.05.")),
	), h.handlePlanSamples)

	// --- 2. Tool: analyze_samples ---
	s.AddTool(mcp.NewTool("analyze_samples",
		mcp.WithDescription("Estimate summary statistics and a bootstrap confidence interval for a benchmark sample file."),
		mcp.WithString("samples_path", mcp.Description("Path to the JSON or CSV sample file produced by the harness."), mcp.Required()),
		mcp.WithString("benchmark", mcp.Description("Benchmark identifier override.")),
		mcp.WithString("unit", mcp.Description("Metric unit (duration-ms or rate-per-sec)."), mcp.Enum("duration-ms", "rate-per-sec")),
		mcp.WithNumber("seed", mcp.Description("Deterministic resampling seed. Defaults to 42.")),
		mcp.WithNumber("warmup", mcp.Description("Leading warmup samples to trim.")),
	), h.handleAnalyzeSamples)

	// --- 3. Tool: detect_regression ---
	s.AddTool(mcp.NewTool("detect_regression",
		mcp.WithDescription("Compare a benchmark sample file against its stored baseline and classify the change."),
		mcp.WithString("samples_path", mcp.Description("Path to the JSON or CSV sample file produced by the harness."), mcp.Required()),
		mcp.WithString("benchmark", mcp.Description("Benchmark identifier override.")),
		mcp.WithString("unit", mcp.Description("Metric unit (duration-ms or rate-per-sec)."), mcp.Enum("duration-ms", "rate-per-sec")),
		mcp.WithString("tag", mcp.Description("RFC3339 date prefix to compare against a historical baseline instead of the latest.")),
		mcp.WithNumber("seed", mcp.Description("Deterministic resampling seed. Defaults to 42.")),
	), h.handleDetectRegression)

	return s
}

// StartMCPServer starts the Perfgate MCP server.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, store contract.BaselineStore) error {
	s := NewMCPServer(baseCfg, store)
	return server.ServeStdio(s)
}
