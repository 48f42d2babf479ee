package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/perfgate/perfgate/core"
	"github.com/perfgate/perfgate/internal/contract"
	"github.com/perfgate/perfgate/schema"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	store   contract.BaselineStore
}

func (h *toolHandler) handlePlanSamples(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := core.PlanParams{
		EffectSizeTarget: request.GetFloat("effect_target", 0),
		RelativeStdDev:   request.GetFloat("rel_stddev", 0),
		Power:            request.GetFloat("power", 0),
		Alpha:            request.GetFloat("alpha", 0),
	}

	plan, err := core.PlanSampleSize(params)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("planning failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(plan, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleAnalyzeSamples(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.configForRequest(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	report, err := core.GetAnalysisReport(ctx, cfg, core.NewSampleSource(cfg))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(report, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleDetectRegression(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.configForRequest(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	cfg.BaselineTag = request.GetString("tag", "")

	report, err := core.GetComparisonReport(ctx, cfg, core.NewSampleSource(cfg), h.store)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("detection failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(report, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

// configForRequest clones the base config and applies the sample input
// parameters shared by the analyze and detect tools.
func (h *toolHandler) configForRequest(request mcp.CallToolRequest) (*contract.Config, error) {
	cfg := h.baseCfg.Clone()

	cfg.SamplesPath = request.GetString("samples_path", "")
	if cfg.SamplesPath == "" {
		return nil, fmt.Errorf("samples_path is required")
	}
	if b := request.GetString("benchmark", ""); b != "" {
		cfg.BenchmarkID = b
	}
	if u := request.GetString("unit", ""); u != "" {
		unit := schema.MetricUnit(u)
		if _, ok := schema.ValidMetricUnits[unit]; !ok {
			return nil, fmt.Errorf("invalid unit %q", u)
		}
		cfg.Unit = unit
	}
	if s := request.GetFloat("seed", 0); s > 0 {
		cfg.Seed = uint64(s)
	}
	if w := request.GetInt("warmup", -1); w >= 0 {
		cfg.WarmupCount = w
	}
	return cfg, nil
}
