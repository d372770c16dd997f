package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/ludo-technologies/pyformat/domain"
	"github.com/mark3labs/mcp-go/mcp"
)

// HandlerSet exposes MCP tool handlers with shared dependencies.
type HandlerSet struct {
	deps *Dependencies
}

// NewHandlerSet constructs a handler set.
func NewHandlerSet(deps *Dependencies) *HandlerSet {
	if deps == nil {
		deps = NewDependencies(nil, nil)
	}
	return &HandlerSet{deps: deps}
}

// toolInput holds the arguments shared by both tools
type toolInput struct {
	code      string
	path      string
	recursive bool
}

// parseInput reads code or path from the arguments. Exactly one of them
// must be given.
func parseInput(request mcp.CallToolRequest) (map[string]interface{}, *toolInput, *mcp.CallToolResult) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, nil, mcp.NewToolResultError("invalid arguments format")
	}

	in := &toolInput{recursive: true}
	if v, ok := args["code"]; ok {
		s, ok := v.(string)
		if !ok {
			return nil, nil, mcp.NewToolResultError("code parameter must be a string")
		}
		in.code = s
	}
	if v, ok := args["path"]; ok {
		s, ok := v.(string)
		if !ok {
			return nil, nil, mcp.NewToolResultError("path parameter must be a string")
		}
		in.path = s
	}
	if r, ok := args["recursive"].(bool); ok {
		in.recursive = r
	}

	switch {
	case in.code == "" && in.path == "":
		return nil, nil, mcp.NewToolResultError("either code or path parameter is required")
	case in.code != "" && in.path != "":
		return nil, nil, mcp.NewToolResultError("code and path parameters are mutually exclusive")
	}
	return args, in, nil
}

func (in *toolInput) selection(cfgInclude, cfgExclude []string) domain.FileSelection {
	return domain.FileSelection{
		Paths:           []string{in.path},
		Recursive:       in.recursive,
		IncludePatterns: cfgInclude,
		ExcludePatterns: cfgExclude,
	}
}

// HandleFormatCode handles the format_code tool
func (h *HandlerSet) HandleFormatCode(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, in, errResult := parseInput(request)
	if errResult != nil {
		return errResult, nil
	}

	engine, _ := args["engine"].(string)
	lineLength := 0
	if ll, ok := args["line_length"].(float64); ok {
		lineLength = int(ll)
	}

	formatter, err := h.deps.BuildFormatter(engine, lineLength)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to create formatter: %v", err)), nil
	}

	if in.code != "" {
		result, err := formatter.Format(ctx, in.code)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("formatting failed: %v", err)), nil
		}
		return jsonResult(map[string]interface{}{
			"formatted":    result.Text,
			"changed":      result.Changed(),
			"engine":       result.Engine,
			"lines_before": result.LinesBefore,
			"lines_after":  result.LinesAfter,
			"characters":   result.Characters,
			"duration_ms":  result.Duration.Milliseconds(),
		})
	}

	formatUC, err := h.deps.BuildFormatUseCase(formatter)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to create formatter: %v", err)), nil
	}

	cfg := h.deps.Config()
	summary, err := formatUC.Execute(ctx, domain.FormatRequest{
		FileSelection: in.selection(cfg.Analysis.IncludePatterns, cfg.Analysis.ExcludePatterns),
		Check:         true,
		Output:        io.Discard,
	})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("formatting failed: %v", err)), nil
	}
	return jsonResult(summary)
}

// HandleAnalyzeCode handles the analyze_code tool
func (h *HandlerSet) HandleAnalyzeCode(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	_, in, errResult := parseInput(request)
	if errResult != nil {
		return errResult, nil
	}

	analyzeUC, err := h.deps.BuildAnalyzeUseCase()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to create analyzer: %v", err)), nil
	}

	req := domain.AnalyzeRequest{Format: domain.OutputFormatJSON}
	if in.code != "" {
		req.Input = strings.NewReader(in.code)
	} else {
		cfg := h.deps.Config()
		req.FileSelection = in.selection(cfg.Analysis.IncludePatterns, cfg.Analysis.ExcludePatterns)
	}

	var out bytes.Buffer
	req.Output = &out
	if _, err := analyzeUC.Execute(ctx, req); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
	}

	return mcp.NewToolResultText(strings.TrimSpace(out.String())), nil
}

func jsonResult(v interface{}) (*mcp.CallToolResult, error) {
	jsonData, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(jsonData)), nil
}
