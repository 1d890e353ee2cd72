package app

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/bobmcallan/abacus/internal/catalog"
	"github.com/bobmcallan/abacus/internal/common"
	"github.com/bobmcallan/abacus/internal/models"
)

// registerTools exposes every calculator as an MCP tool, plus the
// get_version and list_calculators helpers.
func (a *App) registerTools() {
	s := a.MCPServer

	s.AddTool(createGetVersionTool(), handleGetVersion())
	s.AddTool(createListCalculatorsTool(), handleListCalculators(a.Registry))

	for _, c := range a.Registry.List("") {
		s.AddTool(calculatorTool(c.CalculatorDefinition), handleCalculator(a.Registry, c.Name, a.Logger))
	}
}

func createGetVersionTool() mcp.Tool {
	return mcp.NewTool("get_version",
		mcp.WithDescription("Get the Abacus server version and status. Use this to verify connectivity."),
		mcp.WithReadOnlyHintAnnotation(true),
	)
}

func handleGetVersion() server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result := fmt.Sprintf("Abacus MCP Server\nVersion: %s\nBuild: %s\nCommit: %s\nStatus: OK",
			common.GetVersion(), common.GetBuild(), common.GetGitCommit())
		return textResult(result), nil
	}
}

func createListCalculatorsTool() mcp.Tool {
	cats := make([]string, 0, len(models.Categories()))
	for _, c := range models.Categories() {
		cats = append(cats, string(c))
	}
	return mcp.NewTool("list_calculators",
		mcp.WithDescription("List the available calculators with their parameters, optionally for one category."),
		mcp.WithString("category", mcp.Description("Only this category"), mcp.Enum(cats...)),
		mcp.WithReadOnlyHintAnnotation(true),
	)
}

func handleListCalculators(reg *catalog.Registry) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		category := models.Category(request.GetString("category", ""))
		return jsonResult(reg.Definitions(category))
	}
}

// calculatorTool converts a calculator definition into an MCP tool schema.
func calculatorTool(def models.CalculatorDefinition) mcp.Tool {
	desc := def.Title + ". " + def.Description
	if def.Formula != "" {
		desc += " Formula: " + def.Formula
	}
	opts := []mcp.ToolOption{
		mcp.WithDescription(desc),
		mcp.WithTitleAnnotation(def.Title),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(def.Name == "currency"),
	}
	for _, p := range def.Params {
		opts = append(opts, paramOption(p))
	}
	return mcp.NewTool(def.Name, opts...)
}

func paramOption(p models.ParamDefinition) mcp.ToolOption {
	props := []mcp.PropertyOption{}
	desc := p.Description
	if p.Required {
		props = append(props, mcp.Required())
	}

	switch p.Type {
	case models.ParamString:
		if len(p.Enum) > 0 {
			props = append(props, mcp.Enum(p.Enum...))
		}
		if s, ok := p.Default.(string); ok {
			props = append(props, mcp.DefaultString(s))
		}
		return mcp.WithString(p.Name, append(props, mcp.Description(desc))...)
	case models.ParamBoolean:
		if b, ok := p.Default.(bool); ok {
			props = append(props, mcp.DefaultBool(b))
		}
		return mcp.WithBoolean(p.Name, append(props, mcp.Description(desc))...)
	case models.ParamArray:
		return mcp.WithArray(p.Name, append(props, mcp.Description(desc))...)
	}

	// number and integer
	if len(p.Enum) > 0 {
		desc += " (one of " + strings.Join(p.Enum, ", ") + ")"
	}
	switch v := p.Default.(type) {
	case int:
		props = append(props, mcp.DefaultNumber(float64(v)))
	case float64:
		props = append(props, mcp.DefaultNumber(v))
	}
	if p.Type == models.ParamInteger {
		desc += " (whole number)"
	}
	return mcp.WithNumber(p.Name, append(props, mcp.Description(desc))...)
}

// handleCalculator runs one calculator. Input errors are reported as tool
// errors so the model can correct its arguments.
func handleCalculator(reg *catalog.Registry, name string, logger *common.Logger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		res, err := reg.Run(ctx, name, request.GetArguments())
		if err != nil {
			logger.Debug().Err(err).Str("calculator", name).Msg("MCP calculation failed")
			return errorResult("Error: " + err.Error()), nil
		}
		return jsonResult(res)
	}
}

func textResult(text string) *mcp.CallToolResult {
	return mcp.NewToolResultText(text)
}

func errorResult(text string) *mcp.CallToolResult {
	return mcp.NewToolResultError(text)
}

func jsonResult(v interface{}) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errorResult(fmt.Sprintf("Error: encoding result: %v", err)), nil
	}
	return textResult(string(data)), nil
}
