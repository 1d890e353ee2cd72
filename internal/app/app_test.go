package app

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobmcallan/abacus/internal/common"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	cfg := common.NewDefaultConfig()
	cfg.Clients.ExchangeRate.Offline = true
	a := New(cfg, common.NewSilentLogger())
	t.Cleanup(a.Close)
	return a
}

func TestNewApp_InitializesAllServices(t *testing.T) {
	a, err := NewApp(writeTestConfig(t))
	require.NoError(t, err)
	defer a.Close()

	assert.NotNil(t, a.Config)
	assert.NotNil(t, a.Logger)
	assert.NotNil(t, a.Metrics)
	assert.NotNil(t, a.Currency)
	assert.NotNil(t, a.Registry)
	assert.NotNil(t, a.MCPServer)
	assert.False(t, a.StartupTime.IsZero())
	assert.True(t, a.Config.Clients.ExchangeRate.Offline)

	_, ok := a.Registry.Get("currency")
	assert.True(t, ok)
}

func TestNewApp_InvalidConfigReturnsError(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "bad.toml")
	require.NoError(t, os.WriteFile(configPath, []byte("{{{{invalid toml"), 0o644))

	_, err := NewApp(configPath)
	assert.Error(t, err)
}

func TestNewApp_CloseIsIdempotent(t *testing.T) {
	a := newTestApp(t)
	a.Close()
	a.Close()
}

func TestRegistersToolPerCalculator(t *testing.T) {
	a := newTestApp(t)
	c := newInProcessClient(t, a.MCPServer)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	toolsResult, err := c.ListTools(ctx, mcp.ListToolsRequest{})
	require.NoError(t, err)

	names := make(map[string]mcp.Tool)
	for _, tool := range toolsResult.Tools {
		names[tool.Name] = tool
	}
	assert.Len(t, names, len(a.Registry.List(""))+2)
	for _, want := range []string{"get_version", "list_calculators", "loan", "bmi", "hash", "unit_convert", "currency"} {
		assert.Contains(t, names, want)
	}

	loan := names["loan"]
	assert.Contains(t, loan.InputSchema.Required, "principal")
	assert.Contains(t, loan.InputSchema.Properties, "include_schedule")
}

func TestCallCalculatorTool(t *testing.T) {
	a := newTestApp(t)
	c := newInProcessClient(t, a.MCPServer)

	req := mcp.CallToolRequest{}
	req.Params.Name = "loan"
	req.Params.Arguments = map[string]any{"principal": 300000, "annual_rate": 6, "years": 30}
	result, err := c.CallTool(context.Background(), req)
	require.NoError(t, err)
	require.False(t, result.IsError)

	var out struct {
		MonthlyPayment float64 `json:"monthly_payment"`
	}
	text := result.Content[0].(mcp.TextContent).Text
	require.NoError(t, json.Unmarshal([]byte(text), &out))
	assert.InDelta(t, 1798.65, out.MonthlyPayment, 0.005)
}

func TestCallCalculatorTool_InvalidInput(t *testing.T) {
	a := newTestApp(t)
	c := newInProcessClient(t, a.MCPServer)

	req := mcp.CallToolRequest{}
	req.Params.Name = "discount"
	req.Params.Arguments = map[string]any{"original_price": 50, "discount_percent": 150}
	result, err := c.CallTool(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Contains(t, result.Content[0].(mcp.TextContent).Text, "Invalid Input")
}

func TestGetVersionTool(t *testing.T) {
	a := newTestApp(t)
	c := newInProcessClient(t, a.MCPServer)

	req := mcp.CallToolRequest{}
	req.Params.Name = "get_version"
	result, err := c.CallTool(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, strings.Contains(result.Content[0].(mcp.TextContent).Text, "Abacus MCP Server"))
}

// --- test helpers ---

// writeTestConfig creates a minimal abacus.toml in a temp directory.
func writeTestConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	config := `
[clients.exchange_rate]
offline = true

[logging]
level = "error"
outputs = ["file"]
file_path = "` + filepath.ToSlash(filepath.Join(dir, "logs", "abacus.log")) + `"
`
	configPath := filepath.Join(dir, "abacus.toml")
	require.NoError(t, os.WriteFile(configPath, []byte(config), 0o644))
	return configPath
}

// newInProcessClient creates an mcp-go in-process client connected to the
// given MCP server and completes the initialization handshake.
func newInProcessClient(t *testing.T, mcpServer *server.MCPServer) *client.Client {
	t.Helper()

	c, err := client.NewInProcessClient(mcpServer)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	ctx := context.Background()
	require.NoError(t, c.Start(ctx))

	initReq := mcp.InitializeRequest{}
	initReq.Params.ProtocolVersion = mcp.LATEST_PROTOCOL_VERSION
	initReq.Params.ClientInfo = mcp.Implementation{
		Name:    "test-client",
		Version: "1.0.0",
	}
	_, err = c.Initialize(ctx, initReq)
	require.NoError(t, err)

	return c
}
