package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobmcallan/abacus/internal/app"
	"github.com/bobmcallan/abacus/internal/common"
	"github.com/bobmcallan/abacus/internal/server"
)

func newBackend(t *testing.T) *httptest.Server {
	t.Helper()
	cfg := common.NewDefaultConfig()
	cfg.Clients.ExchangeRate.Offline = true
	a := app.New(cfg, common.NewSilentLogger())
	t.Cleanup(a.Close)
	ts := httptest.NewServer(server.NewServer(a).Handler())
	t.Cleanup(ts.Close)
	return ts
}

type rpcResponse struct {
	ID     json.RawMessage `json:"id"`
	Result json.RawMessage `json:"result"`
	Error  *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func readResponses(t *testing.T, out *bytes.Buffer) []rpcResponse {
	t.Helper()
	var resps []rpcResponse
	for _, line := range strings.Split(strings.TrimSpace(out.String()), "\n") {
		if line == "" {
			continue
		}
		var r rpcResponse
		require.NoError(t, json.Unmarshal([]byte(line), &r), line)
		resps = append(resps, r)
	}
	return resps
}

func TestStdioProxyRoundTrip(t *testing.T) {
	ts := newBackend(t)
	proxy := &StdioProxy{serverURL: ts.URL + "/mcp"}

	in := strings.Join([]string{
		`{"jsonrpc":"2.0","id":1,"method":"initialize","params":{"protocolVersion":"2025-03-26","capabilities":{},"clientInfo":{"name":"test","version":"1"}}}`,
		`{"jsonrpc":"2.0","method":"notifications/initialized"}`,
		``,
		`{"jsonrpc":"2.0","id":2,"method":"tools/call","params":{"name":"tip","arguments":{"bill":100,"tip_percent":20,"people":4}}}`,
	}, "\n")
	var out bytes.Buffer
	require.NoError(t, proxy.RunWithIO(strings.NewReader(in), &out))

	resps := readResponses(t, &out)
	require.Len(t, resps, 2)
	assert.JSONEq(t, `1`, string(resps[0].ID))
	assert.Contains(t, string(resps[0].Result), `"abacus"`)
	assert.JSONEq(t, `2`, string(resps[1].ID))
	assert.Contains(t, string(resps[1].Result), `tip_per_person`)
}

func TestStdioProxyServerError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer ts.Close()
	proxy := &StdioProxy{serverURL: ts.URL + "/mcp"}

	var out bytes.Buffer
	in := `{"jsonrpc":"2.0","id":"abc","method":"tools/list"}` + "\n" + `{"jsonrpc":"2.0","method":"notifications/initialized"}`
	require.NoError(t, proxy.RunWithIO(strings.NewReader(in), &out))

	resps := readResponses(t, &out)
	require.Len(t, resps, 1)
	assert.JSONEq(t, `"abc"`, string(resps[0].ID))
	require.NotNil(t, resps[0].Error)
	assert.Equal(t, -32000, resps[0].Error.Code)
	assert.Contains(t, resps[0].Error.Message, "502")
}

func TestSSEData(t *testing.T) {
	body := []byte("event: message\ndata: {\"id\":1}\n\n")
	assert.Equal(t, `{"id":1}`, string(sseData(body)))
	assert.Nil(t, sseData([]byte("event: ping\n\n")))
}

func TestExtractID(t *testing.T) {
	assert.Equal(t, "7", string(extractID([]byte(`{"id":7}`))))
	assert.Equal(t, "null", string(extractID([]byte(`{"method":"x"}`))))
	assert.Equal(t, "null", string(extractID([]byte(`not json`))))
}
