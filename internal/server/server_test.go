package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"fabric-mcp/internal/config"
	"fabric-mcp/internal/fabric"
	"fabric-mcp/internal/testing/mock"
	"fabric-mcp/internal/tools"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) (*tools.Router, *mock.FabricServer) {
	t.Helper()
	srv := mock.NewFabricServer()
	t.Cleanup(srv.Close)

	auth := fabric.NewAuthenticator(srv.TokenURL(), mock.ClientID, mock.ClientSecret,
		fabric.WithAuthHTTPClient(srv.Client()))
	client := fabric.NewClient(srv.APIBaseURL(), auth, fabric.WithHTTPClient(srv.Client()))

	router, err := tools.NewRouter(fabric.NewService(client))
	require.NoError(t, err)
	return router, srv
}

func handle(t *testing.T, s *Server, message string) map[string]any {
	t.Helper()
	resp := s.MCPServer().HandleMessage(context.Background(), json.RawMessage(message))
	require.NotNil(t, resp)

	data, err := json.Marshal(resp)
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.Unmarshal(data, &out))
	return out
}

func TestServer_ListsEveryCatalogTool(t *testing.T) {
	router, _ := newTestRouter(t)
	s := New(router, config.ServerConfig{Transport: config.TransportStdio}, "test")

	resp := handle(t, s, `{"jsonrpc":"2.0","id":1,"method":"tools/list"}`)

	result, ok := resp["result"].(map[string]any)
	require.True(t, ok, "unexpected response: %v", resp)
	listed, ok := result["tools"].([]any)
	require.True(t, ok)

	var names []string
	for _, tool := range listed {
		names = append(names, tool.(map[string]any)["name"].(string))
	}
	var want []string
	for _, tool := range tools.Catalog() {
		want = append(want, tool.Name)
	}
	assert.ElementsMatch(t, want, names)
}

func TestServer_CallDelegatesToRouter(t *testing.T) {
	router, srv := newTestRouter(t)
	s := New(router, config.ServerConfig{Transport: config.TransportStdio}, "test")

	resp := handle(t, s, `{"jsonrpc":"2.0","id":2,"method":"tools/call","params":{"name":"delete_router","arguments":{"router_id":"r1"}}}`)

	result, ok := resp["result"].(map[string]any)
	require.True(t, ok, "tool failures must not become protocol errors: %v", resp)
	assert.Equal(t, true, result["isError"])

	content := result["content"].([]any)
	require.Len(t, content, 1)
	text := content[0].(map[string]any)["text"].(string)
	assert.True(t, strings.HasPrefix(text, "Error calling delete_router: "), text)
	assert.Empty(t, srv.Requests())
}

func TestServer_StreamableHTTP(t *testing.T) {
	router, _ := newTestRouter(t)
	s := New(router, config.ServerConfig{Transport: config.TransportStreamableHTTP, Addr: "127.0.0.1:0"}, "test")

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx) }()

	require.Eventually(t, func() bool { return s.Addr() != "" }, 5*time.Second, 10*time.Millisecond)
	base := "http://" + s.Addr()

	resp, err := http.Get(base + "/health")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"status":"ok"}`, string(body))

	initialize := `{"jsonrpc":"2.0","id":1,"method":"initialize","params":{"protocolVersion":"2025-03-26","capabilities":{},"clientInfo":{"name":"test","version":"0"}}}`
	req, err := http.NewRequest(http.MethodPost, base+"/mcp", strings.NewReader(initialize))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json, text/event-stream")

	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	body, _ = io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), Name)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestServer_UnsupportedTransport(t *testing.T) {
	router, _ := newTestRouter(t)
	s := New(router, config.ServerConfig{Transport: "carrier-pigeon"}, "test")

	err := s.Serve(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unsupported transport "carrier-pigeon"`)
}

func TestServer_ListenFailure(t *testing.T) {
	router, _ := newTestRouter(t)
	s := New(router, config.ServerConfig{Transport: config.TransportSSE, Addr: "256.0.0.1:99999"}, "test")

	err := s.Serve(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to listen")
}
