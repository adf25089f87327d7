package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"sync"
	"time"

	"fabric-mcp/internal/config"
	"fabric-mcp/internal/tools"
	"fabric-mcp/pkg/logging"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

const (
	// Name is the server name reported during MCP initialization.
	Name = "fabric-mcp"

	// DefaultReadHeaderTimeout is the timeout for reading request headers.
	DefaultReadHeaderTimeout = 10 * time.Second
	// DefaultIdleTimeout is the idle timeout for keepalive connections.
	DefaultIdleTimeout = 120 * time.Second
	// DefaultShutdownTimeout bounds graceful shutdown of the HTTP transports.
	DefaultShutdownTimeout = 5 * time.Second

	subsystem = "Server"
)

// Server serves the tool catalog over one MCP transport.
type Server struct {
	mcp       *mcpserver.MCPServer
	router    *tools.Router
	transport string
	addr      string

	stdin  io.Reader
	stdout io.Writer

	mu       sync.Mutex
	listener net.Listener
}

// Option configures a Server.
type Option func(*Server)

// WithStdio replaces os.Stdin and os.Stdout for the stdio transport.
func WithStdio(in io.Reader, out io.Writer) Option {
	return func(s *Server) {
		s.stdin = in
		s.stdout = out
	}
}

// New registers every tool of router on a fresh MCP server.
func New(router *tools.Router, cfg config.ServerConfig, version string, opts ...Option) *Server {
	mcpSrv := mcpserver.NewMCPServer(
		Name,
		version,
		mcpserver.WithToolCapabilities(false),
		mcpserver.WithRecovery(),
	)

	s := &Server{
		mcp:       mcpSrv,
		router:    router,
		transport: cfg.Transport,
		addr:      cfg.Addr,
		stdin:     os.Stdin,
		stdout:    os.Stdout,
	}
	for _, opt := range opts {
		opt(s)
	}

	for _, tool := range router.Tools() {
		mcpSrv.AddTool(tool, s.handleToolCall)
	}
	logging.Debug(subsystem, "Registered %d tools", len(router.Tools()))

	return s
}

// ProtocolVersion is the newest MCP revision the server negotiates.
func ProtocolVersion() string {
	return mcp.LATEST_PROTOCOL_VERSION
}

// MCPServer returns the underlying mcp-go server.
func (s *Server) MCPServer() *mcpserver.MCPServer {
	return s.mcp
}

func (s *Server) handleToolCall(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.router.Call(ctx, req.Params.Name, req.GetArguments()), nil
}

// Serve runs the configured transport until ctx is cancelled or the client
// disconnects. A clean shutdown returns nil.
func (s *Server) Serve(ctx context.Context) error {
	switch s.transport {
	case config.TransportStdio, "":
		return s.serveStdio(ctx)
	case config.TransportStreamableHTTP:
		return s.serveHTTP(ctx, s.streamableHTTPMux())
	case config.TransportSSE:
		return s.serveHTTP(ctx, s.sseMux())
	default:
		return fmt.Errorf("unsupported transport %q", s.transport)
	}
}

// Addr returns the bound address of an HTTP transport, or "" before it
// starts listening.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

func (s *Server) serveStdio(ctx context.Context) error {
	logging.Info(subsystem, "Serving MCP over stdio")
	stdio := mcpserver.NewStdioServer(s.mcp)
	err := stdio.Listen(ctx, s.stdin, s.stdout)
	if err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, io.EOF) {
		return fmt.Errorf("stdio transport: %w", err)
	}
	return nil
}

func (s *Server) streamableHTTPMux() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", handleHealth)
	mux.Handle("/mcp", mcpserver.NewStreamableHTTPServer(s.mcp))
	return mux
}

func (s *Server) sseMux() http.Handler {
	sse := mcpserver.NewSSEServer(
		s.mcp,
		mcpserver.WithBaseURL("http://"+s.addr),
		mcpserver.WithSSEEndpoint("/sse"),
		mcpserver.WithMessageEndpoint("/message"),
		mcpserver.WithKeepAlive(true),
		mcpserver.WithKeepAliveInterval(30*time.Second),
	)

	mux := http.NewServeMux()
	mux.HandleFunc("/health", handleHealth)
	mux.Handle("/sse", sse)
	mux.Handle("/message", sse)
	return mux
}

func (s *Server) serveHTTP(ctx context.Context, handler http.Handler) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.addr, err)
	}
	s.mu.Lock()
	s.listener = ln
	s.mu.Unlock()

	httpServer := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: DefaultReadHeaderTimeout,
		IdleTimeout:       DefaultIdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.Serve(ln)
	}()
	logging.Info(subsystem, "Serving MCP over %s on %s", s.transport, ln.Addr())

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("%s transport: %w", s.transport, err)
	case <-ctx.Done():
	}

	logging.Info(subsystem, "Shutting down %s transport", s.transport)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), DefaultShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down %s transport: %w", s.transport, err)
	}
	return nil
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
