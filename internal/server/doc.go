// Package server exposes the Fabric tool router over the Model Context
// Protocol.
//
// Every tool of the catalog is registered on a mark3labs/mcp-go server with
// a handler that delegates to tools.Router.Call. The router always renders a
// result, so the handlers never return protocol-level errors.
//
// # Transports
//
//   - stdio (default): JSON-RPC over stdin/stdout for desktop MCP clients.
//     Logs must go to stderr while this transport is active.
//   - streamable-http: MCP Streamable HTTP served at /mcp.
//   - sse: legacy Server-Sent Events served at /sse with messages posted
//     to /message.
//
// Both HTTP transports also answer GET /health with {"status":"ok"}.
package server
