// Package tools exposes the Equinix Fabric resource operations as MCP tools.
//
// The package holds two closed tables: the tool catalog returned to clients
// on tools/list, and the handler table used to dispatch tools/call. NewRouter
// refuses to build a Router when the two tables disagree, so a tool can never
// be advertised without an implementation or implemented without being
// advertised.
//
// Every invocation produces a renderable result. Unknown tools, argument
// errors, provider failures and handler panics are all rendered as
// "Error calling <name>: <message>" text results rather than protocol errors.
package tools
