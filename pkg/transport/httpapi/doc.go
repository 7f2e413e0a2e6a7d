// Package httpapi serves the docsense tools over plain HTTP.
//
// Routes:
//
//	GET  /health   liveness plus the introspection state of the service
//	GET  /tools    tool definitions, as returned by tools/list
//	POST /         {"tool": name, "arguments": {...}} -> {tool, result, timestamp}
//	POST /call     same as POST /
//	POST /mcp      one JSON-RPC message, answered by the MCP server
//	OPTIONS *      CORS preflight
//
// Every response carries permissive CORS headers and an X-Request-Id.
package httpapi
