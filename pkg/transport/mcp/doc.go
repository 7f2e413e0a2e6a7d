// Package mcp exposes docsense over the Model Context Protocol.
//
// # Protocol
//
// The server speaks JSON-RPC 2.0, one message per line:
//   - Input: requests on stdin
//   - Output: responses on stdout (logs go to stderr)
//
// Supported methods:
//   - initialize: protocol handshake
//   - notifications/initialized: acknowledged without a reply
//   - tools/list: enumerate the tools
//   - tools/call: run a tool
//   - ping: liveness check
//
// # Tools
//
//   - analyze_document(document_id)
//   - get_sentiment(text)
//   - extract_keywords(text, limit = 10, stem = false)
//   - add_document(document_data{content, title, author, category})
//   - search_documents(query)
//   - list_documents()
//
// A tool result is returned as a single text content item holding the
// indented JSON of the result.
//
// # Errors
//
// Parse failures answer -32700 with a null id and unknown methods -32601.
// Unknown tools, malformed arguments and missing required values answer
// -32602, unknown documents -32001, anything else -32603.
//
// HandleMessage is independent of stdio so other transports can carry the
// same messages; package httpapi serves it on POST /mcp.
package mcp
