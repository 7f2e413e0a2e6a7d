// Package docsense is the composition root of the docsense document
// analyzer.
//
// It wires the domain (package core) and the text metrics (package
// analysis) to a storage adapter chosen by functional options, following a
// hexagonal layout: transports depend on core.Capabilities, never on a
// concrete store.
//
// Features:
//
//   - Sentiment, keyword, readability and statistics analysis of any text.
//   - A document store with three adapters: JSON files (default), SQLite
//     and memory.
//   - Relevance search over titles, authors, categories and bodies.
//   - MCP (JSON-RPC over stdio) and HTTP transports in pkg/transport.
//
// Usage:
//
//	svc, err := docsense.New("./documents", docsense.WithLogger(logger))
//	if err != nil {
//		return err
//	}
//	id, err := svc.AddDocument(ctx, docsense.NewDocument{Title: "Notes", Content: text})
//	report, err := svc.AnalyzeDocument(ctx, id)
package docsense
