package mcp

import "github.com/aretw0/docsense/pkg/analysis"

// Tool names.
const (
	ToolAnalyzeDocument = "analyze_document"
	ToolGetSentiment    = "get_sentiment"
	ToolExtractKeywords = "extract_keywords"
	ToolAddDocument     = "add_document"
	ToolSearchDocuments = "search_documents"
	ToolListDocuments   = "list_documents"
)

// Tool describes an MCP tool.
type Tool struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	InputSchema map[string]any `json:"inputSchema"`
}

// Tools returns the definitions of every tool, in a stable order.
func Tools() []Tool {
	return []Tool{
		{
			Name:        ToolAnalyzeDocument,
			Description: "Perform complete analysis of a document including sentiment, keywords, readability, and statistics",
			InputSchema: object(map[string]any{
				"document_id": str("ID of the document to analyze"),
			}, "document_id"),
		},
		{
			Name:        ToolGetSentiment,
			Description: "Analyze sentiment of any text (positive/negative/neutral)",
			InputSchema: object(map[string]any{
				"text": str("Text to analyze"),
			}, "text"),
		},
		{
			Name:        ToolExtractKeywords,
			Description: "Extract top keywords from text",
			InputSchema: object(map[string]any{
				"text": str("Text to extract keywords from"),
				"limit": map[string]any{
					"type":        "integer",
					"description": "Maximum number of keywords to return",
					"default":     analysis.DefaultKeywordLimit,
				},
				"stem": map[string]any{
					"type":        "boolean",
					"description": "Group inflected forms under their English stem",
					"default":     false,
				},
			}, "text"),
		},
		{
			Name:        ToolAddDocument,
			Description: "Add a new document to the collection",
			InputSchema: object(map[string]any{
				"document_data": object(map[string]any{
					"content":  str("Document content"),
					"title":    str("Document title"),
					"author":   str("Document author"),
					"category": str("Document category"),
				}, "content", "title"),
			}, "document_data"),
		},
		{
			Name:        ToolSearchDocuments,
			Description: "Search documents by content or metadata",
			InputSchema: object(map[string]any{
				"query": str("Search query"),
			}, "query"),
		},
		{
			Name:        ToolListDocuments,
			Description: "List every document in the collection with its metadata",
			InputSchema: object(map[string]any{}),
		},
	}
}

func object(props map[string]any, required ...string) map[string]any {
	schema := map[string]any{
		"type":       "object",
		"properties": props,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

func str(description string) map[string]any {
	return map[string]any{"type": "string", "description": description}
}
