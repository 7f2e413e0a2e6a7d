package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aretw0/docsense/pkg/analysis"
	"github.com/aretw0/docsense/pkg/core"
)

var (
	// ErrUnknownTool is returned by CallTool for a name not in Tools.
	ErrUnknownTool = errors.New("unknown tool")
	// ErrBadArguments is returned when tool arguments cannot be decoded.
	ErrBadArguments = errors.New("invalid arguments")
)

// ToolCallParams are the params of a tools/call request.
type ToolCallParams struct {
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments"`
}

type documentIDArgs struct {
	DocumentID string `json:"document_id"`
}

type textArgs struct {
	Text string `json:"text"`
}

type keywordArgs struct {
	Text  string `json:"text"`
	Limit *int   `json:"limit"`
	Stem  bool   `json:"stem"`
}

type documentData struct {
	Content  string `json:"content"`
	Title    string `json:"title"`
	Author   string `json:"author"`
	Category string `json:"category"`
}

type addArgs struct {
	DocumentData *documentData `json:"document_data"`
	documentData
}

type queryArgs struct {
	Query string `json:"query"`
}

func (s *Server) handleToolsCall(ctx context.Context, req *Request) *Response {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return errorResponse(req.ID, CodeInvalidParams, fmt.Sprintf("Invalid params: %v", err), nil)
	}

	result, err := s.CallTool(ctx, params.Name, params.Arguments)
	if err != nil {
		s.logger.Debug("tool call failed", "tool", params.Name, "error", err)
		code, msg := toolError(params.Name, err)
		return errorResponse(req.ID, code, msg, nil)
	}

	text, err := MarshalIndent(result)
	if err != nil {
		return errorResponse(req.ID, CodeInternalError, fmt.Sprintf("Tool execution error: %v", err), nil)
	}

	return &Response{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]any{
			"content": []map[string]any{
				{"type": "text", "text": text},
			},
		},
	}
}

// toolError maps a CallTool error onto a JSON-RPC code and message.
func toolError(name string, err error) (int, string) {
	switch {
	case errors.Is(err, ErrUnknownTool):
		return CodeInvalidParams, fmt.Sprintf("Unknown tool: %s", name)
	case errors.Is(err, ErrBadArguments), errors.Is(err, core.ErrInvalidInput):
		return CodeInvalidParams, err.Error()
	case errors.Is(err, core.ErrNotFound):
		return CodeNotFound, err.Error()
	default:
		return CodeInternalError, fmt.Sprintf("Tool execution error: %v", err)
	}
}

// CallTool runs the named tool with raw JSON arguments and returns the
// operation result. Missing or null arguments are treated as an empty
// object.
func (s *Server) CallTool(ctx context.Context, name string, args json.RawMessage) (any, error) {
	if s.api == nil {
		return nil, fmt.Errorf("%w: no document service configured", core.ErrUnavailable)
	}

	switch name {
	case ToolAnalyzeDocument:
		var a documentIDArgs
		if err := decodeArgs(args, &a); err != nil {
			return nil, err
		}
		return s.api.AnalyzeDocument(ctx, a.DocumentID)

	case ToolGetSentiment:
		var a textArgs
		if err := decodeArgs(args, &a); err != nil {
			return nil, err
		}
		return s.api.GetSentiment(ctx, a.Text)

	case ToolExtractKeywords:
		var a keywordArgs
		if err := decodeArgs(args, &a); err != nil {
			return nil, err
		}
		limit := analysis.DefaultKeywordLimit
		if a.Limit != nil {
			limit = *a.Limit
		}
		var opts []analysis.KeywordOption
		if a.Stem {
			opts = append(opts, analysis.WithStemming())
		}
		return s.api.ExtractKeywords(ctx, a.Text, limit, opts...)

	case ToolAddDocument:
		var a addArgs
		if err := decodeArgs(args, &a); err != nil {
			return nil, err
		}
		data := a.documentData
		if a.DocumentData != nil {
			data = *a.DocumentData
		}
		if data == (documentData{}) {
			return nil, fmt.Errorf("%w: document_data is required", core.ErrInvalidInput)
		}
		return s.api.AddDocument(ctx, core.NewDocument{
			Content:  data.Content,
			Title:    data.Title,
			Author:   data.Author,
			Category: data.Category,
		})

	case ToolSearchDocuments:
		var a queryArgs
		if err := decodeArgs(args, &a); err != nil {
			return nil, err
		}
		return s.api.SearchDocuments(ctx, a.Query)

	case ToolListDocuments:
		return s.api.ListDocuments(ctx)

	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownTool, name)
	}
}

func decodeArgs(raw json.RawMessage, v any) error {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("%w: %v", ErrBadArguments, err)
	}
	return nil
}
