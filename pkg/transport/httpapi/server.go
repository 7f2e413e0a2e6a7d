package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/aretw0/introspection"
	"github.com/aretw0/lifecycle"

	"github.com/aretw0/docsense/pkg/core"
	"github.com/aretw0/docsense/pkg/transport/mcp"
)

// DefaultAddr is the listen address used when none is configured.
const DefaultAddr = "localhost:8000"

// MaxRequestBodySize bounds POST bodies (1MB).
const MaxRequestBodySize = 1 << 20

const shutdownTimeout = 5 * time.Second

// Config holds the dependencies of a Handler.
type Config struct {
	// MCP executes tools and answers /mcp messages.
	MCP *mcp.Server
	// State is reported by /health when set.
	State  introspection.Introspectable
	Logger *slog.Logger
	// Now stamps tool results. Defaults to time.Now.
	Now func() time.Time
}

// Handler is the HTTP front of the document analyzer.
type Handler struct {
	mcp    *mcp.Server
	state  introspection.Introspectable
	logger *slog.Logger
	now    func() time.Time
	mux    *http.ServeMux
	chain  http.Handler
}

// New builds a Handler with every route registered.
func New(cfg Config) (*Handler, error) {
	if cfg.MCP == nil {
		return nil, errors.New("mcp server is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	h := &Handler{
		mcp:    cfg.MCP,
		state:  cfg.State,
		logger: logger.With("component", "http"),
		now:    now,
		mux:    http.NewServeMux(),
	}
	h.RegisterRoutes(h.mux)
	h.chain = h.middleware(h.mux)
	return h, nil
}

// RegisterRoutes registers the API on mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /health", h.handleHealth)
	mux.HandleFunc("GET /tools", h.handleTools)
	mux.HandleFunc("POST /{$}", h.handleCall)
	mux.HandleFunc("POST /call", h.handleCall)
	mux.HandleFunc("POST /mcp", h.handleMCP)
	mux.HandleFunc("OPTIONS /", h.handlePreflight)
	mux.HandleFunc("/", h.handleNotFound)
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.chain.ServeHTTP(w, r)
}

// Serve accepts connections on ln until ctx is cancelled, then shuts down
// gracefully.
func (h *Handler) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errc := make(chan error, 1)
	lifecycle.Go(ctx, func(context.Context) error {
		err := srv.Serve(ln)
		if errors.Is(err, http.ErrServerClosed) {
			err = nil
		}
		errc <- err
		return err
	}, lifecycle.WithErrorHandler(func(err error) {
		h.logger.Error("http server failed", "error", err)
	}))

	h.logger.Info("http server listening", "addr", ln.Addr().String())

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down http server: %w", err)
	}
	h.logger.Info("http server stopped")
	return nil
}

// ListenAndServe listens on addr and calls Serve.
func (h *Handler) ListenAndServe(ctx context.Context, addr string) error {
	if addr == "" {
		addr = DefaultAddr
	}
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	return h.Serve(ctx, ln)
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	body := map[string]any{
		"status":  "healthy",
		"message": "MCP Document Analyzer Server is running",
	}
	if h.state != nil {
		body["state"] = h.state.State()
	}
	h.writeJSON(w, http.StatusOK, body)
}

func (h *Handler) handleTools(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]any{"tools": mcp.Tools()})
}

type callRequest struct {
	Tool      string          `json:"tool"`
	Arguments json.RawMessage `json:"arguments"`
}

type callResponse struct {
	Tool      string `json:"tool"`
	Result    any    `json:"result"`
	Timestamp string `json:"timestamp"`
}

func (h *Handler) handleCall(w http.ResponseWriter, r *http.Request) {
	var req callRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid JSON in request body")
		return
	}
	if req.Tool == "" {
		h.writeError(w, http.StatusBadRequest, "tool is required")
		return
	}

	result, err := h.mcp.CallTool(r.Context(), req.Tool, req.Arguments)
	if err != nil {
		status, msg := callError(req.Tool, err)
		if status >= http.StatusInternalServerError {
			h.logger.Error("tool call failed", "tool", req.Tool, "error", err, "request_id", requestID(r))
		}
		h.writeError(w, status, msg)
		return
	}

	h.writeJSON(w, http.StatusOK, callResponse{
		Tool:      req.Tool,
		Result:    wrapResult(req.Tool, result),
		Timestamp: h.now().UTC().Format(time.RFC3339Nano),
	})
}

// callError maps a CallTool error onto an HTTP status and message.
func callError(tool string, err error) (int, string) {
	switch {
	case errors.Is(err, mcp.ErrUnknownTool):
		return http.StatusBadRequest, fmt.Sprintf("Unknown tool: %s", tool)
	case errors.Is(err, mcp.ErrBadArguments), errors.Is(err, core.ErrInvalidInput):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, core.ErrNotFound):
		return http.StatusNotFound, err.Error()
	default:
		return http.StatusInternalServerError, fmt.Sprintf("Internal server error: %v", err)
	}
}

// wrapResult gives list-like and id results a named field.
func wrapResult(tool string, result any) any {
	switch tool {
	case mcp.ToolExtractKeywords:
		return map[string]any{"keywords": result}
	case mcp.ToolAddDocument:
		return map[string]any{
			"document_id": result,
			"message":     "Document added successfully",
		}
	case mcp.ToolSearchDocuments:
		return map[string]any{"results": result}
	case mcp.ToolListDocuments:
		return map[string]any{"documents": result}
	default:
		return result
	}
}

func (h *Handler) handleMCP(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		h.writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
		return
	}

	resp := h.mcp.HandleMessage(r.Context(), body)
	if resp == nil {
		w.WriteHeader(http.StatusAccepted)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(resp)
}

func (h *Handler) handlePreflight(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) handleNotFound(w http.ResponseWriter, r *http.Request) {
	h.writeError(w, http.StatusNotFound, "Endpoint not found")
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"error": message})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		h.logger.Warn("failed to write response", "error", err)
	}
}
