package handler

import (
	"context"
	"log/slog"
	"net/http"

	"leantime-mcp/internal/httputil"
	"leantime-mcp/internal/tools"
)

// Dispatcher runs tools by name.
type Dispatcher interface {
	Registry() *tools.Registry
	Dispatch(ctx context.Context, name string, input map[string]interface{}) (map[string]interface{}, error)
	DispatchBatch(ctx context.Context, requests []tools.Request) ([]tools.Result, error)
}

// ToolHandler serves the tool listing and execution endpoints.
type ToolHandler struct {
	dispatcher Dispatcher
	logger     *slog.Logger
}

// NewToolHandler creates a new tool handler
func NewToolHandler(dispatcher Dispatcher, logger *slog.Logger) *ToolHandler {
	return &ToolHandler{
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// ToolSummary is one entry of the tool listing.
type ToolSummary struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Register mounts every route on mux under prefix ("" for the root).
func (h *ToolHandler) Register(mux *http.ServeMux, prefix string) {
	mux.HandleFunc("GET "+prefix+"/{$}", h.Root)
	mux.HandleFunc("GET "+prefix+"/health", h.Health)
	mux.HandleFunc("GET "+prefix+"/tools", h.ListTools)
	mux.HandleFunc("POST "+prefix+"/tools/{name}", h.ExecuteTool)
	mux.HandleFunc("POST "+prefix+"/batch", h.Batch)
}

// Root reports that the server is up
// GET /
func (h *ToolHandler) Root(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, map[string]string{
		"message": "Leantime MCP Server is running",
	})
}

// Health is a liveness probe
// GET /health
func (h *ToolHandler) Health(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ListTools returns the name and description of every registered tool
// GET /tools
func (h *ToolHandler) ListTools(w http.ResponseWriter, r *http.Request) {
	descriptors := h.dispatcher.Registry().Descriptors()
	summaries := make([]ToolSummary, len(descriptors))
	for i, d := range descriptors {
		summaries[i] = ToolSummary{Name: d.Name, Description: d.Description}
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{"tools": summaries})
}

// ExecuteTool runs one tool. The name in the path wins over any name in the body.
// POST /tools/{name}
func (h *ToolHandler) ExecuteTool(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")

	var req tools.Request
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}
	input := req.Input
	if input == nil {
		input = map[string]interface{}{}
	}

	output, err := h.dispatcher.Dispatch(r.Context(), name, input)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{"output": output})
}

// Batch runs several tools and reports each outcome in request order.
// POST /batch
func (h *ToolHandler) Batch(w http.ResponseWriter, r *http.Request) {
	var requests []tools.Request
	if err := httputil.ParseJSON(w, r, &requests); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	results, err := h.dispatcher.DispatchBatch(r.Context(), requests)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{"results": results})
}
