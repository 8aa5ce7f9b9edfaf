package handler

import (
	"log/slog"
	"net/http"

	"leantime-mcp/internal/domain"
	"leantime-mcp/internal/httputil"
)

// handleError converts domain errors to HTTP responses. The status comes from
// the error's StatusCode; the body always carries the error message.
func handleError(w http.ResponseWriter, logger *slog.Logger, err error) {
	status := domain.StatusCode(err)
	if status >= http.StatusInternalServerError {
		logger.Error("request failed", "status", status, "error", err)
	}
	httputil.RespondError(w, status, err.Error())
}

// Fallback serves mux, answering requests no route matched with the
// {"detail"} envelope. ServeMux's 404 or 405 status and Allow header are kept.
func Fallback(mux *http.ServeMux) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h, pattern := mux.Handler(r)
		if pattern != "" {
			mux.ServeHTTP(w, r)
			return
		}

		rec := &statusCapture{header: http.Header{}, status: http.StatusOK}
		h.ServeHTTP(rec, r)
		if allow := rec.header.Get("Allow"); allow != "" {
			w.Header().Set("Allow", allow)
		}
		httputil.RespondError(w, rec.status, http.StatusText(rec.status))
	})
}

// statusCapture keeps the status and headers ServeMux writes and drops its
// plain-text body.
type statusCapture struct {
	header http.Header
	status int
}

func (c *statusCapture) Header() http.Header         { return c.header }
func (c *statusCapture) Write(b []byte) (int, error) { return len(b), nil }
func (c *statusCapture) WriteHeader(code int)        { c.status = code }
