package api

import (
	"bytes"
	"context"
	"io"
	"net/http"

	"escaperoom/internal/gate"
	"escaperoom/pkg/controller"
	"escaperoom/pkg/logger"

	"go.uber.org/zap"
)

// Evaluator computes the state of every level.
type Evaluator interface {
	Evaluate(ctx context.Context) gate.Report
}

// Renderer turns a report into the HTML page.
type Renderer interface {
	Render(w io.Writer, report gate.Report) error
}

// Handler serves the escape room page.
type Handler struct {
	deps Deps
}

// NewHandler creates a Handler.
func NewHandler(deps Deps) *Handler {
	return &Handler{deps: deps}
}

// Index evaluates every level and renders the page. Failing levels are part
// of the page, so the response is 200 regardless of progress.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	report := h.deps.Evaluator.Evaluate(ctx)

	var buf bytes.Buffer
	if err := h.deps.Renderer.Render(&buf, report); err != nil {
		logger.Error(ctx, "could not render page", zap.Error(err))
		msg := http.StatusText(http.StatusInternalServerError)
		if id := controller.RequestID(ctx); id != "" {
			msg += " (request " + id + ")"
		}
		http.Error(w, msg, http.StatusInternalServerError)

		return
	}

	logger.Debug(ctx, "page rendered", zap.Int("progress", report.Progress()))

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}
