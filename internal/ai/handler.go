package ai

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/frahmantamala/grievance-management/internal"
	"github.com/frahmantamala/grievance-management/internal/transport"
	"github.com/frahmantamala/grievance-management/pkg/logger"
)

type Handler struct {
	*transport.BaseHandler
	Analyzer *Analyzer
}

func NewHandler(analyzer *Analyzer) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Analyzer:    analyzer,
	}
}

// AnalyzeRequest mirrors what the portal frontend submits before filing.
type AnalyzeRequest struct {
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Attachments []interface{} `json:"attachments"`
}

// AnalyzeGrievance runs the model over a draft grievance. Unlike grievance
// creation, analysis is the whole point of this endpoint, so an upstream
// failure is surfaced to the client instead of being swallowed.
func (h *Handler) AnalyzeGrievance(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.WriteError(w, http.StatusBadRequest, "no data provided")
		return
	}

	if req.Title == "" && req.Description == "" {
		h.WriteError(w, http.StatusBadRequest, "no data provided")
		return
	}

	analysis, err := h.Analyzer.AnalyzeGrievance(r.Context(), req.Title, req.Description, len(req.Attachments))
	if err != nil {
		h.HandleError(w, internal.NewExternalError("Failed to process AI analysis", internal.ErrCodeAnalysisFailed, err))
		return
	}

	h.WriteJSON(w, http.StatusOK, analysis)
}
