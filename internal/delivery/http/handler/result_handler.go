package handler

import (
	"net/http"

	"labtrack/internal/domain/result"
	"labtrack/internal/logging"
)

type ResultHandler struct {
	repo   result.Repository
	logger logging.Logger
}

func NewResultHandler(repo result.Repository, logger logging.Logger) *ResultHandler {
	return &ResultHandler{repo: repo, logger: logger}
}

// Table handles GET /resultstable?testId=<n>
func (h *ResultHandler) Table(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, r.URL.Query().Get("testId"))
}

// TableByTest handles GET /resultstable/{testId}/{prodId}. Rows are keyed
// by test alone; the product segment only scopes the page URL.
func (h *ResultHandler) TableByTest(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, r.PathValue("testId"))
}

func (h *ResultHandler) list(w http.ResponseWriter, r *http.Request, rawID string) {
	id, err := parseTestID(rawID)
	if err != nil {
		SendError(w, "Invalid test id", http.StatusBadRequest)
		return
	}

	rows, err := h.repo.ListByTest(r.Context(), id)
	if err != nil {
		SendInternalError(w, r, h.logger, "list results", err)
		return
	}
	SendJSON(w, http.StatusOK, rows)
}
