package handler

import (
	"net/http"

	"labtrack/internal/domain/report"
	"labtrack/internal/logging"
)

type ReportHandler struct {
	repo   report.Repository
	logger logging.Logger
}

func NewReportHandler(repo report.Repository, logger logging.Logger) *ReportHandler {
	return &ReportHandler{repo: repo, logger: logger}
}

// List handles GET /getreports
func (h *ReportHandler) List(w http.ResponseWriter, r *http.Request) {
	reports, err := h.repo.List(r.Context())
	if err != nil {
		SendInternalError(w, r, h.logger, "list reports", err)
		return
	}
	SendJSON(w, http.StatusOK, reports)
}
