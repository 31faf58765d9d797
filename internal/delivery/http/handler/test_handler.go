package handler

import (
	"errors"
	"net/http"
	"strconv"

	"labtrack/internal/domain/labtest"
	"labtrack/internal/logging"
)

type TestHandler struct {
	repo   labtest.Repository
	logger logging.Logger
}

func NewTestHandler(repo labtest.Repository, logger logging.Logger) *TestHandler {
	return &TestHandler{repo: repo, logger: logger}
}

// Table handles GET /teststable
func (h *TestHandler) Table(w http.ResponseWriter, r *http.Request) {
	tests, err := h.repo.List(r.Context())
	if err != nil {
		SendInternalError(w, r, h.logger, "list tests", err)
		return
	}
	SendJSON(w, http.StatusOK, tests)
}

// TableByProduct handles GET /teststable/{pId}
func (h *TestHandler) TableByProduct(w http.ResponseWriter, r *http.Request) {
	tests, err := h.repo.ListByProduct(r.Context(), r.PathValue("pId"))
	if err != nil {
		SendInternalError(w, r, h.logger, "list tests by product", err)
		return
	}
	SendJSON(w, http.StatusOK, tests)
}

// ByID handles GET /testsbyId?testId=<n>
func (h *TestHandler) ByID(w http.ResponseWriter, r *http.Request) {
	id, err := parseTestID(r.URL.Query().Get("testId"))
	if err != nil {
		SendError(w, "Invalid test id", http.StatusBadRequest)
		return
	}

	test, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, labtest.ErrTestNotFound) {
			SendError(w, "Test not found", http.StatusNotFound)
			return
		}
		SendInternalError(w, r, h.logger, "get test", err)
		return
	}
	SendJSON(w, http.StatusOK, test)
}

func parseTestID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, err
	}
	if id <= 0 {
		return 0, errors.New("test id must be positive")
	}
	return id, nil
}
