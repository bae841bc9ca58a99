package http

import (
	"encoding/json"
	"net/http"

	"loan-underwriter/apperrors"
	"loan-underwriter/domain"
	"loan-underwriter/logger"
	"loan-underwriter/service"
)

// UserIDHeader carries the caller's identity, set by the upstream gateway.
const UserIDHeader = "X-User-ID"

type ApplicationHandler struct {
	service *service.ApplicationService
	log     logger.Logger
}

func NewApplicationHandler(service *service.ApplicationService, log logger.Logger) *ApplicationHandler {
	return &ApplicationHandler{service: service, log: log}
}

// userID returns the caller or writes a 403 and returns false.
func (h *ApplicationHandler) userID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := r.Header.Get(UserIDHeader)
	if id == "" {
		writeError(w, h.log, apperrors.NewAccessDeniedError())
		return "", false
	}
	return id, true
}

// Submit handles POST /api/loan-applications.
func (h *ApplicationHandler) Submit(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	body, status, err := readJSONBody(w, r)
	if err != nil {
		http.Error(w, err.Error(), status)
		return
	}

	var input domain.ProfileInput
	if err := json.Unmarshal(body, &input); err != nil {
		writeError(w, h.log, apperrors.NewInvalidProfileError("invalid request body"))
		return
	}

	submission, err := h.service.Submit(r.Context(), userID, input)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, h.log, http.StatusCreated, submission)
}

// List handles GET /api/loan-applications.
func (h *ApplicationHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	apps, err := h.service.List(r.Context(), userID)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, h.log, http.StatusOK, apps)
}

// Get handles GET /api/loan-applications/{id}.
func (h *ApplicationHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	detail, err := h.service.Get(r.Context(), userID, r.PathValue("id"))
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, h.log, http.StatusOK, detail)
}

// ActiveLoans handles GET /api/active-loans.
func (h *ApplicationHandler) ActiveLoans(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	loans, err := h.service.ActiveLoans(r.Context(), userID)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, h.log, http.StatusOK, loans)
}

// Schedule handles GET /api/active-loans/{id}/schedule.
func (h *ApplicationHandler) Schedule(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	schedule, err := h.service.Schedule(r.Context(), userID, r.PathValue("id"))
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, h.log, http.StatusOK, schedule)
}

// DashboardStats handles GET /api/dashboard/stats.
func (h *ApplicationHandler) DashboardStats(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	stats, err := h.service.DashboardStats(r.Context(), userID)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, h.log, http.StatusOK, stats)
}
