package http

import (
	"encoding/json"
	"net/http"

	"loan-underwriter/apperrors"
	"loan-underwriter/domain"
	"loan-underwriter/logger"
	"loan-underwriter/service"
)

type TermRecommendationHandler struct {
	service *service.TermRecommendationService
	log     logger.Logger
}

func NewTermRecommendationHandler(service *service.TermRecommendationService, log logger.Logger) *TermRecommendationHandler {
	return &TermRecommendationHandler{service: service, log: log}
}

// RecommendTenure handles POST /api/recommend-tenure.
func (h *TermRecommendationHandler) RecommendTenure(w http.ResponseWriter, r *http.Request) {
	body, status, err := readJSONBody(w, r)
	if err != nil {
		http.Error(w, err.Error(), status)
		return
	}

	var input domain.TenureRecommendationInput
	if err := json.Unmarshal(body, &input); err != nil {
		writeError(w, h.log, apperrors.NewInvalidInputError("invalid request body"))
		return
	}

	result, err := h.service.RecommendTenure(input)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, h.log, http.StatusOK, result)
}
