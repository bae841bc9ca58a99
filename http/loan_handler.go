package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xeipuuv/gojsonschema"

	"loan-underwriter/apperrors"
	"loan-underwriter/domain"
	"loan-underwriter/logger"
	"loan-underwriter/service"
)

// Calculator fields may arrive as JSON numbers or numeric strings.
var emiRequestSchema = gojsonschema.NewStringLoader(`{
	"type": "object",
	"required": ["principal", "rate", "tenure"],
	"properties": {
		"principal": {"type": ["number", "string"]},
		"rate":      {"type": ["number", "string"]},
		"tenure":    {"type": ["integer", "string"]}
	}
}`)

type emiRequest struct {
	Principal domain.Amount `json:"principal"`
	Rate      domain.Amount `json:"rate"`
	Tenure    domain.Amount `json:"tenure"`
}

type LoanHandler struct {
	service *service.LoanService
	log     logger.Logger
}

func NewLoanHandler(service *service.LoanService, log logger.Logger) *LoanHandler {
	return &LoanHandler{service: service, log: log}
}

// CalculateEMI handles POST /api/calculate-emi.
func (h *LoanHandler) CalculateEMI(w http.ResponseWriter, r *http.Request) {
	body, status, err := readJSONBody(w, r)
	if err != nil {
		http.Error(w, err.Error(), status)
		return
	}

	input, err := parseEMIRequest(body)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	result, err := h.service.CalculateEMI(r.Context(), input)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, h.log, http.StatusOK, result)
}

func parseEMIRequest(body []byte) (domain.EMIInput, error) {
	result, err := gojsonschema.Validate(emiRequestSchema, gojsonschema.NewBytesLoader(body))
	if err != nil {
		return domain.EMIInput{}, apperrors.NewInvalidInputError(fmt.Sprintf("invalid request body: %v", err))
	}
	if !result.Valid() {
		errs := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			errs[i] = desc.String()
		}
		return domain.EMIInput{}, apperrors.NewInvalidInputError(strings.Join(errs, "; "))
	}

	var req emiRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return domain.EMIInput{}, apperrors.NewInvalidInputError("invalid request body")
	}

	principal, err := parseDecimalField("principal", req.Principal)
	if err != nil {
		return domain.EMIInput{}, err
	}
	rate, err := parseDecimalField("rate", req.Rate)
	if err != nil {
		return domain.EMIInput{}, err
	}
	tenure, err := parseDecimalField("tenure", req.Tenure)
	if err != nil {
		return domain.EMIInput{}, err
	}
	if !tenure.Equal(tenure.Truncate(0)) {
		return domain.EMIInput{}, apperrors.NewInvalidInputError("tenure must be a whole number of months")
	}
	// IntPart wraps outside int64, so the range is checked on the decimal.
	if tenure.LessThan(decimal.NewFromInt(service.MinTermMonths)) || tenure.GreaterThan(decimal.NewFromInt(service.MaxTermMonths)) {
		return domain.EMIInput{}, apperrors.NewInvalidInputError(
			fmt.Sprintf("tenure must be between %d and %d months", service.MinTermMonths, service.MaxTermMonths))
	}

	return domain.EMIInput{
		Principal:    principal,
		AnnualRate:   rate,
		TenureMonths: int(tenure.IntPart()),
	}, nil
}

func parseDecimalField(name string, raw domain.Amount) (decimal.Decimal, error) {
	s := strings.TrimSpace(string(raw))
	if s == "" {
		return decimal.Decimal{}, apperrors.NewInvalidInputError(name + " is required")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, apperrors.NewInvalidInputError(fmt.Sprintf("%s is not a number: %q", name, s))
	}
	return d, nil
}
