package service

import (
	"fmt"
	"math"

	"loan-underwriter/apperrors"
)

// EMIBreakdown is the unrounded output of the EMI formula.
type EMIBreakdown struct {
	EMI           float64
	TotalAmount   float64
	TotalInterest float64
}

// ComputeEMI applies EMI = P·r·(1+r)^n / ((1+r)^n − 1) with r = annualRate/1200.
// Principal and rate must be positive, tenure at least one month.
func ComputeEMI(principal, annualRatePercent float64, tenureMonths int) (EMIBreakdown, error) {
	if err := validateEMIInputs(principal, annualRatePercent, tenureMonths); err != nil {
		return EMIBreakdown{}, err
	}

	emi := monthlyPayment(principal, annualRatePercent, tenureMonths)
	total := emi * float64(tenureMonths)

	return EMIBreakdown{
		EMI:           emi,
		TotalAmount:   total,
		TotalInterest: total - principal,
	}, nil
}

func validateEMIInputs(principal, annualRatePercent float64, tenureMonths int) error {
	if !isFinite(principal) || principal <= 0 {
		return apperrors.NewInvalidInputError(fmt.Sprintf("principal must be a positive number, got %v", principal))
	}
	if !isFinite(annualRatePercent) || annualRatePercent <= 0 {
		return apperrors.NewInvalidInputError(fmt.Sprintf("rate must be a positive number, got %v", annualRatePercent))
	}
	if tenureMonths <= 0 {
		return apperrors.NewInvalidInputError(fmt.Sprintf("tenure must be at least one month, got %d", tenureMonths))
	}
	return nil
}

func monthlyPayment(principal, annualRatePercent float64, tenureMonths int) float64 {
	r := annualRatePercent / 1200
	factor := math.Pow(1+r, float64(tenureMonths))
	return principal * r * factor / (factor - 1)
}

// principalForPayment inverts monthlyPayment: the largest principal whose EMI
// equals payment.
func principalForPayment(payment, annualRatePercent float64, tenureMonths int) float64 {
	r := annualRatePercent / 1200
	factor := math.Pow(1+r, float64(tenureMonths))
	return payment * (factor - 1) / (r * factor)
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
