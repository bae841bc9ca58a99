package service

import (
	"fmt"
	"math"
	"sort"

	"loan-underwriter/apperrors"
	"loan-underwriter/domain"
	"loan-underwriter/logger"
)

// TermRecommendationService ranks repayment tenures for a principal and rate.
type TermRecommendationService struct {
	log logger.Logger
}

func NewTermRecommendationService(log logger.Logger) *TermRecommendationService {
	return &TermRecommendationService{log: log}
}

var preferenceWeights = map[string]struct{ interest, payment, tenure float64 }{
	domain.PreferenceMinimizeInterest: {0.6, 0.2, 0.2},
	domain.PreferenceMinimizePayment:  {0.2, 0.6, 0.2},
	domain.PreferenceBalanced:         {0.4, 0.4, 0.2},
}

// RecommendTenure evaluates every tenure in the requested range, drops those
// whose EMI exceeds the affordable payment and orders the rest by score.
func (s *TermRecommendationService) RecommendTenure(
	input domain.TenureRecommendationInput,
) (domain.TenureRecommendationResult, error) {
	if err := validateTenureInput(input); err != nil {
		return domain.TenureRecommendationResult{}, err
	}
	weights := preferenceWeights[input.Preference]

	// Normalization bounds for scoring (0-10).
	maxInterest := input.Principal * (input.AnnualRate / 100) * float64(input.MaxTenureMonths) / 12
	minInterest := input.Principal * (input.AnnualRate / 100) * float64(input.MinTenureMonths) / 12
	interestRange := maxInterest - minInterest
	floorPayment := input.Principal / float64(input.MaxTenureMonths)
	paymentRange := input.MaxMonthlyPayment - floorPayment
	tenureRange := float64(input.MaxTenureMonths - input.MinTenureMonths)

	recommendations := []domain.TenureRecommendation{}
	for tenure := input.MinTenureMonths; tenure <= input.MaxTenureMonths; tenure++ {
		emi, err := ComputeEMI(input.Principal, input.AnnualRate, tenure)
		if err != nil {
			return domain.TenureRecommendationResult{}, err
		}
		payment := roundCents(emi.EMI)
		if payment > input.MaxMonthlyPayment {
			continue
		}

		var interestScore, paymentScore, tenureScore float64
		if interestRange > 0 {
			interestScore = 10 * (1 - (emi.TotalInterest-minInterest)/interestRange)
		}
		if paymentRange > 0 {
			paymentScore = 10 * (1 - (emi.EMI-floorPayment)/paymentRange)
		}
		if tenureRange > 0 {
			tenureScore = 10 * (1 - float64(tenure-input.MinTenureMonths)/tenureRange)
		}

		recommendations = append(recommendations, domain.TenureRecommendation{
			TenureMonths:   tenure,
			MonthlyPayment: payment,
			TotalInterest:  roundCents(emi.TotalInterest),
			Score:          roundCents(weights.interest*interestScore + weights.payment*paymentScore + weights.tenure*tenureScore),
		})
	}

	if len(recommendations) == 0 {
		return domain.TenureRecommendationResult{}, apperrors.NewInvalidInputError(
			fmt.Sprintf("no tenure between %d and %d months keeps the EMI under %.2f",
				input.MinTenureMonths, input.MaxTenureMonths, input.MaxMonthlyPayment))
	}

	sort.SliceStable(recommendations, func(i, j int) bool {
		return recommendations[i].Score > recommendations[j].Score
	})

	for i := range recommendations {
		recommendations[i].Reason = tenureReason(input.Preference, i == 0)
	}

	top := recommendations[0]
	s.log.Debug("tenure recommended", map[string]interface{}{
		"tenure":     top.TenureMonths,
		"payment":    top.MonthlyPayment,
		"preference": input.Preference,
		"candidates": len(recommendations),
	})

	return domain.TenureRecommendationResult{
		RecommendedTenure: top.TenureMonths,
		Recommendations:   recommendations,
	}, nil
}

func validateTenureInput(input domain.TenureRecommendationInput) error {
	switch {
	case input.Principal <= 0 || !isFinite(input.Principal):
		return apperrors.NewInvalidInputError("principal must be a positive number")
	case input.Principal > MaxLoanAmount:
		return apperrors.NewInvalidInputError(fmt.Sprintf("principal exceeds the maximum of %.2f", MaxLoanAmount))
	case input.AnnualRate <= 0 || !isFinite(input.AnnualRate):
		return apperrors.NewInvalidInputError("rate must be a positive number")
	case input.AnnualRate > MaxInterestRate:
		return apperrors.NewInvalidInputError(fmt.Sprintf("rate exceeds the maximum of %.2f%%", MaxInterestRate))
	case input.MinTenureMonths < MinTermMonths || input.MaxTenureMonths < MinTermMonths:
		return apperrors.NewInvalidInputError("tenure bounds must be at least one month")
	case input.MinTenureMonths > input.MaxTenureMonths:
		return apperrors.NewInvalidInputError("minimum tenure is greater than maximum tenure")
	case input.MaxTenureMonths > MaxTermMonths:
		return apperrors.NewInvalidInputError(fmt.Sprintf("maximum tenure exceeds the limit of %d months", MaxTermMonths))
	case input.MaxTenureMonths-input.MinTenureMonths > MaxTermRangeMonths:
		return apperrors.NewInvalidInputError(fmt.Sprintf("tenure range exceeds %d months", MaxTermRangeMonths))
	case input.MaxMonthlyPayment <= 0 || !isFinite(input.MaxMonthlyPayment):
		return apperrors.NewInvalidInputError("maximum monthly payment must be a positive number")
	}
	if _, ok := preferenceWeights[input.Preference]; !ok {
		return apperrors.NewInvalidInputError(fmt.Sprintf("unknown preference %q", input.Preference))
	}
	return nil
}

func tenureReason(preference string, top bool) string {
	var reason string
	switch preference {
	case domain.PreferenceMinimizeInterest:
		reason = "Tenure optimized for the lowest total interest"
	case domain.PreferenceMinimizePayment:
		reason = "Tenure optimized for the lowest monthly payment"
	default:
		reason = "Balance between monthly payment and total cost"
	}
	if top {
		return "Best match: " + reason
	}
	return reason
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
