package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loan-underwriter/apperrors"
	"loan-underwriter/domain"
	"loan-underwriter/logger"
)

func tenureInput(preference string) domain.TenureRecommendationInput {
	return domain.TenureRecommendationInput{
		Principal:         100000,
		AnnualRate:        12,
		MinTenureMonths:   12,
		MaxTenureMonths:   36,
		MaxMonthlyPayment: 5000,
		Preference:        preference,
	}
}

func TestRecommendTenure_FiltersUnaffordableTenures(t *testing.T) {
	svc := NewTermRecommendationService(logger.NewTestLogger(t))

	result, err := svc.RecommendTenure(tenureInput(domain.PreferenceBalanced))
	require.NoError(t, err)
	require.NotEmpty(t, result.Recommendations)

	for _, rec := range result.Recommendations {
		assert.LessOrEqual(t, rec.MonthlyPayment, 5000.0)
		assert.GreaterOrEqual(t, rec.TenureMonths, 12)
		assert.LessOrEqual(t, rec.TenureMonths, 36)
		assert.NotEmpty(t, rec.Reason)
	}
	// 12%: 22 months costs more than 5000 a month, 23 does not.
	assert.Len(t, result.Recommendations, 36-23+1)
}

func TestRecommendTenure_SortedByScore(t *testing.T) {
	svc := NewTermRecommendationService(logger.NewNoOpLogger())

	result, err := svc.RecommendTenure(tenureInput(domain.PreferenceMinimizeInterest))
	require.NoError(t, err)

	recs := result.Recommendations
	for i := 1; i < len(recs); i++ {
		assert.GreaterOrEqual(t, recs[i-1].Score, recs[i].Score)
	}
	assert.Equal(t, recs[0].TenureMonths, result.RecommendedTenure)
	assert.Contains(t, recs[0].Reason, "Best match")
}

func TestRecommendTenure_PreferenceChangesOutcome(t *testing.T) {
	svc := NewTermRecommendationService(logger.NewNoOpLogger())

	lowPayment, err := svc.RecommendTenure(tenureInput(domain.PreferenceMinimizePayment))
	require.NoError(t, err)
	lowInterest, err := svc.RecommendTenure(tenureInput(domain.PreferenceMinimizeInterest))
	require.NoError(t, err)

	assert.Equal(t, 36, lowPayment.RecommendedTenure)
	assert.Less(t, lowInterest.RecommendedTenure, lowPayment.RecommendedTenure)
}

func TestRecommendTenure_SingleTenure(t *testing.T) {
	svc := NewTermRecommendationService(logger.NewNoOpLogger())
	in := tenureInput(domain.PreferenceBalanced)
	in.MinTenureMonths, in.MaxTenureMonths = 24, 24

	result, err := svc.RecommendTenure(in)
	require.NoError(t, err)

	assert.Equal(t, 24, result.RecommendedTenure)
	require.Len(t, result.Recommendations, 1)
	assert.InDelta(t, 4707.35, result.Recommendations[0].MonthlyPayment, 0.01)
}

func TestRecommendTenure_InvalidInput(t *testing.T) {
	tests := []struct {
		name   string
		modify func(in *domain.TenureRecommendationInput)
	}{
		{"zero principal", func(in *domain.TenureRecommendationInput) { in.Principal = 0 }},
		{"zero rate", func(in *domain.TenureRecommendationInput) { in.AnnualRate = 0 }},
		{"zero min tenure", func(in *domain.TenureRecommendationInput) { in.MinTenureMonths = 0 }},
		{"min above max", func(in *domain.TenureRecommendationInput) { in.MinTenureMonths = 48 }},
		{"max above limit", func(in *domain.TenureRecommendationInput) {
			in.MinTenureMonths = MaxTermMonths - 10
			in.MaxTenureMonths = MaxTermMonths + 1
		}},
		{"range too wide", func(in *domain.TenureRecommendationInput) { in.MinTenureMonths, in.MaxTenureMonths = 1, 200 }},
		{"zero affordable payment", func(in *domain.TenureRecommendationInput) { in.MaxMonthlyPayment = 0 }},
		{"unknown preference", func(in *domain.TenureRecommendationInput) { in.Preference = "cheapest" }},
		{"nothing affordable", func(in *domain.TenureRecommendationInput) { in.MaxMonthlyPayment = 100 }},
	}

	svc := NewTermRecommendationService(logger.NewNoOpLogger())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := tenureInput(domain.PreferenceBalanced)
			tt.modify(&in)

			_, err := svc.RecommendTenure(in)

			assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
		})
	}
}
