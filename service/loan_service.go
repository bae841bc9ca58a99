package service

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"loan-underwriter/apperrors"
	"loan-underwriter/domain"
	"loan-underwriter/logger"
	"loan-underwriter/metrics"
	"loan-underwriter/repository"
)

// LoanService answers standalone EMI calculator requests.
type LoanService struct {
	cache repository.CacheRepository
	log   logger.Logger
	ttl   time.Duration
}

// NewLoanService creates a LoanService that caches results for ttl.
func NewLoanService(cache repository.CacheRepository, log logger.Logger, ttl time.Duration) *LoanService {
	return &LoanService{cache: cache, log: log, ttl: ttl}
}

// CalculateEMI returns the monthly installment, total payment and total
// interest for the input, rounded to whole units.
func (s *LoanService) CalculateEMI(ctx context.Context, input domain.EMIInput) (domain.EMIResult, error) {
	principal := input.Principal.InexactFloat64()
	rate := input.AnnualRate.InexactFloat64()

	if principal > MaxLoanAmount {
		return domain.EMIResult{}, apperrors.NewInvalidInputError(fmt.Sprintf("principal exceeds the maximum of %.2f", MaxLoanAmount))
	}
	if rate > MaxInterestRate {
		return domain.EMIResult{}, apperrors.NewInvalidInputError(fmt.Sprintf("rate exceeds the maximum of %.2f%%", MaxInterestRate))
	}
	if input.TenureMonths > MaxTermMonths {
		return domain.EMIResult{}, apperrors.NewInvalidInputError(fmt.Sprintf("tenure exceeds the maximum of %d months", MaxTermMonths))
	}

	if err := validateEMIInputs(principal, rate, input.TenureMonths); err != nil {
		return domain.EMIResult{}, err
	}

	key := emiCacheKey(input)
	if cached, ok := s.lookup(ctx, key); ok {
		metrics.EMICalculations.WithLabelValues("hit").Inc()
		return cached, nil
	}
	metrics.EMICalculations.WithLabelValues("miss").Inc()

	breakdown, err := ComputeEMI(principal, rate, input.TenureMonths)
	if err != nil {
		return domain.EMIResult{}, err
	}

	result := domain.EMIResult{
		EMI:           int64(math.Round(breakdown.EMI)),
		TotalAmount:   int64(math.Round(breakdown.TotalAmount)),
		TotalInterest: int64(math.Round(breakdown.TotalInterest)),
		Principal:     int64(math.Round(principal)),
	}

	s.store(ctx, key, result)
	return result, nil
}

func (s *LoanService) lookup(ctx context.Context, key string) (domain.EMIResult, bool) {
	raw, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		s.log.WithError(err).Warn("emi cache read failed", map[string]interface{}{"key": key})
		return domain.EMIResult{}, false
	}
	if !ok {
		return domain.EMIResult{}, false
	}

	var result domain.EMIResult
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		s.log.WithError(err).Warn("discarding malformed emi cache entry", map[string]interface{}{"key": key})
		return domain.EMIResult{}, false
	}
	return result, true
}

// store is best effort; a failed write only costs a recomputation.
func (s *LoanService) store(ctx context.Context, key string, result domain.EMIResult) {
	payload, err := json.Marshal(result)
	if err != nil {
		s.log.WithError(err).Warn("emi result not cacheable", map[string]interface{}{"key": key})
		return
	}
	if err := s.cache.Set(ctx, key, string(payload), s.ttl); err != nil {
		s.log.WithError(err).Warn("emi cache write failed", map[string]interface{}{"key": key})
	}
}

func emiCacheKey(input domain.EMIInput) string {
	return fmt.Sprintf("emi:%s:%s:%d", input.Principal.String(), input.AnnualRate.String(), input.TenureMonths)
}
