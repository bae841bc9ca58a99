package domain

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// RiskLevel buckets the overall score for display.
type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskModerate RiskLevel = "moderate"
	RiskHigh     RiskLevel = "high"
)

// ComponentScores are the four pass results, each in [0,100].
type ComponentScores struct {
	IncomeStability   int `json:"incomeStabilityScore"`
	RepaymentCapacity int `json:"repaymentCapacityScore"`
	SpendingPattern   int `json:"spendingPatternScore"`
	Employment        int `json:"employmentScore"`
}

// FinancialMetrics are the derived ratios exposed with every assessment.
type FinancialMetrics struct {
	DebtToIncomeRatio   decimal.Decimal `json:"debtToIncomeRatio"`
	DisposableIncome    decimal.Decimal `json:"disposableIncome"`
	LifestyleRiskFactor decimal.Decimal `json:"lifestyleRiskFactor"`
}

// LoanTerms are offered only to eligible applicants.
type LoanTerms struct {
	ApprovedAmount decimal.Decimal `json:"approvedAmount"`
	InterestRate   decimal.Decimal `json:"interestRate"`
	Tenure         int             `json:"tenure"`
	MonthlyEMI     decimal.Decimal `json:"monthlyEmi"`
}

// Factors are the human-readable notes collected while scoring.
type Factors struct {
	Positive        []string
	Negative        []string
	Recommendations []string
}

// Assessment is the immutable result of one underwriting run. It is either
// eligible, and then carries LoanTerms, or ineligible without terms; the two
// constructors are the only way to build one.
type Assessment struct {
	scores  ComponentScores
	overall int
	metrics FinancialMetrics
	terms   *LoanTerms
	factors Factors
}

// NewEligibleAssessment builds an assessment that offers terms.
func NewEligibleAssessment(scores ComponentScores, overall int, metrics FinancialMetrics, terms LoanTerms, factors Factors) Assessment {
	return Assessment{
		scores:  scores,
		overall: overall,
		metrics: metrics,
		terms:   &terms,
		factors: copyFactors(factors),
	}
}

// NewIneligibleAssessment builds an assessment without terms.
func NewIneligibleAssessment(scores ComponentScores, overall int, metrics FinancialMetrics, factors Factors) Assessment {
	return Assessment{
		scores:  scores,
		overall: overall,
		metrics: metrics,
		factors: copyFactors(factors),
	}
}

func (a Assessment) IsEligible() bool {
	return a.terms != nil
}

func (a Assessment) Scores() ComponentScores {
	return a.scores
}

func (a Assessment) OverallRiskScore() int {
	return a.overall
}

func (a Assessment) Metrics() FinancialMetrics {
	return a.metrics
}

func (a Assessment) PositiveFactors() []string {
	return cloneStrings(a.factors.Positive)
}

func (a Assessment) NegativeFactors() []string {
	return cloneStrings(a.factors.Negative)
}

func (a Assessment) Recommendations() []string {
	return cloneStrings(a.factors.Recommendations)
}

// Terms returns the offered terms; ok is false for ineligible assessments.
func (a Assessment) Terms() (LoanTerms, bool) {
	if a.terms == nil {
		return LoanTerms{}, false
	}
	return *a.terms, true
}

func (a Assessment) RiskLevel() RiskLevel {
	switch {
	case a.overall >= 80:
		return RiskLow
	case a.overall >= 60:
		return RiskModerate
	default:
		return RiskHigh
	}
}

type assessmentJSON struct {
	IsEligible     bool             `json:"isEligible"`
	ApprovedAmount *decimal.Decimal `json:"approvedAmount,omitempty"`
	InterestRate   *decimal.Decimal `json:"interestRate,omitempty"`
	Tenure         *int             `json:"tenure,omitempty"`
	MonthlyEMI     *decimal.Decimal `json:"monthlyEmi,omitempty"`

	OverallRiskScore int       `json:"overallRiskScore"`
	RiskLevel        RiskLevel `json:"riskLevel"`
	ComponentScores
	FinancialMetrics

	PositiveFactors []string `json:"positiveFactors"`
	NegativeFactors []string `json:"negativeFactors"`
	Recommendations []string `json:"recommendations"`
}

func (a Assessment) MarshalJSON() ([]byte, error) {
	out := assessmentJSON{
		IsEligible:       a.IsEligible(),
		OverallRiskScore: a.overall,
		RiskLevel:        a.RiskLevel(),
		ComponentScores:  a.scores,
		FinancialMetrics: a.metrics,
		PositiveFactors:  nonNil(a.factors.Positive),
		NegativeFactors:  nonNil(a.factors.Negative),
		Recommendations:  nonNil(a.factors.Recommendations),
	}
	if t, ok := a.Terms(); ok {
		out.ApprovedAmount = &t.ApprovedAmount
		out.InterestRate = &t.InterestRate
		out.Tenure = &t.Tenure
		out.MonthlyEMI = &t.MonthlyEMI
	}
	return json.Marshal(out)
}

func copyFactors(f Factors) Factors {
	return Factors{
		Positive:        cloneStrings(f.Positive),
		Negative:        cloneStrings(f.Negative),
		Recommendations: cloneStrings(f.Recommendations),
	}
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s))
	copy(out, s)
	return out
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
