package service

// Calculator limits.
const (
	MaxLoanAmount   = 1_000_000_000.0
	MaxInterestRate = 1000.0 // percent per year
	MaxTermMonths   = 600
	MinTermMonths   = 1

	// Widest tenure range the recommender evaluates in one request.
	MaxTermRangeMonths = 120
)

// Underwriting policy.
const (
	DefaultTenureMonths = 24

	MinEligibleScore        = 60
	MaxEligibleDebtToIncome = 50.0

	// Share of income that may go to EMIs, existing ones included.
	EMICapacityShare = 0.4

	// Credit card minimum payment assumed per month.
	CreditCardMinPaymentShare = 0.05

	// Loan amount ceiling as a multiple of monthly salary.
	SalaryMultipleCap = 4.0

	// Share of the desired amount that may be approved.
	DesiredAmountShare = 0.9
)

// Profile amount bounds. Amounts outside them cannot be scored in float64
// without overflowing the ratio figures.
const (
	MaxProfileAmount = 1_000_000_000_000.0
	MinSalaryAmount  = 0.01
)

// Component weights of the overall score. They sum to 1.
const (
	WeightIncomeStability   = 0.30
	WeightRepaymentCapacity = 0.35
	WeightSpendingPattern   = 0.20
	WeightEmployment        = 0.15
)
