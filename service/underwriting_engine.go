package service

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"loan-underwriter/apperrors"
	"loan-underwriter/domain"
)

// UnderwritingEngine turns an applicant profile into an assessment. It holds
// no state and is safe for concurrent use.
type UnderwritingEngine struct{}

// NewUnderwritingEngine returns a new engine instance.
func NewUnderwritingEngine() *UnderwritingEngine {
	return &UnderwritingEngine{}
}

// figures are the profile values and ratios the scoring rules read. Ratios
// are percentages of the current salary.
type figures struct {
	profile domain.ApplicantProfile

	salary            float64
	previousSalary    float64
	salaryGrowth      float64
	totalExistingDebt float64
	debtToIncome      float64
	savingsRatio      float64
	housingCost       float64
	rentRatio         float64
	grocery           float64
	groceryRatio      float64
	lifestyleSpend    float64
	lifestyleRatio    float64
	desiredAmount     float64
}

func newFigures(p domain.ApplicantProfile) figures {
	f := figures{
		profile:        p,
		salary:         p.CurrentSalary.InexactFloat64(),
		previousSalary: p.PreviousSalary.InexactFloat64(),
		grocery:        p.GroceryExpense.InexactFloat64(),
		desiredAmount:  p.DesiredAmount.InexactFloat64(),
	}

	if f.previousSalary > 0 {
		f.salaryGrowth = (f.salary - f.previousSalary) / f.previousSalary * 100
	}

	f.totalExistingDebt = p.ExistingEmis.InexactFloat64() + p.CreditCardDebt.InexactFloat64()*CreditCardMinPaymentShare
	f.debtToIncome = f.percentOfSalary(f.totalExistingDebt)
	f.savingsRatio = f.percentOfSalary(p.MonthlySavings.InexactFloat64())

	rent := p.RentAmount.InexactFloat64()
	f.rentRatio = f.percentOfSalary(rent)
	if p.OwnsHouse == domain.HousingRented {
		f.housingCost = rent
	}

	f.lifestyleSpend = float64(p.MallVisits)*p.MallSpending.InexactFloat64() + p.EntertainmentBudget.InexactFloat64()
	f.lifestyleRatio = f.percentOfSalary(f.lifestyleSpend)
	f.groceryRatio = f.percentOfSalary(f.grocery)

	return f
}

func (f figures) percentOfSalary(v float64) float64 {
	return v / f.salary * 100
}

// adjustment is what a rule contributes: a score delta and an optional note.
type adjustment struct {
	delta    int
	note     string
	positive bool
}

func plus(delta int, note string) adjustment {
	return adjustment{delta: delta, note: note, positive: true}
}

func minus(delta int, note string) adjustment {
	return adjustment{delta: -delta, note: note}
}

// rule reports its adjustment and whether it fired.
type rule func(f figures) (adjustment, bool)

// scoringPass starts from base and folds its rules over it in order.
type scoringPass struct {
	base  int
	rules []rule
}

func (sp scoringPass) run(f figures, notes *factorLog) int {
	score := sp.base
	for _, r := range sp.rules {
		adj, fired := r(f)
		if !fired {
			continue
		}
		score += adj.delta
		notes.record(adj)
	}
	return clampScore(score)
}

// factorLog is append-only.
type factorLog struct {
	positive        []string
	negative        []string
	recommendations []string
}

func (l *factorLog) record(adj adjustment) {
	if adj.note == "" {
		return
	}
	if adj.positive {
		l.positive = append(l.positive, adj.note)
	} else {
		l.negative = append(l.negative, adj.note)
	}
}

func (l *factorLog) factors() domain.Factors {
	return domain.Factors{
		Positive:        l.positive,
		Negative:        l.negative,
		Recommendations: l.recommendations,
	}
}

var incomeStabilityPass = scoringPass{
	base: 50,
	rules: []rule{
		func(f figures) (adjustment, bool) {
			if f.previousSalary <= 0 {
				return adjustment{}, false
			}
			switch {
			case f.salaryGrowth > 10:
				return plus(20, fmt.Sprintf("Strong salary growth of %.1f%%", f.salaryGrowth)), true
			case f.salaryGrowth > 0:
				return plus(10, "Positive salary growth trend"), true
			default:
				return minus(10, "No recent salary increase"), true
			}
		},
		func(f figures) (adjustment, bool) {
			switch f.profile.EmploymentType {
			case domain.EmploymentPermanent:
				return plus(15, "Permanent employment status"), true
			case domain.EmploymentContract:
				return minus(10, "Contract employment (higher risk)"), true
			}
			return adjustment{}, false
		},
		func(f figures) (adjustment, bool) {
			switch exp := f.profile.Experience; {
			case exp >= 5:
				return plus(15, fmt.Sprintf("%d+ years of experience", exp)), true
			case exp >= 2:
				return plus(5, "Moderate work experience"), true
			default:
				return minus(10, "Limited work experience"), true
			}
		},
	},
}

var repaymentCapacityPass = scoringPass{
	base: 100,
	rules: []rule{
		func(f figures) (adjustment, bool) {
			switch {
			case f.debtToIncome > 50:
				return minus(40, fmt.Sprintf("High debt-to-income ratio (%.1f%%)", f.debtToIncome)), true
			case f.debtToIncome > 30:
				return minus(20, fmt.Sprintf("Moderate debt burden (%.1f%%)", f.debtToIncome)), true
			case f.debtToIncome < 20:
				return plus(0, fmt.Sprintf("Low debt-to-income ratio (%.1f%%)", f.debtToIncome)), true
			}
			return adjustment{}, false
		},
		func(f figures) (adjustment, bool) {
			switch {
			case f.savingsRatio > 20:
				return plus(10, fmt.Sprintf("Excellent savings habit (%.1f%% of income)", f.savingsRatio)), true
			case f.savingsRatio > 10:
				return plus(5, "Good savings pattern"), true
			case f.savingsRatio < 5:
				return minus(15, "Low savings rate indicates financial stress"), true
			}
			return adjustment{}, false
		},
	},
}

var spendingPatternPass = scoringPass{
	base: 70,
	rules: []rule{
		func(f figures) (adjustment, bool) {
			switch f.profile.OwnsHouse {
			case domain.HousingOwned:
				return plus(20, "Homeowner (asset and stability)"), true
			case domain.HousingFamily:
				return plus(10, "Living with family (reduced expenses)"), true
			}
			switch {
			case f.rentRatio > 40:
				return minus(20, fmt.Sprintf("High rental expense (%.1f%% of income)", f.rentRatio)), true
			case f.rentRatio > 30:
				return minus(10, "Moderate rental burden"), true
			}
			return adjustment{}, false
		},
		func(f figures) (adjustment, bool) {
			switch {
			case f.lifestyleRatio > 15:
				return minus(20, fmt.Sprintf("High discretionary spending (%.1f%% of income)", f.lifestyleRatio)), true
			case f.lifestyleRatio > 10:
				return minus(10, "Moderate lifestyle spending"), true
			case f.lifestyleRatio < 5:
				return plus(10, "Conservative spending habits"), true
			}
			return adjustment{}, false
		},
		func(f figures) (adjustment, bool) {
			if f.groceryRatio > 15 {
				return minus(10, "High grocery expenses"), true
			}
			return adjustment{}, false
		},
	},
}

var employmentPass = scoringPass{
	base: 60,
	rules: []rule{
		func(f figures) (adjustment, bool) {
			if f.profile.EmploymentType == domain.EmploymentPermanent && f.profile.Experience >= 3 {
				return plus(25, "Stable employment with good tenure"), true
			}
			return adjustment{}, false
		},
		func(f figures) (adjustment, bool) {
			switch f.profile.InvestmentHabit {
			case domain.InvestmentAggressive, domain.InvestmentModerate:
				return plus(15, "Active investment portfolio"), true
			case domain.InvestmentConservative:
				return plus(10, "Conservative investment approach"), true
			case domain.InvestmentNone:
				return minus(10, "No investment habit"), true
			}
			return adjustment{}, false
		},
	},
}

type recommendation struct {
	applies func(f figures) bool
	text    string
}

var recommendations = []recommendation{
	{
		applies: func(f figures) bool { return f.debtToIncome > 30 },
		text:    "Consider consolidating existing debts to reduce EMI burden",
	},
	{
		applies: func(f figures) bool { return f.savingsRatio < 10 },
		text:    "Increase monthly savings to 15-20% of income for better financial health",
	},
	{
		applies: func(f figures) bool { return f.lifestyleRatio > 10 },
		text:    "Reduce discretionary spending to improve loan repayment capacity",
	},
	{
		applies: func(f figures) bool { return f.profile.InvestmentHabit == domain.InvestmentNone },
		text:    "Start investing in mutual funds or SIPs for long-term wealth creation",
	},
	{
		applies: func(f figures) bool {
			return f.profile.OwnsHouse == domain.HousingRented && f.rentRatio > 30
		},
		text: "Consider home ownership to reduce long-term housing costs",
	},
}

// riskTier sets pricing and the salary-multiple cap for a score band.
type riskTier struct {
	multiplier float64
	rate       float64
}

func tierFor(overall int) riskTier {
	switch {
	case overall > 80:
		return riskTier{multiplier: 1.0, rate: 11.5}
	case overall > 70:
		return riskTier{multiplier: 0.9, rate: 12.0}
	default:
		return riskTier{multiplier: 0.8, rate: 13.0}
	}
}

// Assess scores the profile and, when eligible, derives loan terms.
func (e *UnderwritingEngine) Assess(profile domain.ApplicantProfile) (domain.Assessment, error) {
	if err := ValidateProfile(profile); err != nil {
		return domain.Assessment{}, err
	}

	f := newFigures(profile)
	notes := &factorLog{}

	scores := domain.ComponentScores{
		IncomeStability:   incomeStabilityPass.run(f, notes),
		RepaymentCapacity: repaymentCapacityPass.run(f, notes),
		SpendingPattern:   spendingPatternPass.run(f, notes),
		Employment:        employmentPass.run(f, notes),
	}
	overall := overallScore(scores)

	scoreOK := overall >= MinEligibleScore
	debtOK := f.debtToIncome <= MaxEligibleDebtToIncome
	if !scoreOK {
		notes.negative = append(notes.negative, "Overall risk score below minimum threshold")
	}
	if !debtOK {
		notes.negative = append(notes.negative, "Debt-to-income ratio exceeds maximum limit")
	}

	for _, rec := range recommendations {
		if rec.applies(f) {
			notes.recommendations = append(notes.recommendations, rec.text)
		}
	}

	metrics := financialMetrics(f)

	if scoreOK && debtOK {
		return domain.NewEligibleAssessment(scores, overall, metrics, deriveTerms(f, overall), notes.factors()), nil
	}
	return domain.NewIneligibleAssessment(scores, overall, metrics, notes.factors()), nil
}

func overallScore(s domain.ComponentScores) int {
	weighted := float64(s.IncomeStability)*WeightIncomeStability +
		float64(s.RepaymentCapacity)*WeightRepaymentCapacity +
		float64(s.SpendingPattern)*WeightSpendingPattern +
		float64(s.Employment)*WeightEmployment
	return clampScore(int(math.Round(weighted)))
}

// deriveTerms prices the loan for the score's tier. The approved amount is
// capped so that its EMI fits within the applicant's remaining EMI capacity.
func deriveTerms(f figures, overall int) domain.LoanTerms {
	tier := tierFor(overall)

	maxEMI := f.salary*EMICapacityShare - f.totalExistingDebt
	capacityAmount := math.Min(f.desiredAmount, f.salary*SalaryMultipleCap*tier.multiplier)
	approved := math.Min(f.desiredAmount*DesiredAmountShare, capacityAmount)

	if monthlyPayment(approved, tier.rate, DefaultTenureMonths) > maxEMI {
		approved = principalForPayment(maxEMI, tier.rate, DefaultTenureMonths)
	}

	// Flooring keeps both the amount and its EMI at or under their caps.
	amount := decimal.NewFromFloat(math.Max(approved, 0)).RoundFloor(2)
	emi := decimal.Zero
	if amount.IsPositive() {
		emi = decimal.NewFromFloat(monthlyPayment(amount.InexactFloat64(), tier.rate, DefaultTenureMonths)).RoundFloor(2)
	}

	return domain.LoanTerms{
		ApprovedAmount: amount,
		InterestRate:   decimal.NewFromFloat(tier.rate),
		Tenure:         DefaultTenureMonths,
		MonthlyEMI:     emi,
	}
}

func financialMetrics(f figures) domain.FinancialMetrics {
	totalExpenses := f.housingCost + f.grocery + f.totalExistingDebt + f.lifestyleSpend
	return domain.FinancialMetrics{
		DebtToIncomeRatio:   decimal.NewFromFloat(f.debtToIncome).Round(2),
		DisposableIncome:    decimal.NewFromFloat(f.salary - totalExpenses).Round(2),
		LifestyleRiskFactor: decimal.NewFromFloat(f.lifestyleRatio / 100).Round(3),
	}
}

func clampScore(score int) int {
	return min(100, max(0, score))
}

// ValidateProfile rejects profiles the engine cannot score.
func ValidateProfile(p domain.ApplicantProfile) error {
	if !p.CurrentSalary.IsPositive() {
		return apperrors.NewInvalidProfileError("currentSalary must be greater than zero")
	}
	if !p.DesiredAmount.IsPositive() {
		return apperrors.NewInvalidProfileError("desiredAmount must be greater than zero")
	}

	minSalary := decimal.NewFromFloat(MinSalaryAmount)
	if p.CurrentSalary.LessThan(minSalary) {
		return apperrors.NewInvalidProfileError(fmt.Sprintf("currentSalary must be at least %.2f", MinSalaryAmount))
	}
	if p.PreviousSalary.IsPositive() && p.PreviousSalary.LessThan(minSalary) {
		return apperrors.NewInvalidProfileError(fmt.Sprintf("previousSalary must be zero or at least %.2f", MinSalaryAmount))
	}

	maxAmount := decimal.NewFromFloat(MaxProfileAmount)
	amounts := []struct {
		name  string
		value decimal.Decimal
	}{
		{"currentSalary", p.CurrentSalary},
		{"desiredAmount", p.DesiredAmount},
		{"previousSalary", p.PreviousSalary},
		{"existingEmis", p.ExistingEmis},
		{"creditCardDebt", p.CreditCardDebt},
		{"rentAmount", p.RentAmount},
		{"groceryExpense", p.GroceryExpense},
		{"mallSpending", p.MallSpending},
		{"entertainmentBudget", p.EntertainmentBudget},
		{"monthlySavings", p.MonthlySavings},
	}
	for _, a := range amounts {
		if a.value.IsNegative() {
			return apperrors.NewInvalidProfileError(fmt.Sprintf("%s must not be negative", a.name))
		}
		if a.value.GreaterThan(maxAmount) {
			return apperrors.NewInvalidProfileError(fmt.Sprintf("%s must not exceed %.0f", a.name, MaxProfileAmount))
		}
	}

	if p.Experience < 0 {
		return apperrors.NewInvalidProfileError("experience must not be negative")
	}
	if p.MallVisits < 0 {
		return apperrors.NewInvalidProfileError("mallVisits must not be negative")
	}
	if !p.EmploymentType.Valid() {
		return apperrors.NewInvalidProfileError(fmt.Sprintf("unknown employmentType %q", p.EmploymentType))
	}
	if !p.OwnsHouse.Valid() {
		return apperrors.NewInvalidProfileError(fmt.Sprintf("unknown ownsHouse %q", p.OwnsHouse))
	}
	if !p.InvestmentHabit.Valid() {
		return apperrors.NewInvalidProfileError(fmt.Sprintf("unknown investmentHabit %q", p.InvestmentHabit))
	}
	return nil
}
