package domain

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

type EmploymentType string

const (
	EmploymentPermanent EmploymentType = "permanent"
	EmploymentContract  EmploymentType = "contract"
	EmploymentProbation EmploymentType = "probation"
)

func (e EmploymentType) Valid() bool {
	switch e {
	case EmploymentPermanent, EmploymentContract, EmploymentProbation:
		return true
	}
	return false
}

// HousingStatus is the applicant's answer to "do you own a house".
type HousingStatus string

const (
	HousingOwned  HousingStatus = "yes"
	HousingRented HousingStatus = "no"
	HousingFamily HousingStatus = "family"
)

func (h HousingStatus) Valid() bool {
	switch h {
	case HousingOwned, HousingRented, HousingFamily:
		return true
	}
	return false
}

type InvestmentHabit string

const (
	InvestmentAggressive   InvestmentHabit = "aggressive"
	InvestmentModerate     InvestmentHabit = "moderate"
	InvestmentConservative InvestmentHabit = "conservative"
	InvestmentMinimal      InvestmentHabit = "minimal"
	InvestmentNone         InvestmentHabit = "none"
)

func (i InvestmentHabit) Valid() bool {
	switch i {
	case InvestmentAggressive, InvestmentModerate, InvestmentConservative, InvestmentMinimal, InvestmentNone:
		return true
	}
	return false
}

// Amount is a decimal value as submitted by a client, either a JSON string or
// a JSON number. Parsing happens when the profile is built.
type Amount string

func (a *Amount) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*a = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*a = Amount(s)
		return nil
	}
	*a = Amount(b)
	return nil
}

// ProfileInput is the application form as received from the intake layer.
type ProfileInput struct {
	FullName    string `json:"fullName"`
	LoanPurpose string `json:"loanPurpose"`

	CurrentSalary  Amount `json:"currentSalary" validate:"required"`
	PreviousSalary Amount `json:"previousSalary"`
	EmploymentType string `json:"employmentType" validate:"required,oneof=permanent contract probation"`
	Experience     *int   `json:"experience" validate:"required,gte=0"`

	ExistingEmis   Amount `json:"existingEmis"`
	CreditCardDebt Amount `json:"creditCardDebt"`

	OwnsHouse           string `json:"ownsHouse" validate:"required,oneof=yes no family"`
	RentAmount          Amount `json:"rentAmount"`
	GroceryExpense      Amount `json:"groceryExpense" validate:"required"`
	MallVisits          int    `json:"mallVisits" validate:"gte=0"`
	MallSpending        Amount `json:"mallSpending"`
	EntertainmentBudget Amount `json:"entertainmentBudget"`
	InvestmentHabit     string `json:"investmentHabit" validate:"required,oneof=aggressive moderate conservative minimal none"`
	MonthlySavings      Amount `json:"monthlySavings"`

	DesiredAmount Amount `json:"desiredAmount" validate:"required"`
}

// ApplicantProfile is the validated input to the underwriting engine.
type ApplicantProfile struct {
	CurrentSalary  decimal.Decimal `json:"currentSalary"`
	PreviousSalary decimal.Decimal `json:"previousSalary"`
	EmploymentType EmploymentType  `json:"employmentType"`
	Experience     int             `json:"experience"`

	ExistingEmis   decimal.Decimal `json:"existingEmis"`
	CreditCardDebt decimal.Decimal `json:"creditCardDebt"`

	OwnsHouse           HousingStatus   `json:"ownsHouse"`
	RentAmount          decimal.Decimal `json:"rentAmount"`
	GroceryExpense      decimal.Decimal `json:"groceryExpense"`
	MallVisits          int             `json:"mallVisits"`
	MallSpending        decimal.Decimal `json:"mallSpending"`
	EntertainmentBudget decimal.Decimal `json:"entertainmentBudget"`
	InvestmentHabit     InvestmentHabit `json:"investmentHabit"`
	MonthlySavings      decimal.Decimal `json:"monthlySavings"`

	DesiredAmount decimal.Decimal `json:"desiredAmount"`
}
