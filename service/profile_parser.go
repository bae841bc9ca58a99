package service

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"loan-underwriter/apperrors"
	"loan-underwriter/domain"
)

var profileValidator = newProfileValidator()

func newProfileValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ParseProfile validates a submitted form and converts it into an
// ApplicantProfile. Optional money fields left blank are zero.
func ParseProfile(input domain.ProfileInput) (domain.ApplicantProfile, error) {
	if err := profileValidator.Struct(input); err != nil {
		return domain.ApplicantProfile{}, apperrors.NewInvalidProfileError(describeValidation(err))
	}

	p := amountParser{}
	profile := domain.ApplicantProfile{
		CurrentSalary:       p.parse("currentSalary", input.CurrentSalary),
		PreviousSalary:      p.parse("previousSalary", input.PreviousSalary),
		EmploymentType:      domain.EmploymentType(input.EmploymentType),
		Experience:          *input.Experience,
		ExistingEmis:        p.parse("existingEmis", input.ExistingEmis),
		CreditCardDebt:      p.parse("creditCardDebt", input.CreditCardDebt),
		OwnsHouse:           domain.HousingStatus(input.OwnsHouse),
		RentAmount:          p.parse("rentAmount", input.RentAmount),
		GroceryExpense:      p.parse("groceryExpense", input.GroceryExpense),
		MallVisits:          input.MallVisits,
		MallSpending:        p.parse("mallSpending", input.MallSpending),
		EntertainmentBudget: p.parse("entertainmentBudget", input.EntertainmentBudget),
		InvestmentHabit:     domain.InvestmentHabit(input.InvestmentHabit),
		MonthlySavings:      p.parse("monthlySavings", input.MonthlySavings),
		DesiredAmount:       p.parse("desiredAmount", input.DesiredAmount),
	}
	if p.err != nil {
		return domain.ApplicantProfile{}, p.err
	}

	if err := ValidateProfile(profile); err != nil {
		return domain.ApplicantProfile{}, err
	}
	return profile, nil
}

// amountParser keeps the first parse failure so a whole form can be read in
// one expression.
type amountParser struct {
	err error
}

func (p *amountParser) parse(field string, raw domain.Amount) decimal.Decimal {
	s := strings.TrimSpace(string(raw))
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		if p.err == nil {
			p.err = apperrors.NewInvalidProfileError(fmt.Sprintf("%s is not a number: %q", field, s))
		}
		return decimal.Zero
	}
	return d
}

func describeValidation(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s is required", fe.Field()))
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("%s must be one of [%s]", fe.Field(), fe.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s failed %s=%s", fe.Field(), fe.Tag(), fe.Param()))
		}
	}
	return strings.Join(msgs, "; ")
}
