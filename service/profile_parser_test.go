package service

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loan-underwriter/apperrors"
	"loan-underwriter/domain"
)

func intPtr(v int) *int {
	return &v
}

func validInput() domain.ProfileInput {
	return domain.ProfileInput{
		FullName:        "Asha Rao",
		LoanPurpose:     "home renovation",
		CurrentSalary:   "80000",
		PreviousSalary:  "70000",
		EmploymentType:  "permanent",
		Experience:      intPtr(6),
		ExistingEmis:    "5000",
		OwnsHouse:       "yes",
		GroceryExpense:  "8000",
		InvestmentHabit: "moderate",
		MonthlySavings:  "15000",
		DesiredAmount:   "200000",
	}
}

func TestParseProfile_Valid(t *testing.T) {
	p, err := ParseProfile(validInput())
	require.NoError(t, err)

	assert.True(t, p.CurrentSalary.Equal(dec(80000)))
	assert.True(t, p.PreviousSalary.Equal(dec(70000)))
	assert.Equal(t, domain.EmploymentPermanent, p.EmploymentType)
	assert.Equal(t, 6, p.Experience)
	assert.Equal(t, domain.HousingOwned, p.OwnsHouse)
	assert.Equal(t, domain.InvestmentModerate, p.InvestmentHabit)
	assert.True(t, p.DesiredAmount.Equal(dec(200000)))
}

func TestParseProfile_OptionalFieldsDefaultToZero(t *testing.T) {
	in := validInput()
	in.PreviousSalary = ""
	in.ExistingEmis = ""
	in.MonthlySavings = "  "

	p, err := ParseProfile(in)
	require.NoError(t, err)

	assert.True(t, p.PreviousSalary.IsZero())
	assert.True(t, p.ExistingEmis.IsZero())
	assert.True(t, p.CreditCardDebt.IsZero())
	assert.True(t, p.RentAmount.IsZero())
	assert.True(t, p.MallSpending.IsZero())
	assert.True(t, p.EntertainmentBudget.IsZero())
	assert.True(t, p.MonthlySavings.IsZero())
	assert.Equal(t, 0, p.MallVisits)
}

func TestParseProfile_FromJSON(t *testing.T) {
	body := `{
		"currentSalary": 80000,
		"previousSalary": "70000.50",
		"employmentType": "contract",
		"experience": 0,
		"creditCardDebt": null,
		"ownsHouse": "family",
		"groceryExpense": "6000",
		"mallVisits": 3,
		"mallSpending": 1200.75,
		"investmentHabit": "none",
		"desiredAmount": "150000"
	}`
	var in domain.ProfileInput
	require.NoError(t, json.Unmarshal([]byte(body), &in))

	p, err := ParseProfile(in)
	require.NoError(t, err)

	assert.Equal(t, "70000.5", p.PreviousSalary.String())
	assert.Equal(t, "1200.75", p.MallSpending.String())
	assert.True(t, p.CreditCardDebt.IsZero())
	assert.Equal(t, 0, p.Experience)
	assert.Equal(t, 3, p.MallVisits)
}

func TestParseProfile_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(in *domain.ProfileInput)
		details string
	}{
		{"missing salary", func(in *domain.ProfileInput) { in.CurrentSalary = "" }, "currentSalary is required"},
		{"zero salary", func(in *domain.ProfileInput) { in.CurrentSalary = "0" }, "currentSalary must be greater than zero"},
		{"salary not a number", func(in *domain.ProfileInput) { in.CurrentSalary = "lots" }, "currentSalary is not a number"},
		{"rent not a number", func(in *domain.ProfileInput) { in.RentAmount = "12k" }, "rentAmount is not a number"},
		{"negative grocery", func(in *domain.ProfileInput) { in.GroceryExpense = "-10" }, "groceryExpense must not be negative"},
		{"missing desired amount", func(in *domain.ProfileInput) { in.DesiredAmount = "" }, "desiredAmount is required"},
		{"missing experience", func(in *domain.ProfileInput) { in.Experience = nil }, "experience is required"},
		{"negative experience", func(in *domain.ProfileInput) { in.Experience = intPtr(-2) }, "experience failed gte=0"},
		{"negative mall visits", func(in *domain.ProfileInput) { in.MallVisits = -1 }, "mallVisits failed gte=0"},
		{"unknown employment", func(in *domain.ProfileInput) { in.EmploymentType = "freelance" }, "employmentType must be one of"},
		{"unknown housing", func(in *domain.ProfileInput) { in.OwnsHouse = "rented" }, "ownsHouse must be one of"},
		{"unknown investment", func(in *domain.ProfileInput) { in.InvestmentHabit = "crypto" }, "investmentHabit must be one of"},
		{"salary beyond float range", func(in *domain.ProfileInput) { in.CurrentSalary = "1e400" }, "currentSalary must not exceed"},
		{"mall spending beyond float range", func(in *domain.ProfileInput) { in.MallSpending = "1e400" }, "mallSpending must not exceed"},
		{"sub-cent salary", func(in *domain.ProfileInput) { in.CurrentSalary = "0.001" }, "currentSalary must be at least 0.01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			tt.modify(&in)

			_, err := ParseProfile(in)

			require.Error(t, err)
			assert.ErrorIs(t, err, apperrors.ErrInvalidProfile)
			assert.Contains(t, apperrors.From(err).Details, tt.details)
		})
	}
}
