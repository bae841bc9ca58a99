package domain

import "github.com/shopspring/decimal"

// EMIInput is a standalone calculator request.
type EMIInput struct {
	Principal    decimal.Decimal
	AnnualRate   decimal.Decimal // percent, e.g. 12 for 12%
	TenureMonths int
}

// EMIResult is the calculator response; all amounts are rounded to whole units.
type EMIResult struct {
	EMI           int64 `json:"emi"`
	TotalAmount   int64 `json:"totalAmount"`
	TotalInterest int64 `json:"totalInterest"`
	Principal     int64 `json:"principal"`
}
