package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "pending"
	ApplicationApproved ApplicationStatus = "approved"
	ApplicationRejected ApplicationStatus = "rejected"
)

// LoanApplication is one submission by a user.
type LoanApplication struct {
	ID          string            `json:"id"`
	UserID      string            `json:"userId"`
	FullName    string            `json:"fullName,omitempty"`
	LoanPurpose string            `json:"loanPurpose,omitempty"`
	Profile     ApplicantProfile  `json:"profile"`
	Status      ApplicationStatus `json:"status"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`
}

// AssessmentRecord is an Assessment stored against its application.
type AssessmentRecord struct {
	ID            string     `json:"id"`
	ApplicationID string     `json:"applicationId"`
	Assessment    Assessment `json:"assessment"`
	AssessedAt    time.Time  `json:"assessedAt"`
}

type LoanStatus string

const (
	LoanActive    LoanStatus = "active"
	LoanClosed    LoanStatus = "closed"
	LoanDefaulted LoanStatus = "defaulted"
)

// ActiveLoan is created for every approved application.
type ActiveLoan struct {
	ID                string          `json:"id"`
	UserID            string          `json:"userId"`
	ApplicationID     string          `json:"applicationId"`
	AssessmentID      string          `json:"assessmentId"`
	LoanNumber        string          `json:"loanNumber"`
	PrincipalAmount   decimal.Decimal `json:"principalAmount"`
	OutstandingAmount decimal.Decimal `json:"outstandingAmount"`
	InterestRate      decimal.Decimal `json:"interestRate"`
	Tenure            int             `json:"tenure"`
	MonthlyEMI        decimal.Decimal `json:"monthlyEmi"`
	NextDueDate       time.Time       `json:"nextDueDate"`
	Status            LoanStatus      `json:"status"`
	DisbursedAt       time.Time       `json:"disbursedAt"`
}

// ScheduleEntry is one period of an amortization schedule.
type ScheduleEntry struct {
	Period           int             `json:"period"`
	DueDate          time.Time       `json:"dueDate"`
	Principal        decimal.Decimal `json:"principal"`
	Interest         decimal.Decimal `json:"interest"`
	Total            decimal.Decimal `json:"total"`
	RemainingBalance decimal.Decimal `json:"remainingBalance"`
}

// Submission is what the intake endpoint returns.
type Submission struct {
	Application LoanApplication  `json:"application"`
	Assessment  AssessmentRecord `json:"assessment"`
	Loan        *ActiveLoan      `json:"loan,omitempty"`
}

// ApplicationDetail is an application together with its assessment, if any.
type ApplicationDetail struct {
	Application LoanApplication   `json:"application"`
	Assessment  *AssessmentRecord `json:"assessment,omitempty"`
}

type DashboardStats struct {
	ActiveLoansCount int             `json:"activeLoansCount"`
	TotalOutstanding decimal.Decimal `json:"totalOutstanding"`
	NextEMIAmount    decimal.Decimal `json:"nextEmiAmount"`
	NextDueDate      *time.Time      `json:"nextDueDate"`
}
