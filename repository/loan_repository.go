package repository

import (
	"context"

	"loan-underwriter/domain"
)

// LoanRepository persists applications, their assessments and the loans
// created from approved applications.
type LoanRepository interface {
	// SaveApplication inserts or replaces an application by id.
	SaveApplication(ctx context.Context, app domain.LoanApplication) error
	GetApplication(ctx context.Context, id string) (domain.LoanApplication, error)
	// ListApplications returns the user's applications, newest first.
	ListApplications(ctx context.Context, userID string) ([]domain.LoanApplication, error)

	// SaveAssessment stores the assessment of an application. A second
	// assessment for the same application fails with ErrAssessmentExists.
	SaveAssessment(ctx context.Context, rec domain.AssessmentRecord) error
	GetAssessment(ctx context.Context, applicationID string) (domain.AssessmentRecord, bool, error)

	SaveLoan(ctx context.Context, loan domain.ActiveLoan) error
	GetLoan(ctx context.Context, id string) (domain.ActiveLoan, error)
	// ListActiveLoans returns the user's active loans, newest first.
	ListActiveLoans(ctx context.Context, userID string) ([]domain.ActiveLoan, error)
}
