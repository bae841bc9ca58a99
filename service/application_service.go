package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"loan-underwriter/apperrors"
	"loan-underwriter/domain"
	"loan-underwriter/logger"
	"loan-underwriter/metrics"
	"loan-underwriter/repository"
)

// Assessor scores a parsed profile. UnderwritingEngine is the production
// implementation.
type Assessor interface {
	Assess(profile domain.ApplicantProfile) (domain.Assessment, error)
}

// ApplicationService takes applications through intake, underwriting and
// loan creation.
type ApplicationService struct {
	repo   repository.LoanRepository
	engine Assessor
	log    logger.Logger

	now   func() time.Time
	newID func() string
}

func NewApplicationService(repo repository.LoanRepository, engine Assessor, log logger.Logger) *ApplicationService {
	return &ApplicationService{
		repo:   repo,
		engine: engine,
		log:    log,
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

// Submit assesses an application, records it with its assessment and, when
// the applicant is eligible, opens the loan.
func (s *ApplicationService) Submit(ctx context.Context, userID string, input domain.ProfileInput) (domain.Submission, error) {
	if userID == "" {
		return domain.Submission{}, apperrors.NewAccessDeniedError()
	}

	profile, err := ParseProfile(input)
	if err != nil {
		metrics.AssessmentFailures.WithLabelValues(string(apperrors.From(err).Code)).Inc()
		return domain.Submission{}, err
	}

	// Nothing is stored for a profile the engine refuses.
	assessment, err := s.engine.Assess(profile)
	if err != nil {
		metrics.AssessmentFailures.WithLabelValues(string(apperrors.From(err).Code)).Inc()
		return domain.Submission{}, err
	}

	now := s.now().UTC()
	app := domain.LoanApplication{
		ID:          s.newID(),
		UserID:      userID,
		FullName:    input.FullName,
		LoanPurpose: input.LoanPurpose,
		Profile:     profile,
		Status:      domain.ApplicationPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.SaveApplication(ctx, app); err != nil {
		return domain.Submission{}, apperrors.NewInternalError(err)
	}

	record := domain.AssessmentRecord{
		ID:            s.newID(),
		ApplicationID: app.ID,
		Assessment:    assessment,
		AssessedAt:    now,
	}
	if err := s.repo.SaveAssessment(ctx, record); err != nil {
		return domain.Submission{}, err
	}

	app.Status = domain.ApplicationRejected
	if assessment.IsEligible() {
		app.Status = domain.ApplicationApproved
	}
	app.UpdatedAt = now
	if err := s.repo.SaveApplication(ctx, app); err != nil {
		return domain.Submission{}, apperrors.NewInternalError(err)
	}

	metrics.AssessmentsTotal.WithLabelValues(string(app.Status)).Inc()
	metrics.OverallRiskScore.Observe(float64(assessment.OverallRiskScore()))

	submission := domain.Submission{Application: app, Assessment: record}

	if terms, ok := assessment.Terms(); ok && terms.ApprovedAmount.IsPositive() {
		loan := s.openLoan(app, record, terms, now)
		if err := s.repo.SaveLoan(ctx, loan); err != nil {
			return domain.Submission{}, apperrors.NewInternalError(err)
		}
		submission.Loan = &loan
	}

	s.log.Info("application assessed", map[string]interface{}{
		"applicationId": app.ID,
		"userId":        userID,
		"eligible":      assessment.IsEligible(),
		"overallScore":  assessment.OverallRiskScore(),
		"status":        app.Status,
	})

	return submission, nil
}

func (s *ApplicationService) openLoan(app domain.LoanApplication, record domain.AssessmentRecord, terms domain.LoanTerms, now time.Time) domain.ActiveLoan {
	return domain.ActiveLoan{
		ID:                s.newID(),
		UserID:            app.UserID,
		ApplicationID:     app.ID,
		AssessmentID:      record.ID,
		LoanNumber:        loanNumber(now),
		PrincipalAmount:   terms.ApprovedAmount,
		OutstandingAmount: terms.ApprovedAmount,
		InterestRate:      terms.InterestRate,
		Tenure:            terms.Tenure,
		MonthlyEMI:        terms.MonthlyEMI,
		NextDueDate:       now.AddDate(0, 1, 0),
		Status:            domain.LoanActive,
		DisbursedAt:       now,
	}
}

// loanNumber is QL, the year, then the last six digits of the epoch millis.
func loanNumber(t time.Time) string {
	return fmt.Sprintf("QL%d%06d", t.Year(), t.UnixMilli()%1_000_000)
}

// Get returns one of the user's applications with its assessment.
func (s *ApplicationService) Get(ctx context.Context, userID, id string) (domain.ApplicationDetail, error) {
	app, err := s.repo.GetApplication(ctx, id)
	if err != nil {
		return domain.ApplicationDetail{}, err
	}
	if app.UserID != userID {
		return domain.ApplicationDetail{}, apperrors.NewAccessDeniedError()
	}

	detail := domain.ApplicationDetail{Application: app}
	record, ok, err := s.repo.GetAssessment(ctx, id)
	if err != nil {
		return domain.ApplicationDetail{}, apperrors.NewInternalError(err)
	}
	if ok {
		detail.Assessment = &record
	}
	return detail, nil
}

func (s *ApplicationService) List(ctx context.Context, userID string) ([]domain.LoanApplication, error) {
	return s.repo.ListApplications(ctx, userID)
}

func (s *ApplicationService) ActiveLoans(ctx context.Context, userID string) ([]domain.ActiveLoan, error) {
	return s.repo.ListActiveLoans(ctx, userID)
}

// Schedule returns the repayment schedule of one of the user's loans.
func (s *ApplicationService) Schedule(ctx context.Context, userID, loanID string) ([]domain.ScheduleEntry, error) {
	loan, err := s.repo.GetLoan(ctx, loanID)
	if err != nil {
		return nil, err
	}
	if loan.UserID != userID {
		return nil, apperrors.NewAccessDeniedError()
	}
	return amortizationSchedule(loan.OutstandingAmount, loan.InterestRate, loan.Tenure, loan.MonthlyEMI, loan.DisbursedAt), nil
}

// DashboardStats summarizes the user's active loans. The next EMI is the one
// of the loan due soonest.
func (s *ApplicationService) DashboardStats(ctx context.Context, userID string) (domain.DashboardStats, error) {
	loans, err := s.repo.ListActiveLoans(ctx, userID)
	if err != nil {
		return domain.DashboardStats{}, err
	}

	stats := domain.DashboardStats{
		ActiveLoansCount: len(loans),
		TotalOutstanding: decimal.Zero,
		NextEMIAmount:    decimal.Zero,
	}
	var next *domain.ActiveLoan
	for i := range loans {
		stats.TotalOutstanding = stats.TotalOutstanding.Add(loans[i].OutstandingAmount)
		if next == nil || loans[i].NextDueDate.Before(next.NextDueDate) {
			next = &loans[i]
		}
	}
	if next != nil {
		due := next.NextDueDate
		stats.NextEMIAmount = next.MonthlyEMI
		stats.NextDueDate = &due
	}
	return stats, nil
}

// amortizationSchedule splits each fixed payment into interest on the
// remaining balance and principal. The last period settles the balance.
func amortizationSchedule(principal, annualRate decimal.Decimal, tenure int, payment decimal.Decimal, start time.Time) []domain.ScheduleEntry {
	if tenure <= 0 || !principal.IsPositive() {
		return []domain.ScheduleEntry{}
	}

	monthlyRate := annualRate.Div(decimal.NewFromInt(1200))
	schedule := make([]domain.ScheduleEntry, 0, tenure)
	remaining := principal

	for period := 1; period <= tenure; period++ {
		interest := remaining.Mul(monthlyRate).Round(2)
		principalPart := payment.Sub(interest)
		if period == tenure || principalPart.GreaterThan(remaining) {
			principalPart = remaining
		}

		remaining = remaining.Sub(principalPart)
		schedule = append(schedule, domain.ScheduleEntry{
			Period:           period,
			DueDate:          start.AddDate(0, period, 0),
			Principal:        principalPart,
			Interest:         interest,
			Total:            principalPart.Add(interest),
			RemainingBalance: remaining,
		})
		if !remaining.IsPositive() {
			break
		}
	}
	return schedule
}
