package repository

import (
	"context"
	"sort"
	"sync"

	"loan-underwriter/apperrors"
	"loan-underwriter/domain"
)

// LoanRepositoryMemory is an in-memory implementation of LoanRepository.
type LoanRepositoryMemory struct {
	mu sync.RWMutex

	applications map[string]domain.LoanApplication
	appOrder     map[string]int
	assessments  map[string]domain.AssessmentRecord
	loans        map[string]domain.ActiveLoan
	loanOrder    map[string]int
	seq          int
}

// NewLoanRepositoryMemory creates a new in-memory loan repository.
func NewLoanRepositoryMemory() *LoanRepositoryMemory {
	return &LoanRepositoryMemory{
		applications: make(map[string]domain.LoanApplication),
		appOrder:     make(map[string]int),
		assessments:  make(map[string]domain.AssessmentRecord),
		loans:        make(map[string]domain.ActiveLoan),
		loanOrder:    make(map[string]int),
	}
}

func (r *LoanRepositoryMemory) SaveApplication(_ context.Context, app domain.LoanApplication) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.appOrder[app.ID]; !ok {
		r.seq++
		r.appOrder[app.ID] = r.seq
	}
	r.applications[app.ID] = app
	return nil
}

func (r *LoanRepositoryMemory) GetApplication(_ context.Context, id string) (domain.LoanApplication, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	app, ok := r.applications[id]
	if !ok {
		return domain.LoanApplication{}, apperrors.NewApplicationNotFoundError(id)
	}
	return app, nil
}

func (r *LoanRepositoryMemory) ListApplications(_ context.Context, userID string) ([]domain.LoanApplication, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []domain.LoanApplication{}
	for _, app := range r.applications {
		if app.UserID == userID {
			out = append(out, app)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return r.appOrder[out[i].ID] > r.appOrder[out[j].ID]
	})
	return out, nil
}

func (r *LoanRepositoryMemory) SaveAssessment(_ context.Context, rec domain.AssessmentRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.applications[rec.ApplicationID]; !ok {
		return apperrors.NewApplicationNotFoundError(rec.ApplicationID)
	}
	if _, ok := r.assessments[rec.ApplicationID]; ok {
		return apperrors.NewAssessmentExistsError(rec.ApplicationID)
	}
	r.assessments[rec.ApplicationID] = rec
	return nil
}

func (r *LoanRepositoryMemory) GetAssessment(_ context.Context, applicationID string) (domain.AssessmentRecord, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.assessments[applicationID]
	return rec, ok, nil
}

func (r *LoanRepositoryMemory) SaveLoan(_ context.Context, loan domain.ActiveLoan) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.loanOrder[loan.ID]; !ok {
		r.seq++
		r.loanOrder[loan.ID] = r.seq
	}
	r.loans[loan.ID] = loan
	return nil
}

func (r *LoanRepositoryMemory) GetLoan(_ context.Context, id string) (domain.ActiveLoan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	loan, ok := r.loans[id]
	if !ok {
		return domain.ActiveLoan{}, apperrors.NewLoanNotFoundError(id)
	}
	return loan, nil
}

func (r *LoanRepositoryMemory) ListActiveLoans(_ context.Context, userID string) ([]domain.ActiveLoan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []domain.ActiveLoan{}
	for _, loan := range r.loans {
		if loan.UserID == userID && loan.Status == domain.LoanActive {
			out = append(out, loan)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].DisbursedAt.Equal(out[j].DisbursedAt) {
			return out[i].DisbursedAt.After(out[j].DisbursedAt)
		}
		return r.loanOrder[out[i].ID] > r.loanOrder[out[j].ID]
	})
	return out, nil
}
