package loanmock

import (
	"context"

	domain "microfin-backoffice/internal/domain/loan"
)

// Repo is a function-backed mock that satisfies loan.Repository.
// Wire only the methods a test needs; the rest return context.Canceled.
type Repo struct {
	CreateFn                 func(ctx context.Context, l *domain.Loan) error
	SaveFn                   func(ctx context.Context, l *domain.Loan) error
	GetByLoanIDFn            func(ctx context.Context, loanID string) (*domain.Loan, error)
	GetByLoanIDForUpdateFn   func(ctx context.Context, loanID string) (*domain.Loan, error)
	GetPendingByCustomerIDFn func(ctx context.Context, customerID uint64) (*domain.Loan, error)
	ListFn                   func(ctx context.Context, f domain.ListFilter) ([]domain.Loan, int64, error)
	StatsFn                  func(ctx context.Context) (*domain.Stats, error)
}

func (m *Repo) Create(ctx context.Context, l *domain.Loan) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, l)
	}
	return nil
}

func (m *Repo) Save(ctx context.Context, l *domain.Loan) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, l)
	}
	return nil
}

func (m *Repo) GetByLoanID(ctx context.Context, loanID string) (*domain.Loan, error) {
	if m.GetByLoanIDFn != nil {
		return m.GetByLoanIDFn(ctx, loanID)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByLoanIDForUpdate(ctx context.Context, loanID string) (*domain.Loan, error) {
	if m.GetByLoanIDForUpdateFn != nil {
		return m.GetByLoanIDForUpdateFn(ctx, loanID)
	}
	return nil, context.Canceled
}

func (m *Repo) GetPendingByCustomerID(ctx context.Context, customerID uint64) (*domain.Loan, error) {
	if m.GetPendingByCustomerIDFn != nil {
		return m.GetPendingByCustomerIDFn(ctx, customerID)
	}
	return nil, context.Canceled
}

func (m *Repo) List(ctx context.Context, f domain.ListFilter) ([]domain.Loan, int64, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, f)
	}
	return nil, 0, context.Canceled
}

func (m *Repo) Stats(ctx context.Context) (*domain.Stats, error) {
	if m.StatsFn != nil {
		return m.StatsFn(ctx)
	}
	return nil, context.Canceled
}
