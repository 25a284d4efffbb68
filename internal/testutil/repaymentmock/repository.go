package repaymentmock

import (
	"context"

	domain "microfin-backoffice/internal/domain/repayment"
)

// Repo is a function-backed mock that satisfies repayment.Repository.
// Wire only the methods a test needs; the rest return context.Canceled.
type Repo struct {
	CreateFn        func(ctx context.Context, r *domain.Repayment) error
	TotalByLoanIDFn func(ctx context.Context, loanID uint64) (float64, error)
	ListByLoanIDFn  func(ctx context.Context, loanID uint64) ([]domain.Repayment, error)
}

func (m *Repo) Create(ctx context.Context, r *domain.Repayment) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, r)
	}
	return nil
}

func (m *Repo) TotalByLoanID(ctx context.Context, loanID uint64) (float64, error) {
	if m.TotalByLoanIDFn != nil {
		return m.TotalByLoanIDFn(ctx, loanID)
	}
	return 0, context.Canceled
}

func (m *Repo) ListByLoanID(ctx context.Context, loanID uint64) ([]domain.Repayment, error) {
	if m.ListByLoanIDFn != nil {
		return m.ListByLoanIDFn(ctx, loanID)
	}
	return nil, context.Canceled
}
