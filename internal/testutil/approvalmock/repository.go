package approvalmock

import (
	"context"

	domain "microfin-backoffice/internal/domain/approval"
)

// Repo is a function-backed mock that satisfies approval.Repository.
type Repo struct {
	CreateFn               func(ctx context.Context, a *domain.Approval) error
	GetApprovalByLoanIDFn  func(ctx context.Context, loanID uint64) (*domain.Approval, error)
	ListByLoanIDFn         func(ctx context.Context, loanID uint64) ([]domain.Approval, error)
}

func (m *Repo) Create(ctx context.Context, a *domain.Approval) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, a)
	}
	return nil
}

func (m *Repo) GetApprovalByLoanID(ctx context.Context, loanID uint64) (*domain.Approval, error) {
	if m.GetApprovalByLoanIDFn != nil {
		return m.GetApprovalByLoanIDFn(ctx, loanID)
	}
	return nil, context.Canceled
}

func (m *Repo) ListByLoanID(ctx context.Context, loanID uint64) ([]domain.Approval, error) {
	if m.ListByLoanIDFn != nil {
		return m.ListByLoanIDFn(ctx, loanID)
	}
	return nil, context.Canceled
}
