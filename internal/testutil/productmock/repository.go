package productmock

import (
	"context"

	domain "microfin-backoffice/internal/domain/product"
)

// Repo is a function-backed mock that satisfies product.Repository.
type Repo struct {
	ListFn func(ctx context.Context) ([]domain.LoanProduct, error)
	GetFn  func(ctx context.Context, id uint64) (*domain.LoanProduct, error)
}

func (m *Repo) List(ctx context.Context) ([]domain.LoanProduct, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}
	return nil, context.Canceled
}

func (m *Repo) Get(ctx context.Context, id uint64) (*domain.LoanProduct, error) {
	if m.GetFn != nil {
		return m.GetFn(ctx, id)
	}
	return nil, context.Canceled
}
