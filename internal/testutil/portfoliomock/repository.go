package portfoliomock

import (
	"context"

	domain "microfin-backoffice/internal/domain/portfolio"
)

// Repo is a function-backed mock that satisfies portfolio.Repository.
// Only wire the methods a test needs; the rest return context.Canceled.
type Repo struct {
	ListCentersFn          func(ctx context.Context) ([]domain.Center, error)
	GetCenterFn            func(ctx context.Context, id uint64) (*domain.Center, error)
	ListGroupsByCenterFn   func(ctx context.Context, centerID uint64) ([]domain.Group, error)
	GetGroupFn             func(ctx context.Context, id uint64) (*domain.Group, error)
	ListCustomersByGroupFn func(ctx context.Context, groupID uint64) ([]domain.Customer, error)
	FindCustomersByCodeFn  func(ctx context.Context, code string) ([]domain.Customer, error)
	GetCustomerFn          func(ctx context.Context, id uint64) (*domain.CustomerDetail, error)
	CreateCustomerFn       func(ctx context.Context, c *domain.Customer) error
}

func (m *Repo) ListCenters(ctx context.Context) ([]domain.Center, error) {
	if m.ListCentersFn != nil {
		return m.ListCentersFn(ctx)
	}
	return nil, context.Canceled
}

func (m *Repo) GetCenter(ctx context.Context, id uint64) (*domain.Center, error) {
	if m.GetCenterFn != nil {
		return m.GetCenterFn(ctx, id)
	}
	return nil, context.Canceled
}

func (m *Repo) ListGroupsByCenter(ctx context.Context, centerID uint64) ([]domain.Group, error) {
	if m.ListGroupsByCenterFn != nil {
		return m.ListGroupsByCenterFn(ctx, centerID)
	}
	return nil, context.Canceled
}

func (m *Repo) GetGroup(ctx context.Context, id uint64) (*domain.Group, error) {
	if m.GetGroupFn != nil {
		return m.GetGroupFn(ctx, id)
	}
	return nil, context.Canceled
}

func (m *Repo) ListCustomersByGroup(ctx context.Context, groupID uint64) ([]domain.Customer, error) {
	if m.ListCustomersByGroupFn != nil {
		return m.ListCustomersByGroupFn(ctx, groupID)
	}
	return nil, context.Canceled
}

func (m *Repo) FindCustomersByCode(ctx context.Context, code string) ([]domain.Customer, error) {
	if m.FindCustomersByCodeFn != nil {
		return m.FindCustomersByCodeFn(ctx, code)
	}
	return nil, context.Canceled
}

func (m *Repo) GetCustomer(ctx context.Context, id uint64) (*domain.CustomerDetail, error) {
	if m.GetCustomerFn != nil {
		return m.GetCustomerFn(ctx, id)
	}
	return nil, context.Canceled
}

func (m *Repo) CreateCustomer(ctx context.Context, c *domain.Customer) error {
	if m.CreateCustomerFn != nil {
		return m.CreateCustomerFn(ctx, c)
	}
	return nil
}
