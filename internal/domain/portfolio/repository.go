package portfolio

import "context"

type Repository interface {
	ListCenters(ctx context.Context) ([]Center, error)
	GetCenter(ctx context.Context, id uint64) (*Center, error)
	ListGroupsByCenter(ctx context.Context, centerID uint64) ([]Group, error)
	GetGroup(ctx context.Context, id uint64) (*Group, error)
	ListCustomersByGroup(ctx context.Context, groupID uint64) ([]Customer, error)
	// FindCustomersByCode matches on the exact normalized NIC.
	FindCustomersByCode(ctx context.Context, code string) ([]Customer, error)
	GetCustomer(ctx context.Context, id uint64) (*CustomerDetail, error)
	CreateCustomer(ctx context.Context, c *Customer) error
}
