package product

import "context"

type Repository interface {
	List(ctx context.Context) ([]LoanProduct, error)
	Get(ctx context.Context, id uint64) (*LoanProduct, error)
}
