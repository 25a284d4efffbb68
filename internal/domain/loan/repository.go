package loan

import "context"

// ListFilter narrows the loan book; zero values mean "no filter".
type ListFilter struct {
	Search  string // matches loan_id or customer NIC/name via join
	State   State
	Page    int
	PerPage int
}

type Repository interface {
	Create(ctx context.Context, l *Loan) error
	Save(ctx context.Context, l *Loan) error
	GetByLoanID(ctx context.Context, loanID string) (*Loan, error)
	GetByLoanIDForUpdate(ctx context.Context, loanID string) (*Loan, error)
	// GetPendingByCustomerID finds a not-yet-decided application; a
	// customer may hold at most one at a time.
	GetPendingByCustomerID(ctx context.Context, customerID uint64) (*Loan, error)
	List(ctx context.Context, f ListFilter) ([]Loan, int64, error)
	Stats(ctx context.Context) (*Stats, error)
}
