package approval

import "context"

type Repository interface {
	Create(ctx context.Context, a *Approval) error
	// GetApprovalByLoanID finds an existing "approve" decision for the
	// numeric loan PK; used as a double-decision guard inside the tx.
	GetApprovalByLoanID(ctx context.Context, loanID uint64) (*Approval, error)
	ListByLoanID(ctx context.Context, loanID uint64) ([]Approval, error)
}
