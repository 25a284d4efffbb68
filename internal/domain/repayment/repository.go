package repayment

import "context"

type Repository interface {
	Create(ctx context.Context, r *Repayment) error
	// TotalByLoanID sums every receipt for the numeric loan PK; used to
	// decide whether a repayment settles the loan.
	TotalByLoanID(ctx context.Context, loanID uint64) (float64, error)
	ListByLoanID(ctx context.Context, loanID uint64) ([]Repayment, error)
}
