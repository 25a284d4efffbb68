package collections

import (
	"context"
	"errors"
	"time"

	domainLoan "microfin-backoffice/internal/domain/loan"
	domainRepayment "microfin-backoffice/internal/domain/repayment"
	"microfin-backoffice/internal/domain/uow"
	"microfin-backoffice/pkg/id"
)

type Usecase struct {
	uow uow.UnitOfWork
}

func NewUsecase(tx uow.UnitOfWork) *Usecase { return &Usecase{uow: tx} }

var ErrInvalidAmount = errors.New("repayment amount must be positive")

type LoanStateDTO struct {
	LoanID      string    `json:"loan_id"`
	State       string    `json:"state"`
	TotalRepaid float64   `json:"total_repaid"`
	Outstanding float64   `json:"outstanding"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type ReceiptDTO struct {
	ReceiptID   string    `json:"receipt_id"`
	LoanID      string    `json:"loan_id"`
	Amount      float64   `json:"amount"`
	State       string    `json:"state"`
	TotalRepaid float64   `json:"total_repaid"`
	Outstanding float64   `json:"outstanding"`
	ReceivedAt  time.Time `json:"received_at"`
}

// payable is the approved principal plus flat interest over the term.
func payable(l *domainLoan.Loan) float64 {
	return l.ApprovedAmount * (1 + l.InterestRate/100)
}

// Disburse puts an approved loan onto the books. Only approved loans
// can be disbursed; everything else is an invalid transition.
func (u *Usecase) Disburse(ctx context.Context, loanID, actor string) (*LoanStateDTO, error) {
	var dto *LoanStateDTO
	err := u.uow.WithinLoanTx(ctx, loanID, func(r uow.Repos, l *domainLoan.Loan) error {
		if l.State != domainLoan.StateApproved {
			return domainLoan.ErrInvalidTransition
		}
		now := time.Now().UTC()
		l.State = domainLoan.StateActive
		l.StateUpdatedAt = now
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}
		dto = &LoanStateDTO{
			LoanID:      l.LoanID,
			State:       string(l.State),
			Outstanding: payable(l),
			UpdatedAt:   now,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

type RepaymentInput struct {
	LoanID      string
	Amount      float64
	CollectedBy string // staff_id of the collector
}

// RecordRepayment writes a receipt against an active loan and, once
// the collected total covers the payable amount, settles the loan.
func (u *Usecase) RecordRepayment(ctx context.Context, in RepaymentInput) (*ReceiptDTO, error) {
	if in.Amount <= 0 {
		return nil, ErrInvalidAmount
	}

	var dto *ReceiptDTO
	err := u.uow.WithinLoanTx(ctx, in.LoanID, func(r uow.Repos, l *domainLoan.Loan) error {
		if l.State != domainLoan.StateActive {
			return domainLoan.ErrInvalidTransition
		}
		now := time.Now().UTC()
		rp := &domainRepayment.Repayment{
			ReceiptID:   id.NewID32(),
			LoanID:      l.ID, // numeric FK
			Amount:      in.Amount,
			CollectedBy: in.CollectedBy,
			ReceivedAt:  now,
		}
		if err := r.Repayments.Create(ctx, rp); err != nil {
			return err
		}

		total, err := r.Repayments.TotalByLoanID(ctx, l.ID)
		if err != nil {
			return err
		}
		due := payable(l)
		if total >= due {
			l.State = domainLoan.StateCompleted
			l.StateUpdatedAt = now
			if err := r.Loans.Save(ctx, l); err != nil {
				return err
			}
		}

		outstanding := due - total
		if outstanding < 0 {
			outstanding = 0
		}
		dto = &ReceiptDTO{
			ReceiptID:   rp.ReceiptID,
			LoanID:      l.LoanID, // public id
			Amount:      in.Amount,
			State:       string(l.State),
			TotalRepaid: total,
			Outstanding: outstanding,
			ReceivedAt:  now,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// WriteOff closes an active loan as unrecoverable.
func (u *Usecase) WriteOff(ctx context.Context, loanID, actor string) (*LoanStateDTO, error) {
	var dto *LoanStateDTO
	err := u.uow.WithinLoanTx(ctx, loanID, func(r uow.Repos, l *domainLoan.Loan) error {
		if l.State != domainLoan.StateActive {
			return domainLoan.ErrInvalidTransition
		}
		now := time.Now().UTC()
		l.State = domainLoan.StateWrittenOff
		l.StateUpdatedAt = now
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}
		total, err := r.Repayments.TotalByLoanID(ctx, l.ID)
		if err != nil {
			return err
		}
		outstanding := payable(l) - total
		if outstanding < 0 {
			outstanding = 0
		}
		dto = &LoanStateDTO{
			LoanID:      l.LoanID,
			State:       string(l.State),
			TotalRepaid: total,
			Outstanding: outstanding,
			UpdatedAt:   now,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// Receipts returns the collection history for a loan, oldest first.
func (u *Usecase) Receipts(ctx context.Context, loanID string) ([]domainRepayment.Repayment, error) {
	var out []domainRepayment.Repayment
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		l, err := r.Loans.GetByLoanID(ctx, loanID)
		if err != nil {
			return err
		}
		out, err = r.Repayments.ListByLoanID(ctx, l.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
