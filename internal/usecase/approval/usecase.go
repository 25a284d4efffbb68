package approval

import (
	"context"
	"errors"
	"log"
	"time"

	domainApproval "microfin-backoffice/internal/domain/approval"
	domainLoan "microfin-backoffice/internal/domain/loan"
	"microfin-backoffice/internal/domain/uow"
	"microfin-backoffice/pkg/id"

	"gorm.io/gorm"
)

type Usecase struct {
	uow uow.UnitOfWork
}

func NewUsecase(tx uow.UnitOfWork) *Usecase { return &Usecase{uow: tx} }

type DecideInput struct {
	LoanID    string
	Action    domainApproval.Action
	Reason    string
	DecidedBy string // staff_id of the approver
}

type DecisionDTO struct {
	ApprovalID string    `json:"approval_id"`
	LoanID     string    `json:"loan_id"`
	Action     string    `json:"action"`
	State      string    `json:"state"`
	DecidedAt  time.Time `json:"decided_at"`
}

var ErrUnknownAction = errors.New("unknown approval action")

// Decide applies an approve or send-back decision to a pending
// application: row lock, state guard, audit row, state update, all in
// one transaction.
func (u *Usecase) Decide(ctx context.Context, in DecideInput) (*DecisionDTO, error) {
	var next domainLoan.State
	switch in.Action {
	case domainApproval.ActionApprove:
		next = domainLoan.StateApproved
	case domainApproval.ActionSendBack:
		next = domainLoan.StateSentBack
	default:
		return nil, ErrUnknownAction
	}

	var dto *DecisionDTO
	err := u.uow.WithinLoanTx(ctx, in.LoanID, func(r uow.Repos, l *domainLoan.Loan) error {
		// only pending applications can be decided
		if l.State != domainLoan.StatePendingApproval {
			if l.State == domainLoan.StateApproved {
				return domainLoan.ErrAlreadyDecided
			}
			return domainLoan.ErrInvalidTransition
		}

		if _, err := r.Approvals.GetApprovalByLoanID(ctx, l.ID); err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				log.Printf("approval lookup for loan %s: %v", in.LoanID, err)
				return err
			}
		} else if in.Action == domainApproval.ActionApprove {
			return domainLoan.ErrAlreadyDecided
		}

		now := time.Now().UTC()
		a := &domainApproval.Approval{
			ApprovalID:   id.NewID32(),
			LoanID:       l.ID, // numeric FK
			Action:       in.Action,
			Reason:       in.Reason,
			DecidedBy:    in.DecidedBy,
			DecisionDate: now,
		}
		if err := r.Approvals.Create(ctx, a); err != nil {
			return err
		}

		l.State = next
		l.StateUpdatedAt = now
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}

		dto = &DecisionDTO{
			ApprovalID: a.ApprovalID,
			LoanID:     l.LoanID, // public id
			Action:     string(in.Action),
			State:      string(l.State),
			DecidedAt:  now,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}
