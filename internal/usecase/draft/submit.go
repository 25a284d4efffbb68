package draft

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	domain "microfin-backoffice/internal/domain/draft"
	loanDomain "microfin-backoffice/internal/domain/loan"
	"microfin-backoffice/pkg/id"

	"gorm.io/gorm"
)

type SubmitResult struct {
	LoanID    string    `json:"loan_id"`
	State     string    `json:"state"`
	CreatedAt time.Time `json:"created_at"`
}

// Submit runs the gate and hands the normalized record to the loan
// store. On success the draft is discarded; on rejection the field
// messages are kept on the draft so the user can correct and resubmit.
func (c *Controller) Submit(ctx context.Context, draftID string) (*SubmitResult, error) {
	e, err := c.entry(draftID)
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	errs, warns := gate(e.d)
	e.d.Errors = errs
	e.d.Warnings.Merge(warns)
	d := snapshot(e.d)
	e.mu.Unlock()

	if len(errs) > 0 {
		return nil, &domain.SubmissionFailure{Fields: errs}
	}

	// both witnesses must resolve to active staff
	fe, err := c.verifyWitnesses(ctx, d)
	if err != nil {
		return nil, err
	}
	if len(fe) > 0 {
		c.storeErrors(e, fe)
		return nil, &domain.SubmissionFailure{Fields: fe}
	}

	// one pending application per customer
	pending, err := c.loans.GetPendingByCustomerID(ctx, d.CustomerID)
	switch {
	case err == nil:
		fe := domain.FieldErrors{"customer": "customer already has a pending application: " + pending.LoanID}
		c.storeErrors(e, fe)
		return nil, &domain.SubmissionFailure{Fields: fe}
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, err
	}

	l := buildLoan(d)
	if err := c.loans.Create(ctx, l); err != nil {
		var sf *domain.SubmissionFailure
		if errors.As(err, &sf) {
			c.storeErrors(e, sf.Fields)
			return nil, sf
		}
		return nil, err
	}

	// successful hand-off: the draft has served its purpose
	_ = c.Discard(draftID)

	return &SubmitResult{
		LoanID:    l.LoanID,
		State:     string(l.State),
		CreatedAt: l.CreatedAt,
	}, nil
}

func (c *Controller) verifyWitnesses(ctx context.Context, d *domain.Draft) (domain.FieldErrors, error) {
	fe := domain.FieldErrors{}
	for field, staffID := range map[string]string{
		"witness1_id": d.Witness1ID,
		"witness2_id": d.Witness2ID,
	} {
		s, err := c.staffs.GetByStaffID(ctx, staffID)
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			fe[field] = "witness is not a known staff member: " + staffID
		case err != nil:
			return nil, err
		case !strings.EqualFold(s.Status, "active"):
			fe[field] = "witness is not an active staff member: " + staffID
		}
	}
	return fe, nil
}

func (c *Controller) storeErrors(e *entry, fe domain.FieldErrors) {
	e.mu.Lock()
	e.d.Errors.Merge(fe)
	e.mu.Unlock()
}

// buildLoan converts the validated draft; the gate has already proven
// every numeric field parseable.
func buildLoan(d *domain.Draft) *loanDomain.Loan {
	tenure, _ := strconv.Atoi(strings.TrimSpace(d.Tenure))
	return &loanDomain.Loan{
		LoanID:           id.NewID32(),
		CustomerID:       d.CustomerID,
		CenterID:         d.CenterID,
		GroupID:          d.GroupID,
		ProductID:        d.ProductID,
		RequestedAmount:  domain.AmountOrZero(d.RequestedAmount),
		ApprovedAmount:   domain.AmountOrZero(d.ApprovedAmount),
		InterestRate:     domain.AmountOrZero(d.InterestRate),
		TermCount:        tenure,
		RentalType:       d.RentalType,
		ProcessingFee:    domain.AmountOrZero(d.ProcessingFee),
		DocumentationFee: domain.AmountOrZero(d.DocumentationFee),
		InsuranceFee:     domain.AmountOrZero(d.InsuranceFee),
		Remarks:          d.Remarks,
		GuardianName:     d.GuardianName,
		GuardianNIC:      d.GuardianNIC,
		GuardianAddress:  d.GuardianAddress,
		GuardianPhone:    d.GuardianPhone,
		Guarantor1Name:   d.Guarantor1Name,
		Guarantor1NIC:    d.Guarantor1NIC,
		Guarantor2Name:   d.Guarantor2Name,
		Guarantor2NIC:    d.Guarantor2NIC,
		Witness1ID:       d.Witness1ID,
		Witness2ID:       d.Witness2ID,
		CreatedBy:        d.ActorStaffID,
		State:            loanDomain.StatePendingApproval,
		StateUpdatedAt:   time.Now().UTC(),
	}
}
