package mysql

import (
	"context"

	repaymentDomain "microfin-backoffice/internal/domain/repayment"

	"gorm.io/gorm"
)

type RepaymentRepository struct{ db *gorm.DB }

func NewRepaymentRepository(db *gorm.DB) *RepaymentRepository { return &RepaymentRepository{db: db} }

func (r *RepaymentRepository) Create(ctx context.Context, rp *repaymentDomain.Repayment) error {
	return r.db.WithContext(ctx).Create(rp).Error
}

func (r *RepaymentRepository) TotalByLoanID(ctx context.Context, loanID uint64) (float64, error) {
	var total float64
	err := r.db.WithContext(ctx).
		Model(&repaymentDomain.Repayment{}).
		Where("loan_id = ?", loanID).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	return total, err
}

func (r *RepaymentRepository) ListByLoanID(ctx context.Context, loanID uint64) ([]repaymentDomain.Repayment, error) {
	var out []repaymentDomain.Repayment
	err := r.db.WithContext(ctx).
		Where("loan_id = ?", loanID).
		Order("received_at ASC, id ASC").
		Find(&out).Error
	return out, err
}
