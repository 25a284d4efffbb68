package mysql

import (
	"context"

	approvalDomain "microfin-backoffice/internal/domain/approval"

	"gorm.io/gorm"
)

type ApprovalRepository struct{ db *gorm.DB }

func NewApprovalRepository(db *gorm.DB) *ApprovalRepository { return &ApprovalRepository{db: db} }

func (r *ApprovalRepository) Create(ctx context.Context, a *approvalDomain.Approval) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *ApprovalRepository) GetApprovalByLoanID(ctx context.Context, loanID uint64) (*approvalDomain.Approval, error) {
	var out approvalDomain.Approval
	res := r.db.WithContext(ctx).
		Where("loan_id = ? AND action = ?", loanID, approvalDomain.ActionApprove).
		First(&out)
	return &out, res.Error
}

func (r *ApprovalRepository) ListByLoanID(ctx context.Context, loanID uint64) ([]approvalDomain.Approval, error) {
	var out []approvalDomain.Approval
	err := r.db.WithContext(ctx).
		Where("loan_id = ?", loanID).
		Order("created_at ASC, id ASC").
		Find(&out).Error
	return out, err
}
