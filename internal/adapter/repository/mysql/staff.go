package mysql

import (
	"context"

	"microfin-backoffice/internal/domain/staff"

	"gorm.io/gorm"
)

type StaffRepository struct{ db *gorm.DB }

func NewStaffRepository(db *gorm.DB) *StaffRepository { return &StaffRepository{db: db} }

func (r *StaffRepository) ListWitnessCandidates(ctx context.Context, excludeStaffID string) ([]staff.Staff, error) {
	q := r.db.WithContext(ctx).
		Where("status = ?", "active").
		Order("full_name ASC")
	if excludeStaffID != "" {
		q = q.Where("staff_id <> ?", excludeStaffID)
	}
	var out []staff.Staff
	err := q.Find(&out).Error
	return out, err
}

func (r *StaffRepository) GetByStaffID(ctx context.Context, staffID string) (*staff.Staff, error) {
	var out staff.Staff
	res := r.db.WithContext(ctx).Where("staff_id = ?", staffID).First(&out)
	return &out, res.Error
}
