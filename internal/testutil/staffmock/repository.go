package staffmock

import (
	"context"

	domain "microfin-backoffice/internal/domain/staff"
)

// Repo is a function-backed mock that satisfies staff.Repository.
type Repo struct {
	ListWitnessCandidatesFn func(ctx context.Context, excludeStaffID string) ([]domain.Staff, error)
	GetByStaffIDFn          func(ctx context.Context, staffID string) (*domain.Staff, error)
}

func (m *Repo) ListWitnessCandidates(ctx context.Context, excludeStaffID string) ([]domain.Staff, error) {
	if m.ListWitnessCandidatesFn != nil {
		return m.ListWitnessCandidatesFn(ctx, excludeStaffID)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByStaffID(ctx context.Context, staffID string) (*domain.Staff, error) {
	if m.GetByStaffIDFn != nil {
		return m.GetByStaffIDFn(ctx, staffID)
	}
	return nil, context.Canceled
}
