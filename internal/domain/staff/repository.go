package staff

import "context"

type Repository interface {
	// ListWitnessCandidates returns active staff excluding the acting
	// user; a witness cannot attest their own application.
	ListWitnessCandidates(ctx context.Context, excludeStaffID string) ([]Staff, error)
	GetByStaffID(ctx context.Context, staffID string) (*Staff, error)
}
