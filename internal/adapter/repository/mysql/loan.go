package mysql

import (
	"context"

	loanDomain "microfin-backoffice/internal/domain/loan"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type LoanRepository struct{ db *gorm.DB }

func NewLoanRepository(db *gorm.DB) *LoanRepository { return &LoanRepository{db: db} }

func (r *LoanRepository) Create(ctx context.Context, l *loanDomain.Loan) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *LoanRepository) Save(ctx context.Context, l *loanDomain.Loan) error {
	return r.db.WithContext(ctx).Save(l).Error
}

func (r *LoanRepository) GetByLoanID(ctx context.Context, loanID string) (*loanDomain.Loan, error) {
	var out loanDomain.Loan
	res := r.db.WithContext(ctx).Where("loan_id = ?", loanID).First(&out)
	return &out, res.Error
}

// GetByLoanIDForUpdate takes a row lock where the dialect supports it;
// sqlite serializes writers anyway.
func (r *LoanRepository) GetByLoanIDForUpdate(ctx context.Context, loanID string) (*loanDomain.Loan, error) {
	q := r.db.WithContext(ctx)
	if r.db.Dialector.Name() == "mysql" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var out loanDomain.Loan
	res := q.Where("loan_id = ?", loanID).First(&out)
	return &out, res.Error
}

func (r *LoanRepository) GetPendingByCustomerID(ctx context.Context, customerID uint64) (*loanDomain.Loan, error) {
	var out loanDomain.Loan
	res := r.db.WithContext(ctx).
		Where("customer_id = ? AND state = ?", customerID, loanDomain.StatePendingApproval).
		Order("state_updated_at DESC, id DESC").
		First(&out)
	return &out, res.Error
}

func (r *LoanRepository) List(ctx context.Context, f loanDomain.ListFilter) ([]loanDomain.Loan, int64, error) {
	q := r.db.WithContext(ctx).Model(&loanDomain.Loan{})
	if f.State != "" {
		q = q.Where("state = ?", f.State)
	}
	if f.Search != "" {
		like := "%" + f.Search + "%"
		q = q.Where(
			"loan_id LIKE ? OR customer_id IN (?)",
			like,
			r.db.Table("customers").Select("id").
				Where("full_name LIKE ? OR customer_code LIKE ?", like, like),
		)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	q = q.Order("created_at DESC, id DESC")
	if f.PerPage > 0 {
		page := f.Page
		if page < 1 {
			page = 1
		}
		q = q.Limit(f.PerPage).Offset((page - 1) * f.PerPage)
	}

	var out []loanDomain.Loan
	if err := q.Find(&out).Error; err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *LoanRepository) Stats(ctx context.Context) (*loanDomain.Stats, error) {
	var s loanDomain.Stats
	db := r.db.WithContext(ctx).Model(&loanDomain.Loan{})

	if err := db.Session(&gorm.Session{}).Count(&s.TotalCount).Error; err != nil {
		return nil, err
	}
	if err := db.Session(&gorm.Session{}).
		Where("state = ?", loanDomain.StateActive).
		Count(&s.ActiveCount).Error; err != nil {
		return nil, err
	}

	type sums struct {
		Disbursed   float64
		Outstanding float64
	}
	var t sums
	err := db.Session(&gorm.Session{}).
		Select(
			"COALESCE(SUM(CASE WHEN state IN (?) THEN approved_amount ELSE 0 END), 0) AS disbursed, "+
				"COALESCE(SUM(CASE WHEN state = ? THEN approved_amount ELSE 0 END), 0) AS outstanding",
			[]loanDomain.State{loanDomain.StateActive, loanDomain.StateCompleted, loanDomain.StateWrittenOff},
			loanDomain.StateActive,
		).
		Scan(&t).Error
	if err != nil {
		return nil, err
	}
	s.TotalDisbursed = t.Disbursed
	s.TotalOutstanding = t.Outstanding
	return &s, nil
}
