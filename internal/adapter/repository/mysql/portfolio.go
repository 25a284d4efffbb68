package mysql

import (
	"context"
	"errors"

	"microfin-backoffice/internal/domain/portfolio"

	"gorm.io/gorm"
)

type PortfolioRepository struct{ db *gorm.DB }

func NewPortfolioRepository(db *gorm.DB) *PortfolioRepository { return &PortfolioRepository{db: db} }

func (r *PortfolioRepository) ListCenters(ctx context.Context) ([]portfolio.Center, error) {
	var out []portfolio.Center
	err := r.db.WithContext(ctx).
		Where("status = ?", "active").
		Order("center_name ASC").
		Find(&out).Error
	return out, err
}

func (r *PortfolioRepository) GetCenter(ctx context.Context, id uint64) (*portfolio.Center, error) {
	var out portfolio.Center
	res := r.db.WithContext(ctx).First(&out, id)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, portfolio.ErrCenterNotFound
	}
	return &out, res.Error
}

func (r *PortfolioRepository) ListGroupsByCenter(ctx context.Context, centerID uint64) ([]portfolio.Group, error) {
	var out []portfolio.Group
	err := r.db.WithContext(ctx).
		Where("center_id = ?", centerID).
		Order("group_name ASC").
		Find(&out).Error
	return out, err
}

func (r *PortfolioRepository) GetGroup(ctx context.Context, id uint64) (*portfolio.Group, error) {
	var out portfolio.Group
	res := r.db.WithContext(ctx).First(&out, id)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, portfolio.ErrGroupNotFound
	}
	return &out, res.Error
}

// ListCustomersByGroup keeps a stable order; the guarantor assignment
// depends on it.
func (r *PortfolioRepository) ListCustomersByGroup(ctx context.Context, groupID uint64) ([]portfolio.Customer, error) {
	var out []portfolio.Customer
	err := r.db.WithContext(ctx).
		Where("grp_id = ?", groupID).
		Order("id ASC").
		Find(&out).Error
	return out, err
}

func (r *PortfolioRepository) FindCustomersByCode(ctx context.Context, code string) ([]portfolio.Customer, error) {
	var out []portfolio.Customer
	err := r.db.WithContext(ctx).
		Where("customer_code = ?", code).
		Find(&out).Error
	return out, err
}

func (r *PortfolioRepository) GetCustomer(ctx context.Context, id uint64) (*portfolio.CustomerDetail, error) {
	var cust portfolio.Customer
	res := r.db.WithContext(ctx).First(&cust, id)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, portfolio.ErrCustomerNotFound
	}
	if res.Error != nil {
		return nil, res.Error
	}

	var loans []portfolio.LoanSummary
	err := r.db.WithContext(ctx).
		Table("loans").
		Select("state AS status, product_id").
		Where("customer_id = ? AND deleted_at IS NULL", id).
		Scan(&loans).Error
	if err != nil {
		return nil, err
	}
	return &portfolio.CustomerDetail{Customer: cust, Loans: loans}, nil
}

func (r *PortfolioRepository) CreateCustomer(ctx context.Context, c *portfolio.Customer) error {
	return r.db.WithContext(ctx).Create(c).Error
}
