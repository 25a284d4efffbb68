package mysql

import (
	"context"
	"errors"

	"microfin-backoffice/internal/domain/product"

	"gorm.io/gorm"
)

type ProductRepository struct{ db *gorm.DB }

func NewProductRepository(db *gorm.DB) *ProductRepository { return &ProductRepository{db: db} }

func (r *ProductRepository) List(ctx context.Context) ([]product.LoanProduct, error) {
	var out []product.LoanProduct
	err := r.db.WithContext(ctx).
		Where("status = ?", "active").
		Order("product_name ASC").
		Find(&out).Error
	return out, err
}

func (r *ProductRepository) Get(ctx context.Context, id uint64) (*product.LoanProduct, error) {
	var out product.LoanProduct
	res := r.db.WithContext(ctx).First(&out, id)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, product.ErrNotFound
	}
	return &out, res.Error
}
