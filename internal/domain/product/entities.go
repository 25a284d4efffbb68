package product

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrNotFound = errors.New("loan product not found")

// LoanProduct is a read-only template: choosing one pre-populates a
// draft's rate, amounts and term.
type LoanProduct struct {
	ID           uint64         `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name         string         `gorm:"column:product_name;size:120;not null" json:"product_name"`
	InterestRate float64        `gorm:"column:interest_rate;type:decimal(6,2)" json:"interest_rate"`
	LoanAmount   float64        `gorm:"column:loan_amount;type:decimal(18,2)" json:"loan_amount"`
	LoanTerm     int            `gorm:"column:loan_term" json:"loan_term"`
	TermType     string         `gorm:"column:term_type;size:12" json:"term_type"`
	Status       string         `gorm:"column:status;size:20;default:'active'" json:"status"`
	CreatedAt    time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"column:deleted_at;index" json:"-"`
}

func (LoanProduct) TableName() string { return "loan_products" }
