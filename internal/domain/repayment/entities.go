package repayment

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrNotFound = errors.New("repayment not found")

// Repayment is a collection receipt against an active loan.
type Repayment struct {
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	// Public identifier (32-char lowercase hex)
	ReceiptID string `gorm:"column:receipt_id;type:char(32);not null;uniqueIndex:ux_repayments_receipt_id_active"`
	// FK to loans.id (numeric)
	LoanID      uint64         `gorm:"column:loan_id;not null;index"`
	Amount      float64        `gorm:"column:amount;type:decimal(18,2);not null"`
	CollectedBy string         `gorm:"column:collected_by;size:32;not null"`
	ReceivedAt  time.Time      `gorm:"column:received_at;not null"`
	CreatedAt   time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time      `gorm:"column:updated_at;autoUpdateTime"`
	DeletedAt   gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (Repayment) TableName() string { return "repayments" }
