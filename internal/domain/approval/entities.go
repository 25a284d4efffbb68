package approval

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrNotFound = errors.New("approval not found")

type Action string

const (
	ActionApprove  Action = "approve"
	ActionSendBack Action = "send_back"
)

// Approval is the audit row written for every approve/send-back
// decision on an application.
type Approval struct {
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	// Public identifier (32-char lowercase hex)
	ApprovalID string `gorm:"column:approval_id;type:char(32);not null;uniqueIndex:ux_approvals_approval_id_active"`
	// FK to loans.id (numeric)
	LoanID       uint64         `gorm:"column:loan_id;not null;index"`
	Action       Action         `gorm:"column:action;size:12;not null"`
	Reason       string         `gorm:"column:reason;type:text"`
	DecidedBy    string         `gorm:"column:decided_by;size:32;not null"`
	DecisionDate time.Time      `gorm:"column:decision_date;type:date;not null"`
	CreatedAt    time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time      `gorm:"column:updated_at;autoUpdateTime"`
	DeletedAt    gorm.DeletedAt `gorm:"column:deleted_at;index"`
	DeletedBy    *string        `gorm:"column:deleted_by;type:char(32)"`
}

func (Approval) TableName() string { return "approvals" }
