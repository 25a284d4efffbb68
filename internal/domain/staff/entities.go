package staff

import (
	"time"

	"gorm.io/gorm"
)

type Staff struct {
	ID        uint64         `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	StaffID   string         `gorm:"column:staff_id;size:32;uniqueIndex:ux_staffs_staff_id_active" json:"staff_id"`
	FullName  string         `gorm:"column:full_name;size:160;not null" json:"full_name"`
	Email     string         `gorm:"column:email_id;size:160" json:"email_id"`
	Status    string         `gorm:"column:status;size:20;default:'active'" json:"status"`
	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index" json:"-"`
}

func (Staff) TableName() string { return "staffs" }
