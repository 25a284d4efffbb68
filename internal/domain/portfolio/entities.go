package portfolio

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrCenterNotFound   = errors.New("center not found")
	ErrGroupNotFound    = errors.New("group not found")
	ErrCustomerNotFound = errors.New("customer not found")
)

// Center is the top of the joint-liability hierarchy: a center holds
// groups, a group holds customers.
type Center struct {
	ID        uint64         `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name      string         `gorm:"column:center_name;size:120;not null" json:"center_name"`
	BranchID  uint64         `gorm:"column:branch_id;index" json:"branch_id"`
	StaffID   string         `gorm:"column:staff_id;size:32;index" json:"staff_id"`
	Status    string         `gorm:"column:status;size:20;default:'active'" json:"status"`
	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index" json:"-"`
}

func (Center) TableName() string { return "centers" }

type Group struct {
	ID        uint64         `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name      string         `gorm:"column:group_name;size:120;not null" json:"group_name"`
	CenterID  uint64         `gorm:"column:center_id;not null;index" json:"center_id"`
	Status    string         `gorm:"column:status;size:20;default:'active'" json:"status"`
	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index" json:"-"`
}

func (Group) TableName() string { return "groups" }

// Customer's CustomerCode is the NIC; lookups by NIC run against it.
type Customer struct {
	ID           uint64         `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	FullName     string         `gorm:"column:full_name;size:160;not null" json:"full_name"`
	CustomerCode string         `gorm:"column:customer_code;size:12;uniqueIndex:ux_customers_code_active" json:"customer_code"`
	Gender       string         `gorm:"column:gender;size:10" json:"gender"`
	DateOfBirth  time.Time      `gorm:"column:date_of_birth;type:date" json:"date_of_birth"`
	MobileNo1    string         `gorm:"column:mobile_no_1;size:10" json:"mobile_no_1"`
	MobileNo2    string         `gorm:"column:mobile_no_2;size:10" json:"mobile_no_2"`
	AddressLine1 string         `gorm:"column:address_line_1;size:200" json:"address_line_1"`
	City         string         `gorm:"column:city;size:80" json:"city"`
	CenterID     uint64         `gorm:"column:center_id;not null;index" json:"center_id"`
	GroupID      uint64         `gorm:"column:grp_id;not null;index" json:"grp_id"`
	Status       string         `gorm:"column:status;size:40;default:'Active'" json:"status"`
	CreatedAt    time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"column:deleted_at;index" json:"-"`
}

func (Customer) TableName() string { return "customers" }

// LoanSummary is the coarse per-loan projection carried on a customer's
// extended record: enough to tell which products are still running.
type LoanSummary struct {
	Status    string `json:"status"`
	ProductID uint64 `json:"product_id"`
}

// CustomerDetail is the extended record fetched once a customer is
// chosen for a draft.
type CustomerDetail struct {
	Customer
	Loans []LoanSummary `json:"loans"`
}
