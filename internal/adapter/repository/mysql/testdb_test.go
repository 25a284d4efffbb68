package mysql

import (
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// --- SQLite-friendly schemas only for tests (no ENUM / decimal types) ---

type loanSQLite struct {
	ID               uint64         `gorm:"primaryKey;column:id"`
	LoanID           string         `gorm:"size:32;column:loan_id"`
	CustomerID       uint64         `gorm:"column:customer_id"`
	CenterID         uint64         `gorm:"column:center_id"`
	GroupID          uint64         `gorm:"column:grp_id"`
	ProductID        uint64         `gorm:"column:product_id"`
	RequestedAmount  float64        `gorm:"column:request_amount"`
	ApprovedAmount   float64        `gorm:"column:approved_amount"`
	InterestRate     float64        `gorm:"column:interest_rate"`
	TermCount        int            `gorm:"column:terms"`
	RentalType       string         `gorm:"column:rental_type"`
	ProcessingFee    float64        `gorm:"column:service_charge"`
	DocumentationFee float64        `gorm:"column:document_charge"`
	InsuranceFee     float64        `gorm:"column:insurance_charge"`
	Remarks          string         `gorm:"column:remarks"`
	GuardianName     string         `gorm:"column:guardian_name"`
	GuardianNIC      string         `gorm:"column:guardian_nic"`
	GuardianAddress  string         `gorm:"column:guardian_address"`
	GuardianPhone    string         `gorm:"column:guardian_phone"`
	Guarantor1Name   string         `gorm:"column:g1_name"`
	Guarantor1NIC    string         `gorm:"column:g1_nic"`
	Guarantor2Name   string         `gorm:"column:g2_name"`
	Guarantor2NIC    string         `gorm:"column:g2_nic"`
	Witness1ID       string         `gorm:"column:w1_staff_id"`
	Witness2ID       string         `gorm:"column:w2_staff_id"`
	CreatedBy        string         `gorm:"column:created_by"`
	State            string         `gorm:"type:text;column:state"`
	StateUpdatedAt   time.Time      `gorm:"column:state_updated_at"`
	CreatedAt        time.Time      `gorm:"column:created_at"`
	UpdatedAt        time.Time      `gorm:"column:updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"column:deleted_at"`
	DeletedBy        string         `gorm:"column:deleted_by"`
}

func (loanSQLite) TableName() string { return "loans" }

type centerSQLite struct {
	ID        uint64         `gorm:"primaryKey;column:id"`
	Name      string         `gorm:"column:center_name"`
	BranchID  uint64         `gorm:"column:branch_id"`
	StaffID   string         `gorm:"column:staff_id"`
	Status    string         `gorm:"column:status"`
	CreatedAt time.Time      `gorm:"column:created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at"`
}

func (centerSQLite) TableName() string { return "centers" }

type groupSQLite struct {
	ID        uint64         `gorm:"primaryKey;column:id"`
	Name      string         `gorm:"column:group_name"`
	CenterID  uint64         `gorm:"column:center_id"`
	Status    string         `gorm:"column:status"`
	CreatedAt time.Time      `gorm:"column:created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at"`
}

func (groupSQLite) TableName() string { return "groups" }

type customerSQLite struct {
	ID           uint64         `gorm:"primaryKey;column:id"`
	FullName     string         `gorm:"column:full_name"`
	CustomerCode string         `gorm:"column:customer_code"`
	Gender       string         `gorm:"column:gender"`
	DateOfBirth  time.Time      `gorm:"column:date_of_birth"`
	MobileNo1    string         `gorm:"column:mobile_no_1"`
	MobileNo2    string         `gorm:"column:mobile_no_2"`
	AddressLine1 string         `gorm:"column:address_line_1"`
	City         string         `gorm:"column:city"`
	CenterID     uint64         `gorm:"column:center_id"`
	GroupID      uint64         `gorm:"column:grp_id"`
	Status       string         `gorm:"column:status"`
	CreatedAt    time.Time      `gorm:"column:created_at"`
	UpdatedAt    time.Time      `gorm:"column:updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"column:deleted_at"`
}

func (customerSQLite) TableName() string { return "customers" }

type productSQLite struct {
	ID           uint64         `gorm:"primaryKey;column:id"`
	Name         string         `gorm:"column:product_name"`
	InterestRate float64        `gorm:"column:interest_rate"`
	LoanAmount   float64        `gorm:"column:loan_amount"`
	LoanTerm     int            `gorm:"column:loan_term"`
	TermType     string         `gorm:"column:term_type"`
	Status       string         `gorm:"column:status"`
	CreatedAt    time.Time      `gorm:"column:created_at"`
	UpdatedAt    time.Time      `gorm:"column:updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"column:deleted_at"`
}

func (productSQLite) TableName() string { return "loan_products" }

type staffSQLite struct {
	ID        uint64         `gorm:"primaryKey;column:id"`
	StaffID   string         `gorm:"column:staff_id"`
	FullName  string         `gorm:"column:full_name"`
	Email     string         `gorm:"column:email_id"`
	Status    string         `gorm:"column:status"`
	CreatedAt time.Time      `gorm:"column:created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at"`
}

func (staffSQLite) TableName() string { return "staffs" }

type approvalSQLite struct {
	ID           uint64         `gorm:"primaryKey;column:id"`
	ApprovalID   string         `gorm:"size:32;column:approval_id"`
	LoanID       uint64         `gorm:"column:loan_id"`
	Action       string         `gorm:"column:action"`
	Reason       string         `gorm:"column:reason"`
	DecidedBy    string         `gorm:"column:decided_by"`
	DecisionDate time.Time      `gorm:"column:decision_date"`
	CreatedAt    time.Time      `gorm:"column:created_at"`
	UpdatedAt    time.Time      `gorm:"column:updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"column:deleted_at"`
	DeletedBy    *string        `gorm:"column:deleted_by"`
}

func (approvalSQLite) TableName() string { return "approvals" }

type repaymentSQLite struct {
	ID          uint64         `gorm:"primaryKey;column:id"`
	ReceiptID   string         `gorm:"size:32;column:receipt_id"`
	LoanID      uint64         `gorm:"column:loan_id"`
	Amount      float64        `gorm:"column:amount"`
	CollectedBy string         `gorm:"column:collected_by"`
	ReceivedAt  time.Time      `gorm:"column:received_at"`
	CreatedAt   time.Time      `gorm:"column:created_at"`
	UpdatedAt   time.Time      `gorm:"column:updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"column:deleted_at"`
}

func (repaymentSQLite) TableName() string { return "repayments" }

// openTestDB creates an in-memory sqlite DB and migrates ONLY the
// sqlite-safe schemas. The repositories then run against the same
// table names through the domain models.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&loanSQLite{}, &centerSQLite{}, &groupSQLite{}, &customerSQLite{},
		&productSQLite{}, &staffSQLite{}, &approvalSQLite{}, &repaymentSQLite{},
	); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	return db
}
