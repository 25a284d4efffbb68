package loan

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrNotFound          = errors.New("loan not found")
	ErrAlreadyDecided    = errors.New("loan already decided")
	ErrInvalidTransition = errors.New("invalid loan state transition")
)

type State string

const (
	StatePendingApproval State = "pending_approval"
	StateApproved        State = "approved"
	StateSentBack        State = "sent_back"
	StateActive          State = "active"
	StateCompleted       State = "completed"
	StateWrittenOff      State = "written_off"
)

// Closed reports whether the loan no longer counts against the
// customer's running products.
func (s State) Closed() bool {
	switch s {
	case StateSentBack, StateCompleted, StateWrittenOff:
		return true
	}
	return false
}

type RentalType string

const (
	RentalWeekly   RentalType = "Weekly"
	RentalBiWeekly RentalType = "Bi-Weekly"
	RentalMonthly  RentalType = "Monthly"
)

func ValidRentalType(s string) bool {
	switch RentalType(s) {
	case RentalWeekly, RentalBiWeekly, RentalMonthly:
		return true
	}
	return false
}

// MaxApprovedAmount is the system ceiling for a single loan (LKR).
const MaxApprovedAmount = 500_000

type Loan struct {
	ID     uint64 `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	LoanID string `gorm:"column:loan_id;type:char(32);not null;uniqueIndex:ux_loans_loan_id_active" json:"loan_id"`

	CustomerID uint64 `gorm:"column:customer_id;not null;index:idx_loans_customer_active" json:"customer_id"`
	CenterID   uint64 `gorm:"column:center_id;not null;index" json:"center_id"`
	GroupID    uint64 `gorm:"column:grp_id;not null" json:"grp_id"`
	ProductID  uint64 `gorm:"column:product_id;not null" json:"product_id"`

	RequestedAmount float64 `gorm:"column:request_amount;type:decimal(18,2)" json:"request_amount"`
	ApprovedAmount  float64 `gorm:"column:approved_amount;type:decimal(18,2)" json:"approved_amount"`
	InterestRate    float64 `gorm:"column:interest_rate;type:decimal(6,2)" json:"interest_rate"`
	TermCount       int     `gorm:"column:terms" json:"terms"`
	RentalType      string  `gorm:"column:rental_type;size:12" json:"rental_type"`

	ProcessingFee    float64 `gorm:"column:service_charge;type:decimal(18,2)" json:"service_charge"`
	DocumentationFee float64 `gorm:"column:document_charge;type:decimal(18,2)" json:"document_charge"`
	InsuranceFee     float64 `gorm:"column:insurance_charge;type:decimal(18,2)" json:"insurance_charge"`
	Remarks          string  `gorm:"column:remarks;type:text" json:"remarks"`

	GuardianName    string `gorm:"column:guardian_name;size:160" json:"guardian_name"`
	GuardianNIC     string `gorm:"column:guardian_nic;size:12" json:"guardian_nic"`
	GuardianAddress string `gorm:"column:guardian_address;size:200" json:"guardian_address"`
	GuardianPhone   string `gorm:"column:guardian_phone;size:10" json:"guardian_phone"`

	Guarantor1Name string `gorm:"column:g1_name;size:160" json:"g1_name"`
	Guarantor1NIC  string `gorm:"column:g1_nic;size:12" json:"g1_nic"`
	Guarantor2Name string `gorm:"column:g2_name;size:160" json:"g2_name"`
	Guarantor2NIC  string `gorm:"column:g2_nic;size:12" json:"g2_nic"`

	Witness1ID string `gorm:"column:w1_staff_id;size:32;not null" json:"w1_staff_id"`
	Witness2ID string `gorm:"column:w2_staff_id;size:32;not null" json:"w2_staff_id"`

	CreatedBy string `gorm:"column:created_by;size:32" json:"created_by"`

	State          State          `gorm:"column:state;size:20;default:'pending_approval';index" json:"state"`
	StateUpdatedAt time.Time      `gorm:"column:state_updated_at;autoCreateTime" json:"state_updated_at"`
	CreatedAt      time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"column:deleted_at;index" json:"-"`
	DeletedBy      string         `gorm:"column:deleted_by;size:32" json:"-"`
}

func (Loan) TableName() string { return "loans" }

// Stats summarizes the loan book for the listing header.
type Stats struct {
	TotalCount       int64   `json:"total_count"`
	ActiveCount      int64   `json:"active_count"`
	TotalDisbursed   float64 `json:"total_disbursed"`
	TotalOutstanding float64 `json:"total_outstanding"`
}
