package draft

import (
	"strconv"
	"strings"
	"time"
)

type Status string

const (
	StatusDraft     Status = "draft"
	StatusSubmitted Status = "submitted"
)

// FieldErrors maps a field name to a human-readable message; an empty
// map means the draft may be submitted.
type FieldErrors map[string]string

func (fe FieldErrors) Has(field string) bool { _, ok := fe[field]; return ok }

// Merge overlays other on top of fe, other winning on conflicts.
func (fe FieldErrors) Merge(other FieldErrors) {
	for k, v := range other {
		fe[k] = v
	}
}

// SubmissionFailure carries the per-field rejection mapping returned by
// the loan store; it mirrors the local validation shape so the two can
// be merged into the same draft state.
type SubmissionFailure struct {
	Fields FieldErrors
}

func (e *SubmissionFailure) Error() string { return "loan application rejected" }

// Draft is the in-progress loan application. Numeric inputs are kept
// verbatim as entered; they are parsed at validation and submission
// time so a half-typed value never corrupts the record.
type Draft struct {
	ID           string `json:"id"`
	ActorStaffID string `json:"actor_staff_id"`

	CenterID   uint64 `json:"center_id"`
	GroupID    uint64 `json:"group_id"`
	CustomerID uint64 `json:"customer_id"`
	NIC        string `json:"nic"`

	ProductID       uint64 `json:"product_id"`
	RequestedAmount string `json:"requested_amount"`
	ApprovedAmount  string `json:"approved_amount"`
	InterestRate    string `json:"interest_rate"`
	Tenure          string `json:"tenure"`
	RentalType      string `json:"rental_type"`

	ProcessingFee    string `json:"processing_fee"`
	DocumentationFee string `json:"documentation_fee"`
	InsuranceFee     string `json:"insurance_fee"`
	Remarks          string `json:"remarks"`

	GuardianName    string `json:"guardian_name"`
	GuardianNIC     string `json:"guardian_nic"`
	GuardianAddress string `json:"guardian_address"`
	GuardianPhone   string `json:"guardian_phone"`

	// Guarantors are assigned from the group roster, never entered.
	Guarantor1Name string `json:"guarantor1_name"`
	Guarantor1NIC  string `json:"guarantor1_nic"`
	Guarantor2Name string `json:"guarantor2_name"`
	Guarantor2NIC  string `json:"guarantor2_nic"`

	Witness1ID string `json:"witness1_id"`
	Witness2ID string `json:"witness2_id"`

	Status Status `json:"status"`
	Dirty  bool   `json:"dirty"`

	// Products the chosen customer still has running; selecting one of
	// these raises a warning on the product field.
	ActiveProductIDs []uint64 `json:"active_product_ids,omitempty"`

	Errors   FieldErrors `json:"errors,omitempty"`
	Warnings FieldErrors `json:"warnings,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AmountOrZero parses a user-entered amount, treating blank or
// unparseable input as zero.
func AmountOrZero(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return v
}

// TotalFees is the sum of the three fee inputs.
func (d *Draft) TotalFees() float64 {
	return AmountOrZero(d.ProcessingFee) + AmountOrZero(d.DocumentationFee) + AmountOrZero(d.InsuranceFee)
}

// NetDisbursement is approved amount minus total fees. A negative
// result is returned as-is so under-collateralized terms stay visible.
func (d *Draft) NetDisbursement() float64 {
	return AmountOrZero(d.ApprovedAmount) - d.TotalFees()
}

// GuardianPresent reports whether the guardian block is in use; its
// fields are validated only in that case.
func (d *Draft) GuardianPresent() bool {
	return d.GuardianName != "" || d.GuardianNIC != "" || d.GuardianAddress != "" || d.GuardianPhone != ""
}

func (d *Draft) ProductActive(productID uint64) bool {
	for _, id := range d.ActiveProductIDs {
		if id == productID {
			return true
		}
	}
	return false
}
