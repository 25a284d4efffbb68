package draft

import (
	"testing"

	domain "microfin-backoffice/internal/domain/draft"
)

// completeDraft returns a draft that passes the gate untouched;
// individual tests break one field at a time.
func completeDraft() *domain.Draft {
	return &domain.Draft{
		ID:              "d1",
		ActorStaffID:    "STF001",
		CenterID:        1,
		GroupID:         10,
		CustomerID:      101,
		NIC:             "198512345V",
		ProductID:       7,
		RequestedAmount: "50000",
		ApprovedAmount:  "50000",
		InterestRate:    "24",
		Tenure:          "52",
		RentalType:      "Weekly",
		Guarantor1Name:  "Customer X",
		Guarantor1NIC:   "199034567890",
		Guarantor2Name:  "Customer Z",
		Guarantor2NIC:   "927001234V",
		Witness1ID:      "STF002",
		Witness2ID:      "STF003",
		Errors:          domain.FieldErrors{},
		Warnings:        domain.FieldErrors{},
	}
}

func TestGate_CompleteDraftPasses(t *testing.T) {
	errs, warns := gate(completeDraft())
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if len(warns) != 0 {
		t.Fatalf("unexpected warnings: %v", warns)
	}
}

func TestGate_RequiredSelections(t *testing.T) {
	d := completeDraft()
	d.CenterID, d.GroupID, d.CustomerID, d.ProductID = 0, 0, 0, 0
	errs, _ := gate(d)
	for _, f := range []string{"center", "group", "customer", "product"} {
		if !errs.Has(f) {
			t.Fatalf("missing error for %s: %v", f, errs)
		}
	}
}

func TestGate_AmountRules(t *testing.T) {
	cases := []struct {
		name  string
		set   func(*domain.Draft)
		field string
	}{
		{"blank approved", func(d *domain.Draft) { d.ApprovedAmount = "" }, "approved_amount"},
		{"zero approved", func(d *domain.Draft) { d.ApprovedAmount = "0" }, "approved_amount"},
		{"negative approved", func(d *domain.Draft) { d.ApprovedAmount = "-10" }, "approved_amount"},
		{"over ceiling", func(d *domain.Draft) { d.ApprovedAmount = "500001" }, "approved_amount"},
		{"garbage requested", func(d *domain.Draft) { d.RequestedAmount = "abc" }, "requested_amount"},
		{"zero rate", func(d *domain.Draft) { d.InterestRate = "0" }, "interest_rate"},
		{"zero tenure", func(d *domain.Draft) { d.Tenure = "0" }, "tenure"},
		{"word tenure", func(d *domain.Draft) { d.Tenure = "a year" }, "tenure"},
		{"bad rental type", func(d *domain.Draft) { d.RentalType = "Daily" }, "rental_type"},
	}
	for _, tc := range cases {
		d := completeDraft()
		tc.set(d)
		errs, _ := gate(d)
		if !errs.Has(tc.field) {
			t.Fatalf("%s: expected error on %s, got %v", tc.name, tc.field, errs)
		}
	}
}

func TestGate_ApprovedAtCeilingPasses(t *testing.T) {
	d := completeDraft()
	d.ApprovedAmount = "500000"
	errs, _ := gate(d)
	if errs.Has("approved_amount") {
		t.Fatalf("ceiling itself must be allowed: %v", errs)
	}
}

func TestGate_BadNIC(t *testing.T) {
	d := completeDraft()
	d.NIC = "12345"
	errs, _ := gate(d)
	if !errs.Has("nic") {
		t.Fatalf("expected nic error: %v", errs)
	}
}

func TestGate_GuardianBlockSkippedWhenEmpty(t *testing.T) {
	d := completeDraft()
	errs, _ := gate(d)
	if errs.Has("guardian_name") || errs.Has("guardian_nic") || errs.Has("guardian_phone") {
		t.Fatalf("empty guardian block must not be validated: %v", errs)
	}
}

func TestGate_GuardianMustBeMale(t *testing.T) {
	d := completeDraft()
	d.GuardianName = "Guardian"
	d.GuardianNIC = "198512345V" // decodes Female
	d.GuardianPhone = "0712345678"
	errs, _ := gate(d)
	if errs["guardian_nic"] != "guardian must be male" {
		t.Fatalf("guardian_nic=%q", errs["guardian_nic"])
	}
}

func TestGate_GuardianPartialBlock(t *testing.T) {
	d := completeDraft()
	d.GuardianName = "Guardian"
	errs, _ := gate(d)
	if !errs.Has("guardian_nic") {
		t.Fatalf("partial guardian block must demand the NIC: %v", errs)
	}
	if !errs.Has("guardian_phone") {
		t.Fatalf("partial guardian block must demand the phone: %v", errs)
	}
}

func TestGate_GuardianPhoneShape(t *testing.T) {
	d := completeDraft()
	d.GuardianName = "Guardian"
	d.GuardianNIC = "199034567890"
	d.GuardianPhone = "07123"
	errs, _ := gate(d)
	if !errs.Has("guardian_phone") {
		t.Fatalf("expected phone error: %v", errs)
	}
}

func TestGate_WitnessRules(t *testing.T) {
	d := completeDraft()
	d.Witness2ID = d.Witness1ID
	errs, _ := gate(d)
	if !errs.Has("witness2_id") {
		t.Fatalf("duplicate witnesses must fail: %v", errs)
	}

	d = completeDraft()
	d.Witness1ID = d.ActorStaffID
	errs, _ = gate(d)
	if !errs.Has("witness1_id") {
		t.Fatalf("actor as witness must fail: %v", errs)
	}

	d = completeDraft()
	d.Witness1ID, d.Witness2ID = "", ""
	errs, _ = gate(d)
	if !errs.Has("witness1_id") || !errs.Has("witness2_id") {
		t.Fatalf("missing witnesses must fail: %v", errs)
	}
}

func TestGate_DuplicateGuarantors(t *testing.T) {
	d := completeDraft()
	d.Guarantor2NIC = d.Guarantor1NIC
	errs, _ := gate(d)
	if !errs.Has("guarantor2_nic") {
		t.Fatalf("duplicate guarantors must fail: %v", errs)
	}
}

func TestValidate_StoresResultOnDraft(t *testing.T) {
	c := newTestController(fixtureRepo())
	d := c.Create("STF001")
	fe, err := c.Validate(d.ID)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if len(fe) == 0 {
		t.Fatalf("an empty draft cannot pass the gate")
	}
	got, _ := c.Get(d.ID)
	if !got.Errors.Has("center") {
		t.Fatalf("errors not stored on the draft: %v", got.Errors)
	}
}

func TestApply_ClearsTouchedFieldError(t *testing.T) {
	c := newTestController(fixtureRepo())
	d := c.Create("STF001")
	if _, err := c.Validate(d.ID); err != nil {
		t.Fatalf("validate: %v", err)
	}
	if err := c.Apply(d.ID, FieldPatch{ApprovedAmount: strPtr("25000")}); err != nil {
		t.Fatalf("apply: %v", err)
	}
	got, _ := c.Get(d.ID)
	if got.Errors.Has("approved_amount") {
		t.Fatalf("editing the field must clear its error")
	}
	if !got.Errors.Has("tenure") {
		t.Fatalf("untouched errors must stay: %v", got.Errors)
	}
}
