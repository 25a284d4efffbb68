package draft

// FieldPatch carries user edits to the scalar draft fields. Nil means
// "leave alone"; guarantor fields are deliberately absent because they
// are derived, not entered.
type FieldPatch struct {
	RequestedAmount  *string `json:"requested_amount"`
	ApprovedAmount   *string `json:"approved_amount"`
	InterestRate     *string `json:"interest_rate"`
	Tenure           *string `json:"tenure"`
	RentalType       *string `json:"rental_type"`
	ProcessingFee    *string `json:"processing_fee"`
	DocumentationFee *string `json:"documentation_fee"`
	InsuranceFee     *string `json:"insurance_fee"`
	Remarks          *string `json:"remarks"`
	GuardianName     *string `json:"guardian_name"`
	GuardianNIC      *string `json:"guardian_nic"`
	GuardianAddress  *string `json:"guardian_address"`
	GuardianPhone    *string `json:"guardian_phone"`
	Witness1ID       *string `json:"witness1_id"`
	Witness2ID       *string `json:"witness2_id"`
}

// Apply sets the patched fields and clears each touched field's stored
// error; errors reappear only on the next submit attempt.
func (c *Controller) Apply(draftID string, p FieldPatch) error {
	e, err := c.entry(draftID)
	if err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	d := e.d

	set := func(dst *string, src *string, field string) {
		if src != nil {
			*dst = *src
			clearField(d, field)
		}
	}
	set(&d.RequestedAmount, p.RequestedAmount, "requested_amount")
	set(&d.ApprovedAmount, p.ApprovedAmount, "approved_amount")
	set(&d.InterestRate, p.InterestRate, "interest_rate")
	set(&d.Tenure, p.Tenure, "tenure")
	set(&d.RentalType, p.RentalType, "rental_type")
	set(&d.ProcessingFee, p.ProcessingFee, "processing_fee")
	set(&d.DocumentationFee, p.DocumentationFee, "documentation_fee")
	set(&d.InsuranceFee, p.InsuranceFee, "insurance_fee")
	set(&d.Remarks, p.Remarks, "remarks")
	set(&d.GuardianName, p.GuardianName, "guardian_name")
	set(&d.GuardianNIC, p.GuardianNIC, "guardian_nic")
	set(&d.GuardianAddress, p.GuardianAddress, "guardian_address")
	set(&d.GuardianPhone, p.GuardianPhone, "guardian_phone")
	set(&d.Witness1ID, p.Witness1ID, "witness1_id")
	set(&d.Witness2ID, p.Witness2ID, "witness2_id")
	touch(d)
	return nil
}
