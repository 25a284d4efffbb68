package draft

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	domain "microfin-backoffice/internal/domain/draft"
	loanDomain "microfin-backoffice/internal/domain/loan"
	"microfin-backoffice/pkg/nic"
)

var rePhone = regexp.MustCompile(`^\d{10}$`)

// Validate runs the submission gate and stores the result on the
// draft. It is invoked per submit attempt, not per keystroke.
func (c *Controller) Validate(draftID string) (domain.FieldErrors, error) {
	e, err := c.entry(draftID)
	if err != nil {
		return nil, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	errs, warns := gate(e.d)
	e.d.Errors = errs
	e.d.Warnings.Merge(warns)
	out := domain.FieldErrors{}
	out.Merge(errs)
	return out, nil
}

// gate evaluates the whole draft and returns field-to-message mappings:
// hard errors that block submission, and soft warnings that do not.
func gate(d *domain.Draft) (domain.FieldErrors, domain.FieldErrors) {
	errs := domain.FieldErrors{}
	warns := domain.FieldErrors{}

	if d.CenterID == 0 {
		errs["center"] = "center is required"
	}
	if d.GroupID == 0 {
		errs["group"] = "group is required"
	}
	if d.CustomerID == 0 {
		errs["customer"] = "customer is required"
	}
	if d.ProductID == 0 {
		errs["product"] = "loan product is required"
	}

	if d.NIC != "" && !nic.Valid(d.NIC) {
		errs["nic"] = "invalid NIC format"
	}

	checkPositiveAmount(errs, "requested_amount", d.RequestedAmount)
	if checkPositiveAmount(errs, "approved_amount", d.ApprovedAmount) {
		if domain.AmountOrZero(d.ApprovedAmount) > loanDomain.MaxApprovedAmount {
			errs["approved_amount"] = fmt.Sprintf("must not exceed %d", loanDomain.MaxApprovedAmount)
		}
	}
	checkPositiveAmount(errs, "interest_rate", d.InterestRate)

	if n, err := strconv.Atoi(strings.TrimSpace(d.Tenure)); err != nil || n < 1 {
		errs["tenure"] = "must be a positive number of rental periods"
	}
	if !loanDomain.ValidRentalType(d.RentalType) {
		errs["rental_type"] = "must be Weekly, Bi-Weekly or Monthly"
	}

	if d.GuardianPresent() {
		gateGuardian(d, errs)
	}

	gateWitnesses(d, errs)

	if d.Guarantor1NIC != "" && d.Guarantor1NIC == d.Guarantor2NIC {
		errs["guarantor2_nic"] = "guarantors must be different people"
	}

	return errs, warns
}

// gateGuardian applies the hard guardian rules: valid NIC that decodes
// Male, a name, and a 10-digit phone number.
func gateGuardian(d *domain.Draft, errs domain.FieldErrors) {
	if d.GuardianName == "" {
		errs["guardian_name"] = "guardian name is required"
	}
	switch {
	case d.GuardianNIC == "":
		errs["guardian_nic"] = "guardian NIC is required"
	case !nic.Valid(d.GuardianNIC):
		errs["guardian_nic"] = "invalid NIC format"
	default:
		if g, err := nic.GenderOf(d.GuardianNIC); err == nil && g != nic.Male {
			errs["guardian_nic"] = "guardian must be male"
		}
	}
	if d.GuardianPhone == "" || !rePhone.MatchString(d.GuardianPhone) {
		errs["guardian_phone"] = "must be exactly 10 digits"
	}
}

func gateWitnesses(d *domain.Draft, errs domain.FieldErrors) {
	if d.Witness1ID == "" {
		errs["witness1_id"] = "witness 1 is required"
	}
	if d.Witness2ID == "" {
		errs["witness2_id"] = "witness 2 is required"
	}
	if d.Witness1ID != "" && d.Witness1ID == d.Witness2ID {
		errs["witness2_id"] = "witnesses must be two different staff members"
	}
	if d.ActorStaffID != "" {
		if d.Witness1ID == d.ActorStaffID {
			errs["witness1_id"] = "the applying officer cannot witness"
		}
		if d.Witness2ID == d.ActorStaffID {
			errs["witness2_id"] = "the applying officer cannot witness"
		}
	}
}

// checkPositiveAmount records an error unless the input parses to a
// positive number; returns true when it does.
func checkPositiveAmount(errs domain.FieldErrors, field, raw string) bool {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || v <= 0 {
		errs[field] = "must be a positive amount"
		return false
	}
	return true
}
