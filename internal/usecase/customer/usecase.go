package customer

import (
	"context"
	"time"

	draftDomain "microfin-backoffice/internal/domain/draft"
	"microfin-backoffice/internal/domain/portfolio"
	"microfin-backoffice/pkg/nic"
)

type Usecase struct{ repo portfolio.Repository }

func NewUsecase(r portfolio.Repository) *Usecase { return &Usecase{repo: r} }

type CreateInput struct {
	FullName     string `json:"full_name"`
	CustomerCode string `json:"customer_code"`
	Gender       string `json:"gender"`
	DateOfBirth  string `json:"date_of_birth"` // YYYY-MM-DD
	MobileNo1    string `json:"mobile_no_1"`
	MobileNo2    string `json:"mobile_no_2"`
	AddressLine1 string `json:"address_line_1"`
	City         string `json:"city"`
	CenterID     uint64 `json:"center_id"`
	GroupID      uint64 `json:"grp_id"`
}

const (
	minAge = 18
	maxAge = 65
)

// validate mirrors the onboarding gate: the NIC/gender mismatch is a
// hard error here, unlike the loan draft where it only warns.
func validate(in CreateInput, now time.Time) draftDomain.FieldErrors {
	errs := draftDomain.FieldErrors{}

	if in.FullName == "" {
		errs["full_name"] = "full name is required"
	}
	if in.CenterID == 0 {
		errs["center_id"] = "center is required"
	}
	if in.GroupID == 0 {
		errs["grp_id"] = "group is required"
	}
	if in.Gender == "" {
		errs["gender"] = "gender is required"
	}

	code := nic.Normalize(in.CustomerCode)
	switch {
	case code == "":
		errs["customer_code"] = "NIC is required"
	case !nic.Valid(code):
		errs["customer_code"] = "invalid NIC format"
	default:
		if g, err := nic.GenderOf(code); err == nil && in.Gender != "" && string(g) != in.Gender {
			errs["gender"] = "matches " + string(g) + " NIC"
		}
	}

	if in.DateOfBirth == "" {
		errs["date_of_birth"] = "date of birth is required"
	} else if dob, err := time.Parse("2006-01-02", in.DateOfBirth); err != nil {
		errs["date_of_birth"] = "must be YYYY-MM-DD"
	} else {
		switch age := nic.Age(dob, now); {
		case age < minAge:
			errs["date_of_birth"] = "customer must be at least 18 years old"
		case age > maxAge:
			errs["date_of_birth"] = "customer must be at most 65 years old"
		}
	}

	if in.MobileNo1 == "" || !rePhone.MatchString(in.MobileNo1) {
		errs["mobile_no_1"] = "must be exactly 10 digits"
	}
	if in.MobileNo2 != "" && !rePhone.MatchString(in.MobileNo2) {
		errs["mobile_no_2"] = "must be exactly 10 digits"
	}

	return errs
}

func (u *Usecase) Create(ctx context.Context, in CreateInput) (*portfolio.Customer, error) {
	if errs := validate(in, time.Now().UTC()); len(errs) > 0 {
		return nil, &draftDomain.SubmissionFailure{Fields: errs}
	}

	dob, _ := time.Parse("2006-01-02", in.DateOfBirth)
	c := &portfolio.Customer{
		FullName:     in.FullName,
		CustomerCode: nic.Normalize(in.CustomerCode),
		Gender:       in.Gender,
		DateOfBirth:  dob,
		MobileNo1:    in.MobileNo1,
		MobileNo2:    in.MobileNo2,
		AddressLine1: in.AddressLine1,
		City:         in.City,
		CenterID:     in.CenterID,
		GroupID:      in.GroupID,
		Status:       "Active",
	}
	if err := u.repo.CreateCustomer(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (u *Usecase) Get(ctx context.Context, id uint64) (*portfolio.CustomerDetail, error) {
	return u.repo.GetCustomer(ctx, id)
}
