package http

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

// Reusable error payload
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}
type ErrorResponse struct {
	Error   string       `json:"error"`
	Details []FieldError `json:"details,omitempty"`
}

var (
	reStaffID = regexp.MustCompile(`^[A-Za-z0-9_-]{1,32}$`)
	reNICReq  = regexp.MustCompile(`^[0-9]{9}[VXvx]$|^[0-9]{12}$`)
)

type CustomValidator struct{ v *validator.Validate }

func NewValidator() *CustomValidator {
	v := validator.New()

	// staff identifier as issued by HR (short alphanumeric)
	_ = v.RegisterValidation("staffid", func(fl validator.FieldLevel) bool {
		return reStaffID.MatchString(fl.Field().String())
	})
	// NIC shape; deeper derivation checks happen in the gate
	_ = v.RegisterValidation("nicshape", func(fl validator.FieldLevel) bool {
		return reNICReq.MatchString(fl.Field().String())
	})

	return &CustomValidator{v: v}
}

func (cv *CustomValidator) Validate(i any) error { return cv.v.Struct(i) }

// Map validator.ValidationErrors to []FieldError with readable messages.
func ToFieldErrors(err error) []FieldError {
	ve, ok := err.(validator.ValidationErrors)
	if !ok {
		return []FieldError{{Field: "_", Message: err.Error()}}
	}
	out := make([]FieldError, 0, len(ve))
	for _, e := range ve {
		field := e.Field()
		switch e.Tag() {
		case "required":
			out = append(out, FieldError{Field: field, Message: "is required"})
		case "staffid":
			out = append(out, FieldError{Field: field, Message: "must be a valid staff identifier"})
		case "nicshape":
			out = append(out, FieldError{Field: field, Message: "must be 9 digits + V/X or 12 digits"})
		case "oneof":
			out = append(out, FieldError{Field: field, Message: "must be one of " + e.Param()})
		case "gt":
			out = append(out, FieldError{Field: field, Message: "must be greater than " + e.Param()})
		case "gte":
			out = append(out, FieldError{Field: field, Message: "must be greater than or equal to " + e.Param()})
		case "lte":
			out = append(out, FieldError{Field: field, Message: "must be less than or equal to " + e.Param()})
		default:
			out = append(out, FieldError{Field: field, Message: e.Tag() + " validation failed"})
		}
	}
	return out
}
