package nic

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// ErrFormat is returned for any code that is not 9 digits followed by
// V/X, or exactly 12 digits.
var ErrFormat = errors.New("invalid NIC format")

type Gender string

const (
	Male   Gender = "Male"
	Female Gender = "Female"
)

var (
	reOld = regexp.MustCompile(`^[0-9]{9}[VX]$`)
	reNew = regexp.MustCompile(`^[0-9]{12}$`)
)

// Normalize upper-cases the code and strips surrounding whitespace.
// Comparisons and derivations always run on the normalized form.
func Normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func Valid(code string) bool {
	c := Normalize(code)
	return reOld.MatchString(c) || reNew.MatchString(c)
}

// GenderOf derives the holder's sex from the day-of-year field of the
// code: digits 2-4 of the old form, 4-6 of the new form. Issuance adds
// 500 to the field for females, so > 500 means Female; 500 itself is
// still Male.
func GenderOf(code string) (Gender, error) {
	c := Normalize(code)

	var field string
	switch {
	case reOld.MatchString(c):
		field = c[2:5]
	case reNew.MatchString(c):
		field = c[4:7]
	default:
		return "", ErrFormat
	}

	day, err := strconv.Atoi(field)
	if err != nil {
		return "", ErrFormat
	}
	if day > 500 {
		return Female, nil
	}
	return Male, nil
}

// Age returns the calendar age at now for the given date of birth.
func Age(dob, now time.Time) int {
	years := now.Year() - dob.Year()
	if now.Month() < dob.Month() || (now.Month() == dob.Month() && now.Day() < dob.Day()) {
		years--
	}
	return years
}
