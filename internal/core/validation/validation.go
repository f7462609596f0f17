// Package validation holds the input predicates shared by the service layer
// and the HTTP request validator.
package validation

import (
	"github.com/go-playground/validator/v10"
)

const dateLen = len("2006-01-02")

func ValidName(name string) bool {
	return name != ""
}

func ValidAge(age int) bool {
	return age > 0 && age < 150
}

func ValidWeight(kg float64) bool {
	return kg > 0 && kg < 500
}

func ValidHeight(m float64) bool {
	return m > 0 && m < 3
}

func ValidPassword(pw string) bool {
	return len(pw) >= 4
}

// ValidDate checks the YYYY-MM-DD shape only. Month and day ranges are not
// checked, so "2024-13-40" passes.
func ValidDate(s string) bool {
	if len(s) != dateLen {
		return false
	}
	for i := 0; i < len(s); i++ {
		if i == 4 || i == 7 {
			if s[i] != '-' {
				return false
			}
			continue
		}
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func NonNegative(v float64) bool {
	return v >= 0
}

// RegisterTags makes the predicates available as struct tags:
// healthdate, age, weight, height and password.
func RegisterTags(v *validator.Validate) error {
	tags := map[string]validator.Func{
		"healthdate": func(fl validator.FieldLevel) bool { return ValidDate(fl.Field().String()) },
		"age":        func(fl validator.FieldLevel) bool { return ValidAge(int(fl.Field().Int())) },
		"weight":     func(fl validator.FieldLevel) bool { return ValidWeight(fl.Field().Float()) },
		"height":     func(fl validator.FieldLevel) bool { return ValidHeight(fl.Field().Float()) },
		"password":   func(fl validator.FieldLevel) bool { return ValidPassword(fl.Field().String()) },
	}
	for tag, fn := range tags {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return err
		}
	}
	return nil
}
