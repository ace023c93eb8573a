package validator

import "time"

// DateAfter validates that value is strictly after the reference time.
func DateAfter(field string, value, after time.Time) Rule {
	return Rule{
		Check: func() bool {
			return value.After(after)
		},
		Error: ValidationError{
			Field:   field,
			Message: "date must be after " + after.Format(time.DateOnly),
			Code:    "date_after",
		},
	}
}
