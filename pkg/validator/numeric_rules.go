package validator

import "fmt"

func PositiveAmount[T Numeric](field string, value T) Rule {
	return Rule{
		Check: func() bool {
			return value > 0
		},
		Error: ValidationError{
			Field:   field,
			Message: "amount must be positive",
			Code:    "positive_amount",
		},
	}
}

func NonNegativeAmount[T Numeric](field string, value T) Rule {
	return Rule{
		Check: func() bool {
			return value >= 0
		},
		Error: ValidationError{
			Field:   field,
			Message: "amount cannot be negative",
			Code:    "non_negative_amount",
		},
	}
}

// MaxNum validates that value does not exceed max.
func MaxNum[T Numeric](field string, value T, max T) Rule {
	return Rule{
		Check: func() bool {
			return value <= max
		},
		Error: ValidationError{
			Field:   field,
			Message: fmt.Sprintf("must be at most %v", max),
			Code:    "max",
		},
	}
}
