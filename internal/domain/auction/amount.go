package auction

import "github.com/shopspring/decimal"

// Amount is a validated, immutable money value.
type Amount struct {
	value decimal.Decimal
}

// NewAmount validates that the value is strictly positive.
func NewAmount(value decimal.Decimal) (Amount, error) {
	if value.LessThanOrEqual(decimal.Zero) {
		return Amount{}, ErrTooLowAmount
	}
	return Amount{value: value}, nil
}

// NewAmountWithFloor validates that the value is not below the given minimum.
func NewAmountWithFloor(value, min decimal.Decimal) (Amount, error) {
	if value.LessThan(min) {
		return Amount{}, ErrTooLowAmount
	}
	return Amount{value: value}, nil
}

// RestoreAmount rebuilds an Amount from storage without re-validating.
// Only repositories should use it.
func RestoreAmount(value decimal.Decimal) Amount {
	return Amount{value: value}
}

func (a Amount) Value() decimal.Decimal { return a.value }

func (a Amount) Plus(other Amount) Amount {
	return Amount{value: a.value.Add(other.value)}
}

func (a Amount) Equal(other Amount) bool { return a.value.Equal(other.value) }

func (a Amount) String() string { return a.value.String() }
