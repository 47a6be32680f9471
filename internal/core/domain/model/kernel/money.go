package kernel

import (
	"fmt"
	"math"

	"foodorder/internal/pkg/errs"
)

// Money is a non-negative amount expressed in minor currency units.
// The zero value is a valid zero amount.
type Money struct {
	amount int64
}

// NewMoney returns an amount of minor units. Negative amounts are rejected.
func NewMoney(amount int64) (Money, error) {
	if amount < 0 {
		return Money{}, errs.NewValueIsOutOfRangeError("money", amount, int64(0), int64(math.MaxInt64))
	}
	return Money{amount: amount}, nil
}

// ZeroMoney returns an amount of zero.
func ZeroMoney() Money {
	return Money{}
}

// Amount returns the amount in minor units.
func (m Money) Amount() int64 {
	return m.amount
}

// IsZero reports whether the amount is zero.
func (m Money) IsZero() bool {
	return m.amount == 0
}

// IsEqual reports whether both amounts are equal.
func (m Money) IsEqual(other Money) bool {
	return m.amount == other.amount
}

// Add returns the sum of both amounts.
func (m Money) Add(other Money) Money {
	return Money{amount: m.amount + other.amount}
}

// Multiply returns the amount multiplied by qty. A negative qty is rejected.
func (m Money) Multiply(qty int) (Money, error) {
	if qty < 0 {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is negative", qty))
	}
	return Money{amount: m.amount * int64(qty)}, nil
}

func (m Money) String() string {
	return fmt.Sprintf("%d", m.amount)
}
