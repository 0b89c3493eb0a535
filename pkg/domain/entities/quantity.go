package entities

import (
	"encoding/json"
	"fmt"
	"math/big"
)

// Quantity represents an exact, non-negative rational amount.
//
// The zero value is a valid zero quantity. Quantities are immutable: every
// operation returns a new value and never touches its receiver or arguments,
// so they can be shared freely between goroutines.
type Quantity struct {
	rat *big.Rat
}

// NewQuantity creates a validated Quantity from a numerator and denominator
func NewQuantity(num, den int64) (Quantity, error) {
	if den == 0 {
		return Quantity{}, fmt.Errorf("%w: %d/%d", ErrDivisionByZero, num, den)
	}
	r := big.NewRat(num, den)
	if r.Sign() < 0 {
		return Quantity{}, fmt.Errorf("quantity cannot be negative, got %s", r.RatString())
	}
	return Quantity{rat: r}, nil
}

// MustQuantity creates a Quantity and panics if it is invalid. Intended for
// static tables and tests.
func MustQuantity(num, den int64) Quantity {
	q, err := NewQuantity(num, den)
	if err != nil {
		panic(fmt.Sprintf("invalid quantity: %v", err))
	}
	return q
}

// WholeQuantity creates a Quantity holding a whole number
func WholeQuantity(n int64) Quantity {
	return MustQuantity(n, 1)
}

// QuantityFromRat copies r into a new Quantity
func QuantityFromRat(r *big.Rat) (Quantity, error) {
	if r == nil {
		return Quantity{}, nil
	}
	if r.Sign() < 0 {
		return Quantity{}, fmt.Errorf("quantity cannot be negative, got %s", r.RatString())
	}
	return Quantity{rat: new(big.Rat).Set(r)}, nil
}

func (q Quantity) value() *big.Rat {
	if q.rat == nil {
		return new(big.Rat)
	}
	return q.rat
}

// Rat returns a copy of the underlying rational
func (q Quantity) Rat() *big.Rat {
	return new(big.Rat).Set(q.value())
}

// Add returns q + o
func (q Quantity) Add(o Quantity) Quantity {
	return Quantity{rat: new(big.Rat).Add(q.value(), o.value())}
}

// Sub returns q - o, clamped at zero since quantities are never negative
func (q Quantity) Sub(o Quantity) Quantity {
	r := new(big.Rat).Sub(q.value(), o.value())
	if r.Sign() < 0 {
		return Quantity{}
	}
	return Quantity{rat: r}
}

// Mul returns q * o
func (q Quantity) Mul(o Quantity) Quantity {
	return Quantity{rat: new(big.Rat).Mul(q.value(), o.value())}
}

// Quo returns q / o
func (q Quantity) Quo(o Quantity) (Quantity, error) {
	if o.IsZero() {
		return Quantity{}, fmt.Errorf("%w: %s / 0", ErrDivisionByZero, q)
	}
	return Quantity{rat: new(big.Rat).Quo(q.value(), o.value())}, nil
}

// Cmp compares q and o and returns -1, 0 or +1
func (q Quantity) Cmp(o Quantity) int {
	return q.value().Cmp(o.value())
}

// Equal reports whether q and o hold the same value
func (q Quantity) Equal(o Quantity) bool {
	return q.Cmp(o) == 0
}

// IsZero reports whether q is zero
func (q Quantity) IsZero() bool {
	return q.value().Sign() == 0
}

// IsInteger reports whether q is a whole number
func (q Quantity) IsInteger() bool {
	return q.value().IsInt()
}

// RoundUp returns the smallest multiple of step that is >= q.
// A zero step returns q unchanged.
func (q Quantity) RoundUp(step Quantity) Quantity {
	if step.IsZero() {
		return q
	}
	steps := new(big.Rat).Quo(q.value(), step.value())
	whole, rem := new(big.Int).QuoRem(steps.Num(), steps.Denom(), new(big.Int))
	if rem.Sign() != 0 {
		whole.Add(whole, big.NewInt(1))
	}
	return Quantity{rat: new(big.Rat).Mul(new(big.Rat).SetInt(whole), step.value())}
}

// String renders q in lowest terms, e.g. "3/2" or "4"
func (q Quantity) String() string {
	return q.value().RatString()
}

// MarshalJSON encodes q as its exact rational string
func (q Quantity) MarshalJSON() ([]byte, error) {
	return json.Marshal(q.String())
}
