package domain

import (
	"encoding/json"
	"fmt"
	"math/big"
)

// Money represents a monetary value with precise decimal arithmetic using big.Rat.
// Nightly rates go through several layered adjustments before display, so the
// value is kept as a rational number to avoid accumulating float error.
type Money struct {
	rat *big.Rat
}

// NewMoney creates a new Money instance from numerator and denominator.
// Example: NewMoney(18050, 100) represents $180.50
func NewMoney(numerator, denominator int64) (*Money, error) {
	if denominator == 0 {
		return nil, fmt.Errorf("denominator cannot be zero")
	}

	return &Money{rat: big.NewRat(numerator, denominator)}, nil
}

// NewMoneyFromRat creates a new Money instance from a big.Rat.
func NewMoneyFromRat(rat *big.Rat) *Money {
	if rat == nil {
		return &Money{rat: big.NewRat(0, 1)}
	}
	return &Money{rat: new(big.Rat).Set(rat)}
}

// NewMoneyFromString parses a decimal string ("180.50") into Money.
func NewMoneyFromString(s string) (*Money, error) {
	rat, ok := new(big.Rat).SetString(s)
	if !ok {
		return nil, fmt.Errorf("invalid money value: %q", s)
	}
	return &Money{rat: rat}, nil
}

// Zero returns a zero-valued Money.
func Zero() *Money {
	return &Money{rat: big.NewRat(0, 1)}
}

// Numerator returns the numerator of the rational number.
func (m *Money) Numerator() int64 {
	return m.rat.Num().Int64()
}

// Denominator returns the denominator of the rational number.
func (m *Money) Denominator() int64 {
	return m.rat.Denom().Int64()
}

// Add adds two Money values and returns a new Money instance.
func (m *Money) Add(other *Money) *Money {
	return &Money{rat: new(big.Rat).Add(m.rat, other.rat)}
}

// Subtract subtracts another Money value from this one and returns a new Money instance.
func (m *Money) Subtract(other *Money) *Money {
	return &Money{rat: new(big.Rat).Sub(m.rat, other.rat)}
}

// Multiply multiplies this Money value by another and returns a new Money instance.
func (m *Money) Multiply(other *Money) *Money {
	return &Money{rat: new(big.Rat).Mul(m.rat, other.rat)}
}

// MultiplyByRat multiplies this Money value by a rational number and returns a new Money instance.
func (m *Money) MultiplyByRat(rat *big.Rat) *Money {
	return &Money{rat: new(big.Rat).Mul(m.rat, rat)}
}

// MultiplyByInt multiplies this Money value by an integer quantity.
func (m *Money) MultiplyByInt(n int64) *Money {
	return m.MultiplyByRat(big.NewRat(n, 1))
}

// IsZero returns true if the money value is zero.
func (m *Money) IsZero() bool {
	return m.rat.Sign() == 0
}

// IsNegative returns true if the money value is negative.
func (m *Money) IsNegative() bool {
	return m.rat.Sign() < 0
}

// IsPositive returns true if the money value is positive.
func (m *Money) IsPositive() bool {
	return m.rat.Sign() > 0
}

// LessThan returns true if this Money value is less than another.
func (m *Money) LessThan(other *Money) bool {
	return m.rat.Cmp(other.rat) < 0
}

// GreaterThan returns true if this Money value is greater than another.
func (m *Money) GreaterThan(other *Money) bool {
	return m.rat.Cmp(other.rat) > 0
}

// Equals returns true if this Money value equals another.
func (m *Money) Equals(other *Money) bool {
	return m.rat.Cmp(other.rat) == 0
}

// ClampZero returns this value, or zero if the value is negative.
// Layered adjustments can push a rate below zero; resolved rates never are.
func (m *Money) ClampZero() *Money {
	if m.IsNegative() {
		return Zero()
	}
	return m.Copy()
}

// Normalize reduces the fraction to lowest terms (200/2 becomes 100/1).
// Call before storage so equal amounts compare equal at the column level.
func (m *Money) Normalize() *Money {
	// big.Rat keeps itself reduced; copying through NewRat re-normalizes
	// values constructed from raw numerator/denominator pairs.
	return &Money{rat: new(big.Rat).Set(m.rat)}
}

// IsSafeForStorage reports whether numerator and denominator fit in int64 columns.
func (m *Money) IsSafeForStorage() bool {
	return m.rat.Num().IsInt64() && m.rat.Denom().IsInt64()
}

// Float64 returns an approximate float64 representation (for display only, not calculations).
func (m *Money) Float64() float64 {
	f, _ := m.rat.Float64()
	return f
}

// Rat returns a copy of the underlying rational value.
func (m *Money) Rat() *big.Rat {
	return new(big.Rat).Set(m.rat)
}

// String returns a string representation of the money value.
func (m *Money) String() string {
	return m.rat.FloatString(2)
}

// Copy creates a deep copy of this Money instance.
func (m *Money) Copy() *Money {
	return &Money{rat: new(big.Rat).Set(m.rat)}
}

// MarshalJSON serializes the value as its decimal string form, so event
// payloads carry "180.50" instead of an opaque rational.
func (m *Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

// UnmarshalJSON parses the decimal string form.
func (m *Money) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := NewMoneyFromString(s)
	if err != nil {
		return err
	}
	m.rat = parsed.rat
	return nil
}

// MinMoney returns the smaller of two Money values.
func MinMoney(a, b *Money) *Money {
	if a.LessThan(b) {
		return a
	}
	return b
}

// MaxMoney returns the larger of two Money values.
func MaxMoney(a, b *Money) *Money {
	if a.GreaterThan(b) {
		return a
	}
	return b
}

// AverageMoney returns the arithmetic mean of the given values, or nil for an empty slice.
func AverageMoney(values []*Money) *Money {
	if len(values) == 0 {
		return nil
	}
	sum := Zero()
	for _, v := range values {
		sum = sum.Add(v)
	}
	return sum.MultiplyByRat(big.NewRat(1, int64(len(values))))
}
