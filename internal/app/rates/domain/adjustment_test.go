package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustAdjustment(t *testing.T, adjType AdjustmentType, value string) *Adjustment {
	t.Helper()
	adj, err := NewAdjustment(adjType, mustMoney(t, value))
	require.NoError(t, err)
	return adj
}

func TestNewAdjustment(t *testing.T) {
	t.Run("nil value returns error", func(t *testing.T) {
		_, err := NewAdjustment(AdjustSetRate, nil)
		assert.ErrorIs(t, err, ErrMissingAdjustmentValue)
	})

	t.Run("negative percentage returns error", func(t *testing.T) {
		_, err := NewAdjustment(AdjustPercentageIncrease, mustMoney(t, "-10"))
		assert.ErrorIs(t, err, ErrNegativePercentage)
	})

	t.Run("negative multiplier returns error", func(t *testing.T) {
		_, err := NewAdjustment(AdjustMultiplier, mustMoney(t, "-1"))
		assert.ErrorIs(t, err, ErrNegativeMultiplier)
	})

	t.Run("negative fixed amount allowed", func(t *testing.T) {
		_, err := NewAdjustment(AdjustFixedIncrease, mustMoney(t, "-10"))
		assert.NoError(t, err)
	})

	t.Run("unknown type returns error", func(t *testing.T) {
		_, err := NewAdjustment("HALVE", mustMoney(t, "10"))
		assert.ErrorIs(t, err, ErrInvalidAdjustmentType)
	})
}

func TestAdjustment_ApplyTo(t *testing.T) {
	base := mustMoney(t, "200")

	tests := []struct {
		name    string
		adjType AdjustmentType
		value   string
		want    string
	}{
		{"percentage increase", AdjustPercentageIncrease, "15", "230.00"},
		{"percentage decrease", AdjustPercentageDecrease, "15", "170.00"},
		{"fixed increase", AdjustFixedIncrease, "25.50", "225.50"},
		{"fixed decrease", AdjustFixedDecrease, "25.50", "174.50"},
		{"multiplier", AdjustMultiplier, "1.5", "300.00"},
		{"set rate ignores base", AdjustSetRate, "99.99", "99.99"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			adj := mustAdjustment(t, tt.adjType, tt.value)
			assert.Equal(t, tt.want, adj.ApplyTo(base).String())
		})
	}

	t.Run("base is not mutated", func(t *testing.T) {
		mustAdjustment(t, AdjustPercentageDecrease, "50").ApplyTo(base)
		assert.Equal(t, "200.00", base.String())
	})

	t.Run("fractional percentage stays exact", func(t *testing.T) {
		adj := mustAdjustment(t, AdjustPercentageDecrease, "33.33")
		got := adj.ApplyTo(mustMoney(t, "100"))
		assert.Equal(t, "66.67", got.String())
	})
}
