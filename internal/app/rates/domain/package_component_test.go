package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRatePackageComponent(t *testing.T) {
	t.Run("empty name", func(t *testing.T) {
		_, err := NewRatePackageComponent("c1", "plan-1", "",
			ComponentMeal, true, 1, PricePerUnit,
			mustMoney(t, "10"), nil, nil, nil, testNow)
		assert.ErrorIs(t, err, ErrEmptyComponentName)
	})

	t.Run("quantity below one", func(t *testing.T) {
		_, err := NewRatePackageComponent("c1", "plan-1", "Breakfast",
			ComponentMeal, true, 0, PricePerUnit,
			mustMoney(t, "10"), nil, nil, nil, testNow)
		assert.ErrorIs(t, err, ErrInvalidQuantity)
	})

	t.Run("per unit requires unit price", func(t *testing.T) {
		_, err := NewRatePackageComponent("c1", "plan-1", "Breakfast",
			ComponentMeal, true, 1, PricePerUnit,
			nil, mustMoney(t, "10"), nil, nil, testNow)
		assert.ErrorIs(t, err, ErrMissingComponentRate)
	})

	t.Run("per audience requires adult price", func(t *testing.T) {
		_, err := NewRatePackageComponent("c1", "plan-1", "Breakfast",
			ComponentMeal, true, 1, PricePerAudience,
			mustMoney(t, "10"), nil, nil, nil, testNow)
		assert.ErrorIs(t, err, ErrMissingComponentRate)
	})

	t.Run("unknown pricing mode", func(t *testing.T) {
		_, err := NewRatePackageComponent("c1", "plan-1", "Breakfast",
			ComponentMeal, true, 1, "PER_NIGHT",
			mustMoney(t, "10"), nil, nil, nil, testNow)
		assert.ErrorIs(t, err, ErrMissingComponentRate)
	})
}

func TestRatePackageComponent_Total(t *testing.T) {
	t.Run("per unit multiplies by quantity", func(t *testing.T) {
		spa, err := NewRatePackageComponent("c1", "plan-1", "Spa Credit",
			ComponentService, true, 3, PricePerUnit,
			mustMoney(t, "12.50"), nil, nil, nil, testNow)
		require.NoError(t, err)
		assert.Equal(t, "37.50", spa.Total(GuestAdult).String())
		// guest type irrelevant in per-unit mode
		assert.Equal(t, "37.50", spa.Total(GuestInfant).String())
	})

	t.Run("per audience picks the matching price", func(t *testing.T) {
		breakfast, err := NewRatePackageComponent("c1", "plan-1", "Breakfast",
			ComponentMeal, true, 1, PricePerAudience,
			nil, mustMoney(t, "20"), mustMoney(t, "10"), mustMoney(t, "0"), testNow)
		require.NoError(t, err)
		assert.Equal(t, "20.00", breakfast.Total(GuestAdult).String())
		assert.Equal(t, "10.00", breakfast.Total(GuestChild).String())
		assert.Equal(t, "0.00", breakfast.Total(GuestInfant).String())
	})

	t.Run("missing audience price falls back to adult", func(t *testing.T) {
		transfer, err := NewRatePackageComponent("c1", "plan-1", "Airport Transfer",
			ComponentService, false, 1, PricePerAudience,
			nil, mustMoney(t, "45"), nil, nil, testNow)
		require.NoError(t, err)
		assert.Equal(t, "45.00", transfer.Total(GuestChild).String())
		assert.Equal(t, "45.00", transfer.Total(GuestInfant).String())
	})
}

func TestComponentTotal(t *testing.T) {
	breakfast, err := NewRatePackageComponent("c1", "plan-1", "Breakfast",
		ComponentMeal, true, 2, PricePerUnit,
		mustMoney(t, "15"), nil, nil, nil, testNow)
	require.NoError(t, err)
	wifi, err := NewRatePackageComponent("c2", "plan-1", "WiFi",
		ComponentAmenity, true, 1, PricePerUnit,
		mustMoney(t, "5.50"), nil, nil, nil, testNow)
	require.NoError(t, err)

	total := ComponentTotal([]*RatePackageComponent{breakfast, wifi}, GuestAdult)
	assert.Equal(t, "35.50", total.String())

	t.Run("empty component list sums to zero", func(t *testing.T) {
		assert.True(t, ComponentTotal(nil, GuestAdult).IsZero())
	})
}
