package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustMoney(t *testing.T, s string) *Money {
	t.Helper()
	m, err := NewMoneyFromString(s)
	require.NoError(t, err)
	return m
}

func TestNewMoney(t *testing.T) {
	t.Run("valid money creation", func(t *testing.T) {
		m, err := NewMoney(18050, 100)
		require.NoError(t, err)
		assert.Equal(t, "180.50", m.String())
	})

	t.Run("zero denominator returns error", func(t *testing.T) {
		_, err := NewMoney(100, 0)
		assert.Error(t, err)
	})

	t.Run("negative numerator allowed", func(t *testing.T) {
		m, err := NewMoney(-100, 1)
		require.NoError(t, err)
		assert.True(t, m.IsNegative())
	})
}

func TestNewMoneyFromString(t *testing.T) {
	t.Run("parses decimal", func(t *testing.T) {
		m, err := NewMoneyFromString("180.50")
		require.NoError(t, err)
		assert.Equal(t, 180.5, m.Float64())
	})

	t.Run("garbage returns error", func(t *testing.T) {
		_, err := NewMoneyFromString("abc")
		assert.Error(t, err)
	})
}

func TestMoney_Arithmetic(t *testing.T) {
	m1 := mustMoney(t, "100")
	m2 := mustMoney(t, "30")

	assert.Equal(t, "130.00", m1.Add(m2).String())
	assert.Equal(t, "70.00", m1.Subtract(m2).String())
	assert.Equal(t, "150.00", m1.Multiply(mustMoney(t, "1.5")).String())
	assert.Equal(t, "300.00", m1.MultiplyByInt(3).String())

	// operands untouched
	assert.Equal(t, "100.00", m1.String())
	assert.Equal(t, "30.00", m2.String())
}

func TestMoney_Comparisons(t *testing.T) {
	small := mustMoney(t, "10")
	big := mustMoney(t, "20")

	assert.True(t, small.LessThan(big))
	assert.True(t, big.GreaterThan(small))
	assert.True(t, small.Equals(mustMoney(t, "10.00")))
	assert.Equal(t, small, MinMoney(small, big))
	assert.Equal(t, big, MaxMoney(small, big))
}

func TestMoney_ClampZero(t *testing.T) {
	t.Run("negative clamps to zero", func(t *testing.T) {
		m := mustMoney(t, "-5")
		assert.True(t, m.ClampZero().IsZero())
	})

	t.Run("positive unchanged", func(t *testing.T) {
		m := mustMoney(t, "5")
		assert.Equal(t, "5.00", m.ClampZero().String())
	})
}

func TestMoney_Normalize(t *testing.T) {
	m, err := NewMoney(200, 2)
	require.NoError(t, err)

	n := m.Normalize()
	assert.Equal(t, int64(100), n.Numerator())
	assert.Equal(t, int64(1), n.Denominator())
	assert.True(t, n.IsSafeForStorage())
}

func TestMoney_JSON(t *testing.T) {
	raw, err := json.Marshal(mustMoney(t, "180.5"))
	require.NoError(t, err)
	assert.Equal(t, `"180.50"`, string(raw))

	var m Money
	require.NoError(t, json.Unmarshal(raw, &m))
	assert.Equal(t, "180.50", m.String())

	assert.Error(t, json.Unmarshal([]byte(`"abc"`), &m))
}

func TestAverageMoney(t *testing.T) {
	t.Run("empty slice yields nil", func(t *testing.T) {
		assert.Nil(t, AverageMoney(nil))
	})

	t.Run("averages exactly", func(t *testing.T) {
		values := []*Money{mustMoney(t, "100"), mustMoney(t, "200"), mustMoney(t, "250")}
		avg := AverageMoney(values)
		assert.Equal(t, "183.33", avg.String())
	})
}
