package selection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/rategrid-service/internal/app/rates/domain"
)

func copiedCell(t *testing.T, plan, room string, day int, amount string) CopiedCell {
	t.Helper()
	m, err := domain.NewMoneyFromString(amount)
	require.NoError(t, err)
	return CopiedCell{
		Key:               key(plan, room, day),
		RateAmount:        m,
		AvailabilityCount: 10,
	}
}

func TestClipboard_SourceFor(t *testing.T) {
	clip := NewClipboard([]CopiedCell{
		copiedCell(t, "bar", "std", 1, "100"),
		copiedCell(t, "bar", "std", 2, "110"),
	})

	t.Run("cycles when targets outnumber sources", func(t *testing.T) {
		// five paste targets against two copied cells: 0,1,0,1,0
		want := []string{"100.00", "110.00", "100.00", "110.00", "100.00"}
		for i, amount := range want {
			assert.Equal(t, amount, clip.SourceFor(i).RateAmount.String())
		}
	})

	t.Run("exact size maps one to one", func(t *testing.T) {
		assert.Equal(t, key("bar", "std", 1), clip.SourceFor(0).Key)
		assert.Equal(t, key("bar", "std", 2), clip.SourceFor(1).Key)
	})
}

func TestClipboard_Empty(t *testing.T) {
	assert.True(t, NewClipboard(nil).IsEmpty())
	assert.Equal(t, 0, NewClipboard(nil).Size())

	var clip *Clipboard
	assert.True(t, clip.IsEmpty())
	assert.Nil(t, clip.Cells())
}

func TestClipboard_CellsIsACopy(t *testing.T) {
	clip := NewClipboard([]CopiedCell{copiedCell(t, "bar", "std", 1, "100")})

	cells := clip.Cells()
	cells[0].Key = key("pkg", "dlx", 9)

	assert.Equal(t, key("bar", "std", 1), clip.SourceFor(0).Key)
}
