package audit

import (
	"encoding/json"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/rategrid-service/internal/app/rates/domain"
	"github.com/light-bringer/rategrid-service/internal/pkg/clock"
)

func TestRoomRateSnapshot(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	amount, err := domain.NewMoneyFromString("180.50")
	require.NoError(t, err)

	rate := domain.ReconstructRoomRate("bar", "std", civil.Date{Year: 2026, Month: 6, Day: 1},
		amount, 4, true, false, false, 3, now, now, clock.NewMockClock(now))

	snap := RoomRateSnapshot(rate)
	assert.Equal(t, EntityRoomRate, snap.EntityType())
	assert.Equal(t, "180.50", snap.StringField("rateAmount"))
	assert.Equal(t, "2026-06-01", snap.StringField("date"))
	assert.Equal(t, int64(4), snap.Int64Field("availabilityCount"))
	assert.True(t, snap.BoolField("stopSell"))
	assert.False(t, snap.BoolField("closedForArrival"))
}

func TestRateOverrideSnapshot_OmitsUnsetOptionals(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	value, err := domain.NewMoneyFromString("150")
	require.NoError(t, err)
	adj, err := domain.NewAdjustment(domain.AdjustSetRate, value)
	require.NoError(t, err)

	override, err := domain.NewRateOverride("o1", "bar", nil,
		civil.Date{Year: 2026, Month: 6, Day: 1}, adj, "", now)
	require.NoError(t, err)

	snap := RateOverrideSnapshot(override)
	_, hasRoom := snap.Get("roomTypeId")
	assert.False(t, hasRoom)
	_, hasReason := snap.Get("reason")
	assert.False(t, hasReason)
	assert.Equal(t, "SET_RATE", snap.StringField("adjustmentType"))
}

func TestSnapshot_RoundTrip(t *testing.T) {
	snap := NewSnapshot(EntityRoomRate, map[string]interface{}{
		"rateAmount":        "120.00",
		"availabilityCount": int64(7),
		"stopSell":          true,
	})

	raw, err := json.Marshal(snap)
	require.NoError(t, err)

	decoded, err := DecodeSnapshot(EntityRoomRate, raw)
	require.NoError(t, err)
	assert.Equal(t, "120.00", decoded.StringField("rateAmount"))
	assert.Equal(t, int64(7), decoded.Int64Field("availabilityCount"))
	assert.True(t, decoded.BoolField("stopSell"))

	t.Run("round trip is diff-clean", func(t *testing.T) {
		assert.Empty(t, Diff(snap, decoded))
	})

	t.Run("empty payload decodes to nil", func(t *testing.T) {
		decoded, err := DecodeSnapshot(EntityRoomRate, nil)
		require.NoError(t, err)
		assert.Nil(t, decoded)
	})
}

func TestSnapshot_NilReceiver(t *testing.T) {
	var snap *Snapshot
	assert.Nil(t, snap.Fields())
	assert.Equal(t, "", snap.StringField("anything"))
	assert.Equal(t, int64(0), snap.Int64Field("anything"))
	assert.False(t, snap.BoolField("anything"))
}

func TestSnapshot_FieldsIsACopy(t *testing.T) {
	snap := NewSnapshot(EntityRoomRate, map[string]interface{}{"rateAmount": "100.00"})
	fields := snap.Fields()
	fields["rateAmount"] = "999.00"
	assert.Equal(t, "100.00", snap.StringField("rateAmount"))
}
