package audit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/rategrid-service/internal/pkg/clock"
)

var recordedAt = time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)

func testActor() Actor {
	return Actor{ID: "user-7", DisplayName: "Revenue Manager"}
}

func TestRecorder_Record(t *testing.T) {
	clk := clock.NewMockClock(recordedAt)
	recorder := NewRecorder(clk)

	prev := NewSnapshot(EntityRoomRate, map[string]interface{}{"rateAmount": "100.00"})
	next := NewSnapshot(EntityRoomRate, map[string]interface{}{"rateAmount": "120.00"})

	rec := recorder.Record(ActionUpdate, "bar|std|2026-06-01", prev, next, testActor())

	assert.NotEmpty(t, rec.AuditID)
	assert.Equal(t, EntityRoomRate, rec.EntityType)
	assert.Equal(t, "bar|std|2026-06-01", rec.EntityID)
	assert.Equal(t, ActionUpdate, rec.Action)
	assert.Equal(t, "user-7", rec.Actor.ID)
	assert.Equal(t, recordedAt, rec.OccurredAt)

	require.Len(t, rec.ChangedFields, 1)
	assert.Equal(t, "rateAmount", rec.ChangedFields[0].Field)
	assert.Equal(t, ChangeModified, rec.ChangedFields[0].Kind)

	t.Run("distinct ids per record", func(t *testing.T) {
		other := recorder.Record(ActionUpdate, "bar|std|2026-06-01", prev, next, testActor())
		assert.NotEqual(t, rec.AuditID, other.AuditID)
	})

	t.Run("creation has nil previous and entity type from new side", func(t *testing.T) {
		created := recorder.Record(ActionCreate, "bar|std|2026-06-02", nil, next, testActor())
		assert.Nil(t, created.Previous)
		assert.Equal(t, EntityRoomRate, created.EntityType)
	})

	t.Run("deletion takes entity type from previous side", func(t *testing.T) {
		deleted := recorder.Record(ActionDelete, "bar|std|2026-06-02", prev, nil, testActor())
		assert.Equal(t, EntityRoomRate, deleted.EntityType)
		assert.Nil(t, deleted.New)
	})
}

func TestPageRequest_Normalize(t *testing.T) {
	assert.Equal(t, PageRequest{Page: 0, Size: DefaultPageSize}, PageRequest{}.Normalize())
	assert.Equal(t, PageRequest{Page: 0, Size: 25}, PageRequest{Page: -3, Size: 25}.Normalize())
	assert.Equal(t, PageRequest{Page: 2, Size: 10}, PageRequest{Page: 2, Size: 10}.Normalize())
}

func TestSummarize(t *testing.T) {
	clk := clock.NewMockClock(recordedAt)
	recorder := NewRecorder(clk)

	next := NewSnapshot(EntityRoomRate, map[string]interface{}{"rateAmount": "100.00"})
	planNext := NewSnapshot(EntityRatePlan, map[string]interface{}{"name": "BAR"})

	alice := Actor{ID: "alice"}
	bob := Actor{ID: "bob"}

	records := []*Record{
		recorder.Record(ActionCreate, "a", nil, next, alice),
		recorder.Record(ActionBulkUpdate, "b", next, next, alice),
		recorder.Record(ActionBulkUpdate, "c", next, next, bob),
		recorder.Record(ActionCreate, "plan-1", nil, planNext, bob),
	}

	summary := Summarize(records)
	assert.Equal(t, int64(4), summary.TotalChanges)
	assert.Equal(t, int64(2), summary.ByAction[ActionCreate])
	assert.Equal(t, int64(2), summary.ByAction[ActionBulkUpdate])
	assert.Equal(t, int64(2), summary.ByActor["alice"])
	assert.Equal(t, int64(2), summary.ByActor["bob"])
	assert.Equal(t, int64(3), summary.ByEntityType[EntityRoomRate])
	assert.Equal(t, int64(1), summary.ByEntityType[EntityRatePlan])

	t.Run("empty set", func(t *testing.T) {
		empty := Summarize(nil)
		assert.Equal(t, int64(0), empty.TotalChanges)
		assert.NotNil(t, empty.ByAction)
	})
}
