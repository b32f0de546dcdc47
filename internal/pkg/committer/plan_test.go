package committer

import (
	"testing"

	"cloud.google.com/go/spanner"
	"github.com/stretchr/testify/assert"
)

func TestCommitPlan_Add(t *testing.T) {
	plan := NewPlan()
	assert.True(t, plan.IsEmpty())
	assert.Equal(t, 0, plan.Count())

	mut := spanner.InsertMap("room_rates", map[string]interface{}{})
	plan.Add(mut)

	assert.False(t, plan.IsEmpty())
	assert.Equal(t, 1, plan.Count())
	assert.Equal(t, []*spanner.Mutation{mut}, plan.Mutations())
}

func TestCommitPlan_AddIgnoresNil(t *testing.T) {
	plan := NewPlan()
	plan.Add(nil)
	assert.True(t, plan.IsEmpty())
}

func TestCommitPlan_AddMultiple(t *testing.T) {
	first := spanner.InsertMap("room_rates", map[string]interface{}{})
	second := spanner.InsertMap("rate_audit_records", map[string]interface{}{})

	plan := NewPlan()
	plan.AddMultiple([]*spanner.Mutation{first, nil, second})

	assert.Equal(t, 2, plan.Count())
	assert.Equal(t, []*spanner.Mutation{first, second}, plan.Mutations())
}
