package audit

import (
	"time"

	"github.com/google/uuid"

	"github.com/light-bringer/rategrid-service/internal/pkg/clock"
)

// Action is the kind of mutation an audit record describes.
type Action string

const (
	ActionCreate     Action = "CREATE"
	ActionUpdate     Action = "UPDATE"
	ActionDelete     Action = "DELETE"
	ActionBulkUpdate Action = "BULK_UPDATE"
	ActionRollback   Action = "ROLLBACK"
)

// Actor identifies who performed a mutation.
type Actor struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
}

// Record is one immutable entry of the audit trail. ChangedFields is
// computed once at creation from the two snapshots and stored alongside
// them, so queries never have to re-diff.
type Record struct {
	AuditID       string
	EntityType    EntityType
	EntityID      string
	Action        Action
	Actor         Actor
	Previous      *Snapshot
	New           *Snapshot
	ChangedFields []FieldChange
	OccurredAt    time.Time
}

// Recorder builds audit records with generated identifiers and injected time.
type Recorder struct {
	clock clock.Clock
}

// NewRecorder creates a Recorder.
func NewRecorder(clk clock.Clock) *Recorder {
	return &Recorder{clock: clk}
}

// Record builds an audit record for one mutation. prev is nil for creations,
// next is nil for deletions.
func (r *Recorder) Record(action Action, entityID string, prev, next *Snapshot, actor Actor) *Record {
	entity := entityTypeOf(prev, next)
	return &Record{
		AuditID:       uuid.New().String(),
		EntityType:    entity,
		EntityID:      entityID,
		Action:        action,
		Actor:         actor,
		Previous:      prev,
		New:           next,
		ChangedFields: Diff(prev, next),
		OccurredAt:    r.clock.Now(),
	}
}

func entityTypeOf(prev, next *Snapshot) EntityType {
	if next != nil {
		return next.EntityType()
	}
	if prev != nil {
		return prev.EntityType()
	}
	return ""
}

// Filter narrows an audit query. Nil fields are ignored; FreeText matches
// entity IDs and actor names case-insensitively.
type Filter struct {
	EntityType *EntityType
	EntityID   *string
	Action     *Action
	ActorID    *string
	From       *time.Time
	To         *time.Time
	FreeText   string
}

// PageRequest is a zero-based page of a bounded size.
type PageRequest struct {
	Page int64
	Size int64
}

// DefaultPageSize bounds audit queries that do not specify a size.
const DefaultPageSize int64 = 50

// Normalize clamps the request to sane values.
func (p PageRequest) Normalize() PageRequest {
	if p.Size <= 0 {
		p.Size = DefaultPageSize
	}
	if p.Page < 0 {
		p.Page = 0
	}
	return p
}

// Page is one page of audit records, newest first, with totals for paging.
type Page struct {
	Records       []*Record
	Page          int64
	Size          int64
	TotalElements int64
	TotalPages    int64
}

// Summary aggregates matching records without returning them.
type Summary struct {
	TotalChanges int64                `json:"totalChanges"`
	ByAction     map[Action]int64     `json:"byAction"`
	ByActor      map[string]int64     `json:"byActor"`
	ByEntityType map[EntityType]int64 `json:"byEntityType"`
}

// NewSummary returns an empty summary with initialized maps.
func NewSummary() *Summary {
	return &Summary{
		ByAction:     make(map[Action]int64),
		ByActor:      make(map[string]int64),
		ByEntityType: make(map[EntityType]int64),
	}
}

// Accumulate folds one record into the summary.
func (s *Summary) Accumulate(rec *Record) {
	s.TotalChanges++
	s.ByAction[rec.Action]++
	s.ByActor[rec.Actor.ID]++
	s.ByEntityType[rec.EntityType]++
}

// Summarize builds a summary over a record set.
func Summarize(records []*Record) *Summary {
	summary := NewSummary()
	for _, rec := range records {
		summary.Accumulate(rec)
	}
	return summary
}
