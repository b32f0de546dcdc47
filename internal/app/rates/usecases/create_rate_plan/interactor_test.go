package create_rate_plan

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"cloud.google.com/go/spanner"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/rategrid-service/internal/app/rates/audit"
	"github.com/light-bringer/rategrid-service/internal/app/rates/contracts"
	"github.com/light-bringer/rategrid-service/internal/app/rates/domain"
	"github.com/light-bringer/rategrid-service/internal/pkg/clock"
	"github.com/light-bringer/rategrid-service/internal/pkg/committer"
)

var createNow = time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

type fixture struct {
	mu     sync.Mutex
	plans  map[string]*domain.RatePlan
	audits map[string]*audit.Record
	events []*contracts.OutboxEvent

	pendingPlans  map[*spanner.Mutation]*domain.RatePlan
	pendingAudits map[*spanner.Mutation]*audit.Record
	pendingEvents map[*spanner.Mutation]*contracts.OutboxEvent

	clk        *clock.MockClock
	interactor *Interactor
}

func newFixture() *fixture {
	f := &fixture{
		plans:         make(map[string]*domain.RatePlan),
		audits:        make(map[string]*audit.Record),
		pendingPlans:  make(map[*spanner.Mutation]*domain.RatePlan),
		pendingAudits: make(map[*spanner.Mutation]*audit.Record),
		pendingEvents: make(map[*spanner.Mutation]*contracts.OutboxEvent),
		clk:           clock.NewMockClock(createNow),
	}
	f.interactor = NewInteractor(
		(*planRepo)(f), (*auditRepo)(f), (*outboxRepo)(f),
		audit.NewRecorder(f.clk), (*applier)(f), f.clk,
	)
	return f
}

type planRepo fixture

func (r *planRepo) InsertMut(plan *domain.RatePlan) (*spanner.Mutation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	token := spanner.InsertMap("rate_plans", map[string]interface{}{})
	r.pendingPlans[token] = plan
	return token, nil
}

func (r *planRepo) UpdateMut(plan *domain.RatePlan) (*spanner.Mutation, error) {
	return r.InsertMut(plan)
}

func (r *planRepo) GetByID(_ context.Context, ratePlanID string) (*domain.RatePlan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	plan, ok := r.plans[ratePlanID]
	if !ok {
		return nil, domain.ErrRatePlanNotFound
	}
	return plan, nil
}

func (r *planRepo) ListByHotel(context.Context, string, []string) ([]*domain.RatePlan, error) {
	return nil, nil
}

func (r *planRepo) CodeExists(_ context.Context, hotelID, code string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, plan := range r.plans {
		if plan.HotelID() == hotelID && plan.Code() == code {
			return true, nil
		}
	}
	return false, nil
}

type auditRepo fixture

func (r *auditRepo) InsertMut(record *audit.Record) (*spanner.Mutation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	token := spanner.InsertMap("rate_audit_records", map[string]interface{}{})
	r.pendingAudits[token] = record
	return token, nil
}

func (r *auditRepo) GetByID(_ context.Context, auditID string) (*audit.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.audits[auditID]
	if !ok {
		return nil, fmt.Errorf("audit record %s not found", auditID)
	}
	return rec, nil
}

func (r *auditRepo) Query(context.Context, audit.Filter, audit.PageRequest) (*audit.Page, error) {
	return nil, nil
}
func (r *auditRepo) Summarize(context.Context, audit.Filter) (*audit.Summary, error) {
	return nil, nil
}

type outboxRepo fixture

func (r *outboxRepo) InsertMut(event *contracts.OutboxEvent) *spanner.Mutation {
	r.mu.Lock()
	defer r.mu.Unlock()
	token := spanner.InsertMap("rate_events", map[string]interface{}{})
	r.pendingEvents[token] = event
	return token
}

func (r *outboxRepo) EnrichEvent(event domain.DomainEvent, payload string) *contracts.OutboxEvent {
	return &contracts.OutboxEvent{
		EventID:     uuid.New().String(),
		EventType:   event.EventType(),
		AggregateID: event.AggregateID(),
		Payload:     payload,
		Status:      "PENDING",
		CreatedAt:   r.clk.Now(),
	}
}

func (r *outboxRepo) ListRecent(context.Context, int64) ([]*contracts.OutboxEvent, error) {
	return nil, nil
}

type applier fixture

func (a *applier) Apply(_ context.Context, plan *committer.CommitPlan) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	for _, mut := range plan.Mutations() {
		if p, ok := a.pendingPlans[mut]; ok {
			a.plans[p.ID()] = p
			delete(a.pendingPlans, mut)
		}
		if rec, ok := a.pendingAudits[mut]; ok {
			a.audits[rec.AuditID] = rec
			delete(a.pendingAudits, mut)
		}
		if event, ok := a.pendingEvents[mut]; ok {
			a.events = append(a.events, event)
			delete(a.pendingEvents, mut)
		}
	}
	return nil
}

func validRequest() *Request {
	return &Request{
		HotelID:   "hotel-1",
		Code:      "BAR",
		Name:      "Best Available Rate",
		PlanType:  "PUBLIC",
		Category:  "TRANSIENT",
		Class:     "STANDARD",
		ValidFrom: civil.Date{Year: 2026, Month: 1, Day: 1},
		Actor:     audit.Actor{ID: "user-7", DisplayName: "Revenue Manager"},
	}
}

func TestExecute_CreatesPlan(t *testing.T) {
	f := newFixture()

	id, err := f.interactor.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	require.NotEmpty(t, id)

	stored := f.plans[id]
	require.NotNil(t, stored)
	assert.Equal(t, "BAR", stored.Code())
	assert.Equal(t, "Best Available Rate", stored.Name())
	assert.Equal(t, domain.PlanStatusActive, stored.Status())

	t.Run("audit record with no previous side", func(t *testing.T) {
		require.Len(t, f.audits, 1)
		for _, rec := range f.audits {
			assert.Equal(t, audit.ActionCreate, rec.Action)
			assert.Equal(t, audit.EntityRatePlan, rec.EntityType)
			assert.Equal(t, id, rec.EntityID)
			assert.Nil(t, rec.Previous)
			assert.Equal(t, "BAR", rec.New.StringField("code"))
		}
	})

	t.Run("creation event committed with the plan", func(t *testing.T) {
		require.Len(t, f.events, 1)
		assert.Equal(t, "rateplan.created", f.events[0].EventType)
		assert.Equal(t, id, f.events[0].AggregateID)
	})
}

func TestExecute_RejectsDuplicateCode(t *testing.T) {
	f := newFixture()
	_, err := f.interactor.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	_, err = f.interactor.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, domain.ErrDuplicatePlanCode)
	assert.Len(t, f.plans, 1)
}

func TestExecute_RejectsInvalidPlan(t *testing.T) {
	f := newFixture()
	req := validRequest()
	req.Name = ""

	_, err := f.interactor.Execute(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrEmptyPlanName)
	assert.Empty(t, f.plans)
	assert.Empty(t, f.audits)
}
