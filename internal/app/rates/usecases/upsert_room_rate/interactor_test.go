package upsert_room_rate

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

var (
	upsertNow  = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	upsertDate = civil.Date{Year: 2026, Month: 6, Day: 15}
)

// fixture wires the interactor against in-memory repositories. Mutations are
// opaque tokens the applier resolves at commit time.
type fixture struct {
	mu     sync.Mutex
	plans  map[string]*domain.RatePlan
	rates  map[string]*domain.RoomRate
	audits []*audit.Record
	events []*contracts.OutboxEvent

	pendingRates  map[*spanner.Mutation]*domain.RoomRate
	pendingAudits map[*spanner.Mutation]*audit.Record
	pendingEvents map[*spanner.Mutation]*contracts.OutboxEvent

	clk        *clock.MockClock
	interactor *Interactor
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		plans:         make(map[string]*domain.RatePlan),
		rates:         make(map[string]*domain.RoomRate),
		pendingRates:  make(map[*spanner.Mutation]*domain.RoomRate),
		pendingAudits: make(map[*spanner.Mutation]*audit.Record),
		pendingEvents: make(map[*spanner.Mutation]*contracts.OutboxEvent),
		clk:           clock.NewMockClock(upsertNow),
	}
	f.interactor = NewInteractor(
		(*rateRepo)(f), (*planRepo)(f), (*auditRepo)(f), (*outboxRepo)(f),
		audit.NewRecorder(f.clk), (*applier)(f), f.clk,
	)

	plan, err := domain.NewRatePlan("bar", "hotel-1", "BAR", "Best Available Rate",
		"standard", "public", "flexible",
		civil.Date{Year: 2026, Month: 1, Day: 1}, nil, true, false, false, upsertNow, f.clk)
	require.NoError(t, err)
	plan.ClearEvents()
	f.plans["bar"] = plan

	return f
}

func (f *fixture) seedRate(t *testing.T, amount string, version int64) {
	t.Helper()
	f.rates[cellID("bar", "std", upsertDate)] = domain.ReconstructRoomRate(
		"bar", "std", upsertDate, money(t, amount), 5, false, false, false,
		version, upsertNow, upsertNow, f.clk)
}

func (f *fixture) stored() *domain.RoomRate {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.rates[cellID("bar", "std", upsertDate)]
}

func cellID(ratePlanID, roomTypeID string, date civil.Date) string {
	return fmt.Sprintf("%s|%s|%s", ratePlanID, roomTypeID, date.String())
}

func money(t *testing.T, s string) *domain.Money {
	t.Helper()
	m, err := domain.NewMoneyFromString(s)
	require.NoError(t, err)
	return m
}

type planRepo fixture

func (r *planRepo) InsertMut(*domain.RatePlan) (*spanner.Mutation, error) { return nil, nil }
func (r *planRepo) UpdateMut(*domain.RatePlan) (*spanner.Mutation, error) { return nil, nil }
func (r *planRepo) GetByID(_ context.Context, id string) (*domain.RatePlan, error) {
	plan, ok := r.plans[id]
	if !ok {
		return nil, domain.ErrRatePlanNotFound
	}
	return plan, nil
}
func (r *planRepo) ListByHotel(context.Context, string, []string) ([]*domain.RatePlan, error) {
	return nil, nil
}
func (r *planRepo) CodeExists(context.Context, string, string) (bool, error) { return false, nil }

type rateRepo fixture

func (r *rateRepo) Get(_ context.Context, ratePlanID, roomTypeID string, date civil.Date) (*domain.RoomRate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.rates[cellID(ratePlanID, roomTypeID, date)]
	if !ok {
		return nil, domain.ErrRoomRateNotFound
	}
	return domain.ReconstructRoomRate(
		stored.RatePlanID(), stored.RoomTypeID(), stored.Date(), stored.RateAmount(),
		stored.AvailabilityCount(), stored.StopSell(), stored.ClosedForArrival(),
		stored.ClosedForDeparture(), stored.Version(), stored.CreatedAt(), stored.UpdatedAt(),
		r.clk), nil
}

func (r *rateRepo) UpsertMut(rate *domain.RoomRate) (*spanner.Mutation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	token := spanner.InsertMap("room_rates", map[string]interface{}{})
	r.pendingRates[token] = rate
	return token, nil
}

func (r *rateRepo) ListInRange(context.Context, []string, []string, civil.Date, civil.Date) ([]*domain.RoomRate, error) {
	return nil, nil
}

type auditRepo fixture

func (r *auditRepo) InsertMut(record *audit.Record) (*spanner.Mutation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	token := spanner.InsertMap("rate_audit_records", map[string]interface{}{})
	r.pendingAudits[token] = record
	return token, nil
}

func (r *auditRepo) GetByID(context.Context, string) (*audit.Record, error) { return nil, nil }
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
	a.commit(plan)
	return nil
}

func (a *applier) ApplyWithRateVersionCheck(
	_ context.Context,
	ratePlanID, roomTypeID string,
	date civil.Date,
	expectedVersion int64,
	plan *committer.CommitPlan,
) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	stored, ok := a.rates[cellID(ratePlanID, roomTypeID, date)]
	if !ok || stored.Version() != expectedVersion {
		return fmt.Errorf("%w", committer.ErrVersionConflict)
	}
	a.commit(plan)
	return nil
}

func (a *applier) commit(plan *committer.CommitPlan) {
	for _, mut := range plan.Mutations() {
		if rate, ok := a.pendingRates[mut]; ok {
			a.rates[rate.EntityID()] = domain.ReconstructRoomRate(
				rate.RatePlanID(), rate.RoomTypeID(), rate.Date(), rate.RateAmount(),
				rate.AvailabilityCount(), rate.StopSell(), rate.ClosedForArrival(),
				rate.ClosedForDeparture(), rate.Version()+1, rate.CreatedAt(), rate.UpdatedAt(),
				a.clk)
			delete(a.pendingRates, mut)
		}
		if rec, ok := a.pendingAudits[mut]; ok {
			a.audits = append(a.audits, rec)
			delete(a.pendingAudits, mut)
		}
		if event, ok := a.pendingEvents[mut]; ok {
			a.events = append(a.events, event)
			delete(a.pendingEvents, mut)
		}
	}
}

func actor() audit.Actor {
	return audit.Actor{ID: "user-7", DisplayName: "Revenue Manager"}
}

func TestExecute_CreatesMissingCell(t *testing.T) {
	f := newFixture(t)

	count := int64(8)
	err := f.interactor.Execute(context.Background(), &Request{
		RatePlanID:        "bar",
		RoomTypeID:        "std",
		Date:              upsertDate,
		RateAmount:        money(t, "180.50"),
		AvailabilityCount: &count,
		Actor:             actor(),
	})
	require.NoError(t, err)

	stored := f.stored()
	require.NotNil(t, stored)
	assert.Equal(t, "180.50", stored.RateAmount().String())
	assert.Equal(t, int64(8), stored.AvailabilityCount())
	assert.Equal(t, int64(1), stored.Version())

	require.Len(t, f.audits, 1)
	assert.Equal(t, audit.ActionCreate, f.audits[0].Action)
	assert.Nil(t, f.audits[0].Previous)

	require.Len(t, f.events, 1)
	assert.Equal(t, "roomrate.upserted", f.events[0].EventType)
}

func TestExecute_UpdatesExistingCell(t *testing.T) {
	f := newFixture(t)
	f.seedRate(t, "100", 3)

	stopSell := true
	err := f.interactor.Execute(context.Background(), &Request{
		RatePlanID: "bar",
		RoomTypeID: "std",
		Date:       upsertDate,
		RateAmount: money(t, "120"),
		StopSell:   &stopSell,
		Actor:      actor(),
	})
	require.NoError(t, err)

	stored := f.stored()
	assert.Equal(t, "120.00", stored.RateAmount().String())
	assert.True(t, stored.StopSell())
	// untouched fields survive the partial update
	assert.Equal(t, int64(5), stored.AvailabilityCount())
	assert.Equal(t, int64(4), stored.Version())

	require.Len(t, f.audits, 1)
	rec := f.audits[0]
	assert.Equal(t, audit.ActionUpdate, rec.Action)
	assert.Equal(t, "100.00", rec.Previous.StringField("rateAmount"))
	assert.Equal(t, "120.00", rec.New.StringField("rateAmount"))
}

func TestExecute_FlagsOnlyUpdate(t *testing.T) {
	f := newFixture(t)
	f.seedRate(t, "100", 1)

	closed := true
	err := f.interactor.Execute(context.Background(), &Request{
		RatePlanID:       "bar",
		RoomTypeID:       "std",
		Date:             upsertDate,
		ClosedForArrival: &closed,
		Actor:            actor(),
	})
	require.NoError(t, err)

	stored := f.stored()
	assert.True(t, stored.ClosedForArrival())
	assert.Equal(t, "100.00", stored.RateAmount().String())
}

func TestExecute_VersionCheck(t *testing.T) {
	t.Run("matching version commits", func(t *testing.T) {
		f := newFixture(t)
		f.seedRate(t, "100", 3)

		expected := int64(3)
		err := f.interactor.Execute(context.Background(), &Request{
			RatePlanID:      "bar",
			RoomTypeID:      "std",
			Date:            upsertDate,
			RateAmount:      money(t, "140"),
			ExpectedVersion: &expected,
			Actor:           actor(),
		})
		require.NoError(t, err)
		assert.Equal(t, "140.00", f.stored().RateAmount().String())
	})

	t.Run("stale version conflicts and commits nothing", func(t *testing.T) {
		f := newFixture(t)
		f.seedRate(t, "100", 3)

		stale := int64(2)
		err := f.interactor.Execute(context.Background(), &Request{
			RatePlanID:      "bar",
			RoomTypeID:      "std",
			Date:            upsertDate,
			RateAmount:      money(t, "140"),
			ExpectedVersion: &stale,
			Actor:           actor(),
		})
		assert.ErrorIs(t, err, committer.ErrVersionConflict)
		assert.Equal(t, "100.00", f.stored().RateAmount().String())
		assert.Empty(t, f.audits)
	})
}

func TestExecute_Rejections(t *testing.T) {
	t.Run("missing cell without amount", func(t *testing.T) {
		f := newFixture(t)
		err := f.interactor.Execute(context.Background(), &Request{
			RatePlanID: "bar", RoomTypeID: "std", Date: upsertDate, Actor: actor(),
		})
		assert.ErrorIs(t, err, domain.ErrNoBaseRate)
	})

	t.Run("unknown plan", func(t *testing.T) {
		f := newFixture(t)
		err := f.interactor.Execute(context.Background(), &Request{
			RatePlanID: "ghost", RoomTypeID: "std", Date: upsertDate,
			RateAmount: money(t, "100"), Actor: actor(),
		})
		assert.ErrorIs(t, err, domain.ErrRatePlanNotFound)
	})

	t.Run("retired plan", func(t *testing.T) {
		f := newFixture(t)
		require.NoError(t, f.plans["bar"].Retire(upsertNow))
		err := f.interactor.Execute(context.Background(), &Request{
			RatePlanID: "bar", RoomTypeID: "std", Date: upsertDate,
			RateAmount: money(t, "100"), Actor: actor(),
		})
		assert.ErrorIs(t, err, domain.ErrPlanRetired)
	})

	t.Run("negative amount", func(t *testing.T) {
		f := newFixture(t)
		err := f.interactor.Execute(context.Background(), &Request{
			RatePlanID: "bar", RoomTypeID: "std", Date: upsertDate,
			RateAmount: money(t, "-10"), Actor: actor(),
		})
		assert.ErrorIs(t, err, domain.ErrNegativeRateAmount)
	})

	t.Run("missing actor", func(t *testing.T) {
		f := newFixture(t)
		err := f.interactor.Execute(context.Background(), &Request{
			RatePlanID: "bar", RoomTypeID: "std", Date: upsertDate,
			RateAmount: money(t, "100"),
		})
		assert.Error(t, err)
	})
}
