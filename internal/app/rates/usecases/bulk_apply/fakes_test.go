package bulk_apply

import (
	"context"
	"fmt"
	"sync"

	"cloud.google.com/go/civil"
	"cloud.google.com/go/spanner"
	"github.com/google/uuid"

	"github.com/light-bringer/rategrid-service/internal/app/rates/audit"
	"github.com/light-bringer/rategrid-service/internal/app/rates/contracts"
	"github.com/light-bringer/rategrid-service/internal/app/rates/domain"
	"github.com/light-bringer/rategrid-service/internal/pkg/clock"
	"github.com/light-bringer/rategrid-service/internal/pkg/committer"
)

// fakeStore is in-memory state shared by the repository fakes and the
// applier. Mutations returned by the *Mut methods are opaque tokens; Apply
// resolves the tokens of a plan and commits them together, so per-plan
// atomicity behaves like the real committer.
type fakeStore struct {
	mu     sync.Mutex
	rates  map[string]*domain.RoomRate
	audits []*audit.Record
	events []*contracts.OutboxEvent

	pendingRates  map[*spanner.Mutation]*domain.RoomRate
	pendingAudits map[*spanner.Mutation]*audit.Record
	pendingEvents map[*spanner.Mutation]*contracts.OutboxEvent

	// failCells maps a cell EntityID to the commit error its plan should fail
	// with; nothing in such a plan is committed.
	failCells map[string]error
	// onApply runs after every successful commit, outside the lock.
	onApply func()

	clk clock.Clock
}

func newFakeStore(clk clock.Clock) *fakeStore {
	return &fakeStore{
		rates:         make(map[string]*domain.RoomRate),
		pendingRates:  make(map[*spanner.Mutation]*domain.RoomRate),
		pendingAudits: make(map[*spanner.Mutation]*audit.Record),
		pendingEvents: make(map[*spanner.Mutation]*contracts.OutboxEvent),
		failCells:     make(map[string]error),
		clk:           clk,
	}
}

func cellID(ratePlanID, roomTypeID string, date civil.Date) string {
	return fmt.Sprintf("%s|%s|%s", ratePlanID, roomTypeID, date.String())
}

func (f *fakeStore) seed(rate *domain.RoomRate) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rates[rate.EntityID()] = rate
}

func (f *fakeStore) storedRate(ratePlanID, roomTypeID string, date civil.Date) *domain.RoomRate {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.rates[cellID(ratePlanID, roomTypeID, date)]
}

func (f *fakeStore) auditRecords() []*audit.Record {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*audit.Record(nil), f.audits...)
}

func (f *fakeStore) eventTypes() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	types := make([]string, 0, len(f.events))
	for _, e := range f.events {
		types = append(types, e.EventType)
	}
	return types
}

func (f *fakeStore) cloneRate(r *domain.RoomRate, version int64) *domain.RoomRate {
	return domain.ReconstructRoomRate(
		r.RatePlanID(), r.RoomTypeID(), r.Date(), r.RateAmount(),
		r.AvailabilityCount(), r.StopSell(), r.ClosedForArrival(), r.ClosedForDeparture(),
		version, r.CreatedAt(), r.UpdatedAt(), f.clk,
	)
}

// Applier

func (f *fakeStore) Apply(_ context.Context, plan *committer.CommitPlan) error {
	f.mu.Lock()
	if err := f.planError(plan); err != nil {
		f.discard(plan)
		f.mu.Unlock()
		return err
	}
	f.commit(plan)
	hook := f.onApply
	f.mu.Unlock()

	if hook != nil {
		hook()
	}
	return nil
}

func (f *fakeStore) ApplyWithRateVersionCheck(
	ctx context.Context,
	ratePlanID, roomTypeID string,
	date civil.Date,
	expectedVersion int64,
	plan *committer.CommitPlan,
) error {
	f.mu.Lock()
	stored, ok := f.rates[cellID(ratePlanID, roomTypeID, date)]
	if !ok || stored.Version() != expectedVersion {
		current := int64(-1)
		if ok {
			current = stored.Version()
		}
		f.discard(plan)
		f.mu.Unlock()
		return fmt.Errorf("%w: expected %d, got %d", committer.ErrVersionConflict, expectedVersion, current)
	}
	f.mu.Unlock()
	return f.Apply(ctx, plan)
}

func (f *fakeStore) planError(plan *committer.CommitPlan) error {
	for _, mut := range plan.Mutations() {
		if rate, ok := f.pendingRates[mut]; ok {
			if err := f.failCells[rate.EntityID()]; err != nil {
				return err
			}
		}
	}
	return nil
}

func (f *fakeStore) commit(plan *committer.CommitPlan) {
	for _, mut := range plan.Mutations() {
		if rate, ok := f.pendingRates[mut]; ok {
			// the stored row carries the incremented version, like the real
			// repository's upsert mutation
			f.rates[rate.EntityID()] = f.cloneRate(rate, rate.Version()+1)
			delete(f.pendingRates, mut)
		}
		if rec, ok := f.pendingAudits[mut]; ok {
			f.audits = append(f.audits, rec)
			delete(f.pendingAudits, mut)
		}
		if event, ok := f.pendingEvents[mut]; ok {
			f.events = append(f.events, event)
			delete(f.pendingEvents, mut)
		}
	}
}

func (f *fakeStore) discard(plan *committer.CommitPlan) {
	for _, mut := range plan.Mutations() {
		delete(f.pendingRates, mut)
		delete(f.pendingAudits, mut)
		delete(f.pendingEvents, mut)
	}
}

// fakeRateRepo implements contracts.RoomRateRepository.
type fakeRateRepo struct{ s *fakeStore }

func (r *fakeRateRepo) Get(_ context.Context, ratePlanID, roomTypeID string, date civil.Date) (*domain.RoomRate, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored, ok := r.s.rates[cellID(ratePlanID, roomTypeID, date)]
	if !ok {
		return nil, domain.ErrRoomRateNotFound
	}
	return r.s.cloneRate(stored, stored.Version()), nil
}

func (r *fakeRateRepo) UpsertMut(rate *domain.RoomRate) (*spanner.Mutation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	token := spanner.InsertMap("room_rates", map[string]interface{}{})
	r.s.pendingRates[token] = rate
	return token, nil
}

func (r *fakeRateRepo) ListInRange(_ context.Context, _, _ []string, _, _ civil.Date) ([]*domain.RoomRate, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*domain.RoomRate, 0, len(r.s.rates))
	for _, rate := range r.s.rates {
		out = append(out, rate)
	}
	return out, nil
}

// fakeAuditRepo implements contracts.AuditRepository.
type fakeAuditRepo struct{ s *fakeStore }

func (a *fakeAuditRepo) InsertMut(record *audit.Record) (*spanner.Mutation, error) {
	a.s.mu.Lock()
	defer a.s.mu.Unlock()
	token := spanner.InsertMap("rate_audit_records", map[string]interface{}{})
	a.s.pendingAudits[token] = record
	return token, nil
}

func (a *fakeAuditRepo) GetByID(_ context.Context, auditID string) (*audit.Record, error) {
	a.s.mu.Lock()
	defer a.s.mu.Unlock()
	for _, rec := range a.s.audits {
		if rec.AuditID == auditID {
			return rec, nil
		}
	}
	return nil, fmt.Errorf("audit record %s not found", auditID)
}

func (a *fakeAuditRepo) Query(_ context.Context, _ audit.Filter, page audit.PageRequest) (*audit.Page, error) {
	a.s.mu.Lock()
	defer a.s.mu.Unlock()
	return &audit.Page{
		Records:       append([]*audit.Record(nil), a.s.audits...),
		Page:          page.Page,
		Size:          page.Size,
		TotalElements: int64(len(a.s.audits)),
		TotalPages:    1,
	}, nil
}

func (a *fakeAuditRepo) Summarize(_ context.Context, _ audit.Filter) (*audit.Summary, error) {
	a.s.mu.Lock()
	defer a.s.mu.Unlock()
	return audit.Summarize(a.s.audits), nil
}

// fakeOutboxRepo implements contracts.OutboxRepository.
type fakeOutboxRepo struct{ s *fakeStore }

func (o *fakeOutboxRepo) InsertMut(event *contracts.OutboxEvent) *spanner.Mutation {
	o.s.mu.Lock()
	defer o.s.mu.Unlock()
	token := spanner.InsertMap("rate_events", map[string]interface{}{})
	o.s.pendingEvents[token] = event
	return token
}

func (o *fakeOutboxRepo) EnrichEvent(event domain.DomainEvent, payload string) *contracts.OutboxEvent {
	return &contracts.OutboxEvent{
		EventID:     uuid.New().String(),
		EventType:   event.EventType(),
		AggregateID: event.AggregateID(),
		Payload:     payload,
		Status:      "PENDING",
		CreatedAt:   o.s.clk.Now(),
	}
}

func (o *fakeOutboxRepo) ListRecent(_ context.Context, limit int64) ([]*contracts.OutboxEvent, error) {
	o.s.mu.Lock()
	defer o.s.mu.Unlock()
	if limit > int64(len(o.s.events)) {
		limit = int64(len(o.s.events))
	}
	return append([]*contracts.OutboxEvent(nil), o.s.events[:limit]...), nil
}
