package rollback_audit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"cloud.google.com/go/civil"

	"github.com/light-bringer/rategrid-service/internal/app/rates/audit"
	"github.com/light-bringer/rategrid-service/internal/app/rates/contracts"
	"github.com/light-bringer/rategrid-service/internal/app/rates/domain"
	"github.com/light-bringer/rategrid-service/internal/pkg/clock"
	"github.com/light-bringer/rategrid-service/internal/pkg/committer"
)

var (
	// ErrNoPreviousState means the record describes a creation, so there is
	// no earlier state to restore.
	ErrNoPreviousState = errors.New("audit record has no previous state to restore")

	// ErrUnsupportedEntity means the audited entity type cannot be rolled
	// back through this use case.
	ErrUnsupportedEntity = errors.New("rollback is only supported for room rates")
)

// Request identifies the audit record whose previous state should be
// restored.
type Request struct {
	AuditID string
	Actor   audit.Actor
}

// Interactor handles the rollback use case. A rollback never rewrites
// history: it re-applies the record's previous snapshot as a fresh write
// through the normal mutation path, producing its own ROLLBACK audit entry.
type Interactor struct {
	auditRepo  contracts.AuditRepository
	rateRepo   contracts.RoomRateRepository
	outboxRepo contracts.OutboxRepository
	recorder   *audit.Recorder
	applier    committer.Applier
	clock      clock.Clock
}

// NewInteractor creates a new rollback interactor.
func NewInteractor(
	auditRepo contracts.AuditRepository,
	rateRepo contracts.RoomRateRepository,
	outboxRepo contracts.OutboxRepository,
	recorder *audit.Recorder,
	applier committer.Applier,
	clk clock.Clock,
) *Interactor {
	return &Interactor{
		auditRepo:  auditRepo,
		rateRepo:   rateRepo,
		outboxRepo: outboxRepo,
		recorder:   recorder,
		applier:    applier,
		clock:      clk,
	}
}

// Execute restores the previous state captured by the audit record and
// returns the ID of the new ROLLBACK audit entry.
func (i *Interactor) Execute(ctx context.Context, req *Request) (string, error) {
	source, err := i.auditRepo.GetByID(ctx, req.AuditID)
	if err != nil {
		return "", err
	}
	if source.EntityType != audit.EntityRoomRate {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedEntity, source.EntityType)
	}
	if source.Previous == nil {
		return "", ErrNoPreviousState
	}

	planID, roomID, date, err := parseCellID(source.EntityID)
	if err != nil {
		return "", err
	}

	rate, prev, err := i.restoredRate(ctx, planID, roomID, date, source.Previous)
	if err != nil {
		return "", err
	}
	defer rate.ClearEvents()

	record := i.recorder.Record(audit.ActionRollback, source.EntityID, prev, audit.RoomRateSnapshot(rate), req.Actor)

	commitPlan := committer.NewPlan()

	rateMut, err := i.rateRepo.UpsertMut(rate)
	if err != nil {
		return "", err
	}
	commitPlan.Add(rateMut)

	auditMut, err := i.auditRepo.InsertMut(record)
	if err != nil {
		return "", err
	}
	commitPlan.Add(auditMut)

	for _, event := range rate.DomainEvents() {
		payload, err := json.Marshal(event)
		if err != nil {
			return "", fmt.Errorf("failed to serialize event: %w", err)
		}
		commitPlan.Add(i.outboxRepo.InsertMut(i.outboxRepo.EnrichEvent(event, string(payload))))
	}

	if err := i.applier.Apply(ctx, commitPlan); err != nil {
		return "", fmt.Errorf("failed to commit transaction: %w", err)
	}
	return record.AuditID, nil
}

// restoredRate loads the current cell and rewrites it to the snapshot's
// state, or recreates the cell when it was deleted since. The second return
// is the cell's state before the rollback, nil when the cell was absent.
func (i *Interactor) restoredRate(ctx context.Context, planID, roomID string, date civil.Date, snap *audit.Snapshot) (*domain.RoomRate, *audit.Snapshot, error) {
	amount, err := domain.NewMoneyFromString(snap.StringField("rateAmount"))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse snapshot rate amount: %w", err)
	}

	var prev *audit.Snapshot
	rate, err := i.rateRepo.Get(ctx, planID, roomID, date)
	if errors.Is(err, domain.ErrRoomRateNotFound) {
		rate, err = domain.NewRoomRate(planID, roomID, date, amount, i.clock.Now(), i.clock)
		if err != nil {
			return nil, nil, err
		}
	} else if err != nil {
		return nil, nil, err
	} else {
		prev = audit.RoomRateSnapshot(rate)
		if err := rate.SetRateAmount(amount); err != nil {
			return nil, nil, err
		}
	}

	if err := rate.SetAvailabilityCount(snap.Int64Field("availabilityCount")); err != nil {
		return nil, nil, err
	}
	rate.SetStopSell(snap.BoolField("stopSell"))
	rate.SetClosedForArrival(snap.BoolField("closedForArrival"))
	rate.SetClosedForDeparture(snap.BoolField("closedForDeparture"))
	return rate, prev, nil
}

// parseCellID splits a "plan|room|date" room rate entity ID.
func parseCellID(entityID string) (string, string, civil.Date, error) {
	parts := strings.Split(entityID, "|")
	if len(parts) != 3 {
		return "", "", civil.Date{}, fmt.Errorf("malformed room rate entity id: %q", entityID)
	}
	date, err := civil.ParseDate(parts[2])
	if err != nil {
		return "", "", civil.Date{}, fmt.Errorf("malformed room rate entity id date: %w", err)
	}
	return parts[0], parts[1], date, nil
}
