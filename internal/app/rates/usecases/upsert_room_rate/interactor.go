// Package upsert_room_rate implements the single-cell write path: setting a
// nightly rate, availability count and restriction flags for one
// (rate plan, room type, date) cell.
package upsert_room_rate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"cloud.google.com/go/civil"

	"github.com/light-bringer/rategrid-service/internal/app/rates/audit"
	"github.com/light-bringer/rategrid-service/internal/app/rates/contracts"
	"github.com/light-bringer/rategrid-service/internal/app/rates/domain"
	"github.com/light-bringer/rategrid-service/internal/pkg/clock"
	"github.com/light-bringer/rategrid-service/internal/pkg/committer"
)

// Request contains the data needed to write one cell. Nil optional fields
// leave the stored value untouched. ExpectedVersion switches the commit to
// the compare-and-swap path; when nil, last write wins.
type Request struct {
	RatePlanID string
	RoomTypeID string
	Date       civil.Date

	RateAmount         *domain.Money
	AvailabilityCount  *int64
	StopSell           *bool
	ClosedForArrival   *bool
	ClosedForDeparture *bool

	ExpectedVersion *int64
	Actor           audit.Actor
}

// Interactor handles the upsert room rate use case.
type Interactor struct {
	rateRepo   contracts.RoomRateRepository
	planRepo   contracts.RatePlanRepository
	auditRepo  contracts.AuditRepository
	outboxRepo contracts.OutboxRepository
	recorder   *audit.Recorder
	applier    committer.VersionCheckedApplier
	clock      clock.Clock
}

// NewInteractor creates a new upsert room rate interactor.
func NewInteractor(
	rateRepo contracts.RoomRateRepository,
	planRepo contracts.RatePlanRepository,
	auditRepo contracts.AuditRepository,
	outboxRepo contracts.OutboxRepository,
	recorder *audit.Recorder,
	applier committer.VersionCheckedApplier,
	clk clock.Clock,
) *Interactor {
	return &Interactor{
		rateRepo:   rateRepo,
		planRepo:   planRepo,
		auditRepo:  auditRepo,
		outboxRepo: outboxRepo,
		recorder:   recorder,
		applier:    applier,
		clock:      clk,
	}
}

// Execute writes the cell following the Golden Mutation Pattern.
func (i *Interactor) Execute(ctx context.Context, req *Request) error {
	if err := i.validate(req); err != nil {
		return err
	}

	plan, err := i.planRepo.GetByID(ctx, req.RatePlanID)
	if err != nil {
		return err
	}
	if plan.Status() == domain.PlanStatusRetired {
		return domain.ErrPlanRetired
	}

	rate, err := i.rateRepo.Get(ctx, req.RatePlanID, req.RoomTypeID, req.Date)
	action := audit.ActionUpdate
	var prev *audit.Snapshot
	switch {
	case err == nil:
		prev = audit.RoomRateSnapshot(rate)
	case errors.Is(err, domain.ErrRoomRateNotFound):
		if req.RateAmount == nil {
			return domain.ErrNoBaseRate
		}
		rate, err = domain.NewRoomRate(req.RatePlanID, req.RoomTypeID, req.Date, req.RateAmount, i.clock.Now(), i.clock)
		if err != nil {
			return err
		}
		action = audit.ActionCreate
	default:
		return err
	}

	defer rate.ClearEvents()

	if err := i.applyFields(rate, req, action == audit.ActionCreate); err != nil {
		return err
	}

	record := i.recorder.Record(action, rate.EntityID(), prev, audit.RoomRateSnapshot(rate), req.Actor)

	commitPlan := committer.NewPlan()

	rateMut, err := i.rateRepo.UpsertMut(rate)
	if err != nil {
		return err
	}
	commitPlan.Add(rateMut)

	auditMut, err := i.auditRepo.InsertMut(record)
	if err != nil {
		return err
	}
	commitPlan.Add(auditMut)

	for _, event := range rate.DomainEvents() {
		payload, err := json.Marshal(event)
		if err != nil {
			return fmt.Errorf("failed to serialize event: %w", err)
		}
		commitPlan.Add(i.outboxRepo.InsertMut(i.outboxRepo.EnrichEvent(event, string(payload))))
	}

	if req.ExpectedVersion != nil && action == audit.ActionUpdate {
		return i.applier.ApplyWithRateVersionCheck(ctx, req.RatePlanID, req.RoomTypeID, req.Date, *req.ExpectedVersion, commitPlan)
	}
	return i.applier.Apply(ctx, commitPlan)
}

func (i *Interactor) applyFields(rate *domain.RoomRate, req *Request, created bool) error {
	if req.RateAmount != nil && !created {
		if err := rate.SetRateAmount(req.RateAmount); err != nil {
			return err
		}
	}
	if req.AvailabilityCount != nil {
		if err := rate.SetAvailabilityCount(*req.AvailabilityCount); err != nil {
			return err
		}
	}
	if req.StopSell != nil {
		rate.SetStopSell(*req.StopSell)
	}
	if req.ClosedForArrival != nil {
		rate.SetClosedForArrival(*req.ClosedForArrival)
	}
	if req.ClosedForDeparture != nil {
		rate.SetClosedForDeparture(*req.ClosedForDeparture)
	}
	return nil
}

func (i *Interactor) validate(req *Request) error {
	if req.RatePlanID == "" {
		return domain.ErrRatePlanNotFound
	}
	if req.RoomTypeID == "" {
		return domain.ErrEmptyRoomType
	}
	if req.RateAmount != nil && req.RateAmount.IsNegative() {
		return domain.ErrNegativeRateAmount
	}
	if req.Actor.ID == "" {
		return fmt.Errorf("actor is required")
	}
	return nil
}
