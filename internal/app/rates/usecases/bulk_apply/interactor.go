// Package bulk_apply implements the grid's bulk mutation path: one pricing
// operation applied across an arbitrary set of selected cells.
//
// Each cell is its own unit of atomicity: the room-rate write, its audit
// record and its outbox event commit in one plan per cell. A failing cell
// never rolls back its neighbors, and cancellation stops before the next
// cell, leaving already-committed cells in place.
package bulk_apply

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/light-bringer/rategrid-service/internal/app/rates/audit"
	"github.com/light-bringer/rategrid-service/internal/app/rates/contracts"
	"github.com/light-bringer/rategrid-service/internal/app/rates/domain"
	"github.com/light-bringer/rategrid-service/internal/app/rates/selection"
	"github.com/light-bringer/rategrid-service/internal/pkg/clock"
	"github.com/light-bringer/rategrid-service/internal/pkg/committer"
)

// OpKind is the bulk operation vocabulary. Set and copy are idempotent
// (re-applying yields the same stored state); the four delta operations
// compound on re-application.
type OpKind string

const (
	OpSet             OpKind = "SET"
	OpCopyFrom        OpKind = "COPY_FROM"
	OpIncreasePercent OpKind = "INCREASE_PERCENT"
	OpDecreasePercent OpKind = "DECREASE_PERCENT"
	OpIncreaseFixed   OpKind = "INCREASE_FIXED"
	OpDecreaseFixed   OpKind = "DECREASE_FIXED"
)

var (
	// ErrNoTargets is returned when the request selects no cells.
	ErrNoTargets = errors.New("bulk apply needs at least one target cell")
	// ErrMissingAmount is returned when a value-carrying operation has no amount.
	ErrMissingAmount = errors.New("bulk apply operation needs an amount")
	// ErrEmptyClipboard is returned for a paste with nothing copied.
	ErrEmptyClipboard = errors.New("nothing copied to paste")
	// ErrUnknownOperation is returned for an unrecognized operation kind.
	ErrUnknownOperation = errors.New("unknown bulk operation")
)

// Request describes one bulk mutation batch. Targets must be in a
// deterministic order (Selection.Keys provides one); for COPY_FROM the i-th
// target is paired with clipboard entry i modulo the clipboard size.
type Request struct {
	Kind      OpKind
	Targets   []selection.CellKey
	Amount    *domain.Money
	Clipboard *selection.Clipboard
	Actor     audit.Actor

	// Parallel fans cells out over a bounded worker pool. Per-cell isolation
	// semantics are identical; only completion order differs.
	Parallel bool
	Workers  int

	// SingleAuditRecord replaces the per-cell CREATE/UPDATE audit records
	// with one BULK_UPDATE record summarizing the whole batch.
	SingleAuditRecord bool
}

// CellError records one failed cell.
type CellError struct {
	Key selection.CellKey
	Err error
}

// Result reports the batch outcome. Succeeded + Failed can be less than
// len(Targets) when the batch was canceled mid-way.
type Result struct {
	OperationID string
	Succeeded   int
	Failed      int
	Canceled    bool
	Errors      []CellError
}

// Interactor handles the bulk apply use case.
type Interactor struct {
	rateRepo   contracts.RoomRateRepository
	auditRepo  contracts.AuditRepository
	outboxRepo contracts.OutboxRepository
	recorder   *audit.Recorder
	applier    committer.Applier
	clock      clock.Clock
	logger     *zap.Logger
}

// NewInteractor creates a new bulk apply interactor.
func NewInteractor(
	rateRepo contracts.RoomRateRepository,
	auditRepo contracts.AuditRepository,
	outboxRepo contracts.OutboxRepository,
	recorder *audit.Recorder,
	applier committer.Applier,
	clk clock.Clock,
	logger *zap.Logger,
) *Interactor {
	return &Interactor{
		rateRepo:   rateRepo,
		auditRepo:  auditRepo,
		outboxRepo: outboxRepo,
		recorder:   recorder,
		applier:    applier,
		clock:      clk,
		logger:     logger,
	}
}

// Execute applies the operation to every target cell.
func (i *Interactor) Execute(ctx context.Context, req *Request) (*Result, error) {
	if err := i.validate(req); err != nil {
		return nil, err
	}

	result := &Result{OperationID: uuid.New().String()}

	if req.Parallel {
		i.executeParallel(ctx, req, result)
	} else {
		i.executeSequential(ctx, req, result)
	}

	i.emitCompletion(ctx, result)

	i.logger.Info("bulk apply finished",
		zap.String("operation_id", result.OperationID),
		zap.String("kind", string(req.Kind)),
		zap.Int("targets", len(req.Targets)),
		zap.Int("succeeded", result.Succeeded),
		zap.Int("failed", result.Failed),
		zap.Bool("canceled", result.Canceled),
	)

	if req.SingleAuditRecord {
		// The committed cells stand either way; a failed batch record is an
		// audit integrity failure the caller has to see.
		if err := i.recordBatch(ctx, req, result); err != nil {
			return result, fmt.Errorf("failed to record batch audit: %w", err)
		}
	}

	return result, nil
}

// recordBatch writes the single wrapping BULK_UPDATE record for a batch run
// with SingleAuditRecord. Keyed by the operation ID rather than any one cell.
func (i *Interactor) recordBatch(ctx context.Context, req *Request, result *Result) error {
	summary := audit.NewSnapshot(audit.EntityBulkOperation, map[string]interface{}{
		"operation": string(req.Kind),
		"targets":   int64(len(req.Targets)),
		"succeeded": int64(result.Succeeded),
		"failed":    int64(result.Failed),
	})
	record := i.recorder.Record(audit.ActionBulkUpdate, result.OperationID, nil, summary, req.Actor)

	auditMut, err := i.auditRepo.InsertMut(record)
	if err != nil {
		return err
	}

	plan := committer.NewPlan()
	plan.Add(auditMut)
	return i.applier.Apply(ctx, plan)
}

func (i *Interactor) executeSequential(ctx context.Context, req *Request, result *Result) {
	for idx, key := range req.Targets {
		if ctx.Err() != nil {
			result.Canceled = true
			return
		}
		i.recordOutcome(result, key, i.applyCell(ctx, req, idx, key))
	}
}

func (i *Interactor) executeParallel(ctx context.Context, req *Request, result *Result) {
	workers := req.Workers
	if workers <= 0 {
		workers = 4
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for idx, key := range req.Targets {
		idx, key := idx, key
		g.Go(func() error {
			if gctx.Err() != nil {
				mu.Lock()
				result.Canceled = true
				mu.Unlock()
				return nil
			}
			err := i.applyCell(gctx, req, idx, key)
			mu.Lock()
			i.recordOutcome(result, key, err)
			mu.Unlock()
			return nil
		})
	}

	// Workers never return errors; per-cell failures are part of the result.
	_ = g.Wait()
}

func (i *Interactor) recordOutcome(result *Result, key selection.CellKey, err error) {
	if err == nil {
		result.Succeeded++
		return
	}
	result.Failed++
	result.Errors = append(result.Errors, CellError{Key: key, Err: err})
	i.logger.Warn("bulk apply cell failed",
		zap.String("cell", key.String()),
		zap.Error(err),
	)
}

// applyCell mutates one cell and commits its plan. targetIndex drives the
// clipboard pairing for COPY_FROM.
func (i *Interactor) applyCell(ctx context.Context, req *Request, targetIndex int, key selection.CellKey) error {
	rate, err := i.rateRepo.Get(ctx, key.RatePlanID, key.RoomTypeID, key.Date)

	var prev *audit.Snapshot
	switch {
	case err == nil:
		prev = audit.RoomRateSnapshot(rate)
	case errors.Is(err, domain.ErrRoomRateNotFound):
		// Missing cells are created: SET and COPY_FROM write their value
		// directly, delta operations adjust a current amount of zero.
		rate = nil
	default:
		return err
	}

	var source *selection.CopiedCell
	if req.Kind == OpCopyFrom {
		src := req.Clipboard.SourceFor(targetIndex)
		source = &src
	}

	if rate == nil {
		rate, err = i.createCell(req, key, source)
	} else {
		err = i.mutateCell(req, rate, source)
	}
	if err != nil {
		return err
	}
	defer rate.ClearEvents()

	plan := committer.NewPlan()

	rateMut, err := i.rateRepo.UpsertMut(rate)
	if err != nil {
		return err
	}
	plan.Add(rateMut)

	if !req.SingleAuditRecord {
		action := audit.ActionUpdate
		if prev == nil {
			action = audit.ActionCreate
		}
		record := i.recorder.Record(action, rate.EntityID(), prev, audit.RoomRateSnapshot(rate), req.Actor)

		auditMut, err := i.auditRepo.InsertMut(record)
		if err != nil {
			return err
		}
		plan.Add(auditMut)
	}

	for _, event := range rate.DomainEvents() {
		payload, err := json.Marshal(event)
		if err != nil {
			return fmt.Errorf("failed to serialize event: %w", err)
		}
		plan.Add(i.outboxRepo.InsertMut(i.outboxRepo.EnrichEvent(event, string(payload))))
	}

	if err := i.applier.Apply(ctx, plan); err != nil {
		return fmt.Errorf("failed to commit cell: %w", err)
	}
	return nil
}

func (i *Interactor) createCell(req *Request, key selection.CellKey, source *selection.CopiedCell) (*domain.RoomRate, error) {
	amount := req.Amount
	switch {
	case source != nil:
		amount = source.RateAmount
	case req.Kind != OpSet:
		// Delta over an empty cell starts from zero, so an increase seeds the
		// cell and a decrease clamps to zero.
		adjustment, err := i.adjustmentFor(req)
		if err != nil {
			return nil, err
		}
		amount = adjustment.ApplyTo(domain.Zero()).ClampZero()
	}

	rate, err := domain.NewRoomRate(key.RatePlanID, key.RoomTypeID, key.Date, amount, i.clock.Now(), i.clock)
	if err != nil {
		return nil, err
	}

	if source != nil {
		if err := rate.SetAvailabilityCount(source.AvailabilityCount); err != nil {
			return nil, err
		}
		rate.SetStopSell(source.StopSell)
	}
	return rate, nil
}

func (i *Interactor) mutateCell(req *Request, rate *domain.RoomRate, source *selection.CopiedCell) error {
	if source != nil {
		if err := rate.SetRateAmount(source.RateAmount); err != nil {
			return err
		}
		if err := rate.SetAvailabilityCount(source.AvailabilityCount); err != nil {
			return err
		}
		rate.SetStopSell(source.StopSell)
		return nil
	}

	adjustment, err := i.adjustmentFor(req)
	if err != nil {
		return err
	}

	// Deltas that would push the rate below zero clamp to zero.
	return rate.SetRateAmount(adjustment.ApplyTo(rate.RateAmount()).ClampZero())
}

// adjustmentFor maps the operation kind onto the domain adjustment
// vocabulary shared with tiers and overrides.
func (i *Interactor) adjustmentFor(req *Request) (*domain.Adjustment, error) {
	var adjType domain.AdjustmentType
	switch req.Kind {
	case OpSet:
		adjType = domain.AdjustSetRate
	case OpIncreasePercent:
		adjType = domain.AdjustPercentageIncrease
	case OpDecreasePercent:
		adjType = domain.AdjustPercentageDecrease
	case OpIncreaseFixed:
		adjType = domain.AdjustFixedIncrease
	case OpDecreaseFixed:
		adjType = domain.AdjustFixedDecrease
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownOperation, req.Kind)
	}
	return domain.NewAdjustment(adjType, req.Amount)
}

// emitCompletion writes the batch summary event in its own plan. The batch
// result stands regardless; a failed summary write is only logged.
func (i *Interactor) emitCompletion(ctx context.Context, result *Result) {
	event := &domain.BulkApplyCompletedEvent{
		OperationID: result.OperationID,
		Succeeded:   result.Succeeded,
		Failed:      result.Failed,
		CompletedAt: i.clock.Now(),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		i.logger.Warn("failed to serialize bulk completion event", zap.Error(err))
		return
	}

	plan := committer.NewPlan()
	plan.Add(i.outboxRepo.InsertMut(i.outboxRepo.EnrichEvent(event, string(payload))))
	if err := i.applier.Apply(ctx, plan); err != nil {
		i.logger.Warn("failed to record bulk completion event",
			zap.String("operation_id", result.OperationID),
			zap.Error(err),
		)
	}
}

func (i *Interactor) validate(req *Request) error {
	if len(req.Targets) == 0 {
		return ErrNoTargets
	}

	switch req.Kind {
	case OpCopyFrom:
		if req.Clipboard.IsEmpty() {
			return ErrEmptyClipboard
		}
	case OpSet:
		if req.Amount == nil {
			return ErrMissingAmount
		}
		if req.Amount.IsNegative() {
			return domain.ErrNegativeRateAmount
		}
	case OpIncreasePercent, OpDecreasePercent, OpIncreaseFixed, OpDecreaseFixed:
		if req.Amount == nil {
			return ErrMissingAmount
		}
	default:
		return fmt.Errorf("%w: %s", ErrUnknownOperation, req.Kind)
	}
	return nil
}
