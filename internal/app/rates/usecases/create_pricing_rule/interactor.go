package create_pricing_rule

import (
	"context"
	"encoding/json"
	"fmt"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"

	"github.com/light-bringer/rategrid-service/internal/app/rates/audit"
	"github.com/light-bringer/rategrid-service/internal/app/rates/contracts"
	"github.com/light-bringer/rategrid-service/internal/app/rates/domain"
	"github.com/light-bringer/rategrid-service/internal/pkg/clock"
	"github.com/light-bringer/rategrid-service/internal/pkg/committer"
)

// Request contains the data needed to create a pricing rule. Exactly one of
// DiscountPercentage, DiscountAmount and PriceAdjustment must be set.
type Request struct {
	HotelID  string
	Name     string
	Active   bool
	Priority int64

	StartDate          *civil.Date
	EndDate            *civil.Date
	MinNights          *int64
	MaxNights          *int64
	AdvanceBookingDays *int64

	DiscountPercentage *domain.Money
	DiscountAmount     *domain.Money
	PriceAdjustment    *domain.Money

	Actor audit.Actor
}

// Interactor handles the create pricing rule use case.
type Interactor struct {
	ruleRepo   contracts.PricingRuleRepository
	auditRepo  contracts.AuditRepository
	outboxRepo contracts.OutboxRepository
	recorder   *audit.Recorder
	applier    committer.Applier
	clock      clock.Clock
}

// NewInteractor creates a new create pricing rule interactor.
func NewInteractor(
	ruleRepo contracts.PricingRuleRepository,
	auditRepo contracts.AuditRepository,
	outboxRepo contracts.OutboxRepository,
	recorder *audit.Recorder,
	applier committer.Applier,
	clk clock.Clock,
) *Interactor {
	return &Interactor{
		ruleRepo:   ruleRepo,
		auditRepo:  auditRepo,
		outboxRepo: outboxRepo,
		recorder:   recorder,
		applier:    applier,
		clock:      clk,
	}
}

// Execute creates the rule and returns its generated ID.
func (i *Interactor) Execute(ctx context.Context, req *Request) (string, error) {
	now := i.clock.Now()
	rule, err := domain.NewPricingRule(
		uuid.New().String(),
		req.HotelID, req.Name,
		req.Active, req.Priority,
		req.StartDate, req.EndDate,
		req.MinNights, req.MaxNights, req.AdvanceBookingDays,
		req.DiscountPercentage, req.DiscountAmount, req.PriceAdjustment,
		now,
	)
	if err != nil {
		return "", err
	}

	record := i.recorder.Record(audit.ActionCreate, rule.ID(), nil, audit.PricingRuleSnapshot(rule), req.Actor)

	event := &domain.PricingRuleCreatedEvent{
		RuleID:    rule.ID(),
		HotelID:   rule.HotelID(),
		Name:      rule.Name(),
		CreatedAt: now,
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return "", fmt.Errorf("failed to serialize event: %w", err)
	}

	commitPlan := committer.NewPlan()

	ruleMut, err := i.ruleRepo.InsertMut(rule)
	if err != nil {
		return "", err
	}
	commitPlan.Add(ruleMut)

	auditMut, err := i.auditRepo.InsertMut(record)
	if err != nil {
		return "", err
	}
	commitPlan.Add(auditMut)
	commitPlan.Add(i.outboxRepo.InsertMut(i.outboxRepo.EnrichEvent(event, string(payload))))

	if err := i.applier.Apply(ctx, commitPlan); err != nil {
		return "", fmt.Errorf("failed to commit transaction: %w", err)
	}
	return rule.ID(), nil
}
