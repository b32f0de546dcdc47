// Package matrix assembles the rate grid: the cartesian product of rate
// plans, room types, dates and guest types, with every cell resolved through
// the pricing precedence chain. All primitives are prefetched in one pass so
// per-cell resolution is pure computation fanned out over a bounded worker
// pool.
package matrix

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"cloud.google.com/go/civil"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/light-bringer/rategrid-service/internal/app/rates/contracts"
	"github.com/light-bringer/rategrid-service/internal/app/rates/domain"
)

var (
	// ErrNoRoomTypes is returned when a request has no room type axis.
	ErrNoRoomTypes = errors.New("matrix request needs at least one room type")
	// ErrBadDateRange is returned when the date range is inverted.
	ErrBadDateRange = errors.New("matrix request end date precedes start date")
	// ErrDateRangeTooWide is returned when the range exceeds the cap.
	ErrDateRangeTooWide = errors.New("matrix request date range exceeds maximum")
)

// MaxRangeDays caps a single matrix request. A year of dates across a few
// plans and room types is already tens of thousands of cells.
const MaxRangeDays = 366

// DefaultWorkers bounds cell resolution concurrency when the builder is
// created with a non-positive worker count.
const DefaultWorkers = 8

// Request describes one grid to build.
type Request struct {
	HotelID      string
	RatePlanIDs  []string // empty means all plans of the hotel
	RoomTypeIDs  []string
	From, To     civil.Date
	GuestTypes   []domain.GuestType // empty means adult only
	LengthOfStay int64
	BookingDate  civil.Date
}

// Stats aggregates the built grid for header strips and dashboards.
type Stats struct {
	TotalCells              int64
	EmptyCells              int64
	StopSellCells           int64
	ClosedForArrivalCells   int64
	ClosedForDepartureCells int64
	MinRate                 *domain.Money
	MaxRate                 *domain.Money
	AvgRate                 *domain.Money
}

// Matrix is the built grid. Cells are keyed date, then room type, then rate
// plan, then guest type; combinations without a stored base rate are absent.
type Matrix struct {
	Cells map[string]map[string]map[string]map[domain.GuestType]*domain.RateMatrixCell
	Stats *Stats
}

// Builder prefetches pricing primitives and resolves grids.
type Builder struct {
	source  contracts.MatrixSource
	logger  *zap.Logger
	workers int
}

// NewBuilder creates a Builder resolving at most workers cells concurrently.
func NewBuilder(source contracts.MatrixSource, logger *zap.Logger, workers int) *Builder {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	return &Builder{source: source, logger: logger, workers: workers}
}

// primitives is everything prefetched for one request, indexed for cell
// resolution.
type primitives struct {
	plans      []*domain.RatePlan
	rates      map[string]*domain.RoomRate // "planID|roomTypeID|date"
	tiers      map[string][]*domain.RateTier
	overrides  map[string][]*domain.RateOverride
	rules      []*domain.PricingRule
	components map[string][]*domain.RatePackageComponent
}

// Build resolves the full grid for the request.
func (b *Builder) Build(ctx context.Context, req Request) (*Matrix, error) {
	if len(req.RoomTypeIDs) == 0 {
		return nil, ErrNoRoomTypes
	}
	if req.To.Before(req.From) {
		return nil, ErrBadDateRange
	}
	if req.To.DaysSince(req.From) >= MaxRangeDays {
		return nil, fmt.Errorf("%w: %d days", ErrDateRangeTooWide, req.To.DaysSince(req.From)+1)
	}

	prims, err := b.prefetch(ctx, req)
	if err != nil {
		return nil, err
	}

	guestTypes := req.GuestTypes
	if len(guestTypes) == 0 {
		guestTypes = []domain.GuestType{domain.GuestAdult}
	}

	dates := datesBetween(req.From, req.To)

	matrix := &Matrix{
		Cells: make(map[string]map[string]map[string]map[domain.GuestType]*domain.RateMatrixCell, len(dates)),
		Stats: &Stats{},
	}
	var mu sync.Mutex
	var finals []*domain.Money

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(b.workers)

	for _, date := range dates {
		for _, roomTypeID := range req.RoomTypeIDs {
			for _, plan := range prims.plans {
				date, roomTypeID, plan := date, roomTypeID, plan
				g.Go(func() error {
					if gctx.Err() != nil {
						return gctx.Err()
					}

					cells := b.resolveCell(req, prims, plan, roomTypeID, date, guestTypes)

					mu.Lock()
					defer mu.Unlock()
					matrix.Stats.TotalCells += int64(len(guestTypes))
					if cells == nil {
						matrix.Stats.EmptyCells += int64(len(guestTypes))
						return nil
					}
					for guestType, cell := range cells {
						insertCell(matrix.Cells, date, roomTypeID, plan.ID(), guestType, cell)
						finals = append(finals, cell.FinalRate)
						if cell.StopSell {
							matrix.Stats.StopSellCells++
						}
						if cell.ClosedForArrival {
							matrix.Stats.ClosedForArrivalCells++
						}
						if cell.ClosedForDeparture {
							matrix.Stats.ClosedForDepartureCells++
						}
					}
					return nil
				})
			}
		}
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, rate := range finals {
		if matrix.Stats.MinRate == nil {
			matrix.Stats.MinRate = rate
			matrix.Stats.MaxRate = rate
			continue
		}
		matrix.Stats.MinRate = domain.MinMoney(matrix.Stats.MinRate, rate)
		matrix.Stats.MaxRate = domain.MaxMoney(matrix.Stats.MaxRate, rate)
	}
	matrix.Stats.AvgRate = domain.AverageMoney(finals)

	b.logger.Debug("rate matrix built",
		zap.String("hotel_id", req.HotelID),
		zap.Int("plans", len(prims.plans)),
		zap.Int("room_types", len(req.RoomTypeIDs)),
		zap.Int("dates", len(dates)),
		zap.Int64("total_cells", matrix.Stats.TotalCells),
		zap.Int64("empty_cells", matrix.Stats.EmptyCells),
	)

	return matrix, nil
}

// resolveCell resolves all guest-type variants of one cell. A nil return
// means the cell is empty (no base rate, or the plan is not bookable).
func (b *Builder) resolveCell(
	req Request,
	prims *primitives,
	plan *domain.RatePlan,
	roomTypeID string,
	date civil.Date,
	guestTypes []domain.GuestType,
) map[domain.GuestType]*domain.RateMatrixCell {
	if !plan.IsBookableOn(date) {
		return nil
	}

	baseRate := prims.rates[rateKey(plan.ID(), roomTypeID, date)]

	cells := make(map[domain.GuestType]*domain.RateMatrixCell, len(guestTypes))
	for _, guestType := range guestTypes {
		cell, err := domain.Resolve(domain.ResolveInput{
			Plan:         plan,
			RoomTypeID:   roomTypeID,
			Date:         date,
			GuestType:    guestType,
			LengthOfStay: req.LengthOfStay,
			BookingDate:  req.BookingDate,
			BaseRate:     baseRate,
			Tiers:        prims.tiers[plan.ID()],
			Overrides:    prims.overrides[plan.ID()],
			Rules:        prims.rules,
			Components:   prims.components[plan.ID()],
		})
		if err != nil {
			// ErrNoBaseRate is the only error Resolve returns; the cell
			// stays empty rather than failing the whole grid.
			return nil
		}
		cells[guestType] = cell
	}
	return cells
}

// prefetch loads every primitive the grid needs in one pass.
func (b *Builder) prefetch(ctx context.Context, req Request) (*primitives, error) {
	plans, err := b.source.RatePlans(ctx, req.HotelID, req.RatePlanIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load rate plans: %w", err)
	}

	active := make([]*domain.RatePlan, 0, len(plans))
	planIDs := make([]string, 0, len(plans))
	packagePlanIDs := make([]string, 0)
	for _, plan := range plans {
		if plan.Status() == domain.PlanStatusRetired {
			continue
		}
		active = append(active, plan)
		planIDs = append(planIDs, plan.ID())
		if plan.IsPackage() {
			packagePlanIDs = append(packagePlanIDs, plan.ID())
		}
	}

	prims := &primitives{
		plans:      active,
		rates:      make(map[string]*domain.RoomRate),
		tiers:      make(map[string][]*domain.RateTier),
		overrides:  make(map[string][]*domain.RateOverride),
		components: make(map[string][]*domain.RatePackageComponent),
	}
	if len(active) == 0 {
		return prims, nil
	}

	rates, err := b.source.RoomRates(ctx, planIDs, req.RoomTypeIDs, req.From, req.To)
	if err != nil {
		return nil, fmt.Errorf("failed to load room rates: %w", err)
	}
	for _, rate := range rates {
		prims.rates[rateKey(rate.RatePlanID(), rate.RoomTypeID(), rate.Date())] = rate
	}

	tiers, err := b.source.RateTiers(ctx, planIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load rate tiers: %w", err)
	}
	for _, tier := range tiers {
		prims.tiers[tier.RatePlanID()] = append(prims.tiers[tier.RatePlanID()], tier)
	}

	overrides, err := b.source.RateOverrides(ctx, planIDs, req.From, req.To)
	if err != nil {
		return nil, fmt.Errorf("failed to load rate overrides: %w", err)
	}
	for _, override := range overrides {
		prims.overrides[override.RatePlanID()] = append(prims.overrides[override.RatePlanID()], override)
	}

	prims.rules, err = b.source.ActivePricingRules(ctx, req.HotelID)
	if err != nil {
		return nil, fmt.Errorf("failed to load pricing rules: %w", err)
	}

	if len(packagePlanIDs) > 0 {
		components, err := b.source.PackageComponents(ctx, packagePlanIDs)
		if err != nil {
			return nil, fmt.Errorf("failed to load package components: %w", err)
		}
		for _, component := range components {
			prims.components[component.RatePlanID()] = append(prims.components[component.RatePlanID()], component)
		}
	}

	return prims, nil
}

func insertCell(
	cells map[string]map[string]map[string]map[domain.GuestType]*domain.RateMatrixCell,
	date civil.Date,
	roomTypeID, ratePlanID string,
	guestType domain.GuestType,
	cell *domain.RateMatrixCell,
) {
	dateKey := date.String()
	if cells[dateKey] == nil {
		cells[dateKey] = make(map[string]map[string]map[domain.GuestType]*domain.RateMatrixCell)
	}
	if cells[dateKey][roomTypeID] == nil {
		cells[dateKey][roomTypeID] = make(map[string]map[domain.GuestType]*domain.RateMatrixCell)
	}
	if cells[dateKey][roomTypeID][ratePlanID] == nil {
		cells[dateKey][roomTypeID][ratePlanID] = make(map[domain.GuestType]*domain.RateMatrixCell)
	}
	cells[dateKey][roomTypeID][ratePlanID][guestType] = cell
}

func rateKey(ratePlanID, roomTypeID string, date civil.Date) string {
	return ratePlanID + "|" + roomTypeID + "|" + date.String()
}

func datesBetween(from, to civil.Date) []civil.Date {
	dates := make([]civil.Date, 0, to.DaysSince(from)+1)
	for d := from; !to.Before(d); d = d.AddDays(1) {
		dates = append(dates, d)
	}
	return dates
}
