package domain

import (
	"sort"
	"time"
)

// RateTier is a length-of-stay-conditioned adjustment belonging to one rate
// plan: stays of [minNights, maxNights) nights get the tier's adjustment.
// Tiers are tested in ascending priority order and the first match wins;
// tiers are never cumulative.
type RateTier struct {
	id         string
	ratePlanID string
	minNights  int64
	maxNights  *int64 // nil means unbounded
	adjustment *Adjustment
	priority   int64
	createdAt  time.Time
	updatedAt  time.Time
}

// NewRateTier creates a validated RateTier.
func NewRateTier(
	id, ratePlanID string,
	minNights int64,
	maxNights *int64,
	adjustment *Adjustment,
	priority int64,
	now time.Time,
) (*RateTier, error) {
	if minNights < 1 {
		return nil, ErrInvalidMinNights
	}
	if maxNights != nil && *maxNights <= minNights {
		return nil, ErrInvalidTierRange
	}
	if priority < 0 {
		return nil, ErrNegativePriority
	}
	if adjustment == nil {
		return nil, ErrMissingAdjustmentValue
	}

	return &RateTier{
		id:         id,
		ratePlanID: ratePlanID,
		minNights:  minNights,
		maxNights:  maxNights,
		adjustment: adjustment,
		priority:   priority,
		createdAt:  now,
		updatedAt:  now,
	}, nil
}

// ReconstructRateTier reconstitutes a RateTier from the database.
func ReconstructRateTier(
	id, ratePlanID string,
	minNights int64,
	maxNights *int64,
	adjustment *Adjustment,
	priority int64,
	createdAt, updatedAt time.Time,
) *RateTier {
	return &RateTier{
		id:         id,
		ratePlanID: ratePlanID,
		minNights:  minNights,
		maxNights:  maxNights,
		adjustment: adjustment,
		priority:   priority,
		createdAt:  createdAt,
		updatedAt:  updatedAt,
	}
}

// Getters
func (t *RateTier) ID() string              { return t.id }
func (t *RateTier) RatePlanID() string      { return t.ratePlanID }
func (t *RateTier) MinNights() int64        { return t.minNights }
func (t *RateTier) MaxNights() *int64       { return t.maxNights }
func (t *RateTier) Adjustment() *Adjustment { return t.adjustment }
func (t *RateTier) Priority() int64         { return t.priority }
func (t *RateTier) CreatedAt() time.Time    { return t.createdAt }
func (t *RateTier) UpdatedAt() time.Time    { return t.updatedAt }

// Matches reports whether a stay length falls inside [minNights, maxNights).
func (t *RateTier) Matches(lengthOfStay int64) bool {
	if lengthOfStay < t.minNights {
		return false
	}
	if t.maxNights != nil && lengthOfStay >= *t.maxNights {
		return false
	}
	return true
}

// SelectTier returns the first tier matching the stay length when tiers are
// ordered by ascending priority, or nil when none match.
func SelectTier(tiers []*RateTier, lengthOfStay int64) *RateTier {
	ordered := make([]*RateTier, len(tiers))
	copy(ordered, tiers)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].priority < ordered[j].priority
	})

	for _, tier := range ordered {
		if tier.Matches(lengthOfStay) {
			return tier
		}
	}
	return nil
}
