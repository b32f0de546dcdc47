// Package selection implements the rate grid's cell addressing and selection
// model as pure values. A Selection is immutable: every operation returns a
// new Selection, so the engine is unit-testable without any rendering
// surface and safe to share across goroutines.
package selection

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"cloud.google.com/go/civil"
)

var (
	// ErrUnknownCell is returned when a cell key does not exist in the grid.
	ErrUnknownCell = errors.New("cell key is not part of the displayed grid")
	// ErrNoAnchor is returned when Extend is called on a selection without a range anchor.
	ErrNoAnchor = errors.New("selection has no range anchor")
	// ErrBadCellKey is returned when a serialized cell key cannot be parsed.
	ErrBadCellKey = errors.New("malformed cell key")
	// ErrDuplicateAxisEntry is returned when a grid axis repeats an identifier.
	ErrDuplicateAxisEntry = errors.New("grid axis contains a duplicate identifier")
)

// CellKey addresses one cell of the pricing grid.
type CellKey struct {
	RatePlanID string
	RoomTypeID string
	Date       civil.Date
}

// String serializes the key as "ratePlanID|roomTypeID|YYYY-MM-DD".
func (k CellKey) String() string {
	return fmt.Sprintf("%s|%s|%s", k.RatePlanID, k.RoomTypeID, k.Date.String())
}

// ParseCellKey parses the serialized form produced by String.
func ParseCellKey(s string) (CellKey, error) {
	parts := strings.Split(s, "|")
	if len(parts) != 3 || parts[0] == "" || parts[1] == "" {
		return CellKey{}, fmt.Errorf("%w: %q", ErrBadCellKey, s)
	}
	date, err := civil.ParseDate(parts[2])
	if err != nil {
		return CellKey{}, fmt.Errorf("%w: %q", ErrBadCellKey, s)
	}
	return CellKey{RatePlanID: parts[0], RoomTypeID: parts[1], Date: date}, nil
}

// Grid is the currently displayed cell space: rate plans and room types in
// display order (not identity order) plus the visible date sequence.
// Re-ordering the grid changes what "between" means for range selection.
type Grid struct {
	planOrder []string
	roomOrder []string
	dates     []civil.Date

	planIdx map[string]int
	roomIdx map[string]int
	dateIdx map[civil.Date]int
}

// NewGrid builds a Grid from the displayed axis orders.
func NewGrid(planOrder, roomOrder []string, dates []civil.Date) (*Grid, error) {
	g := &Grid{
		planOrder: append([]string(nil), planOrder...),
		roomOrder: append([]string(nil), roomOrder...),
		dates:     append([]civil.Date(nil), dates...),
		planIdx:   make(map[string]int, len(planOrder)),
		roomIdx:   make(map[string]int, len(roomOrder)),
		dateIdx:   make(map[civil.Date]int, len(dates)),
	}

	for i, id := range g.planOrder {
		if _, dup := g.planIdx[id]; dup {
			return nil, fmt.Errorf("%w: rate plan %s", ErrDuplicateAxisEntry, id)
		}
		g.planIdx[id] = i
	}
	for i, id := range g.roomOrder {
		if _, dup := g.roomIdx[id]; dup {
			return nil, fmt.Errorf("%w: room type %s", ErrDuplicateAxisEntry, id)
		}
		g.roomIdx[id] = i
	}
	for i, d := range g.dates {
		if _, dup := g.dateIdx[d]; dup {
			return nil, fmt.Errorf("%w: date %s", ErrDuplicateAxisEntry, d)
		}
		g.dateIdx[d] = i
	}

	return g, nil
}

// Contains reports whether the key addresses a cell of this grid.
func (g *Grid) Contains(key CellKey) bool {
	_, okPlan := g.planIdx[key.RatePlanID]
	_, okRoom := g.roomIdx[key.RoomTypeID]
	_, okDate := g.dateIdx[key.Date]
	return okPlan && okRoom && okDate
}

// RatePlanOrder returns the displayed rate plan order.
func (g *Grid) RatePlanOrder() []string {
	return append([]string(nil), g.planOrder...)
}

// RoomTypeOrder returns the displayed room type order.
func (g *Grid) RoomTypeOrder() []string {
	return append([]string(nil), g.roomOrder...)
}

// Dates returns the visible date sequence.
func (g *Grid) Dates() []civil.Date {
	return append([]civil.Date(nil), g.dates...)
}

// Selection is an immutable set of selected cell keys plus the anchor of the
// last range selection. A selection is rectangular only directly after
// Extend; Toggle can produce arbitrary subsets.
type Selection struct {
	keys   map[CellKey]struct{}
	anchor *CellKey
}

// Empty returns an empty selection.
func Empty() Selection {
	return Selection{keys: map[CellKey]struct{}{}}
}

// Start resets the selection to the singleton {key} and records it as the
// range anchor.
func (s Selection) Start(g *Grid, key CellKey) (Selection, error) {
	if !g.Contains(key) {
		return s, fmt.Errorf("%w: %s", ErrUnknownCell, key)
	}
	anchor := key
	return Selection{
		keys:   map[CellKey]struct{}{key: {}},
		anchor: &anchor,
	}, nil
}

// Extend replaces the selection with the axis-aligned rectangular hull
// between the anchor and target: the index ranges of rate plans and room
// types in the *displayed* order, and the inclusive min/max date range.
func (s Selection) Extend(g *Grid, target CellKey) (Selection, error) {
	if s.anchor == nil {
		return s, ErrNoAnchor
	}
	return Rectangle(g, *s.anchor, target)
}

// Rectangle computes the rectangular hull between two cells of the grid.
// The anchor is preserved for further extensions.
func Rectangle(g *Grid, anchor, target CellKey) (Selection, error) {
	if !g.Contains(anchor) {
		return Empty(), fmt.Errorf("%w: %s", ErrUnknownCell, anchor)
	}
	if !g.Contains(target) {
		return Empty(), fmt.Errorf("%w: %s", ErrUnknownCell, target)
	}

	planLo, planHi := ordered(g.planIdx[anchor.RatePlanID], g.planIdx[target.RatePlanID])
	roomLo, roomHi := ordered(g.roomIdx[anchor.RoomTypeID], g.roomIdx[target.RoomTypeID])
	dateLo, dateHi := ordered(g.dateIdx[anchor.Date], g.dateIdx[target.Date])

	keys := make(map[CellKey]struct{})
	for p := planLo; p <= planHi; p++ {
		for r := roomLo; r <= roomHi; r++ {
			for d := dateLo; d <= dateHi; d++ {
				keys[CellKey{
					RatePlanID: g.planOrder[p],
					RoomTypeID: g.roomOrder[r],
					Date:       g.dates[d],
				}] = struct{}{}
			}
		}
	}

	anchorCopy := anchor
	return Selection{keys: keys, anchor: &anchorCopy}, nil
}

// Toggle adds or removes a single key independent of range selection, for
// non-contiguous multi-select. The anchor is unaffected.
func (s Selection) Toggle(g *Grid, key CellKey) (Selection, error) {
	if !g.Contains(key) {
		return s, fmt.Errorf("%w: %s", ErrUnknownCell, key)
	}

	keys := make(map[CellKey]struct{}, len(s.keys)+1)
	for k := range s.keys {
		keys[k] = struct{}{}
	}
	if _, selected := keys[key]; selected {
		delete(keys, key)
	} else {
		keys[key] = struct{}{}
	}

	return Selection{keys: keys, anchor: s.anchor}, nil
}

// Clear returns an empty selection.
func (s Selection) Clear() Selection {
	return Empty()
}

// Contains reports whether a key is selected.
func (s Selection) Contains(key CellKey) bool {
	_, ok := s.keys[key]
	return ok
}

// Size returns the number of selected cells.
func (s Selection) Size() int {
	return len(s.keys)
}

// Anchor returns the range anchor, or nil when none is set.
func (s Selection) Anchor() *CellKey {
	if s.anchor == nil {
		return nil
	}
	anchor := *s.anchor
	return &anchor
}

// Keys returns the selected cell keys in a deterministic order
// (rate plan, then room type, then date). Bulk operations iterate this
// order; cells are independent keys with no cross-cell ordering invariant.
func (s Selection) Keys() []CellKey {
	keys := make([]CellKey, 0, len(s.keys))
	for k := range s.keys {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].RatePlanID != keys[j].RatePlanID {
			return keys[i].RatePlanID < keys[j].RatePlanID
		}
		if keys[i].RoomTypeID != keys[j].RoomTypeID {
			return keys[i].RoomTypeID < keys[j].RoomTypeID
		}
		return keys[i].Date.Before(keys[j].Date)
	})
	return keys
}

func ordered(a, b int) (int, int) {
	if a <= b {
		return a, b
	}
	return b, a
}
