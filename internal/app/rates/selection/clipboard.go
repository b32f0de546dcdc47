package selection

import (
	"github.com/light-bringer/rategrid-service/internal/app/rates/domain"
)

// CopiedCell is one clipboard entry: the source key plus the values a paste
// carries over.
type CopiedCell struct {
	Key               CellKey
	RateAmount        *domain.Money
	AvailabilityCount int64
	StopSell          bool
}

// Clipboard holds cells captured by a copy operation, in the source
// selection's iteration order. Paste targets map onto the clipboard by
// positional correspondence, cycling when the clipboard is smaller than the
// target selection.
type Clipboard struct {
	cells []CopiedCell
}

// NewClipboard captures the given cells.
func NewClipboard(cells []CopiedCell) *Clipboard {
	copied := make([]CopiedCell, len(cells))
	copy(copied, cells)
	return &Clipboard{cells: copied}
}

// IsEmpty reports whether nothing has been copied.
func (c *Clipboard) IsEmpty() bool {
	return c == nil || len(c.cells) == 0
}

// Size returns the number of copied cells.
func (c *Clipboard) Size() int {
	if c == nil {
		return 0
	}
	return len(c.cells)
}

// Cells returns a copy of the clipboard contents.
func (c *Clipboard) Cells() []CopiedCell {
	if c == nil {
		return nil
	}
	cells := make([]CopiedCell, len(c.cells))
	copy(cells, c.cells)
	return cells
}

// SourceFor returns the clipboard entry for the i-th paste target:
// cells[i % size]. Fewer sources than targets is the expected case, not an
// error.
func (c *Clipboard) SourceFor(targetIndex int) CopiedCell {
	return c.cells[targetIndex%len(c.cells)]
}
