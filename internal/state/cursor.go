package state

// CursorProvenance records how the held item left its origin, so it can be
// returned correctly on cancellation.
type CursorProvenance string

const (
	// ProvenanceFullPickup marks a whole stack lifted off a slot.
	ProvenanceFullPickup CursorProvenance = "full_pickup"
	// ProvenanceSingleWithdraw marks units peeled off one at a time.
	ProvenanceSingleWithdraw CursorProvenance = "single_withdraw"
)

// SourceNone marks a held item with no return slot (equipment pickups and
// swap displacements).
const SourceNone = -1

// HeldCursor is the single floating item currently picked up, plus its
// provenance. It exists only while a pickup is in progress.
type HeldCursor struct {
	Item       ItemStack        `json:"item"`
	Source     int              `json:"source"`
	Provenance CursorProvenance `json:"provenance"`
}

// CursorCell is the shared cursor slot on an actor. The menu core is one of
// several writers (a tool-attachment flow also parks items here), so every
// reader must treat the cell contents as authoritative over any cached flag.
type CursorCell struct {
	held *HeldCursor
}

// Get returns a copy of the held cursor and whether one is present.
func (c *CursorCell) Get() (HeldCursor, bool) {
	if c == nil || c.held == nil {
		return HeldCursor{}, false
	}
	return *c.held, true
}

// Set replaces the cell contents.
func (c *CursorCell) Set(cursor HeldCursor) {
	if c == nil {
		return
	}
	held := cursor
	c.held = &held
}

// Clear empties the cell.
func (c *CursorCell) Clear() {
	if c == nil {
		return
	}
	c.held = nil
}

// Quantity returns the held quantity, zero when empty.
func (c *CursorCell) Quantity() int {
	if c == nil || c.held == nil {
		return 0
	}
	return c.held.Item.Quantity
}

// Snapshot returns a detached copy for serialization, nil when empty.
func (c *CursorCell) Snapshot() *HeldCursor {
	if c == nil || c.held == nil {
		return nil
	}
	held := *c.held
	return &held
}
