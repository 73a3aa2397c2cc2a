package main

import (
	"math"

	"pick-and-place/server/internal/state"
)

// RegionKind classifies an addressable menu target.
type RegionKind string

const (
	RegionInventory RegionKind = "inventory"
	RegionEquipment RegionKind = "equipment"
	RegionTrash     RegionKind = "trash"
	RegionSort      RegionKind = "sort"
	RegionDropZone  RegionKind = "drop_zone"
)

// RegionID addresses a region inside a registry. Identity order matters:
// injection tie-breaks resolve to the lowest id.
type RegionID int

// RegionNone marks the absence of a region (no focus, no neighbour).
const RegionNone RegionID = -1

// Well-known region ids. Inventory slots occupy [0, inventorySlots) and
// equipment slots follow from regionEquipmentBase in canonical kind order.
const (
	regionEquipmentBase RegionID = 100
	RegionIDTrash       RegionID = 200
	RegionIDSort        RegionID = 201
	RegionIDDropZone    RegionID = 202
)

// Region is one addressable target: an inventory index, an equipment slot,
// or a pure-action button. Pure-action regions never contain an item.
type Region struct {
	ID        RegionID   `json:"id"`
	Kind      RegionKind `json:"kind"`
	SlotIndex int        `json:"slotIndex,omitempty"`
	EquipKind EquipKind  `json:"equipKind,omitempty"`

	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`

	// Navigation graph for pad focus movement.
	Left  RegionID `json:"left"`
	Right RegionID `json:"right"`
	Up    RegionID `json:"up"`
	Down  RegionID `json:"down"`
}

func (r *Region) centerY() float64 {
	if r == nil {
		return 0
	}
	return r.Y + r.H/2
}

// RegionRegistry owns the addressable regions of one menu session and which
// of them currently has focus.
type RegionRegistry struct {
	regions map[RegionID]*Region
	order   []RegionID
	focused RegionID
}

// NewRegionRegistry returns an empty registry with no focus.
func NewRegionRegistry() *RegionRegistry {
	return &RegionRegistry{
		regions: make(map[RegionID]*Region),
		focused: RegionNone,
	}
}

// Add inserts a region, replacing nothing: adding an existing id is a no-op
// so callers may re-run layout code safely.
func (rr *RegionRegistry) Add(region Region) {
	if rr == nil {
		return
	}
	if _, exists := rr.regions[region.ID]; exists {
		return
	}
	stored := region
	rr.regions[region.ID] = &stored
	rr.order = append(rr.order, region.ID)
}

// Get returns the region with the given id.
func (rr *RegionRegistry) Get(id RegionID) (*Region, bool) {
	if rr == nil {
		return nil, false
	}
	region, ok := rr.regions[id]
	return region, ok
}

// Focused returns the currently focused region, if any.
func (rr *RegionRegistry) Focused() (*Region, bool) {
	if rr == nil || rr.focused == RegionNone {
		return nil, false
	}
	return rr.Get(rr.focused)
}

// FocusedID returns the focused region id, RegionNone when unfocused.
func (rr *RegionRegistry) FocusedID() RegionID {
	if rr == nil {
		return RegionNone
	}
	return rr.focused
}

// SetFocus moves focus to the given region. Unknown ids clear focus, which
// matches the host engine reporting a snap point outside the menu.
func (rr *RegionRegistry) SetFocus(id RegionID) {
	if rr == nil {
		return
	}
	if _, ok := rr.regions[id]; !ok {
		rr.focused = RegionNone
		return
	}
	rr.focused = id
}

// Regions returns ids in insertion order.
func (rr *RegionRegistry) Regions() []RegionID {
	if rr == nil {
		return nil
	}
	ids := make([]RegionID, len(rr.order))
	copy(ids, rr.order)
	return ids
}

// Count returns the number of registered regions.
func (rr *RegionRegistry) Count() int {
	if rr == nil {
		return 0
	}
	return len(rr.regions)
}

const (
	menuSlotSize     = 64.0
	menuSlotsPerRow  = 12
	menuInventoryX   = 32.0
	menuInventoryY   = 96.0
	menuEquipmentX   = 860.0
	menuEquipmentY   = 96.0
	menuActionX      = 860.0
	menuActionY      = 520.0
	menuActionGap    = 72.0
	menuDropZoneSlip = 8.0
)

// buildMenuRegions lays out the standard inventory page: an inventory grid,
// the equipment column, and the trash/sort buttons. The drop zone is absent
// on purpose; InjectDropZone patches it in.
func buildMenuRegions(inventorySlots int) *RegionRegistry {
	rr := NewRegionRegistry()

	for idx := 0; idx < inventorySlots; idx++ {
		row := idx / menuSlotsPerRow
		col := idx % menuSlotsPerRow
		region := Region{
			ID:        RegionID(idx),
			Kind:      RegionInventory,
			SlotIndex: idx,
			X:         menuInventoryX + float64(col)*menuSlotSize,
			Y:         menuInventoryY + float64(row)*menuSlotSize,
			W:         menuSlotSize,
			H:         menuSlotSize,
			Left:      RegionNone,
			Right:     RegionNone,
			Up:        RegionNone,
			Down:      RegionNone,
		}
		if col > 0 {
			region.Left = RegionID(idx - 1)
		}
		if col < menuSlotsPerRow-1 && idx+1 < inventorySlots {
			region.Right = RegionID(idx + 1)
		}
		if row > 0 {
			region.Up = RegionID(idx - menuSlotsPerRow)
		}
		if idx+menuSlotsPerRow < inventorySlots {
			region.Down = RegionID(idx + menuSlotsPerRow)
		}
		rr.Add(region)
	}

	kinds := state.OrderedEquipKinds()
	for rank, kind := range kinds {
		region := Region{
			ID:        regionEquipmentBase + RegionID(rank),
			Kind:      RegionEquipment,
			EquipKind: kind,
			X:         menuEquipmentX,
			Y:         menuEquipmentY + float64(rank)*menuSlotSize,
			W:         menuSlotSize,
			H:         menuSlotSize,
			Left:      RegionNone,
			Right:     RegionNone,
			Up:        RegionNone,
			Down:      RegionNone,
		}
		if rank > 0 {
			region.Up = regionEquipmentBase + RegionID(rank-1)
		}
		if rank < len(kinds)-1 {
			region.Down = regionEquipmentBase + RegionID(rank+1)
		}
		rr.Add(region)
	}

	rr.Add(Region{
		ID:    RegionIDSort,
		Kind:  RegionSort,
		X:     menuActionX,
		Y:     menuActionY,
		W:     menuSlotSize,
		H:     menuSlotSize,
		Left:  RegionNone,
		Right: RegionIDTrash,
		Up:    regionEquipmentBase + RegionID(len(kinds)-1),
		Down:  RegionNone,
	})
	rr.Add(Region{
		ID:    RegionIDTrash,
		Kind:  RegionTrash,
		X:     menuActionX + menuActionGap,
		Y:     menuActionY,
		W:     menuSlotSize,
		H:     menuSlotSize,
		Left:  RegionIDSort,
		Right: RegionNone,
		Up:    regionEquipmentBase + RegionID(len(kinds)-1),
		Down:  RegionNone,
	})

	return rr
}

// InjectDropZone idempotently patches the drop-zone region into the
// registry, next to the trash button, and wires its vertical neighbour to
// the equipment region with the nearest vertical center (lowest id wins
// ties). Safe to call every tick.
func (rr *RegionRegistry) InjectDropZone() {
	if rr == nil {
		return
	}
	if _, exists := rr.regions[RegionIDDropZone]; exists {
		return
	}

	trash, ok := rr.Get(RegionIDTrash)
	if !ok {
		return
	}

	zone := Region{
		ID:    RegionIDDropZone,
		Kind:  RegionDropZone,
		X:     trash.X + trash.W + menuDropZoneSlip,
		Y:     trash.Y,
		W:     trash.W,
		H:     trash.H,
		Left:  trash.ID,
		Right: RegionNone,
		Up:    RegionNone,
		Down:  RegionNone,
	}

	nearest := RegionNone
	bestDist := math.MaxFloat64
	for _, id := range rr.order {
		region := rr.regions[id]
		if region == nil || region.Kind != RegionEquipment {
			continue
		}
		dist := math.Abs(region.centerY() - (zone.Y + zone.H/2))
		if dist < bestDist || (dist == bestDist && id < nearest) {
			bestDist = dist
			nearest = id
		}
	}
	zone.Up = nearest

	rr.Add(zone)
	trash.Right = RegionIDDropZone
	if nearest != RegionNone {
		if eq, ok := rr.Get(nearest); ok && eq.Down == RegionNone {
			eq.Down = RegionIDDropZone
		}
	}
}
