package state

import "sort"

// EquippedItem stores the item occupying a specific equipment slot.
type EquippedItem struct {
	Kind EquipKind `json:"kind"`
	Item ItemStack `json:"item"`
}

// Equipment holds the deterministic equipped item list for an actor.
type Equipment struct {
	Slots []EquippedItem `json:"slots,omitempty"`
}

// NewEquipment returns an empty equipment container.
func NewEquipment() Equipment {
	return Equipment{Slots: nil}
}

func (e Equipment) Clone() Equipment {
	if len(e.Slots) == 0 {
		return Equipment{}
	}
	cloned := make([]EquippedItem, len(e.Slots))
	copy(cloned, e.Slots)
	return Equipment{Slots: cloned}
}

func (e *Equipment) Get(kind EquipKind) (ItemStack, bool) {
	if e == nil {
		return ItemStack{}, false
	}
	for _, entry := range e.Slots {
		if entry.Kind == kind {
			return entry.Item, true
		}
	}
	return ItemStack{}, false
}

func (e *Equipment) Set(kind EquipKind, stack ItemStack) {
	if e == nil {
		return
	}
	if stack.Quantity <= 0 {
		stack.Quantity = 1
	}
	for i := range e.Slots {
		if e.Slots[i].Kind == kind {
			e.Slots[i].Item = stack
			return
		}
	}
	e.Slots = append(e.Slots, EquippedItem{Kind: kind, Item: stack})
	e.sortSlots()
}

func (e *Equipment) Remove(kind EquipKind) (ItemStack, bool) {
	if e == nil || len(e.Slots) == 0 {
		return ItemStack{}, false
	}
	for i := range e.Slots {
		if e.Slots[i].Kind != kind {
			continue
		}
		removed := e.Slots[i].Item
		e.Slots = append(e.Slots[:i], e.Slots[i+1:]...)
		return removed, true
	}
	return ItemStack{}, false
}

func (e *Equipment) DrainAll() []EquippedItem {
	if e == nil || len(e.Slots) == 0 {
		return nil
	}
	drained := make([]EquippedItem, len(e.Slots))
	copy(drained, e.Slots)
	e.Slots = nil
	return drained
}

// TotalQuantity sums the quantities across every equipped slot.
func (e *Equipment) TotalQuantity() int {
	if e == nil {
		return 0
	}
	total := 0
	for _, entry := range e.Slots {
		if !entry.Item.IsEmpty() {
			total += entry.Item.Quantity
		}
	}
	return total
}

func (e *Equipment) sortSlots() {
	if len(e.Slots) <= 1 {
		return
	}
	sort.Slice(e.Slots, func(i, j int) bool {
		ai := EquipKindRank(e.Slots[i].Kind)
		bj := EquipKindRank(e.Slots[j].Kind)
		if ai == bj {
			return string(e.Slots[i].Kind) < string(e.Slots[j].Kind)
		}
		return ai < bj
	})
}

// EquipmentsEqual reports whether two equipment containers hold identical
// slots in identical order.
func EquipmentsEqual(a, b Equipment) bool {
	if len(a.Slots) != len(b.Slots) {
		return false
	}
	for i := range a.Slots {
		if a.Slots[i].Kind != b.Slots[i].Kind {
			return false
		}
		if a.Slots[i].Item != b.Slots[i].Item {
			return false
		}
	}
	return true
}
