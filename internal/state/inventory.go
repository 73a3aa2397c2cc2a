package state

import (
	"fmt"
	"sort"
)

// ItemStack represents a quantity of a specific item type. A zero-valued
// stack means the containing slot is empty.
type ItemStack struct {
	Type     ItemType `json:"type"`
	Quantity int      `json:"quantity"`
}

// IsEmpty reports whether the stack holds nothing.
func (s ItemStack) IsEmpty() bool {
	return s.Type == "" || s.Quantity <= 0
}

// Inventory maintains a fixed number of indexed slots. Unlike a compacting
// bag, slot indices are stable: the menu addresses slots by position and an
// empty slot stays empty until something is placed there.
type Inventory struct {
	Slots []ItemStack `json:"slots"`
}

// NewInventory returns an inventory with the given number of empty slots.
func NewInventory(capacity int) Inventory {
	if capacity < 0 {
		capacity = 0
	}
	return Inventory{Slots: make([]ItemStack, capacity)}
}

// Capacity returns the number of addressable slots.
func (inv *Inventory) Capacity() int {
	if inv == nil {
		return 0
	}
	return len(inv.Slots)
}

// At returns the stack at idx and whether the slot holds anything.
func (inv *Inventory) At(idx int) (ItemStack, bool) {
	if inv == nil || idx < 0 || idx >= len(inv.Slots) {
		return ItemStack{}, false
	}
	stack := inv.Slots[idx]
	if stack.IsEmpty() {
		return ItemStack{}, false
	}
	return stack, true
}

// Set overwrites the slot at idx with the given stack.
func (inv *Inventory) Set(idx int, stack ItemStack) error {
	if inv == nil {
		return fmt.Errorf("inventory not initialised")
	}
	if idx < 0 || idx >= len(inv.Slots) {
		return fmt.Errorf("slot %d out of range", idx)
	}
	if stack.IsEmpty() {
		inv.Slots[idx] = ItemStack{}
		return nil
	}
	inv.Slots[idx] = stack
	return nil
}

// Clear empties the slot at idx. Out-of-range indices are ignored.
func (inv *Inventory) Clear(idx int) {
	if inv == nil || idx < 0 || idx >= len(inv.Slots) {
		return
	}
	inv.Slots[idx] = ItemStack{}
}

// TotalQuantity sums the quantities across all slots.
func (inv *Inventory) TotalQuantity() int {
	if inv == nil {
		return 0
	}
	total := 0
	for _, stack := range inv.Slots {
		if !stack.IsEmpty() {
			total += stack.Quantity
		}
	}
	return total
}

// CountOf sums the quantity held of a single item type.
func (inv *Inventory) CountOf(itemType ItemType) int {
	if inv == nil || itemType == "" {
		return 0
	}
	total := 0
	for _, stack := range inv.Slots {
		if stack.Type == itemType {
			total += stack.Quantity
		}
	}
	return total
}

// Insert merges the stack into compatible occupied slots first, then fills
// empty slots, honouring the per-type stack limit reported by maxStack. The
// returned stack carries whatever quantity could not be placed.
func (inv *Inventory) Insert(stack ItemStack, maxStack func(ItemType) int) ItemStack {
	if inv == nil || stack.IsEmpty() {
		return ItemStack{}
	}
	limit := defaultMaxStack
	if maxStack != nil {
		if m := maxStack(stack.Type); m > 0 {
			limit = m
		}
	}

	remaining := stack.Quantity
	for i := range inv.Slots {
		if remaining == 0 {
			break
		}
		if inv.Slots[i].Type != stack.Type || inv.Slots[i].IsEmpty() {
			continue
		}
		space := limit - inv.Slots[i].Quantity
		if space <= 0 {
			continue
		}
		moved := space
		if moved > remaining {
			moved = remaining
		}
		inv.Slots[i].Quantity += moved
		remaining -= moved
	}
	for i := range inv.Slots {
		if remaining == 0 {
			break
		}
		if !inv.Slots[i].IsEmpty() {
			continue
		}
		moved := limit
		if moved > remaining {
			moved = remaining
		}
		inv.Slots[i] = ItemStack{Type: stack.Type, Quantity: moved}
		remaining -= moved
	}

	if remaining == 0 {
		return ItemStack{}
	}
	return ItemStack{Type: stack.Type, Quantity: remaining}
}

// Sort orders occupied slots by item type, then by descending quantity,
// compacting empties to the tail. Slot indices are renumbered implicitly by
// position, mirroring what the menu displays after a sort action.
func (inv *Inventory) Sort() {
	if inv == nil || len(inv.Slots) <= 1 {
		return
	}
	occupied := make([]ItemStack, 0, len(inv.Slots))
	for _, stack := range inv.Slots {
		if !stack.IsEmpty() {
			occupied = append(occupied, stack)
		}
	}
	sort.SliceStable(occupied, func(i, j int) bool {
		if occupied[i].Type == occupied[j].Type {
			return occupied[i].Quantity > occupied[j].Quantity
		}
		return occupied[i].Type < occupied[j].Type
	})
	for i := range inv.Slots {
		if i < len(occupied) {
			inv.Slots[i] = occupied[i]
		} else {
			inv.Slots[i] = ItemStack{}
		}
	}
}

// DrainAll removes and returns every stack, leaving all slots empty.
func (inv *Inventory) DrainAll() []ItemStack {
	if inv == nil {
		return nil
	}
	drained := make([]ItemStack, 0, len(inv.Slots))
	for i := range inv.Slots {
		if inv.Slots[i].IsEmpty() {
			continue
		}
		drained = append(drained, inv.Slots[i])
		inv.Slots[i] = ItemStack{}
	}
	return drained
}

// Clone returns a deep copy of the inventory.
func (inv Inventory) Clone() Inventory {
	if len(inv.Slots) == 0 {
		return Inventory{}
	}
	cloned := make([]ItemStack, len(inv.Slots))
	copy(cloned, inv.Slots)
	return Inventory{Slots: cloned}
}

// InventoriesEqual reports whether two inventories hold identical slots.
func InventoriesEqual(a, b Inventory) bool {
	if len(a.Slots) != len(b.Slots) {
		return false
	}
	for i := range a.Slots {
		if a.Slots[i] != b.Slots[i] {
			return false
		}
	}
	return true
}
