package main

import "errors"

var (
	errSlotOutOfRange  = errors.New("slot_out_of_range")
	errEquipKindEmpty  = errors.New("equip_kind_empty")
	errEquipOccupied   = errors.New("equip_slot_occupied")
	errStoreUnattached = errors.New("store_unattached")
)

// MenuStore is the capability surface the menu core needs from whatever owns
// the player's items. The core never reaches into engine internals; the
// integration layer implements this interface and keeps the typed operations
// honest. The held-cursor cell is shared with collaborators outside the menu
// core, so the cursor accessors reflect the cell's live contents, never a
// cached view.
type MenuStore interface {
	// Inventory slots, addressed by fixed index.
	SlotCount() int
	Slot(idx int) (ItemStack, bool)
	SetSlot(idx int, stack ItemStack) error
	ClearSlot(idx int)

	// Shared held-cursor cell.
	Cursor() (HeldCursor, bool)
	SetCursor(cursor HeldCursor)
	ClearCursor()

	// Equipment, with engine side effects run inside the call.
	Equipped(kind EquipKind) (ItemStack, bool)
	Equip(kind EquipKind, stack ItemStack) error
	Unequip(kind EquipKind) (ItemStack, bool)

	// Pure-action operations.
	SortInventory()
	Insert(stack ItemStack) ItemStack
	TrashRefund(stack ItemStack) int
	CreditRefund(amount int)
	DropToWorld(stack ItemStack)

	// Catalog lookup.
	Definition(itemType ItemType) (ItemDefinition, bool)
}

// stackCompatible reports whether the cursor stack may merge into the target
// stack: same type, and the type's definition allows stacking. Zero space in
// the target does not make stacks incompatible; callers decide what a full
// target means.
func stackCompatible(store MenuStore, cursor, target ItemStack) bool {
	if cursor.IsEmpty() || target.IsEmpty() {
		return false
	}
	if cursor.Type != target.Type {
		return false
	}
	def, ok := store.Definition(cursor.Type)
	return ok && def.Stackable
}

// equipKindOf resolves the equipment kind an item occupies, EquipKindNone
// for items that cannot be equipped or are unknown to the catalog.
func equipKindOf(store MenuStore, stack ItemStack) EquipKind {
	if stack.IsEmpty() {
		return EquipKindNone
	}
	def, ok := store.Definition(stack.Type)
	if !ok {
		return EquipKindNone
	}
	return def.EquipKind
}
