package main

// playerMenuStore adapts a live player inside the World to the MenuStore
// capability surface. All mutations go through here so the menu core never
// touches engine internals directly.
type playerMenuStore struct {
	world  *World
	player *playerState
}

var _ MenuStore = (*playerMenuStore)(nil)

func (ps *playerMenuStore) SlotCount() int {
	if ps == nil || ps.player == nil {
		return 0
	}
	return ps.player.Inventory.Capacity()
}

func (ps *playerMenuStore) Slot(idx int) (ItemStack, bool) {
	if ps == nil || ps.player == nil {
		return ItemStack{}, false
	}
	return ps.player.Inventory.At(idx)
}

func (ps *playerMenuStore) SetSlot(idx int, stack ItemStack) error {
	if ps == nil || ps.player == nil {
		return errStoreUnattached
	}
	if err := ps.player.Inventory.Set(idx, stack); err != nil {
		return err
	}
	ps.player.version++
	return nil
}

func (ps *playerMenuStore) ClearSlot(idx int) {
	if ps == nil || ps.player == nil {
		return
	}
	ps.player.Inventory.Clear(idx)
	ps.player.version++
}

func (ps *playerMenuStore) Cursor() (HeldCursor, bool) {
	if ps == nil || ps.player == nil {
		return HeldCursor{}, false
	}
	return ps.player.CursorCell.Get()
}

func (ps *playerMenuStore) SetCursor(cursor HeldCursor) {
	if ps == nil || ps.player == nil {
		return
	}
	ps.player.CursorCell.Set(cursor)
	ps.player.version++
}

func (ps *playerMenuStore) ClearCursor() {
	if ps == nil || ps.player == nil {
		return
	}
	ps.player.CursorCell.Clear()
	ps.player.version++
}

func (ps *playerMenuStore) Equipped(kind EquipKind) (ItemStack, bool) {
	if ps == nil || ps.player == nil {
		return ItemStack{}, false
	}
	return ps.player.Equipment.Get(kind)
}

// Equip places the stack into the equipment slot. The slot must be empty;
// displacement is the caller's business so the displaced item can ride the
// cursor instead of vanishing.
func (ps *playerMenuStore) Equip(kind EquipKind, stack ItemStack) error {
	if ps == nil || ps.player == nil {
		return errStoreUnattached
	}
	if stack.IsEmpty() {
		return errEquipKindEmpty
	}
	if _, occupied := ps.player.Equipment.Get(kind); occupied {
		return errEquipOccupied
	}
	ps.player.Equipment.Set(kind, stack)
	ps.player.version++
	return nil
}

func (ps *playerMenuStore) Unequip(kind EquipKind) (ItemStack, bool) {
	if ps == nil || ps.player == nil {
		return ItemStack{}, false
	}
	removed, ok := ps.player.Equipment.Remove(kind)
	if ok {
		ps.player.version++
	}
	return removed, ok
}

func (ps *playerMenuStore) SortInventory() {
	if ps == nil || ps.player == nil {
		return
	}
	ps.player.Inventory.Sort()
	ps.player.version++
}

func (ps *playerMenuStore) Insert(stack ItemStack) ItemStack {
	if ps == nil || ps.player == nil {
		return stack
	}
	leftover := ps.player.Inventory.Insert(stack, maxStackFor)
	ps.player.version++
	return leftover
}

// TrashRefund computes the gold refunded for destroying the stack at the
// player's current trash upgrade level. Level 0 refunds nothing.
func (ps *playerMenuStore) TrashRefund(stack ItemStack) int {
	if ps == nil || ps.player == nil || stack.IsEmpty() {
		return 0
	}
	def, ok := ItemDefinitionFor(stack.Type)
	if !ok {
		return 0
	}
	pct := ps.world.tuning.RefundPercent(ps.player.trashLevel)
	return def.Value * stack.Quantity * pct / 100
}

func (ps *playerMenuStore) CreditRefund(amount int) {
	if ps == nil || ps.player == nil || amount <= 0 {
		return
	}
	ps.player.Gold += amount
	ps.player.version++
}

func (ps *playerMenuStore) DropToWorld(stack ItemStack) {
	if ps == nil || ps.player == nil || stack.IsEmpty() {
		return
	}
	ps.world.upsertGroundItem(&ps.player.ActorState, stack, "menu_drop")
}

func (ps *playerMenuStore) Definition(itemType ItemType) (ItemDefinition, bool) {
	return ItemDefinitionFor(itemType)
}
