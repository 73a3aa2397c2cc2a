package main

import (
	"testing"

	"pick-and-place/server/logging"
)

// fakeStore is an in-memory MenuStore with optional fault injection so tests
// can drive the recovery routine deterministically.
type fakeStore struct {
	inv       Inventory
	equip     Equipment
	cell      CursorCell
	gold      int
	refundPct int
	dropped   []ItemStack

	failSlots map[int]bool
	failEquip bool
}

func newFakeStore(slots int) *fakeStore {
	return &fakeStore{
		inv:       NewInventory(slots),
		equip:     NewEquipment(),
		failSlots: make(map[int]bool),
	}
}

func (f *fakeStore) SlotCount() int { return f.inv.Capacity() }

func (f *fakeStore) Slot(idx int) (ItemStack, bool) { return f.inv.At(idx) }

func (f *fakeStore) SetSlot(idx int, stack ItemStack) error {
	if f.failSlots[idx] {
		return errSlotOutOfRange
	}
	return f.inv.Set(idx, stack)
}

func (f *fakeStore) ClearSlot(idx int) { f.inv.Clear(idx) }

func (f *fakeStore) Cursor() (HeldCursor, bool) { return f.cell.Get() }

func (f *fakeStore) SetCursor(cursor HeldCursor) { f.cell.Set(cursor) }

func (f *fakeStore) ClearCursor() { f.cell.Clear() }

func (f *fakeStore) Equipped(kind EquipKind) (ItemStack, bool) { return f.equip.Get(kind) }

func (f *fakeStore) Equip(kind EquipKind, stack ItemStack) error {
	if f.failEquip {
		return errStoreUnattached
	}
	if stack.IsEmpty() {
		return errEquipKindEmpty
	}
	if _, occupied := f.equip.Get(kind); occupied {
		return errEquipOccupied
	}
	f.equip.Set(kind, stack)
	return nil
}

func (f *fakeStore) Unequip(kind EquipKind) (ItemStack, bool) { return f.equip.Remove(kind) }

func (f *fakeStore) SortInventory() { f.inv.Sort() }

func (f *fakeStore) Insert(stack ItemStack) ItemStack { return f.inv.Insert(stack, maxStackFor) }

func (f *fakeStore) TrashRefund(stack ItemStack) int {
	if stack.IsEmpty() {
		return 0
	}
	def, ok := ItemDefinitionFor(stack.Type)
	if !ok {
		return 0
	}
	return def.Value * stack.Quantity * f.refundPct / 100
}

func (f *fakeStore) CreditRefund(amount int) { f.gold += amount }

func (f *fakeStore) DropToWorld(stack ItemStack) {
	if stack.IsEmpty() {
		return
	}
	f.dropped = append(f.dropped, stack)
}

func (f *fakeStore) Definition(itemType ItemType) (ItemDefinition, bool) {
	return ItemDefinitionFor(itemType)
}

// totalQuantity counts every unit the store can see, including world debris,
// for conservation assertions.
func (f *fakeStore) totalQuantity() int {
	total := f.inv.TotalQuantity() + f.equip.TotalQuantity() + f.cell.Quantity()
	for _, stack := range f.dropped {
		total += stack.Quantity
	}
	return total
}

func logEntity(id string) logging.EntityRef {
	return logging.EntityRef{ID: id, Kind: logging.EntityKindPlayer}
}

// sessionHarness drives a MenuSession tick by tick.
type sessionHarness struct {
	t     *testing.T
	store *fakeStore
	sess  *MenuSession
	tick  uint64
}

func newHarness(t *testing.T, slots int) *sessionHarness {
	t.Helper()
	store := newFakeStore(slots)
	regions := buildMenuRegions(slots)
	sess := NewMenuSession(store, regions, nil, logEntity("test-player"), DefaultTuning())
	h := &sessionHarness{t: t, store: store, sess: sess}
	// One idle tick so the drop zone is injected before tests focus it.
	h.step(false, false)
	return h
}

func (h *sessionHarness) step(a, b bool) TickResult {
	h.tick++
	return h.sess.OnTick(h.tick, a, b)
}

// tapA presses and releases the primary button across two ticks.
func (h *sessionHarness) tapA() TickResult {
	res := h.step(true, false)
	h.step(false, false)
	return res
}

// tapB presses and releases the withdraw button across two ticks.
func (h *sessionHarness) tapB() TickResult {
	res := h.step(false, true)
	h.step(false, false)
	return res
}

func (h *sessionHarness) focus(id RegionID) {
	h.t.Helper()
	h.sess.Regions().SetFocus(id)
	if h.sess.Regions().FocusedID() != id {
		h.t.Fatalf("failed to focus region %d", id)
	}
}

func (h *sessionHarness) mustSlot(idx int, want ItemStack) {
	h.t.Helper()
	got, ok := h.store.Slot(idx)
	if want.IsEmpty() {
		if ok {
			h.t.Fatalf("slot %d = %+v, want empty", idx, got)
		}
		return
	}
	if !ok || got != want {
		h.t.Fatalf("slot %d = %+v (present=%v), want %+v", idx, got, ok, want)
	}
}

func (h *sessionHarness) mustCursor(want ItemStack) {
	h.t.Helper()
	cursor, ok := h.store.Cursor()
	if want.IsEmpty() {
		if ok {
			h.t.Fatalf("cursor = %+v, want empty", cursor)
		}
		return
	}
	if !ok || cursor.Item != want {
		h.t.Fatalf("cursor = %+v (present=%v), want item %+v", cursor, ok, want)
	}
}
