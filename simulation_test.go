package main

import (
	"testing"
	"time"
)

func TestAddPlayerSeedsStarterKit(t *testing.T) {
	w := newWorld(DefaultTuning(), nil)
	player := w.AddPlayer("p1", time.Now())

	if got := player.Inventory.CountOf(ItemTypeWood); got != 24 {
		t.Fatalf("starter wood = %d, want 24", got)
	}
	if got := player.Inventory.CountOf(ItemTypeStrawHat); got != 1 {
		t.Fatalf("starter hats = %d, want 1", got)
	}
	if player.Gold != 50 {
		t.Fatalf("starter gold = %d, want 50", player.Gold)
	}
	if player.menu != nil {
		t.Fatal("players join with the menu closed")
	}
}

func TestOpenMenuTwiceIsNoOp(t *testing.T) {
	w := newWorld(DefaultTuning(), nil)
	w.AddPlayer("p1", time.Now())

	if err := w.OpenMenu("p1"); err != nil {
		t.Fatalf("OpenMenu: %v", err)
	}
	first := w.players["p1"].menu
	if err := w.OpenMenu("p1"); err != nil {
		t.Fatalf("second OpenMenu: %v", err)
	}
	if w.players["p1"].menu != first {
		t.Fatal("reopening must keep the existing session")
	}
	if err := w.OpenMenu("ghost"); err == nil {
		t.Fatal("unknown player must error")
	}
}

func TestMenuPickupThroughWorldTick(t *testing.T) {
	w := newWorld(DefaultTuning(), nil)
	player := w.AddPlayer("p1", time.Now())
	before := player.TotalQuantity()

	if err := w.OpenMenu("p1"); err != nil {
		t.Fatalf("OpenMenu: %v", err)
	}
	w.SetFocus("p1", 0) // starter wood

	w.UpdateButtons("p1", true, false)
	w.Advance(1, 1.0/15)

	cursor, ok := player.CursorCell.Get()
	if !ok || cursor.Item.Type != ItemTypeWood || cursor.Item.Quantity != 24 {
		t.Fatalf("cursor after tick = %+v (present=%v)", cursor, ok)
	}
	if _, occupied := player.Inventory.At(0); occupied {
		t.Fatal("slot 0 should be empty after pickup")
	}
	if got := player.TotalQuantity(); got != before {
		t.Fatalf("quantity changed: %d -> %d", before, got)
	}

	// Holding the button across ticks must not fire again.
	w.Advance(2, 1.0/15)
	w.Advance(3, 1.0/15)
	if got := player.CursorCell.Quantity(); got != 24 {
		t.Fatalf("held button re-fired: cursor = %d", got)
	}
}

func TestCloseMenuRecoversHeldItem(t *testing.T) {
	w := newWorld(DefaultTuning(), nil)
	player := w.AddPlayer("p1", time.Now())
	before := player.TotalQuantity()

	w.OpenMenu("p1")
	w.SetFocus("p1", 0)
	w.UpdateButtons("p1", true, false)
	w.Advance(1, 1.0/15)

	w.CloseMenu("p1")
	if player.menu != nil {
		t.Fatal("menu should be closed")
	}
	if _, holding := player.CursorCell.Get(); holding {
		t.Fatal("cursor must be recovered on close")
	}
	if got := player.Inventory.CountOf(ItemTypeWood); got != 24 {
		t.Fatalf("wood after recovery = %d, want 24", got)
	}
	if got := player.TotalQuantity(); got != before {
		t.Fatalf("quantity changed: %d -> %d", before, got)
	}
}

func TestRemovePlayerClosesMenuFirst(t *testing.T) {
	w := newWorld(flatScatterTuning(), nil)
	player := w.AddPlayer("p1", time.Now())

	w.OpenMenu("p1")
	w.SetFocus("p1", 0)
	w.UpdateButtons("p1", true, false)
	w.Advance(1, 1.0/15)

	if !w.RemovePlayer("p1", "test") {
		t.Fatal("RemovePlayer reported missing player")
	}
	if _, ok := w.players["p1"]; ok {
		t.Fatal("player still registered")
	}
	// Recovery ran against the player's own inventory before teardown, so
	// nothing leaked into the world.
	if items := w.GroundItemsSnapshot(); len(items) != 0 {
		t.Fatalf("unexpected ground items: %+v", items)
	}
	_ = player
}

func TestMovementPausesWhileMenuOpen(t *testing.T) {
	w := newWorld(DefaultTuning(), nil)
	player := w.AddPlayer("p1", time.Now())
	startX := player.X

	w.UpdateIntent("p1", 1, 0, "")
	w.Advance(1, 0.1)
	if player.X <= startX {
		t.Fatalf("player did not move: %v", player.X)
	}

	moved := player.X
	w.OpenMenu("p1")
	w.Advance(2, 0.1)
	if player.X != moved {
		t.Fatalf("player moved with menu open: %v -> %v", moved, player.X)
	}

	w.CloseMenu("p1")
	w.Advance(3, 0.1)
	if player.X <= moved {
		t.Fatal("movement should resume after closing the menu")
	}
}

func TestMovementClampsToWorldBounds(t *testing.T) {
	w := newWorld(DefaultTuning(), nil)
	player := w.AddPlayer("p1", time.Now())
	player.X = worldWidth - playerHalf - 1

	w.UpdateIntent("p1", 1, 0, "")
	for i := 0; i < 20; i++ {
		w.Advance(uint64(i+1), 0.5)
	}
	if player.X != worldWidth-playerHalf {
		t.Fatalf("player escaped bounds: %v", player.X)
	}
	if player.Facing != FacingRight {
		t.Fatalf("facing = %s, want right", player.Facing)
	}
}

func TestPlayersSnapshotDetachesState(t *testing.T) {
	w := newWorld(DefaultTuning(), nil)
	player := w.AddPlayer("p1", time.Now())

	snapshot := w.PlayersSnapshot()
	if len(snapshot) != 1 {
		t.Fatalf("snapshot size = %d", len(snapshot))
	}

	// Mutating the snapshot must not touch live state.
	snapshot[0].Inventory.Set(0, ItemStack{Type: ItemTypeFiber, Quantity: 999})
	if got := player.Inventory.CountOf(ItemTypeFiber); got != 0 {
		t.Fatalf("live inventory mutated through snapshot: %d fiber", got)
	}
}

func TestSnapshotIncludesCursorWhileHolding(t *testing.T) {
	w := newWorld(DefaultTuning(), nil)
	w.AddPlayer("p1", time.Now())
	w.OpenMenu("p1")
	w.SetFocus("p1", 0)
	w.UpdateButtons("p1", true, false)
	w.Advance(1, 1.0/15)

	snapshot := w.PlayersSnapshot()
	if snapshot[0].Cursor == nil || snapshot[0].Cursor.Item.Type != ItemTypeWood {
		t.Fatalf("snapshot cursor = %+v, want held wood", snapshot[0].Cursor)
	}
}

func TestTrashRefundUsesPlayerUpgradeLevel(t *testing.T) {
	w := newWorld(DefaultTuning(), nil)
	player := w.AddPlayer("p1", time.Now())
	player.trashLevel = 2 // 30%

	store := &playerMenuStore{world: w, player: player}
	// Field snack value 5, qty 4: floor(5*4*30%) = 6.
	if got := store.TrashRefund(ItemStack{Type: ItemTypeFieldSnack, Quantity: 4}); got != 6 {
		t.Fatalf("refund = %d, want 6", got)
	}

	player.trashLevel = 0
	if got := store.TrashRefund(ItemStack{Type: ItemTypeFieldSnack, Quantity: 4}); got != 0 {
		t.Fatalf("level 0 refund = %d, want 0", got)
	}

	goldBefore := player.Gold
	store.CreditRefund(6)
	if player.Gold != goldBefore+6 {
		t.Fatalf("gold = %d, want %d", player.Gold, goldBefore+6)
	}
}

func TestPlayerStoreEquipRejectsOccupiedSlot(t *testing.T) {
	w := newWorld(DefaultTuning(), nil)
	player := w.AddPlayer("p1", time.Now())
	store := &playerMenuStore{world: w, player: player}

	if err := store.Equip(EquipKindHat, ItemStack{Type: ItemTypeStrawHat, Quantity: 1}); err != nil {
		t.Fatalf("first equip: %v", err)
	}
	if err := store.Equip(EquipKindHat, ItemStack{Type: ItemTypeStrawHat, Quantity: 1}); err != errEquipOccupied {
		t.Fatalf("second equip err = %v, want occupied", err)
	}
	if err := store.Equip(EquipKindHat, ItemStack{}); err != errEquipKindEmpty {
		t.Fatalf("empty equip err = %v, want empty", err)
	}
}

func TestPlayerStoreDropFeedsWorldDebris(t *testing.T) {
	w := newWorld(flatScatterTuning(), nil)
	player := w.AddPlayer("p1", time.Now())
	store := &playerMenuStore{world: w, player: player}

	store.DropToWorld(ItemStack{Type: ItemTypeStone, Quantity: 7})
	items := w.GroundItemsSnapshot()
	if len(items) != 1 || items[0].Quantity != 7 {
		t.Fatalf("ground items = %+v", items)
	}
}
