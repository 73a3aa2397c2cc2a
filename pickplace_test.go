package main

import "testing"

func TestPickupAndPlaceRoundTrip(t *testing.T) {
	h := newHarness(t, 8)
	h.store.inv.Set(0, ItemStack{Type: ItemTypeWood, Quantity: 24})
	before := h.store.totalQuantity()

	h.focus(0)
	if res := h.tapA(); res.Primary != OutcomeHandled {
		t.Fatalf("pickup outcome = %s", res.Primary)
	}
	h.mustSlot(0, ItemStack{})
	h.mustCursor(ItemStack{Type: ItemTypeWood, Quantity: 24})
	if !h.sess.Holding() {
		t.Fatal("session should be holding after pickup")
	}

	cursor, _ := h.store.Cursor()
	if cursor.Source != 0 || cursor.Provenance != ProvenanceFullPickup {
		t.Fatalf("cursor metadata = %+v", cursor)
	}

	h.focus(5)
	if res := h.tapA(); res.Primary != OutcomeHandled {
		t.Fatalf("place outcome = %s", res.Primary)
	}
	h.mustSlot(5, ItemStack{Type: ItemTypeWood, Quantity: 24})
	h.mustCursor(ItemStack{})
	if h.sess.Holding() {
		t.Fatal("session should be idle after placing")
	}
	if got := h.store.totalQuantity(); got != before {
		t.Fatalf("quantity changed: %d -> %d", before, got)
	}
}

func TestPickupEmptySlotDoesNothing(t *testing.T) {
	h := newHarness(t, 4)
	h.focus(2)
	if res := h.tapA(); res.Primary != OutcomeHandled {
		t.Fatalf("empty-slot press outcome = %s", res.Primary)
	}
	h.mustCursor(ItemStack{})
	if h.sess.Holding() {
		t.Fatal("empty slot must not start a hold")
	}
}

func TestPressWithoutFocusIsUnhandled(t *testing.T) {
	h := newHarness(t, 4)
	h.store.inv.Set(0, ItemStack{Type: ItemTypeWood, Quantity: 3})
	if res := h.tapA(); res.Primary != OutcomeUnhandled {
		t.Fatalf("unfocused press outcome = %s", res.Primary)
	}
	h.mustSlot(0, ItemStack{Type: ItemTypeWood, Quantity: 3})
}

func TestStackingMovesWhatFitsAndKeepsRemainder(t *testing.T) {
	h := newHarness(t, 8)
	h.store.inv.Set(0, ItemStack{Type: ItemTypeWood, Quantity: 96})
	h.store.inv.Set(1, ItemStack{Type: ItemTypeWood, Quantity: 10})
	before := h.store.totalQuantity()

	h.focus(1)
	h.tapA()
	h.focus(0)
	if res := h.tapA(); res.Primary != OutcomeHandled {
		t.Fatalf("stack outcome = %s", res.Primary)
	}

	// Wood caps at 99: three units move, seven stay on the cursor.
	h.mustSlot(0, ItemStack{Type: ItemTypeWood, Quantity: 99})
	h.mustCursor(ItemStack{Type: ItemTypeWood, Quantity: 7})
	if !h.sess.Holding() {
		t.Fatal("remainder should keep the session holding")
	}

	cursor, _ := h.store.Cursor()
	if cursor.Source != 1 || cursor.Provenance != ProvenanceFullPickup {
		t.Fatalf("remainder must keep cursor metadata, got %+v", cursor)
	}
	if got := h.store.totalQuantity(); got != before {
		t.Fatalf("quantity changed: %d -> %d", before, got)
	}
}

func TestStackingDrainsCursorWhenEverythingFits(t *testing.T) {
	h := newHarness(t, 8)
	h.store.inv.Set(0, ItemStack{Type: ItemTypeStone, Quantity: 10})
	h.store.inv.Set(1, ItemStack{Type: ItemTypeStone, Quantity: 5})

	h.focus(1)
	h.tapA()
	h.focus(0)
	h.tapA()

	h.mustSlot(0, ItemStack{Type: ItemTypeStone, Quantity: 15})
	h.mustSlot(1, ItemStack{})
	h.mustCursor(ItemStack{})
	if h.sess.Holding() {
		t.Fatal("fully merged cursor should end the hold")
	}
}

func TestCompatibleButFullTargetSwapsInsteadOfNoOp(t *testing.T) {
	h := newHarness(t, 8)
	h.store.inv.Set(0, ItemStack{Type: ItemTypeWood, Quantity: 99})
	h.store.inv.Set(1, ItemStack{Type: ItemTypeWood, Quantity: 5})
	before := h.store.totalQuantity()

	h.focus(1)
	h.tapA()
	h.focus(0)
	if res := h.tapA(); res.Primary != OutcomeHandled {
		t.Fatalf("swap outcome = %s", res.Primary)
	}

	h.mustSlot(0, ItemStack{Type: ItemTypeWood, Quantity: 5})
	h.mustCursor(ItemStack{Type: ItemTypeWood, Quantity: 99})
	if got := h.store.totalQuantity(); got != before {
		t.Fatalf("quantity changed: %d -> %d", before, got)
	}
}

func TestSwapWithDifferentType(t *testing.T) {
	h := newHarness(t, 8)
	h.store.inv.Set(0, ItemStack{Type: ItemTypeStone, Quantity: 7})
	h.store.inv.Set(1, ItemStack{Type: ItemTypeWood, Quantity: 12})

	h.focus(1)
	h.tapA()
	h.focus(0)
	h.tapA()

	h.mustSlot(0, ItemStack{Type: ItemTypeWood, Quantity: 12})
	h.mustCursor(ItemStack{Type: ItemTypeStone, Quantity: 7})

	// Swapped-out items have no home slot to return to.
	cursor, _ := h.store.Cursor()
	if cursor.Source != SourceNone {
		t.Fatalf("swapped cursor source = %d, want none", cursor.Source)
	}
	if !h.sess.Holding() {
		t.Fatal("swap must keep the session holding")
	}
}

func TestEquipAndUnequip(t *testing.T) {
	h := newHarness(t, 8)
	h.store.inv.Set(0, ItemStack{Type: ItemTypeStrawHat, Quantity: 1})
	hatRegion := regionEquipmentBase // hat is rank 0

	h.focus(0)
	h.tapA()
	h.focus(hatRegion)
	if res := h.tapA(); res.Primary != OutcomeHandled {
		t.Fatalf("equip outcome = %s", res.Primary)
	}

	equipped, ok := h.store.Equipped(EquipKindHat)
	if !ok || equipped.Type != ItemTypeStrawHat {
		t.Fatalf("hat not equipped: %+v (present=%v)", equipped, ok)
	}
	h.mustCursor(ItemStack{})

	// Press again while idle to unequip.
	if res := h.tapA(); res.Primary != OutcomeHandled {
		t.Fatalf("unequip outcome = %s", res.Primary)
	}
	if _, ok := h.store.Equipped(EquipKindHat); ok {
		t.Fatal("hat should be unequipped")
	}
	h.mustCursor(ItemStack{Type: ItemTypeStrawHat, Quantity: 1})

	cursor, _ := h.store.Cursor()
	if cursor.Source != SourceNone {
		t.Fatalf("unequipped cursor source = %d, want none", cursor.Source)
	}
}

func TestEquipDisplacesOntoCursor(t *testing.T) {
	h := newHarness(t, 8)
	h.store.equip.Set(EquipKindRingLeft, ItemStack{Type: ItemTypeAmberRing, Quantity: 1})
	h.store.inv.Set(0, ItemStack{Type: ItemTypeAmberRing, Quantity: 1})
	before := h.store.totalQuantity()

	ringRegion := regionEquipmentBase + 1 // ring_left is rank 1
	h.focus(0)
	h.tapA()
	h.focus(ringRegion)
	h.tapA()

	equipped, _ := h.store.Equipped(EquipKindRingLeft)
	if equipped.Type != ItemTypeAmberRing {
		t.Fatalf("cursor ring should be equipped, got %+v", equipped)
	}
	h.mustCursor(ItemStack{Type: ItemTypeAmberRing, Quantity: 1})
	if !h.sess.Holding() {
		t.Fatal("displaced item must ride the cursor")
	}
	if got := h.store.totalQuantity(); got != before {
		t.Fatalf("quantity changed: %d -> %d", before, got)
	}
}

func TestEquipKindMismatchRejected(t *testing.T) {
	h := newHarness(t, 8)
	h.store.inv.Set(0, ItemStack{Type: ItemTypeWood, Quantity: 5})

	h.focus(0)
	h.tapA()
	h.focus(regionEquipmentBase) // hat slot
	if res := h.tapA(); res.Primary != OutcomeRejected {
		t.Fatalf("mismatch outcome = %s, want rejected", res.Primary)
	}

	// The item stays on the cursor untouched.
	h.mustCursor(ItemStack{Type: ItemTypeWood, Quantity: 5})
	if _, ok := h.store.Equipped(EquipKindHat); ok {
		t.Fatal("nothing should be equipped after a rejection")
	}
}

func TestTrashDestroysAndRefunds(t *testing.T) {
	h := newHarness(t, 8)
	h.store.refundPct = 30
	h.store.inv.Set(0, ItemStack{Type: ItemTypeFieldSnack, Quantity: 4})

	h.focus(0)
	h.tapA()
	h.focus(RegionIDTrash)
	if res := h.tapA(); res.Primary != OutcomeHandled {
		t.Fatalf("trash outcome = %s", res.Primary)
	}

	h.mustCursor(ItemStack{})
	// Field snacks are worth 5: floor(5 * 4 * 30%) = 6 gold.
	if h.store.gold != 6 {
		t.Fatalf("refund = %d gold, want 6", h.store.gold)
	}
}

func TestTrashWithZeroRefundStillDestroys(t *testing.T) {
	h := newHarness(t, 8)
	h.store.refundPct = 0
	h.store.inv.Set(0, ItemStack{Type: ItemTypeWood, Quantity: 9})

	h.focus(0)
	h.tapA()
	h.focus(RegionIDTrash)
	h.tapA()

	h.mustCursor(ItemStack{})
	if h.store.gold != 0 {
		t.Fatalf("gold = %d, want 0", h.store.gold)
	}
	if h.sess.Holding() {
		t.Fatal("session should be idle after trashing")
	}
}

func TestDropZoneEmitsDebris(t *testing.T) {
	h := newHarness(t, 8)
	h.store.inv.Set(0, ItemStack{Type: ItemTypeStone, Quantity: 11})

	h.focus(0)
	h.tapA()
	h.focus(RegionIDDropZone)
	if res := h.tapA(); res.Primary != OutcomeHandled {
		t.Fatalf("drop outcome = %s", res.Primary)
	}

	h.mustCursor(ItemStack{})
	if len(h.store.dropped) != 1 || h.store.dropped[0] != (ItemStack{Type: ItemTypeStone, Quantity: 11}) {
		t.Fatalf("dropped = %+v", h.store.dropped)
	}
}

func TestSortWorksIdleAndHolding(t *testing.T) {
	h := newHarness(t, 6)
	h.store.inv.Set(4, ItemStack{Type: ItemTypeWood, Quantity: 3})
	h.store.inv.Set(2, ItemStack{Type: ItemTypeStone, Quantity: 8})

	h.focus(RegionIDSort)
	h.tapA()
	h.mustSlot(0, ItemStack{Type: ItemTypeStone, Quantity: 8})
	h.mustSlot(1, ItemStack{Type: ItemTypeWood, Quantity: 3})

	// Sorting while holding keeps the cursor intact.
	h.focus(0)
	h.tapA()
	h.focus(RegionIDSort)
	if res := h.tapA(); res.Primary != OutcomeHandled {
		t.Fatalf("sort-while-holding outcome = %s", res.Primary)
	}
	h.mustCursor(ItemStack{Type: ItemTypeStone, Quantity: 8})
	if !h.sess.Holding() {
		t.Fatal("sort must not drop the held item")
	}
}

func TestTrashAndDropZoneIgnoredWhileIdle(t *testing.T) {
	h := newHarness(t, 4)
	h.focus(RegionIDTrash)
	if res := h.tapA(); res.Primary != OutcomeHandled {
		t.Fatalf("idle trash outcome = %s", res.Primary)
	}
	h.focus(RegionIDDropZone)
	if res := h.tapA(); res.Primary != OutcomeHandled {
		t.Fatalf("idle drop outcome = %s", res.Primary)
	}
	if len(h.store.dropped) != 0 || h.store.gold != 0 {
		t.Fatal("idle presses must not move items or gold")
	}
}

func TestConservationAcrossMixedSequence(t *testing.T) {
	h := newHarness(t, 12)
	h.store.refundPct = 0
	h.store.inv.Set(0, ItemStack{Type: ItemTypeWood, Quantity: 40})
	h.store.inv.Set(1, ItemStack{Type: ItemTypeStone, Quantity: 20})
	h.store.inv.Set(2, ItemStack{Type: ItemTypeStrawHat, Quantity: 1})
	before := h.store.totalQuantity()

	moves := []RegionID{0, 5, 1, 0, 2, regionEquipmentBase, 5, RegionIDDropZone, RegionIDSort}
	for _, id := range moves {
		h.focus(id)
		h.tapA()
		if got := h.store.totalQuantity(); got != before {
			t.Fatalf("after press on region %d: quantity %d, want %d", id, got, before)
		}
	}
}
