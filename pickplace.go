package main

import (
	"context"

	loggingeconomy "pick-and-place/server/logging/economy"
	loggingmenu "pick-and-place/server/logging/menu"
)

// handlePrimary resolves a primary-button rising edge against the focused
// region. The branch taken depends on whether the shared cursor currently
// holds an item; the cell, not the cached phase, decides.
func (s *MenuSession) handlePrimary() ActionOutcome {
	region, ok := s.regions.Focused()
	if !ok {
		return OutcomeUnhandled
	}
	if cursor, holding := s.store.Cursor(); holding {
		return s.primaryHolding(region, cursor)
	}
	return s.primaryIdle(region)
}

// primaryIdle handles a press with nothing on the cursor: pick up, unequip,
// or sort. Empty slots and the trash/drop buttons do nothing while idle.
func (s *MenuSession) primaryIdle(region *Region) ActionOutcome {
	switch region.Kind {
	case RegionInventory:
		stack, ok := s.store.Slot(region.SlotIndex)
		if !ok {
			return OutcomeHandled
		}
		s.store.ClearSlot(region.SlotIndex)
		s.store.SetCursor(HeldCursor{
			Item:       stack,
			Source:     region.SlotIndex,
			Provenance: ProvenanceFullPickup,
		})
		s.phase = menuHolding
		loggingmenu.ItemPickedUp(context.Background(), s.publisher, s.tick, s.actor,
			loggingmenu.ItemPickedUpPayload{ItemType: string(stack.Type), Quantity: stack.Quantity, Slot: region.SlotIndex}, nil)
		return OutcomeHandled

	case RegionEquipment:
		stack, ok := s.store.Unequip(region.EquipKind)
		if !ok {
			return OutcomeHandled
		}
		s.store.SetCursor(HeldCursor{
			Item:       stack,
			Source:     SourceNone,
			Provenance: ProvenanceFullPickup,
		})
		s.phase = menuHolding
		loggingmenu.ItemUnequipped(context.Background(), s.publisher, s.tick, s.actor,
			loggingmenu.ItemEquipPayload{ItemType: string(stack.Type), Kind: string(region.EquipKind)}, nil)
		return OutcomeHandled

	case RegionSort:
		s.store.SortInventory()
		loggingmenu.InventorySorted(context.Background(), s.publisher, s.tick, s.actor, nil)
		return OutcomeHandled

	case RegionTrash, RegionDropZone:
		// Nothing to remove while idle.
		return OutcomeHandled

	default:
		return OutcomeUnhandled
	}
}

// primaryHolding handles a press while an item rides the cursor: place,
// stack, swap, equip, trash, sort, or drop.
func (s *MenuSession) primaryHolding(region *Region, cursor HeldCursor) ActionOutcome {
	switch region.Kind {
	case RegionInventory:
		return s.placeIntoSlot(region.SlotIndex, cursor)
	case RegionEquipment:
		return s.placeIntoEquipment(region.EquipKind, cursor)
	case RegionTrash:
		return s.trashCursor(cursor)
	case RegionSort:
		s.store.SortInventory()
		loggingmenu.InventorySorted(context.Background(), s.publisher, s.tick, s.actor, nil)
		return OutcomeHandled
	case RegionDropZone:
		s.store.DropToWorld(cursor.Item)
		s.store.ClearCursor()
		s.phase = menuIdle
		return OutcomeHandled
	default:
		return OutcomeUnhandled
	}
}

// placeIntoSlot resolves the empty/stack/swap triad for an inventory target.
// Stacking wins over swapping for compatible types; a compatible target with
// zero space falls through to the swap branch rather than no-opping.
func (s *MenuSession) placeIntoSlot(idx int, cursor HeldCursor) ActionOutcome {
	target, occupied := s.store.Slot(idx)

	if !occupied {
		if err := s.store.SetSlot(idx, cursor.Item); err != nil {
			s.recoverHeld("place_failed")
			return OutcomeHandled
		}
		s.store.ClearCursor()
		s.phase = menuIdle
		loggingmenu.ItemPlaced(context.Background(), s.publisher, s.tick, s.actor,
			loggingmenu.ItemPlacedPayload{ItemType: string(cursor.Item.Type), Quantity: cursor.Item.Quantity, Slot: idx}, nil)
		return OutcomeHandled
	}

	if stackCompatible(s.store, cursor.Item, target) {
		space := maxStackFor(target.Type) - target.Quantity
		if space > 0 {
			moved := space
			if moved > cursor.Item.Quantity {
				moved = cursor.Item.Quantity
			}
			if err := s.store.SetSlot(idx, ItemStack{Type: target.Type, Quantity: target.Quantity + moved}); err != nil {
				s.recoverHeld("stack_failed")
				return OutcomeHandled
			}
			remainder := cursor.Item.Quantity - moved
			if remainder == 0 {
				s.store.ClearCursor()
				s.phase = menuIdle
			} else {
				cursor.Item.Quantity = remainder
				s.store.SetCursor(cursor)
			}
			loggingmenu.ItemStacked(context.Background(), s.publisher, s.tick, s.actor,
				loggingmenu.ItemStackedPayload{ItemType: string(cursor.Item.Type), Moved: moved, Remainder: remainder, Slot: idx}, nil)
			return OutcomeHandled
		}
		// Compatible but full: falls through to the swap branch.
	}

	if err := s.store.SetSlot(idx, cursor.Item); err != nil {
		s.recoverHeld("swap_failed")
		return OutcomeHandled
	}
	s.store.SetCursor(HeldCursor{
		Item:       target,
		Source:     SourceNone,
		Provenance: ProvenanceFullPickup,
	})
	s.phase = menuHolding
	loggingmenu.ItemSwapped(context.Background(), s.publisher, s.tick, s.actor,
		loggingmenu.ItemSwappedPayload{PlacedType: string(cursor.Item.Type), TakenType: string(target.Type), Slot: idx}, nil)
	return OutcomeHandled
}

// placeIntoEquipment equips the cursor item when the kinds line up,
// displacing whatever was equipped onto the cursor.
func (s *MenuSession) placeIntoEquipment(kind EquipKind, cursor HeldCursor) ActionOutcome {
	if equipKindOf(s.store, cursor.Item) != kind {
		loggingmenu.PlacementRejected(context.Background(), s.publisher, s.tick, s.actor,
			loggingmenu.PlacementRejectedPayload{ItemType: string(cursor.Item.Type), Kind: string(kind), Reason: "kind_mismatch"}, nil)
		return OutcomeRejected
	}

	displaced, hadDisplaced := s.store.Unequip(kind)
	if err := s.store.Equip(kind, cursor.Item); err != nil {
		// Put the displaced item back before recovering the cursor; the
		// recovery routine only knows about the held item.
		if hadDisplaced {
			if reErr := s.store.Equip(kind, displaced); reErr != nil {
				if leftover := s.store.Insert(displaced); !leftover.IsEmpty() {
					s.store.DropToWorld(leftover)
				}
			}
		}
		s.recoverHeld("equip_failed")
		return OutcomeHandled
	}

	loggingmenu.ItemEquipped(context.Background(), s.publisher, s.tick, s.actor,
		loggingmenu.ItemEquipPayload{ItemType: string(cursor.Item.Type), Kind: string(kind)}, nil)

	if hadDisplaced {
		s.store.SetCursor(HeldCursor{
			Item:       displaced,
			Source:     SourceNone,
			Provenance: ProvenanceFullPickup,
		})
		s.phase = menuHolding
		return OutcomeHandled
	}
	s.store.ClearCursor()
	s.phase = menuIdle
	return OutcomeHandled
}

// trashCursor destroys the held item, crediting whatever refund the current
// trash upgrade level yields. The refund may be zero.
func (s *MenuSession) trashCursor(cursor HeldCursor) ActionOutcome {
	refund := s.store.TrashRefund(cursor.Item)
	if refund > 0 {
		s.store.CreditRefund(refund)
	}
	s.store.ClearCursor()
	s.phase = menuIdle
	loggingeconomy.ItemTrashed(context.Background(), s.publisher, s.tick, s.actor,
		loggingeconomy.ItemTrashedPayload{ItemType: string(cursor.Item.Type), Quantity: cursor.Item.Quantity, Refund: refund}, nil)
	return OutcomeHandled
}
