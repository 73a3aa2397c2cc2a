package main

import (
	"context"

	loggingmenu "pick-and-place/server/logging/menu"
)

// handleWithdraw runs the single-withdraw protocol for one tick of the
// withdraw button. The repeat source is fixed at the rising edge and does
// not follow focus for the remainder of the hold.
func (s *MenuSession) handleWithdraw(sig ButtonSignal) ActionOutcome {
	switch sig.Phase {
	case ButtonRisingEdge:
		region, ok := s.regions.Focused()
		if !ok || region.Kind != RegionInventory {
			return OutcomeUnhandled
		}
		outcome, started := s.withdrawOne(region.SlotIndex)
		if started {
			s.repeatOn = true
			s.repeatAt = region.SlotIndex
		}
		return outcome

	case ButtonHeld:
		if !s.repeatOn || s.repeatAt == SourceNone {
			return OutcomeNone
		}
		held := sig.HeldTicks
		if held <= s.repeatDelayTicks {
			return OutcomeNone
		}
		if (held-s.repeatDelayTicks-1)%s.repeatCadenceTicks != 0 {
			return OutcomeNone
		}
		// Repeat fires against the slot recorded at the edge, regardless of
		// where focus has moved since. An emptied source simply stops
		// producing; it is not an error.
		outcome, _ := s.withdrawOne(s.repeatAt)
		return outcome

	case ButtonFallingEdge:
		s.clearRepeat()
		return OutcomeNone

	default:
		return OutcomeNone
	}
}

// withdrawOne moves a single unit from slot idx to the cursor. The second
// return value reports whether a repeat session may begin: only actual
// withdrawals (including the whole-stack fallback) start one.
func (s *MenuSession) withdrawOne(idx int) (ActionOutcome, bool) {
	slot, ok := s.store.Slot(idx)
	if !ok {
		return OutcomeNone, false
	}

	cursor, holding := s.store.Cursor()
	if !holding {
		if slot.Quantity > 1 {
			if err := s.store.SetSlot(idx, ItemStack{Type: slot.Type, Quantity: slot.Quantity - 1}); err != nil {
				s.recoverHeld("withdraw_failed")
				return OutcomeHandled, false
			}
			s.store.SetCursor(HeldCursor{
				Item:       ItemStack{Type: slot.Type, Quantity: 1},
				Source:     idx,
				Provenance: ProvenanceSingleWithdraw,
			})
		} else {
			// A single-unit stack degenerates to a full pickup.
			s.store.ClearSlot(idx)
			s.store.SetCursor(HeldCursor{
				Item:       slot,
				Source:     idx,
				Provenance: ProvenanceFullPickup,
			})
		}
		s.phase = menuHolding
		loggingmenu.SingleWithdraw(context.Background(), s.publisher, s.tick, s.actor,
			loggingmenu.SingleWithdrawPayload{ItemType: string(slot.Type), Slot: idx, CursorQuantity: 1}, nil)
		return OutcomeHandled, true
	}

	if !stackCompatible(s.store, cursor.Item, slot) {
		return OutcomeRejected, false
	}
	if cursor.Item.Quantity >= maxStackFor(cursor.Item.Type) {
		return OutcomeRejected, false
	}

	if slot.Quantity > 1 {
		if err := s.store.SetSlot(idx, ItemStack{Type: slot.Type, Quantity: slot.Quantity - 1}); err != nil {
			s.recoverHeld("withdraw_failed")
			return OutcomeHandled, false
		}
	} else {
		s.store.ClearSlot(idx)
	}
	cursor.Item.Quantity++
	s.store.SetCursor(cursor)
	s.phase = menuHolding
	loggingmenu.SingleWithdraw(context.Background(), s.publisher, s.tick, s.actor,
		loggingmenu.SingleWithdrawPayload{ItemType: string(slot.Type), Slot: idx, CursorQuantity: cursor.Item.Quantity}, nil)
	return OutcomeHandled, true
}
