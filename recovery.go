package main

import (
	"context"

	loggingmenu "pick-and-place/server/logging/menu"
)

// recoverHeld returns the held item to a valid location after an internal
// fault or session teardown. First success wins: the original source slot if
// it is still empty, then the inventory's generic insertion rule, then world
// debris. It never fails; whichever branch runs, the item ends up existing
// exactly once and the cursor is cleared.
func (s *MenuSession) recoverHeld(reason string) {
	cursor, ok := s.store.Cursor()
	if !ok {
		s.phase = menuIdle
		return
	}

	item := cursor.Item
	branch := ""

	if cursor.Source != SourceNone {
		if _, occupied := s.store.Slot(cursor.Source); !occupied {
			if err := s.store.SetSlot(cursor.Source, item); err == nil {
				branch = "source_slot"
			}
		}
	}

	if branch == "" {
		leftover := s.store.Insert(item)
		switch {
		case leftover.IsEmpty():
			branch = "inventory_insert"
		case leftover.Quantity < item.Quantity:
			s.store.DropToWorld(leftover)
			branch = "inventory_then_debris"
		default:
			s.store.DropToWorld(leftover)
			branch = "world_debris"
		}
	}

	s.store.ClearCursor()
	s.phase = menuIdle

	loggingmenu.RecoveryRun(context.Background(), s.publisher, s.tick, s.actor,
		loggingmenu.RecoveryRunPayload{
			ItemType: string(item.Type),
			Quantity: item.Quantity,
			Reason:   reason,
			Branch:   branch,
		}, nil)
}
