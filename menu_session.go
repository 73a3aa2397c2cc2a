package main

import (
	"context"

	"pick-and-place/server/logging"
	loggingmenu "pick-and-place/server/logging/menu"
)

// menuPhase is the local view of whether this session is holding an item.
// It is re-derived from the shared cursor cell at the top of every tick, so
// it can never drift from the cell for longer than one tick.
type menuPhase int

const (
	menuIdle menuPhase = iota
	menuHolding
)

// ActionOutcome is the per-press feedback signal. Hosts route Unhandled
// presses to their default handling path; Rejected presses get the
// "cannot place here" feedback instead of the success cue.
type ActionOutcome int

const (
	OutcomeNone ActionOutcome = iota
	OutcomeHandled
	OutcomeRejected
	OutcomeUnhandled
)

func (o ActionOutcome) String() string {
	switch o {
	case OutcomeNone:
		return "none"
	case OutcomeHandled:
		return "handled"
	case OutcomeRejected:
		return "rejected"
	case OutcomeUnhandled:
		return "unhandled"
	default:
		return "unknown"
	}
}

// TickResult reports what the session did with this tick's button state.
type TickResult struct {
	Primary  ActionOutcome
	Withdraw ActionOutcome
}

// MenuSession drives the pad-style inventory protocol for one open menu: a
// primary button that picks up, places, stacks, swaps, equips, trashes, and
// drops through the shared held cursor, and a withdraw button that peels
// single units with hold-to-repeat. One session exists per open menu and is
// discarded on close; there is no process-wide instance.
type MenuSession struct {
	store     MenuStore
	regions   *RegionRegistry
	publisher logging.Publisher
	actor     logging.EntityRef

	repeatDelayTicks   int
	repeatCadenceTicks int

	phase    menuPhase
	buttonA  ButtonTracker
	buttonB  ButtonTracker
	tick     uint64
	closed   bool
	repeatOn bool
	repeatAt int
}

// NewMenuSession constructs a session bound to a store and a region layout.
func NewMenuSession(store MenuStore, regions *RegionRegistry, publisher logging.Publisher, actor logging.EntityRef, tuning Tuning) *MenuSession {
	if publisher == nil {
		publisher = logging.NopPublisher()
	}
	s := &MenuSession{
		store:              store,
		regions:            regions,
		publisher:          publisher,
		actor:              actor,
		repeatDelayTicks:   tuning.RepeatDelayTicks,
		repeatCadenceTicks: tuning.RepeatCadenceTicks,
		repeatAt:           SourceNone,
	}
	if _, holding := store.Cursor(); holding {
		s.phase = menuHolding
	}
	return s
}

// Regions exposes the session's region registry for focus routing.
func (s *MenuSession) Regions() *RegionRegistry {
	if s == nil {
		return nil
	}
	return s.regions
}

// Holding reports whether the session currently considers itself holding.
func (s *MenuSession) Holding() bool {
	return s != nil && s.phase == menuHolding
}

// OnTick runs one full pass of the protocol: cursor reconciliation, region
// injection, button polling, and the two engines. It must be called exactly
// once per simulation tick while the menu is open.
func (s *MenuSession) OnTick(frame uint64, aPressed, bPressed bool) TickResult {
	if s == nil || s.closed {
		return TickResult{}
	}
	s.tick = frame

	s.reconcileCursor()
	s.regions.InjectDropZone()

	a := s.buttonA.Poll(aPressed)
	b := s.buttonB.Poll(bPressed)

	result := TickResult{Primary: OutcomeNone, Withdraw: OutcomeNone}
	if a.Phase == ButtonRisingEdge {
		result.Primary = s.handlePrimary()
	}
	result.Withdraw = s.handleWithdraw(b)
	return result
}

// reconcileCursor re-derives the holding flag from the shared cell. Another
// collaborator may have filled or emptied the cell between our ticks; both
// directions collapse silently, without Recovery, because the collaborator
// already left the item in a valid place.
func (s *MenuSession) reconcileCursor() {
	_, holding := s.store.Cursor()
	switch {
	case !holding && s.phase == menuHolding:
		s.phase = menuIdle
		loggingmenu.CursorDesync(context.Background(), s.publisher, s.tick, s.actor,
			loggingmenu.CursorDesyncPayload{Direction: "cleared_externally"}, nil)
	case holding && s.phase == menuIdle:
		s.phase = menuHolding
		loggingmenu.CursorDesync(context.Background(), s.publisher, s.tick, s.actor,
			loggingmenu.CursorDesyncPayload{Direction: "set_externally"}, nil)
	}
}

// NotifyCursorSet lets an external collaborator declare it just parked an
// item on the shared cursor. Forces the holding state without touching the
// cell itself.
func (s *MenuSession) NotifyCursorSet() {
	if s == nil || s.closed {
		return
	}
	s.phase = menuHolding
}

// NotifyCursorCleared is the symmetric declaration that the cell was just
// emptied by someone else.
func (s *MenuSession) NotifyCursorCleared() {
	if s == nil || s.closed {
		return
	}
	s.phase = menuIdle
	s.clearRepeat()
}

// Close tears the session down. A held item is recovered synchronously
// before the session object is discarded.
func (s *MenuSession) Close() {
	if s == nil || s.closed {
		return
	}
	if _, holding := s.store.Cursor(); holding {
		s.recoverHeld("session_closed")
	}
	s.buttonA.Reset()
	s.buttonB.Reset()
	s.clearRepeat()
	s.closed = true
}

func (s *MenuSession) clearRepeat() {
	s.repeatOn = false
	s.repeatAt = SourceNone
}
