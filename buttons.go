package main

// ButtonPhase classifies one tick of a logical button's life.
type ButtonPhase int

const (
	ButtonIdle ButtonPhase = iota
	ButtonRisingEdge
	ButtonHeld
	ButtonFallingEdge
)

func (p ButtonPhase) String() string {
	switch p {
	case ButtonIdle:
		return "idle"
	case ButtonRisingEdge:
		return "rising_edge"
	case ButtonHeld:
		return "held"
	case ButtonFallingEdge:
		return "falling_edge"
	default:
		return "unknown"
	}
}

// ButtonSignal is the per-tick output of a tracker.
type ButtonSignal struct {
	Phase     ButtonPhase
	HeldTicks int
}

// ButtonTracker derives edge and hold signals from raw pressed state. The
// simulation polls full button state every tick instead of subscribing to
// press events: event delivery on the original input path was unreliable
// for exactly this interaction, so the tracker is fed state, not events.
// Poll must be called exactly once per tick or edges double-count.
type ButtonTracker struct {
	pressed   bool
	heldTicks int
}

// Poll consumes this tick's pressed state and returns the resulting signal.
func (t *ButtonTracker) Poll(pressed bool) ButtonSignal {
	if t == nil {
		return ButtonSignal{Phase: ButtonIdle}
	}
	wasPressed := t.pressed
	t.pressed = pressed

	switch {
	case pressed && !wasPressed:
		t.heldTicks = 0
		return ButtonSignal{Phase: ButtonRisingEdge}
	case pressed && wasPressed:
		t.heldTicks++
		return ButtonSignal{Phase: ButtonHeld, HeldTicks: t.heldTicks}
	case !pressed && wasPressed:
		t.heldTicks = 0
		return ButtonSignal{Phase: ButtonFallingEdge}
	default:
		return ButtonSignal{Phase: ButtonIdle}
	}
}

// Reset clears all tracked state, as on menu teardown.
func (t *ButtonTracker) Reset() {
	if t == nil {
		return
	}
	t.pressed = false
	t.heldTicks = 0
}
