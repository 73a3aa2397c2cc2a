package menu

import (
	"context"

	"pick-and-place/server/logging"
)

const (
	// EventItemPickedUp is emitted when a whole stack is lifted onto the cursor.
	EventItemPickedUp logging.EventType = "menu.item_picked_up"
	// EventItemPlaced is emitted when the cursor item lands in an empty slot.
	EventItemPlaced logging.EventType = "menu.item_placed"
	// EventItemStacked is emitted when the cursor item merges into a slot.
	EventItemStacked logging.EventType = "menu.item_stacked"
	// EventItemSwapped is emitted when the cursor item trades places with a slot.
	EventItemSwapped logging.EventType = "menu.item_swapped"
	// EventItemEquipped is emitted when the cursor item enters an equipment slot.
	EventItemEquipped logging.EventType = "menu.item_equipped"
	// EventItemUnequipped is emitted when an equipped item moves to the cursor.
	EventItemUnequipped logging.EventType = "menu.item_unequipped"
	// EventPlacementRejected is emitted when a placement target refuses the item.
	EventPlacementRejected logging.EventType = "menu.placement_rejected"
	// EventSingleWithdraw is emitted for each single-unit withdrawal.
	EventSingleWithdraw logging.EventType = "menu.single_withdraw"
	// EventInventorySorted is emitted when the sort action runs.
	EventInventorySorted logging.EventType = "menu.inventory_sorted"
	// EventCursorDesync is emitted when the shared cursor cell disagrees with
	// the session's cached phase at the top of a tick.
	EventCursorDesync logging.EventType = "menu.cursor_desync"
	// EventRecoveryRun is emitted whenever the recovery routine disposes of a
	// held item.
	EventRecoveryRun logging.EventType = "menu.recovery_run"
)

// ItemPickedUpPayload describes a full-stack pickup.
type ItemPickedUpPayload struct {
	ItemType string `json:"itemType"`
	Quantity int    `json:"quantity"`
	Slot     int    `json:"slot"`
}

// ItemPlacedPayload describes a placement into an empty slot.
type ItemPlacedPayload struct {
	ItemType string `json:"itemType"`
	Quantity int    `json:"quantity"`
	Slot     int    `json:"slot"`
}

// ItemStackedPayload describes a merge, including any remainder left riding
// the cursor.
type ItemStackedPayload struct {
	ItemType  string `json:"itemType"`
	Moved     int    `json:"moved"`
	Remainder int    `json:"remainder"`
	Slot      int    `json:"slot"`
}

// ItemSwappedPayload describes a cursor/slot trade.
type ItemSwappedPayload struct {
	PlacedType string `json:"placedType"`
	TakenType  string `json:"takenType"`
	Slot       int    `json:"slot"`
}

// ItemEquipPayload describes an equip or unequip transfer.
type ItemEquipPayload struct {
	ItemType string `json:"itemType"`
	Kind     string `json:"kind"`
}

// PlacementRejectedPayload describes why a target refused the cursor item.
type PlacementRejectedPayload struct {
	ItemType string `json:"itemType"`
	Kind     string `json:"kind,omitempty"`
	Reason   string `json:"reason"`
}

// SingleWithdrawPayload describes one single-unit withdrawal.
type SingleWithdrawPayload struct {
	ItemType       string `json:"itemType"`
	Slot           int    `json:"slot"`
	CursorQuantity int    `json:"cursorQuantity"`
}

// CursorDesyncPayload records which direction the shared cell drifted.
type CursorDesyncPayload struct {
	Direction string `json:"direction"`
}

// RecoveryRunPayload records how a held item was returned to safety.
type RecoveryRunPayload struct {
	ItemType string `json:"itemType"`
	Quantity int    `json:"quantity"`
	Reason   string `json:"reason"`
	Branch   string `json:"branch"`
}

func publish(ctx context.Context, pub logging.Publisher, eventType logging.EventType, tick uint64, actor logging.EntityRef, severity logging.Severity, payload any, extra map[string]any) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     eventType,
		Tick:     tick,
		Actor:    actor,
		Severity: severity,
		Category: logging.CategoryMenu,
		Payload:  payload,
		Extra:    extra,
	})
}

// ItemPickedUp publishes a full-stack pickup event.
func ItemPickedUp(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef, payload ItemPickedUpPayload, extra map[string]any) {
	publish(ctx, pub, EventItemPickedUp, tick, actor, logging.SeverityInfo, payload, extra)
}

// ItemPlaced publishes a placement event.
func ItemPlaced(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef, payload ItemPlacedPayload, extra map[string]any) {
	publish(ctx, pub, EventItemPlaced, tick, actor, logging.SeverityInfo, payload, extra)
}

// ItemStacked publishes a merge event.
func ItemStacked(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef, payload ItemStackedPayload, extra map[string]any) {
	publish(ctx, pub, EventItemStacked, tick, actor, logging.SeverityInfo, payload, extra)
}

// ItemSwapped publishes a swap event.
func ItemSwapped(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef, payload ItemSwappedPayload, extra map[string]any) {
	publish(ctx, pub, EventItemSwapped, tick, actor, logging.SeverityInfo, payload, extra)
}

// ItemEquipped publishes an equip event.
func ItemEquipped(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef, payload ItemEquipPayload, extra map[string]any) {
	publish(ctx, pub, EventItemEquipped, tick, actor, logging.SeverityInfo, payload, extra)
}

// ItemUnequipped publishes an unequip event.
func ItemUnequipped(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef, payload ItemEquipPayload, extra map[string]any) {
	publish(ctx, pub, EventItemUnequipped, tick, actor, logging.SeverityInfo, payload, extra)
}

// PlacementRejected publishes a rejection event.
func PlacementRejected(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef, payload PlacementRejectedPayload, extra map[string]any) {
	publish(ctx, pub, EventPlacementRejected, tick, actor, logging.SeverityInfo, payload, extra)
}

// SingleWithdraw publishes a single-unit withdrawal event.
func SingleWithdraw(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef, payload SingleWithdrawPayload, extra map[string]any) {
	publish(ctx, pub, EventSingleWithdraw, tick, actor, logging.SeverityDebug, payload, extra)
}

// InventorySorted publishes a sort event.
func InventorySorted(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef, extra map[string]any) {
	publish(ctx, pub, EventInventorySorted, tick, actor, logging.SeverityInfo, nil, extra)
}

// CursorDesync publishes a reconciliation event.
func CursorDesync(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef, payload CursorDesyncPayload, extra map[string]any) {
	publish(ctx, pub, EventCursorDesync, tick, actor, logging.SeverityDebug, payload, extra)
}

// RecoveryRun publishes a recovery event.
func RecoveryRun(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef, payload RecoveryRunPayload, extra map[string]any) {
	publish(ctx, pub, EventRecoveryRun, tick, actor, logging.SeverityWarn, payload, extra)
}
