package economy

import (
	"context"

	"pick-and-place/server/logging"
)

const (
	// EventItemTrashed is emitted when the trash region destroys an item.
	EventItemTrashed logging.EventType = "economy.item_trashed"
	// EventItemDropped is emitted when an item stack is emitted into the world.
	EventItemDropped logging.EventType = "economy.item_dropped"
	// EventItemGrantFailed is emitted when an inventory grant cannot complete.
	EventItemGrantFailed logging.EventType = "economy.item_grant_failed"
)

// ItemTrashedPayload describes a destroyed item and its refund.
type ItemTrashedPayload struct {
	ItemType string `json:"itemType"`
	Quantity int    `json:"quantity"`
	Refund   int    `json:"refund"`
}

// ItemDroppedPayload describes a stack emitted as ground debris.
type ItemDroppedPayload struct {
	ItemType string `json:"itemType"`
	Quantity int    `json:"quantity"`
	Reason   string `json:"reason"`
}

// ItemGrantFailedPayload describes the attempted item grant.
type ItemGrantFailedPayload struct {
	ItemType string `json:"itemType"`
	Quantity int    `json:"quantity,omitempty"`
	Reason   string `json:"reason,omitempty"`
}

// ItemTrashed publishes a trash-destruction event.
func ItemTrashed(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef, payload ItemTrashedPayload, extra map[string]any) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventItemTrashed,
		Tick:     tick,
		Actor:    actor,
		Severity: logging.SeverityInfo,
		Category: logging.CategoryEconomy,
		Payload:  payload,
		Extra:    extra,
	})
}

// ItemDropped publishes a ground-drop event.
func ItemDropped(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef, payload ItemDroppedPayload, extra map[string]any) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventItemDropped,
		Tick:     tick,
		Actor:    actor,
		Severity: logging.SeverityInfo,
		Category: logging.CategoryEconomy,
		Payload:  payload,
		Extra:    extra,
	})
}

// ItemGrantFailed publishes an event for a failed inventory grant.
func ItemGrantFailed(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef, payload ItemGrantFailedPayload, extra map[string]any) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventItemGrantFailed,
		Tick:     tick,
		Actor:    actor,
		Severity: logging.SeverityWarn,
		Category: logging.CategoryEconomy,
		Payload:  payload,
		Extra:    extra,
	})
}
