package lifecycle

import (
	"context"

	"pick-and-place/server/logging"
)

const (
	// EventPlayerJoined is emitted when a player joins the world.
	EventPlayerJoined logging.EventType = "lifecycle.player_joined"
	// EventPlayerDisconnected is emitted when a player leaves the world.
	EventPlayerDisconnected logging.EventType = "lifecycle.player_disconnected"
	// EventMenuOpened is emitted when a player opens the inventory menu.
	EventMenuOpened logging.EventType = "lifecycle.menu_opened"
	// EventMenuClosed is emitted when a player's menu session ends.
	EventMenuClosed logging.EventType = "lifecycle.menu_closed"
)

// PlayerJoinedPayload captures spawn metadata for a new player.
type PlayerJoinedPayload struct {
	SpawnX float64 `json:"spawnX"`
	SpawnY float64 `json:"spawnY"`
}

// PlayerDisconnectedPayload captures the reason a player left.
type PlayerDisconnectedPayload struct {
	Reason string `json:"reason"`
}

// MenuClosedPayload records whether teardown had to recover a held item.
type MenuClosedPayload struct {
	WasHolding bool `json:"wasHolding"`
}

func publish(ctx context.Context, pub logging.Publisher, eventType logging.EventType, tick uint64, actor logging.EntityRef, payload any, extra map[string]any) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     eventType,
		Tick:     tick,
		Actor:    actor,
		Severity: logging.SeverityInfo,
		Category: logging.CategoryLifecycle,
		Payload:  payload,
		Extra:    extra,
	})
}

// PlayerJoined publishes a player join event.
func PlayerJoined(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef, payload PlayerJoinedPayload, extra map[string]any) {
	publish(ctx, pub, EventPlayerJoined, tick, actor, payload, extra)
}

// PlayerDisconnected publishes a player disconnect event.
func PlayerDisconnected(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef, payload PlayerDisconnectedPayload, extra map[string]any) {
	publish(ctx, pub, EventPlayerDisconnected, tick, actor, payload, extra)
}

// MenuOpened publishes a menu-open event.
func MenuOpened(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef, extra map[string]any) {
	publish(ctx, pub, EventMenuOpened, tick, actor, nil, extra)
}

// MenuClosed publishes a menu-close event.
func MenuClosed(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef, payload MenuClosedPayload, extra map[string]any) {
	publish(ctx, pub, EventMenuClosed, tick, actor, payload, extra)
}
