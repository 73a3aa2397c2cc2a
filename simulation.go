package main

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"time"

	"pick-and-place/server/internal/state"
	"pick-and-place/server/logging"
	logginglifecycle "pick-and-place/server/logging/lifecycle"
)

const (
	worldWidth  = 1280.0
	worldHeight = 720.0
	playerHalf  = 14.0
)

// buttonIntent is the latest polled state of the two logical menu buttons.
// Clients report state, not presses; edge detection happens tick-side.
type buttonIntent struct {
	Primary  bool
	Withdraw bool
}

type playerState struct {
	state.ActorState

	intentX float64
	intentY float64
	buttons buttonIntent

	menu       *MenuSession
	trashLevel int

	lastInput     time.Time
	lastHeartbeat time.Time
	lastRTT       time.Duration
	version       uint64
}

// World owns the authoritative simulation state.
type World struct {
	players     map[string]*playerState
	groundItems map[string]*groundItemState
	groundTiles map[groundTileKey]map[string]*groundItemState

	nextGroundItemID uint64
	currentTick      uint64

	tuning    Tuning
	publisher logging.Publisher
	rng       *rand.Rand
}

func newWorld(tuning Tuning, publisher logging.Publisher) *World {
	if publisher == nil {
		publisher = logging.NopPublisher()
	}
	return &World{
		players:     make(map[string]*playerState),
		groundItems: make(map[string]*groundItemState),
		groundTiles: make(map[groundTileKey]map[string]*groundItemState),
		tuning:      tuning,
		publisher:   publisher,
		rng:         rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (w *World) entityRef(id string) logging.EntityRef {
	return logging.EntityRef{ID: id, Kind: logging.EntityKindPlayer}
}

// AddPlayer registers a new player with a seeded starter inventory.
func (w *World) AddPlayer(playerID string, now time.Time) *playerState {
	inventory := NewInventory(w.tuning.InventorySlots)
	_ = inventory.Set(0, ItemStack{Type: ItemTypeWood, Quantity: 24})
	_ = inventory.Set(1, ItemStack{Type: ItemTypeStone, Quantity: 12})
	_ = inventory.Set(2, ItemStack{Type: ItemTypeStrawHat, Quantity: 1})
	_ = inventory.Set(3, ItemStack{Type: ItemTypeFieldSnack, Quantity: 5})

	player := &playerState{
		ActorState: state.ActorState{
			Actor: Actor{
				ID:        playerID,
				X:         worldWidth / 2,
				Y:         worldHeight / 2,
				Facing:    defaultFacing,
				Gold:      50,
				Inventory: inventory,
				Equipment: NewEquipment(),
			},
		},
		lastInput:     now,
		lastHeartbeat: now,
	}
	w.players[playerID] = player

	logginglifecycle.PlayerJoined(context.Background(), w.publisher, w.currentTick, w.entityRef(playerID),
		logginglifecycle.PlayerJoinedPayload{SpawnX: player.X, SpawnY: player.Y}, nil)
	return player
}

// RemovePlayer tears the player down, closing any open menu session first so
// a held item is recovered before the state is discarded.
func (w *World) RemovePlayer(playerID, reason string) bool {
	_, ok := w.players[playerID]
	if !ok {
		return false
	}
	w.CloseMenu(playerID)
	delete(w.players, playerID)
	logginglifecycle.PlayerDisconnected(context.Background(), w.publisher, w.currentTick, w.entityRef(playerID),
		logginglifecycle.PlayerDisconnectedPayload{Reason: reason}, nil)
	return true
}

// OpenMenu starts a menu session for the player. Opening twice is a no-op.
func (w *World) OpenMenu(playerID string) error {
	player, ok := w.players[playerID]
	if !ok {
		return fmt.Errorf("unknown player %s", playerID)
	}
	if player.menu != nil {
		return nil
	}
	store := &playerMenuStore{world: w, player: player}
	regions := buildMenuRegions(player.Inventory.Capacity())
	player.menu = NewMenuSession(store, regions, w.publisher, w.entityRef(playerID), w.tuning)
	logginglifecycle.MenuOpened(context.Background(), w.publisher, w.currentTick, w.entityRef(playerID), nil)
	return nil
}

// CloseMenu ends the player's menu session, recovering a held item if any.
func (w *World) CloseMenu(playerID string) {
	player, ok := w.players[playerID]
	if !ok || player.menu == nil {
		return
	}
	wasHolding := player.menu.Holding()
	player.menu.Close()
	player.menu = nil
	logginglifecycle.MenuClosed(context.Background(), w.publisher, w.currentTick, w.entityRef(playerID),
		logginglifecycle.MenuClosedPayload{WasHolding: wasHolding}, nil)
}

// SetFocus routes a focus change from the host's hit-testing into the
// player's open session.
func (w *World) SetFocus(playerID string, region RegionID) {
	player, ok := w.players[playerID]
	if !ok || player.menu == nil {
		return
	}
	player.menu.Regions().SetFocus(region)
}

// UpdateButtons stores the latest polled button state for a player.
func (w *World) UpdateButtons(playerID string, primary, withdraw bool) bool {
	player, ok := w.players[playerID]
	if !ok {
		return false
	}
	player.buttons = buttonIntent{Primary: primary, Withdraw: withdraw}
	player.lastInput = time.Now()
	return true
}

// UpdateIntent stores the latest movement vector and facing for a player.
func (w *World) UpdateIntent(playerID string, dx, dy float64, facing string) bool {
	player, ok := w.players[playerID]
	if !ok {
		return false
	}

	length := math.Hypot(dx, dy)
	if length > 1 {
		dx /= length
		dy /= length
	}
	player.intentX = dx
	player.intentY = dy

	player.Facing = state.DeriveFacing(dx, dy, player.Facing)
	if dx == 0 && dy == 0 {
		if face, ok := state.ParseFacing(facing); ok {
			player.Facing = face
		}
	}
	player.lastInput = time.Now()
	return true
}

// Advance runs a single simulation step: movement, then one pass of every
// open menu session against that player's polled button state.
func (w *World) Advance(tick uint64, dt float64) {
	w.currentTick = tick
	for _, player := range w.players {
		if player.menu == nil && (player.intentX != 0 || player.intentY != 0) {
			w.movePlayer(player, dt)
		}
		if player.menu != nil {
			player.menu.OnTick(tick, player.buttons.Primary, player.buttons.Withdraw)
		}
	}
}

func (w *World) movePlayer(player *playerState, dt float64) {
	player.X += player.intentX * w.tuning.MoveSpeed * dt
	player.Y += player.intentY * w.tuning.MoveSpeed * dt
	if player.X < playerHalf {
		player.X = playerHalf
	}
	if player.X > worldWidth-playerHalf {
		player.X = worldWidth - playerHalf
	}
	if player.Y < playerHalf {
		player.Y = playerHalf
	}
	if player.Y > worldHeight-playerHalf {
		player.Y = worldHeight - playerHalf
	}
}

// PlayersSnapshot returns detached player copies for broadcasting.
func (w *World) PlayersSnapshot() []Player {
	players := make([]Player, 0, len(w.players))
	for _, player := range w.players {
		players = append(players, Player{Actor: player.SnapshotActor()})
	}
	return players
}
