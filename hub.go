package main

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"pick-and-place/server/logging"
)

const (
	writeWait         = 10 * time.Second
	heartbeatInterval = 2 * time.Second
	disconnectAfter   = 3 * heartbeatInterval
)

// Hub owns the world and the live WebSocket subscribers. All world access
// goes through the hub mutex; the simulation loop and the per-connection
// readers never touch the world concurrently.
type Hub struct {
	mu          sync.Mutex
	world       *World
	subscribers map[string]*subscriber
	nextID      atomic.Uint64
}

type subscriber struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func newHub(tuning Tuning, publisher logging.Publisher) *Hub {
	return &Hub{
		world:       newWorld(tuning, publisher),
		subscribers: make(map[string]*subscriber),
	}
}

func (h *Hub) config() worldConfig {
	return worldConfig{
		TickRateHz:         h.world.tuning.TickRateHz,
		InventorySlots:     h.world.tuning.InventorySlots,
		RepeatDelayTicks:   h.world.tuning.RepeatDelayTicks,
		RepeatCadenceTicks: h.world.tuning.RepeatCadenceTicks,
	}
}

// Join registers a new player and returns the latest snapshot.
func (h *Hub) Join() joinResponse {
	id := h.nextID.Add(1)
	playerID := fmt.Sprintf("player-%d", id)
	now := time.Now()

	h.mu.Lock()
	h.world.AddPlayer(playerID, now)
	players := h.world.PlayersSnapshot()
	ground := h.world.GroundItemsSnapshot()
	tick := h.world.currentTick
	h.mu.Unlock()

	go h.broadcastState(players, ground, tick)

	return joinResponse{ID: playerID, Players: players, GroundItems: ground, Config: h.config()}
}

// Subscribe associates a WebSocket connection with an existing player.
func (h *Hub) Subscribe(playerID string, conn *websocket.Conn) (*subscriber, []Player, []GroundItem, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	player, ok := h.world.players[playerID]
	if !ok {
		return nil, nil, nil, false
	}
	player.lastHeartbeat = time.Now()

	if existing, ok := h.subscribers[playerID]; ok {
		existing.conn.Close()
	}

	sub := &subscriber{conn: conn}
	h.subscribers[playerID] = sub
	return sub, h.world.PlayersSnapshot(), h.world.GroundItemsSnapshot(), true
}

// Disconnect removes a player and closes any active subscriber connection.
// The world recovers a held item before the player state is discarded.
func (h *Hub) Disconnect(playerID, reason string) []Player {
	h.mu.Lock()
	sub, subOK := h.subscribers[playerID]
	if subOK {
		delete(h.subscribers, playerID)
	}
	removed := h.world.RemovePlayer(playerID, reason)
	var players []Player
	if removed {
		players = h.world.PlayersSnapshot()
	}
	h.mu.Unlock()

	if subOK {
		sub.conn.Close()
	}
	if !removed {
		return nil
	}
	return players
}

// UpdateIntent stores the latest movement vector and facing for a player.
func (h *Hub) UpdateIntent(playerID string, dx, dy float64, facing string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.world.UpdateIntent(playerID, dx, dy, facing)
}

// UpdateButtons stores the latest polled button state for a player.
func (h *Hub) UpdateButtons(playerID string, primary, withdraw bool) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.world.UpdateButtons(playerID, primary, withdraw)
}

// SetMenuOpen opens or closes the player's inventory menu.
func (h *Hub) SetMenuOpen(playerID string, open bool) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if open {
		return h.world.OpenMenu(playerID)
	}
	h.world.CloseMenu(playerID)
	return nil
}

// SetFocus routes a focus change into the player's open menu session.
func (h *Hub) SetFocus(playerID string, region RegionID) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.world.SetFocus(playerID, region)
}

// UpdateHeartbeat records the most recent heartbeat time and RTT for a player.
func (h *Hub) UpdateHeartbeat(playerID string, receivedAt time.Time, clientSent int64) (time.Duration, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	player, ok := h.world.players[playerID]
	if !ok {
		return 0, false
	}
	player.lastHeartbeat = receivedAt

	if clientSent > 0 {
		clientTime := time.UnixMilli(clientSent)
		if clientTime.Before(receivedAt.Add(5 * time.Second)) {
			rtt := receivedAt.Sub(clientTime)
			if rtt < 0 {
				rtt = 0
			}
			player.lastRTT = rtt
		}
	}
	return player.lastRTT, true
}

// advance runs one simulation step and returns the snapshots plus stale
// subscribers whose players timed out.
func (h *Hub) advance(now time.Time, tick uint64, dt float64) ([]Player, []GroundItem, []*subscriber) {
	h.mu.Lock()

	toClose := make([]*subscriber, 0)
	for id, player := range h.world.players {
		if now.Sub(player.lastHeartbeat) > disconnectAfter {
			if sub, ok := h.subscribers[id]; ok {
				toClose = append(toClose, sub)
				delete(h.subscribers, id)
			}
			h.world.RemovePlayer(id, "heartbeat_timeout")
			log.Printf("disconnecting %s due to heartbeat timeout", id)
		}
	}

	h.world.Advance(tick, dt)
	players := h.world.PlayersSnapshot()
	ground := h.world.GroundItemsSnapshot()
	h.mu.Unlock()

	return players, ground, toClose
}

// RunSimulation drives the fixed-rate tick loop until the stop channel closes.
func (h *Hub) RunSimulation(stop <-chan struct{}) {
	tickRate := h.world.tuning.TickRateHz
	ticker := time.NewTicker(time.Second / time.Duration(tickRate))
	defer ticker.Stop()

	var tick uint64
	last := time.Now()
	for {
		select {
		case <-stop:
			return
		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			if dt <= 0 {
				dt = 1.0 / float64(tickRate)
			}
			last = now
			tick++

			players, ground, toClose := h.advance(now, tick, dt)
			for _, sub := range toClose {
				sub.conn.Close()
			}
			h.broadcastState(players, ground, tick)
		}
	}
}

// DiagnosticsSnapshot exposes heartbeat and session data for the diagnostics
// endpoint.
func (h *Hub) DiagnosticsSnapshot() []diagnosticsPlayer {
	h.mu.Lock()
	defer h.mu.Unlock()

	players := make([]diagnosticsPlayer, 0, len(h.world.players))
	for _, player := range h.world.players {
		players = append(players, diagnosticsPlayer{
			ID:            player.ID,
			LastHeartbeat: player.lastHeartbeat.UnixMilli(),
			RTTMillis:     player.lastRTT.Milliseconds(),
			MenuOpen:      player.menu != nil,
			Holding:       player.menu.Holding(),
		})
	}
	return players
}

// broadcastState sends the latest world snapshot to every subscriber.
func (h *Hub) broadcastState(players []Player, ground []GroundItem, tick uint64) {
	if players == nil {
		h.mu.Lock()
		players = h.world.PlayersSnapshot()
		ground = h.world.GroundItemsSnapshot()
		tick = h.world.currentTick
		h.mu.Unlock()
	}

	msg := stateMessage{
		Type:        "state",
		Players:     players,
		GroundItems: ground,
		Tick:        tick,
		ServerTime:  time.Now().UnixMilli(),
	}
	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("failed to marshal state message: %v", err)
		return
	}

	h.mu.Lock()
	subs := make(map[string]*subscriber, len(h.subscribers))
	for id, sub := range h.subscribers {
		subs[id] = sub
	}
	h.mu.Unlock()

	for id, sub := range subs {
		sub.mu.Lock()
		sub.conn.SetWriteDeadline(time.Now().Add(writeWait))
		err := sub.conn.WriteMessage(websocket.TextMessage, data)
		sub.mu.Unlock()
		if err != nil {
			log.Printf("failed to send update to %s: %v", id, err)
			if remaining := h.Disconnect(id, "write_failed"); remaining != nil {
				go h.broadcastState(remaining, nil, tick)
			}
		}
	}
}
