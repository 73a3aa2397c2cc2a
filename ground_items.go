package main

import (
	"context"
	"fmt"
	"math"
	"sort"

	"pick-and-place/server/internal/state"
	loggingeconomy "pick-and-place/server/logging/economy"
)

// groundTileKey addresses the tile an item landed on. Stackable debris of the
// same type merges per tile so a burst of drops does not litter the floor.
type groundTileKey struct {
	X int
	Y int
}

type groundItemState struct {
	ID   string
	Type ItemType
	Qty  int
	X    float64
	Y    float64
	Tile groundTileKey
}

// GroundItem is the broadcast shape of a dropped stack.
type GroundItem struct {
	ID       string   `json:"id"`
	Type     ItemType `json:"type"`
	Quantity int      `json:"qty"`
	X        float64  `json:"x"`
	Y        float64  `json:"y"`
}

func tileForPosition(x, y, tileSize float64) groundTileKey {
	if tileSize <= 0 {
		return groundTileKey{}
	}
	return groundTileKey{
		X: int(math.Floor(x / tileSize)),
		Y: int(math.Floor(y / tileSize)),
	}
}

// scatterDropPosition picks a landing spot in front of the actor: the facing
// vector plus a little angular jitter, at a random distance within the
// configured band.
func (w *World) scatterDropPosition(actor *state.ActorState) (float64, float64) {
	fx, fy := state.FacingToVector(actor.Facing)
	base := math.Atan2(fy, fx)
	angle := base + (w.rng.Float64()-0.5)*math.Pi/3
	span := w.tuning.Scatter.MaxDistance - w.tuning.Scatter.MinDistance
	distance := w.tuning.Scatter.MinDistance + w.rng.Float64()*span

	x := actor.X + math.Cos(angle)*distance
	y := actor.Y + math.Sin(angle)*distance
	if x < playerHalf {
		x = playerHalf
	}
	if x > worldWidth-playerHalf {
		x = worldWidth - playerHalf
	}
	if y < playerHalf {
		y = playerHalf
	}
	if y > worldHeight-playerHalf {
		y = worldHeight - playerHalf
	}
	return x, y
}

// upsertGroundItem emits the stack as world debris near the actor. Stackable
// types merge into an existing pile on the landing tile when one exists.
func (w *World) upsertGroundItem(actor *state.ActorState, stack ItemStack, reason string) *groundItemState {
	if w == nil || actor == nil || stack.IsEmpty() {
		return nil
	}

	x, y := w.scatterDropPosition(actor)
	tile := tileForPosition(x, y, w.tuning.Scatter.TileSize)

	if stackable(stack.Type) {
		for _, existing := range w.groundTiles[tile] {
			if existing.Type == stack.Type {
				existing.Qty += stack.Quantity
				w.logItemDrop(actor, stack, reason)
				return existing
			}
		}
	}

	w.nextGroundItemID++
	item := &groundItemState{
		ID:   fmt.Sprintf("ground-%d", w.nextGroundItemID),
		Type: stack.Type,
		Qty:  stack.Quantity,
		X:    x,
		Y:    y,
		Tile: tile,
	}
	w.groundItems[item.ID] = item
	bucket := w.groundTiles[tile]
	if bucket == nil {
		bucket = make(map[string]*groundItemState)
		w.groundTiles[tile] = bucket
	}
	bucket[item.ID] = item

	w.logItemDrop(actor, stack, reason)
	return item
}

func (w *World) removeGroundItem(item *groundItemState) {
	if w == nil || item == nil {
		return
	}
	delete(w.groundItems, item.ID)
	if bucket, ok := w.groundTiles[item.Tile]; ok {
		delete(bucket, item.ID)
		if len(bucket) == 0 {
			delete(w.groundTiles, item.Tile)
		}
	}
}

// GroundItemsSnapshot returns detached copies of the ground items, ordered by
// ID so broadcasts are stable.
func (w *World) GroundItemsSnapshot() []GroundItem {
	items := make([]GroundItem, 0, len(w.groundItems))
	for _, item := range w.groundItems {
		items = append(items, GroundItem{
			ID:       item.ID,
			Type:     item.Type,
			Quantity: item.Qty,
			X:        item.X,
			Y:        item.Y,
		})
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items
}

func (w *World) logItemDrop(actor *state.ActorState, stack ItemStack, reason string) {
	loggingeconomy.ItemDropped(context.Background(), w.publisher, w.currentTick, w.entityRef(actor.ID),
		loggingeconomy.ItemDroppedPayload{ItemType: string(stack.Type), Quantity: stack.Quantity, Reason: reason}, nil)
}
