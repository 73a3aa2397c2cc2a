package state

import (
	"encoding/json"
	"fmt"
	"sort"
)

const defaultMaxStack = 99

// ItemType represents a unique identifier for an item kind.
type ItemType string

// EquipKind enumerates the six equipable slots exposed by the menu.
type EquipKind string

const (
	EquipKindHat       EquipKind = "hat"
	EquipKindRingLeft  EquipKind = "ring_left"
	EquipKindRingRight EquipKind = "ring_right"
	EquipKindBoots     EquipKind = "boots"
	EquipKindShirt     EquipKind = "shirt"
	EquipKindPants     EquipKind = "pants"

	// EquipKindNone marks items that cannot be equipped.
	EquipKindNone EquipKind = ""
)

var validEquipKinds = map[EquipKind]struct{}{
	EquipKindHat:       {},
	EquipKindRingLeft:  {},
	EquipKindRingRight: {},
	EquipKindBoots:     {},
	EquipKindShirt:     {},
	EquipKindPants:     {},
}

// ItemDefinition describes metadata for an item kind that can appear in the
// world. Definitions are immutable once constructed; gameplay systems share a
// single catalog of them.
type ItemDefinition struct {
	ID          ItemType  `json:"id"`
	Stackable   bool      `json:"stackable"`
	MaxStack    int       `json:"max_stack"`
	EquipKind   EquipKind `json:"equip_kind,omitempty"`
	Value       int       `json:"value"`
	Name        string    `json:"name,omitempty"`
	Description string    `json:"description,omitempty"`
}

// ItemDefinitionParams describes the configurable fields used when
// constructing an ItemDefinition.
type ItemDefinitionParams struct {
	ID          ItemType
	Stackable   bool
	MaxStack    int
	EquipKind   EquipKind
	Value       int
	Name        string
	Description string
}

// NewItemDefinition validates and constructs a canonical ItemDefinition.
func NewItemDefinition(params ItemDefinitionParams) (ItemDefinition, error) {
	if params.ID == "" {
		return ItemDefinition{}, fmt.Errorf("item id must be provided")
	}
	if params.EquipKind != EquipKindNone {
		if _, ok := validEquipKinds[params.EquipKind]; !ok {
			return ItemDefinition{}, fmt.Errorf("invalid equip kind %q", params.EquipKind)
		}
		if params.Stackable {
			return ItemDefinition{}, fmt.Errorf("equipable item %s cannot be stackable", params.ID)
		}
	}
	if params.Value < 0 {
		return ItemDefinition{}, fmt.Errorf("item %s value must not be negative", params.ID)
	}

	maxStack := params.MaxStack
	if !params.Stackable {
		maxStack = 1
	} else if maxStack <= 0 {
		maxStack = defaultMaxStack
	}

	return ItemDefinition{
		ID:          params.ID,
		Stackable:   params.Stackable,
		MaxStack:    maxStack,
		EquipKind:   params.EquipKind,
		Value:       params.Value,
		Name:        params.Name,
		Description: params.Description,
	}, nil
}

// MarshalItemDefinitions returns the stable JSON representation for a slice
// of definitions.
func MarshalItemDefinitions(defs []ItemDefinition) ([]byte, error) {
	stable := make([]ItemDefinition, len(defs))
	copy(stable, defs)
	sort.Slice(stable, func(i, j int) bool {
		return stable[i].ID < stable[j].ID
	})
	return json.Marshal(stable)
}

var orderedEquipKinds = []EquipKind{
	EquipKindHat,
	EquipKindRingLeft,
	EquipKindRingRight,
	EquipKindShirt,
	EquipKindPants,
	EquipKindBoots,
}

var equipKindToRank = func() map[EquipKind]int {
	ranks := make(map[EquipKind]int, len(orderedEquipKinds))
	for idx, kind := range orderedEquipKinds {
		ranks[kind] = idx
	}
	return ranks
}()

// EquipKindRank returns the deterministic display order for a kind.
func EquipKindRank(kind EquipKind) int {
	if rank, ok := equipKindToRank[kind]; ok {
		return rank
	}
	return len(orderedEquipKinds)
}

// OrderedEquipKinds returns the canonical slot ordering.
func OrderedEquipKinds() []EquipKind {
	kinds := make([]EquipKind, len(orderedEquipKinds))
	copy(kinds, orderedEquipKinds)
	return kinds
}

// ParseEquipKind validates an equip kind string received from a client.
func ParseEquipKind(value string) (EquipKind, bool) {
	kind := EquipKind(value)
	if _, ok := validEquipKinds[kind]; ok {
		return kind, true
	}
	return EquipKindNone, false
}
