package main

import "pick-and-place/server/internal/state"

type (
	ItemType             = state.ItemType
	ItemStack            = state.ItemStack
	ItemDefinition       = state.ItemDefinition
	ItemDefinitionParams = state.ItemDefinitionParams
	EquipKind            = state.EquipKind
	EquippedItem         = state.EquippedItem
	Equipment            = state.Equipment
	Inventory            = state.Inventory
	HeldCursor           = state.HeldCursor
	CursorCell           = state.CursorCell
	CursorProvenance     = state.CursorProvenance
	Actor                = state.Actor
	Player               = state.Player
	FacingDirection      = state.FacingDirection
)

const (
	EquipKindHat       = state.EquipKindHat
	EquipKindRingLeft  = state.EquipKindRingLeft
	EquipKindRingRight = state.EquipKindRingRight
	EquipKindBoots     = state.EquipKindBoots
	EquipKindShirt     = state.EquipKindShirt
	EquipKindPants     = state.EquipKindPants
	EquipKindNone      = state.EquipKindNone

	ProvenanceFullPickup     = state.ProvenanceFullPickup
	ProvenanceSingleWithdraw = state.ProvenanceSingleWithdraw
	SourceNone               = state.SourceNone

	FacingUp      = state.FacingUp
	FacingDown    = state.FacingDown
	FacingLeft    = state.FacingLeft
	FacingRight   = state.FacingRight
	defaultFacing = state.DefaultFacing
)

func NewInventory(capacity int) Inventory {
	return state.NewInventory(capacity)
}

func NewEquipment() Equipment {
	return state.NewEquipment()
}

func NewItemDefinition(params ItemDefinitionParams) (ItemDefinition, error) {
	return state.NewItemDefinition(params)
}
