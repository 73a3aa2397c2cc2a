package main

import "sort"

const (
	ItemTypeGold        ItemType = "gold"
	ItemTypeWood        ItemType = "wood"
	ItemTypeStone       ItemType = "stone"
	ItemTypeFiber       ItemType = "fiber"
	ItemTypeFieldSnack  ItemType = "field_snack"
	ItemTypeStrawHat    ItemType = "straw_hat"
	ItemTypeAmberRing   ItemType = "amber_ring"
	ItemTypeGlowRing    ItemType = "glow_ring"
	ItemTypeLeatherBoot ItemType = "leather_boots"
	ItemTypeWorkShirt   ItemType = "work_shirt"
	ItemTypeWorkPants   ItemType = "work_pants"
)

var itemCatalog = buildItemCatalog()

func buildItemCatalog() map[ItemType]ItemDefinition {
	defs := []ItemDefinition{
		mustDefine(ItemDefinitionParams{
			ID:          ItemTypeGold,
			Stackable:   true,
			MaxStack:    999,
			Value:       1,
			Name:        "Gold Coin",
			Description: "Currency. Stacks high, spends fast.",
		}),
		mustDefine(ItemDefinitionParams{
			ID:          ItemTypeWood,
			Stackable:   true,
			Value:       2,
			Name:        "Wood",
			Description: "Split logs, fit for building or burning.",
		}),
		mustDefine(ItemDefinitionParams{
			ID:          ItemTypeStone,
			Stackable:   true,
			Value:       2,
			Name:        "Stone",
			Description: "Rough quarried stone.",
		}),
		mustDefine(ItemDefinitionParams{
			ID:          ItemTypeFiber,
			Stackable:   true,
			Value:       1,
			Name:        "Fiber",
			Description: "Plant fiber pulled from weeds.",
		}),
		mustDefine(ItemDefinitionParams{
			ID:          ItemTypeFieldSnack,
			Stackable:   true,
			MaxStack:    20,
			Value:       5,
			Name:        "Field Snack",
			Description: "A pressed seed bar. Restores a little energy.",
		}),
		mustDefine(ItemDefinitionParams{
			ID:          ItemTypeStrawHat,
			EquipKind:   EquipKindHat,
			Value:       40,
			Name:        "Straw Hat",
			Description: "Keeps the sun off during long hauls.",
		}),
		mustDefine(ItemDefinitionParams{
			ID:          ItemTypeAmberRing,
			EquipKind:   EquipKindRingLeft,
			Value:       120,
			Name:        "Amber Ring",
			Description: "Warm to the touch. Fits the left hand.",
		}),
		mustDefine(ItemDefinitionParams{
			ID:          ItemTypeGlowRing,
			EquipKind:   EquipKindRingRight,
			Value:       150,
			Name:        "Glow Ring",
			Description: "Sheds a faint light. Fits the right hand.",
		}),
		mustDefine(ItemDefinitionParams{
			ID:          ItemTypeLeatherBoot,
			EquipKind:   EquipKindBoots,
			Value:       60,
			Name:        "Leather Boots",
			Description: "Sturdy boots with worn soles.",
		}),
		mustDefine(ItemDefinitionParams{
			ID:          ItemTypeWorkShirt,
			EquipKind:   EquipKindShirt,
			Value:       25,
			Name:        "Work Shirt",
			Description: "Plain cotton, triple stitched.",
		}),
		mustDefine(ItemDefinitionParams{
			ID:          ItemTypeWorkPants,
			EquipKind:   EquipKindPants,
			Value:       30,
			Name:        "Work Pants",
			Description: "Deep pockets, reinforced knees.",
		}),
	}

	catalog := make(map[ItemType]ItemDefinition, len(defs))
	for _, def := range defs {
		catalog[def.ID] = def
	}
	return catalog
}

func mustDefine(params ItemDefinitionParams) ItemDefinition {
	def, err := NewItemDefinition(params)
	if err != nil {
		panic(err)
	}
	return def
}

// ItemDefinitionFor resolves a catalog entry by item type.
func ItemDefinitionFor(itemType ItemType) (ItemDefinition, bool) {
	def, ok := itemCatalog[itemType]
	return def, ok
}

// ItemDefinitions returns the catalog entries sorted by id.
func ItemDefinitions() []ItemDefinition {
	defs := make([]ItemDefinition, 0, len(itemCatalog))
	for _, def := range itemCatalog {
		defs = append(defs, def)
	}
	sort.Slice(defs, func(i, j int) bool { return defs[i].ID < defs[j].ID })
	return defs
}

// maxStackFor reports the stack limit for an item type, defaulting to a
// single unit for unknown types so they never merge.
func maxStackFor(itemType ItemType) int {
	if def, ok := ItemDefinitionFor(itemType); ok {
		return def.MaxStack
	}
	return 1
}

// stackable reports whether two stacks of this type may merge.
func stackable(itemType ItemType) bool {
	def, ok := ItemDefinitionFor(itemType)
	return ok && def.Stackable
}
