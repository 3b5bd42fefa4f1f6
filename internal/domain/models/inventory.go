package models

import "fmt"

// UserInventory is the live per-user ledger of owned food, keyed by catalog
// id. Entries whose balance reaches 0 are removed, never kept at zero.
type UserInventory map[string]FoodItem

// MissingIngredientError is returned when a recipe cascade references an
// ingredient the inventory does not hold. The message is surfaced to the
// user verbatim.
type MissingIngredientError struct {
	IngredientID string
}

func (e *MissingIngredientError) Error() string {
	return "Ingredient is not in inventory"
}

// InsufficientAmountError is returned when a recipe cascade would drive an
// ingredient balance negative. The message is surfaced to the user verbatim.
type InsufficientAmountError struct {
	Name string
}

func (e *InsufficientAmountError) Error() string {
	return fmt.Sprintf("Insufficient amount of %s", e.Name)
}

// Clone returns a shallow copy of the ledger (FoodItem is a value type).
func (inv UserInventory) Clone() UserInventory {
	out := make(UserInventory, len(inv))
	for id, item := range inv {
		out[id] = item
	}
	return out
}

// AddIngredient merges an ingredient quantity into the ledger: existing
// entries accumulate the balance, new ids are inserted as given. Never fails.
func (inv UserInventory) AddIngredient(item FoodItem) {
	if existing, ok := inv[item.ID]; ok {
		existing.TotalAmount += item.TotalAmount
		inv[item.ID] = existing
	} else {
		inv[item.ID] = item
	}
}

// AddRecipe merges a prepared recipe into the ledger. When updateIngredients
// is set, the constituent ingredients are decremented first: each entry of
// the recipe's ingredient list consumes servingSize × numberOfServings from
// the matching inventory balance. A missing ingredient or an insufficient
// balance aborts the whole operation with the inventory untouched, unless
// zeroOutIngredients allows clamping the balance at zero instead.
func (inv UserInventory) AddRecipe(recipe *Recipe, item FoodItem, updateIngredients, zeroOutIngredients bool) error {
	staged := inv.Clone()

	if updateIngredients {
		for ingredientID, ref := range recipe.IngredientList {
			consumed := ref.ServingSize * ref.NumberOfServings

			entry, ok := staged[ingredientID]
			if !ok {
				if !zeroOutIngredients {
					return &MissingIngredientError{IngredientID: ingredientID}
				}
				continue
			}

			remaining := entry.TotalAmount - consumed
			switch {
			case remaining > 0:
				entry.TotalAmount = remaining
				staged[ingredientID] = entry
			case remaining == 0:
				delete(staged, ingredientID)
			default:
				if !zeroOutIngredients {
					return &InsufficientAmountError{Name: entry.Name}
				}
				delete(staged, ingredientID)
			}
		}
	}

	staged.AddIngredient(item)

	// Commit only after the whole cascade succeeded.
	for id := range inv {
		delete(inv, id)
	}
	for id, entry := range staged {
		inv[id] = entry
	}
	return nil
}

// Consume decrements an entry's balance by the consumed item's total amount.
// A balance of exactly 0 removes the key; ids absent from the ledger are
// ignored (food can be logged without being tracked in inventory). Balances
// never go negative.
func (inv UserInventory) Consume(item FoodItem) {
	entry, ok := inv[item.ID]
	if !ok {
		return
	}
	remaining := entry.TotalAmount - item.TotalAmount
	if remaining <= 0 {
		delete(inv, item.ID)
		return
	}
	entry.TotalAmount = remaining
	inv[item.ID] = entry
}

// ConsumeAll applies Consume for every item in the batch. Items address
// disjoint keys, so order does not matter.
func (inv UserInventory) ConsumeAll(items map[string]FoodItem) {
	for _, item := range items {
		inv.Consume(item)
	}
}
