package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func eggItem(total float64) FoodItem {
	return FoodItem{
		ID:               "egg",
		Name:             "Egg",
		Kind:             FoodKindIngredient,
		ServingSize:      50,
		NumberOfServings: total / 50,
		TotalAmount:      total,
		Unit:             "g",
	}
}

func cakeRecipe() *Recipe {
	return &Recipe{
		ID:   "cake",
		Name: "Cake",
		IngredientList: map[string]RecipeIngredientRef{
			"egg":   {ServingSize: 50, NumberOfServings: 3},
			"flour": {ServingSize: 100, NumberOfServings: 2},
		},
		NumberOfServings: 8,
		ServingSize:      120,
		ServingUnit:      "g",
	}
}

func cakeItem() FoodItem {
	return FoodItem{
		ID:               "cake",
		Name:             "Cake",
		Kind:             FoodKindRecipe,
		ServingSize:      120,
		NumberOfServings: 8,
		TotalAmount:      960,
		Unit:             "g",
	}
}

func TestAddIngredientInsertsAndMerges(t *testing.T) {
	inv := UserInventory{}

	inv.AddIngredient(eggItem(300))
	require.Contains(t, inv, "egg")
	assert.Equal(t, 300.0, inv["egg"].TotalAmount)

	inv.AddIngredient(eggItem(150))
	assert.Equal(t, 450.0, inv["egg"].TotalAmount)
}

func TestAddRecipeCascadeConsumesIngredients(t *testing.T) {
	inv := UserInventory{
		"egg":   eggItem(300),
		"flour": {ID: "flour", Name: "Flour", Kind: FoodKindIngredient, TotalAmount: 500, Unit: "g"},
	}

	err := inv.AddRecipe(cakeRecipe(), cakeItem(), true, false)
	require.NoError(t, err)

	assert.Equal(t, 150.0, inv["egg"].TotalAmount)   // 300 - 3×50
	assert.Equal(t, 300.0, inv["flour"].TotalAmount) // 500 - 2×100
	assert.Equal(t, 960.0, inv["cake"].TotalAmount)
}

func TestAddRecipeMissingIngredientAborts(t *testing.T) {
	inv := UserInventory{"egg": eggItem(300)}

	err := inv.AddRecipe(cakeRecipe(), cakeItem(), true, false)
	require.Error(t, err)
	assert.EqualError(t, err, "Ingredient is not in inventory")

	// Nothing committed: egg untouched, no cake entry.
	assert.Equal(t, 300.0, inv["egg"].TotalAmount)
	assert.NotContains(t, inv, "cake")
}

func TestAddRecipeInsufficientAmountAborts(t *testing.T) {
	inv := UserInventory{
		"egg":   eggItem(100), // needs 150
		"flour": {ID: "flour", Name: "Flour", Kind: FoodKindIngredient, TotalAmount: 500, Unit: "g"},
	}

	err := inv.AddRecipe(cakeRecipe(), cakeItem(), true, false)
	require.Error(t, err)
	assert.EqualError(t, err, "Insufficient amount of Egg")

	assert.Equal(t, 100.0, inv["egg"].TotalAmount)
	assert.Equal(t, 500.0, inv["flour"].TotalAmount)
	assert.NotContains(t, inv, "cake")
}

func TestAddRecipeZeroOutClampsShortfalls(t *testing.T) {
	inv := UserInventory{
		"egg": eggItem(100), // short by 50
	}

	err := inv.AddRecipe(cakeRecipe(), cakeItem(), true, true)
	require.NoError(t, err)

	// Short egg balance clamped away, missing flour ignored.
	assert.NotContains(t, inv, "egg")
	assert.NotContains(t, inv, "flour")
	assert.Equal(t, 960.0, inv["cake"].TotalAmount)
}

func TestAddRecipeWithoutCascade(t *testing.T) {
	inv := UserInventory{"egg": eggItem(300)}

	err := inv.AddRecipe(cakeRecipe(), cakeItem(), false, false)
	require.NoError(t, err)

	assert.Equal(t, 300.0, inv["egg"].TotalAmount)
	assert.Equal(t, 960.0, inv["cake"].TotalAmount)
}

func TestConsumeDecrementsBalance(t *testing.T) {
	inv := UserInventory{"egg": eggItem(300)}

	inv.Consume(eggItem(100))
	assert.Equal(t, 200.0, inv["egg"].TotalAmount)
}

func TestConsumeExactZeroDeletesKey(t *testing.T) {
	inv := UserInventory{"egg": eggItem(300)}

	inv.Consume(eggItem(300))
	assert.NotContains(t, inv, "egg")
}

func TestConsumeBelowZeroDeletesKey(t *testing.T) {
	inv := UserInventory{"egg": eggItem(300)}

	inv.Consume(eggItem(400))
	assert.NotContains(t, inv, "egg")
}

func TestConsumeUntrackedIDIsNoop(t *testing.T) {
	inv := UserInventory{"egg": eggItem(300)}

	inv.Consume(FoodItem{ID: "milk", TotalAmount: 100})
	assert.Len(t, inv, 1)
	assert.Equal(t, 300.0, inv["egg"].TotalAmount)
}

func TestConsumeAll(t *testing.T) {
	inv := UserInventory{
		"egg":   eggItem(300),
		"flour": {ID: "flour", Kind: FoodKindIngredient, TotalAmount: 500},
	}

	inv.ConsumeAll(map[string]FoodItem{
		"egg":   eggItem(100),
		"flour": {ID: "flour", TotalAmount: 500},
	})

	assert.Equal(t, 200.0, inv["egg"].TotalAmount)
	assert.NotContains(t, inv, "flour")
}

func TestFoodItemMerge(t *testing.T) {
	egg := FoodItem{ID: "egg", Kind: FoodKindIngredient, Containers: 1, NumberOfServings: 12, TotalAmount: 600}
	egg.Merge(FoodItem{ID: "egg", Kind: FoodKindIngredient, Containers: 2, NumberOfServings: 24, TotalAmount: 1200})

	assert.Equal(t, 3.0, egg.Containers)
	assert.Equal(t, 36.0, egg.NumberOfServings)
	assert.Equal(t, 1800.0, egg.TotalAmount)

	cake := FoodItem{ID: "cake", Kind: FoodKindRecipe, NumberOfServings: 2, TotalAmount: 240}
	cake.Merge(FoodItem{ID: "cake", Kind: FoodKindRecipe, Containers: 5, NumberOfServings: 1, TotalAmount: 120})

	// Recipes never accumulate containers.
	assert.Equal(t, 0.0, cake.Containers)
	assert.Equal(t, 3.0, cake.NumberOfServings)
	assert.Equal(t, 360.0, cake.TotalAmount)
}

func TestMergeFoodKindClashKeepsStoredEntry(t *testing.T) {
	entry := DailyMealEntry{Meal: MealLunch, Food: map[string]FoodItem{
		"egg": eggItem(100),
	}}

	entry.MergeFood(map[string]FoodItem{
		"egg": {ID: "egg", Kind: FoodKindRecipe, NumberOfServings: 1, TotalAmount: 120},
	})

	require.Len(t, entry.Food, 1)
	assert.Equal(t, FoodKindIngredient, entry.Food["egg"].Kind)
	assert.Equal(t, 100.0, entry.Food["egg"].TotalAmount)
}
