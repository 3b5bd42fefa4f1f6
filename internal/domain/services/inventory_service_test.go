package services

import (
	"context"
	"testing"

	"github.com/ak/macrolog/internal/domain/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddIngredientByContainers(t *testing.T) {
	users := newFakeUserRepo()
	seededUser(users, "alice", nil)
	svc := NewInventoryService(users, newFakeIngredientRepo(catalogEgg()), newFakeRecipeRepo())

	item, err := svc.AddIngredient(context.Background(), "alice", AddIngredientToInventoryRequest{
		IngredientID: "egg",
		Containers:   2,
	})
	require.NoError(t, err)

	// 2 cartons × 12 servings × 50g each.
	assert.Equal(t, 24.0, item.NumberOfServings)
	assert.Equal(t, 1200.0, item.TotalAmount)

	inv, err := svc.Get(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, 1200.0, inv["egg"].TotalAmount)
}

func TestAddIngredientByServings(t *testing.T) {
	users := newFakeUserRepo()
	seededUser(users, "alice", nil)
	svc := NewInventoryService(users, newFakeIngredientRepo(catalogEgg()), newFakeRecipeRepo())

	item, err := svc.AddIngredient(context.Background(), "alice", AddIngredientToInventoryRequest{
		IngredientID:     "egg",
		ServingSize:      25,
		NumberOfServings: 4,
	})
	require.NoError(t, err)
	assert.Equal(t, 100.0, item.TotalAmount)
}

func TestAddIngredientRequiresQuantity(t *testing.T) {
	users := newFakeUserRepo()
	seededUser(users, "alice", nil)
	svc := NewInventoryService(users, newFakeIngredientRepo(catalogEgg()), newFakeRecipeRepo())

	_, err := svc.AddIngredient(context.Background(), "alice", AddIngredientToInventoryRequest{
		IngredientID: "egg",
	})
	assert.Error(t, err)
}

func TestAddRecipeCascadeThroughService(t *testing.T) {
	users := newFakeUserRepo()
	seededUser(users, "alice", models.UserInventory{
		"egg":   {ID: "egg", Name: "Egg", Kind: models.FoodKindIngredient, TotalAmount: 300, Unit: "g"},
		"flour": {ID: "flour", Name: "Flour", Kind: models.FoodKindIngredient, TotalAmount: 500, Unit: "g"},
	})

	cake := &models.Recipe{
		ID:   "cake",
		Name: "Cake",
		IngredientList: map[string]models.RecipeIngredientRef{
			"egg":   {ServingSize: 50, NumberOfServings: 3},
			"flour": {ServingSize: 100, NumberOfServings: 2},
		},
		NumberOfServings: 8,
		ServingSize:      120,
		ServingUnit:      "g",
	}
	svc := NewInventoryService(users, newFakeIngredientRepo(), newFakeRecipeRepo(cake))

	item, err := svc.AddRecipe(context.Background(), "alice", AddRecipeToInventoryRequest{
		RecipeID:          "cake",
		NumberOfRecipes:   1,
		UpdateIngredients: true,
	})
	require.NoError(t, err)
	assert.Equal(t, 960.0, item.TotalAmount)

	inv, _ := svc.Get(context.Background(), "alice")
	assert.Equal(t, 150.0, inv["egg"].TotalAmount)
	assert.Equal(t, 300.0, inv["flour"].TotalAmount)
	assert.Equal(t, 960.0, inv["cake"].TotalAmount)
}

func TestAddRecipeCascadeFailureSurfacesMessage(t *testing.T) {
	users := newFakeUserRepo()
	seededUser(users, "alice", models.UserInventory{
		"egg": {ID: "egg", Name: "Egg", Kind: models.FoodKindIngredient, TotalAmount: 100, Unit: "g"},
	})

	cake := &models.Recipe{
		ID:   "cake",
		Name: "Cake",
		IngredientList: map[string]models.RecipeIngredientRef{
			"egg": {ServingSize: 50, NumberOfServings: 3},
		},
		NumberOfServings: 8,
		ServingSize:      120,
	}
	svc := NewInventoryService(users, newFakeIngredientRepo(), newFakeRecipeRepo(cake))

	_, err := svc.AddRecipe(context.Background(), "alice", AddRecipeToInventoryRequest{
		RecipeID:          "cake",
		NumberOfRecipes:   1,
		UpdateIngredients: true,
	})
	require.Error(t, err)
	assert.EqualError(t, err, "Insufficient amount of Egg")

	// Failed cascade leaves the ledger untouched.
	inv, _ := svc.Get(context.Background(), "alice")
	assert.Equal(t, 100.0, inv["egg"].TotalAmount)
	assert.NotContains(t, inv, "cake")
}
