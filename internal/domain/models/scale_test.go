package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testIngredient() *Ingredient {
	return &Ingredient{
		ID:                   "egg",
		Name:                 "Egg",
		ServingSize:          50,
		ServingUnit:          "g",
		ServingsPerContainer: 12,
		CatalogNutrition: CatalogNutrition{
			Calories: ptr(70),
			Protein:  ptr(6),
		},
	}
}

func TestScaledContributionIdentity(t *testing.T) {
	ref := NutritionFacts{Calories: 70, Protein: 6}

	// One serving at exactly the reference size reproduces the profile.
	out := ScaledContribution(ref, 50, 50, 1)
	assert.Equal(t, 70.0, out.Calories)
	assert.Equal(t, 6.0, out.Protein)
}

func TestScaledContributionProportional(t *testing.T) {
	ref := NutritionFacts{Calories: 70, Protein: 6}

	// 3 servings of 25g each against a 50g reference = 1.5x.
	out := ScaledContribution(ref, 50, 25, 3)
	assert.Equal(t, 105.0, out.Calories)
	assert.Equal(t, 9.0, out.Protein)
}

func TestScaledContributionZeroReferenceServing(t *testing.T) {
	ref := NutritionFacts{Calories: 70}

	// A zero reference serving falls back to 1 instead of dividing by zero.
	out := ScaledContribution(ref, 0, 2, 1)
	assert.Equal(t, 140.0, out.Calories)
}

func TestContainerMultiplier(t *testing.T) {
	assert.Equal(t, 24.0, ContainerMultiplier(2, 12))
	assert.Equal(t, 0.0, ContainerMultiplier(0, 12))
}

func TestIngredientScaleByContainers(t *testing.T) {
	egg := testIngredient()

	out := egg.ScaleByContainers(2)
	assert.Equal(t, 70.0*24, out.Calories)
	assert.Equal(t, 6.0*24, out.Protein)
}

func TestIngredientScaleByServings(t *testing.T) {
	egg := testIngredient()

	out := egg.ScaleByServings(100, 2)
	assert.Equal(t, 280.0, out.Calories)
	assert.Equal(t, 24.0, out.Protein)
}

func TestRecipeNutritionSumsContributions(t *testing.T) {
	flour := &Ingredient{
		ID:          "flour",
		Name:        "Flour",
		ServingSize: 100,
		CatalogNutrition: CatalogNutrition{
			Calories: ptr(360),
		},
	}
	egg := testIngredient()

	list := map[string]RecipeIngredientRef{
		"flour": {ServingSize: 200, NumberOfServings: 1}, // 2x flour = 720
		"egg":   {ServingSize: 50, NumberOfServings: 3},  // 3 eggs = 210
	}

	total := RecipeNutrition(list, map[string]*Ingredient{"flour": flour, "egg": egg})
	assert.Equal(t, 930.0, total.Calories)
	assert.Equal(t, 18.0, total.Protein)
}

func TestRecipeNutritionSkipsUnresolvedIngredients(t *testing.T) {
	list := map[string]RecipeIngredientRef{
		"ghost": {ServingSize: 100, NumberOfServings: 1},
	}

	total := RecipeNutrition(list, map[string]*Ingredient{})
	assert.Equal(t, 0.0, total.Calories)
}

func TestCatalogRoundTrip(t *testing.T) {
	facts := NutritionFacts{
		Calories: 70,
		Protein:  6,
		ExtraNutrition: map[string]ExtraNutrient{
			"caffeine": {Label: "Caffeine", Unit: "mg", Value: 5},
		},
	}

	back := facts.Catalog().Facts()
	require.Equal(t, 70.0, back.Calories)
	require.Equal(t, 6.0, back.Protein)
	assert.Equal(t, 5.0, back.ExtraNutrition["caffeine"].Value)
}
