package models

import "time"

// RecipeIngredientRef records how much of one ingredient a full recipe batch
// consumes: NumberOfServings servings of ServingSize each, in the
// ingredient's native unit.
type RecipeIngredientRef struct {
	ServingSize      float64 `bson:"servingSize" json:"servingSize"`
	NumberOfServings float64 `bson:"numberOfServings" json:"numberOfServings"`
}

// Recipe is a derived catalog entry. Its stored nutrient profile is the
// proportional sum over IngredientList at creation time and is not recomputed
// when the underlying ingredients change.
type Recipe struct {
	ID               string                         `bson:"_id,omitempty" json:"id"`
	Name             string                         `bson:"name" json:"name"`
	IngredientList   map[string]RecipeIngredientRef `bson:"ingredientList" json:"ingredientList"`
	NumberOfServings float64                        `bson:"numberOfServings" json:"numberOfServings"`
	ServingSize      float64                        `bson:"servingSize" json:"servingSize"`
	ServingUnit      string                         `bson:"servingUnit" json:"servingUnit"`
	PricePerServing  *float64                       `bson:"pricePerServing" json:"pricePerServing"`
	TimesUsed        int64                          `bson:"timesUsed" json:"timesUsed"`

	CatalogNutrition `bson:",inline"`

	CreatedBy string    `bson:"createdBy,omitempty" json:"created_by,omitempty"`
	CreatedAt time.Time `bson:"createdAt" json:"created_at"`
}
