package models

// referenceServingOr1 guards the serving-size ratio against a zero or
// unspecified reference serving. The fallback of 1 keeps the math total; it
// is a division guard, not a nutritional claim.
func referenceServingOr1(refServingSize float64) float64 {
	if refServingSize <= 0 {
		return 1
	}
	return refServingSize
}

// ScaledContribution computes the nutrient contribution of numberOfServings
// servings of servingSize each, relative to a profile defined at
// refServingSize. This single function backs recipe creation, recipe
// expansion for display, and per-log-entry scaling; all three must agree
// bit-for-bit for the same inputs.
func ScaledContribution(ref NutritionFacts, refServingSize, servingSize, numberOfServings float64) NutritionFacts {
	return ref.Multiply(numberOfServings * servingSize / referenceServingOr1(refServingSize))
}

// ContainerMultiplier converts a container count to a serving multiplier.
func ContainerMultiplier(numberOfContainers, servingsPerContainer float64) float64 {
	return numberOfContainers * servingsPerContainer
}

// ScaleByContainers computes the nutrition of numberOfContainers whole
// containers of the ingredient.
func (i *Ingredient) ScaleByContainers(numberOfContainers float64) NutritionFacts {
	return i.Facts().Multiply(ContainerMultiplier(numberOfContainers, i.ServingsPerContainer))
}

// ScaleByServings computes the nutrition of numberOfServings servings of
// servingSize each, relative to the ingredient's reference serving.
func (i *Ingredient) ScaleByServings(servingSize, numberOfServings float64) NutritionFacts {
	return ScaledContribution(i.Facts(), i.ServingSize, servingSize, numberOfServings)
}

// ScaleByServings computes the nutrition of numberOfServings recipe servings
// of servingSize each, relative to the recipe's reference serving.
func (r *Recipe) ScaleByServings(servingSize, numberOfServings float64) NutritionFacts {
	return ScaledContribution(r.Facts(), r.ServingSize, servingSize, numberOfServings)
}

// RecipeNutrition sums the proportional ingredient contributions for one full
// recipe batch. ingredients maps ingredient id to its catalog record; refs
// without a resolved ingredient contribute nothing.
func RecipeNutrition(ingredientList map[string]RecipeIngredientRef, ingredients map[string]*Ingredient) NutritionFacts {
	total := ZeroNutrition()
	for id, ref := range ingredientList {
		ing, ok := ingredients[id]
		if !ok || ing == nil {
			continue
		}
		total = total.Add(ScaledContribution(ing.Facts(), ing.ServingSize, ref.ServingSize, ref.NumberOfServings))
	}
	return total
}
