package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddSumsEveryField(t *testing.T) {
	a := NutritionFacts{Calories: 100, Protein: 10, Sodium: 50}
	b := NutritionFacts{Calories: 40, Protein: 2.5, Iron: 1.2}

	sum := a.Add(b)

	assert.Equal(t, 140.0, sum.Calories)
	assert.Equal(t, 12.5, sum.Protein)
	assert.Equal(t, 50.0, sum.Sodium)
	assert.Equal(t, 1.2, sum.Iron)

	// operands untouched
	assert.Equal(t, 100.0, a.Calories)
	assert.Equal(t, 40.0, b.Calories)
}

func TestAddUnionsExtraNutrients(t *testing.T) {
	a := NutritionFacts{ExtraNutrition: map[string]ExtraNutrient{
		"caffeine": {Label: "Caffeine", Unit: "mg", Value: 80},
	}}
	b := NutritionFacts{ExtraNutrition: map[string]ExtraNutrient{
		"caffeine": {Label: "Caffeine", Unit: "mg", Value: 20},
		"omega3":   {Label: "Omega-3", Unit: "g", Value: 1.5},
	}}

	sum := a.Add(b)

	require.Len(t, sum.ExtraNutrition, 2)
	assert.Equal(t, 100.0, sum.ExtraNutrition["caffeine"].Value)
	assert.Equal(t, "mg", sum.ExtraNutrition["caffeine"].Unit)
	assert.Equal(t, 1.5, sum.ExtraNutrition["omega3"].Value)
	assert.Equal(t, "Omega-3", sum.ExtraNutrition["omega3"].Label)
}

func TestSubtractClampsAtZero(t *testing.T) {
	a := NutritionFacts{Calories: 100, Protein: 5}
	b := NutritionFacts{Calories: 150, Protein: 2}

	diff := a.Subtract(b)

	assert.Equal(t, 0.0, diff.Calories)
	assert.Equal(t, 3.0, diff.Protein)
}

func TestSubtractClampsExtraNutrients(t *testing.T) {
	a := NutritionFacts{ExtraNutrition: map[string]ExtraNutrient{
		"caffeine": {Label: "Caffeine", Unit: "mg", Value: 30},
	}}
	b := NutritionFacts{ExtraNutrition: map[string]ExtraNutrient{
		"caffeine": {Label: "Caffeine", Unit: "mg", Value: 80},
	}}

	diff := a.Subtract(b)

	assert.Equal(t, 0.0, diff.ExtraNutrition["caffeine"].Value)
}

func TestSubtractInvertsAdd(t *testing.T) {
	a := NutritionFacts{Calories: 120, Protein: 8, Sodium: 45}
	b := NutritionFacts{Calories: 80, Protein: 3, Iron: 2}

	back := a.Add(b).Subtract(b)

	assert.Equal(t, a.Calories, back.Calories)
	assert.Equal(t, a.Protein, back.Protein)
	assert.Equal(t, a.Sodium, back.Sodium)
	assert.Equal(t, 0.0, back.Iron)
}

func TestMultiplyIsLinearInScalar(t *testing.T) {
	a := NutritionFacts{
		Calories: 120,
		Protein:  8,
		Sodium:   45,
		Iron:     2,
		ExtraNutrition: map[string]ExtraNutrient{
			"caffeine": {Label: "Caffeine", Unit: "mg", Value: 64},
		},
	}

	// 0.25, 0.5 and 0.75 are binary-exact, so scaling the whole and summing
	// the parts must agree field for field.
	whole := a.Multiply(0.75)
	parts := a.Multiply(0.5).Add(a.Multiply(0.25))

	assert.Equal(t, whole, parts)
	assert.Equal(t, 90.0, whole.Calories)
	assert.Equal(t, 48.0, whole.ExtraNutrition["caffeine"].Value)
}

func TestMultiplyDoesNotClamp(t *testing.T) {
	a := NutritionFacts{Calories: 100, Protein: 10, ExtraNutrition: map[string]ExtraNutrient{
		"caffeine": {Label: "Caffeine", Unit: "mg", Value: 40},
	}}

	scaled := a.Multiply(2.5)
	assert.Equal(t, 250.0, scaled.Calories)
	assert.Equal(t, 25.0, scaled.Protein)
	assert.Equal(t, 100.0, scaled.ExtraNutrition["caffeine"].Value)

	negated := a.Multiply(-1)
	assert.Equal(t, -100.0, negated.Calories)
	assert.Equal(t, -40.0, negated.ExtraNutrition["caffeine"].Value)
}

func TestFlattenCoversAllKeys(t *testing.T) {
	a := NutritionFacts{Calories: 70, Protein: 6, ExtraNutrition: map[string]ExtraNutrient{
		"caffeine": {Label: "Caffeine", Unit: "mg", Value: 12},
	}}

	flat := a.Flatten()

	require.Len(t, flat, len(NutrientKeys)+1)
	assert.Equal(t, 70.0, flat["calories"])
	assert.Equal(t, 6.0, flat["protein"])
	assert.Equal(t, 0.0, flat["iron"])
	assert.Equal(t, 12.0, flat["caffeine"])
}

func TestSumSlots(t *testing.T) {
	slots := map[MealSlot]NutritionFacts{
		MealBreakfast: {Calories: 300, Protein: 20},
		MealLunch:     {Calories: 550, Protein: 35},
		MealSnack:     {Calories: 150},
	}

	total := SumSlots(slots)

	assert.Equal(t, 1000.0, total.Calories)
	assert.Equal(t, 55.0, total.Protein)
}

func TestSumSlotsEmpty(t *testing.T) {
	total := SumSlots(map[MealSlot]NutritionFacts{})
	assert.Equal(t, 0.0, total.Calories)
	assert.NotNil(t, total.ExtraNutrition)
}
