package models

import "math"

// ExtraNutrient is a user-defined nutrient entry keyed by a slug in
// NutritionFacts.ExtraNutrition. Label and Unit are display metadata and are
// carried over from whichever side of an operation first introduces the key.
type ExtraNutrient struct {
	Label string  `bson:"label" json:"label"`
	Unit  string  `bson:"unit" json:"unit"`
	Value float64 `bson:"value" json:"value"`
}

// NutritionFacts is the canonical nutrient profile. Every fixed field is a
// concrete value, never a pointer: derived and aggregated instances always
// default missing nutrients to 0.
type NutritionFacts struct {
	Calories           float64 `bson:"calories" json:"calories"`
	Protein            float64 `bson:"protein" json:"protein"`
	TotalFat           float64 `bson:"totalFat" json:"totalFat"`
	SaturatedFat       float64 `bson:"saturatedFat" json:"saturatedFat"`
	PolyunsaturatedFat float64 `bson:"polyunsaturatedFat" json:"polyunsaturatedFat"`
	MonounsaturatedFat float64 `bson:"monounsaturatedFat" json:"monounsaturatedFat"`
	TransFat           float64 `bson:"transFat" json:"transFat"`
	Cholesterol        float64 `bson:"cholesterol" json:"cholesterol"`
	Sodium             float64 `bson:"sodium" json:"sodium"`
	Potassium          float64 `bson:"potassium" json:"potassium"`
	TotalCarbohydrates float64 `bson:"totalCarbohydrates" json:"totalCarbohydrates"`
	DietaryFiber       float64 `bson:"dietaryFiber" json:"dietaryFiber"`
	TotalSugars        float64 `bson:"totalSugars" json:"totalSugars"`
	AddedSugars        float64 `bson:"addedSugars" json:"addedSugars"`
	SugarAlcohols      float64 `bson:"sugarAlcohols" json:"sugarAlcohols"`
	VitaminA           float64 `bson:"vitaminA" json:"vitaminA"`
	VitaminC           float64 `bson:"vitaminC" json:"vitaminC"`
	VitaminD           float64 `bson:"vitaminD" json:"vitaminD"`
	Calcium            float64 `bson:"calcium" json:"calcium"`
	Iron               float64 `bson:"iron" json:"iron"`

	ExtraNutrition map[string]ExtraNutrient `bson:"extraNutrition" json:"extraNutrition"`
}

// NutrientKeys lists the fixed nutrient keys in display order. The same keys
// address goal entries and flattened profiles.
var NutrientKeys = []string{
	"calories",
	"protein",
	"totalFat",
	"saturatedFat",
	"polyunsaturatedFat",
	"monounsaturatedFat",
	"transFat",
	"cholesterol",
	"sodium",
	"potassium",
	"totalCarbohydrates",
	"dietaryFiber",
	"totalSugars",
	"addedSugars",
	"sugarAlcohols",
	"vitaminA",
	"vitaminC",
	"vitaminD",
	"calcium",
	"iron",
}

// NutrientUnits maps fixed nutrient keys to their display unit.
var NutrientUnits = map[string]string{
	"calories":           "kcal",
	"protein":            "g",
	"totalFat":           "g",
	"saturatedFat":       "g",
	"polyunsaturatedFat": "g",
	"monounsaturatedFat": "g",
	"transFat":           "g",
	"cholesterol":        "mg",
	"sodium":             "mg",
	"potassium":          "mg",
	"totalCarbohydrates": "g",
	"dietaryFiber":       "g",
	"totalSugars":        "g",
	"addedSugars":        "g",
	"sugarAlcohols":      "g",
	"vitaminA":           "mcg",
	"vitaminC":           "mg",
	"vitaminD":           "mcg",
	"calcium":            "mg",
	"iron":               "mg",
}

// fieldPtrs addresses every fixed field by its nutrient key. All arithmetic
// goes through this map so no operation can miss a field.
func (n *NutritionFacts) fieldPtrs() map[string]*float64 {
	return map[string]*float64{
		"calories":           &n.Calories,
		"protein":            &n.Protein,
		"totalFat":           &n.TotalFat,
		"saturatedFat":       &n.SaturatedFat,
		"polyunsaturatedFat": &n.PolyunsaturatedFat,
		"monounsaturatedFat": &n.MonounsaturatedFat,
		"transFat":           &n.TransFat,
		"cholesterol":        &n.Cholesterol,
		"sodium":             &n.Sodium,
		"potassium":          &n.Potassium,
		"totalCarbohydrates": &n.TotalCarbohydrates,
		"dietaryFiber":       &n.DietaryFiber,
		"totalSugars":        &n.TotalSugars,
		"addedSugars":        &n.AddedSugars,
		"sugarAlcohols":      &n.SugarAlcohols,
		"vitaminA":           &n.VitaminA,
		"vitaminC":           &n.VitaminC,
		"vitaminD":           &n.VitaminD,
		"calcium":            &n.Calcium,
		"iron":               &n.Iron,
	}
}

// ZeroNutrition returns an all-zero profile with an initialized extra map.
func ZeroNutrition() NutritionFacts {
	return NutritionFacts{ExtraNutrition: map[string]ExtraNutrient{}}
}

// Clone returns a deep copy, including the extra-nutrient map.
func (n NutritionFacts) Clone() NutritionFacts {
	out := n
	out.ExtraNutrition = make(map[string]ExtraNutrient, len(n.ExtraNutrition))
	for k, v := range n.ExtraNutrition {
		out.ExtraNutrition[k] = v
	}
	return out
}

// Add returns the field-wise sum of n and other. Extra nutrients are unioned
// by key, summing values; metadata comes from whichever side introduces the
// key.
func (n NutritionFacts) Add(other NutritionFacts) NutritionFacts {
	out := n.Clone()
	ptrs := out.fieldPtrs()
	for key, val := range other.fieldPtrs() {
		*ptrs[key] += *val
	}
	for key, extra := range other.ExtraNutrition {
		cur, ok := out.ExtraNutrition[key]
		if !ok {
			cur = ExtraNutrient{Label: extra.Label, Unit: extra.Unit}
		}
		cur.Value += extra.Value
		out.ExtraNutrition[key] = cur
	}
	return out
}

// Subtract returns n minus other with every field clamped at zero. History
// entries must never display a negative nutrient, even after double deletion
// or floating-point drift.
func (n NutritionFacts) Subtract(other NutritionFacts) NutritionFacts {
	out := n.Clone()
	ptrs := out.fieldPtrs()
	for key, val := range other.fieldPtrs() {
		*ptrs[key] = math.Max(*ptrs[key]-*val, 0)
	}
	for key, extra := range other.ExtraNutrition {
		cur, ok := out.ExtraNutrition[key]
		if !ok {
			cur = ExtraNutrient{Label: extra.Label, Unit: extra.Unit}
		}
		cur.Value = math.Max(cur.Value-extra.Value, 0)
		out.ExtraNutrition[key] = cur
	}
	return out
}

// Multiply scales every fixed field and every extra-nutrient value by
// scalar. No clamping: the scalar may represent a legitimately large
// quantity.
func (n NutritionFacts) Multiply(scalar float64) NutritionFacts {
	out := n.Clone()
	for _, ptr := range out.fieldPtrs() {
		*ptr *= scalar
	}
	for key, extra := range out.ExtraNutrition {
		extra.Value *= scalar
		out.ExtraNutrition[key] = extra
	}
	return out
}

// Flatten collapses the profile into a flat nutrient-key → value map,
// dropping extra-nutrient metadata. Goal lookups address nutrients through
// this view.
func (n NutritionFacts) Flatten() map[string]float64 {
	flat := make(map[string]float64, len(NutrientKeys)+len(n.ExtraNutrition))
	for key, ptr := range n.fieldPtrs() {
		flat[key] = *ptr
	}
	for key, extra := range n.ExtraNutrition {
		flat[key] = extra.Value
	}
	return flat
}

// SumSlots reduces a meal-slot → NutritionFacts map to a single daily total,
// starting from an all-zero profile.
func SumSlots(slots map[MealSlot]NutritionFacts) NutritionFacts {
	total := ZeroNutrition()
	for _, slot := range slots {
		total = total.Add(slot)
	}
	return total
}
