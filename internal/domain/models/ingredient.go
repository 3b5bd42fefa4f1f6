package models

import "time"

// CatalogNutrition is the nullable nutrient profile stored on catalog
// records. A nil field means "not specified on the label" and is treated as 0
// when the profile is extracted for aggregation.
type CatalogNutrition struct {
	Calories           *float64 `bson:"calories" json:"calories"`
	Protein            *float64 `bson:"protein" json:"protein"`
	TotalFat           *float64 `bson:"totalFat" json:"totalFat"`
	SaturatedFat       *float64 `bson:"saturatedFat" json:"saturatedFat"`
	PolyunsaturatedFat *float64 `bson:"polyunsaturatedFat" json:"polyunsaturatedFat"`
	MonounsaturatedFat *float64 `bson:"monounsaturatedFat" json:"monounsaturatedFat"`
	TransFat           *float64 `bson:"transFat" json:"transFat"`
	Cholesterol        *float64 `bson:"cholesterol" json:"cholesterol"`
	Sodium             *float64 `bson:"sodium" json:"sodium"`
	Potassium          *float64 `bson:"potassium" json:"potassium"`
	TotalCarbohydrates *float64 `bson:"totalCarbohydrates" json:"totalCarbohydrates"`
	DietaryFiber       *float64 `bson:"dietaryFiber" json:"dietaryFiber"`
	TotalSugars        *float64 `bson:"totalSugars" json:"totalSugars"`
	AddedSugars        *float64 `bson:"addedSugars" json:"addedSugars"`
	SugarAlcohols      *float64 `bson:"sugarAlcohols" json:"sugarAlcohols"`
	VitaminA           *float64 `bson:"vitaminA" json:"vitaminA"`
	VitaminC           *float64 `bson:"vitaminC" json:"vitaminC"`
	VitaminD           *float64 `bson:"vitaminD" json:"vitaminD"`
	Calcium            *float64 `bson:"calcium" json:"calcium"`
	Iron               *float64 `bson:"iron" json:"iron"`

	ExtraNutrition map[string]ExtraNutrient `bson:"extraNutrition" json:"extraNutrition"`
}

func deref(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}

// Facts extracts a concrete NutritionFacts profile, mapping unspecified
// nutrients to 0.
func (c CatalogNutrition) Facts() NutritionFacts {
	facts := NutritionFacts{
		Calories:           deref(c.Calories),
		Protein:            deref(c.Protein),
		TotalFat:           deref(c.TotalFat),
		SaturatedFat:       deref(c.SaturatedFat),
		PolyunsaturatedFat: deref(c.PolyunsaturatedFat),
		MonounsaturatedFat: deref(c.MonounsaturatedFat),
		TransFat:           deref(c.TransFat),
		Cholesterol:        deref(c.Cholesterol),
		Sodium:             deref(c.Sodium),
		Potassium:          deref(c.Potassium),
		TotalCarbohydrates: deref(c.TotalCarbohydrates),
		DietaryFiber:       deref(c.DietaryFiber),
		TotalSugars:        deref(c.TotalSugars),
		AddedSugars:        deref(c.AddedSugars),
		SugarAlcohols:      deref(c.SugarAlcohols),
		VitaminA:           deref(c.VitaminA),
		VitaminC:           deref(c.VitaminC),
		VitaminD:           deref(c.VitaminD),
		Calcium:            deref(c.Calcium),
		Iron:               deref(c.Iron),
		ExtraNutrition:     map[string]ExtraNutrient{},
	}
	for key, extra := range c.ExtraNutrition {
		facts.ExtraNutrition[key] = extra
	}
	return facts
}

func ptr(v float64) *float64 {
	return &v
}

// Catalog converts a concrete profile back to the nullable catalog shape.
// Every field comes out specified; used when storing computed recipe
// profiles, which have no "not on the label" notion.
func (n NutritionFacts) Catalog() CatalogNutrition {
	catalog := CatalogNutrition{
		Calories:           ptr(n.Calories),
		Protein:            ptr(n.Protein),
		TotalFat:           ptr(n.TotalFat),
		SaturatedFat:       ptr(n.SaturatedFat),
		PolyunsaturatedFat: ptr(n.PolyunsaturatedFat),
		MonounsaturatedFat: ptr(n.MonounsaturatedFat),
		TransFat:           ptr(n.TransFat),
		Cholesterol:        ptr(n.Cholesterol),
		Sodium:             ptr(n.Sodium),
		Potassium:          ptr(n.Potassium),
		TotalCarbohydrates: ptr(n.TotalCarbohydrates),
		DietaryFiber:       ptr(n.DietaryFiber),
		TotalSugars:        ptr(n.TotalSugars),
		AddedSugars:        ptr(n.AddedSugars),
		SugarAlcohols:      ptr(n.SugarAlcohols),
		VitaminA:           ptr(n.VitaminA),
		VitaminC:           ptr(n.VitaminC),
		VitaminD:           ptr(n.VitaminD),
		Calcium:            ptr(n.Calcium),
		Iron:               ptr(n.Iron),
		ExtraNutrition:     map[string]ExtraNutrient{},
	}
	for key, extra := range n.ExtraNutrition {
		catalog.ExtraNutrition[key] = extra
	}
	return catalog
}

// Ingredient is a global catalog entry. Records are immutable once created;
// removing an ingredient only unlinks it from the user's owned list, the
// catalog row stays.
type Ingredient struct {
	ID                   string   `bson:"_id,omitempty" json:"id"`
	Name                 string   `bson:"name" json:"name"`
	Brand                string   `bson:"brand,omitempty" json:"brand,omitempty"`
	ServingSize          float64  `bson:"servingSize" json:"servingSize"`
	ServingUnit          string   `bson:"servingUnit" json:"servingUnit"`
	ServingsPerContainer float64  `bson:"servingsPerContainer" json:"servingsPerContainer"`
	PricePerContainer    *float64 `bson:"pricePerContainer" json:"pricePerContainer"`

	CatalogNutrition `bson:",inline"`

	CreatedBy string    `bson:"createdBy,omitempty" json:"created_by,omitempty"`
	CreatedAt time.Time `bson:"createdAt" json:"created_at"`
}
