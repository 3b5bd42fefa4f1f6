package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Goal is a per-nutrient daily target plus display metadata.
type Goal struct {
	Goal  float64 `bson:"goal" json:"goal"`
	Color string  `bson:"color" json:"color"`
}

// UserDocument is the single per-user record holding every ledger: inventory,
// meal history, nutritional history, goals and weight history. The three
// ledgers live on one document on purpose — a logged meal mutates all of
// them in a single document write, which is what keeps them in lockstep.
type UserDocument struct {
	ID  primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	UID string             `bson:"uid" json:"uid"`

	Inventory          UserInventory                          `bson:"inventory" json:"inventory"`
	MealHistory        map[string]map[MealSlot]DailyMealEntry `bson:"mealHistory" json:"mealHistory"`
	NutritionalHistory map[string]map[MealSlot]NutritionFacts `bson:"nutritionalHistory" json:"nutritionalHistory"`
	NutritionalGoals   map[string]Goal                        `bson:"nutritionalGoals" json:"nutritionalGoals"`
	WeightHistory      map[string]float64                     `bson:"weightHistory" json:"weightHistory"`

	// Owned catalog links. Deleting an ingredient or recipe removes its id
	// here, never the catalog row.
	Ingredients []string `bson:"ingredients" json:"ingredients"`
	Recipes     []string `bson:"recipes" json:"recipes"`

	// Version increments on every write and guards concurrent edits from two
	// devices with a check-and-set, instead of last-write-wins.
	Version int64 `bson:"version" json:"-"`

	CreatedAt time.Time `bson:"createdAt" json:"created_at"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updated_at"`
}

// NewUserDocument returns an empty document for a fresh uid with every ledger
// initialized.
func NewUserDocument(uid string) *UserDocument {
	now := time.Now()
	return &UserDocument{
		UID:                uid,
		Inventory:          UserInventory{},
		MealHistory:        map[string]map[MealSlot]DailyMealEntry{},
		NutritionalHistory: map[string]map[MealSlot]NutritionFacts{},
		NutritionalGoals:   map[string]Goal{},
		WeightHistory:      map[string]float64{},
		Ingredients:        []string{},
		Recipes:            []string{},
		Version:            1,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
}

// MealEntry returns the entry for (date, slot), or false when the slot has
// never been written.
func (u *UserDocument) MealEntry(date string, slot MealSlot) (DailyMealEntry, bool) {
	slots, ok := u.MealHistory[date]
	if !ok {
		return DailyMealEntry{}, false
	}
	entry, ok := slots[slot]
	return entry, ok
}

// SetMealEntry writes the entry for (date, slot), creating the date map as
// needed.
func (u *UserDocument) SetMealEntry(date string, slot MealSlot, entry DailyMealEntry) {
	if u.MealHistory == nil {
		u.MealHistory = map[string]map[MealSlot]DailyMealEntry{}
	}
	if u.MealHistory[date] == nil {
		u.MealHistory[date] = map[MealSlot]DailyMealEntry{}
	}
	u.MealHistory[date][slot] = entry
}

// SlotNutrition returns the accumulated nutrition for (date, slot), or false
// when nothing has been logged there.
func (u *UserDocument) SlotNutrition(date string, slot MealSlot) (NutritionFacts, bool) {
	slots, ok := u.NutritionalHistory[date]
	if !ok {
		return NutritionFacts{}, false
	}
	facts, ok := slots[slot]
	return facts, ok
}

// SetSlotNutrition writes the accumulated nutrition for (date, slot).
func (u *UserDocument) SetSlotNutrition(date string, slot MealSlot, facts NutritionFacts) {
	if u.NutritionalHistory == nil {
		u.NutritionalHistory = map[string]map[MealSlot]NutritionFacts{}
	}
	if u.NutritionalHistory[date] == nil {
		u.NutritionalHistory[date] = map[MealSlot]NutritionFacts{}
	}
	u.NutritionalHistory[date][slot] = facts
}
