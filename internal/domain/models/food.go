package models

// FoodKind discriminates the two food item variants. The old duck-typed
// shapes ("containers" present means ingredient) are gone; every stored item
// carries an explicit kind.
type FoodKind string

const (
	FoodKindIngredient FoodKind = "ingredient"
	FoodKindRecipe     FoodKind = "recipe"
)

// MealSlot is one of the five meal slots a day is divided into.
type MealSlot string

const (
	MealBreakfast     MealSlot = "breakfast"
	MealLunch         MealSlot = "lunch"
	MealDinner        MealSlot = "dinner"
	MealSnack         MealSlot = "snack"
	MealMiscellaneous MealSlot = "miscellaneous"
)

// MealSlots lists the valid slots in day order.
var MealSlots = []MealSlot{MealBreakfast, MealLunch, MealDinner, MealSnack, MealMiscellaneous}

// Valid reports whether s names a known meal slot.
func (s MealSlot) Valid() bool {
	for _, slot := range MealSlots {
		if s == slot {
			return true
		}
	}
	return false
}

// FoodItem is a quantity of an ingredient or recipe, used both as an
// inventory ledger entry and as a logged meal entry. TotalAmount is the
// balance in the item's native unit. Containers is meaningful only for
// ingredients.
type FoodItem struct {
	ID               string   `bson:"id" json:"id"`
	Name             string   `bson:"name" json:"name"`
	Kind             FoodKind `bson:"kind" json:"kind"`
	Containers       float64  `bson:"containers,omitempty" json:"containers,omitempty"`
	ServingSize      float64  `bson:"servingSize" json:"servingSize"`
	NumberOfServings float64  `bson:"numberOfServings" json:"numberOfServings"`
	TotalAmount      float64  `bson:"totalAmount" json:"totalAmount"`
	Unit             string   `bson:"unit" json:"unit"`
}

// Merge additively combines another quantity of the same food into f.
// Ingredients accumulate containers, servings and total amount; recipes
// accumulate servings and total amount.
func (f *FoodItem) Merge(other FoodItem) {
	if f.Kind == FoodKindIngredient {
		f.Containers += other.Containers
	}
	f.NumberOfServings += other.NumberOfServings
	f.TotalAmount += other.TotalAmount
}

// DailyMealEntry is one meal slot on one date: the logged food items keyed by
// food id. An empty Food map is valid; slot entries are never deleted
// outright.
type DailyMealEntry struct {
	Food map[string]FoodItem `bson:"food" json:"food"`
	Meal MealSlot            `bson:"meal" json:"meal"`
}

// MergeFood folds items into the entry, merging quantities for food already
// present and inserting the rest. An id already stored under a different kind
// keeps the stored entry and drops the addition.
func (e *DailyMealEntry) MergeFood(items map[string]FoodItem) {
	if e.Food == nil {
		e.Food = map[string]FoodItem{}
	}
	for id, item := range items {
		existing, ok := e.Food[id]
		if !ok {
			e.Food[id] = item
			continue
		}
		if existing.Kind != item.Kind {
			continue
		}
		existing.Merge(item)
		e.Food[id] = existing
	}
}

// DateKey is the document-key layout for history dates.
const DateKey = "2006-01-02"
