package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/ak/macrolog/internal/domain/models"
	"github.com/ak/macrolog/internal/domain/repositories"
	"github.com/ak/macrolog/internal/pkg/logger"
	"go.uber.org/zap"
)

func testLogger() *logger.Logger {
	return &logger.Logger{Logger: zap.NewNop()}
}

// fakeUserRepo is an in-memory UserRepository with the same version
// check-and-set semantics as the Mongo implementation. GetByUID returns a
// deep copy, so callers can only change stored state through UpdateFields.
type fakeUserRepo struct {
	docs map[string]*models.UserDocument
	// failUpdates makes the next n UpdateFields calls lose the version race.
	failUpdates int
	updateCalls int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{docs: map[string]*models.UserDocument{}}
}

func (r *fakeUserRepo) seed(doc *models.UserDocument) {
	r.docs[doc.UID] = doc
}

func cloneUserDoc(doc *models.UserDocument) *models.UserDocument {
	out := *doc
	out.Inventory = doc.Inventory.Clone()
	out.MealHistory = map[string]map[models.MealSlot]models.DailyMealEntry{}
	for date, slots := range doc.MealHistory {
		out.MealHistory[date] = map[models.MealSlot]models.DailyMealEntry{}
		for slot, entry := range slots {
			food := make(map[string]models.FoodItem, len(entry.Food))
			for id, item := range entry.Food {
				food[id] = item
			}
			out.MealHistory[date][slot] = models.DailyMealEntry{Food: food, Meal: entry.Meal}
		}
	}
	out.NutritionalHistory = map[string]map[models.MealSlot]models.NutritionFacts{}
	for date, slots := range doc.NutritionalHistory {
		out.NutritionalHistory[date] = map[models.MealSlot]models.NutritionFacts{}
		for slot, facts := range slots {
			out.NutritionalHistory[date][slot] = facts.Clone()
		}
	}
	out.NutritionalGoals = make(map[string]models.Goal, len(doc.NutritionalGoals))
	for key, goal := range doc.NutritionalGoals {
		out.NutritionalGoals[key] = goal
	}
	out.WeightHistory = make(map[string]float64, len(doc.WeightHistory))
	for date, kg := range doc.WeightHistory {
		out.WeightHistory[date] = kg
	}
	out.Ingredients = append([]string{}, doc.Ingredients...)
	out.Recipes = append([]string{}, doc.Recipes...)
	return &out
}

func (r *fakeUserRepo) Create(ctx context.Context, user *models.UserDocument) error {
	if _, ok := r.docs[user.UID]; ok {
		return fmt.Errorf("duplicate uid %s", user.UID)
	}
	r.docs[user.UID] = cloneUserDoc(user)
	return nil
}

func (r *fakeUserRepo) GetByUID(ctx context.Context, uid string) (*models.UserDocument, error) {
	doc, ok := r.docs[uid]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	return cloneUserDoc(doc), nil
}

func (r *fakeUserRepo) UpdateFields(ctx context.Context, uid string, version int64, fields map[string]any) error {
	r.updateCalls++
	doc, ok := r.docs[uid]
	if !ok {
		return repositories.ErrUserNotFound
	}
	if r.failUpdates > 0 {
		r.failUpdates--
		doc.Version++
		return repositories.ErrVersionConflict
	}
	if doc.Version != version {
		return repositories.ErrVersionConflict
	}
	for key, value := range fields {
		switch key {
		case "inventory":
			doc.Inventory = value.(models.UserInventory)
		case "mealHistory":
			doc.MealHistory = value.(map[string]map[models.MealSlot]models.DailyMealEntry)
		case "nutritionalHistory":
			doc.NutritionalHistory = value.(map[string]map[models.MealSlot]models.NutritionFacts)
		case "nutritionalGoals":
			doc.NutritionalGoals = value.(map[string]models.Goal)
		case "weightHistory":
			doc.WeightHistory = value.(map[string]float64)
		default:
			return fmt.Errorf("unexpected field %s", key)
		}
	}
	doc.Version++
	return nil
}

func (r *fakeUserRepo) LinkIngredient(ctx context.Context, uid, ingredientID string) error {
	doc, ok := r.docs[uid]
	if !ok {
		return repositories.ErrUserNotFound
	}
	for _, id := range doc.Ingredients {
		if id == ingredientID {
			return nil
		}
	}
	doc.Ingredients = append(doc.Ingredients, ingredientID)
	return nil
}

func (r *fakeUserRepo) UnlinkIngredient(ctx context.Context, uid, ingredientID string) error {
	doc, ok := r.docs[uid]
	if !ok {
		return repositories.ErrUserNotFound
	}
	out := doc.Ingredients[:0]
	for _, id := range doc.Ingredients {
		if id != ingredientID {
			out = append(out, id)
		}
	}
	doc.Ingredients = out
	return nil
}

func (r *fakeUserRepo) LinkRecipe(ctx context.Context, uid, recipeID string) error {
	doc, ok := r.docs[uid]
	if !ok {
		return repositories.ErrUserNotFound
	}
	for _, id := range doc.Recipes {
		if id == recipeID {
			return nil
		}
	}
	doc.Recipes = append(doc.Recipes, recipeID)
	return nil
}

func (r *fakeUserRepo) UnlinkRecipe(ctx context.Context, uid, recipeID string) error {
	doc, ok := r.docs[uid]
	if !ok {
		return repositories.ErrUserNotFound
	}
	out := doc.Recipes[:0]
	for _, id := range doc.Recipes {
		if id != recipeID {
			out = append(out, id)
		}
	}
	doc.Recipes = out
	return nil
}

type fakeIngredientRepo struct {
	items map[string]*models.Ingredient
}

func newFakeIngredientRepo(items ...*models.Ingredient) *fakeIngredientRepo {
	r := &fakeIngredientRepo{items: map[string]*models.Ingredient{}}
	for _, item := range items {
		r.items[item.ID] = item
	}
	return r
}

func (r *fakeIngredientRepo) Create(ctx context.Context, ingredient *models.Ingredient) error {
	if ingredient.ID == "" {
		ingredient.ID = fmt.Sprintf("ingredient-%d", len(r.items)+1)
	}
	r.items[ingredient.ID] = ingredient
	return nil
}

func (r *fakeIngredientRepo) GetByID(ctx context.Context, id string) (*models.Ingredient, error) {
	return r.items[id], nil
}

func (r *fakeIngredientRepo) GetByIDs(ctx context.Context, ids []string) ([]*models.Ingredient, error) {
	var out []*models.Ingredient
	for _, id := range ids {
		if item, ok := r.items[id]; ok {
			out = append(out, item)
		}
	}
	return out, nil
}

func (r *fakeIngredientRepo) SearchByName(ctx context.Context, substring string, limit int) ([]*models.Ingredient, error) {
	var out []*models.Ingredient
	for _, item := range r.items {
		if strings.Contains(strings.ToLower(item.Name), strings.ToLower(substring)) {
			out = append(out, item)
		}
	}
	return out, nil
}

type fakeRecipeRepo struct {
	items map[string]*models.Recipe
}

func newFakeRecipeRepo(items ...*models.Recipe) *fakeRecipeRepo {
	r := &fakeRecipeRepo{items: map[string]*models.Recipe{}}
	for _, item := range items {
		r.items[item.ID] = item
	}
	return r
}

func (r *fakeRecipeRepo) Create(ctx context.Context, recipe *models.Recipe) error {
	if recipe.ID == "" {
		recipe.ID = fmt.Sprintf("recipe-%d", len(r.items)+1)
	}
	r.items[recipe.ID] = recipe
	return nil
}

func (r *fakeRecipeRepo) GetByID(ctx context.Context, id string) (*models.Recipe, error) {
	return r.items[id], nil
}

func (r *fakeRecipeRepo) GetByIDs(ctx context.Context, ids []string) ([]*models.Recipe, error) {
	var out []*models.Recipe
	for _, id := range ids {
		if item, ok := r.items[id]; ok {
			out = append(out, item)
		}
	}
	return out, nil
}

func (r *fakeRecipeRepo) SearchByName(ctx context.Context, substring string, limit int) ([]*models.Recipe, error) {
	var out []*models.Recipe
	for _, item := range r.items {
		if strings.Contains(strings.ToLower(item.Name), strings.ToLower(substring)) {
			out = append(out, item)
		}
	}
	return out, nil
}

func (r *fakeRecipeRepo) IncrementTimesUsed(ctx context.Context, id string) error {
	if recipe, ok := r.items[id]; ok {
		recipe.TimesUsed++
	}
	return nil
}
