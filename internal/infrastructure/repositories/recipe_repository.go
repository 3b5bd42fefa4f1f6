package repositories

import (
	"context"
	"regexp"
	"time"

	"github.com/ak/macrolog/internal/domain/models"
	"github.com/ak/macrolog/internal/domain/repositories"
	"github.com/ak/macrolog/internal/infrastructure/database"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type recipeRepository struct {
	collection *mongo.Collection
}

func NewRecipeRepository(db *database.MongoDB) repositories.RecipeRepository {
	return &recipeRepository{
		collection: db.Collection(database.CollectionRecipes),
	}
}

func (r *recipeRepository) Create(ctx context.Context, recipe *models.Recipe) error {
	if recipe.ID == "" {
		recipe.ID = uuid.NewString()
	}
	recipe.CreatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, recipe)
	return err
}

func (r *recipeRepository) GetByID(ctx context.Context, id string) (*models.Recipe, error) {
	var recipe models.Recipe
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&recipe)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &recipe, nil
}

func (r *recipeRepository) GetByIDs(ctx context.Context, ids []string) ([]*models.Recipe, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var recipes []*models.Recipe
	if err := cursor.All(ctx, &recipes); err != nil {
		return nil, err
	}
	return recipes, nil
}

func (r *recipeRepository) SearchByName(ctx context.Context, substring string, limit int) ([]*models.Recipe, error) {
	if limit < 1 {
		limit = 25
	}

	query := bson.M{"name": primitive.Regex{Pattern: regexp.QuoteMeta(substring), Options: "i"}}
	opts := options.Find().
		SetSort(bson.D{{Key: "name", Value: 1}}).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var recipes []*models.Recipe
	if err := cursor.All(ctx, &recipes); err != nil {
		return nil, err
	}
	return recipes, nil
}

func (r *recipeRepository) IncrementTimesUsed(ctx context.Context, id string) error {
	_, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$inc": bson.M{"timesUsed": 1}},
	)
	return err
}
