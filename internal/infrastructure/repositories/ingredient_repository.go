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

type ingredientRepository struct {
	collection *mongo.Collection
}

func NewIngredientRepository(db *database.MongoDB) repositories.IngredientRepository {
	return &ingredientRepository{
		collection: db.Collection(database.CollectionIngredients),
	}
}

func (r *ingredientRepository) Create(ctx context.Context, ingredient *models.Ingredient) error {
	if ingredient.ID == "" {
		ingredient.ID = uuid.NewString()
	}
	ingredient.CreatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, ingredient)
	return err
}

func (r *ingredientRepository) GetByID(ctx context.Context, id string) (*models.Ingredient, error) {
	var ingredient models.Ingredient
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&ingredient)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &ingredient, nil
}

func (r *ingredientRepository) GetByIDs(ctx context.Context, ids []string) ([]*models.Ingredient, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var ingredients []*models.Ingredient
	if err := cursor.All(ctx, &ingredients); err != nil {
		return nil, err
	}
	return ingredients, nil
}

func (r *ingredientRepository) SearchByName(ctx context.Context, substring string, limit int) ([]*models.Ingredient, error) {
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

	var ingredients []*models.Ingredient
	if err := cursor.All(ctx, &ingredients); err != nil {
		return nil, err
	}
	return ingredients, nil
}
