package repositories

import (
	"context"
	"time"

	"github.com/ak/macrolog/internal/domain/models"
	"github.com/ak/macrolog/internal/domain/repositories"
	"github.com/ak/macrolog/internal/infrastructure/database"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type userRepository struct {
	collection *mongo.Collection
}

func NewUserRepository(db *database.MongoDB) repositories.UserRepository {
	return &userRepository{
		collection: db.Collection(database.CollectionUsers),
	}
}

func (r *userRepository) Create(ctx context.Context, user *models.UserDocument) error {
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()
	if user.Version == 0 {
		user.Version = 1
	}
	_, err := r.collection.InsertOne(ctx, user)
	return err
}

func (r *userRepository) GetByUID(ctx context.Context, uid string) (*models.UserDocument, error) {
	var user models.UserDocument
	err := r.collection.FindOne(ctx, bson.M{"uid": uid}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, repositories.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) UpdateFields(ctx context.Context, uid string, version int64, fields map[string]any) error {
	set := bson.M{"updatedAt": time.Now()}
	for key, value := range fields {
		set[key] = value
	}

	result, err := r.collection.UpdateOne(ctx,
		bson.M{"uid": uid, "version": version},
		bson.M{"$set": set, "$inc": bson.M{"version": 1}},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		// Distinguish a stale version from a missing user.
		count, err := r.collection.CountDocuments(ctx, bson.M{"uid": uid})
		if err != nil {
			return err
		}
		if count == 0 {
			return repositories.ErrUserNotFound
		}
		return repositories.ErrVersionConflict
	}
	return nil
}

func (r *userRepository) LinkIngredient(ctx context.Context, uid, ingredientID string) error {
	return r.addToListField(ctx, uid, "ingredients", ingredientID)
}

func (r *userRepository) UnlinkIngredient(ctx context.Context, uid, ingredientID string) error {
	return r.pullFromListField(ctx, uid, "ingredients", ingredientID)
}

func (r *userRepository) LinkRecipe(ctx context.Context, uid, recipeID string) error {
	return r.addToListField(ctx, uid, "recipes", recipeID)
}

func (r *userRepository) UnlinkRecipe(ctx context.Context, uid, recipeID string) error {
	return r.pullFromListField(ctx, uid, "recipes", recipeID)
}

func (r *userRepository) addToListField(ctx context.Context, uid, field, id string) error {
	result, err := r.collection.UpdateOne(ctx,
		bson.M{"uid": uid},
		bson.M{
			"$addToSet": bson.M{field: id},
			"$set":      bson.M{"updatedAt": time.Now()},
		},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repositories.ErrUserNotFound
	}
	return nil
}

func (r *userRepository) pullFromListField(ctx context.Context, uid, field, id string) error {
	result, err := r.collection.UpdateOne(ctx,
		bson.M{"uid": uid},
		bson.M{
			"$pull": bson.M{field: id},
			"$set":  bson.M{"updatedAt": time.Now()},
		},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repositories.ErrUserNotFound
	}
	return nil
}
