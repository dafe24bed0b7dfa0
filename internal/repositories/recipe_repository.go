package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/tastebook/backend/internal/apperr"
	"github.com/tastebook/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// RecipeRepository defines the interface for recipe data operations
type RecipeRepository interface {
	CreateRecipe(ctx context.Context, recipe *models.Recipe) error
	GetRecipeByID(ctx context.Context, id string) (*models.Recipe, error)
	GetRecipes(ctx context.Context, skip, limit int64) ([]models.Recipe, error)
	GetRecipesByIDs(ctx context.Context, ids []string) ([]models.Recipe, error)
	UpdateRecipe(ctx context.Context, id string, recipe *models.Recipe) error
	DeleteRecipe(ctx context.Context, id string) error
	// RegisterView counts a view. Authenticated viewers are recorded in the
	// view ledger and counted once; anonymous views always increment.
	RegisterView(ctx context.Context, id string, viewerID uint) (bool, error)
	SetReactions(ctx context.Context, id string, reactions []models.Reaction) error
	SetAverageRating(ctx context.Context, id string, rating float64) error
}

// MongoRecipeRepository implements RecipeRepository for MongoDB
type MongoRecipeRepository struct {
	collection *mongo.Collection
}

// NewMongoRecipeRepository creates a new MongoRecipeRepository
func NewMongoRecipeRepository(db *mongo.Database) *MongoRecipeRepository {
	return &MongoRecipeRepository{collection: db.Collection("recipes")}
}

func (r *MongoRecipeRepository) CreateRecipe(ctx context.Context, recipe *models.Recipe) error {
	recipe.ID = primitive.NewObjectID()
	recipe.CreatedAt = time.Now()
	recipe.UpdatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, recipe)
	return err
}

func (r *MongoRecipeRepository) GetRecipeByID(ctx context.Context, id string) (*models.Recipe, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperr.New(apperr.Validation, "invalid recipe ID format")
	}

	var recipe models.Recipe
	err = r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&recipe)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.New(apperr.NotFound, "recipe not found")
		}
		return nil, err
	}
	return &recipe, nil
}

func (r *MongoRecipeRepository) GetRecipes(ctx context.Context, skip, limit int64) ([]models.Recipe, error) {
	var recipes []models.Recipe
	findOptions := options.Find().SetSkip(skip).SetLimit(limit).SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.D{}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &recipes); err != nil {
		return nil, err
	}
	return recipes, nil
}

func (r *MongoRecipeRepository) GetRecipesByIDs(ctx context.Context, ids []string) ([]models.Recipe, error) {
	objIDs := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		objID, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			continue // skip malformed ledger entries instead of failing the listing
		}
		objIDs = append(objIDs, objID)
	}
	if len(objIDs) == 0 {
		return nil, nil
	}

	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": objIDs}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var recipes []models.Recipe
	if err = cursor.All(ctx, &recipes); err != nil {
		return nil, err
	}
	return recipes, nil
}

func (r *MongoRecipeRepository) UpdateRecipe(ctx context.Context, id string, recipe *models.Recipe) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return apperr.New(apperr.Validation, "invalid recipe ID format")
	}

	recipe.UpdatedAt = time.Now()
	update := bson.M{
		"$set": bson.M{
			"title":           recipe.Title,
			"description":     recipe.Description,
			"cuisine":         recipe.Cuisine,
			"main_ingredient": recipe.MainIngredient,
			"instructions":    recipe.Instructions,
			"image_urls":      recipe.ImageURLs,
			"video_url":       recipe.VideoURL,
			"updated_at":      recipe.UpdatedAt,
		},
	}
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": objID}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return apperr.New(apperr.NotFound, "recipe not found")
	}
	return nil
}

func (r *MongoRecipeRepository) DeleteRecipe(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return apperr.New(apperr.Validation, "invalid recipe ID format")
	}

	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return apperr.New(apperr.NotFound, "recipe not found")
	}
	return nil
}

// RegisterView performs the ledger check and the counter increment as one
// conditional update, so concurrent first views by the same user cannot
// double-count. viewerID 0 means anonymous, which increments unconditionally.
func (r *MongoRecipeRepository) RegisterView(ctx context.Context, id string, viewerID uint) (bool, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, apperr.New(apperr.Validation, "invalid recipe ID format")
	}

	if viewerID == 0 {
		_, err = r.collection.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$inc": bson.M{"views": 1}})
		return err == nil, err
	}

	res, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": objID, "viewed_by": bson.M{"$ne": viewerID}},
		bson.M{"$addToSet": bson.M{"viewed_by": viewerID}, "$inc": bson.M{"views": 1}},
	)
	if err != nil {
		return false, err
	}
	return res.ModifiedCount > 0, nil
}

func (r *MongoRecipeRepository) SetReactions(ctx context.Context, id string, reactions []models.Reaction) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return apperr.New(apperr.Validation, "invalid recipe ID format")
	}
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$set": bson.M{"reactions": reactions}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return apperr.New(apperr.NotFound, "recipe not found")
	}
	return nil
}

func (r *MongoRecipeRepository) SetAverageRating(ctx context.Context, id string, rating float64) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return apperr.New(apperr.Validation, "invalid recipe ID format")
	}
	_, err = r.collection.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$set": bson.M{"average_rating": rating}})
	return err
}
