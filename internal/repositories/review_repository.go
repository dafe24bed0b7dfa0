package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/tastebook/backend/internal/apperr"
	"github.com/tastebook/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ReviewRepository defines the interface for review data operations. Replies
// are embedded in their review document and share its lifetime.
type ReviewRepository interface {
	CreateReview(ctx context.Context, review *models.Review) error
	GetReviewByID(ctx context.Context, id string) (*models.Review, error)
	GetReviewsByRecipeID(ctx context.Context, recipeID string) ([]models.Review, error)
	GetReviewByRecipeAndUser(ctx context.Context, recipeID string, userID uint) (*models.Review, error)
	AddReply(ctx context.Context, reviewID string, reply *models.Reply) error
	DeleteReviewsByRecipeID(ctx context.Context, recipeID string) error
	SetReactions(ctx context.Context, id string, reactions []models.Reaction) error
	SetReplyReactions(ctx context.Context, reviewID, replyID string, reactions []models.Reaction) error
	AverageRating(ctx context.Context, recipeID string) (float64, error)
}

// MongoReviewRepository implements ReviewRepository for MongoDB
type MongoReviewRepository struct {
	collection *mongo.Collection
}

// NewMongoReviewRepository creates a new MongoReviewRepository
func NewMongoReviewRepository(db *mongo.Database) *MongoReviewRepository {
	return &MongoReviewRepository{collection: db.Collection("reviews")}
}

func (r *MongoReviewRepository) CreateReview(ctx context.Context, review *models.Review) error {
	review.ID = primitive.NewObjectID()
	review.CreatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, review)
	return err
}

func (r *MongoReviewRepository) GetReviewByID(ctx context.Context, id string) (*models.Review, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperr.New(apperr.Validation, "invalid review ID format")
	}

	var review models.Review
	err = r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&review)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.New(apperr.NotFound, "review not found")
		}
		return nil, err
	}
	return &review, nil
}

// GetReviewsByRecipeID lists reviews newest first; clients rebuild the thread
// from the embedded replies.
func (r *MongoReviewRepository) GetReviewsByRecipeID(ctx context.Context, recipeID string) ([]models.Review, error) {
	objID, err := primitive.ObjectIDFromHex(recipeID)
	if err != nil {
		return nil, apperr.New(apperr.Validation, "invalid recipe ID format")
	}

	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"recipe_id": objID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var reviews []models.Review
	if err = cursor.All(ctx, &reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}

func (r *MongoReviewRepository) GetReviewByRecipeAndUser(ctx context.Context, recipeID string, userID uint) (*models.Review, error) {
	objID, err := primitive.ObjectIDFromHex(recipeID)
	if err != nil {
		return nil, apperr.New(apperr.Validation, "invalid recipe ID format")
	}

	var review models.Review
	err = r.collection.FindOne(ctx, bson.M{"recipe_id": objID, "user_id": userID}).Decode(&review)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.New(apperr.NotFound, "review not found")
		}
		return nil, err
	}
	return &review, nil
}

// AddReply appends a reply into the parent review document. A zero matched
// count means the parent review does not exist.
func (r *MongoReviewRepository) AddReply(ctx context.Context, reviewID string, reply *models.Reply) error {
	objID, err := primitive.ObjectIDFromHex(reviewID)
	if err != nil {
		return apperr.New(apperr.Validation, "invalid review ID format")
	}

	reply.ID = uuid.NewString()
	reply.CreatedAt = time.Now()

	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$push": bson.M{"replies": reply}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return apperr.New(apperr.NotFound, "review not found")
	}
	return nil
}

func (r *MongoReviewRepository) DeleteReviewsByRecipeID(ctx context.Context, recipeID string) error {
	objID, err := primitive.ObjectIDFromHex(recipeID)
	if err != nil {
		return apperr.New(apperr.Validation, "invalid recipe ID format")
	}
	_, err = r.collection.DeleteMany(ctx, bson.M{"recipe_id": objID})
	return err
}

func (r *MongoReviewRepository) SetReactions(ctx context.Context, id string, reactions []models.Reaction) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return apperr.New(apperr.Validation, "invalid review ID format")
	}
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$set": bson.M{"reactions": reactions}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return apperr.New(apperr.NotFound, "review not found")
	}
	return nil
}

// SetReplyReactions addresses the embedded reply by its synthetic id via the
// positional operator.
func (r *MongoReviewRepository) SetReplyReactions(ctx context.Context, reviewID, replyID string, reactions []models.Reaction) error {
	objID, err := primitive.ObjectIDFromHex(reviewID)
	if err != nil {
		return apperr.New(apperr.Validation, "invalid review ID format")
	}
	res, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": objID, "replies.id": replyID},
		bson.M{"$set": bson.M{"replies.$.reactions": reactions}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return apperr.New(apperr.NotFound, "reply not found")
	}
	return nil
}

// AverageRating aggregates the mean rating over all reviews of a recipe.
// Returns 0 when the recipe has no reviews yet.
func (r *MongoReviewRepository) AverageRating(ctx context.Context, recipeID string) (float64, error) {
	objID, err := primitive.ObjectIDFromHex(recipeID)
	if err != nil {
		return 0, apperr.New(apperr.Validation, "invalid recipe ID format")
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"recipe_id": objID}}},
		{{Key: "$group", Value: bson.M{"_id": nil, "avg": bson.M{"$avg": "$rating"}}}},
	}
	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, err
	}
	defer cursor.Close(ctx)

	var results []struct {
		Avg float64 `bson:"avg"`
	}
	if err = cursor.All(ctx, &results); err != nil {
		return 0, err
	}
	if len(results) == 0 {
		return 0, nil
	}
	return results[0].Avg, nil
}
