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

// CommentRepository defines the interface for blog comment operations.
// Comments are independent documents referencing their blog; deleting a blog
// requires an explicit DeleteCommentsByBlogID call by the blog's owner flow.
type CommentRepository interface {
	CreateComment(ctx context.Context, comment *models.Comment) error
	GetCommentByID(ctx context.Context, id string) (*models.Comment, error)
	GetCommentsByBlogID(ctx context.Context, blogID string) ([]models.Comment, error)
	DeleteComment(ctx context.Context, id string) error
	DeleteCommentsByBlogID(ctx context.Context, blogID string) (int64, error)
	SetReactions(ctx context.Context, id string, reactions []models.Reaction) error
}

// MongoCommentRepository implements CommentRepository for MongoDB
type MongoCommentRepository struct {
	collection *mongo.Collection
}

// NewMongoCommentRepository creates a new MongoCommentRepository
func NewMongoCommentRepository(db *mongo.Database) *MongoCommentRepository {
	return &MongoCommentRepository{collection: db.Collection("comments")}
}

func (r *MongoCommentRepository) CreateComment(ctx context.Context, comment *models.Comment) error {
	comment.ID = primitive.NewObjectID()
	comment.CreatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, comment)
	return err
}

func (r *MongoCommentRepository) GetCommentByID(ctx context.Context, id string) (*models.Comment, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperr.New(apperr.Validation, "invalid comment ID format")
	}

	var comment models.Comment
	err = r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&comment)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.New(apperr.NotFound, "comment not found")
		}
		return nil, err
	}
	return &comment, nil
}

// GetCommentsByBlogID lists comments oldest first; clients rebuild the thread
// from parent_id.
func (r *MongoCommentRepository) GetCommentsByBlogID(ctx context.Context, blogID string) ([]models.Comment, error) {
	objID, err := primitive.ObjectIDFromHex(blogID)
	if err != nil {
		return nil, apperr.New(apperr.Validation, "invalid blog ID format")
	}

	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"blog_id": objID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var comments []models.Comment
	if err = cursor.All(ctx, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

func (r *MongoCommentRepository) DeleteComment(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return apperr.New(apperr.Validation, "invalid comment ID format")
	}

	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return apperr.New(apperr.NotFound, "comment not found")
	}
	return nil
}

func (r *MongoCommentRepository) DeleteCommentsByBlogID(ctx context.Context, blogID string) (int64, error) {
	objID, err := primitive.ObjectIDFromHex(blogID)
	if err != nil {
		return 0, apperr.New(apperr.Validation, "invalid blog ID format")
	}
	res, err := r.collection.DeleteMany(ctx, bson.M{"blog_id": objID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func (r *MongoCommentRepository) SetReactions(ctx context.Context, id string, reactions []models.Reaction) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return apperr.New(apperr.Validation, "invalid comment ID format")
	}
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$set": bson.M{"reactions": reactions}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return apperr.New(apperr.NotFound, "comment not found")
	}
	return nil
}
