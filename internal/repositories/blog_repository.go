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

// BlogRepository defines the interface for blog data operations
type BlogRepository interface {
	CreateBlog(ctx context.Context, blog *models.Blog) error
	GetBlogByID(ctx context.Context, id string) (*models.Blog, error)
	GetBlogs(ctx context.Context, skip, limit int64) ([]models.Blog, error)
	DeleteBlog(ctx context.Context, id string) error
	RegisterView(ctx context.Context, id string, viewerID uint) (bool, error)
}

// MongoBlogRepository implements BlogRepository for MongoDB
type MongoBlogRepository struct {
	collection *mongo.Collection
}

// NewMongoBlogRepository creates a new MongoBlogRepository
func NewMongoBlogRepository(db *mongo.Database) *MongoBlogRepository {
	return &MongoBlogRepository{collection: db.Collection("blogs")}
}

func (r *MongoBlogRepository) CreateBlog(ctx context.Context, blog *models.Blog) error {
	blog.ID = primitive.NewObjectID()
	blog.CreatedAt = time.Now()
	blog.UpdatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, blog)
	return err
}

func (r *MongoBlogRepository) GetBlogByID(ctx context.Context, id string) (*models.Blog, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperr.New(apperr.Validation, "invalid blog ID format")
	}

	var blog models.Blog
	err = r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&blog)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.New(apperr.NotFound, "blog not found")
		}
		return nil, err
	}
	return &blog, nil
}

func (r *MongoBlogRepository) GetBlogs(ctx context.Context, skip, limit int64) ([]models.Blog, error) {
	findOptions := options.Find().SetSkip(skip).SetLimit(limit).SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.D{}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var blogs []models.Blog
	if err = cursor.All(ctx, &blogs); err != nil {
		return nil, err
	}
	return blogs, nil
}

func (r *MongoBlogRepository) DeleteBlog(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return apperr.New(apperr.Validation, "invalid blog ID format")
	}

	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return apperr.New(apperr.NotFound, "blog not found")
	}
	return nil
}

// RegisterView mirrors the recipe view ledger: authenticated viewers count
// once, anonymous views always increment.
func (r *MongoBlogRepository) RegisterView(ctx context.Context, id string, viewerID uint) (bool, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, apperr.New(apperr.Validation, "invalid blog ID format")
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
