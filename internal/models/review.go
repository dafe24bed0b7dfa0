package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Review is a root discussion node for a recipe, stored in MongoDB. Replies
// are embedded subdocuments: they live and die with the review.
type Review struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	RecipeID  primitive.ObjectID `json:"recipe_id" bson:"recipe_id"`
	UserID    uint               `json:"user_id" bson:"user_id"`
	Rating    int                `json:"rating" bson:"rating"`
	Content   string             `json:"content" bson:"content"`
	Reactions []Reaction         `json:"reactions" bson:"reactions,omitempty"`
	Replies   []Reply            `json:"replies" bson:"replies,omitempty"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
}

// Reply is an embedded child node inside a review, addressed by a synthetic id
type Reply struct {
	ID        string     `json:"id" bson:"id"`
	UserID    uint       `json:"user_id" bson:"user_id"`
	Content   string     `json:"content" bson:"content"`
	MediaURL  string     `json:"media_url,omitempty" bson:"media_url,omitempty"`
	Reactions []Reaction `json:"reactions" bson:"reactions,omitempty"`
	CreatedAt time.Time  `json:"created_at" bson:"created_at"`
}

// CreateReviewRequest defines the request body for posting a review
type CreateReviewRequest struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Content string `json:"content" validate:"required,min=1,max=2000"`
}

// CreateReplyRequest defines the request body for replying to a review
type CreateReplyRequest struct {
	Content  string `json:"content" validate:"required,min=1,max=2000"`
	MediaURL string `json:"media_url,omitempty" validate:"omitempty,url"`
}
