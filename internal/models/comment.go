package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Comment is a discussion node on a blog, stored as its own MongoDB document.
// Unlike review replies, comments reference their blog by id and survive
// independently; deleting a blog requires an explicit bulk delete.
type Comment struct {
	ID        primitive.ObjectID  `json:"id,omitempty" bson:"_id,omitempty"`
	BlogID    primitive.ObjectID  `json:"blog_id" bson:"blog_id"`
	UserID    uint                `json:"user_id" bson:"user_id"`
	ParentID  *primitive.ObjectID `json:"parent_id,omitempty" bson:"parent_id,omitempty"`
	Content   string              `json:"content" bson:"content"`
	Reactions []Reaction          `json:"reactions" bson:"reactions,omitempty"`
	CreatedAt time.Time           `json:"created_at" bson:"created_at"`
}

// CreateCommentRequest defines the request body for commenting on a blog
type CreateCommentRequest struct {
	Content  string `json:"content" validate:"required,min=1,max=2000"`
	ParentID string `json:"parent_id,omitempty"`
}
