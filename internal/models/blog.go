package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Blog represents a blog post document stored in MongoDB
type Blog struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	UserID    uint               `json:"user_id" bson:"user_id"`
	Title     string             `json:"title" bson:"title"`
	Content   string             `json:"content" bson:"content"`
	ImageURLs []string           `json:"image_urls,omitempty" bson:"image_urls,omitempty"`
	Views     int64              `json:"views" bson:"views"`
	ViewedBy  []uint             `json:"-" bson:"viewed_by,omitempty"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time          `json:"updated_at" bson:"updated_at"`
}

// CreateBlogRequest defines the request body for creating a blog post
type CreateBlogRequest struct {
	Title     string   `json:"title" validate:"required,min=1,max=160"`
	Content   string   `json:"content" validate:"required,min=1"`
	ImageURLs []string `json:"image_urls,omitempty" validate:"omitempty,dive,url"`
}
