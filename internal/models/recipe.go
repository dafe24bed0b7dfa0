package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Recipe represents a recipe document stored in MongoDB
type Recipe struct {
	ID             primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	UserID         uint               `json:"user_id" bson:"user_id"`
	Title          string             `json:"title" bson:"title"`
	Description    string             `json:"description" bson:"description"`
	Cuisine        string             `json:"cuisine" bson:"cuisine"`
	MainIngredient string             `json:"main_ingredient" bson:"main_ingredient"`
	Instructions   string             `json:"instructions" bson:"instructions"`
	ImageURLs      []string           `json:"image_urls,omitempty" bson:"image_urls,omitempty"`
	VideoURL       string             `json:"video_url,omitempty" bson:"video_url,omitempty"`
	IsPremium      bool               `json:"is_premium" bson:"is_premium"`
	AverageRating  float64            `json:"average_rating" bson:"average_rating"`
	Views          int64              `json:"views" bson:"views"`
	ViewedBy       []uint             `json:"-" bson:"viewed_by,omitempty"` // dedup ledger for authenticated viewers
	Reactions      []Reaction         `json:"reactions" bson:"reactions,omitempty"`
	CreatedAt      time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at" bson:"updated_at"`
}

// CreateRecipeRequest defines the request body for creating a new recipe
type CreateRecipeRequest struct {
	Title          string   `json:"title" validate:"required,min=1,max=120"`
	Description    string   `json:"description" validate:"omitempty,max=1000"`
	Cuisine        string   `json:"cuisine" validate:"required,min=2,max=50"`
	MainIngredient string   `json:"main_ingredient" validate:"required,min=2,max=50"`
	Instructions   string   `json:"instructions" validate:"required,min=1"`
	ImageURLs      []string `json:"image_urls,omitempty" validate:"omitempty,dive,url"`
	VideoURL       string   `json:"video_url,omitempty" validate:"omitempty,url"`
	IsPremium      bool     `json:"is_premium"`
}

// UpdateRecipeRequest defines the request body for updating an existing recipe
type UpdateRecipeRequest struct {
	Title          string   `json:"title,omitempty" validate:"omitempty,min=1,max=120"`
	Description    string   `json:"description,omitempty" validate:"omitempty,max=1000"`
	Cuisine        string   `json:"cuisine,omitempty" validate:"omitempty,min=2,max=50"`
	MainIngredient string   `json:"main_ingredient,omitempty" validate:"omitempty,min=2,max=50"`
	Instructions   string   `json:"instructions,omitempty" validate:"omitempty,min=1"`
	ImageURLs      []string `json:"image_urls,omitempty" validate:"omitempty,dive,url"`
	VideoURL       string   `json:"video_url,omitempty" validate:"omitempty,url"`
}
