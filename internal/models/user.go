package models

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
	"gorm.io/gorm"
)

type User struct {
	gorm.Model         `json:"-"`
	ID                 uint       `json:"id" gorm:"primaryKey"`
	Name               string     `json:"name"`
	Email              string     `json:"email" gorm:"uniqueIndex"` // Ensure email is unique across all users
	Bio                string     `json:"bio,omitempty"`
	AvatarURL          string     `json:"avatar_url,omitempty"`
	Password           string     `json:"-"`                                         // Store hashed password, ignore for JSON serialization
	FirebaseUID        *string    `json:"firebase_uid,omitempty" gorm:"uniqueIndex"` // NULL for local accounts, so the unique index only binds Firebase-linked users
	IsPremium          bool       `json:"is_premium"`
	SubscriptionExpiry *time.Time `json:"subscription_expiry,omitempty"`
}

// PremiumActive reports whether the user's premium window is currently open.
func (u *User) PremiumActive() bool {
	if !u.IsPremium {
		return false
	}
	return u.SubscriptionExpiry == nil || u.SubscriptionExpiry.After(time.Now())
}

// UserCompact is the minimal user projection embedded in enriched responses
type UserCompact struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url,omitempty"`
	IsPremium bool   `json:"is_premium"`
}

func (u *User) ToCompact() UserCompact {
	return UserCompact{
		ID:        u.ID,
		Name:      u.Name,
		AvatarURL: u.AvatarURL,
		IsPremium: u.IsPremium,
	}
}

type CreateLocalUserRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type UpdateUserRequest struct {
	Name      string `json:"name,omitempty" validate:"omitempty,min=2,max=50"`
	Email     string `json:"email,omitempty" validate:"omitempty,email"`
	Bio       string `json:"bio,omitempty" validate:"omitempty,max=300"`
	AvatarURL string `json:"avatar_url,omitempty" validate:"omitempty,url"`
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}
