package gate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/tastebook/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func premiumRecipe(ownerID uint) *models.Recipe {
	return &models.Recipe{
		ID:           primitive.NewObjectID(),
		UserID:       ownerID,
		Title:        "Beef Wellington",
		Instructions: "secret steps",
		VideoURL:     "https://cdn.example.com/wellington.mp4",
		IsPremium:    true,
		Views:        42,
	}
}

func TestResolveFreeRecipeNeverLocked(t *testing.T) {
	recipe := premiumRecipe(1)
	recipe.IsPremium = false

	view := Resolve(recipe, nil, RelationState{})

	assert.False(t, view.IsLocked)
	assert.Equal(t, "secret steps", view.Instructions)
	assert.Equal(t, "https://cdn.example.com/wellington.mp4", view.VideoURL)
}

func TestResolveAnonymousViewerLocked(t *testing.T) {
	view := Resolve(premiumRecipe(1), nil, RelationState{})

	assert.True(t, view.IsLocked)
	assert.Empty(t, view.Instructions)
	assert.Empty(t, view.VideoURL)
	assert.Equal(t, "Beef Wellington", view.Title)
	assert.Equal(t, int64(42), view.Views)
}

func TestResolveNonPremiumViewerLocked(t *testing.T) {
	viewer := &models.User{ID: 2}

	view := Resolve(premiumRecipe(1), viewer, RelationState{Liked: true})

	assert.True(t, view.IsLocked)
	assert.Empty(t, view.Instructions)
	assert.True(t, view.Viewer.Liked) // relation state survives redaction
}

func TestResolveOwnerSeesOwnPremiumContent(t *testing.T) {
	owner := &models.User{ID: 1}

	view := Resolve(premiumRecipe(1), owner, RelationState{})

	assert.False(t, view.IsLocked)
	assert.Equal(t, "secret steps", view.Instructions)
}

func TestResolvePremiumViewerSeesContent(t *testing.T) {
	viewer := &models.User{ID: 2, IsPremium: true}

	view := Resolve(premiumRecipe(1), viewer, RelationState{})

	assert.False(t, view.IsLocked)
	assert.Equal(t, "secret steps", view.Instructions)
}

func TestResolveExpiredSubscriptionLocked(t *testing.T) {
	expired := time.Now().Add(-time.Hour)
	viewer := &models.User{ID: 2, IsPremium: true, SubscriptionExpiry: &expired}

	view := Resolve(premiumRecipe(1), viewer, RelationState{})

	assert.True(t, view.IsLocked)
	assert.Empty(t, view.Instructions)
}
