package gate

import (
	"github.com/tastebook/backend/internal/models"
)

// RelationState is the viewer's own toggle state on a recipe.
type RelationState struct {
	Liked      bool `json:"liked"`
	Bookmarked bool `json:"bookmarked"`
}

// RecipeView is the outward projection of a recipe for one viewer. When the
// recipe is premium and the viewer is not entitled, the long-form fields are
// blanked and IsLocked is set; counters and the viewer's own relation state
// are always present.
type RecipeView struct {
	ID             string            `json:"id"`
	UserID         uint              `json:"user_id"`
	Title          string            `json:"title"`
	Description    string            `json:"description"`
	Cuisine        string            `json:"cuisine"`
	MainIngredient string            `json:"main_ingredient"`
	Instructions   string            `json:"instructions,omitempty"`
	ImageURLs      []string          `json:"image_urls,omitempty"`
	VideoURL       string            `json:"video_url,omitempty"`
	IsPremium      bool              `json:"is_premium"`
	IsLocked       bool              `json:"is_locked"`
	AverageRating  float64           `json:"average_rating"`
	Views          int64             `json:"views"`
	Reactions      []models.Reaction `json:"reactions"`
	Viewer         RelationState     `json:"viewer"`
	CreatedAt      string            `json:"created_at"`
}

// entitled reports whether viewer may see the full content of recipe.
func entitled(recipe *models.Recipe, viewer *models.User) bool {
	if !recipe.IsPremium {
		return true
	}
	if viewer == nil {
		return false
	}
	return viewer.ID == recipe.UserID || viewer.PremiumActive()
}

// Resolve projects a recipe for a viewer, redacting premium content when the
// viewer is neither premium nor the owner. viewer may be nil (anonymous).
func Resolve(recipe *models.Recipe, viewer *models.User, rel RelationState) *RecipeView {
	view := &RecipeView{
		ID:             recipe.ID.Hex(),
		UserID:         recipe.UserID,
		Title:          recipe.Title,
		Description:    recipe.Description,
		Cuisine:        recipe.Cuisine,
		MainIngredient: recipe.MainIngredient,
		Instructions:   recipe.Instructions,
		ImageURLs:      recipe.ImageURLs,
		VideoURL:       recipe.VideoURL,
		IsPremium:      recipe.IsPremium,
		AverageRating:  recipe.AverageRating,
		Views:          recipe.Views,
		Reactions:      recipe.Reactions,
		Viewer:         rel,
		CreatedAt:      recipe.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
	}

	if !entitled(recipe, viewer) {
		view.Instructions = ""
		view.VideoURL = ""
		view.IsLocked = true
	}
	return view
}
