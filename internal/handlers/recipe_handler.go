package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/tastebook/backend/internal/apperr"
	"github.com/tastebook/backend/internal/gate"
	"github.com/tastebook/backend/internal/models"
	"github.com/tastebook/backend/internal/reactions"
	"github.com/tastebook/backend/internal/repositories"
	"github.com/tastebook/backend/internal/stats"
	"go.uber.org/zap"
)

// RecipeHandler handles HTTP requests related to recipes
type RecipeHandler struct {
	recipeRepository   repositories.RecipeRepository
	reviewRepository   repositories.ReviewRepository
	relationRepository repositories.RelationRepository
	userRepository     repositories.UserRepository
	aggregator         *stats.Aggregator
	log                *zap.Logger
}

// NewRecipeHandler creates a new RecipeHandler
func NewRecipeHandler(
	recipeRepo repositories.RecipeRepository,
	reviewRepo repositories.ReviewRepository,
	relationRepo repositories.RelationRepository,
	userRepo repositories.UserRepository,
	aggregator *stats.Aggregator,
	log *zap.Logger,
) *RecipeHandler {
	return &RecipeHandler{
		recipeRepository:   recipeRepo,
		reviewRepository:   reviewRepo,
		relationRepository: relationRepo,
		userRepository:     userRepo,
		aggregator:         aggregator,
		log:                log,
	}
}

// RegisterRecipeRoutes registers authenticated recipe routes
func (h *RecipeHandler) RegisterRecipeRoutes(g *echo.Group) {
	g.POST("/recipes", h.CreateRecipe)
	g.PUT("/recipes/:id", h.UpdateRecipe)
	g.DELETE("/recipes/:id", h.DeleteRecipe)
	g.POST("/recipes/:id/reactions", h.ReactToRecipe)
}

// RegisterPublicRecipeRoutes registers routes that work with or without auth
func (h *RecipeHandler) RegisterPublicRecipeRoutes(g *echo.Group) {
	g.GET("/recipes", h.GetRecipes)
	g.GET("/recipes/:id", h.GetRecipe)
}

// CreateRecipe creates a new recipe owned by the authenticated user
func (h *RecipeHandler) CreateRecipe(c echo.Context) error {
	currentUserID, err := requireActor(c)
	if err != nil {
		return err
	}

	var req models.CreateRecipeRequest
	if err := c.Bind(&req); err != nil {
		return apperr.New(apperr.Validation, "invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	recipe := &models.Recipe{
		UserID:         currentUserID,
		Title:          req.Title,
		Description:    req.Description,
		Cuisine:        req.Cuisine,
		MainIngredient: req.MainIngredient,
		Instructions:   req.Instructions,
		ImageURLs:      req.ImageURLs,
		VideoURL:       req.VideoURL,
		IsPremium:      req.IsPremium,
	}
	if err := h.recipeRepository.CreateRecipe(c.Request().Context(), recipe); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, recipe)
}

// UpdateRecipe updates a recipe owned by the authenticated user
func (h *RecipeHandler) UpdateRecipe(c echo.Context) error {
	currentUserID, err := requireActor(c)
	if err != nil {
		return err
	}
	recipeID := c.Param("id")

	var req models.UpdateRecipeRequest
	if err := c.Bind(&req); err != nil {
		return apperr.New(apperr.Validation, "invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	recipe, err := h.recipeRepository.GetRecipeByID(c.Request().Context(), recipeID)
	if err != nil {
		return err
	}
	if recipe.UserID != currentUserID {
		return apperr.New(apperr.Forbidden, "you are not authorized to update this recipe")
	}

	if req.Title != "" {
		recipe.Title = req.Title
	}
	if req.Description != "" {
		recipe.Description = req.Description
	}
	if req.Cuisine != "" {
		recipe.Cuisine = req.Cuisine
	}
	if req.MainIngredient != "" {
		recipe.MainIngredient = req.MainIngredient
	}
	if req.Instructions != "" {
		recipe.Instructions = req.Instructions
	}
	if req.ImageURLs != nil {
		recipe.ImageURLs = req.ImageURLs
	}
	if req.VideoURL != "" {
		recipe.VideoURL = req.VideoURL
	}

	if err := h.recipeRepository.UpdateRecipe(c.Request().Context(), recipeID, recipe); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, recipe)
}

// DeleteRecipe deletes a recipe and the reviews bound to it
func (h *RecipeHandler) DeleteRecipe(c echo.Context) error {
	currentUserID, err := requireActor(c)
	if err != nil {
		return err
	}
	recipeID := c.Param("id")

	recipe, err := h.recipeRepository.GetRecipeByID(c.Request().Context(), recipeID)
	if err != nil {
		return err
	}
	if recipe.UserID != currentUserID {
		return apperr.New(apperr.Forbidden, "you are not authorized to delete this recipe")
	}

	if err := h.recipeRepository.DeleteRecipe(c.Request().Context(), recipeID); err != nil {
		return err
	}
	// Reviews (and their embedded replies) share the recipe's lifetime.
	if err := h.reviewRepository.DeleteReviewsByRecipeID(c.Request().Context(), recipeID); err != nil {
		h.log.Error("failed to delete reviews for deleted recipe",
			zap.String("recipe_id", recipeID), zap.Error(err))
	}
	return c.NoContent(http.StatusNoContent)
}

// enrichedRecipe pairs a recipe with the viewer's toggle state
type enrichedRecipe struct {
	models.Recipe
	Viewer gate.RelationState `json:"viewer"`
}

// GetRecipes lists recipes, enriched with the viewer's like/bookmark state
// when authenticated
func (h *RecipeHandler) GetRecipes(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 50 {
		limit = 10
	}
	skip := int64((page - 1) * limit)

	recipes, err := h.recipeRepository.GetRecipes(c.Request().Context(), skip, int64(limit))
	if err != nil {
		return err
	}

	currentUserID := actorID(c)
	var likedMap, bookmarkedMap map[string]bool
	if currentUserID != 0 {
		ids := make([]string, len(recipes))
		for i, r := range recipes {
			ids[i] = r.ID.Hex()
		}
		if likedMap, err = h.relationRepository.ActiveMap(currentUserID, models.RelationLike, ids); err != nil {
			return err
		}
		if bookmarkedMap, err = h.relationRepository.ActiveMap(currentUserID, models.RelationBookmark, ids); err != nil {
			return err
		}
	}

	enriched := make([]enrichedRecipe, len(recipes))
	for i, r := range recipes {
		enriched[i] = enrichedRecipe{
			Recipe: r,
			Viewer: gate.RelationState{
				Liked:      likedMap[r.ID.Hex()],
				Bookmarked: bookmarkedMap[r.ID.Hex()],
			},
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"recipes": enriched, "page": page, "limit": limit})
}

// GetRecipe fetches one recipe through the content gate. The view is counted
// before gating: a locked preview still counts.
func (h *RecipeHandler) GetRecipe(c echo.Context) error {
	recipeID := c.Param("id")
	currentUserID := actorID(c)

	incremented, err := h.recipeRepository.RegisterView(c.Request().Context(), recipeID, currentUserID)
	if err != nil {
		return err
	}

	recipe, err := h.recipeRepository.GetRecipeByID(c.Request().Context(), recipeID)
	if err != nil {
		return err
	}

	var viewer *models.User
	rel := gate.RelationState{}
	if currentUserID != 0 {
		if viewer, err = h.userRepository.GetUserByID(currentUserID); err != nil {
			if apperr.KindOf(err) != apperr.NotFound {
				return err
			}
			viewer = nil // stale token for a deleted account, treat as anonymous
		}
		if rel.Liked, err = h.relationRepository.IsActive(currentUserID, recipeID, models.RelationLike); err != nil {
			return err
		}
		if rel.Bookmarked, err = h.relationRepository.IsActive(currentUserID, recipeID, models.RelationBookmark); err != nil {
			return err
		}
	}

	view := gate.Resolve(recipe, viewer, rel)
	return c.JSON(http.StatusOK, echo.Map{"recipe": view, "view_incremented": incremented})
}

// ReactToRecipe sets, replaces or removes the actor's emoji reaction
func (h *RecipeHandler) ReactToRecipe(c echo.Context) error {
	currentUserID, err := requireActor(c)
	if err != nil {
		return err
	}
	recipeID := c.Param("id")

	var req models.SetReactionRequest
	if err := c.Bind(&req); err != nil {
		return apperr.New(apperr.Validation, "invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	recipe, err := h.recipeRepository.GetRecipeByID(c.Request().Context(), recipeID)
	if err != nil {
		return err
	}

	updated, err := reactions.Apply(recipe.Reactions, currentUserID, req.Emoji)
	if err != nil {
		return err
	}
	if err := h.recipeRepository.SetReactions(c.Request().Context(), recipeID, updated); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{
		"reactions": updated,
		"counts":    reactions.Counts(updated),
	})
}
