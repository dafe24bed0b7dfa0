package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/tastebook/backend/internal/apperr"
	"github.com/tastebook/backend/internal/models"
	"github.com/tastebook/backend/internal/notify"
	"github.com/tastebook/backend/internal/repositories"
)

// RelationHandler handles toggle-able relations: recipe likes and bookmarks,
// and user subscriptions (follows)
type RelationHandler struct {
	relationRepository repositories.RelationRepository
	recipeRepository   repositories.RecipeRepository
	userRepository     repositories.UserRepository
	fanout             *notify.Fanout
}

// NewRelationHandler creates a new RelationHandler
func NewRelationHandler(
	relationRepo repositories.RelationRepository,
	recipeRepo repositories.RecipeRepository,
	userRepo repositories.UserRepository,
	fanout *notify.Fanout,
) *RelationHandler {
	return &RelationHandler{
		relationRepository: relationRepo,
		recipeRepository:   recipeRepo,
		userRepository:     userRepo,
		fanout:             fanout,
	}
}

// RegisterRelationRoutes registers relation toggle and listing routes
func (h *RelationHandler) RegisterRelationRoutes(g *echo.Group) {
	g.POST("/recipes/:id/like", h.ToggleRecipeLike)
	g.POST("/recipes/:id/bookmark", h.ToggleBookmark)
	g.GET("/bookmarks", h.GetBookmarkedRecipes)
	g.POST("/users/:id/follow", h.ToggleFollow)
}

// RegisterPublicRelationRoutes registers unauthenticated listing routes
func (h *RelationHandler) RegisterPublicRelationRoutes(g *echo.Group) {
	g.GET("/users/:id/followers", h.GetFollowers)
	g.GET("/users/:id/following", h.GetFollowing)
}

// ToggleRecipeLike likes or unlikes a recipe. Creating the like notifies the
// recipe owner unless the actor owns the recipe.
func (h *RelationHandler) ToggleRecipeLike(c echo.Context) error {
	currentUserID, err := requireActor(c)
	if err != nil {
		return err
	}
	recipeID := c.Param("id")

	recipe, err := h.recipeRepository.GetRecipeByID(c.Request().Context(), recipeID)
	if err != nil {
		return err
	}

	active, err := h.relationRepository.Toggle(currentUserID, recipeID, models.RelationLike)
	if err != nil {
		return err
	}

	if active && recipe.UserID != currentUserID {
		actor, actorErr := h.userRepository.GetUserByID(currentUserID)
		message := "Someone liked your recipe"
		if actorErr == nil {
			message = actor.Name + " liked your recipe"
		}
		h.fanout.Emit(notify.Event{
			RecipientID: recipe.UserID,
			SenderID:    currentUserID,
			Type:        models.NotificationLikeRecipe,
			TargetID:    recipeID,
			TargetType:  "recipe",
			Message:     message,
		})
	}

	return c.JSON(http.StatusOK, echo.Map{"active": active})
}

// ToggleBookmark bookmarks or unbookmarks a recipe. Bookmarks never notify.
func (h *RelationHandler) ToggleBookmark(c echo.Context) error {
	currentUserID, err := requireActor(c)
	if err != nil {
		return err
	}
	recipeID := c.Param("id")

	if _, err := h.recipeRepository.GetRecipeByID(c.Request().Context(), recipeID); err != nil {
		return err
	}

	active, err := h.relationRepository.Toggle(currentUserID, recipeID, models.RelationBookmark)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"active": active})
}

// GetBookmarkedRecipes lists the actor's bookmarked recipes
func (h *RelationHandler) GetBookmarkedRecipes(c echo.Context) error {
	currentUserID, err := requireActor(c)
	if err != nil {
		return err
	}

	ids, err := h.relationRepository.ListTargetIDs(currentUserID, models.RelationBookmark)
	if err != nil {
		return err
	}
	recipes, err := h.recipeRepository.GetRecipesByIDs(c.Request().Context(), ids)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"recipes": recipes})
}

// ToggleFollow follows or unfollows a user. Self-follow is rejected.
// Creating the subscription notifies the followed user.
func (h *RelationHandler) ToggleFollow(c echo.Context) error {
	currentUserID, err := requireActor(c)
	if err != nil {
		return err
	}

	targetID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return apperr.New(apperr.Validation, "invalid user ID")
	}
	if currentUserID == uint(targetID) {
		return apperr.New(apperr.Validation, "cannot follow self")
	}

	target, err := h.userRepository.GetUserByID(uint(targetID))
	if err != nil {
		return err
	}

	// Edges are keyed by the canonical decimal form, never the raw path param.
	targetKey := strconv.FormatUint(targetID, 10)
	active, err := h.relationRepository.Toggle(currentUserID, targetKey, models.RelationSubscription)
	if err != nil {
		return err
	}

	if active {
		actor, actorErr := h.userRepository.GetUserByID(currentUserID)
		message := "You have a new follower"
		if actorErr == nil {
			message = actor.Name + " started following you"
		}
		h.fanout.Emit(notify.Event{
			RecipientID: target.ID,
			SenderID:    currentUserID,
			Type:        models.NotificationFollow,
			TargetID:    strconv.FormatUint(uint64(currentUserID), 10),
			TargetType:  "user",
			Message:     message,
		})
	}

	return c.JSON(http.StatusOK, echo.Map{"active": active})
}

// GetFollowers lists users subscribed to the given user
func (h *RelationHandler) GetFollowers(c echo.Context) error {
	targetID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return apperr.New(apperr.Validation, "invalid user ID")
	}

	actorIDs, err := h.relationRepository.ListActorIDs(strconv.FormatUint(targetID, 10), models.RelationSubscription)
	if err != nil {
		return err
	}

	users := make([]models.UserCompact, 0, len(actorIDs))
	for _, id := range actorIDs {
		user, err := h.userRepository.GetUserByID(id)
		if err != nil {
			continue // deleted follower accounts are skipped
		}
		users = append(users, user.ToCompact())
	}
	return c.JSON(http.StatusOK, echo.Map{"user_id": targetID, "followers": users})
}

// GetFollowing lists users the given user subscribes to
func (h *RelationHandler) GetFollowing(c echo.Context) error {
	userID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return apperr.New(apperr.Validation, "invalid user ID")
	}

	targetIDs, err := h.relationRepository.ListTargetIDs(uint(userID), models.RelationSubscription)
	if err != nil {
		return err
	}

	users := make([]models.UserCompact, 0, len(targetIDs))
	for _, raw := range targetIDs {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			continue
		}
		user, err := h.userRepository.GetUserByID(uint(id))
		if err != nil {
			continue
		}
		users = append(users, user.ToCompact())
	}
	return c.JSON(http.StatusOK, echo.Map{"user_id": userID, "following": users})
}
