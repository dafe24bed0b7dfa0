package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/tastebook/backend/internal/apperr"
	"github.com/tastebook/backend/internal/models"
	"github.com/tastebook/backend/internal/notify"
	"github.com/tastebook/backend/internal/reactions"
	"github.com/tastebook/backend/internal/repositories"
	"github.com/tastebook/backend/internal/stats"
	"go.uber.org/zap"
)

// ReviewHandler handles reviews and their embedded replies
type ReviewHandler struct {
	reviewRepository repositories.ReviewRepository
	recipeRepository repositories.RecipeRepository
	userRepository   repositories.UserRepository
	aggregator       *stats.Aggregator
	fanout           *notify.Fanout
	log              *zap.Logger
}

// NewReviewHandler creates a new ReviewHandler
func NewReviewHandler(
	reviewRepo repositories.ReviewRepository,
	recipeRepo repositories.RecipeRepository,
	userRepo repositories.UserRepository,
	aggregator *stats.Aggregator,
	fanout *notify.Fanout,
	log *zap.Logger,
) *ReviewHandler {
	return &ReviewHandler{
		reviewRepository: reviewRepo,
		recipeRepository: recipeRepo,
		userRepository:   userRepo,
		aggregator:       aggregator,
		fanout:           fanout,
		log:              log,
	}
}

// RegisterReviewRoutes registers authenticated review routes
func (h *ReviewHandler) RegisterReviewRoutes(g *echo.Group) {
	g.POST("/recipes/:id/reviews", h.CreateReview)
	g.POST("/reviews/:id/replies", h.CreateReply)
	g.POST("/reviews/:id/reactions", h.ReactToReview)
	g.POST("/reviews/:id/replies/:reply_id/reactions", h.ReactToReply)
}

// RegisterPublicReviewRoutes registers unauthenticated review routes
func (h *ReviewHandler) RegisterPublicReviewRoutes(g *echo.Group) {
	g.GET("/recipes/:id/reviews", h.GetReviewsByRecipeID)
}

// CreateReview posts a root review on a recipe, eagerly refreshes the
// recipe's average rating, and notifies the recipe owner. A refresh failure
// is reported as partial success, the review itself stands.
func (h *ReviewHandler) CreateReview(c echo.Context) error {
	currentUserID, err := requireActor(c)
	if err != nil {
		return err
	}
	recipeID := c.Param("id")

	var req models.CreateReviewRequest
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

	// One review per reviewer per recipe. Only a confirmed absence lets the
	// insert proceed; a storage failure here must not slip a duplicate in.
	_, err = h.reviewRepository.GetReviewByRecipeAndUser(c.Request().Context(), recipeID, currentUserID)
	if err == nil {
		return apperr.New(apperr.Conflict, "you have already reviewed this recipe")
	}
	if apperr.KindOf(err) != apperr.NotFound {
		return err
	}

	review := &models.Review{
		RecipeID: recipe.ID,
		UserID:   currentUserID,
		Rating:   req.Rating,
		Content:  req.Content,
	}
	if err := h.reviewRepository.CreateReview(c.Request().Context(), review); err != nil {
		return err
	}

	ratingRefreshed := true
	if _, err := h.aggregator.RefreshAverageRating(c.Request().Context(), recipeID); err != nil {
		ratingRefreshed = false
		h.log.Error("failed to refresh average rating after review",
			zap.String("recipe_id", recipeID), zap.Error(err))
	}

	if recipe.UserID != currentUserID {
		actor, actorErr := h.userRepository.GetUserByID(currentUserID)
		message := "Someone reviewed your recipe"
		if actorErr == nil {
			message = actor.Name + " reviewed your recipe"
		}
		h.fanout.Emit(notify.Event{
			RecipientID: recipe.UserID,
			SenderID:    currentUserID,
			Type:        models.NotificationComment,
			TargetID:    review.ID.Hex(),
			TargetType:  "review",
			Message:     message,
		})
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"review":           review,
		"rating_refreshed": ratingRefreshed,
	})
}

// GetReviewsByRecipeID lists a recipe's reviews newest first
func (h *ReviewHandler) GetReviewsByRecipeID(c echo.Context) error {
	recipeID := c.Param("id")

	if _, err := h.recipeRepository.GetRecipeByID(c.Request().Context(), recipeID); err != nil {
		return err
	}

	reviews, err := h.reviewRepository.GetReviewsByRecipeID(c.Request().Context(), recipeID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"reviews": reviews})
}

// CreateReply appends a reply under an existing review
func (h *ReviewHandler) CreateReply(c echo.Context) error {
	currentUserID, err := requireActor(c)
	if err != nil {
		return err
	}
	reviewID := c.Param("id")

	var req models.CreateReplyRequest
	if err := c.Bind(&req); err != nil {
		return apperr.New(apperr.Validation, "invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	reply := &models.Reply{
		UserID:   currentUserID,
		Content:  req.Content,
		MediaURL: req.MediaURL,
	}
	if err := h.reviewRepository.AddReply(c.Request().Context(), reviewID, reply); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, reply)
}

// ReactToReview sets the actor's emoji reaction on a review and notifies the
// review author on creation
func (h *ReviewHandler) ReactToReview(c echo.Context) error {
	currentUserID, err := requireActor(c)
	if err != nil {
		return err
	}
	reviewID := c.Param("id")

	var req models.SetReactionRequest
	if err := c.Bind(&req); err != nil {
		return apperr.New(apperr.Validation, "invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	review, err := h.reviewRepository.GetReviewByID(c.Request().Context(), reviewID)
	if err != nil {
		return err
	}

	updated, err := reactions.Apply(review.Reactions, currentUserID, req.Emoji)
	if err != nil {
		return err
	}
	if err := h.reviewRepository.SetReactions(c.Request().Context(), reviewID, updated); err != nil {
		return err
	}

	if len(updated) > len(review.Reactions) && review.UserID != currentUserID {
		h.fanout.Emit(notify.Event{
			RecipientID: review.UserID,
			SenderID:    currentUserID,
			Type:        models.NotificationLikeReview,
			TargetID:    reviewID,
			TargetType:  "review",
			Message:     "Someone reacted to your review",
		})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"reactions": updated,
		"counts":    reactions.Counts(updated),
	})
}

// ReactToReply sets the actor's emoji reaction on an embedded reply
func (h *ReviewHandler) ReactToReply(c echo.Context) error {
	currentUserID, err := requireActor(c)
	if err != nil {
		return err
	}
	reviewID := c.Param("id")
	replyID := c.Param("reply_id")

	var req models.SetReactionRequest
	if err := c.Bind(&req); err != nil {
		return apperr.New(apperr.Validation, "invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	review, err := h.reviewRepository.GetReviewByID(c.Request().Context(), reviewID)
	if err != nil {
		return err
	}

	var reply *models.Reply
	for i := range review.Replies {
		if review.Replies[i].ID == replyID {
			reply = &review.Replies[i]
			break
		}
	}
	if reply == nil {
		return apperr.New(apperr.NotFound, "reply not found")
	}

	updated, err := reactions.Apply(reply.Reactions, currentUserID, req.Emoji)
	if err != nil {
		return err
	}
	if err := h.reviewRepository.SetReplyReactions(c.Request().Context(), reviewID, replyID, updated); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{
		"reactions": updated,
		"counts":    reactions.Counts(updated),
	})
}
