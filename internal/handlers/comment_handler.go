package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/tastebook/backend/internal/apperr"
	"github.com/tastebook/backend/internal/models"
	"github.com/tastebook/backend/internal/notify"
	"github.com/tastebook/backend/internal/reactions"
	"github.com/tastebook/backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CommentHandler handles HTTP requests related to blog comments
type CommentHandler struct {
	commentRepository repositories.CommentRepository
	blogRepository    repositories.BlogRepository
	userRepository    repositories.UserRepository
	fanout            *notify.Fanout
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(
	commentRepo repositories.CommentRepository,
	blogRepo repositories.BlogRepository,
	userRepo repositories.UserRepository,
	fanout *notify.Fanout,
) *CommentHandler {
	return &CommentHandler{
		commentRepository: commentRepo,
		blogRepository:    blogRepo,
		userRepository:    userRepo,
		fanout:            fanout,
	}
}

// RegisterCommentRoutes registers authenticated comment routes
func (h *CommentHandler) RegisterCommentRoutes(g *echo.Group) {
	g.POST("/blogs/:id/comments", h.CreateComment)
	g.DELETE("/comments/:id", h.DeleteComment)
	g.POST("/comments/:id/reactions", h.ReactToComment)
}

// RegisterPublicCommentRoutes registers unauthenticated comment routes
func (h *CommentHandler) RegisterPublicCommentRoutes(g *echo.Group) {
	g.GET("/blogs/:id/comments", h.GetCommentsByBlogID)
}

// CreateComment posts a comment on a blog. A non-empty parent_id must
// reference an existing comment under the same blog.
func (h *CommentHandler) CreateComment(c echo.Context) error {
	currentUserID, err := requireActor(c)
	if err != nil {
		return err
	}
	blogID := c.Param("id")

	var req models.CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return apperr.New(apperr.Validation, "invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	blog, err := h.blogRepository.GetBlogByID(c.Request().Context(), blogID)
	if err != nil {
		return err
	}

	var parentID *primitive.ObjectID
	if req.ParentID != "" {
		parent, err := h.commentRepository.GetCommentByID(c.Request().Context(), req.ParentID)
		if err != nil {
			return err
		}
		if parent.BlogID != blog.ID {
			return apperr.New(apperr.NotFound, "parent comment not found under this blog")
		}
		parentID = &parent.ID
	}

	comment := &models.Comment{
		BlogID:   blog.ID,
		UserID:   currentUserID,
		ParentID: parentID,
		Content:  req.Content,
	}
	if err := h.commentRepository.CreateComment(c.Request().Context(), comment); err != nil {
		return err
	}

	if blog.UserID != currentUserID {
		actor, actorErr := h.userRepository.GetUserByID(currentUserID)
		message := "Someone commented on your blog"
		if actorErr == nil {
			message = actor.Name + " commented on your blog"
		}
		h.fanout.Emit(notify.Event{
			RecipientID: blog.UserID,
			SenderID:    currentUserID,
			Type:        models.NotificationComment,
			TargetID:    comment.ID.Hex(),
			TargetType:  "comment",
			Message:     message,
		})
	}

	return c.JSON(http.StatusCreated, comment)
}

// GetCommentsByBlogID lists a blog's comments oldest first
func (h *CommentHandler) GetCommentsByBlogID(c echo.Context) error {
	blogID := c.Param("id")

	if _, err := h.blogRepository.GetBlogByID(c.Request().Context(), blogID); err != nil {
		return err
	}

	comments, err := h.commentRepository.GetCommentsByBlogID(c.Request().Context(), blogID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"comments": comments})
}

// DeleteComment deletes the actor's own comment
func (h *CommentHandler) DeleteComment(c echo.Context) error {
	currentUserID, err := requireActor(c)
	if err != nil {
		return err
	}
	commentID := c.Param("id")

	comment, err := h.commentRepository.GetCommentByID(c.Request().Context(), commentID)
	if err != nil {
		return err
	}
	if comment.UserID != currentUserID {
		return apperr.New(apperr.Forbidden, "you are not authorized to delete this comment")
	}

	if err := h.commentRepository.DeleteComment(c.Request().Context(), commentID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// ReactToComment sets the actor's emoji reaction on a comment
func (h *CommentHandler) ReactToComment(c echo.Context) error {
	currentUserID, err := requireActor(c)
	if err != nil {
		return err
	}
	commentID := c.Param("id")

	var req models.SetReactionRequest
	if err := c.Bind(&req); err != nil {
		return apperr.New(apperr.Validation, "invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	comment, err := h.commentRepository.GetCommentByID(c.Request().Context(), commentID)
	if err != nil {
		return err
	}

	updated, err := reactions.Apply(comment.Reactions, currentUserID, req.Emoji)
	if err != nil {
		return err
	}
	if err := h.commentRepository.SetReactions(c.Request().Context(), commentID, updated); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{
		"reactions": updated,
		"counts":    reactions.Counts(updated),
	})
}
