package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/tastebook/backend/internal/apperr"
	"github.com/tastebook/backend/internal/models"
	"github.com/tastebook/backend/internal/repositories"
	"go.uber.org/zap"
)

// BlogHandler handles HTTP requests related to blog posts
type BlogHandler struct {
	blogRepository    repositories.BlogRepository
	commentRepository repositories.CommentRepository
	log               *zap.Logger
}

// NewBlogHandler creates a new BlogHandler
func NewBlogHandler(blogRepo repositories.BlogRepository, commentRepo repositories.CommentRepository, log *zap.Logger) *BlogHandler {
	return &BlogHandler{
		blogRepository:    blogRepo,
		commentRepository: commentRepo,
		log:               log,
	}
}

// RegisterBlogRoutes registers authenticated blog routes
func (h *BlogHandler) RegisterBlogRoutes(g *echo.Group) {
	g.POST("/blogs", h.CreateBlog)
	g.DELETE("/blogs/:id", h.DeleteBlog)
}

// RegisterPublicBlogRoutes registers unauthenticated blog routes
func (h *BlogHandler) RegisterPublicBlogRoutes(g *echo.Group) {
	g.GET("/blogs", h.GetBlogs)
	g.GET("/blogs/:id", h.GetBlog)
}

// CreateBlog creates a new blog post
func (h *BlogHandler) CreateBlog(c echo.Context) error {
	currentUserID, err := requireActor(c)
	if err != nil {
		return err
	}

	var req models.CreateBlogRequest
	if err := c.Bind(&req); err != nil {
		return apperr.New(apperr.Validation, "invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	blog := &models.Blog{
		UserID:    currentUserID,
		Title:     req.Title,
		Content:   req.Content,
		ImageURLs: req.ImageURLs,
	}
	if err := h.blogRepository.CreateBlog(c.Request().Context(), blog); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, blog)
}

// GetBlogs lists blog posts newest first
func (h *BlogHandler) GetBlogs(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 50 {
		limit = 10
	}
	skip := int64((page - 1) * limit)

	blogs, err := h.blogRepository.GetBlogs(c.Request().Context(), skip, int64(limit))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"blogs": blogs, "page": page, "limit": limit})
}

// GetBlog fetches one blog post, counting the view
func (h *BlogHandler) GetBlog(c echo.Context) error {
	blogID := c.Param("id")
	currentUserID := actorID(c)

	incremented, err := h.blogRepository.RegisterView(c.Request().Context(), blogID, currentUserID)
	if err != nil {
		return err
	}

	blog, err := h.blogRepository.GetBlogByID(c.Request().Context(), blogID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"blog": blog, "view_incremented": incremented})
}

// DeleteBlog deletes a blog post and bulk-deletes its comments. Comments are
// independent documents, so the cleanup is this explicit call, not a cascade.
func (h *BlogHandler) DeleteBlog(c echo.Context) error {
	currentUserID, err := requireActor(c)
	if err != nil {
		return err
	}
	blogID := c.Param("id")

	blog, err := h.blogRepository.GetBlogByID(c.Request().Context(), blogID)
	if err != nil {
		return err
	}
	if blog.UserID != currentUserID {
		return apperr.New(apperr.Forbidden, "you are not authorized to delete this blog")
	}

	if err := h.blogRepository.DeleteBlog(c.Request().Context(), blogID); err != nil {
		return err
	}
	deleted, err := h.commentRepository.DeleteCommentsByBlogID(c.Request().Context(), blogID)
	if err != nil {
		h.log.Error("failed to delete comments for deleted blog",
			zap.String("blog_id", blogID), zap.Error(err))
	}

	return c.JSON(http.StatusOK, echo.Map{"deleted_comments": deleted})
}
