package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/tastebook/backend/internal/apperr"
	"github.com/tastebook/backend/internal/stats"
)

// StatsHandler exposes derived engagement statistics
type StatsHandler struct {
	aggregator *stats.Aggregator
}

// NewStatsHandler creates a new StatsHandler
func NewStatsHandler(aggregator *stats.Aggregator) *StatsHandler {
	return &StatsHandler{aggregator: aggregator}
}

// RegisterStatsRoutes registers public statistics routes
func (h *StatsHandler) RegisterStatsRoutes(g *echo.Group) {
	g.GET("/stats/top-creators", h.GetTopCreators)
	g.GET("/stats/recipes/histogram", h.GetRecipeHistogram)
	g.GET("/users/:id/channel", h.GetChannelProfile)
}

// GetTopCreators returns the creator leaderboard. The list may hold fewer
// entries than requested when ranked creators have deleted their accounts.
func (h *StatsHandler) GetTopCreators(c echo.Context) error {
	k, _ := strconv.Atoi(c.QueryParam("limit"))
	if k < 1 || k > 100 {
		k = 10
	}

	ranks, err := h.aggregator.TopCreators(c.Request().Context(), k)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"creators": ranks})
}

// GetRecipeHistogram returns recipe counts grouped by cuisine or main
// ingredient
func (h *StatsHandler) GetRecipeHistogram(c echo.Context) error {
	field := c.QueryParam("field")
	if field == "" {
		field = "cuisine"
	}
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if limit < 0 || limit > 100 {
		limit = 0
	}

	buckets, err := h.aggregator.CategoryHistogram(c.Request().Context(), field, limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"field": field, "buckets": buckets})
}

// GetChannelProfile returns a creator's public channel page
func (h *StatsHandler) GetChannelProfile(c echo.Context) error {
	ownerID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return apperr.New(apperr.Validation, "invalid user ID")
	}

	profile, err := h.aggregator.ChannelProfile(c.Request().Context(), uint(ownerID))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profile)
}
