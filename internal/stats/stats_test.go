package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSortCreatorRowsByCountThenRating(t *testing.T) {
	rows := []creatorRow{
		{UserID: 1, RecipeCount: 3, AvgRating: 4.0},
		{UserID: 2, RecipeCount: 5, AvgRating: 3.0},
		{UserID: 3, RecipeCount: 3, AvgRating: 4.8},
	}

	sortCreatorRows(rows)

	assert.Equal(t, uint(2), rows[0].UserID)
	assert.Equal(t, uint(3), rows[1].UserID) // rating breaks the tie
	assert.Equal(t, uint(1), rows[2].UserID)
}

func TestSortCreatorRowsStableOnFullTie(t *testing.T) {
	rows := []creatorRow{
		{UserID: 9, RecipeCount: 2, AvgRating: 4.0},
		{UserID: 4, RecipeCount: 2, AvgRating: 4.0},
	}

	sortCreatorRows(rows)

	assert.Equal(t, uint(9), rows[0].UserID)
	assert.Equal(t, uint(4), rows[1].UserID)
}

func TestDeriveBadgesEmpty(t *testing.T) {
	badges := deriveBadges(ContentStats{RecipeCount: 2, AvgRating: 4.9}, 10)
	assert.NotNil(t, badges)
	assert.Empty(t, badges)
}

func TestDeriveBadgesThresholds(t *testing.T) {
	content := ContentStats{
		RecipeCount:  20,
		PremiumCount: 5,
		AvgRating:    4.5,
	}

	badges := deriveBadges(content, 1000)

	assert.Equal(t, []string{"5★ Cook", "Prolific", "Premium Chef", "Popular"}, badges)
}

func TestDeriveBadgesFiveStarNeedsVolume(t *testing.T) {
	// a perfect rating on too few recipes earns nothing
	badges := deriveBadges(ContentStats{RecipeCount: 5, AvgRating: 5.0}, 0)
	assert.Empty(t, badges)

	badges = deriveBadges(ContentStats{RecipeCount: 6, AvgRating: 5.0}, 0)
	assert.Equal(t, []string{"5★ Cook"}, badges)
}
