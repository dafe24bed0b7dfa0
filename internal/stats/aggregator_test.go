package stats

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tastebook/backend/internal/repositories"
)

type fakeReviewRatings struct {
	repositories.ReviewRepository
	ratings []int
	err     error
}

func (f *fakeReviewRatings) AverageRating(context.Context, string) (float64, error) {
	if f.err != nil {
		return 0, f.err
	}
	if len(f.ratings) == 0 {
		return 0, nil
	}
	sum := 0
	for _, r := range f.ratings {
		sum += r
	}
	return float64(sum) / float64(len(f.ratings)), nil
}

type fakeRecipeWriter struct {
	repositories.RecipeRepository
	savedAvg float64
	saves    int
	err      error
}

func (f *fakeRecipeWriter) SetAverageRating(_ context.Context, _ string, rating float64) error {
	if f.err != nil {
		return f.err
	}
	f.savedAvg = rating
	f.saves++
	return nil
}

func TestRefreshAverageRatingPersistsMean(t *testing.T) {
	reviews := &fakeReviewRatings{ratings: []int{4, 5, 3}}
	recipes := &fakeRecipeWriter{}
	a := &Aggregator{reviews: reviews, recipeRepo: recipes}

	avg, err := a.RefreshAverageRating(context.Background(), "recipe-1")
	require.NoError(t, err)
	assert.Equal(t, 4.0, avg)
	assert.Equal(t, 4.0, recipes.savedAvg)

	// a new low rating drags the eager average down on the next refresh
	reviews.ratings = append(reviews.ratings, 2)
	avg, err = a.RefreshAverageRating(context.Background(), "recipe-1")
	require.NoError(t, err)
	assert.Equal(t, 3.5, avg)
	assert.Equal(t, 3.5, recipes.savedAvg)
	assert.Equal(t, 2, recipes.saves)
}

func TestRefreshAverageRatingNoReviews(t *testing.T) {
	recipes := &fakeRecipeWriter{}
	a := &Aggregator{reviews: &fakeReviewRatings{}, recipeRepo: recipes}

	avg, err := a.RefreshAverageRating(context.Background(), "recipe-1")
	require.NoError(t, err)
	assert.Zero(t, avg)
	assert.Equal(t, 1, recipes.saves)
}

func TestRefreshAverageRatingPropagatesErrors(t *testing.T) {
	a := &Aggregator{
		reviews:    &fakeReviewRatings{err: errors.New("aggregate failed")},
		recipeRepo: &fakeRecipeWriter{},
	}
	_, err := a.RefreshAverageRating(context.Background(), "recipe-1")
	assert.Error(t, err)

	a = &Aggregator{
		reviews:    &fakeReviewRatings{ratings: []int{4}},
		recipeRepo: &fakeRecipeWriter{err: errors.New("write failed")},
	}
	_, err = a.RefreshAverageRating(context.Background(), "recipe-1")
	assert.Error(t, err)
}
