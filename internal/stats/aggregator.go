package stats

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/tastebook/backend/internal/apperr"
	"github.com/tastebook/backend/internal/models"
	"github.com/tastebook/backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

const leaderboardTTL = 60 * time.Second

// Aggregator computes derived engagement statistics on demand. Nothing it
// produces is a source of truth except the recipe's average rating, which it
// refreshes eagerly after each new review.
type Aggregator struct {
	recipes    *mongo.Collection
	reviews    repositories.ReviewRepository
	recipeRepo repositories.RecipeRepository
	users      repositories.UserRepository
	relations  repositories.RelationRepository
	cache      *redis.Client // optional leaderboard snapshot cache
	log        *zap.Logger
}

// NewAggregator creates a new Aggregator. cache may be nil.
func NewAggregator(
	db *mongo.Database,
	reviews repositories.ReviewRepository,
	recipeRepo repositories.RecipeRepository,
	users repositories.UserRepository,
	relations repositories.RelationRepository,
	cache *redis.Client,
	log *zap.Logger,
) *Aggregator {
	return &Aggregator{
		recipes:    db.Collection("recipes"),
		reviews:    reviews,
		recipeRepo: recipeRepo,
		users:      users,
		relations:  relations,
		cache:      cache,
		log:        log,
	}
}

// RefreshAverageRating recomputes avg(rating) over the recipe's reviews and
// writes it back. Called synchronously after a review insert; the caller
// treats a failure as partial success, never as a reason to undo the review.
func (a *Aggregator) RefreshAverageRating(ctx context.Context, recipeID string) (float64, error) {
	avg, err := a.reviews.AverageRating(ctx, recipeID)
	if err != nil {
		return 0, err
	}
	if err := a.recipeRepo.SetAverageRating(ctx, recipeID, avg); err != nil {
		return 0, err
	}
	return avg, nil
}

// CreatorRank is one row of the top-creator leaderboard.
type CreatorRank struct {
	Creator     models.UserCompact `json:"creator"`
	RecipeCount int64              `json:"recipe_count"`
	AvgRating   float64            `json:"average_rating"`
	TotalViews  int64              `json:"total_views"`
}

type creatorRow struct {
	UserID      uint    `bson:"_id"`
	RecipeCount int64   `bson:"recipe_count"`
	AvgRating   float64 `bson:"avg_rating"`
	TotalViews  int64   `bson:"total_views"`
}

// TopCreators groups recipes by owner, ranks by recipe count then average
// rating, caps at k, and resolves owner identities in a second pass. Owners
// that no longer exist are dropped silently, so the result may hold fewer
// than k rows.
func (a *Aggregator) TopCreators(ctx context.Context, k int) ([]CreatorRank, error) {
	cacheKey := fmt.Sprintf("stats:top-creators:%d", k)
	if a.cache != nil {
		if cached, err := a.cache.Get(ctx, cacheKey).Bytes(); err == nil {
			var ranks []CreatorRank
			if json.Unmarshal(cached, &ranks) == nil {
				return ranks, nil
			}
		}
	}

	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":          "$user_id",
			"recipe_count": bson.M{"$sum": 1},
			"avg_rating":   bson.M{"$avg": "$average_rating"},
			"total_views":  bson.M{"$sum": "$views"},
		}}},
	}
	cursor, err := a.recipes.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rows []creatorRow
	if err = cursor.All(ctx, &rows); err != nil {
		return nil, err
	}

	sortCreatorRows(rows)
	if len(rows) > k {
		rows = rows[:k]
	}

	ranks := make([]CreatorRank, 0, len(rows))
	for _, row := range rows {
		user, err := a.users.GetUserByID(row.UserID)
		if err != nil {
			var e *apperr.Error
			if errors.As(err, &e) && e.Kind == apperr.NotFound {
				continue // deleted creator, excluded from the ranking
			}
			return nil, err
		}
		ranks = append(ranks, CreatorRank{
			Creator:     user.ToCompact(),
			RecipeCount: row.RecipeCount,
			AvgRating:   row.AvgRating,
			TotalViews:  row.TotalViews,
		})
	}

	if a.cache != nil {
		if encoded, err := json.Marshal(ranks); err == nil {
			if err := a.cache.Set(ctx, cacheKey, encoded, leaderboardTTL).Err(); err != nil {
				a.log.Warn("failed to cache leaderboard", zap.Error(err))
			}
		}
	}
	return ranks, nil
}

// Bucket is one histogram entry for a grouped recipe field.
type Bucket struct {
	Value string `json:"value" bson:"_id"`
	Count int64  `json:"count" bson:"count"`
}

var histogramFields = map[string]bool{
	"cuisine":         true,
	"main_ingredient": true,
}

// CategoryHistogram counts recipes grouped by a whitelisted field, sorted
// descending, capped at limit buckets.
func (a *Aggregator) CategoryHistogram(ctx context.Context, field string, limit int) ([]Bucket, error) {
	if !histogramFields[field] {
		return nil, apperr.New(apperr.Validation, "unsupported histogram field")
	}

	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{"_id": "$" + field, "count": bson.M{"$sum": 1}}}},
		{{Key: "$sort", Value: bson.D{{Key: "count", Value: -1}, {Key: "_id", Value: 1}}}},
	}
	if limit > 0 {
		pipeline = append(pipeline, bson.D{{Key: "$limit", Value: limit}})
	}

	cursor, err := a.recipes.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var buckets []Bucket
	if err = cursor.All(ctx, &buckets); err != nil {
		return nil, err
	}
	return buckets, nil
}

// ChannelProfile combines follow counts, content stats and derived badges for
// one creator's channel page.
type ChannelProfile struct {
	Creator   models.UserCompact `json:"creator"`
	Followers int64              `json:"followers"`
	Following int64              `json:"following"`
	Content   ContentStats       `json:"content"`
	Badges    []string           `json:"badges"`
}

func (a *Aggregator) ChannelProfile(ctx context.Context, ownerID uint) (*ChannelProfile, error) {
	owner, err := a.users.GetUserByID(ownerID)
	if err != nil {
		return nil, err
	}

	ownerKey := strconv.FormatUint(uint64(ownerID), 10)
	followers, err := a.relations.CountByTarget(ownerKey, models.RelationSubscription)
	if err != nil {
		return nil, err
	}
	following, err := a.relations.CountByActor(ownerID, models.RelationSubscription)
	if err != nil {
		return nil, err
	}

	content, err := a.contentStats(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	return &ChannelProfile{
		Creator:   owner.ToCompact(),
		Followers: followers,
		Following: following,
		Content:   content,
		Badges:    deriveBadges(content, followers),
	}, nil
}

func (a *Aggregator) contentStats(ctx context.Context, ownerID uint) (ContentStats, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"user_id": ownerID}}},
		{{Key: "$group", Value: bson.M{
			"_id":           nil,
			"recipe_count":  bson.M{"$sum": 1},
			"premium_count": bson.M{"$sum": bson.M{"$cond": bson.A{"$is_premium", 1, 0}}},
			"avg_rating":    bson.M{"$avg": "$average_rating"},
			"total_views":   bson.M{"$sum": "$views"},
		}}},
	}
	cursor, err := a.recipes.Aggregate(ctx, pipeline)
	if err != nil {
		return ContentStats{}, err
	}
	defer cursor.Close(ctx)

	var results []ContentStats
	if err = cursor.All(ctx, &results); err != nil {
		return ContentStats{}, err
	}
	if len(results) == 0 {
		return ContentStats{}, nil
	}
	return results[0], nil
}
