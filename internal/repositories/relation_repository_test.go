package repositories

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tastebook/backend/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Relation{}, &models.Notification{}, &models.User{}))
	return db
}

func TestToggleCreatesThenRemoves(t *testing.T) {
	repo := NewPostgresRelationRepository(newTestDB(t))

	active, err := repo.Toggle(1, "recipe-1", models.RelationLike)
	require.NoError(t, err)
	assert.True(t, active)

	active, err = repo.Toggle(1, "recipe-1", models.RelationLike)
	require.NoError(t, err)
	assert.False(t, active)

	exists, err := repo.IsActive(1, "recipe-1", models.RelationLike)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestToggleKindsAreIndependent(t *testing.T) {
	repo := NewPostgresRelationRepository(newTestDB(t))

	_, err := repo.Toggle(1, "recipe-1", models.RelationLike)
	require.NoError(t, err)
	_, err = repo.Toggle(1, "recipe-1", models.RelationBookmark)
	require.NoError(t, err)

	liked, err := repo.IsActive(1, "recipe-1", models.RelationLike)
	require.NoError(t, err)
	bookmarked, err := repo.IsActive(1, "recipe-1", models.RelationBookmark)
	require.NoError(t, err)
	assert.True(t, liked)
	assert.True(t, bookmarked)

	// removing the like leaves the bookmark standing
	_, err = repo.Toggle(1, "recipe-1", models.RelationLike)
	require.NoError(t, err)
	bookmarked, err = repo.IsActive(1, "recipe-1", models.RelationBookmark)
	require.NoError(t, err)
	assert.True(t, bookmarked)
}

func TestToggleDuplicateInsertReportsActive(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresRelationRepository(db)

	// Simulate the losing side of a concurrent toggle: the edge appears
	// between the delete and the insert.
	require.NoError(t, db.Create(&models.Relation{ActorID: 1, TargetID: "recipe-1", Kind: models.RelationLike}).Error)

	err := db.Create(&models.Relation{ActorID: 1, TargetID: "recipe-1", Kind: models.RelationLike}).Error
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	count, err := repo.CountByTarget("recipe-1", models.RelationLike)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestCountsAndListings(t *testing.T) {
	repo := NewPostgresRelationRepository(newTestDB(t))

	for _, actor := range []uint{1, 2, 3} {
		_, err := repo.Toggle(actor, "42", models.RelationSubscription)
		require.NoError(t, err)
	}
	_, err := repo.Toggle(1, "43", models.RelationSubscription)
	require.NoError(t, err)

	followers, err := repo.CountByTarget("42", models.RelationSubscription)
	require.NoError(t, err)
	assert.Equal(t, int64(3), followers)

	following, err := repo.CountByActor(1, models.RelationSubscription)
	require.NoError(t, err)
	assert.Equal(t, int64(2), following)

	actorIDs, err := repo.ListActorIDs("42", models.RelationSubscription)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint{1, 2, 3}, actorIDs)

	targetIDs, err := repo.ListTargetIDs(1, models.RelationSubscription)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"42", "43"}, targetIDs)
}

func TestActiveMap(t *testing.T) {
	repo := NewPostgresRelationRepository(newTestDB(t))

	_, err := repo.Toggle(1, "a", models.RelationLike)
	require.NoError(t, err)
	_, err = repo.Toggle(1, "c", models.RelationLike)
	require.NoError(t, err)

	m, err := repo.ActiveMap(1, models.RelationLike, []string{"a", "b", "c"})
	require.NoError(t, err)
	assert.True(t, m["a"])
	assert.False(t, m["b"])
	assert.True(t, m["c"])

	empty, err := repo.ActiveMap(1, models.RelationLike, nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}
