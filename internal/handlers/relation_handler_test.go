package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tastebook/backend/internal/middleware"
	"github.com/tastebook/backend/internal/models"
	"github.com/tastebook/backend/internal/notify"
	"github.com/tastebook/backend/internal/repositories"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newRelationHandlerForTest(t *testing.T) (*RelationHandler, repositories.RelationRepository) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Relation{}))

	relationRepo := repositories.NewPostgresRelationRepository(db)
	users := &fakeUserRepo{users: map[uint]*models.User{
		1:  {ID: 1, Name: "Alice"},
		42: {ID: 42, Name: "Bob"},
	}}
	fanout := notify.NewFanout(&stubNotificationRepo{}, zap.NewNop(), 8)
	t.Cleanup(fanout.Close)

	return NewRelationHandler(relationRepo, nil, users, fanout), relationRepo
}

func toggleFollow(t *testing.T, h *RelationHandler, param string) bool {
	t.Helper()
	c, rec := newJSONContext(http.MethodPost, "")
	c.SetParamNames("id")
	c.SetParamValues(param)
	c.Set(middleware.ActorKey, &models.JwtCustomClaims{UserID: 1})
	require.NoError(t, h.ToggleFollow(c))

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body["active"].(bool)
}

func TestToggleFollowNormalizesTargetID(t *testing.T) {
	h, relationRepo := newRelationHandlerForTest(t)

	// a zero-padded path param still keys the edge canonically
	assert.True(t, toggleFollow(t, h, "042"))

	active, err := relationRepo.IsActive(1, "42", models.RelationSubscription)
	require.NoError(t, err)
	assert.True(t, active)

	count, err := relationRepo.CountByTarget("42", models.RelationSubscription)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	// the canonical form addresses the same edge, so this unfollows
	assert.False(t, toggleFollow(t, h, "42"))

	count, err = relationRepo.CountByTarget("42", models.RelationSubscription)
	require.NoError(t, err)
	assert.Zero(t, count)
}
