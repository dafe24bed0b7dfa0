package repositories

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func updateCommand(t *testing.T, mt *mtest.T) (filter, update bson.Raw) {
	t.Helper()
	evt := mt.GetStartedEvent()
	require.NotNil(t, evt)
	stmt := evt.Command.Lookup("updates").Array().Index(0).Value().Document()
	return stmt.Lookup("q").Document(), stmt.Lookup("u").Document()
}

func TestRegisterViewFirstAuthenticatedView(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("counts once", func(mt *mtest.T) {
		repo := &MongoRecipeRepository{collection: mt.Coll}
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 1},
			bson.E{Key: "nModified", Value: 1},
		))

		incremented, err := repo.RegisterView(context.Background(), primitive.NewObjectID().Hex(), 7)
		require.NoError(mt, err)
		assert.True(mt, incremented)

		// the ledger check and the increment travel as one conditional update
		filter, update := updateCommand(t, mt)
		_, err = filter.LookupErr("viewed_by")
		assert.NoError(mt, err)
		_, err = update.LookupErr("$addToSet")
		assert.NoError(mt, err)
		_, err = update.LookupErr("$inc")
		assert.NoError(mt, err)
	})
}

func TestRegisterViewRepeatViewerNotCounted(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("repeat view", func(mt *mtest.T) {
		repo := &MongoRecipeRepository{collection: mt.Coll}
		// viewer already in the ledger: the conditional filter matches nothing
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 0},
			bson.E{Key: "nModified", Value: 0},
		))

		incremented, err := repo.RegisterView(context.Background(), primitive.NewObjectID().Hex(), 7)
		require.NoError(mt, err)
		assert.False(mt, incremented)
	})
}

func TestRegisterViewAnonymousAlwaysCounts(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("anonymous view", func(mt *mtest.T) {
		repo := &MongoRecipeRepository{collection: mt.Coll}
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 1},
			bson.E{Key: "nModified", Value: 1},
		))

		incremented, err := repo.RegisterView(context.Background(), primitive.NewObjectID().Hex(), 0)
		require.NoError(mt, err)
		assert.True(mt, incremented)

		// no ledger entry and no ledger condition for anonymous viewers
		filter, update := updateCommand(t, mt)
		_, err = filter.LookupErr("viewed_by")
		assert.Error(mt, err)
		_, err = update.LookupErr("$addToSet")
		assert.Error(mt, err)
		_, err = update.LookupErr("$inc")
		assert.NoError(mt, err)
	})
}

func TestRegisterViewRejectsMalformedID(t *testing.T) {
	repo := &MongoRecipeRepository{}
	_, err := repo.RegisterView(context.Background(), "not-an-object-id", 7)
	assert.Error(t, err)
}
