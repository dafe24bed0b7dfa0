package repositories

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tastebook/backend/internal/apperr"
	"github.com/tastebook/backend/internal/models"
)

func TestCreateMultipleLocalUsers(t *testing.T) {
	repo := NewPostgresUserRepository(newTestDB(t))

	// Local accounts carry no Firebase UID; the unique index must not
	// collapse them onto one another.
	require.NoError(t, repo.CreateUser(&models.User{Name: "Alice", Email: "alice@example.com"}))
	require.NoError(t, repo.CreateUser(&models.User{Name: "Bob", Email: "bob@example.com"}))
	require.NoError(t, repo.CreateUser(&models.User{Name: "Carol", Email: "carol@example.com"}))

	user, err := repo.GetUserByEmail("bob@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Bob", user.Name)
	assert.Nil(t, user.FirebaseUID)
}

func TestCreateUserDuplicateEmailConflict(t *testing.T) {
	repo := NewPostgresUserRepository(newTestDB(t))

	require.NoError(t, repo.CreateUser(&models.User{Name: "Alice", Email: "alice@example.com"}))

	err := repo.CreateUser(&models.User{Name: "Other", Email: "alice@example.com"})
	require.Error(t, err)
	assert.Equal(t, apperr.Conflict, apperr.KindOf(err))
}

func TestCreateUserDuplicateFirebaseUIDConflict(t *testing.T) {
	repo := NewPostgresUserRepository(newTestDB(t))

	uid := "firebase-uid-1"
	require.NoError(t, repo.CreateUser(&models.User{Name: "Alice", Email: "alice@example.com", FirebaseUID: &uid}))

	err := repo.CreateUser(&models.User{Name: "Imposter", Email: "imposter@example.com", FirebaseUID: &uid})
	require.Error(t, err)
	assert.Equal(t, apperr.Conflict, apperr.KindOf(err))

	found, err := repo.GetUserByFirebaseUID(uid)
	require.NoError(t, err)
	assert.Equal(t, "Alice", found.Name)
}

func TestGetUserByIDNotFound(t *testing.T) {
	repo := NewPostgresUserRepository(newTestDB(t))

	_, err := repo.GetUserByID(99)
	require.Error(t, err)
	assert.Equal(t, apperr.NotFound, apperr.KindOf(err))
}
