package pg

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashankb2004/edublog/internal/domain"
	internal_errors "github.com/shashankb2004/edublog/internal/errors"
)

func TestSaveUserAndLookup(t *testing.T) {
	cleanTables(t)

	saved, err := storage.SaveUser(domain.User{Username: "Alice", Email: "a@x.com", PassHash: "hash1"})
	require.NoError(t, err)
	assert.NotZero(t, saved.Id)
	assert.False(t, saved.CreatedAt.IsZero())

	t.Run("lookup by username is case-insensitive", func(t *testing.T) {
		got, err := storage.UserByUsername("alice")
		require.NoError(t, err)
		assert.Equal(t, saved.Id, got.Id)
		assert.Equal(t, "Alice", got.Username)
		assert.Equal(t, "hash1", got.PassHash)
	})

	t.Run("lookup by id", func(t *testing.T) {
		got, err := storage.UserById(saved.Id)
		require.NoError(t, err)
		assert.Equal(t, "a@x.com", got.Email)
	})

	t.Run("unknown user is not found", func(t *testing.T) {
		_, err := storage.UserByUsername("ghost")
		require.Error(t, err)
		assert.True(t, internal_errors.IsNotFound(err))
	})
}

func TestSaveUserUniqueViolation(t *testing.T) {
	cleanTables(t)

	_, err := storage.SaveUser(domain.User{Username: "alice", Email: "a@x.com", PassHash: "h"})
	require.NoError(t, err)

	t.Run("duplicate email, different case", func(t *testing.T) {
		_, err := storage.SaveUser(domain.User{Username: "other", Email: "A@X.COM", PassHash: "h"})
		require.Error(t, err)
		e, ok := err.(*internal_errors.ErrorWithStatusCode)
		require.True(t, ok)
		assert.Equal(t, http.StatusBadRequest, e.StatusCode)
		assert.Equal(t, "Email already registered", e.Message)
	})

	t.Run("duplicate username, different case", func(t *testing.T) {
		_, err := storage.SaveUser(domain.User{Username: "ALICE", Email: "other@x.com", PassHash: "h"})
		require.Error(t, err)
		e, ok := err.(*internal_errors.ErrorWithStatusCode)
		require.True(t, ok)
		assert.Equal(t, http.StatusBadRequest, e.StatusCode)
		assert.Equal(t, "Username already taken", e.Message)
	})
}

func TestUserExists(t *testing.T) {
	cleanTables(t)

	_, err := storage.SaveUser(domain.User{Username: "alice", Email: "a@x.com", PassHash: "h"})
	require.NoError(t, err)

	emailTaken, usernameTaken, err := storage.UserExists("ALICE", "A@X.com")
	require.NoError(t, err)
	assert.True(t, emailTaken)
	assert.True(t, usernameTaken)

	emailTaken, usernameTaken, err = storage.UserExists("bob", "b@x.com")
	require.NoError(t, err)
	assert.False(t, emailTaken)
	assert.False(t, usernameTaken)
}

func TestUpdatePassword(t *testing.T) {
	cleanTables(t)

	saved, err := storage.SaveUser(domain.User{Username: "alice", Email: "a@x.com", PassHash: "old"})
	require.NoError(t, err)

	require.NoError(t, storage.UpdatePassword(saved.Id, "new"))

	got, err := storage.UserById(saved.Id)
	require.NoError(t, err)
	assert.Equal(t, "new", got.PassHash)

	t.Run("unknown user", func(t *testing.T) {
		err := storage.UpdatePassword(9999, "x")
		require.Error(t, err)
		assert.True(t, internal_errors.IsNotFound(err))
	})
}
