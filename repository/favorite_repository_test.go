package repository

import (
	"testing"

	"moviehub/models"

	"github.com/stretchr/testify/assert"
)

func TestFavoriteRepository_AddIsIdempotent(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	repo := NewFavoriteRepository(db)
	users := NewUserRepository(db)

	alice := createTestAccount(t, users, "alice", models.RoleUser)

	assert.NoError(t, repo.Add(1, models.ContentTypeMovie, alice.ID))
	assert.NoError(t, repo.Add(1, models.ContentTypeMovie, alice.ID))

	refs, err := repo.ListByUser(alice.ID)
	assert.NoError(t, err)
	assert.Len(t, refs, 1)
}

func TestFavoriteRepository_ExistsAndRemove(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	repo := NewFavoriteRepository(db)
	users := NewUserRepository(db)

	alice := createTestAccount(t, users, "alice", models.RoleUser)
	assert.NoError(t, repo.Add(2, models.ContentTypeSeries, alice.ID))

	exists, err := repo.Exists(2, models.ContentTypeSeries, alice.ID)
	assert.NoError(t, err)
	assert.True(t, exists)

	assert.NoError(t, repo.Remove(2, models.ContentTypeSeries, alice.ID))

	exists, err = repo.Exists(2, models.ContentTypeSeries, alice.ID)
	assert.NoError(t, err)
	assert.False(t, exists)

	assert.ErrorIs(t, repo.Remove(2, models.ContentTypeSeries, alice.ID), ErrNotFound)
}

func TestFavoriteRepository_ListByUser_IsPerUser(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	repo := NewFavoriteRepository(db)
	users := NewUserRepository(db)

	alice := createTestAccount(t, users, "alice", models.RoleUser)
	bob := createTestAccount(t, users, "bob", models.RoleUser)

	assert.NoError(t, repo.Add(1, models.ContentTypeMovie, alice.ID))
	assert.NoError(t, repo.Add(2, models.ContentTypeMovie, bob.ID))

	refs, err := repo.ListByUser(alice.ID)
	assert.NoError(t, err)
	assert.Len(t, refs, 1)
	assert.Equal(t, 1, refs[0].ContentID)
	assert.Equal(t, models.ContentTypeMovie, refs[0].ContentType)
}
