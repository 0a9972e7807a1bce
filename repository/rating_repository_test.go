package repository

import (
	"testing"

	"moviehub/models"

	"github.com/stretchr/testify/assert"
)

func TestRatingRepository_Aggregate_EmptyIsZero(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	repo := NewRatingRepository(db)

	agg, err := repo.Aggregate(1, models.ContentTypeMovie)
	assert.NoError(t, err)
	assert.Equal(t, 0.0, agg.AverageRating)
	assert.Equal(t, 0, agg.RatingCount)
}

func TestRatingRepository_Upsert_OverwritesPreviousScore(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	repo := NewRatingRepository(db)
	users := NewUserRepository(db)

	alice := createTestAccount(t, users, "alice", models.RoleUser)

	assert.NoError(t, repo.Upsert(1, models.ContentTypeMovie, alice.ID, 4))
	assert.NoError(t, repo.Upsert(1, models.ContentTypeMovie, alice.ID, 9))

	// One user holds at most one rating per item
	agg, err := repo.Aggregate(1, models.ContentTypeMovie)
	assert.NoError(t, err)
	assert.Equal(t, 1, agg.RatingCount)
	assert.Equal(t, 9.0, agg.AverageRating)

	rating, err := repo.UserScore(1, models.ContentTypeMovie, alice.ID)
	assert.NoError(t, err)
	assert.Equal(t, 9, rating.Score)
}

func TestRatingRepository_Aggregate_AveragesAcrossUsers(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	repo := NewRatingRepository(db)
	users := NewUserRepository(db)

	alice := createTestAccount(t, users, "alice", models.RoleUser)
	bob := createTestAccount(t, users, "bob", models.RoleUser)

	assert.NoError(t, repo.Upsert(1, models.ContentTypeMovie, alice.ID, 6))
	assert.NoError(t, repo.Upsert(1, models.ContentTypeMovie, bob.ID, 9))

	agg, err := repo.Aggregate(1, models.ContentTypeMovie)
	assert.NoError(t, err)
	assert.Equal(t, 2, agg.RatingCount)
	assert.InDelta(t, 7.5, agg.AverageRating, 0.001)
}

func TestRatingRepository_ScoresAreScopedByVariant(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	repo := NewRatingRepository(db)
	users := NewUserRepository(db)

	alice := createTestAccount(t, users, "alice", models.RoleUser)
	assert.NoError(t, repo.Upsert(1, models.ContentTypeMovie, alice.ID, 8))

	// Same id, other variant: unrated
	agg, err := repo.Aggregate(1, models.ContentTypeSeries)
	assert.NoError(t, err)
	assert.Zero(t, agg.RatingCount)
}

func TestRatingRepository_UserScore_NotFound(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	repo := NewRatingRepository(db)

	_, err := repo.UserScore(1, models.ContentTypeMovie, 42)
	assert.ErrorIs(t, err, ErrNotFound)
}
