package repository

import (
	"testing"

	"moviehub/models"

	"github.com/stretchr/testify/assert"
)

func TestReviewRepository_CreateAndList(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	repo := NewReviewRepository(db)
	users := NewUserRepository(db)

	alice := createTestAccount(t, users, "alice", models.RoleUser)

	review := &models.Review{
		ContentID:   1,
		ContentType: models.ContentTypeMovie,
		UserID:      alice.ID,
		Content:     "A classic.",
	}
	assert.NoError(t, repo.Create(review))
	assert.NotZero(t, review.ID)
	assert.False(t, review.CreatedAt.IsZero())

	reviews, err := repo.ListByContent(1, models.ContentTypeMovie)
	assert.NoError(t, err)
	assert.Len(t, reviews, 1)
	assert.Equal(t, "alice", reviews[0].Username, "the author's username is joined in")
	assert.Equal(t, "A classic.", reviews[0].Content)
}

func TestReviewRepository_ListByContent_ScopedToItem(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	repo := NewReviewRepository(db)
	users := NewUserRepository(db)

	alice := createTestAccount(t, users, "alice", models.RoleUser)

	for _, r := range []models.Review{
		{ContentID: 1, ContentType: models.ContentTypeMovie, UserID: alice.ID, Content: "movie one"},
		{ContentID: 2, ContentType: models.ContentTypeMovie, UserID: alice.ID, Content: "movie two"},
		{ContentID: 1, ContentType: models.ContentTypeSeries, UserID: alice.ID, Content: "series one"},
	} {
		review := r
		assert.NoError(t, repo.Create(&review))
	}

	reviews, err := repo.ListByContent(1, models.ContentTypeMovie)
	assert.NoError(t, err)
	assert.Len(t, reviews, 1)
	assert.Equal(t, "movie one", reviews[0].Content)
}

func TestReviewRepository_GetByID(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	repo := NewReviewRepository(db)
	users := NewUserRepository(db)

	bob := createTestAccount(t, users, "bob", models.RoleUser)
	review := &models.Review{ContentID: 3, ContentType: models.ContentTypeSeries, UserID: bob.ID, Content: "solid"}
	assert.NoError(t, repo.Create(review))

	got, err := repo.GetByID(review.ID)
	assert.NoError(t, err)
	assert.Equal(t, bob.ID, got.UserID)
	assert.Equal(t, "bob", got.Username)
}

func TestReviewRepository_Delete(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	repo := NewReviewRepository(db)
	users := NewUserRepository(db)

	alice := createTestAccount(t, users, "alice", models.RoleUser)
	review := &models.Review{ContentID: 1, ContentType: models.ContentTypeMovie, UserID: alice.ID, Content: "gone soon"}
	assert.NoError(t, repo.Create(review))

	assert.NoError(t, repo.Delete(review.ID))

	_, err := repo.GetByID(review.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, repo.Delete(review.ID), ErrNotFound)
}
