package viewmodel

import (
	"context"
	"testing"
	"time"

	"moviehub/models"
	"moviehub/services"

	"github.com/stretchr/testify/assert"
)

// fakeSession is a Session with a fixed user
type fakeSession struct {
	user *models.User
}

func (f *fakeSession) Active() bool          { return f.user != nil }
func (f *fakeSession) Current() *models.User { return f.user }

// fakeDetailAPI is a controllable DetailAPI. Every method delegates to the
// corresponding function field; nil fields answer with benign defaults.
type fakeDetailAPI struct {
	getContentFn     func(t models.ContentType, id int) (*models.ContentItem, error)
	listReviewsFn    func(contentID int, t models.ContentType) ([]models.Review, error)
	createReviewFn   func(review models.NewReview) (*models.Review, error)
	deleteReviewFn   func(reviewID int) error
	contentRatingFn  func(contentID int, t models.ContentType) (*models.RatingAggregate, error)
	userRatingFn     func(contentID int, t models.ContentType) (*models.UserRating, error)
	submitRatingFn   func(rating models.SubmitRating) error
	checkFavoriteFn  func(contentID int, t models.ContentType) (bool, error)
	addFavoriteFn    func(contentID int, t models.ContentType) error
	removeFavoriteFn func(contentID int, t models.ContentType) error
}

func (f *fakeDetailAPI) GetContent(_ context.Context, t models.ContentType, id int) (*models.ContentItem, error) {
	if f.getContentFn != nil {
		return f.getContentFn(t, id)
	}
	return &models.ContentItem{ID: id, Type: t, Title: "Blade Runner"}, nil
}

func (f *fakeDetailAPI) ListReviews(_ context.Context, contentID int, t models.ContentType) ([]models.Review, error) {
	if f.listReviewsFn != nil {
		return f.listReviewsFn(contentID, t)
	}
	return nil, nil
}

func (f *fakeDetailAPI) CreateReview(_ context.Context, review models.NewReview) (*models.Review, error) {
	if f.createReviewFn != nil {
		return f.createReviewFn(review)
	}
	return &models.Review{ID: 1, ContentID: review.ContentID, ContentType: review.ContentType, Content: review.Content}, nil
}

func (f *fakeDetailAPI) DeleteReview(_ context.Context, reviewID int) error {
	if f.deleteReviewFn != nil {
		return f.deleteReviewFn(reviewID)
	}
	return nil
}

func (f *fakeDetailAPI) ContentRating(_ context.Context, contentID int, t models.ContentType) (*models.RatingAggregate, error) {
	if f.contentRatingFn != nil {
		return f.contentRatingFn(contentID, t)
	}
	return &models.RatingAggregate{}, nil
}

func (f *fakeDetailAPI) UserRating(_ context.Context, contentID int, t models.ContentType) (*models.UserRating, error) {
	if f.userRatingFn != nil {
		return f.userRatingFn(contentID, t)
	}
	return nil, &services.Fault{Kind: services.FaultNotFound, StatusCode: 404}
}

func (f *fakeDetailAPI) SubmitRating(_ context.Context, rating models.SubmitRating) error {
	if f.submitRatingFn != nil {
		return f.submitRatingFn(rating)
	}
	return nil
}

func (f *fakeDetailAPI) CheckFavorite(_ context.Context, contentID int, t models.ContentType) (bool, error) {
	if f.checkFavoriteFn != nil {
		return f.checkFavoriteFn(contentID, t)
	}
	return false, nil
}

func (f *fakeDetailAPI) AddFavorite(_ context.Context, contentID int, t models.ContentType) error {
	if f.addFavoriteFn != nil {
		return f.addFavoriteFn(contentID, t)
	}
	return nil
}

func (f *fakeDetailAPI) RemoveFavorite(_ context.Context, contentID int, t models.ContentType) error {
	if f.removeFavoriteFn != nil {
		return f.removeFavoriteFn(contentID, t)
	}
	return nil
}

func connectivityFault() error {
	return &services.Fault{Kind: services.FaultConnectivity}
}

func loggedIn(username string) *fakeSession {
	return &fakeSession{user: &models.User{Username: username, Role: models.RoleUser, Token: "tok"}}
}

func loadedDetail(t *testing.T, api *fakeDetailAPI, session Session) *DetailViewModel {
	vm := NewDetailViewModel(api, session)
	if err := vm.Load(context.Background(), 7, models.ContentTypeMovie); err != nil {
		t.Fatalf("Failed to load detail: %v", err)
	}
	return vm
}

func TestDetailViewModel_Load_HappyPath(t *testing.T) {
	api := &fakeDetailAPI{
		listReviewsFn: func(int, models.ContentType) ([]models.Review, error) {
			return []models.Review{{ID: 1, Content: "great", Username: "alice"}}, nil
		},
		contentRatingFn: func(int, models.ContentType) (*models.RatingAggregate, error) {
			return &models.RatingAggregate{AverageRating: 8.1, RatingCount: 12}, nil
		},
		userRatingFn: func(contentID int, t models.ContentType) (*models.UserRating, error) {
			return &models.UserRating{ContentID: contentID, ContentType: t, Score: 9}, nil
		},
		checkFavoriteFn: func(int, models.ContentType) (bool, error) { return true, nil },
	}
	vm := loadedDetail(t, api, loggedIn("alice"))

	assert.Equal(t, "Blade Runner", vm.Item().Title)
	assert.Equal(t, 8.1, vm.Rating().AverageRating)
	assert.Equal(t, 12, vm.Rating().RatingCount)
	assert.Equal(t, 9, vm.UserScore())
	assert.True(t, vm.IsFavorite())
	assert.Len(t, vm.Reviews(), 1)
	assert.False(t, vm.Facets().Any())
}

func TestDetailViewModel_Load_ItemFailureAbortsLoad(t *testing.T) {
	api := &fakeDetailAPI{
		getContentFn: func(models.ContentType, int) (*models.ContentItem, error) {
			return nil, &services.Fault{Kind: services.FaultNotFound, StatusCode: 404}
		},
	}
	vm := NewDetailViewModel(api, &fakeSession{})

	err := vm.Load(context.Background(), 7, models.ContentTypeMovie)
	assert.True(t, services.HasKind(err, services.FaultNotFound))
	assert.Nil(t, vm.Item())
}

func TestDetailViewModel_Load_FacetFailureIsIsolated(t *testing.T) {
	api := &fakeDetailAPI{
		listReviewsFn: func(int, models.ContentType) ([]models.Review, error) {
			return nil, connectivityFault()
		},
		contentRatingFn: func(int, models.ContentType) (*models.RatingAggregate, error) {
			return &models.RatingAggregate{AverageRating: 7.5, RatingCount: 4}, nil
		},
	}
	vm := loadedDetail(t, api, &fakeSession{})

	// The item and the rating came through; only the reviews facet failed
	assert.Equal(t, "Blade Runner", vm.Item().Title)
	assert.Equal(t, 7.5, vm.Rating().AverageRating)
	facets := vm.Facets()
	assert.True(t, facets.Any())
	assert.Error(t, facets.Reviews)
	assert.NoError(t, facets.Rating)
}

func TestDetailViewModel_Load_AnonymousSkipsUserFacets(t *testing.T) {
	api := &fakeDetailAPI{
		userRatingFn: func(int, models.ContentType) (*models.UserRating, error) {
			t.Fatal("user rating must not be fetched without a session")
			return nil, nil
		},
		checkFavoriteFn: func(int, models.ContentType) (bool, error) {
			t.Fatal("favorite status must not be fetched without a session")
			return false, nil
		},
	}
	vm := loadedDetail(t, api, &fakeSession{})

	assert.Equal(t, 0, vm.UserScore())
	assert.False(t, vm.IsFavorite())
}

func TestDetailViewModel_Load_UnratedIsNotAFacetError(t *testing.T) {
	vm := loadedDetail(t, &fakeDetailAPI{}, loggedIn("alice"))

	assert.Equal(t, 0, vm.UserScore())
	assert.NoError(t, vm.Facets().UserRating)
}

func TestDetailViewModel_SubmitRating_RequiresSession(t *testing.T) {
	called := false
	api := &fakeDetailAPI{
		submitRatingFn: func(models.SubmitRating) error {
			called = true
			return nil
		},
	}
	vm := loadedDetail(t, api, &fakeSession{})

	err := vm.SubmitRating(context.Background(), 8)
	assert.True(t, services.HasKind(err, services.FaultAuth))
	assert.False(t, called, "no request may go out without a session")
}

func TestDetailViewModel_SubmitRating_ValidatesScore(t *testing.T) {
	vm := loadedDetail(t, &fakeDetailAPI{}, loggedIn("alice"))

	assert.True(t, services.HasKind(vm.SubmitRating(context.Background(), 0), services.FaultValidation))
	assert.True(t, services.HasKind(vm.SubmitRating(context.Background(), 11), services.FaultValidation))
	assert.Equal(t, 0, vm.UserScore())
}

func TestDetailViewModel_SubmitRating_RollsBackOnFailure(t *testing.T) {
	api := &fakeDetailAPI{
		userRatingFn: func(contentID int, ct models.ContentType) (*models.UserRating, error) {
			return &models.UserRating{ContentID: contentID, ContentType: ct, Score: 5}, nil
		},
		submitRatingFn: func(models.SubmitRating) error {
			return connectivityFault()
		},
	}
	vm := loadedDetail(t, api, loggedIn("alice"))
	assert.Equal(t, 5, vm.UserScore())

	err := vm.SubmitRating(context.Background(), 9)
	assert.True(t, services.HasKind(err, services.FaultConnectivity))
	assert.Equal(t, 5, vm.UserScore(), "failed submission must restore the previous score")
}

func TestDetailViewModel_SubmitRating_RefreshesAggregate(t *testing.T) {
	submitted := 0
	api := &fakeDetailAPI{
		submitRatingFn: func(rating models.SubmitRating) error {
			submitted = rating.Score
			return nil
		},
		contentRatingFn: func(int, models.ContentType) (*models.RatingAggregate, error) {
			if submitted == 0 {
				return &models.RatingAggregate{}, nil
			}
			return &models.RatingAggregate{AverageRating: 9.0, RatingCount: 1}, nil
		},
	}
	vm := loadedDetail(t, api, loggedIn("alice"))

	assert.NoError(t, vm.SubmitRating(context.Background(), 9))
	assert.Equal(t, 9, vm.UserScore())
	assert.Equal(t, 9.0, vm.Rating().AverageRating)
	assert.Equal(t, 1, vm.Rating().RatingCount)
}

func TestDetailViewModel_ToggleFavorite_RollsBackOnFailure(t *testing.T) {
	api := &fakeDetailAPI{
		addFavoriteFn: func(int, models.ContentType) error {
			return connectivityFault()
		},
	}
	vm := loadedDetail(t, api, loggedIn("alice"))
	assert.False(t, vm.IsFavorite())

	err := vm.ToggleFavorite(context.Background())
	assert.True(t, services.HasKind(err, services.FaultConnectivity))
	assert.False(t, vm.IsFavorite(), "failed add must restore the previous flag")
}

func TestDetailViewModel_ToggleFavorite_RollsBackOnAuthFailure(t *testing.T) {
	api := &fakeDetailAPI{
		checkFavoriteFn: func(int, models.ContentType) (bool, error) { return true, nil },
		removeFavoriteFn: func(int, models.ContentType) error {
			return &services.Fault{Kind: services.FaultAuth, StatusCode: 401, Message: "token expired"}
		},
	}
	vm := loadedDetail(t, api, loggedIn("alice"))
	assert.True(t, vm.IsFavorite())

	err := vm.ToggleFavorite(context.Background())
	assert.True(t, services.HasKind(err, services.FaultAuth))
	assert.True(t, vm.IsFavorite(), "authorization failures roll back like any other")
}

func TestDetailViewModel_ToggleFavorite_IssuesMatchingRequest(t *testing.T) {
	var added, removed int
	api := &fakeDetailAPI{
		addFavoriteFn:    func(int, models.ContentType) error { added++; return nil },
		removeFavoriteFn: func(int, models.ContentType) error { removed++; return nil },
	}
	vm := loadedDetail(t, api, loggedIn("alice"))

	assert.NoError(t, vm.ToggleFavorite(context.Background()))
	assert.True(t, vm.IsFavorite())
	assert.NoError(t, vm.ToggleFavorite(context.Background()))
	assert.False(t, vm.IsFavorite())
	assert.Equal(t, 1, added)
	assert.Equal(t, 1, removed)
}

func TestDetailViewModel_SubmitReview_PrependsCreated(t *testing.T) {
	api := &fakeDetailAPI{
		listReviewsFn: func(int, models.ContentType) ([]models.Review, error) {
			return []models.Review{{ID: 1, Content: "old", Username: "bob"}}, nil
		},
		createReviewFn: func(review models.NewReview) (*models.Review, error) {
			// The backend omits the username in the created record
			return &models.Review{ID: 2, ContentID: review.ContentID, ContentType: review.ContentType, Content: review.Content, CreatedAt: time.Now()}, nil
		},
	}
	vm := loadedDetail(t, api, loggedIn("alice"))

	assert.NoError(t, vm.SubmitReview(context.Background(), "  loved it  "))
	reviews := vm.Reviews()
	assert.Len(t, reviews, 2)
	assert.Equal(t, "loved it", reviews[0].Content)
	assert.Equal(t, "alice", reviews[0].Username, "missing author must be filled from the session")
	assert.Equal(t, "old", reviews[1].Content)
}

func TestDetailViewModel_SubmitReview_RejectsEmptyText(t *testing.T) {
	vm := loadedDetail(t, &fakeDetailAPI{}, loggedIn("alice"))

	err := vm.SubmitReview(context.Background(), "   ")
	assert.True(t, services.HasKind(err, services.FaultValidation))
	assert.Empty(t, vm.Reviews())
}

func reviewFixture() []models.Review {
	return []models.Review{
		{ID: 1, Content: "first", Username: "alice"},
		{ID: 2, Content: "second", Username: "alice"},
		{ID: 3, Content: "third", Username: "bob"},
	}
}

func TestDetailViewModel_DeleteReview_RemovesOptimistically(t *testing.T) {
	api := &fakeDetailAPI{
		listReviewsFn: func(int, models.ContentType) ([]models.Review, error) {
			return reviewFixture(), nil
		},
	}
	vm := loadedDetail(t, api, loggedIn("alice"))

	assert.NoError(t, vm.DeleteReview(context.Background(), 2))
	reviews := vm.Reviews()
	assert.Len(t, reviews, 2)
	assert.Equal(t, 1, reviews[0].ID)
	assert.Equal(t, 3, reviews[1].ID)
}

func TestDetailViewModel_DeleteReview_RestoresListOnFailure(t *testing.T) {
	api := &fakeDetailAPI{
		listReviewsFn: func(int, models.ContentType) ([]models.Review, error) {
			return reviewFixture(), nil
		},
		deleteReviewFn: func(int) error {
			return connectivityFault()
		},
	}
	vm := loadedDetail(t, api, loggedIn("alice"))

	err := vm.DeleteReview(context.Background(), 2)
	assert.True(t, services.HasKind(err, services.FaultConnectivity))
	assert.Equal(t, reviewFixture(), vm.Reviews(), "failed delete must restore the exact previous list")
}

func TestDetailViewModel_DeleteReview_AlreadyGoneIsSuccess(t *testing.T) {
	api := &fakeDetailAPI{
		listReviewsFn: func(int, models.ContentType) ([]models.Review, error) {
			return reviewFixture(), nil
		},
		deleteReviewFn: func(int) error {
			return &services.Fault{Kind: services.FaultNotFound, StatusCode: 404}
		},
	}
	vm := loadedDetail(t, api, loggedIn("alice"))

	// The backend no longer has the review; the local removal stands
	assert.NoError(t, vm.DeleteReview(context.Background(), 2))
	assert.Len(t, vm.Reviews(), 2)
}

func TestDetailViewModel_DeleteReview_ForbiddenForOtherUsers(t *testing.T) {
	called := false
	api := &fakeDetailAPI{
		listReviewsFn: func(int, models.ContentType) ([]models.Review, error) {
			return reviewFixture(), nil
		},
		deleteReviewFn: func(int) error {
			called = true
			return nil
		},
	}
	vm := loadedDetail(t, api, loggedIn("alice"))

	// Review 3 belongs to bob; alice is not an admin
	err := vm.DeleteReview(context.Background(), 3)
	assert.True(t, services.HasKind(err, services.FaultAuth))
	assert.False(t, called)
	assert.Len(t, vm.Reviews(), 3)
}

func TestDetailViewModel_DeleteReview_AdminMayDeleteAny(t *testing.T) {
	api := &fakeDetailAPI{
		listReviewsFn: func(int, models.ContentType) ([]models.Review, error) {
			return reviewFixture(), nil
		},
	}
	admin := &fakeSession{user: &models.User{Username: "root", Role: models.RoleAdmin, Token: "tok"}}
	vm := loadedDetail(t, api, admin)

	assert.NoError(t, vm.DeleteReview(context.Background(), 3))
	assert.Len(t, vm.Reviews(), 2)
}
