package viewmodel

import (
	"context"
	"log"
	"strings"
	"sync"

	"moviehub/models"
	"moviehub/services"
)

// DetailAPI is the slice of the API client the detail view-model needs
type DetailAPI interface {
	GetContent(ctx context.Context, t models.ContentType, id int) (*models.ContentItem, error)
	ListReviews(ctx context.Context, contentID int, t models.ContentType) ([]models.Review, error)
	CreateReview(ctx context.Context, review models.NewReview) (*models.Review, error)
	DeleteReview(ctx context.Context, reviewID int) error
	ContentRating(ctx context.Context, contentID int, t models.ContentType) (*models.RatingAggregate, error)
	UserRating(ctx context.Context, contentID int, t models.ContentType) (*models.UserRating, error)
	SubmitRating(ctx context.Context, rating models.SubmitRating) error
	CheckFavorite(ctx context.Context, contentID int, t models.ContentType) (bool, error)
	AddFavorite(ctx context.Context, contentID int, t models.ContentType) error
	RemoveFavorite(ctx context.Context, contentID int, t models.ContentType) error
}

// FacetErrors records which optional facets of a detail load failed. The base
// item is not represented here: its failure aborts the load outright.
type FacetErrors struct {
	Reviews    error
	Rating     error
	UserRating error
	Favorite   error
}

// Any reports whether at least one facet failed
func (f FacetErrors) Any() bool {
	return f.Reviews != nil || f.Rating != nil || f.UserRating != nil || f.Favorite != nil
}

// DetailViewModel owns everything scoped to one content item's detail view:
// the item itself, its rating aggregate, the current user's own rating and
// favorite status, and the review list.
type DetailViewModel struct {
	notifier
	api     DetailAPI
	session Session

	mu          sync.Mutex
	contentID   int
	contentType models.ContentType
	item        *models.ContentItem
	rating      models.RatingAggregate
	userScore   int // 0 when unrated
	isFavorite  bool
	reviews     []models.Review
	facets      FacetErrors
}

// NewDetailViewModel creates a detail view-model
func NewDetailViewModel(api DetailAPI, session Session) *DetailViewModel {
	return &DetailViewModel{api: api, session: session}
}

// Load fetches the item and all its facets. Only the canonical item fetch
// can fail the load as a whole; reviews, rating aggregate, the user's own
// rating and favorite status each commit or fail independently, with
// failures recorded in FacetErrors. The user-scoped facets are only queried
// when a session is active.
func (vm *DetailViewModel) Load(ctx context.Context, contentID int, t models.ContentType) error {
	item, err := vm.api.GetContent(ctx, t, contentID)
	if err != nil {
		return err
	}

	vm.mu.Lock()
	vm.contentID = contentID
	vm.contentType = t
	vm.item = item
	vm.rating = models.RatingAggregate{}
	vm.userScore = 0
	vm.isFavorite = false
	vm.reviews = nil
	vm.facets = FacetErrors{}
	vm.mu.Unlock()
	vm.notify()

	if reviews, err := vm.api.ListReviews(ctx, contentID, t); err != nil {
		vm.setFacet(func(f *FacetErrors) { f.Reviews = err })
	} else {
		vm.mu.Lock()
		vm.reviews = reviews
		vm.mu.Unlock()
		vm.notify()
	}

	if agg, err := vm.api.ContentRating(ctx, contentID, t); err != nil {
		vm.setFacet(func(f *FacetErrors) { f.Rating = err })
	} else {
		vm.mu.Lock()
		vm.rating = *agg
		vm.mu.Unlock()
		vm.notify()
	}

	if vm.session.Active() {
		if userRating, err := vm.api.UserRating(ctx, contentID, t); err != nil {
			// Not having rated yet comes back as not-found; that is normal
			if !services.HasKind(err, services.FaultNotFound) {
				vm.setFacet(func(f *FacetErrors) { f.UserRating = err })
			}
		} else {
			vm.mu.Lock()
			vm.userScore = userRating.Score
			vm.mu.Unlock()
			vm.notify()
		}

		if isFavorite, err := vm.api.CheckFavorite(ctx, contentID, t); err != nil {
			vm.setFacet(func(f *FacetErrors) { f.Favorite = err })
		} else {
			vm.mu.Lock()
			vm.isFavorite = isFavorite
			vm.mu.Unlock()
			vm.notify()
		}
	}

	return nil
}

// SubmitRating upserts the current user's score. The score is applied
// locally first and rolled back if the submission fails; on success the
// aggregate is re-fetched, since only the backend computes it.
func (vm *DetailViewModel) SubmitRating(ctx context.Context, score int) error {
	if !vm.session.Active() {
		return services.LoginRequired()
	}
	if score < models.RatingMin || score > models.RatingMax {
		return &services.Fault{Kind: services.FaultValidation, Message: "score must be between 1 and 10"}
	}

	vm.mu.Lock()
	prev := vm.userScore
	contentID, t := vm.contentID, vm.contentType
	vm.mu.Unlock()

	err := applyOptimistic(
		func() { vm.setUserScore(score) },
		func() error {
			return vm.api.SubmitRating(ctx, models.SubmitRating{
				ContentID:   contentID,
				ContentType: t,
				Score:       score,
			})
		},
		func() { vm.setUserScore(prev) },
	)
	if err != nil {
		return err
	}

	agg, err := vm.api.ContentRating(ctx, contentID, t)
	if err != nil {
		// The score is committed; only the aggregate refresh failed
		vm.setFacet(func(f *FacetErrors) { f.Rating = err })
		return err
	}
	vm.mu.Lock()
	vm.rating = *agg
	vm.facets.Rating = nil
	vm.mu.Unlock()
	vm.notify()
	return nil
}

// ToggleFavorite flips the favorite flag optimistically, then issues the add
// or remove matching the previous value. Any failure, authorization included,
// reverts the flag to keep it consistent with the backend.
func (vm *DetailViewModel) ToggleFavorite(ctx context.Context) error {
	if !vm.session.Active() {
		return services.LoginRequired()
	}

	vm.mu.Lock()
	prev := vm.isFavorite
	contentID, t := vm.contentID, vm.contentType
	vm.mu.Unlock()

	return applyOptimistic(
		func() { vm.setFavorite(!prev) },
		func() error {
			if prev {
				return vm.api.RemoveFavorite(ctx, contentID, t)
			}
			return vm.api.AddFavorite(ctx, contentID, t)
		},
		func() { vm.setFavorite(prev) },
	)
}

// SubmitReview posts a new review and prepends the server-assigned record to
// the local list. Nothing changes locally if the submission fails.
func (vm *DetailViewModel) SubmitReview(ctx context.Context, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return &services.Fault{Kind: services.FaultValidation, Message: "review text is empty"}
	}
	user := vm.session.Current()
	if user == nil {
		return services.LoginRequired()
	}

	vm.mu.Lock()
	contentID, t := vm.contentID, vm.contentType
	vm.mu.Unlock()

	created, err := vm.api.CreateReview(ctx, models.NewReview{
		ContentID:   contentID,
		ContentType: t,
		Content:     text,
		Username:    user.Username,
	})
	if err != nil {
		return err
	}

	review := *created
	if review.Username == "" {
		review.Username = user.Username
	}

	vm.mu.Lock()
	vm.reviews = append([]models.Review{review}, vm.reviews...)
	vm.mu.Unlock()
	vm.notify()
	return nil
}

// DeleteReview removes a review optimistically and issues the delete. A
// not-found response means the review was already gone and the removal
// stands; any other failure restores the full previous list.
func (vm *DetailViewModel) DeleteReview(ctx context.Context, reviewID int) error {
	user := vm.session.Current()
	if user == nil {
		return services.LoginRequired()
	}

	vm.mu.Lock()
	snapshot := make([]models.Review, len(vm.reviews))
	copy(snapshot, vm.reviews)
	var target *models.Review
	for i := range vm.reviews {
		if vm.reviews[i].ID == reviewID {
			target = &vm.reviews[i]
			break
		}
	}
	vm.mu.Unlock()

	if target == nil {
		return &services.Fault{Kind: services.FaultNotFound, Message: "review is not in the current list"}
	}
	// The backend enforces this too; checking here avoids a doomed request
	if !user.IsAdmin() && user.Username != target.Username {
		return &services.Fault{Kind: services.FaultAuth, Message: "only the author or an admin can delete a review"}
	}

	return applyOptimistic(
		func() {
			vm.mu.Lock()
			kept := vm.reviews[:0:0]
			for _, r := range vm.reviews {
				if r.ID != reviewID {
					kept = append(kept, r)
				}
			}
			vm.reviews = kept
			vm.mu.Unlock()
			vm.notify()
		},
		func() error {
			err := vm.api.DeleteReview(ctx, reviewID)
			if services.HasKind(err, services.FaultNotFound) {
				log.Printf("Review %d already deleted on the backend", reviewID)
				return nil
			}
			return err
		},
		func() {
			vm.mu.Lock()
			vm.reviews = snapshot
			vm.mu.Unlock()
			vm.notify()
		},
	)
}

// Item returns the loaded content item, or nil before a successful load
func (vm *DetailViewModel) Item() *models.ContentItem {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	if vm.item == nil {
		return nil
	}
	item := *vm.item
	return &item
}

// Rating returns the backend-computed aggregate
func (vm *DetailViewModel) Rating() models.RatingAggregate {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.rating
}

// UserScore returns the current user's score, 0 when unrated
func (vm *DetailViewModel) UserScore() int {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.userScore
}

// IsFavorite reports the locally held favorite flag
func (vm *DetailViewModel) IsFavorite() bool {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.isFavorite
}

// Reviews returns a copy of the review list, newest first
func (vm *DetailViewModel) Reviews() []models.Review {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	out := make([]models.Review, len(vm.reviews))
	copy(out, vm.reviews)
	return out
}

// Facets returns the per-facet failures of the last load
func (vm *DetailViewModel) Facets() FacetErrors {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.facets
}

func (vm *DetailViewModel) setUserScore(score int) {
	vm.mu.Lock()
	vm.userScore = score
	vm.mu.Unlock()
	vm.notify()
}

func (vm *DetailViewModel) setFavorite(isFavorite bool) {
	vm.mu.Lock()
	vm.isFavorite = isFavorite
	vm.mu.Unlock()
	vm.notify()
}

func (vm *DetailViewModel) setFacet(assign func(*FacetErrors)) {
	vm.mu.Lock()
	assign(&vm.facets)
	vm.mu.Unlock()
	vm.notify()
}
