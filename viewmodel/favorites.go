package viewmodel

import (
	"context"
	"log"
	"sync"

	"moviehub/models"
	"moviehub/services"
)

// FavoritesAPI is the slice of the API client the favorites view-model needs
type FavoritesAPI interface {
	ListFavorites(ctx context.Context) ([]models.FavoriteRef, error)
	GetContent(ctx context.Context, t models.ContentType, id int) (*models.ContentItem, error)
	RemoveFavorite(ctx context.Context, contentID int, t models.ContentType) error
}

// FavoritesViewModel owns the current user's favorites page: the favorite
// references resolved into full content items, split by variant.
type FavoritesViewModel struct {
	notifier
	api     FavoritesAPI
	session Session

	mu     sync.Mutex
	movies []models.ContentItem
	series []models.ContentItem
}

// NewFavoritesViewModel creates a favorites view-model
func NewFavoritesViewModel(api FavoritesAPI, session Session) *FavoritesViewModel {
	return &FavoritesViewModel{api: api, session: session}
}

// Load fetches the favorite references and resolves each into its content
// item. References that fail to resolve are skipped rather than failing the
// whole page; only the reference list fetch itself can fail the load.
func (vm *FavoritesViewModel) Load(ctx context.Context) error {
	if !vm.session.Active() {
		return services.LoginRequired()
	}

	refs, err := vm.api.ListFavorites(ctx)
	if err != nil {
		return err
	}

	var movies, series []models.ContentItem
	for _, ref := range refs {
		item, err := vm.api.GetContent(ctx, ref.ContentType, ref.ContentID)
		if err != nil {
			log.Printf("Skipping favorite %s %d: %v", ref.ContentType, ref.ContentID, err)
			continue
		}
		switch ref.ContentType {
		case models.ContentTypeMovie:
			movies = append(movies, *item)
		case models.ContentTypeSeries:
			series = append(series, *item)
		}
	}

	vm.mu.Lock()
	vm.movies = movies
	vm.series = series
	vm.mu.Unlock()
	vm.notify()
	return nil
}

// Remove drops an item from the favorites and reloads the page on success
func (vm *FavoritesViewModel) Remove(ctx context.Context, contentID int, t models.ContentType) error {
	if !vm.session.Active() {
		return services.LoginRequired()
	}
	if err := vm.api.RemoveFavorite(ctx, contentID, t); err != nil {
		return err
	}
	return vm.Load(ctx)
}

// Movies returns a copy of the favorited movies
func (vm *FavoritesViewModel) Movies() []models.ContentItem {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	out := make([]models.ContentItem, len(vm.movies))
	copy(out, vm.movies)
	return out
}

// Series returns a copy of the favorited series
func (vm *FavoritesViewModel) Series() []models.ContentItem {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	out := make([]models.ContentItem, len(vm.series))
	copy(out, vm.series)
	return out
}
