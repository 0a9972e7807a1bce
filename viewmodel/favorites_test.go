package viewmodel

import (
	"context"
	"testing"

	"moviehub/models"
	"moviehub/services"

	"github.com/stretchr/testify/assert"
)

type fakeFavoritesAPI struct {
	refs    []models.FavoriteRef
	items   map[int]*models.ContentItem
	removed []int
}

func (f *fakeFavoritesAPI) ListFavorites(_ context.Context) ([]models.FavoriteRef, error) {
	return f.refs, nil
}

func (f *fakeFavoritesAPI) GetContent(_ context.Context, t models.ContentType, id int) (*models.ContentItem, error) {
	item, ok := f.items[id]
	if !ok {
		return nil, &services.Fault{Kind: services.FaultNotFound, StatusCode: 404}
	}
	return item, nil
}

func (f *fakeFavoritesAPI) RemoveFavorite(_ context.Context, contentID int, _ models.ContentType) error {
	f.removed = append(f.removed, contentID)
	kept := f.refs[:0:0]
	for _, ref := range f.refs {
		if ref.ContentID != contentID {
			kept = append(kept, ref)
		}
	}
	f.refs = kept
	return nil
}

func TestFavoritesViewModel_Load_RequiresSession(t *testing.T) {
	vm := NewFavoritesViewModel(&fakeFavoritesAPI{}, &fakeSession{})

	err := vm.Load(context.Background())
	assert.True(t, services.HasKind(err, services.FaultAuth))
}

func TestFavoritesViewModel_Load_PartitionsByVariant(t *testing.T) {
	api := &fakeFavoritesAPI{
		refs: []models.FavoriteRef{
			{ContentID: 1, ContentType: models.ContentTypeMovie},
			{ContentID: 2, ContentType: models.ContentTypeSeries},
			{ContentID: 3, ContentType: models.ContentTypeMovie},
		},
		items: map[int]*models.ContentItem{
			1: {ID: 1, Type: models.ContentTypeMovie, Title: "Heat"},
			2: {ID: 2, Type: models.ContentTypeSeries, Title: "The Wire"},
			3: {ID: 3, Type: models.ContentTypeMovie, Title: "Alien"},
		},
	}
	vm := NewFavoritesViewModel(api, loggedIn("alice"))

	assert.NoError(t, vm.Load(context.Background()))
	assert.Len(t, vm.Movies(), 2)
	assert.Len(t, vm.Series(), 1)
	assert.Equal(t, "The Wire", vm.Series()[0].Title)
}

func TestFavoritesViewModel_Load_SkipsUnresolvableRefs(t *testing.T) {
	api := &fakeFavoritesAPI{
		refs: []models.FavoriteRef{
			{ContentID: 1, ContentType: models.ContentTypeMovie},
			{ContentID: 99, ContentType: models.ContentTypeMovie}, // deleted meanwhile
		},
		items: map[int]*models.ContentItem{
			1: {ID: 1, Type: models.ContentTypeMovie, Title: "Heat"},
		},
	}
	vm := NewFavoritesViewModel(api, loggedIn("alice"))

	assert.NoError(t, vm.Load(context.Background()))
	assert.Len(t, vm.Movies(), 1)
}

func TestFavoritesViewModel_Remove_ReloadsAfterSuccess(t *testing.T) {
	api := &fakeFavoritesAPI{
		refs: []models.FavoriteRef{
			{ContentID: 1, ContentType: models.ContentTypeMovie},
			{ContentID: 3, ContentType: models.ContentTypeMovie},
		},
		items: map[int]*models.ContentItem{
			1: {ID: 1, Type: models.ContentTypeMovie, Title: "Heat"},
			3: {ID: 3, Type: models.ContentTypeMovie, Title: "Alien"},
		},
	}
	vm := NewFavoritesViewModel(api, loggedIn("alice"))
	assert.NoError(t, vm.Load(context.Background()))

	assert.NoError(t, vm.Remove(context.Background(), 1, models.ContentTypeMovie))
	assert.Equal(t, []int{1}, api.removed)
	movies := vm.Movies()
	assert.Len(t, movies, 1)
	assert.Equal(t, "Alien", movies[0].Title)
}
