package viewmodel

import (
	"context"
	"sort"
	"strings"
	"sync"

	"moviehub/models"
)

// CatalogAPI is the slice of the API client the content view-model needs
type CatalogAPI interface {
	ListContent(ctx context.Context, t models.ContentType) ([]models.ContentItem, error)
	SearchContent(ctx context.Context, t models.ContentType, title string) ([]models.ContentItem, error)
}

// SortKey selects the field the view is ordered by
type SortKey string

// Supported sort keys
const (
	SortByTitle       SortKey = "title"
	SortByReleaseDate SortKey = "releaseDate"
	SortByRating      SortKey = "rating"
)

// SortDirection selects ascending or descending order
type SortDirection string

// Sort directions
const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// ContentViewModel owns the fetched list for one catalog variant at a time
// plus the derived view after filter, search and sort. A failed load or
// search leaves the previously committed items untouched.
type ContentViewModel struct {
	notifier
	api CatalogAPI

	mu          sync.Mutex
	items       []models.ContentItem
	activeType  models.ContentType
	searchTerm  string
	sortKey     SortKey
	sortDir     SortDirection
	genreFilter string
	yearFilter  int // 0 means unset

	// loadSeq guards against stale loads: only the most recently initiated
	// load or search may commit its result.
	loadSeq uint64
}

// NewContentViewModel creates a content view-model on the movies tab with
// title-ascending order and no filters.
func NewContentViewModel(api CatalogAPI) *ContentViewModel {
	return &ContentViewModel{
		api:        api,
		activeType: models.ContentTypeMovie,
		sortKey:    SortByTitle,
		sortDir:    SortAsc,
	}
}

// Load fetches the full list for the given variant and replaces the items
// wholesale on success. A Load initiated later supersedes this one: if the
// response arrives after a newer Load or Search has started, it is discarded.
func (vm *ContentViewModel) Load(ctx context.Context, t models.ContentType) error {
	vm.mu.Lock()
	vm.loadSeq++
	seq := vm.loadSeq
	vm.activeType = t
	vm.searchTerm = ""
	vm.mu.Unlock()

	items, err := vm.api.ListContent(ctx, t)
	return vm.commit(seq, items, err)
}

// Search fetches matching items for the active variant. An empty (or
// all-whitespace) term resets to the full list instead of calling the
// search endpoint.
func (vm *ContentViewModel) Search(ctx context.Context, term string) error {
	term = strings.TrimSpace(term)

	vm.mu.Lock()
	t := vm.activeType
	if term == "" {
		vm.mu.Unlock()
		return vm.Load(ctx, t)
	}
	vm.loadSeq++
	seq := vm.loadSeq
	vm.searchTerm = term
	vm.mu.Unlock()

	items, err := vm.api.SearchContent(ctx, t, term)
	return vm.commit(seq, items, err)
}

// commit applies the result of a load or search, unless a newer one has been
// initiated since.
func (vm *ContentViewModel) commit(seq uint64, items []models.ContentItem, err error) error {
	vm.mu.Lock()
	if seq != vm.loadSeq {
		vm.mu.Unlock()
		return nil // superseded; discard the stale result
	}
	if err != nil {
		vm.mu.Unlock()
		return err
	}
	vm.items = items
	vm.mu.Unlock()

	vm.notify()
	return nil
}

// SetFilter sets the genre and year filters. An empty genre or zero year
// disables that filter. Purely local; the view is derived on the next read.
func (vm *ContentViewModel) SetFilter(genre string, year int) {
	vm.mu.Lock()
	vm.genreFilter = strings.TrimSpace(genre)
	vm.yearFilter = year
	vm.mu.Unlock()
	vm.notify()
}

// SetSort sets the sort key and direction. Purely local.
func (vm *ContentViewModel) SetSort(key SortKey, dir SortDirection) {
	vm.mu.Lock()
	vm.sortKey = key
	vm.sortDir = dir
	vm.mu.Unlock()
	vm.notify()
}

// ActiveType returns the variant currently shown
func (vm *ContentViewModel) ActiveType() models.ContentType {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.activeType
}

// SearchTerm returns the term of the last committed search, or ""
func (vm *ContentViewModel) SearchTerm() string {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.searchTerm
}

// Items returns a copy of the raw fetched list, unfiltered and unsorted
func (vm *ContentViewModel) Items() []models.ContentItem {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	out := make([]models.ContentItem, len(vm.items))
	copy(out, vm.items)
	return out
}

// View derives the visible sequence: items filtered by genre and year, then
// sorted. It is a pure function of the current state, recomputed on every
// call rather than cached.
func (vm *ContentViewModel) View() []models.ContentItem {
	vm.mu.Lock()
	defer vm.mu.Unlock()

	filtered := make([]models.ContentItem, 0, len(vm.items))
	genre := strings.ToLower(vm.genreFilter)
	for _, item := range vm.items {
		if genre != "" && !strings.Contains(strings.ToLower(item.Genre), genre) {
			continue
		}
		if vm.yearFilter != 0 && item.ReleaseYear() != vm.yearFilter {
			continue
		}
		filtered = append(filtered, item)
	}

	key, dir := vm.sortKey, vm.sortDir
	sort.SliceStable(filtered, func(i, j int) bool {
		return lessContent(&filtered[i], &filtered[j], key, dir)
	})
	return filtered
}

// Genres returns the distinct genre tags across the loaded items, sorted
func (vm *ContentViewModel) Genres() []string {
	vm.mu.Lock()
	defer vm.mu.Unlock()

	seen := make(map[string]bool)
	var genres []string
	for _, item := range vm.items {
		for _, tag := range item.GenreTags() {
			if !seen[tag] {
				seen[tag] = true
				genres = append(genres, tag)
			}
		}
	}
	sort.Strings(genres)
	return genres
}

// Years returns the distinct release years across the loaded items, sorted
func (vm *ContentViewModel) Years() []int {
	vm.mu.Lock()
	defer vm.mu.Unlock()

	seen := make(map[int]bool)
	var years []int
	for _, item := range vm.items {
		if year := item.ReleaseYear(); year != 0 && !seen[year] {
			seen[year] = true
			years = append(years, year)
		}
	}
	sort.Ints(years)
	return years
}

// lessContent orders two items under the given sort key and direction.
// Items missing the sort-key value go last regardless of direction.
func lessContent(a, b *models.ContentItem, key SortKey, dir SortDirection) bool {
	switch key {
	case SortByReleaseDate:
		ta, aok := a.ReleaseTime()
		tb, bok := b.ReleaseTime()
		if !aok || !bok {
			return aok && !bok
		}
		if dir == SortDesc {
			return tb.Before(ta)
		}
		return ta.Before(tb)

	case SortByRating:
		va, aok := a.RatingValue()
		vb, bok := b.RatingValue()
		if !aok || !bok {
			return aok && !bok
		}
		if dir == SortDesc {
			return va > vb
		}
		return va < vb

	default: // SortByTitle
		ta, tb := strings.ToLower(a.Title), strings.ToLower(b.Title)
		if dir == SortDesc {
			return ta > tb
		}
		return ta < tb
	}
}
