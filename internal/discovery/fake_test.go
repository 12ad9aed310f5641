package discovery

import (
	"context"
	"sync"

	"github.com/marco/watchNext/internal/catalog"
)

// fakeCatalog answers from canned data. Function fields override the
// defaults for a single test.
type fakeCatalog struct {
	mu    sync.Mutex
	calls map[string]int

	movieGenres []catalog.Genre
	tvGenres    []catalog.Genre
	trending    *catalog.Page
	details     map[int]*catalog.Details

	genresErr  error
	searchFn   func(ctx context.Context, query string) (*catalog.Page, error)
	discoverFn func(ctx context.Context, mt catalog.MediaType, f catalog.DiscoverFilters) (*catalog.Page, error)
	detailsErr error
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{calls: map[string]int{}, details: map[int]*catalog.Details{}}
}

func (f *fakeCatalog) record(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[name]++
}

func (f *fakeCatalog) count(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

func (f *fakeCatalog) FetchGenreList(ctx context.Context, mt catalog.MediaType) ([]catalog.Genre, error) {
	f.record("genres:" + string(mt))
	if f.genresErr != nil {
		return nil, f.genresErr
	}
	if mt == catalog.TV {
		return f.tvGenres, nil
	}
	return f.movieGenres, nil
}

func (f *fakeCatalog) FetchTrending(ctx context.Context, scope catalog.TrendingScope, window catalog.TimeWindow) (*catalog.Page, error) {
	f.record("trending")
	if f.trending == nil {
		return &catalog.Page{Page: 1}, nil
	}
	return f.trending, nil
}

func (f *fakeCatalog) SearchMedia(ctx context.Context, query string, mt catalog.MediaType) (*catalog.Page, error) {
	f.record("search")
	if f.searchFn != nil {
		return f.searchFn(ctx, query)
	}
	return &catalog.Page{Page: 1}, nil
}

func (f *fakeCatalog) Discover(ctx context.Context, mt catalog.MediaType, filters catalog.DiscoverFilters) (*catalog.Page, error) {
	f.record("discover")
	if f.discoverFn != nil {
		return f.discoverFn(ctx, mt, filters)
	}
	return &catalog.Page{Page: 1}, nil
}

func (f *fakeCatalog) FetchDetails(ctx context.Context, id int, mt catalog.MediaType) (*catalog.Details, error) {
	f.record("details")
	if f.detailsErr != nil {
		return nil, f.detailsErr
	}
	if d, ok := f.details[id]; ok {
		return d, nil
	}
	return nil, &catalog.UpstreamError{Status: 404, Body: "not found"}
}

func ptr[T any](v T) *T { return &v }
