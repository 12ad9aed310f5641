package main

import (
	"bytes"
	"context"
	"sync"

	"github.com/marco/watchNext/internal/catalog"
)

type fakeCatalog struct {
	mu            sync.Mutex
	discoverCalls int
	lastType      catalog.MediaType
	lastFilters   catalog.DiscoverFilters

	search   []catalog.Item
	discover []catalog.Item
	details  map[int]*catalog.Details
}

func (f *fakeCatalog) FetchGenreList(ctx context.Context, mt catalog.MediaType) ([]catalog.Genre, error) {
	if mt == catalog.TV {
		return []catalog.Genre{{ID: 18, Name: "Drama"}}, nil
	}
	return []catalog.Genre{{ID: 28, Name: "Action"}, {ID: 878, Name: "Science Fiction"}}, nil
}

func (f *fakeCatalog) FetchTrending(ctx context.Context, scope catalog.TrendingScope, window catalog.TimeWindow) (*catalog.Page, error) {
	return &catalog.Page{Page: 1, Results: f.search}, nil
}

func (f *fakeCatalog) SearchMedia(ctx context.Context, query string, mt catalog.MediaType) (*catalog.Page, error) {
	return &catalog.Page{Page: 1, Results: f.search}, nil
}

func (f *fakeCatalog) Discover(ctx context.Context, mt catalog.MediaType, filters catalog.DiscoverFilters) (*catalog.Page, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.discoverCalls++
	f.lastType = mt
	f.lastFilters = filters
	return &catalog.Page{Page: 1, Results: f.discover}, nil
}

func (f *fakeCatalog) FetchDetails(ctx context.Context, id int, mt catalog.MediaType) (*catalog.Details, error) {
	if d, ok := f.details[id]; ok {
		return d, nil
	}
	return nil, &catalog.UpstreamError{Status: 404, Body: "not found"}
}

func (f *fakeCatalog) discoverState() (int, catalog.MediaType, catalog.DiscoverFilters) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.discoverCalls, f.lastType, f.lastFilters
}

// syncBuffer is written from watcher callbacks and read by the test
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func ptr[T any](v T) *T { return &v }
