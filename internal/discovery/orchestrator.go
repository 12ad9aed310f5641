// Package discovery owns the view state and decides which catalog queries
// to run for each user action.
package discovery

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/sourcegraph/conc/pool"

	"github.com/marco/watchNext/internal/catalog"
	"github.com/marco/watchNext/internal/logging"
	"github.com/marco/watchNext/internal/media"
	"github.com/marco/watchNext/internal/metrics"
	"github.com/marco/watchNext/internal/preferences"
)

// Catalog is the subset of the catalog client the orchestrator needs
type Catalog interface {
	FetchGenreList(ctx context.Context, mediaType catalog.MediaType) ([]catalog.Genre, error)
	FetchTrending(ctx context.Context, scope catalog.TrendingScope, window catalog.TimeWindow) (*catalog.Page, error)
	SearchMedia(ctx context.Context, query string, mediaType catalog.MediaType) (*catalog.Page, error)
	Discover(ctx context.Context, mediaType catalog.MediaType, filters catalog.DiscoverFilters) (*catalog.Page, error)
	FetchDetails(ctx context.Context, id int, mediaType catalog.MediaType) (*catalog.Details, error)
}

// Action names used in logs and metrics
const (
	actionInitialize = "initialize"
	actionSearch     = "search"
	actionSubmit     = "submit_preferences"
	actionSelect     = "select_item"
	actionClose      = "close_details"
)

// Orchestrator serializes state writes behind a mutex that is never held
// across a catalog call. Actions may run concurrently; each one takes a new
// generation and only the newest generation's completion is applied unless
// stale responses are allowed.
type Orchestrator struct {
	catalog    Catalog
	metrics    *metrics.Recorder
	allowStale bool
	onChange   func(ViewState)

	mu     sync.Mutex
	state  ViewState
	genres media.GenreMap
}

// Option configures an Orchestrator
type Option func(*Orchestrator)

// WithStaleResponses makes every completion apply in arrival order, so a
// slow older request can overwrite a newer one.
func WithStaleResponses(allow bool) Option {
	return func(o *Orchestrator) {
		o.allowStale = allow
	}
}

// WithMetrics records transitions and stale completions on r
func WithMetrics(r *metrics.Recorder) Option {
	return func(o *Orchestrator) {
		o.metrics = r
	}
}

// OnChange registers fn to receive a snapshot after every state write.
// fn runs on the goroutine that performed the write, without the lock held.
func OnChange(fn func(ViewState)) Option {
	return func(o *Orchestrator) {
		o.onChange = fn
	}
}

// New creates an orchestrator in the recommendations view with no items
func New(c Catalog, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		catalog: c,
		state:   initialState(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// State returns a snapshot of the current view state
func (o *Orchestrator) State() ViewState {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state.clone()
}

// Genres returns the genre map built by Initialize, or nil before that
func (o *Orchestrator) Genres() media.GenreMap {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.genres
}

// Initialize loads both genre lists concurrently, then this week's trending
// titles across movies and TV.
func (o *Orchestrator) Initialize(ctx context.Context) error {
	ctx, gen := o.begin(ctx, actionInitialize)

	genres, err := o.loadGenres(ctx)
	if err != nil {
		return o.fail(ctx, actionInitialize, gen, err, func(s *ViewState) {
			s.showList(ViewRecommendations, nil)
		})
	}

	page, err := o.catalog.FetchTrending(ctx, catalog.ScopeAll, catalog.Week)
	if err != nil {
		return o.fail(ctx, actionInitialize, gen, err, func(s *ViewState) {
			s.showList(ViewRecommendations, nil)
		})
	}

	items := media.ToItems(page.Results, "", genres)
	slog.InfoContext(ctx, "Loaded trending titles", "count", len(items), "genres", len(genres))

	return o.succeed(ctx, actionInitialize, gen, func(s *ViewState) {
		s.showList(ViewRecommendations, items)
	})
}

// LoadGenres builds the genre map without touching the view state. One-shot
// commands use it instead of Initialize when they do not need trending.
func (o *Orchestrator) LoadGenres(ctx context.Context) error {
	_, err := o.loadGenres(ctx)
	return err
}

// loadGenres fetches the movie and TV lists in parallel and installs the
// merged map; both lists must load.
func (o *Orchestrator) loadGenres(ctx context.Context) (media.GenreMap, error) {
	var movieGenres, tvGenres []catalog.Genre

	p := pool.New().WithErrors().WithContext(ctx)
	p.Go(func(ctx context.Context) error {
		genres, err := o.catalog.FetchGenreList(ctx, catalog.Movie)
		if err != nil {
			return fmt.Errorf("failed to load movie genres: %w", err)
		}
		movieGenres = genres
		return nil
	})
	p.Go(func(ctx context.Context) error {
		genres, err := o.catalog.FetchGenreList(ctx, catalog.TV)
		if err != nil {
			return fmt.Errorf("failed to load TV genres: %w", err)
		}
		tvGenres = genres
		return nil
	})
	if err := p.Wait(); err != nil {
		return nil, err
	}

	genres := media.BuildGenreMap(movieGenres, tvGenres)
	o.mu.Lock()
	o.genres = genres
	o.mu.Unlock()
	return genres, nil
}

// Search runs a free-text movie search. A blank query returns ErrBlankQuery
// without touching the state or the network.
func (o *Orchestrator) Search(ctx context.Context, query string) error {
	query = strings.TrimSpace(query)
	if query == "" {
		return ErrBlankQuery
	}

	ctx, gen := o.begin(ctx, actionSearch)

	page, err := o.catalog.SearchMedia(ctx, query, catalog.Movie)
	if err != nil {
		return o.fail(ctx, actionSearch, gen, err, func(s *ViewState) {
			s.showList(ViewSearch, nil)
		})
	}

	items := media.ToItems(page.Results, "", o.Genres())
	slog.DebugContext(ctx, "Search completed", "query", query, "count", len(items))

	return o.succeed(ctx, actionSearch, gen, func(s *ViewState) {
		s.showList(ViewSearch, items)
	})
}

// SubmitPreferences runs discover with a snapshot of prefs. Every outcome
// lands in the recommendations view; an empty result is reported as
// ErrNoResults.
func (o *Orchestrator) SubmitPreferences(ctx context.Context, prefs preferences.Preferences) error {
	prefs = prefs.Clone()
	ctx, gen := o.begin(ctx, actionSubmit)

	page, err := o.catalog.Discover(ctx, prefs.MediaType, prefs.Filters())
	if err != nil {
		return o.fail(ctx, actionSubmit, gen, err, func(s *ViewState) {
			s.showList(ViewRecommendations, nil)
		})
	}

	items := media.ToItems(page.Results, prefs.MediaType, o.Genres())
	if len(items) == 0 {
		return o.fail(ctx, actionSubmit, gen, ErrNoResults, func(s *ViewState) {
			s.showList(ViewRecommendations, nil)
		})
	}

	slog.DebugContext(ctx, "Discover completed", "preferences", prefs.String(), "count", len(items))

	return o.succeed(ctx, actionSubmit, gen, func(s *ViewState) {
		s.showList(ViewRecommendations, items)
	})
}

// SelectItem fetches the detail for item and opens the details view. On
// failure the current view is kept and only LastError changes.
func (o *Orchestrator) SelectItem(ctx context.Context, item media.Item) error {
	if !item.Type.Valid() {
		return fmt.Errorf("cannot select %s: unknown media type %q", item.Key(), item.Type)
	}

	ctx, gen := o.begin(ctx, actionSelect)

	raw, err := o.catalog.FetchDetails(ctx, item.ID, item.Type)
	if err != nil {
		return o.fail(ctx, actionSelect, gen, err, func(*ViewState) {})
	}

	detail := media.ToDetail(raw, item.Type, o.Genres())
	slog.DebugContext(ctx, "Loaded details", "item", item.Key(), "similar", len(detail.Similar))

	return o.succeed(ctx, actionSelect, gen, func(s *ViewState) {
		s.showDetail(&detail)
	})
}

// CloseDetails returns to the list view the detail was opened from. It is
// a no-op outside the details view.
func (o *Orchestrator) CloseDetails() {
	o.mu.Lock()
	if o.state.CurrentView != ViewDetails {
		o.mu.Unlock()
		return
	}
	back := o.state.PreviousView
	if !back.IsList() {
		back = ViewRecommendations
	}
	o.state.showList(back, o.state.Items)
	snapshot := o.state.clone()
	o.mu.Unlock()

	o.metrics.ObserveTransition(actionClose, metrics.OutcomeOK)
	o.notify(snapshot)
}

// begin starts a new generation and tags ctx with a correlation id
func (o *Orchestrator) begin(ctx context.Context, action string) (context.Context, uint64) {
	ctx = logging.WithCorrelationID(ctx, logging.NewCorrelationID())

	o.mu.Lock()
	o.state.Generation++
	gen := o.state.Generation
	o.state.IsLoading = true
	snapshot := o.state.clone()
	o.mu.Unlock()

	slog.DebugContext(ctx, "Action started", "action", action, "generation", gen)
	o.notify(snapshot)
	return ctx, gen
}

func (o *Orchestrator) succeed(ctx context.Context, action string, gen uint64, apply func(*ViewState)) error {
	applied := o.complete(ctx, action, gen, metrics.OutcomeOK, func(s *ViewState) {
		apply(s)
		s.LastError = ""
	})
	if !applied {
		return ErrSuperseded
	}
	return nil
}

func (o *Orchestrator) fail(ctx context.Context, action string, gen uint64, err error, apply func(*ViewState)) error {
	slog.WarnContext(ctx, "Action failed", "action", action, "generation", gen, "error", err)

	applied := o.complete(ctx, action, gen, outcome(err), func(s *ViewState) {
		apply(s)
		s.LastError = Describe(err)
	})
	if !applied {
		return ErrSuperseded
	}
	return err
}

// complete applies a finished action's result. A completion from an older
// generation is dropped unless stale responses are allowed, in which case
// it is applied and clears the loading flag like any other.
func (o *Orchestrator) complete(ctx context.Context, action string, gen uint64, result string, apply func(*ViewState)) bool {
	o.mu.Lock()
	latest := gen == o.state.Generation
	if !latest {
		o.metrics.ObserveStale(action, o.allowStale)
		if !o.allowStale {
			newest := o.state.Generation
			o.mu.Unlock()
			slog.DebugContext(ctx, "Discarding stale completion",
				"action", action, "generation", gen, "newest", newest)
			o.metrics.ObserveTransition(action, metrics.OutcomeStale)
			return false
		}
	}
	apply(&o.state)
	o.state.IsLoading = false
	snapshot := o.state.clone()
	o.mu.Unlock()

	o.metrics.ObserveTransition(action, result)
	o.notify(snapshot)
	return true
}

func (o *Orchestrator) notify(snapshot ViewState) {
	if o.onChange != nil {
		o.onChange(snapshot)
	}
}
