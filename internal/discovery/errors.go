package discovery

import (
	"context"
	"errors"
	"fmt"

	"github.com/marco/watchNext/internal/catalog"
	"github.com/marco/watchNext/internal/metrics"
)

var (
	// ErrBlankQuery is returned by Search for an empty or whitespace query.
	// No request is made and the state is left alone.
	ErrBlankQuery = errors.New("search query is empty")

	// ErrNoResults is returned when discover matched nothing
	ErrNoResults = errors.New("no results found")

	// ErrSuperseded is returned when a newer action started while this one
	// was in flight and its result was dropped.
	ErrSuperseded = errors.New("result discarded: superseded by a newer action")
)

// Describe turns any action error into the single line shown to the user
func Describe(err error) string {
	if err == nil {
		return ""
	}

	var (
		upstream  *catalog.UpstreamError
		empty     *catalog.EmptyResponseError
		transport *catalog.TransportError
	)

	switch {
	case errors.Is(err, ErrNoResults):
		return "No results found. Try broadening your criteria."
	case errors.Is(err, ErrBlankQuery):
		return err.Error()
	case errors.Is(err, catalog.ErrMissingAPIKey):
		return "TMDB API key is not configured. Set TMDB_API_KEY or tmdb.api_key."
	case errors.Is(err, context.Canceled):
		return "The request was canceled."
	case errors.As(err, &upstream):
		if upstream.NotFound() {
			return "That title could not be found on TMDB."
		}
		return fmt.Sprintf("TMDB returned an error (status %d). Please try again.", upstream.Status)
	case errors.As(err, &empty):
		return "TMDB sent back an empty response. Please try again."
	case errors.As(err, &transport):
		if transport.Timeout() {
			return "The request to TMDB timed out. Check your connection and try again."
		}
		if transport.Unreachable() {
			return "Could not reach TMDB. Check your network connection."
		}
		return "A network error occurred while contacting TMDB."
	default:
		return err.Error()
	}
}

// outcome maps an error onto the metrics outcome label
func outcome(err error) string {
	var (
		upstream  *catalog.UpstreamError
		empty     *catalog.EmptyResponseError
		transport *catalog.TransportError
	)

	switch {
	case err == nil:
		return metrics.OutcomeOK
	case errors.Is(err, ErrNoResults):
		return metrics.OutcomeNoResults
	case errors.Is(err, catalog.ErrMissingAPIKey):
		return metrics.OutcomeConfigError
	case errors.As(err, &upstream):
		return metrics.OutcomeUpstreamError
	case errors.As(err, &empty):
		return metrics.OutcomeEmptyResponse
	case errors.As(err, &transport):
		return metrics.OutcomeTransportError
	default:
		return metrics.OutcomeError
	}
}
