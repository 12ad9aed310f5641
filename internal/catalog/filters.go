package catalog

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// DiscoverFilters encodes the discover query derived from user preferences
type DiscoverFilters struct {
	GenreIDs     []int
	MinRating    float64
	IncludeAdult bool
	YearFrom     int
	YearTo       int
}

// Values builds the discover query string parameters for mediaType.
// with_genres is omitted entirely when no genre is selected.
func (f DiscoverFilters) Values(mediaType MediaType) url.Values {
	params := url.Values{}

	if len(f.GenreIDs) > 0 {
		ids := make([]string, len(f.GenreIDs))
		for i, id := range f.GenreIDs {
			ids[i] = strconv.Itoa(id)
		}
		params.Set("with_genres", strings.Join(ids, ","))
	}

	params.Set("vote_average.gte", strconv.FormatFloat(f.MinRating, 'f', -1, 64))
	params.Set("include_adult", strconv.FormatBool(f.IncludeAdult))
	params.Set("sort_by", "popularity.desc")
	params.Set("page", "1")

	// Movies filter on primary release date, TV shows on first air date
	dateKey := "primary_release_date"
	if mediaType == TV {
		dateKey = "first_air_date"
	}
	params.Set(dateKey+".gte", fmt.Sprintf("%d-01-01", f.YearFrom))
	params.Set(dateKey+".lte", fmt.Sprintf("%d-12-31", f.YearTo))

	return params
}
