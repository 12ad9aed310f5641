package media

import (
	"math"
	"strconv"

	"github.com/marco/watchNext/internal/catalog"
)

// MaxCast is the number of cast names kept on a Detail
const MaxCast = 10

const youtubeWatchURL = "https://www.youtube.com/watch?v="

// rule extracts one field from a raw record. ok=false means "not present
// here, try the next source".
type rule[S, T any] func(src S) (value T, ok bool)

// firstOf runs rules in order and returns the first present value
func firstOf[S, T any](src S, rules []rule[S, T]) (T, bool) {
	for _, r := range rules {
		if v, ok := r(src); ok {
			return v, true
		}
	}
	var zero T
	return zero, false
}

// Field sources for list items, keyed by media type: type-specific fields first.
var (
	titleRules = map[catalog.MediaType][]rule[catalog.Item, string]{
		catalog.Movie: {movieTitle, showName},
		catalog.TV:    {showName, movieTitle},
	}
	dateRules = map[catalog.MediaType][]rule[catalog.Item, string]{
		catalog.Movie: {releaseDate},
		catalog.TV:    {firstAirDate},
	}
	posterRules = []rule[catalog.Item, *string]{
		func(it catalog.Item) (*string, bool) { return nonEmpty(it.PosterPath) },
	}
)

// Field sources for detail records
var (
	runtimeRules = []rule[*catalog.Details, int]{
		func(d *catalog.Details) (int, bool) {
			if d.Runtime != nil && *d.Runtime > 0 {
				return *d.Runtime, true
			}
			return 0, false
		},
		func(d *catalog.Details) (int, bool) {
			if len(d.EpisodeRunTime) > 0 && d.EpisodeRunTime[0] > 0 {
				return d.EpisodeRunTime[0], true
			}
			return 0, false
		},
	}
	directorRules = []rule[*catalog.Details, string]{
		crewWithJob("Director"),
	}
	backdropRules = []rule[*catalog.Details, *string]{
		func(d *catalog.Details) (*string, bool) { return nonEmpty(d.BackdropPath) },
	}
	trailerRules = []rule[*catalog.Details, catalog.Video]{
		video(func(v catalog.Video) bool { return v.Site == "YouTube" && v.Type == "Trailer" && v.Official }),
		video(func(v catalog.Video) bool { return v.Site == "YouTube" && v.Type == "Trailer" }),
		video(func(v catalog.Video) bool { return v.Site == "YouTube" && v.Type == "Teaser" }),
	}
)

func movieTitle(it catalog.Item) (string, bool) {
	if it.Title != nil && *it.Title != "" {
		return *it.Title, true
	}
	return "", false
}

func showName(it catalog.Item) (string, bool) {
	return it.Name, it.Name != ""
}

func releaseDate(it catalog.Item) (string, bool) {
	return it.ReleaseDate, it.ReleaseDate != ""
}

func firstAirDate(it catalog.Item) (string, bool) {
	return it.FirstAirDate, it.FirstAirDate != ""
}

func nonEmpty(s *string) (*string, bool) {
	if s == nil || *s == "" {
		return nil, false
	}
	return s, true
}

// crewWithJob matches the first crew member whose job equals job exactly.
// Upstream crew order is authoritative.
func crewWithJob(job string) rule[*catalog.Details, string] {
	return func(d *catalog.Details) (string, bool) {
		if d.Credits == nil {
			return "", false
		}
		for _, member := range d.Credits.Crew {
			if member.Job == job {
				return member.Name, true
			}
		}
		return "", false
	}
}

func video(match func(catalog.Video) bool) rule[*catalog.Details, catalog.Video] {
	return func(d *catalog.Details) (catalog.Video, bool) {
		if d.Videos == nil {
			return catalog.Video{}, false
		}
		for _, v := range d.Videos.Results {
			if match(v) {
				return v, true
			}
		}
		return catalog.Video{}, false
	}
}

// ResolveType picks the media type of a raw item: an explicit hint from the
// endpoint, then the item's own media_type tag, then field presence (a title
// means movie). ok is false for tagged entries that are neither movie nor tv,
// such as people in trending results.
func ResolveType(raw catalog.Item, hint catalog.MediaType) (catalog.MediaType, bool) {
	if hint.Valid() {
		return hint, true
	}
	if raw.MediaType != "" {
		mt, err := catalog.ParseMediaType(raw.MediaType)
		return mt, err == nil
	}
	if raw.Title != nil {
		return catalog.Movie, true
	}
	return catalog.TV, true
}

// ToItem normalizes one raw list entry. Pass an empty hint when the endpoint
// does not say what it returned. genres may be nil.
func ToItem(raw catalog.Item, hint catalog.MediaType, genres GenreMap) (Item, bool) {
	mediaType, ok := ResolveType(raw, hint)
	if !ok {
		return Item{}, false
	}

	title, _ := firstOf(raw, titleRules[mediaType])
	date, _ := firstOf(raw, dateRules[mediaType])
	poster, _ := firstOf(raw, posterRules)

	return Item{
		Type:       mediaType,
		ID:         raw.ID,
		Title:      title,
		Year:       parseYear(date),
		Rating:     parseRating(raw.VoteAverage),
		PosterPath: poster,
		GenreIDs:   raw.GenreIDs,
		GenreNames: genres.Resolve(raw.GenreIDs),
	}, true
}

// ToItems normalizes a result page, skipping entries that are not movies or TV shows
func ToItems(raws []catalog.Item, hint catalog.MediaType, genres GenreMap) []Item {
	items := make([]Item, 0, len(raws))
	for _, raw := range raws {
		if item, ok := ToItem(raw, hint, genres); ok {
			items = append(items, item)
		}
	}
	return items
}

// ToDetail normalizes a detail payload fetched for mediaType. Genre names on
// the detail come from the payload itself and supersede the genre map, which
// is only used for the similar titles.
func ToDetail(raw *catalog.Details, mediaType catalog.MediaType, genres GenreMap) Detail {
	genreIDs := make([]int, len(raw.Genres))
	genreNames := make([]string, len(raw.Genres))
	for i, g := range raw.Genres {
		genreIDs[i] = g.ID
		genreNames[i] = g.Name
	}

	item, _ := ToItem(catalog.Item{
		ID:           raw.ID,
		Title:        raw.Title,
		Name:         raw.Name,
		ReleaseDate:  raw.ReleaseDate,
		FirstAirDate: raw.FirstAirDate,
		VoteAverage:  raw.VoteAverage,
		PosterPath:   raw.PosterPath,
		GenreIDs:     genreIDs,
	}, mediaType, nil)
	item.GenreNames = genreNames

	detail := Detail{
		Item:     item,
		Overview: raw.Overview,
		Genres:   raw.Genres,
		Director: UnknownDirector,
		Cast:     castNames(raw.Credits),
	}

	if runtime, ok := firstOf(raw, runtimeRules); ok {
		detail.Runtime = &runtime
	}
	if director, ok := firstOf(raw, directorRules); ok {
		detail.Director = director
	}
	if backdrop, ok := firstOf(raw, backdropRules); ok {
		detail.BackdropPath = backdrop
	}
	if v, ok := firstOf(raw, trailerRules); ok {
		detail.Trailer = &Trailer{Name: v.Name, URL: youtubeWatchURL + v.Key}
	}
	if raw.Similar != nil {
		detail.Similar = ToItems(raw.Similar.Results, mediaType, genres)
	}

	return detail
}

// castNames keeps the first MaxCast names in upstream order
func castNames(credits *catalog.Credits) []string {
	if credits == nil {
		return nil
	}
	n := min(len(credits.Cast), MaxCast)
	names := make([]string, 0, n)
	for _, member := range credits.Cast[:n] {
		names = append(names, member.Name)
	}
	return names
}

// parseYear takes the year component of a YYYY-MM-DD date
func parseYear(date string) Year {
	if len(date) < 4 {
		return Year{}
	}
	y, err := strconv.Atoi(date[:4])
	if err != nil || y <= 0 {
		return Year{}
	}
	return KnownYear(y)
}

// parseRating rounds the vote average to one decimal. A missing or zero
// average means the title has no votes yet.
func parseRating(v *float64) Rating {
	if v == nil || *v == 0 || math.IsNaN(*v) {
		return Rating{}
	}
	return RatedAt(math.Round(*v*10) / 10)
}
