package media

import (
	"fmt"

	"github.com/marco/watchNext/internal/catalog"
)

// GenreMap maps a genre id to its display name. Read-only once built.
type GenreMap map[int]string

// BuildGenreMap merges the movie and TV genre lists into one lookup table.
// The movie list is inserted first, so a TV genre with a colliding id wins.
func BuildGenreMap(movieGenres, tvGenres []catalog.Genre) GenreMap {
	m := make(GenreMap, len(movieGenres)+len(tvGenres))
	for _, g := range movieGenres {
		m[g.ID] = g.Name
	}
	for _, g := range tvGenres {
		m[g.ID] = g.Name
	}
	return m
}

// Resolve maps ids to names, keeping every position. Unknown ids resolve to
// a placeholder embedding the id.
func (m GenreMap) Resolve(ids []int) []string {
	names := make([]string, len(ids))
	for i, id := range ids {
		if name, ok := m[id]; ok {
			names[i] = name
			continue
		}
		names[i] = UnknownGenre(id)
	}
	return names
}

// UnknownGenre is the placeholder label for an id missing from the map
func UnknownGenre(id int) string {
	return fmt.Sprintf("Genre %d", id)
}
