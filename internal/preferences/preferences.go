// Package preferences holds the user's discovery criteria and turns them
// into catalog discover filters.
package preferences

import (
	"fmt"
	"slices"
	"strings"

	"github.com/marco/watchNext/internal/catalog"
)

// Bounds accepted by the setters
const (
	MinYear   = 1900
	MaxYear   = 2025
	MaxRating = 10.0
)

// Preferences are the discover criteria. GenreIDs is kept sorted and free of
// duplicates; ToggleGenre is the only way genres change after construction.
type Preferences struct {
	MediaType    catalog.MediaType `yaml:"media_type" validate:"oneof=movie tv"`
	GenreIDs     []int             `yaml:"genre_ids" validate:"dive,gt=0"`
	YearFrom     int               `yaml:"year_from" validate:"min=1900,max=2025"`
	YearTo       int               `yaml:"year_to" validate:"min=1900,max=2025"`
	MinRating    float64           `yaml:"min_rating" validate:"min=0,max=10,halfstep"`
	IncludeAdult bool              `yaml:"include_adult"`
}

// Default returns movie, no genres, 2000-2025, rating 7 and no adult titles
func Default() Preferences {
	return Preferences{
		MediaType: catalog.Movie,
		YearFrom:  2000,
		YearTo:    2025,
		MinRating: 7,
	}
}

// Clone returns a copy that shares no memory with p
func (p Preferences) Clone() Preferences {
	p.GenreIDs = slices.Clone(p.GenreIDs)
	return p
}

// HasGenre reports whether id is selected
func (p *Preferences) HasGenre(id int) bool {
	return slices.Contains(p.GenreIDs, id)
}

// ToggleGenre adds id if absent and removes it if present. It returns
// whether the genre is selected afterwards. GenreIDs set directly is
// normalized first.
func (p *Preferences) ToggleGenre(id int) bool {
	p.Normalize()
	i, found := slices.BinarySearch(p.GenreIDs, id)
	if found {
		p.GenreIDs = slices.Delete(p.GenreIDs, i, i+1)
		return false
	}
	p.GenreIDs = slices.Insert(p.GenreIDs, i, id)
	return true
}

// SetMediaType switches between movie and tv
func (p *Preferences) SetMediaType(mt catalog.MediaType) error {
	return p.set("MediaType", func(c *Preferences) { c.MediaType = mt })
}

// SetYearFrom sets the lower year bound. yearFrom > yearTo is allowed and
// passed through to the catalog unchanged.
func (p *Preferences) SetYearFrom(year int) error {
	return p.set("YearFrom", func(c *Preferences) { c.YearFrom = year })
}

// SetYearTo sets the upper year bound
func (p *Preferences) SetYearTo(year int) error {
	return p.set("YearTo", func(c *Preferences) { c.YearTo = year })
}

// SetMinRating sets the rating floor; accepted values are 0-10 in steps of 0.5
func (p *Preferences) SetMinRating(rating float64) error {
	return p.set("MinRating", func(c *Preferences) { c.MinRating = rating })
}

// SetIncludeAdult toggles adult titles in discover results
func (p *Preferences) SetIncludeAdult(include bool) {
	p.IncludeAdult = include
}

// set applies change to a copy, validates the named field and only then
// commits, so a rejected value leaves p untouched.
func (p *Preferences) set(field string, change func(*Preferences)) error {
	candidate := p.Clone()
	change(&candidate)
	if err := validateFields(&candidate, field); err != nil {
		return err
	}
	*p = candidate
	return nil
}

// Filters snapshots p as discover filters. Genre ids are emitted in
// ascending order so equal sets always build equal requests.
func (p Preferences) Filters() catalog.DiscoverFilters {
	genres := slices.Clone(p.GenreIDs)
	slices.Sort(genres)
	genres = slices.Compact(genres)

	return catalog.DiscoverFilters{
		GenreIDs:     genres,
		MinRating:    p.MinRating,
		IncludeAdult: p.IncludeAdult,
		YearFrom:     p.YearFrom,
		YearTo:       p.YearTo,
	}
}

func (p Preferences) String() string {
	genres := "any"
	if len(p.GenreIDs) > 0 {
		parts := make([]string, len(p.GenreIDs))
		for i, id := range p.GenreIDs {
			parts[i] = fmt.Sprint(id)
		}
		genres = strings.Join(parts, ",")
	}
	return fmt.Sprintf("type=%s genres=%s years=%d-%d rating>=%.1f adult=%t",
		p.MediaType, genres, p.YearFrom, p.YearTo, p.MinRating, p.IncludeAdult)
}
