// Package media holds the internal media representation and the rules that
// turn raw catalog payloads into it.
package media

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/marco/watchNext/internal/catalog"
)

// Sentinels shown when a value is missing upstream
const (
	UnknownYear     = "Unknown"
	NotRated        = "NR"
	UnknownDirector = "Unknown"
)

// Year is a release year, or unknown when the catalog had no usable date
type Year struct {
	value int
	known bool
}

// KnownYear returns a Year holding y
func KnownYear(y int) Year {
	return Year{value: y, known: true}
}

// Value returns the year and whether it is known
func (y Year) Value() (int, bool) {
	return y.value, y.known
}

func (y Year) String() string {
	if !y.known {
		return UnknownYear
	}
	return strconv.Itoa(y.value)
}

// Rating is a 0-10 vote average rounded to one decimal, or "NR"
type Rating struct {
	value float64
	rated bool
}

// RatedAt returns a Rating holding v
func RatedAt(v float64) Rating {
	return Rating{value: v, rated: true}
}

// Value returns the rating and whether the title is rated
func (r Rating) Value() (float64, bool) {
	return r.value, r.rated
}

func (r Rating) String() string {
	if !r.rated {
		return NotRated
	}
	return strconv.FormatFloat(r.value, 'f', 1, 64)
}

// Item is one entry of a results list. Identity is (Type, ID): movies and
// TV shows may share numeric ids.
type Item struct {
	Type       catalog.MediaType
	ID         int
	Title      string
	Year       Year
	Rating     Rating
	PosterPath *string
	GenreIDs   []int
	GenreNames []string
}

// Key returns the (type, id) identity as a string
func (i Item) Key() string {
	return fmt.Sprintf("%s:%d", i.Type, i.ID)
}

// Clone returns a copy that shares no slices or pointers with i
func (i Item) Clone() Item {
	i.PosterPath = clonePtr(i.PosterPath)
	i.GenreIDs = slices.Clone(i.GenreIDs)
	i.GenreNames = slices.Clone(i.GenreNames)
	return i
}

// Raw re-expresses the item in catalog shape, so that normalizing the result
// again yields the same title, year and rating.
func (i Item) Raw() catalog.Item {
	raw := catalog.Item{
		ID:         i.ID,
		MediaType:  string(i.Type),
		PosterPath: i.PosterPath,
		GenreIDs:   i.GenreIDs,
	}

	var date string
	if y, ok := i.Year.Value(); ok {
		date = fmt.Sprintf("%04d-01-01", y)
	}

	if i.Type == catalog.Movie {
		title := i.Title
		raw.Title = &title
		raw.ReleaseDate = date
	} else {
		raw.Name = i.Title
		raw.FirstAirDate = date
	}

	if v, ok := i.Rating.Value(); ok {
		raw.VoteAverage = &v
	}
	return raw
}

// Trailer is a playable trailer link
type Trailer struct {
	Name string
	URL  string
}

// Detail is the expanded form fetched on selection. It is never mutated in
// place; selecting again produces a new Detail.
type Detail struct {
	Item
	Overview     string
	Genres       []catalog.Genre
	Runtime      *int
	Director     string
	Cast         []string
	BackdropPath *string
	Trailer      *Trailer
	Similar      []Item
}

// Clone returns a deep copy of d
func (d Detail) Clone() Detail {
	d.Item = d.Item.Clone()
	d.Genres = slices.Clone(d.Genres)
	d.Runtime = clonePtr(d.Runtime)
	d.Cast = slices.Clone(d.Cast)
	d.BackdropPath = clonePtr(d.BackdropPath)
	d.Trailer = clonePtr(d.Trailer)
	d.Similar = CloneItems(d.Similar)
	return d
}

// CloneItems deep-copies a results list
func CloneItems(items []Item) []Item {
	if items == nil {
		return nil
	}
	out := make([]Item, len(items))
	for i, item := range items {
		out[i] = item.Clone()
	}
	return out
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// RuntimeString formats the runtime in minutes, or "" when absent
func (d Detail) RuntimeString() string {
	if d.Runtime == nil {
		return ""
	}
	return fmt.Sprintf("%d min", *d.Runtime)
}
