package media

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marco/watchNext/internal/catalog"
)

func ptr[T any](v T) *T { return &v }

func TestBuildGenreMap_TVOverwritesMovie(t *testing.T) {
	m := BuildGenreMap(
		[]catalog.Genre{{ID: 28, Name: "Action"}, {ID: 35, Name: "Comedy"}},
		[]catalog.Genre{{ID: 28, Name: "TV Action"}, {ID: 10765, Name: "Sci-Fi & Fantasy"}},
	)

	assert.Len(t, m, 3)
	assert.Equal(t, "TV Action", m[28])
	assert.Equal(t, "Comedy", m[35])
	assert.Equal(t, "Sci-Fi & Fantasy", m[10765])
}

func TestGenreMap_Resolve(t *testing.T) {
	m := GenreMap{28: "Action"}

	tests := []struct {
		name string
		ids  []int
		want []string
	}{
		{"known", []int{28}, []string{"Action"}},
		{"unknown keeps position", []int{28, 99, 28}, []string{"Action", "Genre 99", "Action"}},
		{"empty", nil, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := m.Resolve(tt.ids)
			assert.Len(t, got, len(tt.ids))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGenreMap_ResolveOnNilMap(t *testing.T) {
	var m GenreMap
	assert.Equal(t, []string{"Genre 7"}, m.Resolve([]int{7}))
}

func TestResolveType(t *testing.T) {
	tests := []struct {
		name   string
		raw    catalog.Item
		hint   catalog.MediaType
		want   catalog.MediaType
		wantOK bool
	}{
		{"hint wins over tag", catalog.Item{MediaType: "movie"}, catalog.TV, catalog.TV, true},
		{"tag", catalog.Item{MediaType: "tv", Title: ptr("X")}, "", catalog.TV, true},
		{"person tag skipped", catalog.Item{MediaType: "person"}, "", "", false},
		{"title means movie", catalog.Item{Title: ptr("X")}, "", catalog.Movie, true},
		{"no title means tv", catalog.Item{Name: "Y"}, "", catalog.TV, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ResolveType(tt.raw, tt.hint)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestToItem_Movie(t *testing.T) {
	raw := catalog.Item{
		ID:          1,
		Title:       ptr("X"),
		ReleaseDate: "2020-05-01",
		VoteAverage: ptr(7.24),
		GenreIDs:    []int{28},
		PosterPath:  ptr("/p.jpg"),
	}

	item, ok := ToItem(raw, "", GenreMap{28: "TV Action"})
	require.True(t, ok)

	assert.Equal(t, catalog.Movie, item.Type)
	assert.Equal(t, "X", item.Title)
	assert.Equal(t, "2020", item.Year.String())
	assert.Equal(t, "7.2", item.Rating.String())
	assert.Equal(t, []string{"TV Action"}, item.GenreNames)
	require.NotNil(t, item.PosterPath)
	assert.Equal(t, "/p.jpg", *item.PosterPath)
	assert.Equal(t, "movie:1", item.Key())
}

func TestToItem_Fallbacks(t *testing.T) {
	tests := []struct {
		name       string
		raw        catalog.Item
		wantYear   string
		wantRating string
	}{
		{"missing date", catalog.Item{Name: "S"}, "Unknown", "NR"},
		{"short date", catalog.Item{Name: "S", FirstAirDate: "20"}, "Unknown", "NR"},
		{"zero rating", catalog.Item{Name: "S", FirstAirDate: "1999-01-01", VoteAverage: ptr(0.0)}, "1999", "NR"},
		{"rounds half up", catalog.Item{Name: "S", VoteAverage: ptr(6.25)}, "Unknown", "6.3"},
		{"whole number", catalog.Item{Name: "S", VoteAverage: ptr(8.0)}, "Unknown", "8.0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item, ok := ToItem(tt.raw, "", nil)
			require.True(t, ok)
			assert.Equal(t, catalog.TV, item.Type)
			assert.Equal(t, tt.wantYear, item.Year.String())
			assert.Equal(t, tt.wantRating, item.Rating.String())
		})
	}
}

func TestToItem_EmptyPosterIsAbsent(t *testing.T) {
	item, ok := ToItem(catalog.Item{Name: "S", PosterPath: ptr("")}, "", nil)
	require.True(t, ok)
	assert.Nil(t, item.PosterPath)
}

func TestToItem_Idempotent(t *testing.T) {
	raws := []catalog.Item{
		{ID: 1, Title: ptr("Movie"), ReleaseDate: "2001-09-11", VoteAverage: ptr(6.66), GenreIDs: []int{18}},
		{ID: 2, Name: "Show", FirstAirDate: "2015-02-03", VoteAverage: ptr(8.0)},
		{ID: 3, MediaType: "movie", Title: ptr("Undated")},
	}

	for _, raw := range raws {
		t.Run(fmt.Sprint(raw.ID), func(t *testing.T) {
			first, ok := ToItem(raw, "", GenreMap{18: "Drama"})
			require.True(t, ok)

			second, ok := ToItem(first.Raw(), "", GenreMap{18: "Drama"})
			require.True(t, ok)

			assert.Equal(t, first.Type, second.Type)
			assert.Equal(t, first.Title, second.Title)
			assert.Equal(t, first.Year, second.Year)
			assert.Equal(t, first.Rating, second.Rating)
			assert.Equal(t, first.GenreNames, second.GenreNames)
		})
	}
}

func TestToItems_SkipsPeople(t *testing.T) {
	items := ToItems([]catalog.Item{
		{ID: 1, MediaType: "movie", Title: ptr("A")},
		{ID: 2, MediaType: "person", Name: "Someone"},
		{ID: 3, MediaType: "tv", Name: "B"},
	}, "", nil)

	require.Len(t, items, 2)
	assert.Equal(t, "A", items[0].Title)
	assert.Equal(t, "B", items[1].Title)
}

func TestToDetail_TV(t *testing.T) {
	raw := &catalog.Details{
		ID:             1399,
		Name:           "Show",
		FirstAirDate:   "2011-04-17",
		VoteAverage:    ptr(8.44),
		EpisodeRunTime: []int{60, 55},
		Genres:         []catalog.Genre{{ID: 18, Name: "Drama"}},
		Credits: &catalog.Credits{
			Crew: []catalog.CrewMember{
				{Name: "Writer", Job: "Writer"},
				{Name: "A", Job: "Director"},
				{Name: "B", Job: "Director"},
			},
		},
		Videos: &catalog.VideoList{Results: []catalog.Video{
			{Key: "teaser", Site: "YouTube", Type: "Teaser"},
			{Key: "vimeo", Site: "Vimeo", Type: "Trailer"},
			{Key: "yt", Name: "Official Trailer", Site: "YouTube", Type: "Trailer"},
		}},
		Similar: &catalog.Page{Results: []catalog.Item{{ID: 2, Name: "Other", GenreIDs: []int{18}}}},
	}

	d := ToDetail(raw, catalog.TV, GenreMap{18: "Drama"})

	assert.Equal(t, catalog.TV, d.Type)
	assert.Equal(t, "Show", d.Title)
	assert.Equal(t, "2011", d.Year.String())
	assert.Equal(t, "8.4", d.Rating.String())
	assert.Equal(t, "A", d.Director)
	require.NotNil(t, d.Runtime)
	assert.Equal(t, 60, *d.Runtime)
	assert.Equal(t, "60 min", d.RuntimeString())
	assert.Equal(t, []string{"Drama"}, d.GenreNames)
	require.NotNil(t, d.Trailer)
	assert.Equal(t, "https://www.youtube.com/watch?v=yt", d.Trailer.URL)
	require.Len(t, d.Similar, 1)
	assert.Equal(t, catalog.TV, d.Similar[0].Type)
	assert.Equal(t, []string{"Drama"}, d.Similar[0].GenreNames)
}

func TestToDetail_Fallbacks(t *testing.T) {
	raw := &catalog.Details{
		ID:           5,
		Title:        ptr("Film"),
		Runtime:      ptr(0),
		BackdropPath: ptr(""),
		Credits: &catalog.Credits{
			Crew: []catalog.CrewMember{{Name: "X", Job: "Assistant Director"}},
		},
	}

	d := ToDetail(raw, catalog.Movie, nil)

	assert.Equal(t, "Unknown", d.Director, "job match is exact")
	assert.Nil(t, d.Runtime)
	assert.Equal(t, "", d.RuntimeString())
	assert.Nil(t, d.BackdropPath)
	assert.Nil(t, d.PosterPath)
	assert.Nil(t, d.Trailer)
	assert.Empty(t, d.Similar)
	assert.Equal(t, "Unknown", d.Year.String())
	assert.Equal(t, "NR", d.Rating.String())
}

func TestToDetail_CastTruncated(t *testing.T) {
	cast := make([]catalog.CastMember, 15)
	for i := range cast {
		cast[i] = catalog.CastMember{Name: fmt.Sprintf("Actor %d", i)}
	}

	d := ToDetail(&catalog.Details{ID: 1, Title: ptr("F"), Credits: &catalog.Credits{Cast: cast}}, catalog.Movie, nil)

	require.Len(t, d.Cast, MaxCast)
	assert.Equal(t, "Actor 0", d.Cast[0])
	assert.Equal(t, "Actor 9", d.Cast[9])
}

func TestToDetail_NoCredits(t *testing.T) {
	d := ToDetail(&catalog.Details{ID: 1, Name: "S"}, catalog.TV, nil)
	assert.Empty(t, d.Cast)
	assert.Equal(t, UnknownDirector, d.Director)
}

func TestDetailClone(t *testing.T) {
	d := ToDetail(&catalog.Details{
		ID:             1,
		Name:           "S",
		PosterPath:     ptr("/p.jpg"),
		EpisodeRunTime: []int{45},
		Genres:         []catalog.Genre{{ID: 18, Name: "Drama"}},
		Credits:        &catalog.Credits{Cast: []catalog.CastMember{{Name: "Lead"}}},
		Similar:        &catalog.Page{Results: []catalog.Item{{ID: 2, Name: "Other", GenreIDs: []int{18}}}},
	}, catalog.TV, GenreMap{18: "Drama"})

	c := d.Clone()
	c.Cast[0] = "x"
	c.Genres[0].Name = "x"
	c.GenreNames[0] = "x"
	*c.PosterPath = "x"
	*c.Runtime = 1
	c.Similar[0].GenreNames[0] = "x"

	assert.Equal(t, []string{"Lead"}, d.Cast)
	assert.Equal(t, "Drama", d.Genres[0].Name)
	assert.Equal(t, []string{"Drama"}, d.GenreNames)
	assert.Equal(t, "/p.jpg", *d.PosterPath)
	assert.Equal(t, 45, *d.Runtime)
	assert.Equal(t, []string{"Drama"}, d.Similar[0].GenreNames)
}
