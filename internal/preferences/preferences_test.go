package preferences

import (
	"errors"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marco/watchNext/internal/catalog"
)

func TestDefault(t *testing.T) {
	p := Default()

	assert.Equal(t, catalog.Movie, p.MediaType)
	assert.Empty(t, p.GenreIDs)
	assert.Equal(t, 2000, p.YearFrom)
	assert.Equal(t, 2025, p.YearTo)
	assert.Equal(t, 7.0, p.MinRating)
	assert.False(t, p.IncludeAdult)
	assert.NoError(t, p.Validate())
}

func TestToggleGenre(t *testing.T) {
	p := Default()

	assert.True(t, p.ToggleGenre(28))
	assert.True(t, p.ToggleGenre(12))
	assert.Equal(t, []int{12, 28}, p.GenreIDs)
	assert.True(t, p.HasGenre(28))

	assert.False(t, p.ToggleGenre(28))
	assert.Equal(t, []int{12}, p.GenreIDs)
	assert.False(t, p.HasGenre(28))
}

func TestToggleGenre_TwiceLeavesSetUnchanged(t *testing.T) {
	p := Default()
	p.ToggleGenre(35)
	p.ToggleGenre(35)
	assert.Empty(t, p.GenreIDs)
}

func TestToggleGenre_UnsortedLiteral(t *testing.T) {
	p := Preferences{MediaType: catalog.Movie, GenreIDs: []int{28, 12, 28}}

	assert.True(t, p.HasGenre(12))
	assert.False(t, p.ToggleGenre(12))
	assert.Equal(t, []int{28}, p.GenreIDs)
	assert.False(t, p.HasGenre(12))

	assert.True(t, p.ToggleGenre(12))
	assert.Equal(t, []int{12, 28}, p.GenreIDs)
	assert.Equal(t, []int{12, 28}, p.Filters().GenreIDs)
}

func TestSetters(t *testing.T) {
	tests := []struct {
		name    string
		apply   func(p *Preferences) error
		wantErr bool
		check   func(t *testing.T, p Preferences)
	}{
		{
			name:  "tv",
			apply: func(p *Preferences) error { return p.SetMediaType(catalog.TV) },
			check: func(t *testing.T, p Preferences) { assert.Equal(t, catalog.TV, p.MediaType) },
		},
		{
			name:    "person rejected",
			apply:   func(p *Preferences) error { return p.SetMediaType(catalog.MediaType("person")) },
			wantErr: true,
		},
		{
			name:  "year from lower bound",
			apply: func(p *Preferences) error { return p.SetYearFrom(1900) },
			check: func(t *testing.T, p Preferences) { assert.Equal(t, 1900, p.YearFrom) },
		},
		{
			name:    "year from too early",
			apply:   func(p *Preferences) error { return p.SetYearFrom(1899) },
			wantErr: true,
		},
		{
			name:    "year to too late",
			apply:   func(p *Preferences) error { return p.SetYearTo(2026) },
			wantErr: true,
		},
		{
			name:  "inverted range passes through",
			apply: func(p *Preferences) error { return p.SetYearFrom(2020) },
			check: func(t *testing.T, p Preferences) {
				assert.Equal(t, 2020, p.YearFrom)
				assert.Equal(t, 2025, p.YearTo)
			},
		},
		{
			name:  "half step rating",
			apply: func(p *Preferences) error { return p.SetMinRating(6.5) },
			check: func(t *testing.T, p Preferences) { assert.Equal(t, 6.5, p.MinRating) },
		},
		{
			name:  "zero rating",
			apply: func(p *Preferences) error { return p.SetMinRating(0) },
			check: func(t *testing.T, p Preferences) { assert.Equal(t, 0.0, p.MinRating) },
		},
		{
			name:    "off step rating",
			apply:   func(p *Preferences) error { return p.SetMinRating(6.3) },
			wantErr: true,
		},
		{
			name:    "rating above ten",
			apply:   func(p *Preferences) error { return p.SetMinRating(10.5) },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Default()
			before := p.Clone()

			err := tt.apply(&p)
			if tt.wantErr {
				require.Error(t, err)
				var verr *ValidationError
				assert.True(t, errors.As(err, &verr))
				assert.Equal(t, before, p, "rejected input must leave preferences unchanged")
				return
			}
			require.NoError(t, err)
			tt.check(t, p)
		})
	}
}

func TestValidationError_UsesYAMLName(t *testing.T) {
	p := Default()
	err := p.SetYearTo(3000)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "year_to", verr.Field)
	assert.Equal(t, "max", verr.Tag)
	assert.Contains(t, err.Error(), "year_to must be at most 2025")
}

func TestFilters(t *testing.T) {
	p := Default()
	p.ToggleGenre(878)
	p.ToggleGenre(28)
	p.SetIncludeAdult(true)

	f := p.Filters()
	assert.Equal(t, catalog.DiscoverFilters{
		GenreIDs:     []int{28, 878},
		MinRating:    7,
		IncludeAdult: true,
		YearFrom:     2000,
		YearTo:       2025,
	}, f)

	f.GenreIDs[0] = 1
	assert.Equal(t, []int{28, 878}, p.GenreIDs, "filters must not alias preferences")
}

func TestLoad(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/prefs.yaml", []byte(`
media_type: tv
genre_ids: [18, 10765, 18]
min_rating: 8.5
`), 0644))

	p, err := Load(fs, "/prefs.yaml")
	require.NoError(t, err)

	assert.Equal(t, catalog.TV, p.MediaType)
	assert.Equal(t, []int{18, 10765}, p.GenreIDs)
	assert.Equal(t, 8.5, p.MinRating)
	assert.Equal(t, 2000, p.YearFrom, "missing keys keep defaults")
	assert.Equal(t, 2025, p.YearTo)
}

func TestLoad_Invalid(t *testing.T) {
	fs := afero.NewMemMapFs()

	_, err := Load(fs, "/missing.yaml")
	assert.Error(t, err)

	require.NoError(t, afero.WriteFile(fs, "/bad.yaml", []byte("year_from: 1800\n"), 0644))
	_, err = Load(fs, "/bad.yaml")
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "year_from", verr.Field)

	require.NoError(t, afero.WriteFile(fs, "/broken.yaml", []byte("genre_ids: [oops\n"), 0644))
	_, err = Load(fs, "/broken.yaml")
	assert.Error(t, err)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	fs := afero.NewMemMapFs()
	p := Default()
	p.ToggleGenre(16)

	require.NoError(t, Save(fs, "/p.yaml", p))
	got, err := Load(fs, "/p.yaml")
	require.NoError(t, err)
	assert.Equal(t, p, got)
}
