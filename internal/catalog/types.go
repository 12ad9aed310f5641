package catalog

import "fmt"

// MediaType tags every item as a movie or a TV show
type MediaType string

const (
	Movie MediaType = "movie"
	TV    MediaType = "tv"
)

// ParseMediaType parses "movie" or "tv"
func ParseMediaType(s string) (MediaType, error) {
	switch MediaType(s) {
	case Movie, TV:
		return MediaType(s), nil
	}
	return "", fmt.Errorf("unsupported media type %q (want movie or tv)", s)
}

// Valid reports whether m is movie or tv
func (m MediaType) Valid() bool {
	return m == Movie || m == TV
}

// TrendingScope is the media_type path segment of the trending endpoint
type TrendingScope string

const (
	ScopeAll   TrendingScope = "all"
	ScopeMovie TrendingScope = "movie"
	ScopeTV    TrendingScope = "tv"
)

// TimeWindow is the time_window path segment of the trending endpoint
type TimeWindow string

const (
	Day  TimeWindow = "day"
	Week TimeWindow = "week"
)

// Genre represents a genre entry from TMDB
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// GenreListResponse represents the response from /genre/{type}/list
type GenreListResponse struct {
	Genres []Genre `json:"genres"`
}

// Item represents one entry of a trending, search or discover result page.
// Movies carry title/release_date, TV shows carry name/first_air_date.
// Pointer fields distinguish "absent" from zero values.
type Item struct {
	ID           int      `json:"id"`
	MediaType    string   `json:"media_type,omitempty"`
	Title        *string  `json:"title,omitempty"`
	Name         string   `json:"name,omitempty"`
	ReleaseDate  string   `json:"release_date,omitempty"`
	FirstAirDate string   `json:"first_air_date,omitempty"`
	VoteAverage  *float64 `json:"vote_average,omitempty"`
	VoteCount    int      `json:"vote_count,omitempty"`
	Popularity   float64  `json:"popularity,omitempty"`
	PosterPath   *string  `json:"poster_path,omitempty"`
	BackdropPath *string  `json:"backdrop_path,omitempty"`
	GenreIDs     []int    `json:"genre_ids,omitempty"`
	Overview     string   `json:"overview,omitempty"`
	Adult        bool     `json:"adult,omitempty"`
}

// Page represents a page of results (only page 1 is ever requested)
type Page struct {
	Page         int    `json:"page"`
	Results      []Item `json:"results"`
	TotalPages   int    `json:"total_pages"`
	TotalResults int    `json:"total_results"`
}

// Details represents /movie/{id} or /tv/{id} with credits, videos and similar appended
type Details struct {
	ID             int        `json:"id"`
	Title          *string    `json:"title,omitempty"`
	Name           string     `json:"name,omitempty"`
	Overview       string     `json:"overview"`
	ReleaseDate    string     `json:"release_date,omitempty"`
	FirstAirDate   string     `json:"first_air_date,omitempty"`
	VoteAverage    *float64   `json:"vote_average,omitempty"`
	PosterPath     *string    `json:"poster_path,omitempty"`
	BackdropPath   *string    `json:"backdrop_path,omitempty"`
	Genres         []Genre    `json:"genres"`
	Runtime        *int       `json:"runtime,omitempty"`
	EpisodeRunTime []int      `json:"episode_run_time,omitempty"`
	Credits        *Credits   `json:"credits,omitempty"`
	Videos         *VideoList `json:"videos,omitempty"`
	Similar        *Page      `json:"similar,omitempty"`
}

// Credits represents the cast and crew appended to a detail record
type Credits struct {
	Cast []CastMember `json:"cast"`
	Crew []CrewMember `json:"crew"`
}

// CastMember represents a cast member
type CastMember struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Character string `json:"character"`
	Order     int    `json:"order"`
}

// CrewMember represents a crew member
type CrewMember struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	Job        string `json:"job"`
	Department string `json:"department"`
}

// VideoList represents the videos appended to a detail record
type VideoList struct {
	Results []Video `json:"results"`
}

// Video represents a trailer, teaser or clip hosted on a video site
type Video struct {
	Key      string `json:"key"`
	Name     string `json:"name"`
	Site     string `json:"site"`
	Type     string `json:"type"`
	Official bool   `json:"official"`
}
