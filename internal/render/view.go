package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/marco/watchNext/internal/catalog"
	"github.com/marco/watchNext/internal/discovery"
	"github.com/marco/watchNext/internal/media"
)

var viewTitles = map[discovery.View]string{
	discovery.ViewRecommendations: "Recommendations",
	discovery.ViewSearch:          "Search results",
	discovery.ViewDetails:         "Details",
}

// ratingStyle colours a rating: green from 8, yellow from 6, red below,
// grey when unrated.
func ratingStyle(r media.Rating) lipgloss.Style {
	v, ok := r.Value()
	switch {
	case !ok:
		return noRatingText
	case v >= 8:
		return highRating
	case v >= 6:
		return midRating
	default:
		return lowRating
	}
}

// State renders the whole screen for s
func State(s discovery.ViewState) string {
	var sb strings.Builder

	if s.IsLoading {
		sb.WriteString(loadingStyle.Render("Loading..."))
		sb.WriteString("\n")
	}
	if s.LastError != "" {
		sb.WriteString(errorStyle.Render(s.LastError))
		sb.WriteString("\n")
	}

	if s.CurrentView == discovery.ViewDetails && s.Selected != nil {
		sb.WriteString(Detail(s.Selected))
		return sb.String()
	}

	sb.WriteString(List(viewTitles[s.CurrentView], s.Items))
	return sb.String()
}

// List renders a numbered results list. Numbers start at 1.
func List(title string, items []media.Item) string {
	var sb strings.Builder
	sb.WriteString(headerStyle.Render(fmt.Sprintf("%s (%d)", title, len(items))))
	sb.WriteString("\n")

	if len(items) == 0 {
		sb.WriteString(mutedStyle.Render("  Nothing to show."))
		sb.WriteString("\n")
		return sb.String()
	}

	for i, item := range items {
		sb.WriteString(ItemLine(i+1, item))
		sb.WriteString("\n")
	}
	return sb.String()
}

// ItemLine renders one list entry
func ItemLine(n int, item media.Item) string {
	parts := []string{
		indexStyle.Render(fmt.Sprintf("%d.", n)),
		titleStyle.Render(item.Title),
		mutedStyle.Render("(" + item.Year.String() + ")"),
		ratingStyle(item.Rating).Render(item.Rating.String()),
		typeStyle.Render(typeLabel(item.Type)),
	}
	if len(item.GenreNames) > 0 {
		parts = append(parts, mutedStyle.Render(strings.Join(item.GenreNames, ", ")))
	}
	return strings.Join(parts, " ")
}

// Detail renders the expanded view of one title
func Detail(d *media.Detail) string {
	var body strings.Builder

	body.WriteString(titleStyle.Render(fmt.Sprintf("%s (%s)", d.Title, d.Year)))
	body.WriteString(" ")
	body.WriteString(typeStyle.Render(typeLabel(d.Type)))
	body.WriteString("\n\n")

	field := func(label, value string) {
		if value == "" {
			return
		}
		body.WriteString(labelStyle.Render(label))
		body.WriteString(value)
		body.WriteString("\n")
	}

	field("Rating", ratingStyle(d.Rating).Render(d.Rating.String()))
	field("Runtime", d.RuntimeString())
	field("Director", d.Director)
	field("Genres", strings.Join(d.GenreNames, ", "))
	field("Cast", strings.Join(d.Cast, ", "))
	if d.Trailer != nil {
		field("Trailer", d.Trailer.URL)
	}
	if d.PosterPath != nil {
		field("Poster", catalog.PosterURL(*d.PosterPath))
	}

	if d.Overview != "" {
		body.WriteString("\n")
		body.WriteString(overviewStyle.Render(d.Overview))
		body.WriteString("\n")
	}

	if len(d.Similar) > 0 {
		body.WriteString("\n")
		body.WriteString(labelStyle.Render("Similar"))
		body.WriteString("\n")
		for i, item := range d.Similar {
			body.WriteString(ItemLine(i+1, item))
			body.WriteString("\n")
		}
	}

	return detailBoxStyle.Render(strings.TrimRight(body.String(), "\n")) + "\n"
}

func typeLabel(mt catalog.MediaType) string {
	if mt == catalog.TV {
		return "TV"
	}
	return "Movie"
}
