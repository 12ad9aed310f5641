package render

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/marco/watchNext/internal/catalog"
	"github.com/marco/watchNext/internal/media"
)

// exportFrontmatter is the YAML header of an exported detail
type exportFrontmatter struct {
	Title    string   `yaml:"title"`
	Type     string   `yaml:"type"`
	TMDBID   int      `yaml:"tmdbId"`
	Year     string   `yaml:"year"`
	Rating   string   `yaml:"rating"`
	Runtime  int      `yaml:"runtime,omitempty"`
	Director string   `yaml:"director"`
	Genres   []string `yaml:"genres,omitempty"`
	Cast     []string `yaml:"cast,omitempty"`
	Poster   string   `yaml:"poster,omitempty"`
	Backdrop string   `yaml:"backdrop,omitempty"`
	Trailer  string   `yaml:"trailer,omitempty"`
}

var (
	slugInvalid = regexp.MustCompile(`[^a-z0-9-]+`)
	slugDashes  = regexp.MustCompile(`-+`)
)

// Slug creates a file-name friendly slug from a title and year
func Slug(title string, year media.Year) string {
	slug := strings.ToLower(title)
	slug = strings.ReplaceAll(slug, " ", "-")
	slug = slugInvalid.ReplaceAllString(slug, "")
	slug = slugDashes.ReplaceAllString(slug, "-")
	slug = strings.Trim(slug, "-")

	if y, ok := year.Value(); ok {
		if slug == "" {
			return strconv.Itoa(y)
		}
		slug = slug + "-" + strconv.Itoa(y)
	}
	return slug
}

// ExportFileName is the default export file name for d
func ExportFileName(d *media.Detail) string {
	slug := Slug(d.Title, d.Year)
	if slug == "" {
		slug = fmt.Sprintf("%s-%d", d.Type, d.ID)
	}
	return slug + ".md"
}

// DetailMarkdown renders d as Markdown with a YAML frontmatter header
func DetailMarkdown(d *media.Detail) (string, error) {
	fm := exportFrontmatter{
		Title:    d.Title,
		Type:     string(d.Type),
		TMDBID:   d.ID,
		Year:     d.Year.String(),
		Rating:   d.Rating.String(),
		Director: d.Director,
		Genres:   d.GenreNames,
		Cast:     d.Cast,
	}
	if d.Runtime != nil {
		fm.Runtime = *d.Runtime
	}
	if d.PosterPath != nil {
		fm.Poster = catalog.PosterURL(*d.PosterPath)
	}
	if d.BackdropPath != nil {
		fm.Backdrop = catalog.BackdropURL(*d.BackdropPath)
	}
	if d.Trailer != nil {
		fm.Trailer = d.Trailer.URL
	}

	var sb strings.Builder
	sb.WriteString("---\n")

	// Titles such as "Alien: Romulus" must stay scalars, so force quoting
	var docNode yaml.Node
	if err := docNode.Encode(fm); err != nil {
		return "", fmt.Errorf("failed to marshal detail to YAML: %w", err)
	}
	forceQuotedFields(&docNode, "title", "director", "year", "rating")
	yamlData, err := yaml.Marshal(&docNode)
	if err != nil {
		return "", fmt.Errorf("failed to marshal detail to YAML: %w", err)
	}

	sb.Write(yamlData)
	sb.WriteString("---\n\n")

	sb.WriteString(fmt.Sprintf("# %s", d.Title))
	if y, ok := d.Year.Value(); ok {
		sb.WriteString(fmt.Sprintf(" (%d)", y))
	}
	sb.WriteString("\n\n")

	if d.Overview != "" {
		sb.WriteString("## Overview\n\n")
		sb.WriteString(d.Overview)
		sb.WriteString("\n\n")
	}

	sb.WriteString("## Details\n\n")
	sb.WriteString(fmt.Sprintf("- **Rating**: %s\n", d.Rating))
	if d.Runtime != nil {
		sb.WriteString(fmt.Sprintf("- **Runtime**: %d minutes\n", *d.Runtime))
	}
	sb.WriteString(fmt.Sprintf("- **Director**: %s\n", d.Director))
	if len(d.GenreNames) > 0 {
		sb.WriteString(fmt.Sprintf("- **Genres**: %s\n", strings.Join(d.GenreNames, ", ")))
	}
	if len(d.Cast) > 0 {
		sb.WriteString(fmt.Sprintf("- **Cast**: %s\n", strings.Join(d.Cast, ", ")))
	}

	if len(d.Similar) > 0 {
		sb.WriteString("\n## Similar\n\n")
		for _, item := range d.Similar {
			sb.WriteString(fmt.Sprintf("- %s (%s) %s\n", item.Title, item.Year, item.Rating))
		}
	}

	sb.WriteString("\n## Links\n\n")
	sb.WriteString(fmt.Sprintf("- [View on TMDB](https://www.themoviedb.org/%s/%d)\n", d.Type, d.ID))
	if d.Trailer != nil {
		sb.WriteString(fmt.Sprintf("- [Watch the trailer](%s)\n", d.Trailer.URL))
	}

	return sb.String(), nil
}

// WriteDetailMarkdown writes d to path, creating parent directories
func WriteDetailMarkdown(fs afero.Fs, path string, d *media.Detail) error {
	content, err := DetailMarkdown(d)
	if err != nil {
		return fmt.Errorf("failed to generate Markdown: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := fs.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create export directory: %w", err)
		}
	}

	if err := afero.WriteFile(fs, path, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write export file: %w", err)
	}
	return nil
}

// forceQuotedFields sets DoubleQuotedStyle on the named top-level scalar
// fields. Node.Encode yields the mapping itself, a parsed file yields a
// document wrapping it; both are accepted.
func forceQuotedFields(node *yaml.Node, keys ...string) {
	mapping := node
	if mapping.Kind == yaml.DocumentNode && len(mapping.Content) > 0 {
		mapping = mapping.Content[0]
	}
	if mapping.Kind != yaml.MappingNode {
		return
	}
	keySet := make(map[string]bool, len(keys))
	for _, k := range keys {
		keySet[k] = true
	}
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		if keySet[mapping.Content[i].Value] {
			mapping.Content[i+1].Style = yaml.DoubleQuotedStyle
		}
	}
}
