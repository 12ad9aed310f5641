package catalog

import "fmt"

const (
	ImageBaseURL = "https://image.tmdb.org/t/p"
	PosterSize   = "w500"
	BackdropSize = "original"
)

// ImageURL joins a catalog image path with the image host and a width segment.
// An empty path yields an empty URL.
func ImageURL(path, size string) string {
	if path == "" {
		return ""
	}
	return fmt.Sprintf("%s/%s%s", ImageBaseURL, size, path)
}

// PosterURL returns the medium-width poster URL for path
func PosterURL(path string) string {
	return ImageURL(path, PosterSize)
}

// BackdropURL returns the original-size backdrop URL for path
func BackdropURL(path string) string {
	return ImageURL(path, BackdropSize)
}
