package tmdb

import "fmt"

// Image and video URL helpers

const (
	imageBaseURL = "https://image.tmdb.org/t/p/"
	siteBaseURL  = "https://www.themoviedb.org"

	// SiteYouTube is the only video host marquee links to
	SiteYouTube = "YouTube"
)

// Common image sizes
const (
	PosterSmall  = "w185"
	PosterMedium = "w342"
	PosterLarge  = "w500"
	BackdropHD   = "w1280"
	ProfileSmall = "w185"
	Original     = "original"
)

// ImageURL builds an absolute image URL, or "" when path is empty
func ImageURL(size, path string) string {
	if path == "" {
		return ""
	}
	if size == "" {
		size = Original
	}
	return imageBaseURL + size + path
}

// YouTubeURL is the watch page for a video key
func YouTubeURL(key string) string {
	if key == "" {
		return ""
	}
	return "https://www.youtube.com/watch?v=" + key
}

// MoviePageURL is the movie's page on the TMDB website
func MoviePageURL(id int) string {
	return fmt.Sprintf("%s/movie/%d", siteBaseURL, id)
}

// PersonPageURL is the person's page on the TMDB website
func PersonPageURL(id int) string {
	return fmt.Sprintf("%s/person/%d", siteBaseURL, id)
}
