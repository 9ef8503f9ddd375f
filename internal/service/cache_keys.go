package service

import "strconv"

// Cache key prefixes for catalog responses
const (
	// PrefixGenres is the cache key for the genre list
	PrefixGenres = "genres"

	// PrefixMovie is the prefix for movie views (movie:{id})
	PrefixMovie = "movie:"

	// PrefixPerson is the prefix for person views (person:{id})
	PrefixPerson = "person:"
)

func cacheKey(prefix string, id int) string {
	return prefix + strconv.Itoa(id)
}
