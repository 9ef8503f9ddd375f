package domain

import "errors"

// Sentinel errors for domain operations
var (
	// ErrCatalogOffline indicates the movie catalog is unreachable
	ErrCatalogOffline = errors.New("movie catalog is unreachable")

	// ErrAuthFailed indicates the catalog rejected the access token
	ErrAuthFailed = errors.New("catalog access token is invalid")

	// ErrNotFound indicates the requested movie or person does not exist
	ErrNotFound = errors.New("resource not found")

	// ErrRateLimited indicates the catalog asked us to slow down
	ErrRateLimited = errors.New("catalog rate limit exceeded")

	// ErrNoSnapshot indicates no list state has been saved yet
	ErrNoSnapshot = errors.New("no saved list state")

	// ErrCorruptSnapshot indicates saved list state could not be decoded
	ErrCorruptSnapshot = errors.New("saved list state is corrupt")
)
