package shared

import "fmt"

var (
	// Configuration errors
	ErrMissingConfig      = fmt.Errorf("configuration not found")
	ErrInvalidConfig      = fmt.Errorf("invalid configuration")
	ErrMissingCredentials = fmt.Errorf("missing credentials")

	// Authentication errors
	ErrAuthFailed     = fmt.Errorf("authentication failed")
	ErrNoRefreshToken = fmt.Errorf("no refresh token available")

	// Upstream API errors
	ErrAPIRequest = fmt.Errorf("API request failed")

	// Storage errors
	ErrStorage            = fmt.Errorf("storage operation failed")
	ErrNotFound           = fmt.Errorf("not found")
	ErrDuplicateExclusion = fmt.Errorf("artist already excluded")
	ErrStaleProgress      = fmt.Errorf("search progress already advanced")

	// Input validation errors
	ErrInvalidInput = fmt.Errorf("invalid input")
)
