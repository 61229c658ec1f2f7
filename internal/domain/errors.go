package domain

import "errors"

// Error taxonomy shared by the store, cache, provider and dispatch layers.
var (
	// ErrStoreUnavailable means the durable backend could not serve a request.
	ErrStoreUnavailable = errors.New("store unavailable")
	// ErrProviderFailure covers network, timeout and quota failures of the translation provider.
	ErrProviderFailure = errors.New("translation provider failure")
	// ErrInvalidInput is returned for empty text or unknown language codes.
	ErrInvalidInput = errors.New("invalid input")
	// ErrRateLimited means a cooldown is active.
	ErrRateLimited = errors.New("rate limited")
)
