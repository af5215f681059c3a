package source

import "errors"

// Sentinel errors for player ingestion.
var (
	// ErrMalformedSource is returned when a payload cannot be turned into players.
	ErrMalformedSource = errors.New("malformed player source")
	// ErrSourceUnavailable is returned when the backing file, endpoint or
	// database cannot be read.
	ErrSourceUnavailable = errors.New("player source unavailable")
)
