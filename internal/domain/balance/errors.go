package balance

import "errors"

// Sentinel error kinds for this package.
var (
	// ErrInvalidRequest marks user-correctable request problems such as a
	// non-positive squad count or too few players.
	ErrInvalidRequest = errors.New("invalid request")

	// ErrUnknownStrategy is returned by New for unregistered strategy names.
	ErrUnknownStrategy = errors.New("unknown strategy")
)
