package scoring

import "errors"

// Sentinel error kinds for this package.
var (
	ErrNoPlayers = errors.New("no players to score")
)
