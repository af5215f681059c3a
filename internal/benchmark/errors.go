package benchmark

import "errors"

// Sentinel error kinds for this package.
var (
	// ErrNoSquads is returned when variance is requested for an empty result.
	ErrNoSquads = errors.New("no squads to compare")

	// ErrNoExperiments is returned by Run when there is nothing to run.
	ErrNoExperiments = errors.New("no experiments")
)
