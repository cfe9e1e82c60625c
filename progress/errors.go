package progress

import "errors"

// Configuration errors, returned by the reporter constructors.
var (
	ErrNoExpectedItems   = errors.New("nothing to do: expected items must be greater than 0")
	ErrNilComponent      = errors.New("a component is required to display progress")
	ErrNoWorkloads       = errors.New("add some workloads to display progress")
	ErrDuplicateWorkload = errors.New("workload already set up")
)

// Lifecycle errors, returned when reporter methods are called out of order.
var (
	ErrNotStarted   = errors.New("reporting not started, call Start first")
	ErrStillRunning = errors.New("reporting is still in progress")
	ErrDisposed     = errors.New("reporter already disposed")
)
