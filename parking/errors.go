package parking

import "errors"

// ErrNoSpaceAvailable is returned when no slot satisfies a booking request.
var ErrNoSpaceAvailable = errors.New("no space available")

// ErrInvalidDay is returned for a day outside the two-week horizon.
var ErrInvalidDay = errors.New("invalid day")
