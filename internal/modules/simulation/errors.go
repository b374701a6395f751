package simulation

import "errors"

// ErrInvalidArgument is returned when a caller passes a non-positive count,
// an out-of-range bit value, or mismatched sequence lengths.
// Handlers map it to HTTP 400 via errors.Is.
var ErrInvalidArgument = errors.New("invalid argument")
