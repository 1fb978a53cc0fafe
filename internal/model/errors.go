package model

import "errors"

// ErrAddressNotFound reports an agent identifier with no known chain
// address. Fatal for that agent's computation.
var ErrAddressNotFound = errors.New("agent address not found")

// ErrNoData reports degenerate analysis input (all-zero totals, empty
// position lists). Analyzers return it instead of panicking; callers branch
// on it and carry an error message in the affected profile section.
var ErrNoData = errors.New("insufficient data for analysis")
