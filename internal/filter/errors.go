package filter

import (
	"errors"
	"fmt"
)

// ErrEmptyCategory reports that no record anywhere in the dataset carries a
// category label. Fatal for the cycle: rendering halts with a user-visible
// warning instead of proceeding with an undefined selection.
var ErrEmptyCategory = errors.New("no categories found in the data")

// ErrEmptyFilterResult reports that the current selection matches zero
// records. Non-fatal: the map and table render as "no data" while the
// filter-independent aggregates still display.
var ErrEmptyFilterResult = errors.New("no data available for the selected filters")

// ErrInvalidSelection marks a selection value absent from its cascading
// option list.
var ErrInvalidSelection = errors.New("invalid filter selection")

func invalid(level, value string) error {
	return fmt.Errorf("%w: unknown %s %q", ErrInvalidSelection, level, value)
}
