package scale

import (
	"errors"
	"math"
)

// ErrReferenceNotFound is returned when the anchor or target entry is
// missing from its table at compute time (e.g. a stale reference after
// deletion). Callers substitute FallbackBounds so rendering never halts.
var ErrReferenceNotFound = errors.New("entry reference not found in table")

// FallbackBounds stands in for an entry whose scale position cannot be
// resolved.
var FallbackBounds = Bounds{Min: 8, Max: 12}

// Bounds is the computed (min, max) pixel pair for one entry at the min
// and max viewport edges. Values are rounded to whole pixels.
type Bounds struct {
	Min int
	Max int
}

// Ordering is the view of an entry table the scale engine needs: the
// position of an entry within the current order, and the anchor entry.
type Ordering interface {
	// IndexOf reports the position of the entry with the given id, or
	// false when no such entry exists.
	IndexOf(id int) (int, bool)
	// AnchorID returns the id of the table's base-anchor entry.
	AnchorID() int
}

// ComputeBounds derives the pixel bounds for one entry by exponential
// step-scaling away from the table's anchor. steps is the signed
// positional distance from the anchor; the anchor itself (steps = 0)
// yields the rounded base values regardless of the ratios.
//
// Rounding is half-away-from-zero in pixel space, applied to min and
// max independently, before any unit conversion. The step is lossy and
// not reversible.
func ComputeBounds(ord Ordering, targetID int, params Parameters) (Bounds, error) {
	anchorIdx, ok := ord.IndexOf(ord.AnchorID())
	if !ok {
		return Bounds{}, ErrReferenceNotFound
	}
	targetIdx, ok := ord.IndexOf(targetID)
	if !ok {
		return Bounds{}, ErrReferenceNotFound
	}

	steps := float64(targetIdx - anchorIdx)
	return Bounds{
		Min: int(math.Round(params.MinBaseValue * math.Pow(params.MinScaleRatio, steps))),
		Max: int(math.Round(params.MaxBaseValue * math.Pow(params.MaxScaleRatio, steps))),
	}, nil
}
