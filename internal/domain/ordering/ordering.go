// Package ordering maintains the dense 1-based order field over the jobs
// collection. Plan is pure; the caller applies the resulting placements
// inside a single store transaction so orders stay exactly {1..N} with no
// gaps or duplicates after every move.
package ordering

import "errors"

// ErrUnknownID is returned when the moving id is not in the sequence.
var ErrUnknownID = errors.New("id not in sequence")

// Placement assigns a job its new order.
type Placement struct {
	ID    string
	Order int
}

// Clamp bounds a requested 1-based position to [1, n]. Out-of-range
// targets are clamped, never rejected.
func Clamp(pos, n int) int {
	if pos < 1 {
		return 1
	}
	if pos > n {
		return n
	}
	return pos
}

// Plan removes id from the order-sorted sequence, reinserts it at the
// clamped target position, and renumbers every entry densely from 1. The
// returned placements cover the whole sequence.
func Plan(sorted []string, id string, target int) ([]Placement, error) {
	idx := -1
	for i, s := range sorted {
		if s == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, ErrUnknownID
	}

	rest := make([]string, 0, len(sorted))
	rest = append(rest, sorted[:idx]...)
	rest = append(rest, sorted[idx+1:]...)

	at := Clamp(target, len(sorted)) - 1
	resequenced := make([]string, 0, len(sorted))
	resequenced = append(resequenced, rest[:at]...)
	resequenced = append(resequenced, id)
	resequenced = append(resequenced, rest[at:]...)

	placements := make([]Placement, len(resequenced))
	for i, s := range resequenced {
		placements[i] = Placement{ID: s, Order: i + 1}
	}
	return placements, nil
}
