// Package percentile computes nearest-rank percentile boundaries over a run's
// captured values and classifies individual values against them.
package percentile

import (
	"sort"
)

// Band is the percentile band assigned to a captured value.
type Band int

const (
	// Unclassified is used for non-matching lines and for runs without samples.
	Unclassified Band = iota
	BelowP50
	P50
	P90
	P99
)

// String returns the band name.
func (b Band) String() string {
	switch b {
	case BelowP50:
		return "below_p50"
	case P50:
		return "p50"
	case P90:
		return "p90"
	case P99:
		return "p99"
	default:
		return "unclassified"
	}
}

// Boundaries holds the p50, p90 and p99 thresholds for a run.
// The zero value is unset and classifies everything as Unclassified.
type Boundaries struct {
	P50 uint64
	P90 uint64
	P99 uint64

	set bool
}

// IsSet reports whether the boundaries were computed from at least one value.
func (b Boundaries) IsSet() bool {
	return b.set
}

// Compute returns the nearest-rank boundaries of values.
// The slice is not modified. Duplicates are ranked like any other value.
func Compute(values []uint64) Boundaries {
	if len(values) == 0 {
		return Boundaries{}
	}

	sorted := sortedCopy(values)
	return Boundaries{
		P50: rank(sorted, 50),
		P90: rank(sorted, 90),
		P99: rank(sorted, 99),
		set: true,
	}
}

// Classify assigns v to the highest band whose boundary it reaches.
// Bands are checked from P99 down, so collapsed boundaries resolve upward.
func Classify(v uint64, b Boundaries) Band {
	if !b.set {
		return Unclassified
	}

	switch {
	case v >= b.P99:
		return P99
	case v >= b.P90:
		return P90
	case v >= b.P50:
		return P50
	default:
		return BelowP50
	}
}

// rank returns the value at the p-th percentile of an ascending, non-empty
// slice using index floor(p/100 * (n-1)). p is clamped to [0, 100].
func rank(sorted []uint64, p int) uint64 {
	if p < 0 {
		p = 0
	}
	if p > 100 {
		p = 100
	}
	// integer math keeps the index exact for every n
	idx := p * (len(sorted) - 1) / 100
	return sorted[idx]
}

func sortedCopy(values []uint64) []uint64 {
	sorted := make([]uint64, len(values))
	copy(sorted, values)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	return sorted
}
