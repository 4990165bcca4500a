package percentile

// Stats summarizes the captured values of a run.
type Stats struct {
	// Samples is the number of captured values.
	Samples int

	// Min and Max are the smallest and largest captured values.
	Min uint64
	Max uint64

	// Boundaries are the p50/p90/p99 thresholds.
	Boundaries Boundaries
}

// Summarize computes Stats for values. An empty input yields zero Stats
// with unset boundaries.
func Summarize(values []uint64) Stats {
	if len(values) == 0 {
		return Stats{}
	}

	sorted := sortedCopy(values)
	return Stats{
		Samples: len(sorted),
		Min:     sorted[0],
		Max:     sorted[len(sorted)-1],
		Boundaries: Boundaries{
			P50: rank(sorted, 50),
			P90: rank(sorted, 90),
			P99: rank(sorted, 99),
			set: true,
		},
	}
}
