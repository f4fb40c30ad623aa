package pipeline

// RunStats tracks aggregate counters and pixel totals across a batch run.
// It is owned and mutated only by the collector; workers report results over
// a channel and never touch it.
type RunStats struct {
	Total   int // Files discovered.
	Current int // Results collected so far.
	Masked  int
	Skipped int
	Failed  int

	QualifyingPixels int64 // Sum of per-image qualifying-pixel counts.
	TotalPixels      int64 // Sum of pixel counts of successfully masked images.

	TotalInputBytes  int64
	TotalOutputBytes int64
}

// CoverageFraction returns the batch-wide share of pixels that qualified,
// in [0, 1]. Zero when nothing was masked.
func (s *RunStats) CoverageFraction() float64 {
	if s.TotalPixels == 0 {
		return 0
	}
	return float64(s.QualifyingPixels) / float64(s.TotalPixels)
}
