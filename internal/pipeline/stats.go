package pipeline

import "time"

// RunStats tracks aggregate counters across a batch run.
type RunStats struct {
	Total       int // Names handed to Run.
	Parsed      int // Names parsed before the run ended.
	Untitled    int // Parsed names that produced an empty title.
	Renamed     int // Planned output file names that differ from the input's.
	Interrupted bool
	Elapsed     time.Duration
}

// Skipped returns how many names were never parsed because the run was
// interrupted.
func (s *RunStats) Skipped() int {
	return s.Total - s.Parsed
}
