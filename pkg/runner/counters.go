package runner

// SplitStats counts one split run's blocks, per file or aggregated.
type SplitStats struct {
	BlocksRead      int // blocks emitted by the segmenter
	BlocksExtracted int // blocks routed to at least one destination
	BlocksUnmatched int // blocks sent to the per-source unmatched file
}

func (s *SplitStats) add(o SplitStats) {
	s.BlocksRead += o.BlocksRead
	s.BlocksExtracted += o.BlocksExtracted
	s.BlocksUnmatched += o.BlocksUnmatched
}

// PruneStats counts one prune run's lines and blocks, per file or aggregated.
type PruneStats struct {
	LinesRead       int
	LinesRemoved    int
	BlocksProcessed int
	BlocksRemoved   int
}

func (s *PruneStats) add(o PruneStats) {
	s.LinesRead += o.LinesRead
	s.LinesRemoved += o.LinesRemoved
	s.BlocksProcessed += o.BlocksProcessed
	s.BlocksRemoved += o.BlocksRemoved
}

// BlocksRemainedPercent returns the share of blocks that survived pruning.
func (s PruneStats) BlocksRemainedPercent() float64 {
	if s.BlocksProcessed == 0 {
		return 0
	}
	return float64(s.BlocksProcessed-s.BlocksRemoved) / float64(s.BlocksProcessed) * 100
}

// LinesRemainedPercent returns the share of lines that survived pruning.
func (s PruneStats) LinesRemainedPercent() float64 {
	if s.LinesRead == 0 {
		return 0
	}
	return float64(s.LinesRead-s.LinesRemoved) / float64(s.LinesRead) * 100
}

// SplitFileResult is the outcome for one source file of a split run. Err is
// set when the file was skipped (unreadable or read failure mid-stream).
type SplitFileResult struct {
	Name  string
	Stats SplitStats
	Err   error
}

// SplitReport aggregates a whole split run.
type SplitReport struct {
	Files     []SplitFileResult
	Totals    SplitStats
	Processed int
	Skipped   int
}

// PruneFileResult is the outcome for one source file of a prune run.
type PruneFileResult struct {
	Name  string
	Stats PruneStats
	Err   error
}

// PruneReport aggregates a whole prune run.
type PruneReport struct {
	Files     []PruneFileResult
	Totals    PruneStats
	Processed int
	Skipped   int
}
