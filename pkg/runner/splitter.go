// Package runner drives the block pipeline over source files: stream lines,
// segment into blocks, classify, dispatch, count. Files are processed one at
// a time, lines strictly in order; a failing file is reported and skipped
// without aborting the run.
package runner

import (
	"os"
	"path/filepath"

	"github.com/arthur-debert/logsieve/pkg/block"
	"github.com/arthur-debert/logsieve/pkg/classify"
	"github.com/arthur-debert/logsieve/pkg/errors"
	"github.com/arthur-debert/logsieve/pkg/logging"
	"github.com/arthur-debert/logsieve/pkg/rules"
	"github.com/arthur-debert/logsieve/pkg/sink"
	"github.com/rs/zerolog"
)

// Splitter routes blocks from source files to the destination sinks their
// lines match, with unmatched and kept blocks going to a per-source
// unmatched file.
type Splitter struct {
	set    *rules.Set
	sinks  *sink.Registry
	logger zerolog.Logger
}

// NewSplitter creates a splitter over an already validated rule set.
func NewSplitter(set *rules.Set, sinks *sink.Registry) *Splitter {
	return &Splitter{
		set:    set,
		sinks:  sinks,
		logger: logging.GetLogger("runner.splitter"),
	}
}

// Run processes the given source files in order and returns the aggregated
// report. Per-file failures are recorded in the report, not returned.
func (s *Splitter) Run(sourceDir string, files []string) *SplitReport {
	done := logging.LogOperationStart(s.logger, "split run")
	defer done()

	report := &SplitReport{}
	for _, name := range files {
		stats, err := s.processFile(sourceDir, name)
		if err != nil {
			s.logger.Error().Err(err).Str("file", name).Msg("Source file skipped")
			report.Skipped++
		} else {
			report.Processed++
			report.Totals.add(stats)
		}
		report.Files = append(report.Files, SplitFileResult{Name: name, Stats: stats, Err: err})
	}
	return report
}

// processFile streams one source file through the segmenter, classifying and
// dispatching each block as soon as it closes. Only the current block is held
// in memory.
func (s *Splitter) processFile(dir, name string) (SplitStats, error) {
	f, err := os.Open(filepath.Join(dir, name))
	if err != nil {
		return SplitStats{}, errors.Wrapf(err, errors.ErrSourceAccess,
			"cannot open source file %s", name)
	}
	defer func() { _ = f.Close() }()

	stats := SplitStats{}
	seg := block.NewSegmenter()
	fallback := sink.FallbackName(name)

	dispatch := func(blk *block.Block) {
		if blk == nil {
			return
		}
		stats.BlocksRead++

		decision := classify.Classify(blk, s.set)
		if decision.Routed() {
			stats.BlocksExtracted++
		}
		for _, dest := range decision.Destinations {
			if err := s.sinks.Append(dest, blk); err != nil {
				// Skip this write, keep going with the other destinations.
				s.logger.Error().Err(err).
					Str("file", name).
					Str("sink", dest).
					Int("firstLine", blk.FirstLineNum()).
					Msg("Block write skipped")
			}
		}
		if decision.Fallback {
			stats.BlocksUnmatched++
			if err := s.sinks.Append(fallback, blk); err != nil {
				s.logger.Error().Err(err).
					Str("file", name).
					Str("sink", fallback).
					Msg("Fallback write skipped")
			}
		}
	}

	err = block.ReadLines(f, func(line block.Line) error {
		dispatch(seg.Feed(line))
		return nil
	})
	if err != nil {
		return stats, errors.Wrapf(err, errors.ErrSourceRead,
			"read failed on source file %s", name)
	}
	dispatch(seg.Flush())

	s.logger.Info().
		Str("file", name).
		Int("blocksRead", stats.BlocksRead).
		Int("blocksExtracted", stats.BlocksExtracted).
		Int("blocksUnmatched", stats.BlocksUnmatched).
		Msg("Source file split")
	return stats, nil
}
