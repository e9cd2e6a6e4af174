package runner

import (
	"os"
	"path/filepath"

	"github.com/arthur-debert/logsieve/pkg/block"
	"github.com/arthur-debert/logsieve/pkg/errors"
	"github.com/arthur-debert/logsieve/pkg/logging"
	"github.com/arthur-debert/logsieve/pkg/rules"
	"github.com/arthur-debert/logsieve/pkg/sink"
	"github.com/rs/zerolog"
)

// Pruner writes a transformed copy of each source file to the output
// directory, dropping every block that contains a line matching the removal
// patterns. Blocks are removed whole; a block with no matching line is
// written verbatim and completely.
type Pruner struct {
	list   *rules.PruneList
	sinks  *sink.Registry
	logger zerolog.Logger
}

// NewPruner creates a pruner over an already compiled removal pattern list.
func NewPruner(list *rules.PruneList, sinks *sink.Registry) *Pruner {
	return &Pruner{
		list:   list,
		sinks:  sinks,
		logger: logging.GetLogger("runner.pruner"),
	}
}

// Run processes the given source files in order and returns the aggregated
// report. Per-file failures are recorded in the report, not returned.
func (p *Pruner) Run(sourceDir string, files []string) *PruneReport {
	done := logging.LogOperationStart(p.logger, "prune run")
	defer done()

	report := &PruneReport{}
	for _, name := range files {
		stats, err := p.processFile(sourceDir, name)
		if err != nil {
			p.logger.Error().Err(err).Str("file", name).Msg("Source file skipped")
			report.Skipped++
		} else {
			report.Processed++
			report.Totals.add(stats)
		}
		report.Files = append(report.Files, PruneFileResult{Name: name, Stats: stats, Err: err})
	}
	return report
}

func (p *Pruner) processFile(dir, name string) (PruneStats, error) {
	f, err := os.Open(filepath.Join(dir, name))
	if err != nil {
		return PruneStats{}, errors.Wrapf(err, errors.ErrSourceAccess,
			"cannot open source file %s", name)
	}
	defer func() { _ = f.Close() }()

	// The primary output is a fresh transform of the source on every run.
	if err := p.sinks.Reset(name); err != nil {
		return PruneStats{}, err
	}

	stats := PruneStats{}
	seg := block.NewSegmenter()

	dispatch := func(blk *block.Block) {
		if blk == nil {
			return
		}
		stats.BlocksProcessed++

		if p.blockMatches(blk) {
			stats.BlocksRemoved++
			stats.LinesRemoved += blk.LineCount()
			p.logger.Debug().
				Str("file", name).
				Int("firstLine", blk.FirstLineNum()).
				Int("lines", blk.LineCount()).
				Msg("Block removed")
			return
		}
		if err := p.sinks.Append(name, blk); err != nil {
			p.logger.Error().Err(err).
				Str("file", name).
				Int("firstLine", blk.FirstLineNum()).
				Msg("Block write skipped")
		}
	}

	err = block.ReadLines(f, func(line block.Line) error {
		stats.LinesRead++
		dispatch(seg.Feed(line))
		return nil
	})
	if err != nil {
		return stats, errors.Wrapf(err, errors.ErrSourceRead,
			"read failed on source file %s", name)
	}
	dispatch(seg.Flush())

	p.logger.Info().
		Str("file", name).
		Int("linesRead", stats.LinesRead).
		Int("linesRemoved", stats.LinesRemoved).
		Int("blocksRemoved", stats.BlocksRemoved).
		Msg("Source file pruned")
	return stats, nil
}

// blockMatches reports whether any line of the block triggers removal.
func (p *Pruner) blockMatches(blk *block.Block) bool {
	for _, line := range blk.Lines {
		if p.list.Matches(line.Text) {
			return true
		}
	}
	return false
}
