package block

import (
	"github.com/arthur-debert/logsieve/pkg/logging"
	"github.com/rs/zerolog"
)

// Segmenter accumulates lines into blocks. Feed it one line at a time in file
// order, then call Flush exactly once at end of stream. Every line fed ends up
// in exactly one emitted block.
type Segmenter struct {
	current *Block
	emitted int
	logger  zerolog.Logger
}

// NewSegmenter creates a segmenter for a single source file. Segmenters are
// not reusable across files; create a fresh one per stream.
func NewSegmenter() *Segmenter {
	return &Segmenter{
		logger: logging.GetLogger("block.segmenter"),
	}
}

// Feed consumes the next line. When the line opens a new block and a block is
// already in progress, the finished block is returned; otherwise nil.
//
// A file whose first line is a continuation line (no leading stamp) still
// opens a block for the initial run of continuation lines.
func (s *Segmenter) Feed(line Line) *Block {
	if IsBlockStart(line.Text) {
		closed := s.current
		s.current = &Block{Lines: []Line{line}}
		if closed != nil {
			s.emitted++
			s.logger.Trace().
				Int("firstLine", closed.FirstLineNum()).
				Int("lines", closed.LineCount()).
				Msg("Block closed")
		}
		return closed
	}

	if s.current == nil {
		s.current = &Block{}
	}
	s.current.Lines = append(s.current.Lines, line)
	return nil
}

// Flush closes and returns the in-progress block at end of stream, or nil if
// the stream was empty. Call it exactly once, after the last Feed.
func (s *Segmenter) Flush() *Block {
	closed := s.current
	s.current = nil
	if closed != nil {
		s.emitted++
	}
	s.logger.Debug().Int("blocks", s.emitted).Msg("Stream segmented")
	return closed
}
