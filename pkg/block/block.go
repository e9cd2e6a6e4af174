// Package block turns a stream of log lines into timestamp-delimited blocks.
//
// A block opens at a line carrying a leading [HH:MM:SS,mmm] stamp and runs
// until the line before the next stamp. Blocks are the unit every other
// package operates on: they are classified and dispatched whole, never split.
package block

import (
	"bufio"
	"io"
	"regexp"
)

// blockStampPattern matches the timestamp that opens a log block, e.g. [10:48:42,953]
var blockStampPattern = regexp.MustCompile(`^\[\d{2}:\d{2}:\d{2},\d{3}\]`)

// IsBlockStart reports whether the line text opens a new block.
// Lines that do not match are continuation lines of the current block.
func IsBlockStart(text string) bool {
	return blockStampPattern.MatchString(text)
}

// Line is a single verbatim record from a source file, including its original
// line terminator. Num is the 1-based ordinal within the file.
type Line struct {
	Num  int
	Text string
}

// Block is an ordered, non-empty run of consecutive lines. Except for a block
// opening mid-stream at the top of a file, the first line carries the stamp
// and no interior line does.
type Block struct {
	Lines []Line
}

// LineCount returns the number of lines in the block.
func (b *Block) LineCount() int {
	return len(b.Lines)
}

// FirstLineNum returns the ordinal of the block's first line, or 0 for an
// empty block.
func (b *Block) FirstLineNum() int {
	if len(b.Lines) == 0 {
		return 0
	}
	return b.Lines[0].Num
}

// WriteTo appends the block's lines verbatim, in order, to w.
func (b *Block) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for _, line := range b.Lines {
		n, err := io.WriteString(w, line.Text)
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// ReadLines streams r line by line, preserving line terminators, and calls fn
// for each line with its 1-based ordinal. A final line without a trailing
// newline is delivered as-is, so concatenating all lines reproduces the input
// byte for byte.
func ReadLines(r io.Reader, fn func(Line) error) error {
	br := bufio.NewReader(r)
	num := 0
	for {
		text, err := br.ReadString('\n')
		if text != "" {
			num++
			if ferr := fn(Line{Num: num, Text: text}); ferr != nil {
				return ferr
			}
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
	}
}
