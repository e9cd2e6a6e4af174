// Package sink manages the append-only output files a run writes blocks to.
//
// Sinks are opened on first write and held open until Close, so repeated
// appends to the same destination stay cheap across blocks and source files.
// Appends are serialized per registry, keeping a block's lines contiguous
// even if callers ever process source files in parallel.
package sink

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/arthur-debert/logsieve/pkg/block"
	"github.com/arthur-debert/logsieve/pkg/errors"
	"github.com/arthur-debert/logsieve/pkg/logging"
	"github.com/rs/zerolog"
)

// Registry owns every output file under a single output directory. Names are
// plain file names; the registry joins them onto its directory.
type Registry struct {
	dir    string
	mu     sync.Mutex
	files  map[string]*os.File
	logger zerolog.Logger
}

// NewRegistry creates the output directory if needed and returns a registry
// rooted at it.
func NewRegistry(dir string) (*Registry, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errors.Wrapf(err, errors.ErrDirCreate,
			"cannot create output directory %s", dir)
	}
	return &Registry{
		dir:    dir,
		files:  make(map[string]*os.File),
		logger: logging.GetLogger("sink.registry"),
	}, nil
}

// Dir returns the output directory the registry writes under.
func (r *Registry) Dir() string {
	return r.dir
}

// Append writes the block's lines verbatim, in order, to the named sink,
// opening it in append mode on first use. The sink is never truncated or
// reordered after creation.
func (r *Registry) Append(name string, blk *block.Block) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	f, err := r.open(name, os.O_CREATE|os.O_APPEND|os.O_WRONLY)
	if err != nil {
		return err
	}
	if _, err := blk.WriteTo(f); err != nil {
		return errors.Wrapf(err, errors.ErrSinkWrite,
			"cannot write block to %s", name).
			WithDetail("sink", name).
			WithDetail("firstLine", blk.FirstLineNum())
	}
	return nil
}

// Reset opens the named sink fresh, truncating any previous content. The
// prune command uses it so each run produces a clean transform of the source;
// split never calls it.
func (r *Registry) Reset(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if f, ok := r.files[name]; ok {
		// Already open this run: start over in place.
		if err := f.Truncate(0); err != nil {
			return errors.Wrapf(err, errors.ErrSinkOpen, "cannot reset sink %s", name)
		}
		if _, err := f.Seek(0, 0); err != nil {
			return errors.Wrapf(err, errors.ErrSinkOpen, "cannot reset sink %s", name)
		}
		return nil
	}
	_, err := r.open(name, os.O_CREATE|os.O_TRUNC|os.O_WRONLY)
	return err
}

// open returns the cached handle for name or opens it with the given flags.
// Callers must hold r.mu.
func (r *Registry) open(name string, flags int) (*os.File, error) {
	if f, ok := r.files[name]; ok {
		return f, nil
	}
	path := filepath.Join(r.dir, name)
	f, err := os.OpenFile(path, flags, 0644)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrSinkOpen,
			"cannot open sink %s", path).
			WithDetail("sink", name)
	}
	r.files[name] = f
	r.logger.Debug().Str("sink", name).Str("path", path).Msg("Sink opened")
	return f, nil
}

// Close closes every open sink. It is safe on all exit paths; the first close
// error is returned after all sinks have been closed.
func (r *Registry) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var firstErr error
	for name, f := range r.files {
		if err := f.Close(); err != nil && firstErr == nil {
			firstErr = errors.Wrapf(err, errors.ErrSinkWrite, "cannot close sink %s", name)
		}
		delete(r.files, name)
	}
	r.logger.Debug().Msg("All sinks closed")
	return firstErr
}

// FallbackName returns the per-source unmatched sink name for a source file.
func FallbackName(source string) string {
	return source + "_unmatched.log"
}
