package config

import (
	"bufio"
	"os"
	"strings"

	"github.com/arthur-debert/logsieve/pkg/errors"
	"github.com/arthur-debert/logsieve/pkg/logging"
	"github.com/arthur-debert/logsieve/pkg/rules"
)

// LoadPruneFile reads a removal pattern file, one regular expression per
// line. Blank lines and lines starting with '#' are ignored. The result is a
// compiled PruneList; an invalid pattern is fatal before any file is touched.
func LoadPruneFile(path string) (*rules.PruneList, error) {
	logger := logging.GetLogger("config")

	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigLoad,
			"cannot read pattern file %s", path)
	}
	defer func() { _ = f.Close() }()

	var patterns []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		patterns = append(patterns, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigLoad,
			"cannot read pattern file %s", path)
	}

	list, err := rules.NewPruneList(patterns)
	if err != nil {
		return nil, err
	}

	logger.Debug().
		Str("path", path).
		Int("patterns", len(patterns)).
		Msg("Removal patterns loaded")
	return list, nil
}
