// Package discovery selects the source files a run processes: regular files
// in one directory whose names match a caller-supplied expression, in sorted
// order so runs are reproducible.
package discovery

import (
	"os"
	"regexp"
	"sort"

	"github.com/arthur-debert/logsieve/pkg/errors"
	"github.com/arthur-debert/logsieve/pkg/logging"
)

// FindFiles returns the names of regular files in dir whose names match the
// namePattern regular expression, sorted alphabetically. An empty result is
// not an error; a pattern that does not compile is a configuration error.
func FindFiles(dir, namePattern string) ([]string, error) {
	logger := logging.GetLogger("discovery")

	re, err := regexp.Compile(namePattern)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrPatternInvalid,
			"invalid file name pattern %q", namePattern)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrSourceAccess,
			"cannot list directory %s", dir)
	}

	var matched []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if re.MatchString(entry.Name()) {
			matched = append(matched, entry.Name())
		}
	}
	sort.Strings(matched)

	logger.Debug().
		Str("dir", dir).
		Str("pattern", namePattern).
		Int("matched", len(matched)).
		Msg("Source files discovered")
	return matched, nil
}
