package rules

import (
	"regexp"
	"strings"

	"github.com/arthur-debert/logsieve/pkg/errors"
)

// PruneList is the removal rule set for a prune run. A block is dropped from
// the primary output when any of its lines matches any pattern. The patterns
// compile into a single alternation, matching the way the original tool
// evaluates them.
type PruneList struct {
	Patterns []string
	re       *regexp.Regexp
}

// NewPruneList compiles the given patterns. An empty list is valid and
// matches nothing: no block will ever be removed.
func NewPruneList(patterns []string) (*PruneList, error) {
	list := &PruneList{Patterns: patterns}
	if len(patterns) == 0 {
		return list, nil
	}

	// Validate each pattern on its own first so the error names the culprit.
	alts := make([]string, 0, len(patterns))
	for _, p := range patterns {
		if _, err := regexp.Compile(p); err != nil {
			return nil, errors.Wrapf(err, errors.ErrPatternInvalid,
				"invalid removal pattern %q", p).
				WithDetail("pattern", p)
		}
		alts = append(alts, "("+p+")")
	}

	combined, err := regexp.Compile(strings.Join(alts, "|"))
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrPatternInvalid,
			"removal patterns do not combine into a valid expression")
	}
	list.re = combined
	return list, nil
}

// Matches reports whether the line text triggers block removal.
func (p *PruneList) Matches(text string) bool {
	return p.re != nil && p.re.MatchString(text)
}

// Empty reports whether the list carries no patterns.
func (p *PruneList) Empty() bool {
	return len(p.Patterns) == 0
}
