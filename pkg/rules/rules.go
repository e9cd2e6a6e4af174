// Package rules defines the compiled rule set the classifier runs blocks
// against. A set maps destination file names to pattern lists; the config
// loader in pkg/config produces the normalized shape, this package compiles
// and validates it. A set that reaches the classifier is always valid.
package rules

import (
	"regexp"
	"sort"

	"github.com/arthur-debert/logsieve/pkg/errors"
)

// Rule is a single compiled pattern belonging to a destination. Keep marks
// blocks matched by this rule for the per-source unmatched file as well.
type Rule struct {
	Pattern string
	Keep    bool
	re      *regexp.Regexp
}

// Matches reports whether the rule's pattern occurs anywhere in the line text.
func (r *Rule) Matches(text string) bool {
	return r.re.MatchString(text)
}

// Destination is a named output file and the ordered rules that claim blocks
// for it. KeepAllBlocks routes every claimed block to the unmatched file too,
// regardless of which rule matched.
type Destination struct {
	Name          string
	Rules         []Rule
	KeepAllBlocks bool
}

// Set is the full rule set for a split run, keyed by destination name.
type Set struct {
	Destinations []Destination
}

// RuleSpec is the normalized, uncompiled form of a rule as the config loader
// emits it.
type RuleSpec struct {
	Pattern string
	Keep    bool
}

// DestinationSpec is the normalized, uncompiled form of a destination.
type DestinationSpec struct {
	Name          string
	Rules         []RuleSpec
	KeepAllBlocks bool
}

// Compile builds a Set from normalized specs, compiling every pattern.
// Destinations are ordered by name so iteration is deterministic. A single
// invalid pattern fails the whole set.
func Compile(specs []DestinationSpec) (*Set, error) {
	set := &Set{}
	for _, spec := range specs {
		dest := Destination{
			Name:          spec.Name,
			KeepAllBlocks: spec.KeepAllBlocks,
		}
		for _, rs := range spec.Rules {
			re, err := regexp.Compile(rs.Pattern)
			if err != nil {
				return nil, errors.Wrapf(err, errors.ErrPatternInvalid,
					"invalid pattern %q for destination %q", rs.Pattern, spec.Name).
					WithDetail("destination", spec.Name).
					WithDetail("pattern", rs.Pattern)
			}
			dest.Rules = append(dest.Rules, Rule{Pattern: rs.Pattern, Keep: rs.Keep, re: re})
		}
		set.Destinations = append(set.Destinations, dest)
	}
	sort.Slice(set.Destinations, func(i, j int) bool {
		return set.Destinations[i].Name < set.Destinations[j].Name
	})
	return set, nil
}

// Empty reports whether the set has no destinations at all.
func (s *Set) Empty() bool {
	return len(s.Destinations) == 0
}

// Names returns the destination names in iteration order.
func (s *Set) Names() []string {
	names := make([]string, 0, len(s.Destinations))
	for _, d := range s.Destinations {
		names = append(names, d.Name)
	}
	return names
}

// RuleCount returns the total number of rules across all destinations.
func (s *Set) RuleCount() int {
	n := 0
	for _, d := range s.Destinations {
		n += len(d.Rules)
	}
	return n
}
