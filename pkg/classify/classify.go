// Package classify decides, per block, which destinations claim it and
// whether it also belongs in the per-source unmatched file.
package classify

import (
	"sort"

	"github.com/arthur-debert/logsieve/pkg/block"
	"github.com/arthur-debert/logsieve/pkg/rules"
)

// Decision is the classification outcome for a single block. It is consumed
// by the dispatcher and discarded; blocks carry no classification state.
type Decision struct {
	// Destinations holds the names of every destination claimed by the
	// block, sorted for deterministic dispatch order.
	Destinations []string

	// Fallback is true when the block also goes to the per-source unmatched
	// file: nothing claimed it, a matching rule had keep set, or a claiming
	// destination keeps all blocks.
	Fallback bool
}

// Routed reports whether at least one destination claimed the block.
func (d Decision) Routed() bool {
	return len(d.Destinations) > 0
}

// Classify evaluates every rule of every destination against the block's
// lines. A destination is claimed when any of its rules matches any line.
//
// Every rule is evaluated (scanning stops at its first matching line), so the
// keep flags of all matching rules are honored and the outcome is independent
// of destination and rule iteration order.
func Classify(blk *block.Block, set *rules.Set) Decision {
	decision := Decision{}

	for i := range set.Destinations {
		dest := &set.Destinations[i]
		claimed := false
		for j := range dest.Rules {
			rule := &dest.Rules[j]
			for _, line := range blk.Lines {
				if rule.Matches(line.Text) {
					claimed = true
					if rule.Keep {
						decision.Fallback = true
					}
					break
				}
			}
		}
		if claimed {
			decision.Destinations = append(decision.Destinations, dest.Name)
			if dest.KeepAllBlocks {
				decision.Fallback = true
			}
		}
	}

	if len(decision.Destinations) == 0 {
		decision.Fallback = true
	}
	sort.Strings(decision.Destinations)
	return decision
}
