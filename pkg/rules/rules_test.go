// Test Type: Unit Test
// Description: Tests for the rules package - rule set compilation and matching

package rules_test

import (
	"testing"

	"github.com/arthur-debert/logsieve/pkg/errors"
	"github.com/arthur-debert/logsieve/pkg/rules"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompile(t *testing.T) {
	t.Run("compiles_valid_set", func(t *testing.T) {
		set, err := rules.Compile([]rules.DestinationSpec{
			{
				Name: "errors.log",
				Rules: []rules.RuleSpec{
					{Pattern: "ERROR"},
					{Pattern: "fatal", Keep: true},
				},
			},
			{
				Name:          "audit.log",
				Rules:         []rules.RuleSpec{{Pattern: "^AUDIT:"}},
				KeepAllBlocks: true,
			},
		})
		require.NoError(t, err)

		assert.Equal(t, 3, set.RuleCount())
		assert.False(t, set.Empty())
		// Destinations are ordered by name for deterministic iteration.
		assert.Equal(t, []string{"audit.log", "errors.log"}, set.Names())
		assert.True(t, set.Destinations[0].KeepAllBlocks)
		assert.True(t, set.Destinations[1].Rules[1].Keep)
	})

	t.Run("invalid_pattern_fails_whole_set", func(t *testing.T) {
		_, err := rules.Compile([]rules.DestinationSpec{
			{Name: "a.log", Rules: []rules.RuleSpec{{Pattern: "fine"}}},
			{Name: "b.log", Rules: []rules.RuleSpec{{Pattern: "(unclosed"}}},
		})
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrPatternInvalid))
		assert.Contains(t, err.Error(), "b.log")
	})

	t.Run("empty_set_is_valid", func(t *testing.T) {
		set, err := rules.Compile(nil)
		require.NoError(t, err)
		assert.True(t, set.Empty())
		assert.Empty(t, set.Names())
	})

	t.Run("rule_matching_is_unanchored", func(t *testing.T) {
		set, err := rules.Compile([]rules.DestinationSpec{
			{Name: "net.log", Rules: []rules.RuleSpec{{Pattern: "Connection refused"}}},
		})
		require.NoError(t, err)

		rule := set.Destinations[0].Rules[0]
		assert.True(t, rule.Matches("[10:00:00,000] upstream: Connection refused by peer\n"))
		assert.False(t, rule.Matches("[10:00:00,000] connection established\n"))
	})
}

func TestNewPruneList(t *testing.T) {
	t.Run("matches_any_pattern", func(t *testing.T) {
		list, err := rules.NewPruneList([]string{"error|warning", "^DEBUG"})
		require.NoError(t, err)

		assert.True(t, list.Matches("a warning occurred\n"))
		assert.True(t, list.Matches("DEBUG enter loop\n"))
		assert.False(t, list.Matches("all quiet\n"))
		assert.False(t, list.Empty())
	})

	t.Run("empty_list_matches_nothing", func(t *testing.T) {
		list, err := rules.NewPruneList(nil)
		require.NoError(t, err)
		assert.True(t, list.Empty())
		assert.False(t, list.Matches("error everywhere\n"))
	})

	t.Run("invalid_pattern_is_named_in_error", func(t *testing.T) {
		_, err := rules.NewPruneList([]string{"ok", "[broken"})
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrPatternInvalid))
		assert.Contains(t, err.Error(), "[broken")
	})
}
