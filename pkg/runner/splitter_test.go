// Test Type: Integration Test
// Description: Tests for the split runner - end-to-end block routing over real files

package runner_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/logsieve/pkg/rules"
	"github.com/arthur-debert/logsieve/pkg/runner"
	"github.com/arthur-debert/logsieve/pkg/sink"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type splitEnv struct {
	sourceDir string
	outDir    string
	sinks     *sink.Registry
}

func newSplitEnv(t *testing.T) *splitEnv {
	t.Helper()
	outDir := filepath.Join(t.TempDir(), "processed")
	sinks, err := sink.NewRegistry(outDir)
	require.NoError(t, err)
	t.Cleanup(func() { _ = sinks.Close() })
	return &splitEnv{sourceDir: t.TempDir(), outDir: outDir, sinks: sinks}
}

func (e *splitEnv) writeSource(t *testing.T, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(e.sourceDir, name), []byte(content), 0644))
}

func (e *splitEnv) readOutput(t *testing.T, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(e.outDir, name))
	require.NoError(t, err)
	return string(data)
}

func (e *splitEnv) outputExists(name string) bool {
	_, err := os.Stat(filepath.Join(e.outDir, name))
	return err == nil
}

func compileSet(t *testing.T, specs []rules.DestinationSpec) *rules.Set {
	t.Helper()
	set, err := rules.Compile(specs)
	require.NoError(t, err)
	return set
}

func TestSplitter_Run(t *testing.T) {
	t.Run("routes_matched_and_falls_back_unmatched", func(t *testing.T) {
		env := newSplitEnv(t)
		env.writeSource(t, "app.log",
			"[10:00:00,000] start\n"+
				"line A\n"+
				"[10:00:01,000] next\n"+
				"line B\n")
		set := compileSet(t, []rules.DestinationSpec{
			{Name: "d.log", Rules: []rules.RuleSpec{{Pattern: "line B"}}},
		})

		report := runner.NewSplitter(set, env.sinks).Run(env.sourceDir, []string{"app.log"})
		require.NoError(t, env.sinks.Close())

		assert.Equal(t, 1, report.Processed)
		assert.Zero(t, report.Skipped)
		assert.Equal(t, 2, report.Totals.BlocksRead)
		assert.Equal(t, 1, report.Totals.BlocksExtracted)
		assert.Equal(t, 1, report.Totals.BlocksUnmatched)

		assert.Equal(t, "[10:00:01,000] next\nline B\n", env.readOutput(t, "d.log"))
		assert.Equal(t, "[10:00:00,000] start\nline A\n",
			env.readOutput(t, "app.log_unmatched.log"))
	})

	t.Run("keep_rule_writes_both_destinations", func(t *testing.T) {
		env := newSplitEnv(t)
		env.writeSource(t, "app.log", "[10:00:00,000] Fatal exception in worker\n")
		set := compileSet(t, []rules.DestinationSpec{
			{Name: "errors.log", Rules: []rules.RuleSpec{{Pattern: "Fatal exception", Keep: true}}},
		})

		report := runner.NewSplitter(set, env.sinks).Run(env.sourceDir, []string{"app.log"})
		require.NoError(t, env.sinks.Close())

		assert.Equal(t, 1, report.Totals.BlocksExtracted)
		assert.Equal(t, 1, report.Totals.BlocksUnmatched)
		assert.Equal(t, env.readOutput(t, "errors.log"),
			env.readOutput(t, "app.log_unmatched.log"))
	})

	t.Run("empty_rule_set_sends_all_blocks_to_fallback", func(t *testing.T) {
		env := newSplitEnv(t)
		content := "[10:00:00,000] a\nx\n[10:00:01,000] b\n"
		env.writeSource(t, "app.log", content)

		report := runner.NewSplitter(compileSet(t, nil), env.sinks).
			Run(env.sourceDir, []string{"app.log"})
		require.NoError(t, env.sinks.Close())

		assert.Equal(t, 2, report.Totals.BlocksRead)
		assert.Zero(t, report.Totals.BlocksExtracted)
		assert.Equal(t, 2, report.Totals.BlocksUnmatched)
		assert.Equal(t, content, env.readOutput(t, "app.log_unmatched.log"))
	})

	t.Run("destination_sinks_accumulate_across_source_files", func(t *testing.T) {
		env := newSplitEnv(t)
		env.writeSource(t, "a.log", "[10:00:00,000] ERROR from a\n")
		env.writeSource(t, "b.log", "[11:00:00,000] ERROR from b\n")
		set := compileSet(t, []rules.DestinationSpec{
			{Name: "errors.log", Rules: []rules.RuleSpec{{Pattern: "ERROR"}}},
		})

		report := runner.NewSplitter(set, env.sinks).Run(env.sourceDir, []string{"a.log", "b.log"})
		require.NoError(t, env.sinks.Close())

		assert.Equal(t, 2, report.Processed)
		assert.Equal(t,
			"[10:00:00,000] ERROR from a\n[11:00:00,000] ERROR from b\n",
			env.readOutput(t, "errors.log"),
			"shared destination accumulates in file processing order")
		assert.False(t, env.outputExists("a.log_unmatched.log"))
		assert.False(t, env.outputExists("b.log_unmatched.log"))
	})

	t.Run("unreadable_file_is_skipped_not_fatal", func(t *testing.T) {
		env := newSplitEnv(t)
		env.writeSource(t, "ok.log", "[10:00:00,000] fine\n")
		set := compileSet(t, nil)

		report := runner.NewSplitter(set, env.sinks).
			Run(env.sourceDir, []string{"absent.log", "ok.log"})
		require.NoError(t, env.sinks.Close())

		assert.Equal(t, 1, report.Processed)
		assert.Equal(t, 1, report.Skipped)
		require.Len(t, report.Files, 2)
		assert.Error(t, report.Files[0].Err)
		assert.NoError(t, report.Files[1].Err)
		assert.Equal(t, 1, report.Totals.BlocksRead, "skipped files do not count")
	})

	t.Run("file_without_leading_stamp_still_forms_blocks", func(t *testing.T) {
		env := newSplitEnv(t)
		env.writeSource(t, "app.log", "orphan line\n[10:00:00,000] stamped\n")

		report := runner.NewSplitter(compileSet(t, nil), env.sinks).
			Run(env.sourceDir, []string{"app.log"})
		require.NoError(t, env.sinks.Close())

		assert.Equal(t, 2, report.Totals.BlocksRead)
		assert.Equal(t, "orphan line\n[10:00:00,000] stamped\n",
			env.readOutput(t, "app.log_unmatched.log"))
	})
}
