// Test Type: Unit Test
// Description: Tests for the discovery package - source file selection by name pattern

package discovery_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/logsieve/pkg/discovery"
	"github.com/arthur-debert/logsieve/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindFiles(t *testing.T) {
	t.Run("matches_and_sorts", func(t *testing.T) {
		dir := t.TempDir()
		for _, name := range []string{"b.log", "a.log", "notes.txt", "c.log.1"} {
			require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0644))
		}
		require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.log"), 0755))

		files, err := discovery.FindFiles(dir, `\.log`)
		require.NoError(t, err)
		assert.Equal(t, []string{"a.log", "b.log", "c.log.1"}, files,
			"directories are skipped and names come back sorted")
	})

	t.Run("no_matches_is_not_an_error", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), nil, 0644))

		files, err := discovery.FindFiles(dir, `\.log$`)
		require.NoError(t, err)
		assert.Empty(t, files)
	})

	t.Run("invalid_pattern_is_config_error", func(t *testing.T) {
		_, err := discovery.FindFiles(t.TempDir(), "(unclosed")
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrPatternInvalid))
	})

	t.Run("missing_directory", func(t *testing.T) {
		_, err := discovery.FindFiles(filepath.Join(t.TempDir(), "gone"), ".")
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrSourceAccess))
	})
}
