package cli

import (
	"os"

	"github.com/arthur-debert/logsieve/pkg/config"
	"github.com/arthur-debert/logsieve/pkg/discovery"
	"github.com/arthur-debert/logsieve/pkg/logging"
	"github.com/arthur-debert/logsieve/pkg/report"
	"github.com/arthur-debert/logsieve/pkg/runner"
	"github.com/arthur-debert/logsieve/pkg/sink"
	"github.com/spf13/cobra"
)

func newSplitCmd() *cobra.Command {
	var (
		rulesPath string
		outputDir string
		sourceDir string
	)

	cmd := &cobra.Command{
		Use:   "split <file-pattern>",
		Short: "Route log blocks to destination files by pattern",
		Long: `Split reads every file whose name matches <file-pattern> (a regular
expression) and appends each block to the destination files configured in the
rules file. Blocks no destination claims, blocks matched by a pattern with
"keep": true, and blocks claimed by a destination with "keep_all_blocks": true
are also appended to a per-source '<name>_unmatched.log' file.

Destination files are shared across all source files and only ever appended
to; run 'logsieve sample-config' for an example rules file.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSplit(cmd, args[0], rulesPath, sourceDir, outputDir)
		},
	}

	cmd.Flags().StringVar(&rulesPath, "rules", "rules.json",
		"Rules file mapping destination files to patterns (.json, .toml or .yaml)")
	cmd.Flags().StringVar(&outputDir, "output-dir", "processed",
		"Directory for destination and unmatched files")
	cmd.Flags().StringVar(&sourceDir, "source-dir", ".",
		"Directory to search for source files")
	return cmd
}

func runSplit(cmd *cobra.Command, filePattern, rulesPath, sourceDir, outputDir string) error {
	logger := logging.GetLogger("cmd.split")

	// Configuration must be valid before any source file is touched.
	set, err := config.LoadRules(rulesPath)
	if err != nil {
		return err
	}

	files, err := discovery.FindFiles(sourceDir, filePattern)
	if err != nil {
		return err
	}

	renderer := report.NewRenderer(report.DetectFormat(os.Stdout))
	cmd.Println(renderer.RuleSummary(set))

	if len(files) == 0 {
		cmd.Printf("\nNo files matched %q in %s.\n", filePattern, sourceDir)
		return nil
	}

	sinks, err := sink.NewRegistry(outputDir)
	if err != nil {
		return err
	}

	rep := runner.NewSplitter(set, sinks).Run(sourceDir, files)
	if err := sinks.Close(); err != nil {
		logger.Warn().Err(err).Msg("Failed to close output sinks")
	}

	cmd.Println()
	cmd.Println(renderer.SplitReport(rep, outputDir))
	return nil
}
