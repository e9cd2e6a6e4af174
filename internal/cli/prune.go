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

func newPruneCmd() *cobra.Command {
	var (
		patternsPath string
		outputDir    string
		sourceDir    string
		confirm      bool
	)

	cmd := &cobra.Command{
		Use:   "prune <file-pattern>",
		Short: "Remove unwanted log blocks from matching files",
		Long: `Prune reads every file whose name matches <file-pattern> (a regular
expression) and writes a copy of each one with unwanted blocks removed. A
block is removed when any of its lines matches any pattern in the patterns
file (one regular expression per line; blank lines and lines starting with
'#' are ignored).

Each run replaces the previous output for a source file, so re-running with
an updated pattern list always reflects the current patterns.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPrune(cmd, args[0], patternsPath, sourceDir, outputDir, confirm)
		},
	}

	cmd.Flags().StringVar(&patternsPath, "patterns", "prune.conf",
		"File with one removal pattern per line")
	cmd.Flags().StringVar(&outputDir, "output-dir", "process",
		"Directory for pruned copies of the source files")
	cmd.Flags().StringVar(&sourceDir, "source-dir", ".",
		"Directory to search for source files")
	cmd.Flags().BoolVar(&confirm, "confirm", false,
		"List matched files and ask before processing")
	return cmd
}

func runPrune(cmd *cobra.Command, filePattern, patternsPath, sourceDir, outputDir string, confirm bool) error {
	logger := logging.GetLogger("cmd.prune")

	list, err := config.LoadPruneFile(patternsPath)
	if err != nil {
		return err
	}

	files, err := discovery.FindFiles(sourceDir, filePattern)
	if err != nil {
		return err
	}

	renderer := report.NewRenderer(report.DetectFormat(os.Stdout))
	cmd.Println(renderer.PruneSummary(list))

	if len(files) == 0 {
		cmd.Printf("\nNo files matched %q in %s.\n", filePattern, sourceDir)
		return nil
	}

	if confirm {
		cmd.Printf("\nFiles to process:\n")
		for _, f := range files {
			cmd.Printf("  %s\n", f)
		}
		ok, err := report.Confirm("Process these files?")
		if err != nil {
			return err
		}
		if !ok {
			cmd.Println("Cancelled, no files were processed.")
			return nil
		}
	}

	sinks, err := sink.NewRegistry(outputDir)
	if err != nil {
		return err
	}

	rep := runner.NewPruner(list, sinks).Run(sourceDir, files)
	if err := sinks.Close(); err != nil {
		logger.Warn().Err(err).Msg("Failed to close output sinks")
	}

	cmd.Println()
	cmd.Println(renderer.PruneReport(rep, outputDir))
	return nil
}
