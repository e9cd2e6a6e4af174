package cli

import (
	"github.com/arthur-debert/logsieve/pkg/config"
	"github.com/spf13/cobra"
)

func newSampleConfigCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "sample-config",
		Short: "Print an example rules file",
		Long: `Sample-config prints an example rules file for the split command. Redirect
the output to a file and edit the destinations and patterns to taste:

    logsieve sample-config > rules.json
    logsieve sample-config --format yaml > rules.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := config.RenderSample(format)
			if err != nil {
				return err
			}
			cmd.Print(out)
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "json", "Output format: json, toml or yaml")
	return cmd
}
