package commands

import (
	"github.com/spf13/cobra"

	"github.com/aiconcierge/gkeops/cmd/gkeops/handlers"
)

// Init returns the init command.
func Init() *cobra.Command {
	var (
		output string
		force  bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Generate a starter configuration file",
		Long: `Init writes a gkeops.yaml describing the demo stack: the target
project, cluster and the three demo applications with their ports and
exposure. Edit the generated file before running bootstrap.

Example:
  gkeops init --project-id my-demo-project`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			projectID, _ := cmd.Flags().GetString("project-id")
			return handlers.Init(output, projectID, force)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "gkeops.yaml", "Path of the configuration file to write")
	cmd.Flags().String("project-id", "", "Cloud project id to pre-fill")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")

	return cmd
}
