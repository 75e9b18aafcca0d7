package commands

import (
	"github.com/spf13/cobra"

	"github.com/aiconcierge/gkeops/cmd/gkeops/handlers"
)

// Bootstrap returns the bootstrap command.
func Bootstrap() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "bootstrap",
		Short: "Prepare the cloud project for the demo stack",
		Long: `Bootstrap makes sure the project exists, links billing, enables the
required APIs, creates the container image repository and initializes
the infrastructure definition.

Every step is idempotent; re-running bootstrap is always safe.

Example:
  gkeops bootstrap -c gkeops.yaml`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Bootstrap(cmd.Context(), configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to the configuration file (default: discovered gkeops.yaml)")

	return cmd
}
