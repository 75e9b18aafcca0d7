package commands

import (
	"github.com/spf13/cobra"

	"github.com/aiconcierge/gkeops/cmd/gkeops/handlers"
)

// Deploy returns the deploy command.
func Deploy() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "deploy [app...]",
		Short: "Build, push and roll out the demo applications",
		Long: `Deploy builds a container image for each application from its build
context, pushes it to the registry and applies the Kubernetes manifests.
All images of one run share a single timestamp tag. Applications without
a Dockerfile are skipped. After the rollout, old image versions beyond
the configured retention are pruned from the registry.

With no arguments every configured application is deployed.

Example:
  gkeops deploy
  gkeops deploy streamlit-ui`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return handlers.Deploy(cmd.Context(), configPath, args)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to the configuration file (default: discovered gkeops.yaml)")

	return cmd
}
