package commands

import (
	"github.com/spf13/cobra"

	"github.com/aiconcierge/gkeops/cmd/gkeops/handlers"
)

// Provision returns the provision command.
func Provision() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "provision",
		Short: "Create the cluster and supporting infrastructure",
		Long: `Provision applies the infrastructure definition: the GKE cluster,
its network and service accounts. After a successful apply, cluster
credentials are fetched into the local kubeconfig.

Any failure is fatal; fix the cause and re-run provision.

Example:
  gkeops provision -c gkeops.yaml`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Provision(cmd.Context(), configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to the configuration file (default: discovered gkeops.yaml)")

	return cmd
}
