package commands

import (
	"github.com/spf13/cobra"

	"github.com/aiconcierge/gkeops/cmd/gkeops/handlers"
)

// Teardown returns the teardown command.
func Teardown() *cobra.Command {
	var (
		configPath    string
		deleteProject bool
		force         bool
	)

	cmd := &cobra.Command{
		Use:   "teardown",
		Short: "Destroy the cluster and all associated infrastructure",
		Long: `Teardown deletes the deployed applications, destroys the
infrastructure definition and removes leftover persistent disks.

With --delete-project the cloud project itself is scheduled for
deletion, gated on typing the exact project id. Declining the typed
confirmation still destroys the infrastructure but leaves the project
intact.

Example:
  gkeops teardown -c gkeops.yaml
  gkeops teardown -c gkeops.yaml --delete-project

WARNING: This operation is irreversible. All cluster data will be lost.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Teardown(cmd.Context(), configPath, handlers.TeardownOptions{
				DeleteProject: deleteProject,
				Force:         force,
			})
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to the configuration file (default: discovered gkeops.yaml)")
	cmd.Flags().BoolVar(&deleteProject, "delete-project", false, "Also delete the cloud project")
	cmd.Flags().BoolVar(&force, "force", false, "Skip all confirmation prompts")

	return cmd
}
