package commands

import (
	"github.com/spf13/cobra"

	"github.com/aiconcierge/gkeops/cmd/gkeops/handlers"
)

// Status returns the status command.
func Status() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show cluster state, workloads and current cost",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Status(cmd.Context(), configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to the configuration file (default: discovered gkeops.yaml)")

	return cmd
}

// Pause returns the pause command.
func Pause() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "pause",
		Short: "Scale the stack to zero to stop worker billing",
		Long: `Pause records the current replica and node counts in a snapshot,
then scales every workload and node pool to zero. Only the control
plane keeps billing. Resume restores the recorded state.

Individual scale failures are logged and skipped; re-running pause
retries them.

Example:
  gkeops pause -c gkeops.yaml`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Pause(cmd.Context(), configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to the configuration file (default: discovered gkeops.yaml)")

	return cmd
}

// Resume returns the resume command.
func Resume() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "resume",
		Short: "Restore the stack from the last pause snapshot",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Resume(cmd.Context(), configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to the configuration file (default: discovered gkeops.yaml)")

	return cmd
}

// Cost returns the cost command.
func Cost() *cobra.Command {
	var (
		configPath string
		asJSON     bool
	)

	cmd := &cobra.Command{
		Use:   "cost",
		Short: "Estimate the cluster's hourly, daily and monthly cost",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Cost(cmd.Context(), configPath, asJSON)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to the configuration file (default: discovered gkeops.yaml)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the estimate as JSON")

	return cmd
}
