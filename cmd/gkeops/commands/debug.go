package commands

import (
	"github.com/spf13/cobra"

	"github.com/aiconcierge/gkeops/cmd/gkeops/handlers"
)

// Logs returns the logs command.
func Logs() *cobra.Command {
	var (
		configPath string
		tail       int64
	)

	cmd := &cobra.Command{
		Use:   "logs <app>",
		Short: "Print recent logs of one application",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return handlers.Logs(cmd.Context(), configPath, args[0], tail)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to the configuration file (default: discovered gkeops.yaml)")
	cmd.Flags().Int64Var(&tail, "tail", 100, "Number of log lines to show")

	return cmd
}

// Debug returns the debug command.
func Debug() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "debug",
		Short: "Dump pods, workloads and node state for troubleshooting",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Debug(cmd.Context(), configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to the configuration file (default: discovered gkeops.yaml)")

	return cmd
}

// Doctor returns the doctor command.
func Doctor() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check local tooling and configuration",
		RunE: func(_ *cobra.Command, _ []string) error {
			return handlers.Doctor(configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to the configuration file (default: discovered gkeops.yaml)")

	return cmd
}
