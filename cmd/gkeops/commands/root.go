// Package commands defines the CLI command structure and flag bindings.
//
// This package contains cobra command definitions that handle argument
// parsing, flag binding and validation. Command execution is delegated to
// handler functions in the handlers package.
package commands

import "github.com/spf13/cobra"

// Root returns the root command for the gkeops CLI.
func Root() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gkeops",
		Short: "Manage the AI demo stack on Google Kubernetes Engine",
	}

	// Setup commands
	cmd.AddCommand(Init())
	cmd.AddCommand(Bootstrap())
	cmd.AddCommand(Provision())

	// Day-to-day commands
	cmd.AddCommand(Deploy())
	cmd.AddCommand(Status())
	cmd.AddCommand(Pause())
	cmd.AddCommand(Resume())
	cmd.AddCommand(Cost())
	cmd.AddCommand(Logs())
	cmd.AddCommand(Debug())

	// Destructive and utility commands
	cmd.AddCommand(Teardown())
	cmd.AddCommand(Doctor())
	cmd.AddCommand(Version())
	cmd.AddCommand(Completion())

	return cmd
}
