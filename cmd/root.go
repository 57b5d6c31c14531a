package main

import (
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "horseradish",
		Short:         "Horseradish user, role and API key management server",
		Version:       versionString(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newStartCmd(),
		newInitCmd(),
		newCreateUserCmd(),
		newResetPasswordCmd(),
		newCreateRoleCmd(),
		newSyncRolesCmd(),
		newExportCmd(),
		newGenerateKeyCmd(),
	)
	return root
}
