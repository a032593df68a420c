package root

import (
	"github.com/spf13/cobra"
)

// RootCmd is the taskctl entry point. Subcommand packages attach themselves in main.
var RootCmd = &cobra.Command{
	Use:           "taskctl",
	Short:         "Task Manager CLI",
	Long:          "Command line interface for the Task Manager API. Set TASKCTL_API_URL to point at a server.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func GetRoot() *cobra.Command {
	return RootCmd
}
