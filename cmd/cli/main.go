package main

import (
	"fmt"
	"os"

	"github.com/crucial707/task-api/cmd/cli/account"
	"github.com/crucial707/task-api/cmd/cli/auth"
	"github.com/crucial707/task-api/cmd/cli/root"
	"github.com/crucial707/task-api/cmd/cli/tasks"
)

func main() {
	rootCmd := root.GetRoot()
	auth.InitAuth(rootCmd)
	account.InitAccount(rootCmd)
	tasks.InitTasks(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
