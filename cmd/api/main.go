// @title           User API
// @version         1.0
// @description     Greeting endpoint and CRUD over users.
// @host            localhost:8080
// @BasePath        /
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	serveCmd := newServeCmd()
	cmd := &cobra.Command{
		Use:           "api",
		Short:         "User API server",
		SilenceUsage:  true,
		SilenceErrors: true,
		// bare "api" behaves like "api serve"
		RunE: serveCmd.RunE,
	}
	cmd.AddCommand(serveCmd)
	cmd.AddCommand(newMigrateCmd())
	return cmd
}
