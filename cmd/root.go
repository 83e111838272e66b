// Package cmd holds the studyhub command line: the API server and its
// operational helpers.
package cmd

import (
	"context"
	"os"

	"github.com/spf13/cobra"
	"github.com/studyhub/studyhub/backend/go-services/pkg/logger"
)

var rootCmd = &cobra.Command{
	Use:           "studyhub",
	Short:         "StudyHub backend: notes, doubts and timetable API",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// LOG_LEVEL: debug|info|warn|error|fatal
		logger.Init(os.Getenv("LOG_LEVEL"))
	},
}

func init() {
	rootCmd.AddCommand(serveCmd, healthCmd, backupCmd)
}

// Execute runs the command line. With no subcommand it serves the API.
func Execute() {
	args := os.Args[1:]
	if len(args) == 0 {
		rootCmd.SetArgs([]string{"serve"})
	}
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		logger.Fatalf("%v", err)
	}
}
