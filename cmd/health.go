package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/studyhub/studyhub/backend/go-services/pkg/client"
)

var (
	healthURL     string
	healthTimeout time.Duration
	healthRetries int
	healthVerbose bool
)

// healthCmd probes a running server through the API client. Usable as a
// container health check: the exit status is 0 only when the server answers.
var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check that a StudyHub server is up",
	RunE: func(cmd *cobra.Command, args []string) error {
		url := healthURL
		if url == "" {
			port := os.Getenv("PORT")
			if port == "" {
				port = os.Getenv("SERVER_PORT")
			}
			if port == "" {
				port = "5000"
			}
			url = fmt.Sprintf("http://localhost:%s/api", port)
		}
		c := client.New(url,
			client.WithTimeout(healthTimeout),
			client.WithRetry(time.Second, healthRetries),
			client.WithDevelopment(healthVerbose),
		)
		ctx, cancel := context.WithTimeout(cmd.Context(), healthTimeout*time.Duration(healthRetries+2)+8*time.Second)
		defer cancel()
		env, err := c.Health(ctx)
		if err != nil {
			return fmt.Errorf("health check against %s failed: %w", url, err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), env.Message)
		return nil
	},
}

func init() {
	healthCmd.Flags().StringVar(&healthURL, "url", "", "API base URL (default http://localhost:$PORT/api)")
	healthCmd.Flags().DurationVar(&healthTimeout, "timeout", 5*time.Second, "timeout per attempt")
	healthCmd.Flags().IntVar(&healthRetries, "retries", client.DefaultMaxRetries, "retries on network errors")
	healthCmd.Flags().BoolVarP(&healthVerbose, "verbose", "v", false, "log requests and responses")
}
