// Package main provides jobprepctl, a command line client for the job-prep API.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"jobprep-web/internal/apiclient"
	"jobprep-web/internal/shared/config"
)

type cli struct {
	apiURL  string
	userID  int
	timeout time.Duration
	out     io.Writer
}

func (c *cli) client() *apiclient.Client {
	var opts []apiclient.Option
	if c.timeout > 0 {
		opts = append(opts, apiclient.WithTimeout(c.timeout))
	}
	return apiclient.New(c.apiURL, opts...)
}

func (c *cli) printJSON(v any) error {
	enc := json.NewEncoder(c.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newRootCmd(cfg config.Config, out io.Writer) *cobra.Command {
	c := &cli{out: out}
	root := &cobra.Command{
		Use:           "jobprepctl",
		Short:         "Job-prep assistant command line client",
		Long:          "jobprepctl drives the job-prep backend: résumé upload and feedback, interview practice, dashboard and report export.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(out)
	root.PersistentFlags().StringVar(&c.apiURL, "api-url", cfg.APIBaseURL, "Backend base URL")
	root.PersistentFlags().IntVar(&c.userID, "user-id", cfg.UserID, "User ID sent to the backend")
	root.PersistentFlags().DurationVar(&c.timeout, "timeout", cfg.APITimeout, "Per-request timeout (0 waits indefinitely)")

	root.AddCommand(
		newResumesCmd(c),
		newGenerateCmd(c),
		newQuestionsCmd(c),
		newAnswerCmd(c),
		newDashboardCmd(c),
		newExportCmd(c),
	)
	return root
}

func main() {
	cfg := config.Load()
	if err := newRootCmd(cfg, os.Stdout).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
