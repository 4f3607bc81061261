package main

import (
	"fmt"
	"strconv"

	"escaperoom/internal/config"
	"escaperoom/pkg/probe"

	"github.com/spf13/cobra"
)

// localURL is the page address on the loopback interface.
func localURL(port int) string {
	return "http://127.0.0.1:" + strconv.Itoa(port) + "/"
}

// healthcheckCommand probes the running web server. It is meant for container
// HEALTHCHECK instructions, where no HTTP client may be installed.
func healthcheckCommand(cfg *config.Config) *cobra.Command {
	var target string

	cmd := &cobra.Command{
		Use:   "healthcheck",
		Short: "Checks that the web server answers",
		RunE: func(cmd *cobra.Command, args []string) error {
			if target == "" {
				target = localURL(cfg.Port)
			}

			res := probe.New(probe.Options{Timeout: cfg.Gates.ProbeTimeout}).Probe(cmd.Context(), target)
			if !res.OK() {
				return fmt.Errorf("%s: %w", target, res.Err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", target, res)

			return nil
		},
	}
	cmd.Flags().StringVar(&target, "url", "", "URL to probe (default http://127.0.0.1:<SERVER_PORT>/)")

	return cmd
}
