package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"pngsafe/internal/logging"
	"pngsafe/internal/logs"
)

func newLogsCommand(ctx *commandContext) *cobra.Command {
	var lines int
	var runID string
	var follow bool

	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Show recent log lines",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			path := cfg.LogPath()

			var match string
			if id := strings.TrimSpace(runID); id != "" {
				match = logging.FieldRunID + "=" + id
				if cfg.Logging.Format == "json" {
					match = fmt.Sprintf("%q:%q", logging.FieldRunID, id)
				}
			}

			result, err := logs.Tail(path, logs.TailOptions{Limit: lines, Match: match})
			if err != nil {
				return err
			}
			for _, line := range result.Lines {
				fmt.Fprintln(out, line)
			}
			if !follow {
				if len(result.Lines) == 0 {
					fmt.Fprintf(out, "No log lines in %s\n", path)
				}
				return nil
			}

			err = logs.Follow(cmd.Context(), path, result.Offset, match, 0, func(line string) {
				fmt.Fprintln(out, line)
			})
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}

	cmd.Flags().IntVarP(&lines, "lines", "n", 50, "Number of lines to show")
	cmd.Flags().StringVar(&runID, "run", "", "Only show lines for this run ID")
	cmd.Flags().BoolVarP(&follow, "follow", "f", false, "Keep printing new lines")
	return cmd
}
