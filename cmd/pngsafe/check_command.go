package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"pngsafe/internal/preflight"
)

func newCheckCommand(ctx *commandContext) *cobra.Command {
	flags := &normalizeFlags{}

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Verify the source is readable and the destination is writable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			req, err := buildRequest(cfg, flags)
			if err != nil {
				return err
			}
			checkCfg := *cfg
			checkCfg.Normalize.Source = req.Source
			checkCfg.Normalize.Destination = req.Destination

			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			results := preflight.RunAll(&checkCfg)

			lines := renderSectionHeader("Preflight", colorize)
			lines = append(lines, preflightLines(results, colorize)...)
			journalKind, journalDetail := statusInfo, "disabled"
			if cfg.Journal.Enabled {
				journalDetail = cfg.Journal.Path
			}
			lines = append(lines, renderStatusLine("Journal", journalKind, journalDetail, colorize))
			if kind, detail, ok := lastSuccessStatus(cmd, ctx, req.Destination); ok {
				lines = append(lines, renderStatusLine("Last success", kind, detail, colorize))
			}
			if ctx.configPath != "" {
				lines = append(lines, renderStatusLine("Config", statusInfo, ctx.configPath, colorize))
			}
			for _, line := range lines {
				fmt.Fprintln(out, line)
			}

			if !preflight.AllPassed(results) {
				return &reportedError{err: errors.New("preflight checks failed")}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&flags.source, "source", "s", "", "Image to check (default from config)")
	cmd.Flags().StringVarP(&flags.dest, "dest", "d", "", "Destination to check (default from config)")
	return cmd
}

func lastSuccessStatus(cmd *cobra.Command, ctx *commandContext, destination string) (statusKind, string, bool) {
	store, err := ctx.openJournal()
	if err != nil {
		return statusWarn, fmt.Sprintf("journal unavailable: %v", err), true
	}
	if store == nil {
		return statusInfo, "", false
	}
	defer store.Close()

	entry, err := store.LastSuccess(cmd.Context(), destination)
	if err != nil {
		return statusWarn, err.Error(), true
	}
	if entry == nil {
		return statusInfo, "never", true
	}
	return statusInfo, fmt.Sprintf("%s (%s, sha256 %s)", formatAge(entry.CreatedAt), formatBytes(entry.Bytes), shortChecksum(entry.Checksum)), true
}
