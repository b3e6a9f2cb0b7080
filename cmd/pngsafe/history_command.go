package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"pngsafe/internal/journal"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var jsonOutput bool
	var prune int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent normalization runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			store, err := ctx.openJournal()
			if err != nil {
				return fmt.Errorf("open journal: %w", err)
			}
			if store == nil {
				fmt.Fprintln(out, "History is disabled (journal.enabled = false)")
				return nil
			}
			defer store.Close()

			if cmd.Flags().Changed("prune") {
				removed, err := store.Prune(cmd.Context(), prune)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "Removed %d run(s)\n", removed)
				return nil
			}

			entries, err := store.Recent(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if jsonOutput {
				if entries == nil {
					entries = []journal.Entry{}
				}
				return writeJSON(cmd.OutOrStdout(), entries)
			}
			if len(entries) == 0 {
				fmt.Fprintln(out, "No runs recorded")
				return nil
			}
			fmt.Fprintln(out, renderTable(
				"Recent runs",
				[]string{"When", "Status", "Source", "Mode", "Size", "Bytes", "SHA-256", "Took", "Error"},
				buildHistoryRows(entries),
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignLeft, alignRight, alignLeft},
			))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", journal.DefaultLimit, "Maximum runs to show")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	cmd.Flags().IntVar(&prune, "prune", 0, "Delete all but the newest N runs")
	return cmd
}

func buildHistoryRows(entries []journal.Entry) [][]string {
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		source := "-"
		if e.Source != "" {
			source = filepath.Base(e.Source)
		}
		errText := "-"
		if e.Error != "" {
			errText = e.ErrorKind
		}
		rows = append(rows, []string{
			formatAge(e.CreatedAt),
			formatStatusLabel(string(e.Status)),
			source,
			orDash(e.Mode),
			formatDimensions(e.Width, e.Height),
			formatBytes(e.Bytes),
			shortChecksum(e.Checksum),
			formatDuration(e.Duration),
			errText,
		})
	}
	return rows
}
