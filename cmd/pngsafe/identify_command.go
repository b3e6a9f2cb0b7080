package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"pngsafe/internal/config"
	"pngsafe/internal/raster"
)

type identifyView struct {
	Path      string `json:"path"`
	Format    string `json:"format"`
	Mode      string `json:"mode"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	Channels  int    `json:"channels"`
	BitDepth  int    `json:"bit_depth,omitempty"`
	Interlace bool   `json:"interlaced"`
	Alpha     bool   `json:"alpha"`
	Pixels    int64  `json:"pixels"`
	Size      int64  `json:"size_bytes"`
}

func newIdentifyCommand() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:         "identify <file>...",
		Short:       "Show format, mode and dimensions without converting",
		Args:        cobra.MinimumNArgs(1),
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			views := make([]identifyView, 0, len(args))
			for _, arg := range args {
				path, err := config.ExpandUserPath(arg)
				if err != nil {
					return fmt.Errorf("resolve %s: %w", arg, err)
				}
				info, err := raster.Inspect(path)
				if err != nil {
					return fmt.Errorf("identify %s: %w", arg, err)
				}
				views = append(views, identifyViewFrom(info))
			}

			if jsonOutput {
				return writeJSON(cmd.OutOrStdout(), views)
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				"Images",
				[]string{"File", "Format", "Mode", "Size", "Channels", "Depth", "Interlaced", "Pixels", "Bytes"},
				buildIdentifyRows(views),
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignRight, alignLeft, alignRight, alignRight},
			))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}

func identifyViewFrom(info *raster.Info) identifyView {
	return identifyView{
		Path:      info.Path,
		Format:    string(info.Format),
		Mode:      string(info.Mode),
		Width:     info.Width,
		Height:    info.Height,
		Channels:  info.Mode.Channels(),
		BitDepth:  info.BitDepth,
		Interlace: info.Interlace,
		Alpha:     info.Mode.HasAlpha() || (info.Header != nil && info.Header.Transparency),
		Pixels:    info.Pixels(),
		Size:      info.Size,
	}
}

func buildIdentifyRows(views []identifyView) [][]string {
	rows := make([][]string, 0, len(views))
	for _, v := range views {
		depth := "-"
		if v.BitDepth > 0 {
			depth = fmt.Sprintf("%d", v.BitDepth)
		}
		rows = append(rows, []string{
			filepath.Base(v.Path),
			v.Format,
			v.Mode,
			formatDimensions(v.Width, v.Height),
			fmt.Sprintf("%d", v.Channels),
			depth,
			yesNo(v.Interlace),
			formatCount(v.Pixels),
			formatBytes(v.Size),
		})
	}
	return rows
}
