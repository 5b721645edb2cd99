package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/kozaktomas/album-editor/internal/config"
	"github.com/kozaktomas/album-editor/internal/units"
)

var sizesCmd = &cobra.Command{
	Use:   "sizes",
	Short: "List album size presets",
	Long: `List the built-in album size presets with their spread size in pixels
at the configured print resolution (EDITOR_DPI, default 300).`,
	Args: cobra.NoArgs,
	RunE: runSizes,
}

func init() {
	rootCmd.AddCommand(sizesCmd)
}

func runSizes(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	conv := units.NewConverter(cfg.Editor.DPI)

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "LABEL\tWIDTH (cm)\tHEIGHT (cm)\tSPREAD (px)")
	for _, size := range cfg.Sizes.Sizes {
		spread := conv.Spread(size.WidthCm, size.HeightCm)
		fmt.Fprintf(tw, "%s\t%.1f\t%.1f\t%.0f x %.0f\n", size.Label, size.WidthCm, size.HeightCm, spread.W, spread.H)
	}
	return tw.Flush()
}
