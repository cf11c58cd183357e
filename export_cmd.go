package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export <board.json> [out.png]",
	Short: "Render a saved board to PNG",
	Long:  `Renders the whole board, independent of the saved viewport, to a PNG image.`,
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		out, err := runExport(cmd, args)
		if err != nil {
			return err
		}
		fmt.Printf("Exported to %s\n", out)
		return nil
	},
}

func init() {
	exportCmd.Flags().Float64("scale", 0, "Pixel scale (defaults to export_scale from the config)")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) (string, error) {
	cfg, err := configFromFlags(cmd)
	if err != nil {
		return "", err
	}
	board, err := LoadBoard(args[0], uuidSource{})
	if err != nil {
		return "", err
	}

	out := strings.TrimSuffix(args[0], filepath.Ext(args[0])) + ".png"
	if len(args) > 1 {
		out = withExtension(args[1], ".png")
	}
	scale := cfg.ExportScale
	if s, _ := cmd.Flags().GetFloat64("scale"); s > 0 {
		scale = s
	}
	if err := ExportPNG(board, out, scale, mergeLabels(cfg.Labels)); err != nil {
		return "", fmt.Errorf("export %s: %w", args[0], err)
	}
	return out, nil
}
