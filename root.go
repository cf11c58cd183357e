package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "stormboard [board.json]",
	Short: "Stormboard is a terminal Event Storming board",
	Long:  `Stormboard lets you lay out flows, bounded contexts, domains and hotspots on a pannable, zoomable canvas from the terminal.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBoard(cmd, args)
	},
	SilenceUsage: true,
}

func main() {
	Execute()
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("config", defaultConfigPath(), "Path to the YAML config file")
	rootCmd.PersistentFlags().String("log-level", "", "Override the configured log level (trace, debug, info, ...)")
}

// configFromFlags loads the config named by --config and applies flag overrides.
func configFromFlags(cmd *cobra.Command) (*Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := loadConfig(path)
	if err != nil {
		return nil, err
	}
	if level, _ := cmd.Flags().GetString("log-level"); level != "" {
		cfg.LogLevel = level
	}
	return cfg, nil
}

func runBoard(cmd *cobra.Command, args []string) error {
	cfg, err := configFromFlags(cmd)
	if err != nil {
		return err
	}
	log, closer, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer closer.Close()

	board, filename := NewBoard(), ""
	if len(args) > 0 {
		filename = args[0]
		if _, statErr := os.Stat(filename); statErr == nil {
			if board, err = LoadBoard(filename, uuidSource{}); err != nil {
				return err
			}
		}
	}

	log.Info().Str("file", filename).Msg("starting")
	p := tea.NewProgram(
		initialModel(cfg, log, board, filename),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	if _, err := p.Run(); err != nil {
		log.Error().Err(err).Msg("program exited with error")
		return err
	}
	return nil
}
