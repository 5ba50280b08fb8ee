// Package cmd implements the wick command line.
package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/wickgo/wick"
)

var (
	configPath string
	verbose    bool
	cfg        = wick.DefaultConfig()
)

var rootCmd = &cobra.Command{
	Use:   "wick",
	Short: "Create, inspect and play wick animation projects",
	Long: `wick works with frame-based animation projects stored as JSON.

It can create projects, print their structure, import assets, play them
headlessly with Go scripts, open them in an editor window and keep them
in a SQLite project library.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}
		c, err := wick.LoadConfig(configPath)
		if err != nil {
			return err
		}
		cfg = c
		level, _ := wick.ParseLogLevel(cfg.LogLevel)
		if verbose {
			level = slog.LevelDebug
		}
		l := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
		slog.SetDefault(l)
		wick.SetLogger(l)
		return nil
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "wick.yaml", "path to the YAML config")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log debug output")
}

// readProject loads a serialized project from path.
func readProject(path string) (*wick.Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	p, err := wick.Deserialize(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	p.History().Limit = cfg.HistoryLimit
	return p, nil
}

// writeProject serializes p to path.
func writeProject(path string, p *wick.Project) error {
	data, err := p.Serialize()
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
