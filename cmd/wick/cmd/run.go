package cmd

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/wickgo/wick"
	"github.com/wickgo/wick/script"
	"github.com/wickgo/wick/store"
	"github.com/wickgo/wick/view"
)

var (
	runPlay     bool
	runHUD      bool
	runSave     bool
	runMute     bool
	runAutosave time.Duration
)

var runCmd = &cobra.Command{
	Use:   "run <file>",
	Short: "Open a project in an editor window",
	Long: `Open a project in a window. Space plays and stops, Ctrl+Z and
Ctrl+Shift+Z undo and redo, Delete removes the selection, Enter focuses the
selected clip and Escape returns to its parent. F12 saves a screenshot.

Examples:
  wick run bounce.wick
  wick run game.wick --play --hud
  wick run bounce.wick --save --autosave 1m`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		p, err := readProject(path)
		if err != nil {
			return err
		}
		p.SetScriptRunner(script.New())
		p.SetDebugMode(cfg.Debug)

		rc := view.RunConfig{
			Scale:           cfg.WindowScale,
			ShowHUD:         runHUD || cfg.Debug,
			AutoPlay:        runPlay,
			SystemClipboard: true,
			Audio:           !runMute,
		}
		if runAutosave > 0 {
			ctx := context.Background()
			s, err := store.Open(ctx, cfg.StorePath)
			if err != nil {
				return err
			}
			defer s.Close()
			saver := store.NewAutosaver(s, p, runAutosave)
			rc.OnUpdate = func() error {
				if _, err := saver.Poll(ctx); err != nil {
					wick.Logger().Warn("autosave failed", "err", err)
				}
				return nil
			}
		}

		err = view.Run(p, rc)
		if err != nil {
			return err
		}
		if runSave {
			p.Stop()
			if err := writeProject(path, p); err != nil {
				return err
			}
			wick.Logger().Info("saved", "path", path)
		}
		return nil
	},
}

func init() {
	runCmd.Flags().BoolVar(&runPlay, "play", false, "start playing immediately")
	runCmd.Flags().BoolVar(&runHUD, "hud", false, "show playback status")
	runCmd.Flags().BoolVar(&runSave, "save", false, "write the project back when the window closes")
	runCmd.Flags().BoolVar(&runMute, "mute", false, "disable sound")
	runCmd.Flags().DurationVar(&runAutosave, "autosave", 0, "save to the project library at this interval")
	rootCmd.AddCommand(runCmd)
}
