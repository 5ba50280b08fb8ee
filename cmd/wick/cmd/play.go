package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/wickgo/wick"
	"github.com/wickgo/wick/script"
	"github.com/wickgo/wick/view"
)

var (
	playTicks   int
	playScript  string
	playTimeout time.Duration
)

var playCmd = &cobra.Command{
	Use:   "play <file>",
	Short: "Play a project headlessly",
	Long: `Play a project without a window, running its scripts for a number of
ticks. An automation script can press keys and click while playing:

  {"steps": [
    {"action": "tap", "key": "space"},
    {"action": "wait", "ticks": 5},
    {"action": "click", "x": 100, "y": 80}
  ]}

The command fails if a script raises an error.

Examples:
  wick play bounce.wick --ticks 48
  wick play game.wick --script steps.json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := readProject(args[0])
		if err != nil {
			return err
		}
		p.SetDebugMode(cfg.Debug || verbose)

		runner := script.New()
		runner.Stdout = os.Stdout
		if playTimeout > 0 {
			runner.Timeout = playTimeout
		}
		p.SetScriptRunner(runner)
		p.SetView(view.NewRenderer())
		sched := wick.NewManualScheduler()
		p.SetScheduler(sched)

		var automation *wick.TestRunner
		if playScript != "" {
			data, err := os.ReadFile(playScript)
			if err != nil {
				return err
			}
			if automation, err = wick.LoadTestScript(data); err != nil {
				return err
			}
			p.SetTestRunner(automation)
		}

		var (
			scriptErr *wick.ScriptError
			ticks     int
		)
		err = p.Play(wick.PlayOptions{
			OnError:     func(err *wick.ScriptError) { scriptErr = err },
			OnAfterTick: func() { ticks++ },
		})
		if err != nil {
			return err
		}

		limit := playTicks
		if limit <= 0 && automation == nil {
			limit = p.Root().Timeline().Length()
		}
		for p.IsPlaying() {
			if limit > 0 && ticks >= limit {
				break
			}
			if limit <= 0 && automation.Done() {
				break
			}
			sched.Step()
		}
		playhead := p.ActiveTimeline().Playhead()
		p.Stop()

		fmt.Printf("played %d ticks, playhead %d\n", ticks, playhead)
		if scriptErr != nil {
			return fmt.Errorf("script error in %s at line %d: %s", scriptErr.UUID, scriptErr.LineNumber, scriptErr.Message)
		}
		return nil
	},
}

func init() {
	playCmd.Flags().IntVarP(&playTicks, "ticks", "n", 0, "number of ticks to play (default: one loop, or until the automation script ends)")
	playCmd.Flags().StringVar(&playScript, "script", "", "JSON automation script")
	playCmd.Flags().DurationVar(&playTimeout, "timeout", 0, "per-script execution timeout")
	rootCmd.AddCommand(playCmd)
}
