package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/wickgo/wick/view"
)

var sequenceCmd = &cobra.Command{
	Use:   "sequence <file>",
	Short: "List what each frame of the root timeline draws and plays",
	Long: `Step through every position of the root timeline, printing the number of
draw commands at each position, then list the sound cues an exporter would
mix.

Example:
  wick sequence bounce.wick`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := readProject(args[0])
		if err != nil {
			return err
		}
		r := view.NewRenderer()
		p.SetView(r)

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "FRAME\tCOMMANDS")
		err = p.RenderSequence(func(pos int) error {
			_, err := fmt.Fprintf(w, "%d\t%d\n", pos, len(r.Commands()))
			return err
		})
		if err != nil {
			return err
		}
		if err := w.Flush(); err != nil {
			return err
		}

		for _, cue := range p.AudioSequence() {
			name := cue.AssetUUID
			if a := p.GetAsset(cue.AssetUUID); a != nil {
				name = a.Name
			}
			fmt.Printf("sound %s at %s (offset %s, %s)\n", name, cue.Start, cue.Offset, cue.Duration)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sequenceCmd)
}
