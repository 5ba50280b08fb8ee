package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wickgo/wick"
)

var infoCmd = &cobra.Command{
	Use:   "info <file>",
	Short: "Print a project's structure",
	Long: `Print the settings, assets and timeline tree of a project.

Example:
  wick info bounce.wick`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := readProject(args[0])
		if err != nil {
			return err
		}
		fmt.Printf("%s  %dx%d @ %d fps  background %s\n", p.Name, p.Width, p.Height, p.Framerate(), p.BackgroundColor.Hex())
		for _, a := range p.Assets() {
			fmt.Printf("asset %s %s %s\n", a.Kind(), a.Name, a.MIME)
		}
		printClip(p.Root(), 0)
		return nil
	},
}

func printClip(c *wick.Clip, depth int) {
	indent := strings.Repeat("  ", depth)
	name := c.Identifier
	if c.IsRoot() {
		name = "root"
	} else if name == "" {
		name = c.UUID()[:8]
	}
	tl := c.Timeline()
	fmt.Printf("%sclip %s  length %d  playhead %d\n", indent, name, tl.Length(), tl.Playhead())
	for _, l := range tl.Layers() {
		var flags []string
		if l.Locked {
			flags = append(flags, "locked")
		}
		if l.Hidden {
			flags = append(flags, "hidden")
		}
		fmt.Printf("%s  layer %q %s\n", indent, l.Name, strings.Join(flags, " "))
		for _, f := range l.Frames() {
			fmt.Printf("%s    frame %d-%d  %d paths  %d tweens", indent, f.Start(), f.End(), len(f.Paths()), len(f.Tweens()))
			if f.Identifier != "" {
				fmt.Printf("  %q", f.Identifier)
			}
			if f.Stop {
				fmt.Print("  stop")
			}
			fmt.Println()
			for _, child := range f.Clips() {
				printClip(child, depth+3)
			}
		}
	}
}

func init() {
	rootCmd.AddCommand(infoCmd)
}
