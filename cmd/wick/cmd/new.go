package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"
)

var (
	newName  string
	newFPS   int
	newForce bool
)

var newCmd = &cobra.Command{
	Use:   "new <file>",
	Short: "Create an empty project",
	Long: `Create an empty project using the configured defaults.

Examples:
  wick new bounce.wick
  wick new intro.wick --name Intro --fps 24`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		if _, err := os.Stat(path); err == nil && !newForce {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}

		c := cfg
		if newName != "" {
			c.Project.Name = newName
		}
		if newFPS > 0 {
			c.Project.Framerate = newFPS
		}
		p, err := c.NewProject()
		if err != nil {
			return err
		}
		if err := writeProject(path, p); err != nil {
			return err
		}
		fmt.Printf("created %s (%s, %dx%d @ %d fps)\n", path, p.Name, p.Width, p.Height, p.Framerate())
		return nil
	},
}

func init() {
	newCmd.Flags().StringVar(&newName, "name", "", "project name")
	newCmd.Flags().IntVar(&newFPS, "fps", 0, "framerate")
	newCmd.Flags().BoolVarP(&newForce, "force", "f", false, "overwrite an existing file")
	rootCmd.AddCommand(newCmd)
}
