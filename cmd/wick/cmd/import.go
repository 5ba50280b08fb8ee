package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/wickgo/wick"
)

var importPlace bool

var importCmd = &cobra.Command{
	Use:   "import <file> <asset>...",
	Short: "Import image and sound files into a project",
	Long: `Decode image and sound files and add them to a project's asset library.
Files of unsupported types are skipped with a warning.

Examples:
  wick import bounce.wick ball.png boing.wav
  wick import bounce.wick sprites/*.png --place`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, files := args[0], args[1:]
		p, err := readProject(path)
		if err != nil {
			return err
		}

		assets := make([]*wick.Asset, len(files))
		var g errgroup.Group
		g.SetLimit(runtime.NumCPU())
		for i, file := range files {
			g.Go(func() error {
				data, err := os.ReadFile(file)
				if err != nil {
					return err
				}
				a, err := wick.DecodeAsset(filepath.Base(file), "", data)
				if errors.Is(err, wick.ErrUnsupportedAsset) {
					wick.Logger().Warn("skipping unsupported file", "file", file)
					return nil
				}
				assets[i] = a
				return err
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}

		n := 0
		for _, a := range assets {
			if a == nil {
				continue
			}
			p.AddAsset(a)
			n++
			if importPlace && a.IsImage() {
				if _, err := p.CreateImagePathFromAsset(a, 0, 0); err != nil {
					return err
				}
			}
			fmt.Printf("imported %s (%s)\n", a.Name, a.MIME)
		}
		if n == 0 {
			return fmt.Errorf("nothing imported")
		}
		return writeProject(path, p)
	},
}

func init() {
	importCmd.Flags().BoolVar(&importPlace, "place", false, "add imported images to the active frame")
	rootCmd.AddCommand(importCmd)
}
