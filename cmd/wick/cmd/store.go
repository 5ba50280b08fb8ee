package cmd

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/wickgo/wick/store"
)

var storePath string

var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Manage the project library",
	Long: `Save projects into a SQLite library and get them back.

The library path comes from --db or storePath in the config.`,
}

func openStore(ctx context.Context) (*store.Store, error) {
	path := storePath
	if path == "" {
		path = cfg.StorePath
	}
	return store.Open(ctx, path)
}

var storeSaveCmd = &cobra.Command{
	Use:   "save <file>",
	Short: "Save a project file into the library",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		p, err := readProject(args[0])
		if err != nil {
			return err
		}
		s, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer s.Close()
		if err := s.Save(ctx, p); err != nil {
			return err
		}
		fmt.Printf("saved %s (%s)\n", p.Name, p.UUID())
		return nil
	},
}

var storeOpenCmd = &cobra.Command{
	Use:   "open <name|uuid> <file>",
	Short: "Write a stored project to a file",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		s, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer s.Close()
		e, err := s.Find(ctx, args[0])
		if err != nil {
			return err
		}
		p, err := s.Load(ctx, e.UUID)
		if err != nil {
			return err
		}
		if err := writeProject(args[1], p); err != nil {
			return err
		}
		fmt.Printf("wrote %s to %s\n", e.Name, args[1])
		return nil
	},
}

var storeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored projects",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		s, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer s.Close()
		entries, err := s.List(ctx)
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "UUID\tNAME\tFPS\tSIZE\tUPDATED")
		for _, e := range entries {
			fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%s\n", e.UUID, e.Name, e.Framerate, e.Size, e.UpdatedAt.Format("2006-01-02 15:04"))
		}
		return w.Flush()
	},
}

var storeRmCmd = &cobra.Command{
	Use:   "rm <name|uuid>",
	Short: "Remove a project from the library",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		s, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer s.Close()
		e, err := s.Find(ctx, args[0])
		if err != nil {
			return err
		}
		if err := s.Delete(ctx, e.UUID); err != nil {
			return err
		}
		fmt.Printf("removed %s\n", e.Name)
		return nil
	},
}

func init() {
	storeCmd.PersistentFlags().StringVar(&storePath, "db", "", "library database path")
	storeCmd.AddCommand(storeSaveCmd, storeOpenCmd, storeListCmd, storeRmCmd)
	rootCmd.AddCommand(storeCmd)
}
