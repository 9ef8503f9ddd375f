package main

import (
	"fmt"

	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/store"
	"github.com/spf13/cobra"
)

func newExportCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "export <file>",
		Short: "Write both lists to a JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := e.openLists(false)
			if err != nil {
				return err
			}
			snap := l.Snapshot()
			if err := store.Export(e.fs, args[0], snap); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d favorites and %d watchlist entries to %s\n",
				len(snap.Favorites.Movies), len(snap.Watchlist.Movies), args[0])
			return nil
		},
	}
}

func newImportCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Merge lists from a JSON file written by export",
		Long: `Merge lists from a JSON file written by export. Entries already saved
keep their stored summary.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := store.Import(e.fs, args[0])
			if err != nil {
				return err
			}
			l, err := e.openLists(false)
			if err != nil {
				return err
			}
			added, skipped := mergeSnapshot(l, snap)
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d new entries (%d already saved)\n", added, skipped)
			return nil
		},
	}
}

func newClearCmd(e *env) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete both saved lists",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return fmt.Errorf("clear deletes every saved movie, pass --yes to confirm")
			}
			if _, err := e.openLists(false); err != nil {
				return err
			}
			if err := e.snapshots.Clear(); err != nil {
				return fmt.Errorf("failed to clear lists: %w", err)
			}

			out := cmd.OutOrStdout()
			if path := e.snapshots.Path(); path != "" {
				fmt.Fprintf(out, "Cleared saved lists in %s\n", path)
			} else {
				fmt.Fprintln(out, "Cleared saved lists")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "Confirm deleting both lists")
	return cmd
}

// mergeSnapshot adds every entry the lists do not hold yet
func mergeSnapshot(l domain.Lists, snap domain.Snapshot) (added, skipped int) {
	for _, kind := range domain.ListKinds {
		for _, s := range snap.Collection(kind).Movies {
			if l.Contains(kind, s.ID) {
				skipped++
				continue
			}
			l.Add(kind, s)
			added++
		}
	}
	return added, skipped
}
