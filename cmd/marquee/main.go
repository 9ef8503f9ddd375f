package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/marquee/internal/launcher"
	"github.com/mmcdole/marquee/internal/tui"
	"github.com/spf13/cobra"
)

// Version is set at build time via -ldflags
var Version = "dev"

func main() {
	e := newEnv()
	err := newRootCmd(e).Execute()
	e.Close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newRootCmd builds the command tree around a shared env
func newRootCmd(e *env) *cobra.Command {
	root := &cobra.Command{
		Use:   "marquee",
		Short: "Browse movies from TMDB in your terminal",
		Long: `marquee browses now playing, trending, top rated and popular movies from
TMDB, searches and filters the catalog, and keeps Favorites and Watchlist
lists on disk.

Run without arguments to start the interactive browser.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return e.init()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(e)
		},
	}

	root.AddCommand(
		newVersionCmd(),
		newListCmd(e, "favorites"),
		newListCmd(e, "watchlist"),
		newBrowseCmd(e),
		newExportCmd(e),
		newImportCmd(e),
		newClearCmd(e),
	)
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "marquee %s\n", Version)
		},
	}
}

// runTUI starts the interactive browser, running first-time setup when no
// token is configured
func runTUI(e *env) error {
	e.logger.Info("starting marquee", "version", Version)

	if !e.cfg.IsConfigured() {
		return runSetupFlow(e.cfg, e.logger)
	}

	store, err := e.openLists(true)
	if err != nil {
		return fmt.Errorf("failed to open lists: %w", err)
	}
	catalog, err := e.catalog()
	if err != nil {
		return err
	}

	model := tui.NewModel(catalog, store, tui.Options{
		StartSource: e.cfg.StartSource(),
		PostersOnly: e.cfg.UI.PostersOnly,
		Opener:      launcher.New(e.cfg.Player.Command, e.cfg.Player.Args, e.logger),
		Logger:      e.logger,
	})

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	e.logger.Info("starting TUI")

	if _, err := p.Run(); err != nil {
		e.logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	e.logger.Info("shutting down")
	return nil
}
