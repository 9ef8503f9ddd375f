package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/mmcdole/marquee/internal/config"
	"github.com/mmcdole/marquee/internal/lists"
	"github.com/mmcdole/marquee/internal/log"
	"github.com/mmcdole/marquee/internal/service"
	"github.com/mmcdole/marquee/internal/store"
	"github.com/mmcdole/marquee/internal/tmdb"
	"github.com/spf13/afero"
)

var errNotConfigured = errors.New("no TMDB token configured, run marquee once to set one up or set MARQUEE_TMDB_TOKEN")

// env holds what commands share for one invocation. Fields left nil are
// filled from the config on first use, so tests can preset them.
type env struct {
	cfg    *config.Config
	logger *slog.Logger
	fs     afero.Fs

	client    *tmdb.Client
	lists     *lists.Store
	snapshots *store.SnapshotStore
	closers   []io.Closer
}

func newEnv() *env {
	return &env{fs: afero.NewOsFs()}
}

// init loads config and sets up logging unless already provided
func (e *env) init() error {
	if e.cfg == nil {
		cfg, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		e.cfg = cfg
	}
	warnings := e.cfg.Normalize()

	if e.logger == nil {
		logger, closer, err := log.SetupLogger(&e.cfg.Logging)
		if err != nil {
			// Fall back to null logger if file logging fails
			logger = log.NullLogger()
		} else {
			e.closers = append(e.closers, closer)
		}
		e.logger = logger
	}
	slog.SetDefault(e.logger)

	for _, w := range warnings {
		e.logger.Warn("config value replaced", "warning", w)
	}
	return nil
}

// openLists restores the saved lists and wires the bridge that keeps them
// on disk. With memoryFallback an unopenable data directory degrades to a
// memory-only store instead of failing.
func (e *env) openLists(memoryFallback bool) (*lists.Store, error) {
	if e.lists != nil {
		return e.lists, nil
	}

	dataDir, err := log.ExpandHome(e.cfg.Storage.DataDir)
	if err != nil {
		return nil, err
	}

	repo, err := store.NewSnapshotStore(dataDir)
	if err != nil {
		if !memoryFallback {
			return nil, err
		}
		e.logger.Warn("lists will not be saved this session", "data_dir", dataDir, "error", err)
		repo, _ = store.NewSnapshotStore("")
	}
	e.closers = append(e.closers, repo)
	e.snapshots = repo

	bridge := store.NewBridge(repo, e.logger)
	e.lists = lists.New(bridge.Initial())
	e.lists.Subscribe(bridge)
	return e.lists, nil
}

// tmdbClient returns the catalog client, or errNotConfigured without a token
func (e *env) tmdbClient() (*tmdb.Client, error) {
	if e.client != nil {
		return e.client, nil
	}
	if !e.cfg.IsConfigured() {
		return nil, errNotConfigured
	}
	e.client = tmdb.NewClient(e.cfg.TMDB.BaseURL, e.cfg.TMDB.Token, e.cfg.TMDB.Language, e.logger)
	e.client.SetTimeout(e.cfg.TMDB.Timeout)
	return e.client, nil
}

// catalog wraps the client in the caching catalog service
func (e *env) catalog() (*service.CatalogService, error) {
	client, err := e.tmdbClient()
	if err != nil {
		return nil, err
	}
	return service.NewCatalogService(client, e.logger), nil
}

// Close releases the store and the log file, newest first
func (e *env) Close() {
	for i := len(e.closers) - 1; i >= 0; i-- {
		if err := e.closers[i].Close(); err != nil && e.logger != nil {
			e.logger.Warn("failed to close resource", "error", err)
		}
	}
	e.closers = nil
	e.lists = nil
	e.snapshots = nil
}
