package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/llehouerou/wantlist/internal/config"
	"github.com/llehouerou/wantlist/internal/engine"
	"github.com/llehouerou/wantlist/internal/errmsg"
	"github.com/llehouerou/wantlist/internal/library"
	"github.com/llehouerou/wantlist/internal/match"
	"github.com/llehouerou/wantlist/internal/notify"
	"github.com/llehouerou/wantlist/internal/playlist"
	"github.com/llehouerou/wantlist/internal/state"
	"github.com/llehouerou/wantlist/internal/wantlist"
	"github.com/llehouerou/wantlist/internal/watcher"
)

// loader adapts wantlist.Load to the engine's Loader interface, bound
// to the configured list path.
type loader struct {
	path string
}

func (l loader) Load() (*wantlist.List, error) {
	return wantlist.Load(l.path)
}

func main() {
	if err := run(); err != nil && err != context.Canceled {
		fmt.Fprintln(os.Stderr, errmsg.Format(errmsg.OpInitialize, err))
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	log := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(log)

	matchCfg := cfg.GetMatchConfig()
	scanCfg := cfg.GetScanConfig()

	dbPath := cfg.StateDB
	if dbPath == "" {
		dbPath, err = state.DefaultPath()
		if err != nil {
			return err
		}
	}
	store, err := state.Open(dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	// A nil *notify.Client must stay a nil interface in the engine.
	var notifier engine.Notifier
	if n := notify.New(cfg.Notify.URL, log); n != nil {
		notifier = n
	}

	eng := engine.New(
		library.NewScanner(cfg.LibraryRoot, scanCfg.Workers, log),
		loader{path: cfg.WantedList},
		&match.Matcher{Threshold: matchCfg.Threshold, Epsilon: matchCfg.Epsilon},
		store,
		playlist.NewWriter(cfg.PlaylistDir, log),
		notifier,
		log,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	w := watcher.New(cfg.LibraryRoot, scanCfg.Debounce, eng.Trigger, log)
	if err := w.Start(); err != nil {
		// The periodic rescan still covers changes; keep running.
		log.Warn(errmsg.Format(errmsg.OpWatchLibrary, err))
	} else {
		defer w.Stop() //nolint:errcheck // shutdown path
	}

	go func() {
		ticker := time.NewTicker(scanCfg.Interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				eng.Trigger()
			case <-ctx.Done():
				return
			}
		}
	}()

	log.Info("wantlist daemon started",
		"library_root", cfg.LibraryRoot,
		"wanted_list", cfg.WantedList,
		"playlist_dir", cfg.PlaylistDir,
		"threshold", matchCfg.Threshold,
	)

	// Reconcile once at startup; the watcher and ticker take it from here.
	eng.Trigger()

	return eng.Run(ctx)
}
