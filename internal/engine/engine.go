// Package engine orchestrates reconciliation passes: scan the library,
// load the wanted list, match, diff against the previous state, and
// hand the delta to the emitters.
//
// At most one pass runs at a time. Triggers arriving mid-pass coalesce
// into a single pending pass, so the engine never runs overlapping
// passes and never falls permanently behind a burst of triggers.
package engine

import (
	"context"
	"log/slog"

	"github.com/llehouerou/wantlist/internal/errmsg"
	"github.com/llehouerou/wantlist/internal/library"
	"github.com/llehouerou/wantlist/internal/match"
	"github.com/llehouerou/wantlist/internal/state"
	"github.com/llehouerou/wantlist/internal/wantlist"
)

// Scanner builds a library inventory snapshot.
type Scanner interface {
	Scan(ctx context.Context) (*library.Inventory, error)
}

// Loader reads the wanted-track list.
type Loader interface {
	Load() (*wantlist.List, error)
}

// Emitter receives the state and delta of a completed pass and writes
// the playlist artifacts.
type Emitter interface {
	Emit(st state.State, diff state.Diff) error
}

// Notifier is told about each newly matched track. Implementations
// must not block the pass.
type Notifier interface {
	TrackFound(rec match.Record)
}

// Engine serializes reconciliation passes over a coalescing trigger.
type Engine struct {
	scanner  Scanner
	loader   Loader
	matcher  *match.Matcher
	store    *state.Store
	emitter  Emitter
	notifier Notifier // optional
	log      *slog.Logger

	// trigger has capacity 1: it is a pending flag, not a queue.
	trigger chan struct{}
}

// New assembles an engine. notifier may be nil.
func New(scanner Scanner, loader Loader, matcher *match.Matcher, store *state.Store,
	emitter Emitter, notifier Notifier, log *slog.Logger,
) *Engine {
	if log == nil {
		log = slog.Default()
	}
	return &Engine{
		scanner:  scanner,
		loader:   loader,
		matcher:  matcher,
		store:    store,
		emitter:  emitter,
		notifier: notifier,
		log:      log,
		trigger:  make(chan struct{}, 1),
	}
}

// Trigger requests a reconciliation pass. Triggers are best-effort and
// coalescing: any number of calls while a pass is running or pending
// collapse into exactly one follow-up pass.
func (e *Engine) Trigger() {
	select {
	case e.trigger <- struct{}{}:
	default:
	}
}

// Run consumes triggers until ctx is cancelled. A running pass is
// never interrupted mid-scan; cancellation takes effect between
// passes and at pass phase boundaries.
func (e *Engine) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-e.trigger:
			e.runPass(ctx)
		}
	}
}

// runPass executes one reconciliation pass. Failures abort the pass
// and leave the previous state untouched; the next trigger retries.
func (e *Engine) runPass(ctx context.Context) {
	e.log.Debug("pass started")

	inv, err := e.scanner.Scan(ctx)
	if err != nil {
		e.log.Error(errmsg.Format(errmsg.OpScanLibrary, err))
		return
	}
	for _, scanErr := range inv.Errors {
		e.log.Warn("scan error", "error", scanErr)
	}

	list, err := e.loader.Load()
	if err != nil {
		e.log.Error(errmsg.Format(errmsg.OpLoadWanted, err))
		return
	}
	for _, parseErr := range list.Malformed {
		e.log.Warn("skipped wanted entry", "error", parseErr)
	}

	records := e.matcher.Match(list.Entries, inv)

	diff, err := e.store.Replace(records)
	if err != nil {
		e.log.Error(errmsg.Format(errmsg.OpPersistState, err))
		return
	}

	e.log.Info("pass completed",
		"library_tracks", len(inv.Tracks),
		"wanted", len(list.Entries),
		"newly_matched", len(diff.Matched),
		"newly_unmatched", len(diff.Unmatched),
		"moved", len(diff.Moved),
		"newly_ambiguous", len(diff.Ambiguous),
	)

	if diff.Empty() {
		return
	}

	// State is already committed; an emit failure only loses the
	// downstream artifact write and is retried on the next delta.
	if err := e.emitter.Emit(e.store.Current(), diff); err != nil {
		e.log.Error(errmsg.Format(errmsg.OpWritePlaylist, err))
	}

	if e.notifier != nil {
		for _, rec := range diff.Matched {
			e.notifier.TrackFound(rec)
		}
	}
}
