package library

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/llehouerou/wantlist/internal/tags"
)

const defaultWorkers = 8

// Scanner walks a library volume and builds its Inventory.
type Scanner struct {
	Root    string
	Workers int
	Log     *slog.Logger
}

// NewScanner returns a scanner over root.
func NewScanner(root string, workers int, log *slog.Logger) *Scanner {
	if workers <= 0 {
		workers = defaultWorkers
	}
	if log == nil {
		log = slog.Default()
	}
	return &Scanner{Root: root, Workers: workers, Log: log}
}

// Scan walks the library volume and returns its Inventory.
// Per-file failures are collected in Inventory.Errors; only an
// unreadable volume root fails the scan itself.
func (s *Scanner) Scan(ctx context.Context) (*Inventory, error) {
	if info, err := os.Stat(s.Root); err != nil {
		return nil, fmt.Errorf("library root: %w", err)
	} else if !info.IsDir() {
		return nil, fmt.Errorf("library root %s: not a directory", s.Root)
	}

	files, err := s.discover(ctx)
	if err != nil {
		return nil, err
	}

	return s.process(files), nil
}

// discover returns the paths of all recognized audio files under the
// root, in walk order. Walk order is lexical per directory, which
// keeps scan order (and thus match tie-breaks) stable across runs.
func (s *Scanner) discover(ctx context.Context) ([]string, error) {
	var files []string
	err := filepath.WalkDir(s.Root, func(path string, d fs.DirEntry, walkErr error) error {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if walkErr != nil {
			// Unreadable subtrees yield fewer candidates this cycle,
			// not a failed pass.
			s.Log.Warn("skipping unreadable path", "path", path, "error", walkErr)
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() || !tags.IsMusicFile(path) {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

type scanResult struct {
	track Track
	err   error
	skip  bool
}

// process extracts descriptors from the discovered files in parallel,
// preserving discovery order in the resulting Inventory.
func (s *Scanner) process(files []string) *Inventory {
	results := make([]scanResult, len(files))
	work := make(chan int)

	var wg sync.WaitGroup
	for n := 0; n < s.Workers; n++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range work {
				results[i] = s.readFile(files[i])
			}
		}()
	}
	for i := range files {
		work <- i
	}
	close(work)
	wg.Wait()

	inv := &Inventory{Tracks: make([]Track, 0, len(files))}
	for _, r := range results {
		if r.err != nil {
			inv.Errors = append(inv.Errors, r.err)
		}
		if r.skip {
			continue
		}
		t := r.track
		t.Order = len(inv.Tracks)
		inv.Tracks = append(inv.Tracks, t)
	}
	return inv
}

// readFile builds a Track descriptor for one file. Tag metadata is
// preferred; a parseable filename is the fallback; failing both, the
// raw filename becomes the title so the file stays matchable instead
// of being silently dropped.
func (s *Scanner) readFile(path string) scanResult {
	t, err := tags.Read(path)
	if err != nil {
		if openErr := probeOpen(path); openErr != nil {
			return scanResult{err: fmt.Errorf("read %s: %w", path, openErr), skip: true}
		}
		// File is readable but its tags are not; fall back to the name.
		artist, title := ParseFilename(path)
		return scanResult{track: NewTrack(path, artist, title, "", 0)}
	}

	artist, title, album := t.Artist, t.Title, t.Album
	if title == "" {
		fa, ft := ParseFilename(path)
		if artist == "" {
			artist = fa
		}
		title = ft
	}
	return scanResult{track: NewTrack(path, artist, title, album, 0)}
}

// probeOpen distinguishes unreadable files from files with broken tags.
func probeOpen(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	return f.Close()
}
