package wantlist

import (
	"os"
	"path/filepath"
	"testing"
)

func writeList(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "wanted.txt")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeList(t, `# tracks I still need
Queen - Bohemian Rhapsody

Beyonce - Halo
  The Beatles - Here Comes the Sun
`)

	list, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if len(list.Malformed) != 0 {
		t.Fatalf("unexpected malformed lines: %v", list.Malformed)
	}
	if len(list.Entries) != 3 {
		t.Fatalf("got %d entries, want 3", len(list.Entries))
	}

	// File order and line identity are preserved
	want := []struct {
		line   int
		artist string
		title  string
	}{
		{2, "Queen", "Bohemian Rhapsody"},
		{4, "Beyonce", "Halo"},
		{5, "The Beatles", "Here Comes the Sun"},
	}
	for i, w := range want {
		e := list.Entries[i]
		if e.Line != w.line || e.Artist != w.artist || e.Title != w.title {
			t.Errorf("entry %d = {line %d, %q, %q}, want {line %d, %q, %q}",
				i, e.Line, e.Artist, e.Title, w.line, w.artist, w.title)
		}
	}

	if list.Entries[1].NormArtist != "beyonce" || list.Entries[1].NormTitle != "halo" {
		t.Errorf("normalized keys = (%q, %q)",
			list.Entries[1].NormArtist, list.Entries[1].NormTitle)
	}
}

func TestLoadMalformed(t *testing.T) {
	path := writeList(t, `Queen - Bohemian Rhapsody
no separator here
Artist Only -
- Title Only
`)

	list, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if len(list.Entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(list.Entries))
	}
	if len(list.Malformed) != 3 {
		t.Fatalf("got %d malformed, want 3: %v", len(list.Malformed), list.Malformed)
	}
	if list.Malformed[0].Line != 2 {
		t.Errorf("first malformed line = %d, want 2", list.Malformed[0].Line)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "gone.txt")); err == nil {
		t.Fatal("Load() of missing file: expected error")
	}
}

func TestLoadEmptyFile(t *testing.T) {
	list, err := Load(writeList(t, ""))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if len(list.Entries) != 0 || len(list.Malformed) != 0 {
		t.Errorf("got %d entries, %d malformed, want none", len(list.Entries), len(list.Malformed))
	}
}
