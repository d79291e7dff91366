// Package wantlist loads the operator-maintained list of wanted but
// missing tracks.
//
// The list is a line-oriented text file with one `Artist - Title`
// entry per line. Blank lines and lines starting with '#' are
// skipped. Malformed lines are reported and skipped, never fatal.
package wantlist

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/llehouerou/wantlist/internal/library"
)

// Entry is one wanted track. Its identity across runs is the line
// number it was parsed from.
type Entry struct {
	Line   int // 1-based line number in the list file
	Raw    string
	Artist string
	Title  string

	// Normalized comparison keys, computed once at load time.
	NormArtist string
	NormTitle  string
}

// ParseError records a malformed line that was skipped.
type ParseError struct {
	Line int
	Text string
}

func (e ParseError) Error() string {
	return fmt.Sprintf("line %d: no %q separator in %q", e.Line, separator, e.Text)
}

// List is the parsed wanted list, in file order.
type List struct {
	Entries   []Entry
	Malformed []ParseError
}

const separator = " - "

// Load parses the wanted list at path. File order is preserved since
// it drives the matcher's assignment order.
func Load(path string) (*List, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("wanted list: %w", err)
	}
	defer f.Close()

	list := &List{}
	scanner := bufio.NewScanner(f)
	for line := 1; scanner.Scan(); line++ {
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		idx := strings.Index(text, separator)
		if idx <= 0 {
			list.Malformed = append(list.Malformed, ParseError{Line: line, Text: text})
			continue
		}

		artist := strings.TrimSpace(text[:idx])
		title := strings.TrimSpace(text[idx+len(separator):])
		if title == "" {
			list.Malformed = append(list.Malformed, ParseError{Line: line, Text: text})
			continue
		}

		list.Entries = append(list.Entries, Entry{
			Line:       line,
			Raw:        text,
			Artist:     artist,
			Title:      title,
			NormArtist: library.Normalize(artist),
			NormTitle:  library.Normalize(title),
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("wanted list: %w", err)
	}
	return list, nil
}
