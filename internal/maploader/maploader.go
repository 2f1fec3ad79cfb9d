// Package maploader parses the ASCII map file format into a ground-truth
// GridMap, generalized from the teacher's track-to-state conversion.
package maploader

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/boundaryrobots/mapexplore/internal/cellmap"
)

// ErrorKind names one of the fatal, startup-time map load failures.
type ErrorKind string

const (
	Empty                 ErrorKind = "empty"
	InconsistentRowLength ErrorKind = "inconsistent-row-length"
	InvalidCharacter      ErrorKind = "invalid-character"
)

// LoadError reports a malformed map file, with enough detail (line,
// column, offending rune) to point a user at the problem.
type LoadError struct {
	Kind ErrorKind
	Line int
	Col  int
	Char rune
}

func (e *LoadError) Error() string {
	switch e.Kind {
	case Empty:
		return "maploader: map file is empty"
	case InconsistentRowLength:
		return fmt.Sprintf("maploader: row %d has a different length than row 1", e.Line)
	default:
		return fmt.Sprintf("maploader: invalid character %q at line %d, column %d", e.Char, e.Line, e.Col)
	}
}

// Load reads an ASCII map file from path and converts it to a GridMap.
// Width is the length of the first line; height is the number of lines.
func Load(path string) (*cellmap.GridMap, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f)
}

// Parse reads the ASCII map format from r. Exposed separately from Load
// so callers can parse an in-memory map (tests, embedded defaults)
// without a real file.
func Parse(r io.Reader) (*cellmap.GridMap, error) {
	var rows []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		rows = append(rows, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, &LoadError{Kind: Empty}
	}

	width := len(rows[0])
	height := len(rows)
	for i, row := range rows {
		if len(row) != width {
			return nil, &LoadError{Kind: InconsistentRowLength, Line: i + 1}
		}
	}

	gm := cellmap.New(width, height)
	for y, row := range rows {
		for x, ch := range row {
			cell, ok := cellFor(ch)
			if !ok {
				return nil, &LoadError{Kind: InvalidCharacter, Line: y + 1, Col: x + 1, Char: ch}
			}
			gm.Set(x, y, cell)
		}
	}
	return gm, nil
}

func cellFor(ch rune) (cellmap.Cell, bool) {
	switch ch {
	case '#':
		return cellmap.Obstacle, true
	case '.':
		return cellmap.Empty, true
	case ' ', '?':
		return cellmap.Unexplored, true
	default:
		return cellmap.Unexplored, false
	}
}
