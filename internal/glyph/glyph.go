// Package glyph holds the fixed 5x5 bitmaps for the digits 0-9.
package glyph

import "strings"

// Matrix dimensions.
const (
	Rows  = 5
	Cols  = 5
	Cells = Rows * Cols
)

// Glyph is a row-major 5x5 mask: index = row*Cols + col.
type Glyph [Cells]bool

// Lit reports whether the cell at row, col is on.
func (g Glyph) Lit(row, col int) bool {
	if row < 0 || row >= Rows || col < 0 || col >= Cols {
		return false
	}
	return g[row*Cols+col]
}

// Count returns the number of lit cells.
func (g Glyph) Count() int {
	n := 0
	for _, on := range g {
		if on {
			n++
		}
	}
	return n
}

// String draws the glyph as five lines of '#' and '.'.
func (g Glyph) String() string {
	var b strings.Builder
	for row := 0; row < Rows; row++ {
		if row > 0 {
			b.WriteByte('\n')
		}
		for col := 0; col < Cols; col++ {
			if g.Lit(row, col) {
				b.WriteByte('#')
			} else {
				b.WriteByte('.')
			}
		}
	}
	return b.String()
}

// For returns the glyph for digit d. ok is false outside 0-9.
func For(d int) (g Glyph, ok bool) {
	if d < 0 || d >= len(table) {
		return Glyph{}, false
	}
	return table[d], true
}

// The rows are stored as they are physically wired on the board, so some
// digits read mirrored when the table is printed.
var table = [10]Glyph{
	parse(
		".###.",
		".#.#.",
		".#.#.",
		".#.#.",
		".###.",
	),
	parse(
		".###.",
		"..#..",
		"..#..",
		".##..",
		"..#..",
	),
	parse(
		".###.",
		".#...",
		".###.",
		"...#.",
		".###.",
	),
	parse(
		".###.",
		"...#.",
		".###.",
		"...#.",
		".###.",
	),
	parse(
		".#...",
		"...#.",
		".###.",
		".#.#.",
		".#.#.",
	),
	parse(
		".###.",
		"...#.",
		".###.",
		".#...",
		".###.",
	),
	parse(
		".###.",
		".#.#.",
		".###.",
		".#...",
		".###.",
	),
	parse(
		".#...",
		"...#.",
		".#...",
		"...#.",
		".###.",
	),
	parse(
		".###.",
		".#.#.",
		".###.",
		".#.#.",
		".###.",
	),
	parse(
		".###.",
		"...#.",
		".###.",
		".#.#.",
		".###.",
	),
}

func parse(rows ...string) Glyph {
	var g Glyph
	for r, line := range rows {
		for c := 0; c < Cols && c < len(line); c++ {
			g[r*Cols+c] = line[c] == '#'
		}
	}
	return g
}
