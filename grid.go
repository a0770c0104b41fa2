package freeform

import (
	"fmt"
	"strings"

	"github.com/goccy/go-json"

	"crosswarped.com/freeform/pkg/primitives"
)

// Grid is a rows×cols matrix of letters with a parallel record of which
// orientation(s) own each cell.
//
// Blank cells hold primitives.Blank. Letter use is set when a word is placed
// and never reset.
type Grid struct {
	rows, cols int
	cells      [][]rune
	use        [][]primitives.LetterUse
}

func NewGrid(rows, cols int) *Grid {
	g := &Grid{
		rows:  rows,
		cols:  cols,
		cells: make([][]rune, rows),
		use:   make([][]primitives.LetterUse, rows),
	}
	for r := range rows {
		g.cells[r] = make([]rune, cols)
		for c := range cols {
			g.cells[r][c] = primitives.Blank
		}
		g.use[r] = make([]primitives.LetterUse, cols)
	}
	return g
}

func (g *Grid) Rows() int {
	return g.rows
}

func (g *Grid) Cols() int {
	return g.cols
}

func (g *Grid) InBounds(row, col int) bool {
	return row >= 0 && row < g.rows && col >= 0 && col < g.cols
}

// Get returns the cell at (row, col). Out of bounds cells read as blank.
func (g *Grid) Get(row, col int) rune {
	if !g.InBounds(row, col) {
		return primitives.Blank
	}
	return g.cells[row][col]
}

// LetterUse returns which orientations own (row, col). Out of bounds cells are unused.
func (g *Grid) LetterUse(row, col int) primitives.LetterUse {
	if !g.InBounds(row, col) {
		return primitives.LetterUseNone
	}
	return g.use[row][col]
}

// Occupied reports whether (row, col) holds a letter. Cells outside the grid
// are never occupied.
func (g *Grid) Occupied(row, col int) bool {
	return g.Get(row, col) != primitives.Blank
}

// IsCellLegal reports whether a candidate growing in orientation o may include
// (row, col), where (nextRow, nextCol) is the following cell in the direction of growth.
func (g *Grid) IsCellLegal(row, col, nextRow, nextCol int, o primitives.Orientation) bool {
	// Growing further would run into a parallel word.
	if g.LetterUse(nextRow, nextCol).Includes(o) {
		return false
	}

	// A letter here belongs to a perpendicular word, which is what we cross.
	if g.Occupied(row, col) {
		return true
	}

	// A new letter must not extend a neighbouring word.
	dr, dc := o.Opposite().Delta()
	return !g.Occupied(row-dr, col-dc) && !g.Occupied(row+dr, col+dc)
}

// place writes w into the grid and updates letter use along its span.
func (g *Grid) place(w Word) {
	for i, r := range w.String {
		row, col := w.Cell(i)
		g.cells[row][col] = r
		g.use[row][col] = g.use[row][col].With(w.Orientation)
	}
}

// Pattern returns the current contents of the n cells starting at (row, col) in orientation o.
func (g *Grid) Pattern(row, col, n int, o primitives.Orientation) primitives.Pattern {
	dr, dc := o.Delta()
	p := make(primitives.Pattern, n)
	for i := range n {
		p[i] = g.Get(row+i*dr, col+i*dc)
	}
	return p
}

// Lines returns one string per row, blank cells as primitives.Blank.
func (g *Grid) Lines() []string {
	lines := make([]string, g.rows)
	for r := range g.rows {
		lines[r] = string(g.cells[r])
	}
	return lines
}

func (g *Grid) Repr() string {
	return strings.Join(g.Lines(), "\n")
}

func (g *Grid) DebugString() string {
	return fmt.Sprintf("Grid{rows: %d, cols: %d, cells: %v, use: %v}", g.rows, g.cols, g.Lines(), g.use)
}

func (g *Grid) MarshalJSON() ([]byte, error) {
	return json.Marshal(g.Lines())
}
