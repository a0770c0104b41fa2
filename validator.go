package freeform

import (
	"fmt"
	"strings"

	"crosswarped.com/freeform/internal/dictionary"
	"crosswarped.com/freeform/pkg/primitives"
)

// Check names one construction rule verified by Validate.
type Check string

const (
	CheckNoBlock        Check = "no-2x2-block"
	CheckCluesMatchGrid Check = "clues-match-grid"
	CheckNoAdjacency    Check = "no-adjacency"
	CheckDictionary     Check = "dictionary"
	CheckUniqueIndices  Check = "unique-indices"
)

// Checks lists every check in the order Validate runs them.
var Checks = []Check{CheckNoBlock, CheckCluesMatchGrid, CheckNoAdjacency, CheckDictionary, CheckUniqueIndices}

// Diagnostic locates the first failure of one check.
type Diagnostic struct {
	Check       Check                  `json:"check"`
	Row         int                    `json:"row"`
	Col         int                    `json:"col"`
	Clue        string                 `json:"clue,omitempty"`
	Orientation primitives.Orientation `json:"orientation"`
	Index       int                    `json:"index,omitempty"`
	Message     string                 `json:"message"`
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s", d.Check, d.Message)
}

// Report is the outcome of every check. Failures holds at most one
// Diagnostic per check.
type Report struct {
	Failures []Diagnostic `json:"failures"`
}

// OK reports whether every check passed.
func (r Report) OK() bool {
	return len(r.Failures) == 0
}

// Failed reports whether check c failed.
func (r Report) Failed(c Check) bool {
	for _, d := range r.Failures {
		if d.Check == c {
			return true
		}
	}
	return false
}

func (r Report) String() string {
	if r.OK() {
		return "ok"
	}
	parts := make([]string, len(r.Failures))
	for i, d := range r.Failures {
		parts[i] = d.String()
	}
	return strings.Join(parts, "; ")
}

// Validate runs every check against p. Each check stops at its first failure.
func Validate(p *Puzzle, d dictionary.Dictionary) Report {
	clues := make([]*Clue, 0, len(p.Across)+len(p.Down))
	clues = append(clues, p.Across...)
	clues = append(clues, p.Down...)

	var r Report
	for _, check := range []func() (Diagnostic, bool){
		func() (Diagnostic, bool) { return checkNoBlock(p.Grid) },
		func() (Diagnostic, bool) { return checkCluesMatchGrid(p.Grid, clues) },
		func() (Diagnostic, bool) { return checkNoAdjacency(p.Grid, clues) },
		func() (Diagnostic, bool) { return checkDictionary(d, clues) },
		func() (Diagnostic, bool) { return checkUniqueIndices(p.Across, p.Down) },
	} {
		if diag, ok := check(); !ok {
			r.Failures = append(r.Failures, diag)
		}
	}
	return r
}

func checkNoBlock(g *Grid) (Diagnostic, bool) {
	for row := 0; row+1 < g.Rows(); row++ {
		for col := 0; col+1 < g.Cols(); col++ {
			if g.Occupied(row, col) && g.Occupied(row, col+1) &&
				g.Occupied(row+1, col) && g.Occupied(row+1, col+1) {
				return Diagnostic{
					Check:   CheckNoBlock,
					Row:     row,
					Col:     col,
					Message: fmt.Sprintf("cells (%d,%d) to (%d,%d) are all filled", row, col, row+1, col+1),
				}, false
			}
		}
	}
	return Diagnostic{}, true
}

func clueDiagnostic(check Check, c *Clue, row, col int, format string, args ...any) Diagnostic {
	return Diagnostic{
		Check:       check,
		Row:         row,
		Col:         col,
		Clue:        c.String,
		Orientation: c.Orientation,
		Index:       c.Index,
		Message:     fmt.Sprintf("%d %s %q: ", c.Index, c.Orientation, c.String) + fmt.Sprintf(format, args...),
	}
}

func checkCluesMatchGrid(g *Grid, clues []*Clue) (Diagnostic, bool) {
	for _, c := range clues {
		w := c.Word()
		for i, want := range c.String {
			row, col := w.Cell(i)
			if !g.InBounds(row, col) {
				return clueDiagnostic(CheckCluesMatchGrid, c, row, col, "runs off the grid"), false
			}
			if got := g.Get(row, col); got != want {
				return clueDiagnostic(CheckCluesMatchGrid, c, row, col, "grid has %q, clue has %q", got, want), false
			}
		}
	}
	return Diagnostic{}, true
}

func checkNoAdjacency(g *Grid, clues []*Clue) (Diagnostic, bool) {
	for _, c := range clues {
		w := c.Word()
		for _, i := range []int{-1, len(c.String)} {
			row, col := w.Cell(i)
			if g.Occupied(row, col) {
				return clueDiagnostic(CheckNoAdjacency, c, row, col, "touches a letter at (%d,%d)", row, col), false
			}
		}
	}
	return Diagnostic{}, true
}

func checkDictionary(d dictionary.Dictionary, clues []*Clue) (Diagnostic, bool) {
	for _, c := range clues {
		if !d.Contains(c.String) {
			return clueDiagnostic(CheckDictionary, c, c.StartRow, c.StartCol, "not in the dictionary"), false
		}
	}
	return Diagnostic{}, true
}

func checkUniqueIndices(across, down []*Clue) (Diagnostic, bool) {
	for _, clues := range [][]*Clue{across, down} {
		seen := make(map[int]bool, len(clues))
		for _, c := range clues {
			if seen[c.Index] {
				return clueDiagnostic(CheckUniqueIndices, c, c.StartRow, c.StartCol, "index %d is used twice", c.Index), false
			}
			seen[c.Index] = true
		}
	}
	return Diagnostic{}, true
}
