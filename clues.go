package freeform

import (
	"errors"
	"fmt"
	"sort"

	"crosswarped.com/freeform/internal/dictionary"
	"crosswarped.com/freeform/pkg/primitives"
)

var ErrUnknownWord = errors.New("word is not in the dictionary")

// Word is a placed word: its letters and where it starts.
type Word struct {
	Orientation primitives.Orientation `json:"orientation"`
	String      string                 `json:"word"`
	StartRow    int                    `json:"row"`
	StartCol    int                    `json:"col"`
}

// Cell returns the grid coordinates of the i'th letter.
func (w Word) Cell(i int) (row, col int) {
	dr, dc := w.Orientation.Delta()
	return w.StartRow + i*dr, w.StartCol + i*dc
}

// Clue is a numbered word with its definitions.
type Clue struct {
	String      string                 `json:"word"`
	Index       int                    `json:"index"`
	Orientation primitives.Orientation `json:"orientation"`
	Definitions []string               `json:"definitions"`
	// CurrentDefinition selects which of Definitions is shown. Only a solving
	// Session moves it.
	CurrentDefinition int `json:"currentDefinition"`
	StartRow          int `json:"row"`
	StartCol          int `json:"col"`
}

func (c *Clue) Word() Word {
	return Word{Orientation: c.Orientation, String: c.String, StartRow: c.StartRow, StartCol: c.StartCol}
}

// Definition returns the definition currently selected.
func (c *Clue) Definition() string {
	return c.Definitions[c.CurrentDefinition%len(c.Definitions)]
}

// Label renders the clue as it is listed, e.g. "3 down (5) Shop".
func (c *Clue) Label() string {
	return fmt.Sprintf("%d %s (%d) %s", c.Index, c.Orientation, len(c.String), c.Definition())
}

type startCell struct {
	col, row int
}

// IndexClues turns placed words into numbered across and down clues.
//
// Start cells are visited in column-major order. Across clues and cells shared
// by an across and a down clue take the across counter; a shared cell gives the
// down clue the same number. Down-only clues then take the lowest numbers not
// already held by a down clue. The across list is in index order and the down
// list is sorted by index.
func IndexClues(words []Word, d dictionary.Dictionary) (across, down []*Clue, err error) {
	groups := make(map[startCell][]*Clue)
	for _, w := range words {
		if !d.Contains(w.String) {
			return nil, nil, fmt.Errorf("%q: %w", w.String, ErrUnknownWord)
		}
		defs, err := d.Definitions(w.String)
		if err != nil {
			return nil, nil, err
		}
		c := &Clue{
			String:      w.String,
			Orientation: w.Orientation,
			Definitions: defs,
			StartRow:    w.StartRow,
			StartCol:    w.StartCol,
		}
		key := startCell{col: w.StartCol, row: w.StartRow}
		groups[key] = append(groups[key], c)
	}

	keys := make([]startCell, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].col != keys[j].col {
			return keys[i].col < keys[j].col
		}
		return keys[i].row < keys[j].row
	})

	acrossCounter := 1
	unusableDown := make(map[int]bool)
	var downOnly []*Clue
	for _, k := range keys {
		group := groups[k]
		if len(group) > 1 {
			for _, c := range group {
				c.Index = acrossCounter
				if c.Orientation == primitives.Across {
					across = append(across, c)
				} else {
					down = append(down, c)
				}
			}
			unusableDown[acrossCounter] = true
			acrossCounter++
			continue
		}

		c := group[0]
		switch c.Orientation {
		case primitives.Across:
			c.Index = acrossCounter
			across = append(across, c)
			acrossCounter++
		case primitives.Down:
			downOnly = append(downOnly, c)
		}
	}

	// Shared numbers are all reserved before any down-only clue is numbered,
	// otherwise a down-only clue could take a number a later shared cell needs.
	downCounter := 1
	for _, c := range downOnly {
		for unusableDown[downCounter] {
			downCounter++
		}
		c.Index = downCounter
		unusableDown[downCounter] = true
		downCounter++
		down = append(down, c)
	}

	sort.SliceStable(down, func(i, j int) bool {
		return down[i].Index < down[j].Index
	})
	return across, down, nil
}
