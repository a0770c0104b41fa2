package freeform

import (
	"errors"
	"fmt"

	"crosswarped.com/freeform/pkg/primitives"
)

var ErrNoClue = errors.New("no such clue")

// Puzzle is a generated grid with its numbered clues.
type Puzzle struct {
	ID     string  `json:"id"`
	Rows   int     `json:"rows"`
	Cols   int     `json:"cols"`
	Grid   *Grid   `json:"grid"`
	Words  []Word  `json:"-"`
	Across []*Clue `json:"across"`
	Down   []*Clue `json:"down"`
}

// Clues returns the clue list for o.
func (p *Puzzle) Clues(o primitives.Orientation) []*Clue {
	if o == primitives.Down {
		return p.Down
	}
	return p.Across
}

// Clue returns the clue numbered index in orientation o.
func (p *Puzzle) Clue(index int, o primitives.Orientation) (*Clue, error) {
	for _, c := range p.Clues(o) {
		if c.Index == index {
			return c, nil
		}
	}
	return nil, fmt.Errorf("%d %s: %w", index, o, ErrNoClue)
}

// HasClue reports whether a clue numbered index runs in orientation o.
func (p *Puzzle) HasClue(index int, o primitives.Orientation) bool {
	_, err := p.Clue(index, o)
	return err == nil
}
