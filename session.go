package freeform

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"crosswarped.com/freeform/pkg/primitives"
)

var (
	ErrNotAlphabetic     = errors.New("answers can only contain letters")
	ErrWrongLength       = errors.New("answer has the wrong length")
	ErrOnlyOneDefinition = errors.New("clue has only one definition")
)

// Session is one person solving a Puzzle: the clue they are looking at and
// the letters they have entered so far.
type Session struct {
	puzzle   *Puzzle
	selected *Clue
	guesses  [][]rune
}

// NewSession starts solving p with the first across clue selected.
func NewSession(p *Puzzle) *Session {
	guesses := make([][]rune, p.Rows)
	for r := range guesses {
		guesses[r] = make([]rune, p.Cols)
		for c := range guesses[r] {
			guesses[r][c] = primitives.Blank
		}
	}
	s := &Session{puzzle: p, guesses: guesses}
	switch {
	case len(p.Across) > 0:
		s.selected = p.Across[0]
	case len(p.Down) > 0:
		s.selected = p.Down[0]
	}
	return s
}

func (s *Session) Selected() *Clue {
	return s.selected
}

// Select makes the clue numbered index in orientation o the selected clue.
func (s *Session) Select(index int, o primitives.Orientation) (*Clue, error) {
	c, err := s.puzzle.Clue(index, o)
	if err != nil {
		return nil, err
	}
	s.selected = c
	return c, nil
}

// ParseClueRef parses references such as "3 down", "12 a" or "7across".
func ParseClueRef(ref string) (int, primitives.Orientation, error) {
	ref = strings.TrimSpace(ref)
	i := strings.IndexFunc(ref, func(r rune) bool { return r < '0' || r > '9' })
	if i <= 0 {
		return 0, 0, fmt.Errorf("%q: clue references start with a number", ref)
	}
	index, err := strconv.Atoi(ref[:i])
	if err != nil {
		return 0, 0, err
	}
	o, err := primitives.ParseOrientation(strings.TrimSpace(ref[i:]))
	if err != nil {
		return 0, 0, err
	}
	return index, o, nil
}

// Answer enters word into the cells of the selected clue. It reports whether
// the whole puzzle is now solved.
func (s *Session) Answer(word string) (bool, error) {
	if s.selected == nil {
		return false, ErrNoClue
	}
	for _, r := range word {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') {
			return false, fmt.Errorf("%q: %w", word, ErrNotAlphabetic)
		}
	}
	if len(word) != len(s.selected.String) {
		return false, fmt.Errorf("%q has %d letters, want %d: %w", word, len(word), len(s.selected.String), ErrWrongLength)
	}

	w := s.selected.Word()
	for i, r := range strings.ToLower(word) {
		row, col := w.Cell(i)
		s.guesses[row][col] = r
	}
	return s.Complete(), nil
}

// CycleDefinition shows the selected clue's next definition, wrapping back to the first.
func (s *Session) CycleDefinition() (string, error) {
	c := s.selected
	if c == nil {
		return "", ErrNoClue
	}
	if len(c.Definitions) == 1 {
		return c.Definition(), ErrOnlyOneDefinition
	}
	c.CurrentDefinition = (c.CurrentDefinition + 1) % len(c.Definitions)
	return c.Definition(), nil
}

// Guess returns the letter entered at (row, col), or primitives.Blank.
func (s *Session) Guess(row, col int) rune {
	if !s.puzzle.Grid.InBounds(row, col) {
		return primitives.Blank
	}
	return s.guesses[row][col]
}

// Complete reports whether every clue's letters have been entered correctly.
func (s *Session) Complete() bool {
	for _, clues := range [][]*Clue{s.puzzle.Across, s.puzzle.Down} {
		for _, c := range clues {
			w := c.Word()
			for i, want := range c.String {
				if row, col := w.Cell(i); s.guesses[row][col] != want {
					return false
				}
			}
		}
	}
	return true
}

// Lines renders the guesses like Grid.Lines, with cells outside any word as '#'.
func (s *Session) Lines() []string {
	lines := make([]string, len(s.guesses))
	for r, row := range s.guesses {
		cells := make([]rune, len(row))
		for c, g := range row {
			if !s.puzzle.Grid.Occupied(r, c) {
				g = '#'
			}
			cells[c] = g
		}
		lines[r] = string(cells)
	}
	return lines
}
