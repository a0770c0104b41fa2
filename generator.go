// Package freeform builds free-form crossword puzzles: dictionary words are
// placed one at a time so that every new word crosses one already in the grid.
package freeform

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"

	"crosswarped.com/freeform/internal/dictionary"
	"crosswarped.com/freeform/internal/wordbank"
	"crosswarped.com/freeform/pkg/primitives"
)

// MinWordLength is the shortest word ever placed.
const MinWordLength = 3

var (
	ErrGridTooSmall = errors.New("grid is too small")
	// ErrNoSeedWord means the dictionary has no word of the length chosen for
	// the first word, so no puzzle can be started.
	ErrNoSeedWord = errors.New("no seed word of the required length")
)

type GeneratorParams struct {
	Rows          int
	Cols          int
	// MaxWordLength caps grown words. Zero means words are bounded only by the grid.
	MaxWordLength int
	// AllowRepeats lets a word appear more than once in the same puzzle.
	AllowRepeats  bool
	Selection     wordbank.Selection
	ExcludedWords []string
	Logger        *slog.Logger
}

type Generator struct {
	Rows          int
	Cols          int
	MaxWordLength int
	AllowRepeats  bool
	Selection     wordbank.Selection

	dictionary dictionary.Dictionary
	index      *wordbank.Index
	rand       *rand.Rand
	logger     *slog.Logger
}

func CreateGenerator(d dictionary.Dictionary, rand *rand.Rand, params GeneratorParams) (*Generator, error) {
	if params.Rows < 1 || params.Cols < MinWordLength {
		return nil, fmt.Errorf("%dx%d: %w", params.Rows, params.Cols, ErrGridTooSmall)
	}

	minWordLength := MinWordLength
	var maxWordLength *int
	if params.MaxWordLength > 0 {
		maxWordLength = &params.MaxWordLength
	}
	logger := params.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Generator{
		Rows:          params.Rows,
		Cols:          params.Cols,
		MaxWordLength: params.MaxWordLength,
		AllowRepeats:  params.AllowRepeats,
		Selection:     params.Selection,
		dictionary:    d,
		index: wordbank.NewIndex(d, wordbank.IndexParams{
			ExcludedWords: params.ExcludedWords,
			MinWordLength: &minWordLength,
			MaxWordLength: maxWordLength,
		}),
		rand:   rand,
		logger: logger,
	}, nil
}

// Stats summarizes one Generate call.
type Stats struct {
	Placed       int
	FrontierPops int
	// Intersection points abandoned, by reason.
	TooShort     int
	Unshrinkable int
	TouchingTip  int
	Duration     time.Duration
}

// abandonReason says why a frontier point produced no word. None of these are errors.
type abandonReason int

const (
	abandonTooShort abandonReason = iota
	abandonUnshrinkable
	abandonTouchingTip
)

func (r abandonReason) String() string {
	switch r {
	case abandonTooShort:
		return "too-short"
	case abandonUnshrinkable:
		return "unshrinkable"
	case abandonTouchingTip:
		return "touching-tip"
	}
	return fmt.Sprintf("abandonReason(%d)", int(r))
}

func (s *Stats) abandon(r abandonReason) {
	switch r {
	case abandonTooShort:
		s.TooShort++
	case abandonUnshrinkable:
		s.Unshrinkable++
	case abandonTouchingTip:
		s.TouchingTip++
	}
}

// Abandoned is the number of frontier points that produced no word.
func (s Stats) Abandoned() int {
	return s.TooShort + s.Unshrinkable + s.TouchingTip
}

func (s Stats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("placed", s.Placed),
		slog.Int("pops", s.FrontierPops),
		slog.Int("too_short", s.TooShort),
		slog.Int("unshrinkable", s.Unshrinkable),
		slog.Int("touching_tip", s.TouchingTip),
		slog.Duration("dur", s.Duration),
	)
}

// candidate is a partially known word being grown, trimmed and shrunk.
type candidate struct {
	pattern     primitives.Pattern
	orientation primitives.Orientation
	row, col    int
}

// axis returns the coordinate that changes along c's orientation.
func axis(o primitives.Orientation, row, col int) int {
	if o == primitives.Across {
		return col
	}
	return row
}

// generation is the mutable state of one Generate call.
type generation struct {
	*Generator
	grid     *Grid
	frontier *Frontier
	bank     *wordbank.Bank
	words    []Word
	stats    Stats
}

// Generate places words until no intersection point is left, then numbers the clues.
//
// Errors are precondition failures: ErrNoSeedWord, or a placed word the
// dictionary has no definitions for. Abandoned intersection points are only
// counted in Stats.
func (g *Generator) Generate() (*Puzzle, Stats, error) {
	start := time.Now()
	s := &generation{
		Generator: g,
		grid:      NewGrid(g.Rows, g.Cols),
		frontier:  NewFrontier(g.rand.Shuffle),
		bank:      g.index.NewBank(g.AllowRepeats, g.Selection),
	}

	seed, err := s.seedWord()
	if err != nil {
		return nil, s.stats, err
	}
	s.place(seed)

	for s.frontier.Len() > 0 {
		pt, _ := s.frontier.Pop()
		s.stats.FrontierPops++

		w, reason, ok := s.nextWord(pt)
		if !ok {
			s.stats.abandon(reason)
			g.logger.Debug("abandoned intersection",
				"row", pt.Row, "col", pt.Col, "orientation", pt.Orientation, "reason", reason)
			continue
		}
		s.place(w)
		s.frontier.Prune(s.grid)
	}

	across, down, err := IndexClues(s.words, g.dictionary)
	if err != nil {
		return nil, s.stats, err
	}

	s.stats.Duration = time.Since(start)
	g.logger.Debug("generated puzzle", "stats", s.stats)
	return &Puzzle{
		ID:     uuid.NewString(),
		Rows:   g.Rows,
		Cols:   g.Cols,
		Grid:   s.grid,
		Words:  s.words,
		Across: across,
		Down:   down,
	}, s.stats, nil
}

// seedWord chooses the first word: a random length in [3, cols/2], placed
// across at a random row starting in column 0.
func (s *generation) seedWord() (Word, error) {
	maxLength := max(s.Cols/2, MinWordLength)
	if s.MaxWordLength > 0 {
		maxLength = min(maxLength, s.MaxWordLength)
	}
	maxLength = max(min(maxLength, s.Cols), MinWordLength)
	length := MinWordLength + s.rand.IntN(maxLength-MinWordLength+1)

	matches := s.bank.FindMatches(primitives.NewBlankPattern(length))
	if len(matches) == 0 {
		return Word{}, fmt.Errorf("length %d: %w", length, ErrNoSeedWord)
	}
	return Word{
		Orientation: primitives.Across,
		String:      s.bank.Choose(matches, s.rand),
		StartRow:    s.rand.IntN(s.Rows),
		StartCol:    0,
	}, nil
}

func (s *generation) place(w Word) {
	s.grid.place(w)
	s.bank.MarkUsed(w.String)
	s.words = append(s.words, w)
	s.frontier.Register(s.grid, w)
	s.stats.Placed++
	s.logger.Debug("placed word",
		"word", w.String, "row", w.StartRow, "col", w.StartCol, "orientation", w.Orientation)
}

// nextWord tries to build a word through pt.
func (s *generation) nextWord(pt IntersectionPoint) (Word, abandonReason, bool) {
	c := s.grow(pt)

	c, ok := s.trimAdjacent(c)
	if !ok {
		return Word{}, abandonTouchingTip, false
	}
	if len(c.pattern) < MinWordLength {
		return Word{}, abandonTooShort, false
	}

	origin := axis(pt.Orientation, pt.Row, pt.Col)
	matches := s.bank.FindMatches(c.pattern)
	for len(matches) == 0 {
		c, ok = shrink(c, origin)
		if !ok {
			return Word{}, abandonUnshrinkable, false
		}
		matches = s.bank.FindMatches(c.pattern)
	}

	return Word{
		Orientation: c.orientation,
		String:      s.bank.Choose(matches, s.rand),
		StartRow:    c.row,
		StartCol:    c.col,
	}, 0, true
}

// grow extends the letter at pt forwards, then backwards, along pt's
// orientation for as long as each cell is legal.
func (s *generation) grow(pt IntersectionPoint) candidate {
	o := pt.Orientation
	dr, dc := o.Delta()
	c := candidate{
		pattern:     primitives.Pattern{s.grid.Get(pt.Row, pt.Col)},
		orientation: o,
		row:         pt.Row,
		col:         pt.Col,
	}
	full := func() bool {
		return s.MaxWordLength > 0 && len(c.pattern) >= s.MaxWordLength
	}

	for row, col := pt.Row+dr, pt.Col+dc; s.grid.InBounds(row, col) && !full(); row, col = row+dr, col+dc {
		if !s.grid.IsCellLegal(row, col, row+dr, col+dc, o) {
			break
		}
		c.pattern = append(c.pattern, s.grid.Get(row, col))
	}

	for row, col := pt.Row-dr, pt.Col-dc; s.grid.InBounds(row, col) && !full(); row, col = row-dr, col-dc {
		if !s.grid.IsCellLegal(row, col, row-dr, col-dc, o) {
			break
		}
		c.pattern = append(primitives.Pattern{s.grid.Get(row, col)}, c.pattern...)
		c.row, c.col = row, col
	}
	return c
}

// trimAdjacent drops the first or last letter of c when the cell just beyond
// it is occupied, so the word does not touch another word at its tip. It fails
// if a dropped position was itself a letter, since the word would still touch it.
func (s *generation) trimAdjacent(c candidate) (candidate, bool) {
	dr, dc := c.orientation.Delta()
	if len(c.pattern) > 0 && s.grid.Occupied(c.row-dr, c.col-dc) {
		if c.pattern[0] != primitives.Blank {
			return c, false
		}
		c.pattern = c.pattern[1:]
		c.row, c.col = c.row+dr, c.col+dc
	}
	n := len(c.pattern)
	if n > 0 && s.grid.Occupied(c.row+n*dr, c.col+n*dc) {
		if c.pattern[n-1] != primitives.Blank {
			return c, false
		}
		c.pattern = c.pattern[:n-1]
	}
	return c, true
}

// shrink removes positions from the end of c until a blank one has been
// removed, so the shorter word ends next to an empty cell. It fails when c
// would become shorter than MinWordLength or stop covering the cell after
// origin, the axis coordinate of the intersection c was grown from.
func shrink(c candidate, origin int) (candidate, bool) {
	start := axis(c.orientation, c.row, c.col)
	p := c.pattern
	for len(p) > MinWordLength && start+len(p) > origin+1 {
		removed := p[len(p)-1]
		p = p[:len(p)-1]
		if removed == primitives.Blank {
			c.pattern = p
			return c, true
		}
	}
	return c, false
}
