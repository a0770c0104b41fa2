package freeform

import (
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crosswarped.com/freeform/pkg/primitives"
)

func TestNewGrid(t *testing.T) {
	g := NewGrid(2, 3)

	assert.Equal(t, 2, g.Rows())
	assert.Equal(t, 3, g.Cols())
	assert.Equal(t, []string{"___", "___"}, g.Lines())
	assert.Equal(t, primitives.LetterUseNone, g.LetterUse(1, 2))
}

func TestGrid_OutOfBounds(t *testing.T) {
	g := NewGrid(3, 3)
	g.place(Word{Orientation: primitives.Across, String: "cat", StartRow: 0, StartCol: 0})

	assert.Equal(t, primitives.Blank, g.Get(-1, 0))
	assert.Equal(t, primitives.Blank, g.Get(0, 3))
	assert.False(t, g.Occupied(3, 0))
	assert.Equal(t, primitives.LetterUseNone, g.LetterUse(0, -1))
}

func TestGrid_Place(t *testing.T) {
	g := NewGrid(5, 5)
	g.place(Word{Orientation: primitives.Across, String: "cat", StartRow: 1, StartCol: 0})
	g.place(Word{Orientation: primitives.Down, String: "tin", StartRow: 1, StartCol: 2})

	assert.Equal(t, "_____\ncat__\n__i__\n__n__\n_____", g.Repr())
	assert.Equal(t, primitives.LetterUseAcross, g.LetterUse(1, 0))
	assert.Equal(t, primitives.LetterUseBoth, g.LetterUse(1, 2))
	assert.Equal(t, primitives.LetterUseDown, g.LetterUse(3, 2))
	assert.Equal(t, "_ti", g.Pattern(0, 2, 3, primitives.Down).String())
	assert.Equal(t, "at_", g.Pattern(1, 1, 3, primitives.Across).String())
}

func TestGrid_IsCellLegal(t *testing.T) {
	g := NewGrid(7, 7)
	g.place(Word{Orientation: primitives.Across, String: "cat", StartRow: 0, StartCol: 4})
	g.place(Word{Orientation: primitives.Across, String: "dog", StartRow: 4, StartCol: 2})
	g.place(Word{Orientation: primitives.Down, String: "ox", StartRow: 4, StartCol: 3})

	tests := []struct {
		name             string
		row, col         int
		nextRow, nextCol int
		orientation      primitives.Orientation
		want             bool
	}{
		{"next cell runs across into an across word", 0, 3, 0, 4, primitives.Across, false},
		{"next cell is shared by both orientations", 3, 3, 4, 3, primitives.Down, false},
		{"next cell is shared, growing across", 4, 4, 4, 3, primitives.Across, false},
		{"crossing an across letter going down", 4, 4, 5, 4, primitives.Down, true},
		{"blank cell with a letter above", 5, 2, 5, 1, primitives.Across, false},
		{"blank cell with a letter to the left", 5, 4, 6, 4, primitives.Down, false},
		{"blank cell with blank neighbours", 2, 1, 3, 1, primitives.Down, true},
		{"next cell off the grid", 2, 6, 2, 7, primitives.Across, true},
		{"blank cell at the grid edge", 6, 0, 6, 1, primitives.Across, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := g.IsCellLegal(tc.row, tc.col, tc.nextRow, tc.nextCol, tc.orientation)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestGrid_MarshalJSON(t *testing.T) {
	g := NewGrid(2, 3)
	g.place(Word{Orientation: primitives.Across, String: "ant", StartRow: 1, StartCol: 0})

	b, err := json.Marshal(g)
	require.NoError(t, err)
	assert.JSONEq(t, `["___", "ant"]`, string(b))
}
