package freeform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crosswarped.com/freeform/internal/dictionary"
	"crosswarped.com/freeform/pkg/primitives"
)

func clueDictionary() dictionary.Dictionary {
	d := dictionary.Dictionary{}
	for _, w := range []string{"ant", "bee", "cat", "dog", "eel", "fox", "gnu"} {
		d[w] = dictionary.Entry{Frequency: 1, Definitions: []string{"A " + w, "Another " + w}}
	}
	d["hen"] = dictionary.Entry{Frequency: 1}
	return d
}

func across(w string, row, col int) Word {
	return Word{Orientation: primitives.Across, String: w, StartRow: row, StartCol: col}
}

func down(w string, row, col int) Word {
	return Word{Orientation: primitives.Down, String: w, StartRow: row, StartCol: col}
}

func indices(clues []*Clue) []int {
	out := make([]int, len(clues))
	for i, c := range clues {
		out[i] = c.Index
	}
	return out
}

func TestIndexClues(t *testing.T) {
	words := []Word{
		across("ant", 0, 0),
		across("bee", 3, 0),
		across("cat", 5, 0),
		down("dog", 0, 4),
		down("eel", 3, 4),
		down("fox", 0, 0),
	}

	a, d, err := IndexClues(words, clueDictionary())
	require.NoError(t, err)

	assert.Equal(t, []int{1, 2, 3}, indices(a))
	assert.Equal(t, []int{1, 2, 3}, indices(d))

	t.Run("shared start cell shares an index", func(t *testing.T) {
		assert.Equal(t, "ant", a[0].String)
		assert.Equal(t, "fox", d[0].String)
		assert.Equal(t, a[0].Index, d[0].Index)
	})

	t.Run("down clues follow column-major start order", func(t *testing.T) {
		assert.Equal(t, []string{"fox", "dog", "eel"}, []string{d[0].String, d[1].String, d[2].String})
	})

	t.Run("clues carry definitions and position", func(t *testing.T) {
		assert.Equal(t, []string{"A bee", "Another bee"}, a[1].Definitions)
		assert.Equal(t, 3, a[1].StartRow)
		assert.Equal(t, 0, a[1].StartCol)
		assert.Equal(t, "2 across (3) A bee", a[1].Label())
	})
}

func TestIndexClues_ColumnMajor(t *testing.T) {
	// Row-major numbering would give "bee" index 1.
	words := []Word{
		across("bee", 0, 4),
		across("ant", 2, 0),
	}

	a, _, err := IndexClues(words, clueDictionary())
	require.NoError(t, err)

	assert.Equal(t, "ant", a[0].String)
	assert.Equal(t, []int{1, 2}, indices(a))
}

func TestIndexClues_DownOnlyBeforeSharedCell(t *testing.T) {
	// The down-only clue starts in an earlier column than the shared cell, but
	// must not take the number the shared cell gives its down clue.
	words := []Word{
		down("dog", 0, 0),
		across("ant", 0, 2),
		down("bee", 0, 2),
		down("cat", 0, 5),
	}

	a, d, err := IndexClues(words, clueDictionary())
	require.NoError(t, err)

	assert.Equal(t, []int{1}, indices(a))
	assert.Equal(t, []int{1, 2, 3}, indices(d))
	assert.Equal(t, []string{"bee", "dog", "cat"}, []string{d[0].String, d[1].String, d[2].String})
}

func TestIndexClues_Empty(t *testing.T) {
	a, d, err := IndexClues(nil, clueDictionary())
	require.NoError(t, err)
	assert.Empty(t, a)
	assert.Empty(t, d)
}

func TestIndexClues_Errors(t *testing.T) {
	_, _, err := IndexClues([]Word{across("yak", 0, 0)}, clueDictionary())
	assert.ErrorIs(t, err, ErrUnknownWord)

	_, _, err = IndexClues([]Word{across("hen", 0, 0)}, clueDictionary())
	assert.ErrorIs(t, err, dictionary.ErrNoDefinitions)
}

func TestClue_Definition(t *testing.T) {
	c := &Clue{String: "ant", Definitions: []string{"one", "two"}}
	assert.Equal(t, "one", c.Definition())
	c.CurrentDefinition = 3
	assert.Equal(t, "two", c.Definition())
}
