package freeform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crosswarped.com/freeform/pkg/primitives"
)

func TestSession_Select(t *testing.T) {
	s := NewSession(smallPuzzle(t))
	assert.Equal(t, "cat", s.Selected().String)

	c, err := s.Select(1, primitives.Down)
	require.NoError(t, err)
	assert.Equal(t, "tin", c.String)
	assert.Same(t, c, s.Selected())

	_, err = s.Select(2, primitives.Down)
	assert.ErrorIs(t, err, ErrNoClue)
	assert.Equal(t, "tin", s.Selected().String)
}

func TestParseClueRef(t *testing.T) {
	tests := []struct {
		ref     string
		index   int
		o       primitives.Orientation
		wantErr bool
	}{
		{"3 down", 3, primitives.Down, false},
		{"12 a", 12, primitives.Across, false},
		{"7Across", 7, primitives.Across, false},
		{" 1 D ", 1, primitives.Down, false},
		{"down", 0, 0, true},
		{"4", 0, 0, true},
		{"4 sideways", 0, 0, true},
	}
	for _, tc := range tests {
		t.Run(tc.ref, func(t *testing.T) {
			index, o, err := ParseClueRef(tc.ref)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.index, index)
			assert.Equal(t, tc.o, o)
		})
	}
}

func TestSession_Answer(t *testing.T) {
	s := NewSession(smallPuzzle(t))

	_, err := s.Answer("c4t")
	assert.ErrorIs(t, err, ErrNotAlphabetic)
	_, err = s.Answer("cats")
	assert.ErrorIs(t, err, ErrWrongLength)

	done, err := s.Answer("CAT")
	require.NoError(t, err)
	assert.False(t, done)
	assert.Equal(t, 'a', s.Guess(0, 1))
	assert.Equal(t, primitives.Blank, s.Guess(1, 2))

	_, err = s.Select(1, primitives.Down)
	require.NoError(t, err)
	done, err = s.Answer("ton")
	require.NoError(t, err)
	assert.False(t, done)

	done, err = s.Answer("tin")
	require.NoError(t, err)
	assert.False(t, done)

	_, err = s.Select(2, primitives.Across)
	require.NoError(t, err)
	done, err = s.Answer("nap")
	require.NoError(t, err)
	assert.True(t, done)
	assert.True(t, s.Complete())
	assert.Equal(t, []string{"cat##", "##i##", "##nap", "#####", "#####"}, s.Lines())
}

func TestSession_CycleDefinition(t *testing.T) {
	s := NewSession(smallPuzzle(t))

	def, err := s.CycleDefinition()
	require.NoError(t, err)
	assert.Equal(t, "Pet that purrs", def)
	def, err = s.CycleDefinition()
	require.NoError(t, err)
	assert.Equal(t, "Feline", def)

	_, err = s.Select(1, primitives.Down)
	require.NoError(t, err)
	def, err = s.CycleDefinition()
	assert.ErrorIs(t, err, ErrOnlyOneDefinition)
	assert.Equal(t, "Metal can", def)
}

func TestPuzzle_Clue(t *testing.T) {
	p := smallPuzzle(t)

	assert.True(t, p.HasClue(2, primitives.Across))
	assert.False(t, p.HasClue(2, primitives.Down))

	c, err := p.Clue(2, primitives.Across)
	require.NoError(t, err)
	assert.Equal(t, "nap", c.String)
	assert.Equal(t, "2 across (3) Short sleep", c.Label())
}
