package freeform

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"

	"crosswarped.com/freeform/pkg/primitives"
)

func point(row, col int, o primitives.Orientation) IntersectionPoint {
	return IntersectionPoint{Row: row, Col: col, Orientation: o}
}

func TestFrontier_Register(t *testing.T) {
	g := NewGrid(5, 5)
	g.place(Word{Orientation: primitives.Across, String: "z", StartRow: 1, StartCol: 2})
	w := Word{Orientation: primitives.Across, String: "cat", StartRow: 2, StartCol: 1}
	g.place(w)

	f := NewFrontier(nil)
	f.Register(g, w)

	assert.Equal(t, []IntersectionPoint{
		point(2, 1, primitives.Down),
		point(2, 3, primitives.Down),
	}, f.Points(), "the letter under z has an occupied neighbour")
}

func TestFrontier_Prune(t *testing.T) {
	g := NewGrid(5, 5)
	f := NewFrontier(nil)
	for _, p := range []IntersectionPoint{
		point(2, 1, primitives.Across),
		point(1, 2, primitives.Down),
		point(0, 0, primitives.Across),
		point(0, 4, primitives.Across),
		point(4, 0, primitives.Down),
		point(4, 4, primitives.Down),
	} {
		f.Add(p)
	}

	g.place(Word{Orientation: primitives.Across, String: "x", StartRow: 2, StartCol: 2})
	f.Prune(g)

	assert.False(t, f.Contains(point(2, 1, primitives.Across)))
	assert.False(t, f.Contains(point(1, 2, primitives.Down)))
	assert.Equal(t, 4, f.Len(), "points at the grid edge are kept")
	assert.True(t, f.Contains(point(0, 0, primitives.Across)))
	assert.True(t, f.Contains(point(4, 4, primitives.Down)))
}

func TestFrontier_PopSorted(t *testing.T) {
	f := NewFrontier(nil)
	f.Add(point(0, 0, primitives.Across))
	f.Add(point(3, 1, primitives.Across))
	f.Add(point(3, 1, primitives.Down))
	f.Add(point(3, 1, primitives.Down))

	var popped []IntersectionPoint
	for {
		p, ok := f.Pop()
		if !ok {
			break
		}
		popped = append(popped, p)
	}

	assert.Equal(t, []IntersectionPoint{
		point(3, 1, primitives.Down),
		point(3, 1, primitives.Across),
		point(0, 0, primitives.Across),
	}, popped)
	assert.Zero(t, f.Len())
}

func TestFrontier_PopShuffledIsReproducible(t *testing.T) {
	pop := func() []IntersectionPoint {
		rng := rand.New(rand.NewPCG(42, 1024))
		f := NewFrontier(rng.Shuffle)
		for row := range 4 {
			for col := range 4 {
				f.Add(point(row, col, primitives.Orientation(col%2)))
			}
		}
		var popped []IntersectionPoint
		for f.Len() > 0 {
			p, _ := f.Pop()
			popped = append(popped, p)
		}
		return popped
	}

	first := pop()
	assert.Len(t, first, 16)
	assert.Equal(t, first, pop())
}
