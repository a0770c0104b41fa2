package freeform

import (
	"sort"

	"crosswarped.com/freeform/pkg/primitives"
)

// IntersectionPoint is a cell where a new word of Orientation could cross an
// existing word running the other way.
type IntersectionPoint struct {
	Row         int
	Col         int
	Orientation primitives.Orientation
}

// Shuffler permutes n elements through swap, with the contract of rand.Shuffle.
type Shuffler func(n int, swap func(i, j int))

// Frontier is the set of live intersection points.
type Frontier struct {
	points  map[IntersectionPoint]struct{}
	shuffle Shuffler
}

// NewFrontier returns an empty frontier that uses shuffle to choose which point
// Pop returns. A nil shuffle leaves the points in sorted order, so Pop returns
// the largest point.
func NewFrontier(shuffle Shuffler) *Frontier {
	return &Frontier{
		points:  make(map[IntersectionPoint]struct{}),
		shuffle: shuffle,
	}
}

func (f *Frontier) Len() int {
	return len(f.points)
}

func (f *Frontier) Add(p IntersectionPoint) {
	f.points[p] = struct{}{}
}

func (f *Frontier) Contains(p IntersectionPoint) bool {
	_, ok := f.points[p]
	return ok
}

// Points returns the live points ordered by row, column, then orientation.
func (f *Frontier) Points() []IntersectionPoint {
	pts := make([]IntersectionPoint, 0, len(f.points))
	for p := range f.points {
		pts = append(pts, p)
	}
	sort.Slice(pts, func(i, j int) bool {
		if pts[i].Row != pts[j].Row {
			return pts[i].Row < pts[j].Row
		}
		if pts[i].Col != pts[j].Col {
			return pts[i].Col < pts[j].Col
		}
		return pts[i].Orientation < pts[j].Orientation
	})
	return pts
}

// Pop removes and returns a point: the points are sorted, shuffled, and the last one is taken.
func (f *Frontier) Pop() (IntersectionPoint, bool) {
	if len(f.points) == 0 {
		return IntersectionPoint{}, false
	}
	pts := f.Points()
	if f.shuffle != nil {
		f.shuffle(len(pts), func(i, j int) {
			pts[i], pts[j] = pts[j], pts[i]
		})
	}
	p := pts[len(pts)-1]
	delete(f.points, p)
	return p, true
}

// Register adds a point for every letter of w whose neighbours across w are
// both empty. The points take the orientation opposite to w.
func (f *Frontier) Register(g *Grid, w Word) {
	o := w.Orientation.Opposite()
	dr, dc := o.Delta()
	for i := range len(w.String) {
		row, col := w.Cell(i)
		if !g.Occupied(row-dr, col-dc) && !g.Occupied(row+dr, col+dc) {
			f.Add(IntersectionPoint{Row: row, Col: col, Orientation: o})
		}
	}
}

// Prune drops every point whose cell before or after, along the point's
// orientation, is now occupied. The grid edge counts as unoccupied.
func (f *Frontier) Prune(g *Grid) {
	for p := range f.points {
		dr, dc := p.Orientation.Delta()
		if g.Occupied(p.Row-dr, p.Col-dc) || g.Occupied(p.Row+dr, p.Col+dc) {
			delete(f.points, p)
		}
	}
}
