// Package grid provides the uniform spatial bin index used for broad-phase
// contact detection.
package grid

import (
	"math"

	"github.com/eschmidt42/hardspheres-2d/internal/gas"
)

// Index is a uniform grid over the simulation domain. Particles are binned
// by center position; with a cell side of at least twice the largest
// radius, any two disks in contact are in the same or an adjacent cell, so
// a 3x3 neighborhood sweep sees every contact-capable pair.
//
// The index is rebuilt from scratch every step. Cell slices are reused
// between rebuilds (reset to [:0]) to avoid allocations.
type Index struct {
	cellSize float64
	invCell  float64 // 1 / cellSize (precomputed to avoid division)
	cols     int
	rows     int
	cells    []cell
}

type cell struct {
	items []int
}

// New creates an empty index covering the domain with the given cell size.
func New(bounds gas.Bounds, cellSize float64) *Index {
	cols := int(math.Ceil(bounds.Width / cellSize))
	rows := int(math.Ceil(bounds.Height / cellSize))
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	return &Index{
		cellSize: cellSize,
		invCell:  1.0 / cellSize,
		cols:     cols,
		rows:     rows,
		cells:    make([]cell, cols*rows),
	}
}

// Build creates an index for the state's domain and fills it. The cell
// size is clamped up to twice the largest radius so the 3x3 neighborhood
// guarantee holds regardless of what the caller asked for.
func Build(st *gas.State, cellSize float64) *Index {
	if min := 2 * st.MaxRadius(); cellSize < min {
		cellSize = min
	}
	g := New(st.Bounds, cellSize)
	g.Rebuild(st)
	return g
}

// Rebuild clears the index and re-inserts every particle center.
func (g *Index) Rebuild(st *gas.State) {
	for i := range g.cells {
		g.cells[i].items = g.cells[i].items[:0]
	}
	for i, p := range st.Pos {
		col, row := g.binOf(p)
		idx := row*g.cols + col
		g.cells[idx].items = append(g.cells[idx].items, i)
	}
}

func (g *Index) CellSize() float64 { return g.cellSize }

func (g *Index) Cols() int { return g.cols }

func (g *Index) Rows() int { return g.rows }

// BinOf returns the bin coordinate of a position: floor(p / cellSize) per
// component, clamped to the grid. A center exactly on a cell boundary is
// assigned by the floor rule alone, never to two cells.
func (g *Index) BinOf(p gas.Vec2) (col, row int) { return g.binOf(p) }

func (g *Index) binOf(p gas.Vec2) (col, row int) {
	col = int(math.Floor(p.X * g.invCell))
	if col < 0 {
		col = 0
	} else if col >= g.cols {
		col = g.cols - 1
	}

	row = int(math.Floor(p.Y * g.invCell))
	if row < 0 {
		row = 0
	} else if row >= g.rows {
		row = g.rows - 1
	}

	return col, row
}

// ForEachNeighbor calls fn for every particle index binned in the 3x3
// neighborhood around p. The neighborhood is clipped at the domain edges:
// reflective walls mean nothing sits across them. Iteration stops early
// when fn returns true.
func (g *Index) ForEachNeighbor(p gas.Vec2, fn func(j int) bool) {
	col, row := g.binOf(p)

	for r := row - 1; r <= row+1; r++ {
		if r < 0 || r >= g.rows {
			continue
		}
		rowOffset := r * g.cols

		for c := col - 1; c <= col+1; c++ {
			if c < 0 || c >= g.cols {
				continue
			}
			for _, j := range g.cells[rowOffset+c].items {
				if fn(j) {
					return
				}
			}
		}
	}
}
