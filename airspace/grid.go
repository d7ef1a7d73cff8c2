package airspace

import (
	"iter"
	"math/rand"

	"github.com/openuat/uatsim/core"
)

// Point is a cell in a grid airspace.
type Point struct {
	X int
	Y int
}

// Grid is a rectangular airspace of Width×Height cells with 4-connected
// adjacency and Manhattan distance.
type Grid struct {
	Width  int
	Height int
}

// Contains reports whether p lies inside the grid.
func (g Grid) Contains(p Point) bool {
	return p.X >= 0 && p.X < g.Width && p.Y >= 0 && p.Y < g.Height
}

// Adjacent returns the 4-connected neighbors of p that lie inside the grid.
func (g Grid) Adjacent(p Point) []Point {
	candidates := []Point{
		{p.X - 1, p.Y},
		{p.X + 1, p.Y},
		{p.X, p.Y - 1},
		{p.X, p.Y + 1},
	}
	neighbors := make([]Point, 0, 4)
	for _, c := range candidates {
		if g.Contains(c) {
			neighbors = append(neighbors, c)
		}
	}
	return neighbors
}

// Distance returns the Manhattan distance between two cells.
func (g Grid) Distance(a, b Point) int {
	return abs(a.X-b.X) + abs(a.Y-b.Y)
}

// RandomMission draws a mission with distinct endpoints, deterministically
// for a given seed.
func (g Grid) RandomMission(seed int64) core.Mission[Point] {
	if g.Width*g.Height < 2 {
		panic("airspace: grid too small for a mission with distinct endpoints")
	}
	rng := rand.New(rand.NewSource(seed))
	from := Point{X: rng.Intn(g.Width), Y: rng.Intn(g.Height)}
	to := from
	for to == from {
		to = Point{X: rng.Intn(g.Width), Y: rng.Intn(g.Height)}
	}
	return core.Mission[Point]{From: from, To: to}
}

// Regions yields every cell in row-major order.
func (g Grid) Regions() iter.Seq[Point] {
	return func(yield func(Point) bool) {
		for y := 0; y < g.Height; y++ {
			for x := 0; x < g.Width; x++ {
				if !yield(Point{X: x, Y: y}) {
					return
				}
			}
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
