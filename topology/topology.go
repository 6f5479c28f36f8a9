package topology

import "fmt"

// Torus is a p×p grid whose rows and columns wrap around.
type Torus struct {
	P int
}

// Distance returns min(|Δr|, P-|Δr|) + min(|Δc|, P-|Δc|).
func (t Torus) Distance(a, b Coord) int {
	return ringDistance(a.Row, b.Row, t.P) + ringDistance(a.Col, b.Col, t.P)
}

// Mesh is a grid without wrap-around links.
type Mesh struct{}

// Distance returns the Manhattan distance |Δr| + |Δc|.
func (Mesh) Distance(a, b Coord) int {
	return abs(a.Row-b.Row) + abs(a.Col-b.Col)
}

func ringDistance(x, y, p int) int {
	d := abs(x - y)
	if p > 0 && p-d < d {
		return p - d
	}

	return d
}

func abs(x int) int {
	if x < 0 {
		return -x
	}

	return x
}

// ByName returns the layout called name ("torus" or "mesh") for a p×p grid.
func ByName(name string, p int) (Topology, error) {
	switch name {
	case "torus":
		return Torus{P: p}, nil
	case "mesh":
		return Mesh{}, nil
	default:
		return nil, fmt.Errorf("topology %q: %w", name, ErrUnknownTopology)
	}
}

// InBounds reports whether c lies on the p×p grid.
func InBounds(c Coord, p int) bool {
	return c.Row >= 0 && c.Row < p && c.Col >= 0 && c.Col < p
}

// Step returns the neighbour of c in direction d with wrap-around.
func Step(c Coord, d Direction, p int) Coord {
	off := offsets[d]

	return Coord{
		Row: ((c.Row+off[0])%p + p) % p,
		Col: ((c.Col+off[1])%p + p) % p,
	}
}

// NorthOf is the rotation target used by the squaring algorithms:
// one row up, row 0 wrapping to row p-1.
func NorthOf(c Coord, p int) Coord {
	return Step(c, North, p)
}

// All lists every coordinate of the p×p grid in row-major order.
func All(p int) []Coord {
	if p <= 0 {
		return nil
	}
	out := make([]Coord, 0, p*p)
	var r, c int
	for r = 0; r < p; r++ {
		for c = 0; c < p; c++ {
			out = append(out, Coord{Row: r, Col: c})
		}
	}

	return out
}
