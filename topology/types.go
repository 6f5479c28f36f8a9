package topology

import (
	"errors"
	"fmt"
)

// ErrUnknownTopology indicates a layout name ByName does not know.
var ErrUnknownTopology = errors.New("topology: unknown layout")

// Coord addresses one processing element: Row and Col in [0, p).
type Coord struct {
	Row, Col int
}

// String renders the coordinate as "(row,col)".
func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

// Topology maps a pair of grid coordinates to the number of link hops
// between them.
type Topology interface {
	Distance(a, b Coord) int
}

// Direction selects one of the four orthogonal neighbours.
type Direction int

const (
	// North is the neighbour one row up (row 0 wraps to row p-1).
	North Direction = iota
	// East is the neighbour one column right.
	East
	// South is the neighbour one row down.
	South
	// West is the neighbour one column left.
	West
)

// offsets is indexed by Direction.
var offsets = [4][2]int{{-1, 0}, {0, 1}, {1, 0}, {0, -1}}
