// SPDX-License-Identifier: MIT
package matrix_test

import (
	"fmt"
	"math"

	"github.com/katalvlaran/bspapsp/matrix"
)

// ExampleMinPlusSquare squares a 3-vertex chain distance matrix once.
func ExampleMinPlusSquare() {
	inf := math.Inf(1)
	d, _ := matrix.NewFromRows([][]float64{
		{0, 4, inf},
		{inf, 0, 1},
		{inf, inf, 0},
	})
	p, _ := matrix.NewFromRows([][]float64{
		{0, 0, 2},
		{0, 1, 1},
		{0, 1, 2},
	})

	d2, p2, _ := matrix.MinPlusSquare(d, p)
	fmt.Print(d2)
	fmt.Print(p2)
	// Output:
	// [0, 4, 5]
	// [+Inf, 0, 1]
	// [+Inf, +Inf, 0]
	// [0, 0, 1]
	// [0, 1, 1]
	// [0, 1, 2]
}
