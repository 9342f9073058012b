package maze_test

import (
	"fmt"

	"github.com/matzehuels/pipeloop/pkg/maze"
)

// ExampleSolve measures a loop that winds through a noisy grid. Pipes that
// are not connected to S are never visited.
func ExampleSolve() {
	g, err := maze.ParseString("7-F7-\n.FJ|7\nSJLL7\n|F--J\nLJ.LJ")
	if err != nil {
		fmt.Println(err)
		return
	}
	loop, err := maze.Solve(g)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println("start:", loop.Start, "leaves", loop.Directions[0], "and", loop.Directions[1])
	fmt.Println("length:", loop.Length)
	fmt.Println("farthest:", loop.Farthest, "at", loop.Meet)

	// Output:
	// start: (2,0) leaves east and south
	// length: 16
	// farthest: 8 at (2,4)
}

// ExampleLoopLength shows the text-in/integer-out entry point and a
// malformed grid.
func ExampleLoopLength() {
	n, err := maze.LoopLength(".....\n.S-7.\n.|.|.\n.L-J.\n.....")
	fmt.Println(n, err)

	_, err = maze.LoopLength(".....\n.S-7.\n...|.\n.L-J.\n.....")
	fmt.Println(err)

	// Output:
	// 8 <nil>
	// maze: start at (1,1) has 1 connected neighbors [east], want 2
}
