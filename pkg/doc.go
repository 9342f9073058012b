// Package pkg provides the libraries behind pipeloop.
//
// # Overview
//
// Pipeloop reads a rectangular grid of pipe tiles, finds the closed loop that
// passes through the start tile S, and reports the loop length and the number
// of steps from S to the loop cell farthest from it. The pkg directory is
// organized into three areas:
//
//  1. [maze] - Domain logic (grid parsing, tile transitions, loop walking)
//  2. [pipeline] - Orchestration (validate → normalize → cache → solve)
//  3. Infrastructure: [cache], [config], [store], [server], [observability]
//     and [errors]
//
// # Architecture
//
// The data flow through pipeloop:
//
//	Grid text (file, stdin or HTTP body)
//	         ↓
//	    [errors] ValidateInput, [pipeline] Normalize
//	         ↓
//	    [cache] lookup by input hash
//	         ↓
//	    [maze] Parse → ResolveStart → two Walkers in lock-step
//	         ↓
//	    [maze] Loop {Length, Farthest, Meet}
//
// # Quick Start
//
//	g, err := maze.ParseString("..F7.\n.FJ|.\nSJ.L7\n|F--J\nLJ...")
//	if err != nil {
//	    return err
//	}
//	loop, err := maze.Solve(g)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(loop.Length, loop.Farthest) // 16 8
//
// With caching, use a [pipeline.Runner]:
//
//	runner := pipeline.NewRunner(cache.NewNullCache(), nil, logger)
//	res, err := runner.Solve(ctx, input, pipeline.Options{})
package pkg
