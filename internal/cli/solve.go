package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/pipeloop/pkg/maze"
)

// solveOutput is the --json shape of the solve command.
type solveOutput struct {
	InputHash  string            `json:"input_hash"`
	Rows       int               `json:"rows"`
	Cols       int               `json:"cols"`
	Length     int               `json:"length"`
	Farthest   int               `json:"farthest"`
	Start      maze.Coord        `json:"start"`
	Meet       maze.Coord        `json:"meet"`
	Directions [2]maze.Direction `json:"directions"`
	Cached     bool              `json:"cached"`
}

type solveFlags struct {
	json    bool
	noCache bool
	refresh bool
}

// solveCommand creates the solve command.
func (c *CLI) solveCommand() *cobra.Command {
	var flags solveFlags

	cmd := &cobra.Command{
		Use:   "solve [file|-]",
		Short: "Report the loop length and farthest distance",
		Long: `Solve reads a pipe grid from a file, or from stdin when no file or "-" is
given, and reports the length of the loop through S together with the number
of steps from S to the farthest point on the loop.`,
		Example: `  pipeloop solve grid.txt
  cat grid.txt | pipeloop solve --json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runSolve(cmd, args, flags)
		},
	}

	cmd.Flags().BoolVar(&flags.json, "json", false, "print the result as JSON")
	cmd.Flags().BoolVar(&flags.noCache, "no-cache", false, "disable the result cache")
	cmd.Flags().BoolVar(&flags.refresh, "refresh", false, "ignore cached results and recompute")

	return cmd
}

func (c *CLI) runSolve(cmd *cobra.Command, args []string, flags solveFlags) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	input, source, err := readInput(cmd.InOrStdin(), args)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, flags.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(logger)
	res, err := runner.Solve(ctx, input, c.solveOptions(flags.refresh))
	if err != nil {
		return fmt.Errorf("solve %s: %w", source, err)
	}
	prog.done(fmt.Sprintf("Solved %dx%d grid from %s", res.Rows, res.Cols, source))

	out := cmd.OutOrStdout()
	if flags.json {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(solveOutput{
			InputHash:  res.InputHash,
			Rows:       res.Rows,
			Cols:       res.Cols,
			Length:     res.Loop.Length,
			Farthest:   res.Loop.Farthest,
			Start:      res.Loop.Start,
			Meet:       res.Loop.Meet,
			Directions: res.Loop.Directions,
			Cached:     res.Cached,
		})
	}

	loop := res.Loop
	printSuccess(out, "Loop through %s", loop.Start)
	printKeyNumber(out, "length", loop.Length)
	printKeyNumber(out, "farthest", loop.Farthest)
	printKeyValue(out, "meets at", loop.Meet.String())
	printKeyValue(out, "leaves", fmt.Sprintf("%s, %s", loop.Directions[0], loop.Directions[1]))
	printStats(out, res.Rows, res.Cols, res.Duration, res.Cached)
	return nil
}
