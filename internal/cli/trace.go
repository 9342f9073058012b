package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

// traceCommand creates the trace command.
func (c *CLI) traceCommand() *cobra.Command {
	var (
		asJSON  bool
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "trace [file|-]",
		Short: "Print the loop cells in traversal order",
		Long: `Trace walks the loop from S in the first connected direction (north, east,
south, west order) and prints every cell on it, beginning with S.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			input, source, err := readInput(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}
			runner, err := c.newRunner(ctx, noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			res, err := runner.Trace(ctx, input, c.solveOptions(false))
			if err != nil {
				return fmt.Errorf("trace %s: %w", source, err)
			}
			loggerFromContext(ctx).Debug("traced loop", "source", source, "cells", len(res.Path), "cached", res.Cached)

			out := cmd.OutOrStdout()
			if asJSON {
				return json.NewEncoder(out).Encode(res.Path)
			}
			for _, p := range res.Path {
				fmt.Fprintln(out, p)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the path as a JSON array")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the result cache")

	return cmd
}
