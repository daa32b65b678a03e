package commands

import (
	"fmt"
	"strings"

	"github.com/DrSkyle/wikipath/pkg/graph"
	"github.com/spf13/cobra"
)

var pathCmd = &cobra.Command{
	Use:   "path SOURCE DESTINATION",
	Short: "Print the shortest link path between two articles",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		e, err := setup(ctx)
		if err != nil {
			return err
		}
		defer e.close()

		g, err := e.loadGraph(ctx)
		if err != nil {
			return fmt.Errorf("failed to load graph: %w", err)
		}
		res, err := graph.FindPath(ctx, g, args[0], args[1])
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), titleStyle.Render(fmt.Sprintf("DISTANCE %d", res.Distance)))
		fmt.Fprintln(cmd.OutOrStdout(), strings.Join(res.Path, " -> "))
		return nil
	},
}
