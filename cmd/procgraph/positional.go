package main

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/meikuraledutech/procgraph/positional"
	"github.com/spf13/cobra"
)

var positionalCmd = &cobra.Command{
	Use:   "positional",
	Short: "Work with positional graph files",
}

var positionalViewCmd = &cobra.Command{
	Use:   "view <file>",
	Short: "Print every edge with its resolved endpoint boxes",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		g, err := positional.Load(args[0])
		if err != nil {
			return err
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(g.View())
	},
}

var positionalMoveCmd = &cobra.Command{
	Use:   "move <file> <node-id> <x> <y>",
	Short: "Move a node in a positional graph file",
	Args:  cobra.ExactArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		x, err := strconv.ParseFloat(args[2], 64)
		if err != nil {
			return fmt.Errorf("invalid x %q: %w", args[2], err)
		}
		y, err := strconv.ParseFloat(args[3], 64)
		if err != nil {
			return fmt.Errorf("invalid y %q: %w", args[3], err)
		}
		g, err := positional.Load(args[0])
		if err != nil {
			return err
		}
		next, err := g.Move(args[1], x, y)
		if err != nil {
			return err
		}
		out, _ := cmd.Flags().GetString("out")
		if out == "" {
			out = args[0]
		}
		return positional.Save(next, out)
	},
}

func init() {
	positionalMoveCmd.Flags().StringP("out", "o", "", "Write the result here instead of overwriting the input")
	positionalCmd.AddCommand(positionalViewCmd, positionalMoveCmd)
	rootCmd.AddCommand(positionalCmd)
}
