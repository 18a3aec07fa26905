package main

import (
	"fmt"

	"github.com/meikuraledutech/procgraph"
	"github.com/spf13/cobra"
)

var mermaidCmd = &cobra.Command{
	Use:   "mermaid <file>",
	Short: "Export the resolved graph as a Mermaid flowchart",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		g, err := procgraph.Load(args[0])
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), g.Mermaid())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(mermaidCmd)
}
