package main

import (
	"fmt"

	"github.com/meikuraledutech/procgraph"
	"github.com/spf13/cobra"
)

var lintCmd = &cobra.Command{
	Use:   "lint <file>",
	Short: "Report dangling links, duplicate ids and broken conditions",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, err := procgraph.LoadDocument(args[0])
		if err != nil {
			return err
		}

		findings := procgraph.Lint(doc)
		errs := 0
		for _, f := range findings {
			fmt.Fprintln(cmd.OutOrStdout(), f)
			if f.Severity == procgraph.SeverityError {
				errs++
			}
		}
		if errs > 0 {
			return fmt.Errorf("%d error(s) found", errs)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(lintCmd)
}
