package main

import (
	"encoding/json"
	"fmt"

	"github.com/meikuraledutech/procgraph"
	"github.com/meikuraledutech/procgraph/internal/logging"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve <file>",
	Short: "Print the resolved graph of a document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		log, err := newLogger(cmd)
		if err != nil {
			return err
		}
		defer log.Sync()

		doc, err := procgraph.LoadDocument(args[0])
		if err != nil {
			return err
		}
		g, res := procgraph.BuildResolution(doc)
		logging.Skipped(log, doc.ProcessID, res.Skipped)

		format, _ := cmd.Flags().GetString("format")
		out := cmd.OutOrStdout()
		switch format {
		case "json":
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(g)
		case "yaml":
			enc := yaml.NewEncoder(out)
			enc.SetIndent(2)
			defer enc.Close()
			return enc.Encode(g)
		default:
			return fmt.Errorf("unknown format %q", format)
		}
	},
}

func init() {
	resolveCmd.Flags().StringP("format", "f", "json", "Output format (json, yaml)")
	rootCmd.AddCommand(resolveCmd)
}
