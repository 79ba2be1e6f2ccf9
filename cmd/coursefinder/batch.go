// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/coursefinder/internal/batch"
)

var batchCmd = &cobra.Command{
	Use:   "batch <query-file.yaml>",
	Short: "Run every question in a YAML query file",
	Long: `Batch reads a YAML file with a "queries" list, asks each question in turn,
and writes a YAML report of what the form showed for each one. Progress goes
to stderr; the report goes to stdout unless --out is given.`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	batchCmd.Flags().String("out", "", "write the report to this file instead of stdout")

	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	qf, err := batch.ReadQueryFile(args[0])
	if err != nil {
		return err
	}

	rep := batch.Run(cmd.Context(), newQuerier(cfg), formOptions(cfg), qf, os.Stderr)

	out, _ := cmd.Flags().GetString("out")
	if out == "" {
		return batch.WriteReport(os.Stdout, rep)
	}
	if err := batch.WriteReportFile(out, rep); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Report written to %s\n", out)
	return nil
}
