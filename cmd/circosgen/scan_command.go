package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newScanCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "scan",
		Short: "Report category counts and segment sizes without writing files",
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, _, err := ctx.runner(cmd)
			if err != nil {
				return err
			}
			report, err := runner.Scan(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			for _, line := range renderSectionHeader("Global Scale", colorize) {
				fmt.Fprintln(out, line)
			}
			kind := statusInfo
			scale := fmt.Sprintf("%d..%d", report.Scale.Min, report.Scale.Max)
			if report.Scale.Empty {
				kind = statusWarn
				scale += " (no data)"
			}
			fmt.Fprintln(out, renderStatusLine("Counts", kind, scale, colorize))
			fmt.Fprintln(out, renderStatusLine("Visual range", statusInfo, fmt.Sprintf("%d..%d", report.Visual.Min, report.Visual.Max), colorize))
			fmt.Fprintln(out)

			var rows [][]string
			for _, t := range report.Tracks {
				for _, c := range t.Categories {
					rows = append(rows, []string{t.Prefix, c.ID, strconv.Itoa(c.Count), strconv.Itoa(c.Size)})
				}
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Track", "Category", "Count", "Size"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignRight, alignRight},
			))
			return nil
		},
	}
}
