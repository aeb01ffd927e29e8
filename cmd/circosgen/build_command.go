package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Infa60/Circos/internal/pipeline"
)

func newBuildCommand(ctx *commandContext) *cobra.Command {
	var showCategories bool
	var showErrors bool

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Generate every karyotype, link and numbers file plus circos.conf",
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, _, err := ctx.runner(cmd)
			if err != nil {
				return err
			}
			summary, err := runner.Run(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			printBuildSummary(out, summary, shouldColorize(out))
			if showCategories {
				for _, t := range summary.Tracks {
					fmt.Fprintln(out)
					fmt.Fprintf(out, "%s (%s)\n", t.Name, t.Prefix)
					fmt.Fprint(out, renderCategoryTable(t))
				}
			}
			if showErrors && summary.TotalErrors() > 0 {
				fmt.Fprintln(out)
				fmt.Fprint(out, renderCellErrorTable(summary.Tracks))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&showCategories, "categories", false, "Print per-category counts and sizes for each track")
	cmd.Flags().BoolVar(&showErrors, "errors", false, "Print every blank cell recorded in the ERRORS sections")
	return cmd
}

func printBuildSummary(out io.Writer, s *pipeline.Summary, colorize bool) {
	for _, line := range renderSectionHeader("Circos Build", colorize) {
		fmt.Fprintln(out, line)
	}
	scale := fmt.Sprintf("%d..%d -> %d..%d", s.Scale.Min, s.Scale.Max, s.Visual.Min, s.Visual.Max)
	scaleKind := statusInfo
	if s.Scale.Empty {
		scale += " (no data)"
		scaleKind = statusWarn
	}
	lines := []string{
		renderStatusLine("Run ID", statusInfo, s.RunID, colorize),
		renderStatusLine("Input", statusInfo, s.Input, colorize),
		renderStatusLine("Output", statusInfo, s.OutputDir, colorize),
		renderStatusLine("Global scale", scaleKind, scale, colorize),
		renderStatusLine("Articles", statusOK, articleMessage(s.Articles), colorize),
		renderStatusLine("Cell errors", countKind(s.TotalErrors()), strconv.Itoa(s.TotalErrors()), colorize),
	}
	if s.Articles.Fallback {
		lines = append(lines, renderStatusLine("References", statusWarn, "reference column missing; article ids used as labels", colorize))
	}
	for _, line := range lines {
		fmt.Fprintln(out, line)
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, renderTrackTable(s.Tracks))
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Wrote %d files to %s\n", len(s.Files), s.OutputDir)
	fmt.Fprintf(out, "Spacing ring: %s\n", ringText(s))
}

func articleMessage(a pipeline.ArticleSummary) string {
	msg := fmt.Sprintf("%d (%s, window %s, end %d)", a.Count, a.Span, a.Window, a.SegmentEnd)
	if a.Skipped > 0 {
		msg += fmt.Sprintf(", %d rows skipped", a.Skipped)
	}
	return msg
}

func ringText(s *pipeline.Summary) string {
	if len(s.Ring) == 0 {
		return "-"
	}
	names := make([]string, 0, len(s.Ring))
	for _, b := range s.Ring {
		names = append(names, b.Name)
	}
	return strings.Join(names, " -> ")
}

func renderTrackTable(tracks []pipeline.TrackSummary) string {
	rows := make([][]string, 0, len(tracks))
	for _, t := range tracks {
		rows = append(rows, []string{
			t.Name,
			t.Prefix,
			t.Window.String(),
			fmt.Sprintf("%d/%d", t.Active, t.Categories),
			strconv.Itoa(t.Members),
			strconv.Itoa(t.Errors),
			t.Span.String(),
		})
	}
	return renderTable(
		[]string{"Track", "Prefix", "Window", "Active", "Members", "Errors", "Span"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignRight, alignRight, alignRight, alignRight, alignLeft},
	)
}

func renderCategoryTable(t pipeline.TrackSummary) string {
	rows := make([][]string, 0, len(t.Sections))
	for _, sec := range t.Sections {
		rows = append(rows, []string{
			sec.Category.ID,
			sec.Category.DisplayName(),
			strconv.Itoa(sec.Count()),
			strconv.Itoa(sec.Size),
			sec.Category.Color,
		})
	}
	return renderTable(
		[]string{"Category", "Label", "Count", "Size", "Color"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignRight, alignRight, alignLeft},
	)
}

func renderCellErrorTable(tracks []pipeline.TrackSummary) string {
	var rows [][]string
	for _, t := range tracks {
		for _, e := range t.CellErrors {
			rows = append(rows, []string{t.Prefix, e.Article, e.Column})
		}
	}
	return renderTable(
		[]string{"Track", "Article", "Column"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignLeft},
	)
}
