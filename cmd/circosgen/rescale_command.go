package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Infa60/Circos/internal/config"
	"github.com/Infa60/Circos/internal/pipeline"
	"github.com/Infa60/Circos/internal/track"
)

func newRescaleCommand() *cobra.Command {
	defaults := config.Default()
	var from, to int
	var visualMin, visualMax int

	cmd := &cobra.Command{
		Use:   "rescale",
		Short: "Preview segment sizes for a range of counts",
		Long: "Print the size every count in --from..--to would be drawn at when those\n" +
			"two counts are the global minimum and maximum.",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, err := pipeline.Rescale(from, to, track.VisualRange{Min: visualMin, Max: visualMax})
			if err != nil {
				return err
			}
			table := make([][]string, 0, len(rows))
			for _, r := range rows {
				table = append(table, []string{strconv.Itoa(r.Count), strconv.Itoa(r.Size)})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Count", "Size"},
				table,
				[]columnAlignment{alignRight, alignRight},
			))
			return nil
		},
	}

	cmd.Flags().IntVar(&from, "from", 1, "Smallest count (global minimum)")
	cmd.Flags().IntVar(&to, "to", 0, "Largest count (global maximum)")
	cmd.Flags().IntVar(&visualMin, "visual-min", defaults.Scale.VisualMin, "Segment size of the smallest count")
	cmd.Flags().IntVar(&visualMax, "visual-max", defaults.Scale.VisualMax, "Segment size of the largest count")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}
