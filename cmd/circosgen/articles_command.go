package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newArticlesCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "articles",
		Short: "Regenerate only the article karyotype",
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, _, err := ctx.runner(cmd)
			if err != nil {
				return err
			}
			summary, err := runner.WriteArticles(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			fmt.Fprintln(out, renderStatusLine("Articles", statusOK, articleMessage(*summary), colorize))
			fmt.Fprintln(out, renderStatusLine("References", fallbackKind(summary.Fallback), "fallback "+yesNo(summary.Fallback), colorize))
			fmt.Fprintf(out, "Wrote %s\n", summary.File)
			return nil
		},
	}
}

func fallbackKind(fallback bool) statusKind {
	if fallback {
		return statusWarn
	}
	return statusOK
}
