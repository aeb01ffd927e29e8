package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Infa60/Circos/internal/config"
	"github.com/Infa60/Circos/internal/pipeline"
)

func newConfigCommand(ctx *commandContext) *cobra.Command {
	configCmd := &cobra.Command{
		Use:         "config",
		Short:       "Configuration utilities",
		Annotations: map[string]string{"skipConfigLoad": "true"},
	}

	configCmd.AddCommand(newConfigInitCommand())
	configCmd.AddCommand(newConfigValidateCommand(ctx))

	return configCmd
}

func newConfigInitCommand() *cobra.Command {
	var targetPath string
	var overwrite bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a sample configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := strings.TrimSpace(targetPath)
			if path == "" {
				path = config.ProjectConfigName
			}
			expanded, err := config.ExpandPath(path)
			if err != nil {
				return fmt.Errorf("resolve path: %w", err)
			}
			if !overwrite {
				if _, statErr := os.Stat(expanded); statErr == nil {
					return pipeline.Wrap(pipeline.ErrConfiguration, "config", "init",
						fmt.Sprintf("%s already exists (use --overwrite to replace)", expanded), nil)
				} else if !errors.Is(statErr, fs.ErrNotExist) {
					return fmt.Errorf("check %s: %w", expanded, statErr)
				}
			}
			if err := config.CreateSample(expanded); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote sample configuration to %s\n", expanded)
			return nil
		},
	}

	cmd.Flags().StringVarP(&targetPath, "path", "p", "", "Destination for the config file (default ./circosgen.toml)")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Overwrite existing file if present")
	return cmd
}

func newConfigValidateCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate configuration and report the resolved tracks",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, path, exists, err := config.Load(ctx.configFlagValue())
			if err != nil {
				return pipeline.Wrap(pipeline.ErrConfiguration, "config", "validate", path, err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Config path: %s\n", path)
			if !exists {
				fmt.Fprintln(out, "Config file did not exist; defaults were used")
			}
			fmt.Fprintf(out, "Input: %s\n", cfg.Input.Path)
			fmt.Fprintf(out, "Output: %s\n", cfg.Output.Dir)
			fmt.Fprintf(out, "Article segment end: %d\n", cfg.Articles.EndValue)

			rows := make([][]string, 0, len(cfg.Tracks))
			for _, t := range cfg.Tracks {
				rows = append(rows, []string{
					t.Name,
					t.Prefix,
					fmt.Sprintf("%d", len(t.Categories)),
					yesNo(t.Unspecified != nil),
					yesNo(t.DedupEnabled()),
					yesNo(t.SortEnabled()),
					yesNo(t.EmptyIsError()),
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Track", "Prefix", "Categories", "Unspecified", "Dedup", "Sort", "Empty=Error"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignRight, alignLeft, alignLeft, alignLeft, alignLeft},
			))
			fmt.Fprintln(out, "Configuration valid")
			return nil
		},
	}
}
