package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/Infa60/Circos/internal/pipeline"
)

func main() {
	cmd := newRootCommand()
	if err := cmd.Execute(); err != nil {
		if !errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(pipeline.ExitCode(err))
	}
}
