package main

import (
	"context"
	"fmt"
	"io"
	"os"
)

type runner interface {
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
	Done() <-chan os.Signal
}

// run starts app and blocks until ctx is cancelled or the app asks to shut
// down. It returns the process exit code.
func run(ctx context.Context, app runner, stderr io.Writer) int {
	if err := app.Start(ctx); err != nil {
		fmt.Fprintf(stderr, "failed to start gigmarket: %v\n", err)
		return 1
	}

	select {
	case <-ctx.Done():
	case <-app.Done():
	}

	if err := app.Stop(context.Background()); err != nil {
		fmt.Fprintf(stderr, "failed to stop gigmarket: %v\n", err)
		return 1
	}
	return 0
}
