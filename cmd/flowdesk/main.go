package main

import (
	"context"
	"fmt"
	"os"

	"github.com/aretw0/flowdesk/internal/cli"
)

func main() {
	ctx := cli.NewSignalContext(context.Background())
	defer ctx.Cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		if cli.IsInterrupted(err) {
			return
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
