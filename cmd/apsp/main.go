// Command apsp solves all-pairs shortest paths for a ".cedge" graph on a
// simulated BSP processor grid.
package main

import (
	"context"
	"os"
	"os/signal"
)

func main() {
	// trap Ctrl+C and cancel the running solve
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCommand(ctx).Execute(); err != nil {
		stop()
		os.Exit(1)
	}
}
