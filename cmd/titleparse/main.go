// Command titleparse extracts titles and release metadata from media file
// names and, optionally, plans the library paths they would be renamed to.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	// Cancel on SIGINT/SIGTERM so the pipeline stops scheduling names.
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "titleparse: %v\n", err)
		os.Exit(1)
	}
}
