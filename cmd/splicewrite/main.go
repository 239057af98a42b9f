package main

import (
	"context"
	"errors"
	"github.com/cirruslabs/splicewrite/internal/command"
	"github.com/cirruslabs/splicewrite/internal/splicer"
	"log"
	"os"
	"os/signal"
)

// exitFailure is what exit(-1) results in
const exitFailure = 255

func main() {
	// Set up a signal-interruptible context
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)

	// Disable log timestamping
	log.SetFlags(log.Flags() &^ (log.Ldate | log.Ltime))

	// Run the command
	if err := command.NewRootCmd().ExecuteContext(ctx); err != nil {
		cancel()

		// Usage was already printed to the standard output
		if !errors.Is(err, splicer.ErrUsage) {
			log.Println(err)
		}

		os.Exit(exitFailure)
	}

	cancel()
}
