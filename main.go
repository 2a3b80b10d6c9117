package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"pom_automation/presentation/terminal"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	termInterface, err := terminal.NewTerminalInterface()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}

	runErr := termInterface.Run(ctx)
	if err := termInterface.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to close browser: %v\n", err)
	}
	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", runErr)
		os.Exit(1)
	}
}
