package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())

	// Handle shutdown signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig, ok := <-sigChan
		if !ok {
			return
		}
		fmt.Fprintf(os.Stderr, "Received signal %v, stopping after in-flight files...\n", sig)
		cancel()
	}()

	code := execute(ctx, os.Args[1:], os.Stdout, os.Stderr)

	signal.Stop(sigChan)
	close(sigChan)
	cancel()
	os.Exit(code)
}
