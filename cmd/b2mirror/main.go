// File: cmd/b2mirror/main.go
package main

import (
	"context"
	"os/signal"
	"syscall"
)

func main() {
	// SIGINT and SIGTERM cancel the context, which kills any running child process
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	Execute(ctx)
}
