// ./main.go
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spreado/spreado-cli/cmd"
	"github.com/spreado/spreado-cli/internal/observability"
)

// main is a thin entry point; the release binary lives in cmd/spreado.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	err := cmd.Execute(ctx)
	observability.Sync()
	if err != nil {
		os.Exit(1)
	}
}
