package main

import (
	"context"
	"log/slog"
	"os"

	"paie/internal/app/server"
)

func main() {
	if err := server.Run(context.Background()); err != nil {
		slog.Error("server stopped", "err", err)
		os.Exit(1)
	}
}
