// Command web runs the BNI Tracker HTTP server: slip-audit ingestion,
// matrix reports, comparisons and the realtime progress feed.
package main

import (
	"log/slog"
	"os"

	"bnitrack/internal/app"
)

func main() {
	application, err := app.NewApplication()
	if err != nil {
		slog.Error("failed to initialize application", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := application.Run(); err != nil {
		slog.Error("application error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
