package app

import (
	"io"
	"log/slog"
	"time"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fixedClock pins "today" to 15 June 2024.
func fixedClock() time.Time {
	return time.Date(2024, time.June, 15, 10, 30, 0, 0, time.UTC)
}
