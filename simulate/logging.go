package simulate

import "log/slog"

// Custom levels between Info and Warn for per-cycle and per-element
// tracing: fine-grained levels above LevelInfo rather than relying on
// Debug for high-volume per-cycle output.
const (
	LevelTrace    slog.Level = slog.LevelInfo + 1
	LevelActivity slog.Level = slog.LevelInfo + 2
)
