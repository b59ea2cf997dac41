package game

import "github.com/pthm-cable/raincity/telemetry"

// Options holds per-run settings that are not part of the config file.
type Options struct {
	Seed      int64  // 0 = time-based
	LogStats  bool   // Log each telemetry window via slog
	OutputDir string // Empty disables CSV output

	// StatsCallback, if set, receives every flushed telemetry window.
	StatsCallback func(telemetry.WindowStats)
}

// DefaultOptions returns options for a time-seeded run without output.
func DefaultOptions() Options {
	return Options{}
}
