package game

import (
	"log/slog"

	"github.com/pthm-cable/raincity/telemetry"
)

// flushTelemetry closes the stats window once enough frames have passed.
func (s *Simulation) flushTelemetry() {
	if !s.collector.ShouldFlush(s.state.Tick) {
		return
	}

	stats := s.collector.Flush(s.state.Tick, s.state.SimTime, s.sampleEnvironment())
	perfStats := s.perfCollector.Stats()

	if s.statsCallback != nil {
		s.statsCallback(stats)
	}

	if s.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	// Write failures never stop the simulation
	if s.outputManager != nil {
		if err := s.outputManager.WriteTelemetry(stats); err != nil {
			slog.Error("failed to write telemetry", "error", err)
		}
		if err := s.outputManager.WritePerf(perfStats, stats.WindowEndTick); err != nil {
			slog.Error("failed to write perf", "error", err)
		}
	}
}

// sampleEnvironment captures the current environment for a telemetry row.
func (s *Simulation) sampleEnvironment() telemetry.EnvironmentSample {
	d := s.state.Derived
	return telemetry.EnvironmentSample{
		Intensity:        d.Intensity,
		ActiveParticles:  s.particles.ActiveCount(),
		FogDensity:       d.FogDensity,
		RiverLevel:       d.RiverLevel,
		FloodLevel:       d.FloodLevel,
		LightsOn:         d.LightsOn,
		Umbrellas:        d.UmbrellasVisible,
		MeanVehicleSpeed: s.traffic.MeanSpeed(),
	}
}
