package game

import (
	"log/slog"

	"github.com/pthm-cable/raincity/systems"
)

// LogValue implements slog.LogValuer for structured logging.
func (st State) LogValue() slog.Value {
	d := st.Derived
	return slog.GroupValue(
		slog.Int64("tick", st.Tick),
		slog.Float64("sim_time", st.SimTime),
		slog.Float64("intensity", st.Intensity),
		slog.String("band", systems.BandFor(st.Intensity).Name()),
		slog.String("sky", d.SkyColor.Hex()),
		slog.Float64("fog", d.FogDensity),
		slog.Float64("active_ratio", d.ParticleActiveRatio),
		slog.Float64("river_level", d.RiverLevel),
		slog.Float64("flood_level", d.FloodLevel),
		slog.Bool("lights_on", d.LightsOn),
		slog.Bool("umbrellas", d.UmbrellasVisible),
	)
}

// LogState logs the current state and agent counts.
func (s *Simulation) LogState() {
	slog.Info("state",
		"state", s.state,
		"active_particles", s.particles.ActiveCount(),
		"vehicles", s.traffic.Count(),
		"pedestrians", s.pedestrians.Count(),
	)
}
