package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated environment statistics for one window.
type WindowStats struct {
	Session         string  `csv:"session"`
	WindowStartTick int64   `csv:"-"`
	WindowEndTick   int64   `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`

	// Environment at window end
	Intensity       float64 `csv:"intensity"`
	ActiveParticles int     `csv:"active_particles"`
	FogDensity      float64 `csv:"fog"`
	RiverLevel      float64 `csv:"river_level"`
	FloodLevel      float64 `csv:"flood_level"`
	LightsOn        bool    `csv:"lights_on"`
	Umbrellas       bool    `csv:"umbrellas"`

	// Events during window
	IntensityChanges      int `csv:"intensity_changes"`
	Recycles              int `csv:"recycles"`
	VehicleWraps          int `csv:"vehicle_wraps"`
	PedestrianReflections int `csv:"pedestrian_reflections"`

	MeanVehicleSpeed float64 `csv:"mean_vehicle_speed"`

	// Frame delta distribution in milliseconds
	FrameMeanMS float64 `csv:"frame_mean_ms"`
	FrameP50MS  float64 `csv:"frame_p50_ms"`
	FrameP95MS  float64 `csv:"frame_p95_ms"`
}

// ComputeFrameStats returns the mean, median and 95th percentile of values.
// Values are not modified.
func ComputeFrameStats(values []float64) (mean, p50, p95 float64) {
	if len(values) == 0 {
		return 0, 0, 0
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	mean = stat.Mean(sorted, nil)
	p50 = stat.Quantile(0.5, stat.Empirical, sorted, nil)
	p95 = stat.Quantile(0.95, stat.Empirical, sorted, nil)
	return mean, p50, p95
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int64("window_start", s.WindowStartTick),
		slog.Int64("window_end", s.WindowEndTick),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Float64("intensity", s.Intensity),
		slog.Int("active_particles", s.ActiveParticles),
		slog.Float64("fog", s.FogDensity),
		slog.Float64("river_level", s.RiverLevel),
		slog.Float64("flood_level", s.FloodLevel),
		slog.Bool("lights_on", s.LightsOn),
		slog.Bool("umbrellas", s.Umbrellas),
		slog.Int("intensity_changes", s.IntensityChanges),
		slog.Int("recycles", s.Recycles),
		slog.Int("vehicle_wraps", s.VehicleWraps),
		slog.Int("pedestrian_reflections", s.PedestrianReflections),
		slog.Float64("mean_vehicle_speed", s.MeanVehicleSpeed),
		slog.Float64("frame_mean_ms", s.FrameMeanMS),
		slog.Float64("frame_p95_ms", s.FrameP95MS),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndTick,
		"sim_time", s.SimTimeSec,
		"intensity", s.Intensity,
		"active_particles", s.ActiveParticles,
		"fog", s.FogDensity,
		"river_level", s.RiverLevel,
		"flood_level", s.FloodLevel,
		"lights_on", s.LightsOn,
		"umbrellas", s.Umbrellas,
		"recycles", s.Recycles,
		"vehicle_wraps", s.VehicleWraps,
		"pedestrian_reflections", s.PedestrianReflections,
		"frame_p95_ms", s.FrameP95MS,
	)
}
