package telemetry

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gocarina/gocsv"
	"github.com/google/uuid"

	"github.com/pthm-cable/raincity/config"
)

func TestOutputManagerDisabled(t *testing.T) {
	om, err := NewOutputManager("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if om != nil {
		t.Fatal("expected nil manager for empty dir")
	}

	// Nil manager is a no-op
	if err := om.WriteTelemetry(WindowStats{}); err != nil {
		t.Errorf("expected nil error from disabled output, got %v", err)
	}
	if err := om.Close(); err != nil {
		t.Errorf("expected nil error closing disabled output, got %v", err)
	}
}

func TestOutputManagerTelemetryCSV(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "run")
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatalf("creating output: %v", err)
	}

	if _, err := uuid.Parse(om.Session()); err != nil {
		t.Errorf("expected uuid session, got %q: %v", om.Session(), err)
	}

	for i := int64(1); i <= 3; i++ {
		if err := om.WriteTelemetry(WindowStats{WindowEndTick: i * 600, Intensity: 50}); err != nil {
			t.Fatalf("writing row %d: %v", i, err)
		}
	}
	if err := om.WritePerf(PerfStats{}, 600); err != nil {
		t.Fatalf("writing perf: %v", err)
	}
	if err := om.Close(); err != nil {
		t.Fatalf("closing: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "telemetry.csv"))
	if err != nil {
		t.Fatalf("reading telemetry.csv: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected header + 3 rows, got %d lines", len(lines))
	}
	if !strings.HasPrefix(lines[0], "session,window_end,sim_time,intensity") {
		t.Errorf("unexpected header: %s", lines[0])
	}
	if strings.Count(string(data), "session") != 1 {
		t.Error("expected exactly one header row")
	}

	var rows []WindowStats
	if err := gocsv.UnmarshalBytes(data, &rows); err != nil {
		t.Fatalf("parsing telemetry.csv: %v", err)
	}
	for i, r := range rows {
		if r.Session != om.Session() {
			t.Errorf("row %d: expected session %s, got %s", i, om.Session(), r.Session)
		}
		if r.WindowEndTick != int64(i+1)*600 {
			t.Errorf("row %d: expected window_end %d, got %d", i, (i+1)*600, r.WindowEndTick)
		}
	}

	if _, err := os.Stat(filepath.Join(dir, "perf.csv")); err != nil {
		t.Errorf("expected perf.csv: %v", err)
	}
}

func TestOutputManagerWriteConfig(t *testing.T) {
	dir := t.TempDir()
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatalf("creating output: %v", err)
	}
	defer om.Close()

	if err := om.WriteConfig(config.Default()); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	loaded, err := config.Load(filepath.Join(dir, "config.yaml"))
	if err != nil {
		t.Fatalf("reloading snapshot: %v", err)
	}
	if loaded.Rain.Capacity != 150000 {
		t.Errorf("expected capacity 150000 in snapshot, got %d", loaded.Rain.Capacity)
	}
}
