package engine

import "testing"

func testConfig(t *testing.T) *Config {
	t.Helper()
	cfg := &Config{GrowthThreshold: 1 << 20}
	if err := cfg.check(); err != nil {
		t.Fatalf("check() = %v", err)
	}
	return cfg
}

func TestNewEngineAllocatesAndCollects(t *testing.T) {
	e, err := New(testConfig(t))
	if err != nil {
		t.Fatalf("New() = %v", err)
	}
	defer e.Close()

	obj := e.NewObject(e.Shapes.Empty, 4)
	if obj == nil {
		t.Fatal("NewObject returned nil")
	}

	stats := e.Collect()
	if stats.Reclaimed == 0 {
		t.Fatalf("expected the unrooted object to be reclaimed, got Reclaimed=0")
	}
}

func TestConfigCheckIsIdempotent(t *testing.T) {
	cfg := &Config{}
	if err := cfg.check(); err != nil {
		t.Fatalf("check() = %v", err)
	}
	if cfg.GrowthThreshold != DefaultGrowthThreshold {
		t.Fatalf("GrowthThreshold = %d, want default %d", cfg.GrowthThreshold, DefaultGrowthThreshold)
	}
	cfg.GrowthThreshold = 42
	if err := cfg.check(); err != nil {
		t.Fatalf("second check() = %v", err)
	}
	if cfg.GrowthThreshold != 42 {
		t.Fatalf("second check() overwrote an already-checked Config's field")
	}
}

func TestConfigRejectsNegativeMaxChunkShift(t *testing.T) {
	cfg := &Config{MaxChunkShift: -1}
	if err := cfg.check(); err == nil {
		t.Fatalf("check() accepted a negative MaxChunkShift")
	}
}

func TestLogLevelFromString(t *testing.T) {
	l, err := LogLevelFromString("WARN")
	if err != nil {
		t.Fatalf("LogLevelFromString(WARN) = %v", err)
	}
	if l != LogWarn {
		t.Fatalf("LogLevelFromString(WARN) = %v, want LogWarn", l)
	}
	if _, err := LogLevelFromString("NOPE"); err == nil {
		t.Fatalf("LogLevelFromString(NOPE) should have errored")
	}
}
