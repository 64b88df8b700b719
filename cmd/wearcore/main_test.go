package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/robwear/wearcore/internal/infrastructure/config"
)

// TestRun_InvalidConfig verifies run fails with invalid config path.
func TestRun_InvalidConfig(t *testing.T) {
	originalEnv := os.Getenv("WEARCORE_CONFIG")
	defer os.Setenv("WEARCORE_CONFIG", originalEnv)

	os.Setenv("WEARCORE_CONFIG", "/nonexistent/path/config.yaml")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := run(ctx)
	if err == nil {
		t.Fatal("run() should fail with invalid config path")
	}
}

// TestRun_MissingDatabasePath verifies run fails when database path is empty.
func TestRun_MissingDatabasePath(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "test-config.yaml")

	configContent := `
service:
  id: test-wearcore

suit:
  wearable_name: TestSuit
  engine: sim
  frame_rate_hz: 60
  calibration:
    minimum_quality: acceptable

database:
  path: ""
  wal_mode: true
  busy_timeout: 5

mqtt:
  enabled: false

telemetry:
  enabled: false

logging:
  level: error
  format: text
  output: stdout
`
	if err := os.WriteFile(configPath, []byte(configContent), 0600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	originalEnv := os.Getenv("WEARCORE_CONFIG")
	defer os.Setenv("WEARCORE_CONFIG", originalEnv)
	os.Setenv("WEARCORE_CONFIG", configPath)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := run(ctx)
	if err == nil {
		t.Fatal("run() should fail with empty database path")
	}
}

// TestGetConfigPath_Default verifies default config path.
func TestGetConfigPath_Default(t *testing.T) {
	originalEnv := os.Getenv("WEARCORE_CONFIG")
	defer os.Setenv("WEARCORE_CONFIG", originalEnv)

	os.Unsetenv("WEARCORE_CONFIG")

	path := getConfigPath()
	if path != defaultConfigPath {
		t.Errorf("getConfigPath() = %q, want %q", path, defaultConfigPath)
	}
}

// TestGetConfigPath_EnvOverride verifies environment variable override.
func TestGetConfigPath_EnvOverride(t *testing.T) {
	originalEnv := os.Getenv("WEARCORE_CONFIG")
	defer os.Setenv("WEARCORE_CONFIG", originalEnv)

	expected := "/custom/path/config.yaml"
	os.Setenv("WEARCORE_CONFIG", expected)

	path := getConfigPath()
	if path != expected {
		t.Errorf("getConfigPath() = %q, want %q", path, expected)
	}
}

// TestRun_SuccessfulStartupAndShutdown starts the full service with MQTT
// and the metrics backends disabled, then shuts it down via the context.
func TestRun_SuccessfulStartupAndShutdown(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "test-config.yaml")
	dbPath := filepath.Join(tmpDir, "test.db")

	configContent := `
service:
  id: test-wearcore

suit:
  wearable_name: TestSuit
  engine: sim
  stale_after_ms: 500
  frame_rate_hz: 120
  calibration:
    minimum_quality: acceptable
    wait_timeout: 2s

analog:
  devices:
    - wearable_name: TestFT
      sensor_name: TestFT::ft6d::RightFoot
      sensor_type: force_torque_6d_sensor
      channel_offset: 0

database:
  path: "` + dbPath + `"
  wal_mode: true
  busy_timeout: 5

mqtt:
  enabled: false

api:
  host: "127.0.0.1"
  port: 18099
  timeouts:
    read: 30
    write: 30
    idle: 60

telemetry:
  enabled: false

logging:
  level: error
  format: text
  output: stdout
`
	if err := os.WriteFile(configPath, []byte(configContent), 0600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	originalEnv := os.Getenv("WEARCORE_CONFIG")
	defer os.Setenv("WEARCORE_CONFIG", originalEnv)
	os.Setenv("WEARCORE_CONFIG", configPath)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := run(ctx); err != nil {
		t.Fatalf("run() returned error: %v", err)
	}
}

// TestRun_ContextCancelledDuringStartup verifies cancellation during startup.
func TestRun_ContextCancelledDuringStartup(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "test-config.yaml")
	dbPath := filepath.Join(tmpDir, "test.db")

	configContent := `
service:
  id: test-wearcore

suit:
  wearable_name: TestSuit
  engine: sim
  frame_rate_hz: 60
  calibration:
    minimum_quality: acceptable

database:
  path: "` + dbPath + `"
  wal_mode: true
  busy_timeout: 5

mqtt:
  enabled: false

api:
  host: "127.0.0.1"
  port: 18098
  timeouts:
    read: 30
    write: 30
    idle: 60

telemetry:
  enabled: false

logging:
  level: error
  format: text
  output: stdout
`
	if err := os.WriteFile(configPath, []byte(configContent), 0600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	originalEnv := os.Getenv("WEARCORE_CONFIG")
	defer os.Setenv("WEARCORE_CONFIG", originalEnv)
	os.Setenv("WEARCORE_CONFIG", configPath)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// Startup either aborts at the first context-aware step or falls
	// straight through to the shutdown path.
	if err := run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		t.Fatalf("run() with cancelled context returned error: %v", err)
	}
}

// configSuit builds a minimal suit config for engine selection tests.
func configSuit(engine string) config.SuitConfig {
	return config.SuitConfig{
		WearableName: "TestSuit",
		Engine:       engine,
		FrameRateHz:  60,
	}
}

// TestBuildEngine_Unknown verifies unsupported engine names are rejected.
func TestBuildEngine_Unknown(t *testing.T) {
	_, err := buildEngine(configSuit("hardware"))
	if err == nil {
		t.Fatal("buildEngine should reject unknown engine")
	}
}

// TestBuildEngine_Sim verifies the simulator engine is built.
func TestBuildEngine_Sim(t *testing.T) {
	engine, err := buildEngine(configSuit("sim"))
	if err != nil {
		t.Fatalf("buildEngine: %v", err)
	}
	if engine == nil {
		t.Fatal("buildEngine returned nil engine")
	}
}
