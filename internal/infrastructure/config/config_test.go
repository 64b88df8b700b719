package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_ValidConfig(t *testing.T) {
	content := `
service:
  id: "test-wearcore"
suit:
  wearable_name: "TestSuit"
  engine: "sim"
  frame_rate_hz: 120
  calibration:
    minimum_quality: "good"
analog:
  devices:
    - wearable_name: "FTShoes"
      sensor_name: "LeftShoe"
      sensor_type: "force_torque_6d_sensor"
      channel_offset: 0
database:
  path: "/tmp/test.db"
  wal_mode: true
  busy_timeout: 5
mqtt:
  broker:
    host: "localhost"
    port: 1883
    client_id: "test-client"
  qos: 1
api:
  host: "0.0.0.0"
  port: 8080
telemetry:
  enabled: true
  interval: 50ms
  backend: "tsdb"
`
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Service.ID != "test-wearcore" {
		t.Errorf("Service.ID = %q, want %q", cfg.Service.ID, "test-wearcore")
	}

	if cfg.Suit.WearableName != "TestSuit" {
		t.Errorf("Suit.WearableName = %q, want %q", cfg.Suit.WearableName, "TestSuit")
	}

	if cfg.Suit.FrameRateHz != 120 {
		t.Errorf("Suit.FrameRateHz = %d, want 120", cfg.Suit.FrameRateHz)
	}

	if cfg.Suit.Calibration.MinimumQuality != "good" {
		t.Errorf("Suit.Calibration.MinimumQuality = %q, want %q",
			cfg.Suit.Calibration.MinimumQuality, "good")
	}

	if len(cfg.Analog.Devices) != 1 || cfg.Analog.Devices[0].SensorName != "LeftShoe" {
		t.Errorf("Analog.Devices = %+v", cfg.Analog.Devices)
	}

	if cfg.Database.Path != "/tmp/test.db" {
		t.Errorf("Database.Path = %q, want %q", cfg.Database.Path, "/tmp/test.db")
	}

	if cfg.Telemetry.Backend != "tsdb" || cfg.Telemetry.Interval != 50*time.Millisecond {
		t.Errorf("Telemetry = %+v", cfg.Telemetry)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("/nonexistent/path/config.yaml")
	if err == nil {
		t.Error("Load() expected error for missing file, got nil")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte("invalid: [yaml: content"), 0600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	_, err := Load(configPath)
	if err == nil {
		t.Error("Load() expected error for invalid YAML, got nil")
	}
}

func TestLoad_ValidationFailure(t *testing.T) {
	content := `
service:
  id: ""
database:
  path: "/tmp/test.db"
api:
  port: 8080
`
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	_, err := Load(configPath)
	if err == nil {
		t.Error("Load() expected validation error for empty service.id, got nil")
	}
}

func TestConfig_Validate(t *testing.T) {
	valid := func() *Config {
		cfg := defaultConfig()
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:    "valid defaults",
			mutate:  func(*Config) {},
			wantErr: false,
		},
		{
			name:    "missing service ID",
			mutate:  func(c *Config) { c.Service.ID = "" },
			wantErr: true,
		},
		{
			name:    "missing wearable name",
			mutate:  func(c *Config) { c.Suit.WearableName = "" },
			wantErr: true,
		},
		{
			name:    "unsupported engine",
			mutate:  func(c *Config) { c.Suit.Engine = "xme" },
			wantErr: true,
		},
		{
			name:    "frame rate out of range",
			mutate:  func(c *Config) { c.Suit.FrameRateHz = 0 },
			wantErr: true,
		},
		{
			name:    "bad minimum quality",
			mutate:  func(c *Config) { c.Suit.Calibration.MinimumQuality = "excellent" },
			wantErr: true,
		},
		{
			name: "analog device without names",
			mutate: func(c *Config) {
				c.Analog.Devices = []AnalogDeviceConfig{{SensorType: "skin_sensor"}}
			},
			wantErr: true,
		},
		{
			name:    "missing database path",
			mutate:  func(c *Config) { c.Database.Path = "" },
			wantErr: true,
		},
		{
			name:    "invalid QoS",
			mutate:  func(c *Config) { c.MQTT.QoS = 3 },
			wantErr: true,
		},
		{
			name:    "invalid port low",
			mutate:  func(c *Config) { c.API.Port = 0 },
			wantErr: true,
		},
		{
			name:    "invalid port high",
			mutate:  func(c *Config) { c.API.Port = 70000 },
			wantErr: true,
		},
		{
			name:    "bad telemetry backend",
			mutate:  func(c *Config) { c.Telemetry.Backend = "csv" },
			wantErr: true,
		},
		{
			name: "telemetry backend ignored when disabled",
			mutate: func(c *Config) {
				c.Telemetry.Enabled = false
				c.Telemetry.Backend = "csv"
			},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_GetTimeouts(t *testing.T) {
	cfg := &Config{
		API: APIConfig{
			Timeouts: APITimeoutConfig{
				Read:  30,
				Write: 45,
				Idle:  60,
			},
		},
	}

	if got := cfg.GetReadTimeout().Seconds(); got != 30 {
		t.Errorf("GetReadTimeout() = %v, want 30", got)
	}

	if got := cfg.GetWriteTimeout().Seconds(); got != 45 {
		t.Errorf("GetWriteTimeout() = %v, want 45", got)
	}

	if got := cfg.GetIdleTimeout().Seconds(); got != 60 {
		t.Errorf("GetIdleTimeout() = %v, want 60", got)
	}
}

func TestSuitConfig_Durations(t *testing.T) {
	cfg := SuitConfig{StaleAfterMs: 250, FrameRateHz: 60}
	if got := cfg.StaleAfter(); got != 250*time.Millisecond {
		t.Errorf("StaleAfter() = %v, want 250ms", got)
	}
	if got := cfg.FramePeriod(); got != time.Second/60 {
		t.Errorf("FramePeriod() = %v, want %v", got, time.Second/60)
	}
}

func TestApplyEnvOverrides(t *testing.T) {
	cfg := defaultConfig()

	t.Setenv("WEARCORE_DATABASE_PATH", "/custom/path.db")
	t.Setenv("WEARCORE_MQTT_HOST", "mqtt.example.com")
	t.Setenv("WEARCORE_MQTT_USERNAME", "testuser")
	t.Setenv("WEARCORE_MQTT_PASSWORD", "testpass")
	t.Setenv("WEARCORE_API_HOST", "192.168.1.1")
	t.Setenv("WEARCORE_API_PORT", "9090")
	t.Setenv("WEARCORE_INFLUXDB_TOKEN", "secret-token")
	t.Setenv("WEARCORE_TSDB_URL", "http://victoria:8428")

	applyEnvOverrides(cfg)

	if cfg.Database.Path != "/custom/path.db" {
		t.Errorf("Database.Path = %q, want %q", cfg.Database.Path, "/custom/path.db")
	}

	if cfg.MQTT.Broker.Host != "mqtt.example.com" {
		t.Errorf("MQTT.Broker.Host = %q, want %q", cfg.MQTT.Broker.Host, "mqtt.example.com")
	}

	if cfg.MQTT.Auth.Username != "testuser" {
		t.Errorf("MQTT.Auth.Username = %q, want %q", cfg.MQTT.Auth.Username, "testuser")
	}

	if cfg.MQTT.Auth.Password != "testpass" {
		t.Errorf("MQTT.Auth.Password = %q, want %q", cfg.MQTT.Auth.Password, "testpass")
	}

	if cfg.API.Host != "192.168.1.1" {
		t.Errorf("API.Host = %q, want %q", cfg.API.Host, "192.168.1.1")
	}

	if cfg.API.Port != 9090 {
		t.Errorf("API.Port = %d, want 9090", cfg.API.Port)
	}

	if cfg.InfluxDB.Token != "secret-token" {
		t.Errorf("InfluxDB.Token = %q, want %q", cfg.InfluxDB.Token, "secret-token")
	}

	if cfg.TSDB.URL != "http://victoria:8428" {
		t.Errorf("TSDB.URL = %q, want %q", cfg.TSDB.URL, "http://victoria:8428")
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()

	if cfg.Service.ID == "" {
		t.Error("defaultConfig should have non-empty Service.ID")
	}

	if cfg.Database.Path == "" {
		t.Error("defaultConfig should have non-empty Database.Path")
	}

	if cfg.MQTT.Broker.Port != 1883 {
		t.Errorf("defaultConfig MQTT.Broker.Port = %d, want 1883", cfg.MQTT.Broker.Port)
	}

	if cfg.API.Port != 8080 {
		t.Errorf("defaultConfig API.Port = %d, want 8080", cfg.API.Port)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("defaultConfig must validate, got %v", err)
	}
}
