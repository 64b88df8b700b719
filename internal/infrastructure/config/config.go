package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration structure for Wearcore.
// All configuration is loaded from YAML and can be overridden by environment variables.
type Config struct {
	Service   ServiceConfig   `yaml:"service"`
	Suit      SuitConfig      `yaml:"suit"`
	Analog    AnalogConfig    `yaml:"analog"`
	Database  DatabaseConfig  `yaml:"database"`
	MQTT      MQTTConfig      `yaml:"mqtt"`
	API       APIConfig       `yaml:"api"`
	WebSocket WebSocketConfig `yaml:"websocket"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
	InfluxDB  InfluxDBConfig  `yaml:"influxdb"`
	TSDB      TSDBConfig      `yaml:"tsdb"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// ServiceConfig identifies this wearcore instance.
type ServiceConfig struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
}

// SuitConfig contains motion capture suit settings.
type SuitConfig struct {
	// WearableName is the registry name the suit driver registers under.
	WearableName string `yaml:"wearable_name"`

	// Engine selects the device link: "sim" for the built-in simulator.
	Engine string `yaml:"engine"`

	// StaleAfterMs marks suit sensors as timed out when no frame arrives
	// for this many milliseconds.
	StaleAfterMs int `yaml:"stale_after_ms"`

	// FrameRateHz is the sim engine's streaming rate.
	FrameRateHz int `yaml:"frame_rate_hz"`

	Calibration CalibrationConfig `yaml:"calibration"`
}

// CalibrationConfig contains calibration controller settings.
type CalibrationConfig struct {
	// MinimumQuality is the lowest accepted calibration grade:
	// "poor", "acceptable" or "good".
	MinimumQuality string `yaml:"minimum_quality"`

	// WaitTimeout bounds every wait on a device callback.
	WaitTimeout time.Duration `yaml:"wait_timeout"`
}

// AnalogConfig lists analog sensor channels exposed through the registry.
type AnalogConfig struct {
	Devices []AnalogDeviceConfig `yaml:"devices"`
}

// AnalogDeviceConfig describes one analog acquisition device.
type AnalogDeviceConfig struct {
	// WearableName is the registry name for this device.
	WearableName string `yaml:"wearable_name"`

	// SensorName names the single sensor the device backs.
	SensorName string `yaml:"sensor_name"`

	// SensorType is the capability the channels map to, e.g.
	// "force_torque_6d_sensor" or "skin_sensor".
	SensorType string `yaml:"sensor_type"`

	// ChannelOffset is the first channel of this sensor in the frame.
	ChannelOffset int `yaml:"channel_offset"`

	// Taxels is the channel count for skin sensors.
	Taxels int `yaml:"taxels,omitempty"`
}

// DatabaseConfig contains SQLite database settings.
type DatabaseConfig struct {
	Path        string `yaml:"path"`
	WALMode     bool   `yaml:"wal_mode"`
	BusyTimeout int    `yaml:"busy_timeout"`
}

// MQTTConfig contains MQTT broker connection settings.
type MQTTConfig struct {
	Enabled   bool                `yaml:"enabled"`
	Broker    MQTTBrokerConfig    `yaml:"broker"`
	Auth      MQTTAuthConfig      `yaml:"auth"`
	QoS       int                 `yaml:"qos"`
	Reconnect MQTTReconnectConfig `yaml:"reconnect"`
}

// MQTTBrokerConfig contains MQTT broker connection details.
type MQTTBrokerConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	TLS      bool   `yaml:"tls"`
	ClientID string `yaml:"client_id"`
}

// MQTTAuthConfig contains MQTT authentication credentials.
type MQTTAuthConfig struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// MQTTReconnectConfig contains MQTT reconnection settings.
type MQTTReconnectConfig struct {
	InitialDelay int `yaml:"initial_delay"`
	MaxDelay     int `yaml:"max_delay"`
	MaxAttempts  int `yaml:"max_attempts"`
}

// APIConfig contains HTTP API server settings.
type APIConfig struct {
	Host     string           `yaml:"host"`
	Port     int              `yaml:"port"`
	TLS      TLSConfig        `yaml:"tls"`
	Timeouts APITimeoutConfig `yaml:"timeouts"`
	CORS     CORSConfig       `yaml:"cors"`
}

// TLSConfig contains TLS certificate settings.
type TLSConfig struct {
	Enabled  bool   `yaml:"enabled"`
	CertFile string `yaml:"cert_file"`
	KeyFile  string `yaml:"key_file"`
}

// APITimeoutConfig contains HTTP timeout settings in seconds.
type APITimeoutConfig struct {
	Read  int `yaml:"read"`
	Write int `yaml:"write"`
	Idle  int `yaml:"idle"`
}

// CORSConfig contains Cross-Origin Resource Sharing settings.
type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
	AllowedMethods []string `yaml:"allowed_methods"`
	AllowedHeaders []string `yaml:"allowed_headers"`
}

// WebSocketConfig contains WebSocket streaming settings.
type WebSocketConfig struct {
	Path           string `yaml:"path"`
	MaxMessageSize int    `yaml:"max_message_size"`
	PingInterval   int    `yaml:"ping_interval"`
	PongTimeout    int    `yaml:"pong_timeout"`
}

// TelemetryConfig contains sensor telemetry publishing settings.
type TelemetryConfig struct {
	Enabled bool `yaml:"enabled"`

	// Interval is the sampling period for registry snapshots.
	Interval time.Duration `yaml:"interval"`

	// Backend selects the time-series sink: "influxdb" or "tsdb".
	Backend string `yaml:"backend"`
}

// InfluxDBConfig contains InfluxDB v2 connection settings.
type InfluxDBConfig struct {
	Enabled       bool   `yaml:"enabled"`
	URL           string `yaml:"url"`
	Token         string `yaml:"token"`
	Org           string `yaml:"org"`
	Bucket        string `yaml:"bucket"`
	BatchSize     int    `yaml:"batch_size"`
	FlushInterval int    `yaml:"flush_interval"`
}

// TSDBConfig contains VictoriaMetrics connection settings.
type TSDBConfig struct {
	Enabled       bool   `yaml:"enabled"`
	URL           string `yaml:"url"`
	BatchSize     int    `yaml:"batch_size"`
	FlushInterval int    `yaml:"flush_interval"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level  string            `yaml:"level"`
	Format string            `yaml:"format"`
	Output string            `yaml:"output"`
	File   FileLoggingConfig `yaml:"file"`
}

// FileLoggingConfig contains file-based logging settings.
type FileLoggingConfig struct {
	Path       string `yaml:"path"`
	MaxSize    int    `yaml:"max_size"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAge     int    `yaml:"max_age"`
	Compress   bool   `yaml:"compress"`
}

// Load reads configuration from a YAML file and applies environment variable overrides.
//
// The configuration loading order is:
//  1. Default values (hardcoded)
//  2. YAML file values (override defaults)
//  3. Environment variables (override file values)
//
// Environment variables follow the pattern: WEARCORE_SECTION_KEY
// For example: WEARCORE_DATABASE_PATH, WEARCORE_API_PORT
func Load(path string) (*Config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// defaultConfig returns a Config with sensible defaults.
func defaultConfig() *Config {
	return &Config{
		Service: ServiceConfig{
			ID:   "wearcore-001",
			Name: "Wearcore",
		},
		Suit: SuitConfig{
			WearableName: "MVNSuit",
			Engine:       "sim",
			StaleAfterMs: 500,
			FrameRateHz:  60,
			Calibration: CalibrationConfig{
				MinimumQuality: "acceptable",
				WaitTimeout:    2 * time.Minute,
			},
		},
		Database: DatabaseConfig{
			Path:        "./data/wearcore.db",
			WALMode:     true,
			BusyTimeout: 5,
		},
		MQTT: MQTTConfig{
			Broker: MQTTBrokerConfig{
				Host:     "localhost",
				Port:     1883,
				ClientID: "wearcore",
			},
			QoS: 1,
			Reconnect: MQTTReconnectConfig{
				InitialDelay: 1,
				MaxDelay:     60,
				MaxAttempts:  0,
			},
		},
		API: APIConfig{
			Host: "0.0.0.0",
			Port: 8080,
			Timeouts: APITimeoutConfig{
				Read:  30,
				Write: 30,
				Idle:  60,
			},
		},
		WebSocket: WebSocketConfig{
			Path:           "/ws",
			MaxMessageSize: 8192,
			PingInterval:   30,
			PongTimeout:    10,
		},
		Telemetry: TelemetryConfig{
			Enabled:  true,
			Interval: 100 * time.Millisecond,
			Backend:  "influxdb",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Output: "stdout",
		},
	}
}

// applyEnvOverrides applies environment variable overrides to the configuration.
// Environment variables follow the pattern: WEARCORE_SECTION_KEY.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("WEARCORE_DATABASE_PATH"); v != "" {
		cfg.Database.Path = v
	}

	if v := os.Getenv("WEARCORE_MQTT_HOST"); v != "" {
		cfg.MQTT.Broker.Host = v
	}
	if v := os.Getenv("WEARCORE_MQTT_USERNAME"); v != "" {
		cfg.MQTT.Auth.Username = v
	}
	if v := os.Getenv("WEARCORE_MQTT_PASSWORD"); v != "" {
		cfg.MQTT.Auth.Password = v
	}

	if v := os.Getenv("WEARCORE_API_HOST"); v != "" {
		cfg.API.Host = v
	}
	if v := os.Getenv("WEARCORE_API_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.API.Port = port
		}
	}

	if v := os.Getenv("WEARCORE_INFLUXDB_TOKEN"); v != "" {
		cfg.InfluxDB.Token = v
	}
	if v := os.Getenv("WEARCORE_TSDB_URL"); v != "" {
		cfg.TSDB.URL = v
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []string

	if c.Service.ID == "" {
		errs = append(errs, "service.id is required")
	}

	if c.Suit.WearableName == "" {
		errs = append(errs, "suit.wearable_name is required")
	}
	if c.Suit.Engine != "sim" {
		errs = append(errs, fmt.Sprintf("suit.engine %q is not supported", c.Suit.Engine))
	}
	if c.Suit.FrameRateHz < 1 || c.Suit.FrameRateHz > 1000 {
		errs = append(errs, "suit.frame_rate_hz must be between 1 and 1000")
	}
	switch c.Suit.Calibration.MinimumQuality {
	case "poor", "acceptable", "good":
	default:
		errs = append(errs, "suit.calibration.minimum_quality must be poor, acceptable or good")
	}

	for i, dev := range c.Analog.Devices {
		if dev.WearableName == "" || dev.SensorName == "" {
			errs = append(errs, fmt.Sprintf("analog.devices[%d] needs wearable_name and sensor_name", i))
		}
		if dev.ChannelOffset < 0 {
			errs = append(errs, fmt.Sprintf("analog.devices[%d].channel_offset must not be negative", i))
		}
	}

	if c.Database.Path == "" {
		errs = append(errs, "database.path is required")
	}

	if c.MQTT.QoS < 0 || c.MQTT.QoS > 2 {
		errs = append(errs, "mqtt.qos must be 0, 1, or 2")
	}

	if c.API.Port < 1 || c.API.Port > 65535 {
		errs = append(errs, "api.port must be between 1 and 65535")
	}

	if c.Telemetry.Enabled {
		switch c.Telemetry.Backend {
		case "influxdb", "tsdb":
		default:
			errs = append(errs, "telemetry.backend must be influxdb or tsdb")
		}
		if c.Telemetry.Interval <= 0 {
			errs = append(errs, "telemetry.interval must be positive")
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration errors: %s", strings.Join(errs, "; "))
	}

	return nil
}

// StaleAfter returns the suit staleness threshold as a Duration.
func (c *SuitConfig) StaleAfter() time.Duration {
	return time.Duration(c.StaleAfterMs) * time.Millisecond
}

// FramePeriod returns the sim engine's frame period from the rate.
func (c *SuitConfig) FramePeriod() time.Duration {
	return time.Second / time.Duration(c.FrameRateHz)
}

// GetReadTimeout returns the API read timeout as a Duration.
func (c *Config) GetReadTimeout() time.Duration {
	return time.Duration(c.API.Timeouts.Read) * time.Second
}

// GetWriteTimeout returns the API write timeout as a Duration.
func (c *Config) GetWriteTimeout() time.Duration {
	return time.Duration(c.API.Timeouts.Write) * time.Second
}

// GetIdleTimeout returns the API idle timeout as a Duration.
func (c *Config) GetIdleTimeout() time.Duration {
	return time.Duration(c.API.Timeouts.Idle) * time.Second
}
