// Wearcore - Wearable Sensor Gateway
//
// This is the main entry point for the Wearcore service. Wearcore exposes
// wearable devices (motion capture suits, analog force/skin sensors) behind
// one registry, streams their samples over MQTT and WebSocket, records
// telemetry to a time-series backend, and drives the suit calibration
// workflow over a REST API.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robwear/wearcore/internal/analog"
	"github.com/robwear/wearcore/internal/api"
	"github.com/robwear/wearcore/internal/calibration"
	"github.com/robwear/wearcore/internal/drivers/mvn"
	"github.com/robwear/wearcore/internal/infrastructure/config"
	"github.com/robwear/wearcore/internal/infrastructure/database"
	"github.com/robwear/wearcore/internal/infrastructure/influxdb"
	"github.com/robwear/wearcore/internal/infrastructure/logging"
	"github.com/robwear/wearcore/internal/infrastructure/mqtt"
	"github.com/robwear/wearcore/internal/infrastructure/tsdb"
	"github.com/robwear/wearcore/internal/registry"
	"github.com/robwear/wearcore/internal/telemetry"
	"github.com/robwear/wearcore/internal/wearable"
)

// Version information - set at build time via ldflags
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123"
var (
	version = "dev"     // Semantic version (e.g., "1.0.0")
	commit  = "unknown" // Git commit hash
	date    = "unknown" // Build date
)

// Default configuration file path
const defaultConfigPath = "configs/config.yaml"

// analogRefreshInterval is the polling cadence for analog channel blocks.
const analogRefreshInterval = 10 * time.Millisecond

func main() {
	// Create a context that cancels on interrupt signals (Ctrl+C, SIGTERM)
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run is the actual application logic, separated from main for testability.
// Returning an error allows main to handle exit codes consistently.
func run(ctx context.Context) error {
	// Use default logger until config is loaded
	log := logging.Default()
	log.Info("starting Wearcore",
		"version", version,
		"commit", commit,
		"build_date", date,
	)

	// Load configuration
	configPath := getConfigPath()
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	log.Info("configuration loaded", "path", configPath)

	// Reinitialise logger with config settings
	log = logging.New(cfg.Logging, version)
	log.Info("logger initialised",
		"level", cfg.Logging.Level,
		"format", cfg.Logging.Format,
	)

	// Open database
	db, err := database.Open(database.Config{
		Path:        cfg.Database.Path,
		WALMode:     cfg.Database.WALMode,
		BusyTimeout: cfg.Database.BusyTimeout,
	})
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer func() {
		log.Info("closing database")
		if closeErr := db.Close(); closeErr != nil {
			log.Error("error closing database", "error", closeErr)
		}
	}()
	log.Info("database connected", "path", cfg.Database.Path)

	// Calibration session history owns its own schema
	history, err := calibration.NewHistory(ctx, db.DB)
	if err != nil {
		return fmt.Errorf("initialising calibration history: %w", err)
	}

	// Start the suit engine and driver
	engine, err := buildEngine(cfg.Suit)
	if err != nil {
		return err
	}
	driver, err := mvn.New(mvn.Options{
		WearableName: cfg.Suit.WearableName,
		Engine:       engine,
		StaleAfter:   cfg.Suit.StaleAfter(),
		Logger:       log,
	})
	if err != nil {
		return fmt.Errorf("creating suit driver: %w", err)
	}
	if err := driver.Start(); err != nil {
		return fmt.Errorf("starting suit driver: %w", err)
	}
	defer func() {
		log.Info("stopping suit driver")
		driver.Stop()
	}()

	// Wearable registry
	reg := registry.New()
	reg.SetLogger(log)
	if err := reg.Register(driver); err != nil {
		return fmt.Errorf("registering suit: %w", err)
	}

	// Analog channel devices
	adapters, err := buildAnalogAdapters(cfg.Analog, reg)
	if err != nil {
		return err
	}
	for _, a := range adapters {
		go refreshLoop(ctx, a, log)
	}
	if len(adapters) > 0 {
		log.Info("analog devices registered", "count", len(adapters))
	}

	// Connect to MQTT broker (optional)
	var mqttClient *mqtt.Client
	if cfg.MQTT.Enabled {
		mqttClient, err = mqtt.Connect(cfg.MQTT)
		if err != nil {
			return fmt.Errorf("connecting to MQTT: %w", err)
		}
		defer func() {
			log.Info("disconnecting from MQTT")
			if closeErr := mqttClient.Close(); closeErr != nil {
				log.Error("error closing MQTT", "error", closeErr)
			}
		}()
		log.Info("MQTT connected",
			"broker", fmt.Sprintf("%s:%d", cfg.MQTT.Broker.Host, cfg.MQTT.Broker.Port),
			"client_id", cfg.MQTT.Broker.ClientID,
		)

		mqttClient.SetOnConnect(func() {
			log.Info("MQTT reconnected")
		})
		mqttClient.SetOnDisconnect(func(err error) {
			log.Warn("MQTT disconnected", "error", err)
		})
	} else {
		log.Info("MQTT disabled")
	}

	// Time-series backend (optional)
	metrics, closeMetrics, err := buildMetricWriter(ctx, cfg, log)
	if err != nil {
		return err
	}
	if closeMetrics != nil {
		defer closeMetrics()
	}

	// Calibration controller, with live events fanned out over MQTT and
	// the metrics backend before landing in the history table.
	var broker telemetry.Broker
	if mqttClient != nil {
		broker = mqttClient
	}
	recorder := telemetry.NewEventRecorder(history, broker, metrics, byte(cfg.MQTT.QoS), log)

	minQuality := calibration.QualityUnknown
	if cfg.Suit.Calibration.MinimumQuality != "" {
		minQuality, err = calibration.QualityFromString(cfg.Suit.Calibration.MinimumQuality)
		if err != nil {
			return fmt.Errorf("parsing minimum quality: %w", err)
		}
	}
	calibrator, err := calibration.New(calibration.Options{
		Connector:      engine,
		MinimumQuality: minQuality,
		Timing:         calibration.Timing{WaitTimeout: cfg.Suit.Calibration.WaitTimeout},
		Recorder:       recorder,
		Marker:         driver,
		Logger:         log,
	})
	if err != nil {
		return fmt.Errorf("creating calibrator: %w", err)
	}
	defer calibrator.Close() //nolint:errcheck // Shutdown path, abort error is logged by the calibrator

	// Telemetry publisher and actuator command router
	if cfg.Telemetry.Enabled && (broker != nil || metrics != nil) {
		publisher, pubErr := telemetry.NewPublisher(telemetry.PublisherOptions{
			Registry: reg,
			Broker:   broker,
			Metrics:  metrics,
			Interval: cfg.Telemetry.Interval,
			QoS:      byte(cfg.MQTT.QoS),
			Logger:   log,
		})
		if pubErr != nil {
			return fmt.Errorf("creating telemetry publisher: %w", pubErr)
		}
		publisher.Start()
		defer func() {
			log.Info("stopping telemetry publisher")
			publisher.Stop()
		}()
		log.Info("telemetry publisher started", "interval", cfg.Telemetry.Interval)
	} else {
		log.Info("telemetry publisher disabled")
	}

	if broker != nil {
		router, routerErr := telemetry.NewCommandRouter(reg, broker, byte(cfg.MQTT.QoS), log)
		if routerErr != nil {
			return fmt.Errorf("creating command router: %w", routerErr)
		}
		if startErr := router.Start(); startErr != nil {
			return fmt.Errorf("starting command router: %w", startErr)
		}
		defer func() {
			log.Info("stopping command router")
			if stopErr := router.Stop(); stopErr != nil {
				log.Error("error stopping command router", "error", stopErr)
			}
		}()
		log.Info("actuator command router started")
	}

	// REST API and WebSocket server
	apiServer, err := api.New(api.Deps{
		Config:     cfg.API,
		WS:         cfg.WebSocket,
		Logger:     log,
		Registry:   reg,
		Calibrator: calibrator,
		History:    history,
		MQTT:       mqttClient,
		Version:    version,
	})
	if err != nil {
		return fmt.Errorf("creating API server: %w", err)
	}
	if err := apiServer.Start(ctx); err != nil {
		return fmt.Errorf("starting API server: %w", err)
	}
	defer func() {
		log.Info("stopping API server")
		if closeErr := apiServer.Close(); closeErr != nil {
			log.Error("error closing API server", "error", closeErr)
		}
	}()
	log.Info("API server started", "address", fmt.Sprintf("%s:%d", cfg.API.Host, cfg.API.Port))

	// Verify all connections are healthy
	if err := healthCheck(ctx, db, mqttClient); err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	log.Info("all health checks passed")

	log.Info("initialisation complete, waiting for shutdown signal")

	// Wait for shutdown signal
	<-ctx.Done()

	log.Info("shutdown signal received, cleaning up")

	// Deferred Close() calls run in reverse order: API, command router,
	// publisher, calibrator, metrics, MQTT, driver, database.

	log.Info("Wearcore stopped")
	return nil
}

// getConfigPath returns the configuration file path.
// Uses WEARCORE_CONFIG environment variable if set, otherwise default.
func getConfigPath() string {
	if path := os.Getenv("WEARCORE_CONFIG"); path != "" {
		return path
	}
	return defaultConfigPath
}

// buildEngine creates the suit device link selected by config.
func buildEngine(cfg config.SuitConfig) (mvn.Engine, error) {
	switch cfg.Engine {
	case "", "sim":
		frameRate := time.Duration(0)
		if cfg.FrameRateHz > 0 {
			frameRate = cfg.FramePeriod()
		}
		return mvn.NewSim(mvn.SimOptions{FrameRate: frameRate}), nil
	default:
		return nil, fmt.Errorf("unknown suit engine %q", cfg.Engine)
	}
}

// buildAnalogAdapters creates and registers one adapter per configured
// analog device, each backed by a simulated source sized to its channel
// demand.
func buildAnalogAdapters(cfg config.AnalogConfig, reg *registry.Registry) ([]*analog.Adapter, error) {
	adapters := make([]*analog.Adapter, 0, len(cfg.Devices))
	for _, dev := range cfg.Devices {
		demand := dev.ChannelOffset + 6
		if dev.Taxels > 0 {
			demand = dev.ChannelOffset + dev.Taxels
		}
		sensorType, err := wearable.SensorTypeFromString(dev.SensorType)
		if err != nil {
			return nil, fmt.Errorf("analog device %q: %w", dev.WearableName, err)
		}
		adapter, err := analog.New(analog.Config{
			WearableName:  dev.WearableName,
			SensorName:    dev.SensorName,
			SensorType:    sensorType,
			ChannelOffset: dev.ChannelOffset,
			Taxels:        dev.Taxels,
		}, analog.NewSimSource(demand))
		if err != nil {
			return nil, fmt.Errorf("creating analog device %q: %w", dev.WearableName, err)
		}
		if err := reg.Register(adapter); err != nil {
			return nil, fmt.Errorf("registering analog device %q: %w", dev.WearableName, err)
		}
		adapters = append(adapters, adapter)
	}
	return adapters, nil
}

// refreshLoop polls one analog adapter until the context is cancelled.
func refreshLoop(ctx context.Context, a *analog.Adapter, log *logging.Logger) {
	ticker := time.NewTicker(analogRefreshInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := a.Refresh(); err != nil {
				log.Warn("analog refresh failed", "wearable", a.WearableName(), "error", err)
			}
		}
	}
}

// buildMetricWriter connects the configured time-series backend. The
// returned close function is nil when no backend is enabled.
func buildMetricWriter(ctx context.Context, cfg *config.Config, log *logging.Logger) (telemetry.MetricWriter, func(), error) {
	switch cfg.Telemetry.Backend {
	case "influxdb":
		if !cfg.InfluxDB.Enabled {
			log.Info("InfluxDB disabled")
			return nil, nil, nil
		}
		client, err := influxdb.Connect(cfg.InfluxDB)
		if err != nil {
			return nil, nil, fmt.Errorf("connecting to InfluxDB: %w", err)
		}
		client.SetOnError(func(err error) {
			log.Error("InfluxDB write error", "error", err)
		})
		log.Info("InfluxDB connected",
			"url", cfg.InfluxDB.URL,
			"org", cfg.InfluxDB.Org,
			"bucket", cfg.InfluxDB.Bucket,
		)
		return client, func() {
			log.Info("closing InfluxDB connection")
			if err := client.Close(); err != nil {
				log.Error("error closing InfluxDB", "error", err)
			}
		}, nil
	case "tsdb":
		if !cfg.TSDB.Enabled {
			log.Info("TSDB disabled")
			return nil, nil, nil
		}
		client, err := tsdb.Connect(ctx, cfg.TSDB)
		if err != nil {
			return nil, nil, fmt.Errorf("connecting to TSDB: %w", err)
		}
		log.Info("TSDB connected", "url", cfg.TSDB.URL)
		return client, func() {
			log.Info("closing TSDB connection")
			if err := client.Close(); err != nil {
				log.Error("error closing TSDB", "error", err)
			}
		}, nil
	case "":
		return nil, nil, nil
	default:
		return nil, nil, fmt.Errorf("unknown telemetry backend %q", cfg.Telemetry.Backend)
	}
}

// healthCheck verifies infrastructure connections are healthy.
func healthCheck(ctx context.Context, db *database.DB, mqttClient *mqtt.Client) error {
	if err := db.HealthCheck(ctx); err != nil {
		return fmt.Errorf("database: %w", err)
	}
	if mqttClient != nil {
		if err := mqttClient.HealthCheck(ctx); err != nil {
			return fmt.Errorf("mqtt: %w", err)
		}
	}
	return nil
}
