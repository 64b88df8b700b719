package telemetry

import (
	"github.com/robwear/wearcore/internal/infrastructure/mqtt"
	"github.com/robwear/wearcore/internal/wearable"
)

// Logger defines the logging interface used by this package.
type Logger interface {
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

type noopLogger struct{}

func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

// Broker is the MQTT surface the telemetry layer needs. *mqtt.Client
// satisfies it.
type Broker interface {
	Publish(topic string, payload []byte, qos byte, retained bool) error
	Subscribe(topic string, qos byte, handler mqtt.MessageHandler) error
	Unsubscribe(topic string) error
	IsConnected() bool
}

// MetricWriter is the time-series surface the telemetry layer needs.
// Both the influxdb and tsdb clients satisfy it, so the backend is
// selected purely by wiring.
type MetricWriter interface {
	WriteSensorMetric(wearable, sensor, sensorType, channel string, value float64)
	WriteSensorStatus(wearable, sensor, status string)
	WriteCalibrationEvent(calibrationType, event, quality string)
}

// Sample is the JSON payload published per sensor per sampling tick.
type Sample struct {
	Wearable  string             `json:"wearable"`
	Sensor    string             `json:"sensor"`
	Type      string             `json:"type"`
	Status    string             `json:"status"`
	Timestamp wearable.Timestamp `json:"timestamp"`
	Channels  map[string]float64 `json:"channels,omitempty"`
}

// WearableStatus is the JSON payload published per wearable per tick on
// the wearable status topic.
type WearableStatus struct {
	Wearable  string             `json:"wearable"`
	Status    string             `json:"status"`
	Timestamp wearable.Timestamp `json:"timestamp"`
	Sensors   int                `json:"sensors"`
}
