package telemetry

import (
	"encoding/json"
	"time"

	"github.com/robwear/wearcore/internal/calibration"
	"github.com/robwear/wearcore/internal/infrastructure/mqtt"
)

// CalibrationEvent is the JSON payload published when a calibration
// session reaches a terminal state.
type CalibrationEvent struct {
	ID              string    `json:"id"`
	CalibrationType string    `json:"calibration_type"`
	Outcome         string    `json:"outcome"`
	Quality         string    `json:"quality"`
	Warnings        []string  `json:"warnings,omitempty"`
	StartedAt       time.Time `json:"started_at"`
	FinishedAt      time.Time `json:"finished_at"`
}

// EventRecorder mirrors finished calibration sessions to the MQTT event
// topic and the metrics backend, then hands them to the wrapped recorder
// for persistence. It satisfies the calibrator's Recorder contract, so a
// single wiring point gives every session all three destinations.
type EventRecorder struct {
	next    calibration.Recorder
	broker  Broker
	metrics MetricWriter
	topics  mqtt.Topics
	qos     byte
	logger  Logger
}

// NewEventRecorder creates a recorder. Any of next, broker and metrics
// may be nil; nil destinations are skipped.
func NewEventRecorder(next calibration.Recorder, broker Broker, metrics MetricWriter, qos byte, logger Logger) *EventRecorder {
	if logger == nil {
		logger = noopLogger{}
	}
	return &EventRecorder{
		next:    next,
		broker:  broker,
		metrics: metrics,
		qos:     qos,
		logger:  logger,
	}
}

// Record publishes the session and forwards it to the wrapped recorder.
// Publish failures are logged, not returned: losing a live event must not
// fail the calibration run or block persistence.
func (r *EventRecorder) Record(s calibration.Session) error {
	event := CalibrationEvent{
		ID:              s.ID,
		CalibrationType: s.CalibrationType,
		Outcome:         s.Outcome,
		Quality:         s.Quality.String(),
		Warnings:        s.Warnings,
		StartedAt:       s.StartedAt,
		FinishedAt:      s.FinishedAt,
	}

	if r.broker != nil && r.broker.IsConnected() {
		payload, err := json.Marshal(event)
		if err != nil {
			r.logger.Error("marshalling calibration event", "id", s.ID, "error", err)
		} else if err := r.broker.Publish(r.topics.CalibrationEvent(s.Outcome), payload, r.qos, false); err != nil {
			r.logger.Warn("publishing calibration event", "id", s.ID, "error", err)
		}
	}

	if r.metrics != nil {
		r.metrics.WriteCalibrationEvent(s.CalibrationType, s.Outcome, s.Quality.String())
	}

	if r.next != nil {
		return r.next.Record(s)
	}
	return nil
}
