package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/robwear/wearcore/internal/registry"
	"github.com/robwear/wearcore/internal/telemetry"
	"github.com/robwear/wearcore/internal/wearable"
)

// wearableSummary is the JSON shape for a wearable in list and get responses.
type wearableSummary struct {
	Name      string             `json:"name"`
	Status    string             `json:"status"`
	Timestamp wearable.Timestamp `json:"timestamp"`
	Sensors   int                `json:"sensors"`
	Actuators int                `json:"actuators"`
}

func summarise(w wearable.Wearable) wearableSummary {
	return wearableSummary{
		Name:      w.WearableName(),
		Status:    w.Status().String(),
		Timestamp: w.Timestamp(),
		Sensors:   len(wearable.AllSensors(w)),
		Actuators: len(wearable.AllActuators(w)),
	}
}

// handleListWearables returns all registered wearables.
func (s *Server) handleListWearables(w http.ResponseWriter, _ *http.Request) {
	all := s.registry.All()
	summaries := make([]wearableSummary, 0, len(all))
	for _, wr := range all {
		summaries = append(summaries, summarise(wr))
	}
	writeJSON(w, http.StatusOK, map[string]any{"wearables": summaries, "count": len(summaries)})
}

// handleGetWearable returns a single wearable by name.
func (s *Server) handleGetWearable(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	wr, err := s.registry.Get(name)
	if err != nil {
		if errors.Is(err, registry.ErrWearableNotFound) {
			writeNotFound(w, "wearable not found")
			return
		}
		writeInternalError(w, "failed to get wearable")
		return
	}

	writeJSON(w, http.StatusOK, summarise(wr))
}

// handleWearableStats returns aggregate registry statistics.
func (s *Server) handleWearableStats(w http.ResponseWriter, _ *http.Request) {
	stats := s.registry.GetStats()

	byType := make(map[string]int, len(stats.BySensorType))
	for t, n := range stats.BySensorType {
		byType[t.String()] = n
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"wearables":      stats.Wearables,
		"sensors":        stats.Sensors,
		"actuators":      stats.Actuators,
		"by_sensor_type": byType,
	})
}

// handleListSensors returns all sensors of a wearable, with an optional
// type filter.
//
// Query parameters:
//   - type: filter by sensor type (accelerometer, gyroscope, etc.)
func (s *Server) handleListSensors(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	wr, err := s.registry.Get(name)
	if err != nil {
		if errors.Is(err, registry.ErrWearableNotFound) {
			writeNotFound(w, "wearable not found")
			return
		}
		writeInternalError(w, "failed to get wearable")
		return
	}

	var sensors []wearable.Sensor
	if typeStr := r.URL.Query().Get("type"); typeStr != "" {
		sensorType, err := wearable.SensorTypeFromString(typeStr)
		if err != nil {
			writeBadRequest(w, "unknown sensor type")
			return
		}
		sensors = wr.SensorsOfType(sensorType)
	} else {
		sensors = wearable.AllSensors(wr)
	}

	samples := make([]telemetry.Sample, 0, len(sensors))
	for _, sensor := range sensors {
		samples = append(samples, sensorSample(name, wr.Timestamp(), sensor))
	}
	writeJSON(w, http.StatusOK, map[string]any{"sensors": samples, "count": len(samples)})
}

// handleGetSensor returns the current reading of a single sensor.
func (s *Server) handleGetSensor(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	sensorName := chi.URLParam(r, "sensorName")

	wr, err := s.registry.Get(name)
	if err != nil {
		if errors.Is(err, registry.ErrWearableNotFound) {
			writeNotFound(w, "wearable not found")
			return
		}
		writeInternalError(w, "failed to get wearable")
		return
	}

	sensor, err := s.registry.FindSensor(name, sensorName)
	if err != nil {
		writeNotFound(w, "sensor not found")
		return
	}

	writeJSON(w, http.StatusOK, sensorSample(name, wr.Timestamp(), sensor))
}

// sensorSample builds the on-demand read for one sensor, reusing the
// channel flattening the telemetry publisher streams over MQTT so both
// surfaces agree on naming.
func sensorSample(wearableName string, ts wearable.Timestamp, sensor wearable.Sensor) telemetry.Sample {
	return telemetry.Sample{
		Wearable:  wearableName,
		Sensor:    sensor.SensorName(),
		Type:      sensor.SensorType().String(),
		Status:    sensor.SensorStatus().String(),
		Timestamp: ts,
		Channels:  telemetry.SensorChannels(sensor),
	}
}

// actuatorSummary is the JSON shape for an actuator in list responses.
type actuatorSummary struct {
	Name   string `json:"name"`
	Type   string `json:"type"`
	Status string `json:"status"`
}

// handleListActuators returns all actuators of a wearable.
func (s *Server) handleListActuators(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	wr, err := s.registry.Get(name)
	if err != nil {
		if errors.Is(err, registry.ErrWearableNotFound) {
			writeNotFound(w, "wearable not found")
			return
		}
		writeInternalError(w, "failed to get wearable")
		return
	}

	actuators := wearable.AllActuators(wr)
	summaries := make([]actuatorSummary, 0, len(actuators))
	for _, act := range actuators {
		summaries = append(summaries, actuatorSummary{
			Name:   act.ActuatorName(),
			Type:   act.ActuatorType().String(),
			Status: act.ActuatorStatus().String(),
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"actuators": summaries, "count": len(summaries)})
}

// actuatorCommandRequest is the body for POST .../actuators/{name}/command.
type actuatorCommandRequest struct {
	Value float64 `json:"value"`
}

// handleActuatorCommand applies a command to one actuator. The command is
// dispatched directly to the actuator, not via MQTT, so the caller sees the
// driver's error.
func (s *Server) handleActuatorCommand(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	actuatorName := chi.URLParam(r, "actuatorName")

	var req actuatorCommandRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}

	act, err := s.registry.FindActuator(name, actuatorName)
	if err != nil {
		if errors.Is(err, registry.ErrWearableNotFound) {
			writeNotFound(w, "wearable not found")
			return
		}
		writeNotFound(w, "actuator not found")
		return
	}

	switch a := act.(type) {
	case wearable.Haptic:
		err = a.SetHapticCommand(req.Value)
	case wearable.Motor:
		err = a.SetMotorPosition(req.Value)
	case wearable.Heater:
		err = a.SetTargetTemperature(req.Value)
	default:
		writeInternalError(w, "actuator type not commandable")
		return
	}
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"wearable": name,
		"actuator": actuatorName,
		"type":     act.ActuatorType().String(),
		"value":    req.Value,
	})
}
