package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/robwear/wearcore/internal/calibration"
)

// defaultHistoryLimit bounds GET /calibration/history when no limit is given.
const defaultHistoryLimit = 20

// handleCalibrationStatus returns the calibrator state: whether a
// calibration is running, the configured minimum quality, and the last
// applied calibration.
func (s *Server) handleCalibrationStatus(w http.ResponseWriter, _ *http.Request) {
	if s.calibrator == nil {
		writeNotFound(w, "calibration not available")
		return
	}

	lastType, lastQuality := s.calibrator.LastCalibration()

	resp := map[string]any{
		"in_progress":     s.calibrator.InProgress(),
		"minimum_quality": s.calibrator.MinimumQuality().String(),
	}
	if lastType != "" {
		resp["last_calibration"] = map[string]any{
			"type":    lastType,
			"quality": lastQuality.String(),
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

// calibrationStartRequest is the body for POST /calibration/start.
type calibrationStartRequest struct {
	Type string `json:"type"`
}

// handleCalibrationStart launches a calibration attempt.
//
// The protocol takes tens of seconds (settle delay, pose recording,
// processing), so the handler returns 202 Accepted immediately and the
// attempt runs in the background. Progress is observable via
// GET /calibration, the WebSocket calibration.event channel, and the
// session history.
func (s *Server) handleCalibrationStart(w http.ResponseWriter, r *http.Request) {
	if s.calibrator == nil {
		writeNotFound(w, "calibration not available")
		return
	}

	var req calibrationStartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}
	if req.Type == "" {
		writeBadRequest(w, "calibration type is required")
		return
	}

	if s.calibrator.InProgress() {
		writeConflict(w, "calibration already in progress")
		return
	}

	go func() {
		if err := s.calibrator.Calibrate(req.Type); err != nil {
			if errors.Is(err, calibration.ErrInProgress) {
				// Lost the start race to a concurrent caller
				return
			}
			s.logger.Warn("calibration finished with error",
				"type", req.Type,
				"error", err,
			)
		}
	}()

	writeJSON(w, http.StatusAccepted, map[string]any{
		"type":    req.Type,
		"started": true,
	})
}

// handleCalibrationAbort aborts the in-progress calibration, if any.
func (s *Server) handleCalibrationAbort(w http.ResponseWriter, _ *http.Request) {
	if s.calibrator == nil {
		writeNotFound(w, "calibration not available")
		return
	}

	if !s.calibrator.Abort() {
		writeConflict(w, "no calibration in progress")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"aborted": true})
}

// calibrationQualityRequest is the body for PUT /calibration/quality.
type calibrationQualityRequest struct {
	MinimumQuality string `json:"minimum_quality"`
}

// handleCalibrationQuality sets the minimum accepted calibration quality.
func (s *Server) handleCalibrationQuality(w http.ResponseWriter, r *http.Request) {
	if s.calibrator == nil {
		writeNotFound(w, "calibration not available")
		return
	}

	var req calibrationQualityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}

	quality, err := calibration.QualityFromString(req.MinimumQuality)
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	s.calibrator.SetMinimumQuality(quality)
	writeJSON(w, http.StatusOK, map[string]any{"minimum_quality": quality.String()})
}

// sessionJSON is the wire shape of a recorded calibration session.
type sessionJSON struct {
	ID              string    `json:"id"`
	CalibrationType string    `json:"calibration_type"`
	Outcome         string    `json:"outcome"`
	Quality         string    `json:"quality"`
	Warnings        []string  `json:"warnings,omitempty"`
	StartedAt       time.Time `json:"started_at"`
	FinishedAt      time.Time `json:"finished_at"`
}

// handleCalibrationHistory returns recent calibration sessions, newest first.
//
// Query parameters:
//   - limit: maximum sessions to return (default 20)
func (s *Server) handleCalibrationHistory(w http.ResponseWriter, r *http.Request) {
	if s.history == nil {
		writeNotFound(w, "calibration history not available")
		return
	}

	limit := defaultHistoryLimit
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed < 1 {
			writeBadRequest(w, "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	sessions, err := s.history.Recent(r.Context(), limit)
	if err != nil {
		writeInternalError(w, "failed to query calibration history")
		return
	}

	out := make([]sessionJSON, 0, len(sessions))
	for _, sess := range sessions {
		out = append(out, sessionJSON{
			ID:              sess.ID,
			CalibrationType: sess.CalibrationType,
			Outcome:         sess.Outcome,
			Quality:         sess.Quality.String(),
			Warnings:        sess.Warnings,
			StartedAt:       sess.StartedAt,
			FinishedAt:      sess.FinishedAt,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"sessions": out, "count": len(out)})
}

// handleGetBodyDimensions returns the subject body dimensions currently set
// on the device.
func (s *Server) handleGetBodyDimensions(w http.ResponseWriter, _ *http.Request) {
	if s.calibrator == nil {
		writeNotFound(w, "calibration not available")
		return
	}

	dims, err := s.calibrator.BodyDimensions()
	if err != nil {
		writeInternalError(w, "failed to read body dimensions")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"dimensions": dims})
}

// bodyDimensionsRequest is the body for PUT /body-dimensions.
type bodyDimensionsRequest struct {
	Dimensions map[string]float64 `json:"dimensions"`
}

// handleSetBodyDimensions applies subject body dimensions to the device.
// Rejected while a calibration is running.
func (s *Server) handleSetBodyDimensions(w http.ResponseWriter, r *http.Request) {
	if s.calibrator == nil {
		writeNotFound(w, "calibration not available")
		return
	}

	var req bodyDimensionsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}
	if len(req.Dimensions) == 0 {
		writeBadRequest(w, "at least one dimension is required")
		return
	}

	if err := s.calibrator.SetBodyDimensions(req.Dimensions); err != nil {
		if errors.Is(err, calibration.ErrDeviceBusy) {
			writeConflict(w, "device operation pending")
			return
		}
		writeBadRequest(w, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"dimensions": req.Dimensions})
}
