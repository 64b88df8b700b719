package api

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/robwear/wearcore/internal/calibration"
	"github.com/robwear/wearcore/internal/drivers/mvn"
	"github.com/robwear/wearcore/internal/infrastructure/config"
	"github.com/robwear/wearcore/internal/infrastructure/logging"
	"github.com/robwear/wearcore/internal/registry"
	"github.com/robwear/wearcore/internal/wearable"
	"github.com/robwear/wearcore/internal/wearable/buffered"
)

// testServer creates a Server with a populated wearable registry, a
// simulator-backed calibrator, and an in-memory session history.
func testServer(t *testing.T) (*Server, *registry.Registry) {
	t.Helper()

	reg := registry.New()
	if err := reg.Register(testWearable(t, "TestSuit")); err != nil {
		t.Fatalf("Register: %v", err)
	}

	log := logging.New(config.LoggingConfig{Level: "error", Format: "text", Output: "stdout"}, "test")

	srv, err := New(Deps{
		Config: config.APIConfig{
			Host: "127.0.0.1",
			Port: 0,
			Timeouts: config.APITimeoutConfig{
				Read:  5,
				Write: 5,
				Idle:  5,
			},
		},
		WS: config.WebSocketConfig{
			MaxMessageSize: 8192,
			PingInterval:   30,
			PongTimeout:    10,
		},
		Logger:     log,
		Registry:   reg,
		Calibrator: testCalibrator(t),
		History:    testHistory(t),
		MQTT:       nil, // WebSocket relay disabled in tests
		Version:    "test",
	})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	// Initialise hub for tests
	srv.hub = NewHub(srv.wsCfg, log)
	go srv.hub.Run(context.Background())

	return srv, reg
}

// testWearable builds a collection with one sensor per kind the handlers
// exercise, plus a sink-backed haptic actuator.
func testWearable(t *testing.T, name string) *wearable.Collection {
	t.Helper()

	c := wearable.NewCollection(name)
	c.SetTimestamp(wearable.Timestamp{Time: time.Now().UTC(), Sequence: 42})

	acc := buffered.NewAccelerometer(name+"::accelerometer::Head", wearable.SensorStatusOk)
	acc.SetBuffer(wearable.Vector3{0.1, 0.2, 9.8}, wearable.SensorStatusOk)
	if err := c.AddSensor(acc); err != nil {
		t.Fatalf("AddSensor: %v", err)
	}

	gyro := buffered.NewGyroscope(name+"::gyroscope::Head", wearable.SensorStatusOk)
	gyro.SetBuffer(wearable.Vector3{0.01, 0.02, 0.03}, wearable.SensorStatusOk)
	if err := c.AddSensor(gyro); err != nil {
		t.Fatalf("AddSensor: %v", err)
	}

	haptic := buffered.NewHaptic(name+"::haptic::LeftHand", wearable.ActuatorStatusOk)
	haptic.SetSink(func(float64) error { return nil })
	if err := c.AddActuator(haptic); err != nil {
		t.Fatalf("AddActuator: %v", err)
	}

	return c
}

// testCalibrator wires a calibrator to a fast simulator so calibration
// attempts finish in milliseconds.
func testCalibrator(t *testing.T) *calibration.Calibrator {
	t.Helper()

	sim := mvn.NewSim(mvn.SimOptions{
		FrameRate:    2 * time.Millisecond,
		PhaseBounds:  []int{0, 3, 5},
		ConfirmDelay: time.Millisecond,
	})
	c, err := calibration.New(calibration.Options{
		Connector: sim,
		Timing: calibration.Timing{
			PollInterval: time.Millisecond,
			SettleDelay:  time.Millisecond,
			FramePeriod:  time.Millisecond,
			StopGrace:    time.Millisecond,
			WaitTimeout:  time.Second,
		},
	})
	if err != nil {
		t.Fatalf("calibration.New() error: %v", err)
	}
	t.Cleanup(func() { c.Close() }) //nolint:errcheck
	return c
}

// testHistory creates a session history backed by in-memory SQLite.
func testHistory(t *testing.T) *calibration.History {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	h, err := calibration.NewHistory(context.Background(), db)
	if err != nil {
		t.Fatalf("NewHistory: %v", err)
	}
	return h
}

// ─── Health Endpoint Tests ─────────────────────────────────────────

func TestHealth(t *testing.T) {
	srv, _ := testServer(t)
	router := srv.buildRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("health status = %d, want %d", w.Code, http.StatusOK)
	}

	var resp map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if resp["status"] != "ok" {
		t.Errorf("status = %v, want ok", resp["status"])
	}
	if resp["version"] != "test" {
		t.Errorf("version = %v, want test", resp["version"])
	}
}

func TestHealth_ContentType(t *testing.T) {
	srv, _ := testServer(t)
	router := srv.buildRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	ct := w.Header().Get("Content-Type")
	if ct != "application/json" {
		t.Errorf("Content-Type = %q, want %q", ct, "application/json")
	}
}

// ─── Middleware Tests ──────────────────────────────────────────────

func TestRequestID_Generated(t *testing.T) {
	srv, _ := testServer(t)
	router := srv.buildRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	requestID := w.Header().Get("X-Request-ID")
	if requestID == "" {
		t.Error("expected X-Request-ID header to be set")
	}
}

func TestRequestID_PreservesClient(t *testing.T) {
	srv, _ := testServer(t)
	router := srv.buildRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	req.Header.Set("X-Request-ID", "client-123")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if got := w.Header().Get("X-Request-ID"); got != "client-123" {
		t.Errorf("X-Request-ID = %q, want %q", got, "client-123")
	}
}

func TestCORS_Preflight(t *testing.T) {
	srv, _ := testServer(t)
	router := srv.buildRouter()

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/health", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Errorf("preflight status = %d, want %d", w.Code, http.StatusNoContent)
	}

	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
		t.Errorf("ACAO = %q, want %q", got, "http://localhost:3000")
	}
}

func TestNotFound(t *testing.T) {
	srv, _ := testServer(t)
	router := srv.buildRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/nonexistent", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("unknown route status = %d, want %d", w.Code, http.StatusNotFound)
	}
}

// ─── Lifecycle Tests ───────────────────────────────────────────────

func TestServer_StartAndClose(t *testing.T) {
	srv, _ := testServer(t)

	if err := srv.Start(context.Background()); err != nil {
		t.Fatalf("Start() error: %v", err)
	}

	if err := srv.HealthCheck(context.Background()); err != nil {
		t.Errorf("HealthCheck() error: %v", err)
	}

	if err := srv.Close(); err != nil {
		t.Errorf("Close() error: %v", err)
	}
}

func TestServer_HealthCheck_NotStarted(t *testing.T) {
	srv, _ := testServer(t)

	if err := srv.HealthCheck(context.Background()); err == nil {
		t.Error("expected health check to fail before Start()")
	}
}

func TestNew_RequiresRegistry(t *testing.T) {
	log := logging.New(config.LoggingConfig{Level: "error", Format: "text", Output: "stdout"}, "test")

	if _, err := New(Deps{Logger: log}); err == nil {
		t.Error("expected error when registry is missing")
	}
	if _, err := New(Deps{Registry: registry.New()}); err == nil {
		t.Error("expected error when logger is missing")
	}
}
