package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestListWearables(t *testing.T) {
	srv, _ := testServer(t)
	router := srv.buildRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/wearables", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d; body: %s", w.Code, http.StatusOK, w.Body.String())
	}

	var resp struct {
		Wearables []struct {
			Name      string `json:"name"`
			Status    string `json:"status"`
			Sensors   int    `json:"sensors"`
			Actuators int    `json:"actuators"`
		} `json:"wearables"`
		Count int `json:"count"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if resp.Count != 1 {
		t.Fatalf("count = %d, want 1", resp.Count)
	}
	got := resp.Wearables[0]
	if got.Name != "TestSuit" {
		t.Errorf("name = %q, want TestSuit", got.Name)
	}
	if got.Sensors != 2 {
		t.Errorf("sensors = %d, want 2", got.Sensors)
	}
	if got.Actuators != 1 {
		t.Errorf("actuators = %d, want 1", got.Actuators)
	}
}

func TestGetWearable(t *testing.T) {
	srv, _ := testServer(t)
	router := srv.buildRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/wearables/TestSuit", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d; body: %s", w.Code, http.StatusOK, w.Body.String())
	}

	var resp map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp["name"] != "TestSuit" {
		t.Errorf("name = %v, want TestSuit", resp["name"])
	}
	if resp["status"] != "ok" {
		t.Errorf("status = %v, want ok", resp["status"])
	}
}

func TestGetWearable_NotFound(t *testing.T) {
	srv, _ := testServer(t)
	router := srv.buildRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/wearables/NoSuchSuit", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", w.Code, http.StatusNotFound)
	}
}

func TestWearableStats(t *testing.T) {
	srv, _ := testServer(t)
	router := srv.buildRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/wearables/stats", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d; body: %s", w.Code, http.StatusOK, w.Body.String())
	}

	var resp struct {
		Wearables    int            `json:"wearables"`
		Sensors      int            `json:"sensors"`
		Actuators    int            `json:"actuators"`
		BySensorType map[string]int `json:"by_sensor_type"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if resp.Wearables != 1 || resp.Sensors != 2 || resp.Actuators != 1 {
		t.Errorf("stats = %d/%d/%d, want 1/2/1", resp.Wearables, resp.Sensors, resp.Actuators)
	}
	if resp.BySensorType["accelerometer"] != 1 {
		t.Errorf("accelerometer count = %d, want 1", resp.BySensorType["accelerometer"])
	}
}

func TestListSensors(t *testing.T) {
	srv, _ := testServer(t)
	router := srv.buildRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/wearables/TestSuit/sensors", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d; body: %s", w.Code, http.StatusOK, w.Body.String())
	}

	var resp struct {
		Count int `json:"count"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Count != 2 {
		t.Errorf("count = %d, want 2", resp.Count)
	}
}

func TestListSensors_FilterByType(t *testing.T) {
	srv, _ := testServer(t)
	router := srv.buildRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/wearables/TestSuit/sensors?type=gyroscope", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d; body: %s", w.Code, http.StatusOK, w.Body.String())
	}

	var resp struct {
		Sensors []struct {
			Sensor string `json:"sensor"`
			Type   string `json:"type"`
		} `json:"sensors"`
		Count int `json:"count"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Count != 1 {
		t.Fatalf("count = %d, want 1", resp.Count)
	}
	if resp.Sensors[0].Type != "gyroscope" {
		t.Errorf("type = %q, want gyroscope", resp.Sensors[0].Type)
	}
}

func TestListSensors_UnknownType(t *testing.T) {
	srv, _ := testServer(t)
	router := srv.buildRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/wearables/TestSuit/sensors?type=bogus", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d; body: %s", w.Code, http.StatusBadRequest, w.Body.String())
	}
}

func TestGetSensor(t *testing.T) {
	srv, _ := testServer(t)
	router := srv.buildRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/wearables/TestSuit/sensors/TestSuit::accelerometer::Head", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d; body: %s", w.Code, http.StatusOK, w.Body.String())
	}

	var resp struct {
		Sensor   string             `json:"sensor"`
		Type     string             `json:"type"`
		Status   string             `json:"status"`
		Channels map[string]float64 `json:"channels"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if resp.Type != "accelerometer" {
		t.Errorf("type = %q, want accelerometer", resp.Type)
	}
	if resp.Status != "ok" {
		t.Errorf("status = %q, want ok", resp.Status)
	}
	if resp.Channels["z"] != 9.8 {
		t.Errorf("channel z = %v, want 9.8", resp.Channels["z"])
	}
}

func TestGetSensor_NotFound(t *testing.T) {
	srv, _ := testServer(t)
	router := srv.buildRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/wearables/TestSuit/sensors/TestSuit::accelerometer::Missing", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", w.Code, http.StatusNotFound)
	}
}

func TestListActuators(t *testing.T) {
	srv, _ := testServer(t)
	router := srv.buildRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/wearables/TestSuit/actuators", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d; body: %s", w.Code, http.StatusOK, w.Body.String())
	}

	var resp struct {
		Actuators []struct {
			Name string `json:"name"`
			Type string `json:"type"`
		} `json:"actuators"`
		Count int `json:"count"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Count != 1 {
		t.Fatalf("count = %d, want 1", resp.Count)
	}
	if resp.Actuators[0].Type != "haptic" {
		t.Errorf("type = %q, want haptic", resp.Actuators[0].Type)
	}
}

func TestActuatorCommand(t *testing.T) {
	srv, reg := testServer(t)
	router := srv.buildRouter()

	body := `{"value": 0.75}`
	req := httptest.NewRequest(http.MethodPost,
		"/api/v1/wearables/TestSuit/actuators/TestSuit::haptic::LeftHand/command",
		strings.NewReader(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d; body: %s", w.Code, http.StatusOK, w.Body.String())
	}

	act, err := reg.FindActuator("TestSuit", "TestSuit::haptic::LeftHand")
	if err != nil {
		t.Fatalf("FindActuator: %v", err)
	}
	type lastCommander interface{ LastCommand() float64 }
	if got := act.(lastCommander).LastCommand(); got != 0.75 {
		t.Errorf("LastCommand() = %v, want 0.75", got)
	}
}

func TestActuatorCommand_InvalidJSON(t *testing.T) {
	srv, _ := testServer(t)
	router := srv.buildRouter()

	req := httptest.NewRequest(http.MethodPost,
		"/api/v1/wearables/TestSuit/actuators/TestSuit::haptic::LeftHand/command",
		strings.NewReader("{not json"))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestActuatorCommand_UnknownActuator(t *testing.T) {
	srv, _ := testServer(t)
	router := srv.buildRouter()

	req := httptest.NewRequest(http.MethodPost,
		"/api/v1/wearables/TestSuit/actuators/TestSuit::haptic::Missing/command",
		strings.NewReader(`{"value": 1}`))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", w.Code, http.StatusNotFound)
	}
}
