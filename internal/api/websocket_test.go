package api

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

// dialWS connects a WebSocket client to a running test server.
func dialWS(t *testing.T, srv *Server) (*websocket.Conn, func()) {
	t.Helper()

	router := srv.buildRouter()
	ts := httptest.NewServer(router)

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/api/v1/ws"
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		ts.Close()
		t.Fatalf("dial: %v", err)
	}
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}

	return conn, func() {
		conn.Close()
		ts.Close()
	}
}

// readWSMessage reads one message with a deadline.
func readWSMessage(t *testing.T, conn *websocket.Conn) WSMessage {
	t.Helper()

	if err := conn.SetReadDeadline(time.Now().Add(2 * time.Second)); err != nil {
		t.Fatalf("SetReadDeadline: %v", err)
	}
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("ReadMessage: %v", err)
	}

	var msg WSMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	return msg
}

func subscribeWS(t *testing.T, conn *websocket.Conn, channels ...string) {
	t.Helper()

	sub := WSMessage{
		Type:    WSTypeSubscribe,
		ID:      "sub-1",
		Payload: WSSubscribePayload{Channels: channels},
	}
	if err := conn.WriteJSON(sub); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}

	resp := readWSMessage(t, conn)
	if resp.Type != WSTypeResponse {
		t.Fatalf("subscribe response type = %q, want %q", resp.Type, WSTypeResponse)
	}
}

func TestWebSocket_SubscribeAndBroadcast(t *testing.T) {
	srv, _ := testServer(t)
	conn, cleanup := dialWS(t, srv)
	defer cleanup()

	subscribeWS(t, conn, WSChannelSensorSample)

	srv.hub.Broadcast(WSChannelSensorSample, map[string]any{
		"wearable": "TestSuit",
		"sensor":   "TestSuit::accelerometer::Head",
	})

	msg := readWSMessage(t, conn)
	if msg.Type != WSTypeEvent {
		t.Errorf("type = %q, want %q", msg.Type, WSTypeEvent)
	}
	if msg.EventType != WSChannelSensorSample {
		t.Errorf("event_type = %q, want %q", msg.EventType, WSChannelSensorSample)
	}

	payload, ok := msg.Payload.(map[string]any)
	if !ok {
		t.Fatalf("payload type = %T, want map", msg.Payload)
	}
	if payload["wearable"] != "TestSuit" {
		t.Errorf("payload wearable = %v, want TestSuit", payload["wearable"])
	}
}

func TestWebSocket_NoMessageForUnsubscribed(t *testing.T) {
	srv, _ := testServer(t)
	conn, cleanup := dialWS(t, srv)
	defer cleanup()

	subscribeWS(t, conn, WSChannelCalibrationEvent)

	// Broadcast on a channel this client did not subscribe to
	srv.hub.Broadcast(WSChannelSensorSample, map[string]any{"wearable": "TestSuit"})

	if err := conn.SetReadDeadline(time.Now().Add(200 * time.Millisecond)); err != nil {
		t.Fatalf("SetReadDeadline: %v", err)
	}
	if _, _, err := conn.ReadMessage(); err == nil {
		t.Error("expected read timeout, got a message")
	}
}

func TestWebSocket_Unsubscribe(t *testing.T) {
	srv, _ := testServer(t)
	conn, cleanup := dialWS(t, srv)
	defer cleanup()

	subscribeWS(t, conn, WSChannelSensorSample)

	unsub := WSMessage{
		Type:    WSTypeUnsubscribe,
		ID:      "unsub-1",
		Payload: WSSubscribePayload{Channels: []string{WSChannelSensorSample}},
	}
	if err := conn.WriteJSON(unsub); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	resp := readWSMessage(t, conn)
	if resp.Type != WSTypeResponse {
		t.Fatalf("unsubscribe response type = %q, want %q", resp.Type, WSTypeResponse)
	}

	srv.hub.Broadcast(WSChannelSensorSample, map[string]any{"wearable": "TestSuit"})

	if err := conn.SetReadDeadline(time.Now().Add(200 * time.Millisecond)); err != nil {
		t.Fatalf("SetReadDeadline: %v", err)
	}
	if _, _, err := conn.ReadMessage(); err == nil {
		t.Error("expected read timeout after unsubscribe, got a message")
	}
}

func TestWebSocket_Ping(t *testing.T) {
	srv, _ := testServer(t)
	conn, cleanup := dialWS(t, srv)
	defer cleanup()

	ping := WSMessage{Type: WSTypePing, ID: "ping-1"}
	if err := conn.WriteJSON(ping); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}

	resp := readWSMessage(t, conn)
	if resp.Type != WSTypePong {
		t.Errorf("type = %q, want %q", resp.Type, WSTypePong)
	}
	if resp.ID != "ping-1" {
		t.Errorf("id = %q, want ping-1", resp.ID)
	}
}

func TestWebSocket_InvalidMessage(t *testing.T) {
	srv, _ := testServer(t)
	conn, cleanup := dialWS(t, srv)
	defer cleanup()

	if err := conn.WriteMessage(websocket.TextMessage, []byte("{not json")); err != nil {
		t.Fatalf("WriteMessage: %v", err)
	}

	resp := readWSMessage(t, conn)
	if resp.Type != WSTypeError {
		t.Errorf("type = %q, want %q", resp.Type, WSTypeError)
	}
}

func TestWebSocket_UnknownMessageType(t *testing.T) {
	srv, _ := testServer(t)
	conn, cleanup := dialWS(t, srv)
	defer cleanup()

	msg := WSMessage{Type: "bogus", ID: "1"}
	if err := conn.WriteJSON(msg); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}

	resp := readWSMessage(t, conn)
	if resp.Type != WSTypeError {
		t.Errorf("type = %q, want %q", resp.Type, WSTypeError)
	}
}

func TestHub_ClientCount(t *testing.T) {
	srv, _ := testServer(t)

	if got := srv.hub.ClientCount(); got != 0 {
		t.Errorf("ClientCount() = %d, want 0", got)
	}

	conn, cleanup := dialWS(t, srv)
	defer cleanup()
	_ = conn

	deadline := time.Now().Add(time.Second)
	for srv.hub.ClientCount() != 1 {
		if time.Now().After(deadline) {
			t.Fatalf("ClientCount() = %d, want 1", srv.hub.ClientCount())
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestHub_UnregisterIdempotent(t *testing.T) {
	srv, _ := testServer(t)

	client := &WSClient{
		hub:           srv.hub,
		send:          make(chan []byte, 1),
		subscriptions: make(map[string]struct{}),
	}
	srv.hub.Register(client)
	srv.hub.Unregister(client)
	// Second unregister must not panic on a double close
	srv.hub.Unregister(client)
}
