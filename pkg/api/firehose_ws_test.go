package api

import (
	"encoding/json"
	"net/url"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/coursexpert/coursexpert/pkg/realtime"
)

func wsDial(t *testing.T, tsURL, rawQuery string) (*websocket.Conn, map[string]any) {
	t.Helper()

	u, err := url.Parse(tsURL)
	if err != nil {
		t.Fatalf("parsing server URL: %v", err)
	}
	u.Scheme = "ws"
	u.Path = "/api/firehose/ws"
	u.RawQuery = rawQuery

	conn, _, err := websocket.DefaultDialer.Dial(u.String(), nil)
	if err != nil {
		t.Fatalf("dial ws: %v", err)
	}
	t.Cleanup(func() {
		if err := conn.Close(); err != nil {
			t.Logf("closing ws: %v", err)
		}
	})

	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read init: %v", err)
	}

	var msg map[string]any
	if err := json.Unmarshal(data, &msg); err != nil {
		t.Fatalf("unmarshal init: %v", err)
	}
	if msg["type"] != "init" {
		t.Fatalf("expected init message, got %v", msg["type"])
	}
	return conn, msg
}

func TestFirehoseInitSnapshot(t *testing.T) {
	_, ts := newTestServer(t)

	_, initMsg := wsDial(t, ts.URL, "")

	if initMsg["snapshot"] == "" {
		t.Error("expected snapshot ID in init frame")
	}

	courses, ok := initMsg["courses"].(map[string]any)
	if !ok {
		t.Fatalf("expected courses payload, got %T", initMsg["courses"])
	}
	if count, _ := courses["count"].(float64); count != 2 {
		t.Errorf("expected 2 courses in init snapshot, got %v", courses["count"])
	}
}

func TestFirehosePushDelivery(t *testing.T) {
	server, ts := newTestServer(t)

	hub := realtime.NewHub(16)
	server.SetFirehoseHub(hub)
	defer hub.Close()

	conn, _ := wsDial(t, ts.URL, "")

	// Wait for the listener to register before broadcasting.
	deadline := time.Now().Add(2 * time.Second)
	for hub.Size() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("listener never registered")
		}
		time.Sleep(10 * time.Millisecond)
	}

	hub.BroadcastCourse(realtime.CourseEvent{
		ID:       "n3",
		Provider: "nptel",
		Platform: "NPTEL",
		Title:    "Streaming Systems",
	})

	if err := conn.SetReadDeadline(time.Now().Add(2 * time.Second)); err != nil {
		t.Fatalf("setting read deadline: %v", err)
	}
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("reading pushed event: %v", err)
	}

	var event realtime.InternalEvent
	if err := json.Unmarshal(data, &event); err != nil {
		t.Fatalf("unmarshaling event: %v", err)
	}
	if event.Type != "course" || event.Course.ID != "n3" {
		t.Errorf("unexpected event: %+v", event)
	}
}

func TestFirehoseInitRespectsQuery(t *testing.T) {
	_, ts := newTestServer(t)

	_, initMsg := wsDial(t, ts.URL, "q=ml")

	courses, ok := initMsg["courses"].(map[string]any)
	if !ok {
		t.Fatalf("expected courses payload, got %T", initMsg["courses"])
	}
	if count, _ := courses["count"].(float64); count != 1 {
		t.Errorf("expected filtered init snapshot, got %v", courses["count"])
	}
}
