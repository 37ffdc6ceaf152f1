package report_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/crickd/insights-engine/internal/report"
)

// newTestHub starts a hub behind an httptest server and returns a dialer for it.
func newTestHub(t *testing.T) (*report.WSHub, func() *websocket.Conn) {
	t.Helper()
	hub := report.NewWSHub()
	go hub.Run()

	srv := httptest.NewServer(http.HandlerFunc(hub.HandleWS))
	t.Cleanup(srv.Close)
	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")

	dial := func() *websocket.Conn {
		conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
		if err != nil {
			t.Fatalf("ws dial: %v", err)
		}
		t.Cleanup(func() { conn.Close() })
		return conn
	}
	return hub, dial
}

func readWSMessage(t *testing.T, conn *websocket.Conn) report.WSMessage {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("ws read: %v", err)
	}
	var msg report.WSMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		t.Fatalf("ws unmarshal: %v", err)
	}
	return msg
}

func TestWSHub_BroadcastReachesAllClients(t *testing.T) {
	hub, dial := newTestHub(t)

	conn1 := dial()
	conn2 := dial()
	time.Sleep(100 * time.Millisecond) // let both registrations land

	hub.Broadcast(report.WSMessage{
		Type:          "deliveries_ingested",
		MatchID:       "m1",
		DeliveryCount: 7,
	})

	for _, conn := range []*websocket.Conn{conn1, conn2} {
		msg := readWSMessage(t, conn)
		if msg.Type != "deliveries_ingested" || msg.MatchID != "m1" || msg.DeliveryCount != 7 {
			t.Errorf("unexpected message: %+v", msg)
		}
	}
}

func TestWSHub_BroadcastSurvivesDisconnect(t *testing.T) {
	hub, dial := newTestHub(t)

	conn1 := dial()
	conn2 := dial()
	time.Sleep(100 * time.Millisecond)

	// Drop one client without a close handshake, then keep broadcasting.
	// The survivor must receive every message and the hub must not fall over
	// on the dead connection.
	conn1.Close()
	time.Sleep(100 * time.Millisecond)

	for i := 0; i < 5; i++ {
		hub.Broadcast(report.WSMessage{
			Type:            "snapshot_updated",
			MatchID:         "m1",
			SnapshotVersion: int64(i + 1),
		})
	}

	for i := 0; i < 5; i++ {
		msg := readWSMessage(t, conn2)
		if msg.Type != "snapshot_updated" || msg.SnapshotVersion != int64(i+1) {
			t.Errorf("message %d: unexpected %+v", i, msg)
		}
	}
}

func TestWSHub_BroadcastWithoutClients(t *testing.T) {
	hub := report.NewWSHub()
	go hub.Run()

	// Must not block or panic with nobody connected.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 10; i++ {
			hub.Broadcast(report.WSMessage{Type: "deliveries_ingested", MatchID: "m1"})
		}
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("broadcast blocked with no clients connected")
	}
}
