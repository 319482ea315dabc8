package daemon

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/battbridge/battd/pkg/batteryinfo"
	"github.com/battbridge/battd/pkg/bridge"
	"github.com/battbridge/battd/pkg/config"
	"github.com/battbridge/battd/pkg/events"
	"github.com/battbridge/battd/pkg/powersupply"
	"github.com/battbridge/battd/pkg/utils/ptr"
)

func TestWatchStreamsBatteryInfo(t *testing.T) {
	hostBridge = bridge.New(powersupply.NewMock(mockCharging()))
	hub = events.NewHub()
	conf = config.NewFileFromConfig(&config.RawFileConfig{
		WatchIntervalSeconds: ptr.To(1),
	}, "")

	srv := httptest.NewServer(setupRoutes())
	defer srv.Close()

	stop := make(chan struct{})
	defer close(stop)
	go broadcastLoop(stop)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/v1/watch"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("failed to dial %s: %v", url, err)
	}
	defer conn.Close()

	if err := conn.SetReadDeadline(time.Now().Add(5 * time.Second)); err != nil {
		t.Fatal(err)
	}

	var ev wsEvent
	if err := conn.ReadJSON(&ev); err != nil {
		t.Fatalf("failed to read watch event: %v", err)
	}
	if ev.Type != events.BatteryInfo {
		t.Errorf("event type = %q, want %q", ev.Type, events.BatteryInfo)
	}

	info, err := events.DecodeAs[batteryinfo.Info](events.Event{Name: ev.Type, Data: ev.Payload})
	if err != nil {
		t.Fatalf("failed to decode event payload: %v", err)
	}
	if info.Level != 80 || !info.IsCharging || info.ChargingSource != batteryinfo.SourceUSB {
		t.Errorf("event payload = %+v, want charging at 80%% over USB", info)
	}
}

func TestWatchUnsubscribesOnClose(t *testing.T) {
	hostBridge = bridge.New(powersupply.NewMock(mockCharging()))
	hub = events.NewHub()
	conf = config.NewFileFromConfig(&config.RawFileConfig{
		WatchIntervalSeconds: ptr.To(1),
	}, "")

	srv := httptest.NewServer(setupRoutes())
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/v1/watch"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("failed to dial %s: %v", url, err)
	}

	if err := conn.Close(); err != nil {
		t.Fatal(err)
	}

	// The handler notices the closed peer and drops its subscription.
	deadline := time.Now().Add(2 * time.Second)
	for hub.SubscriberCount() != 0 {
		if time.Now().After(deadline) {
			t.Fatalf("SubscriberCount() = %d, want 0 after close", hub.SubscriberCount())
		}
		time.Sleep(10 * time.Millisecond)
	}
}
