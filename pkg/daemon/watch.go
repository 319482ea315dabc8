package daemon

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/battbridge/battd/pkg/events"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The daemon only listens on a local unix socket.
	CheckOrigin: func(_ *http.Request) bool { return true },
}

// wsEvent is the JSON envelope written to watch subscribers.
type wsEvent struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// broadcastLoop polls battery info on the configured interval and
// publishes it to the hub. Every poll is a fresh host read; nothing is
// cached between ticks.
func broadcastLoop(stop <-chan struct{}) {
	for {
		interval := time.Duration(conf.WatchIntervalSeconds()) * time.Second

		select {
		case <-stop:
			return
		case <-time.After(interval):
		}

		if hub.SubscriberCount() == 0 {
			continue
		}

		info, err := hostBridge.GetBatteryInfo()
		if err != nil {
			logrus.Warnf("battery broadcast skipped: %v", err)
			continue
		}

		hub.Publish(events.BatteryInfo, info)
	}
}

func watchBattery(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logrus.Errorf("websocket upgrade failed: %v", err)
		return
	}
	defer func() {
		if err := conn.Close(); err != nil {
			logrus.Debugf("failed to close websocket: %v", err)
		}
	}()

	ch := hub.Subscribe()
	defer hub.Unsubscribe(ch)

	// Drain the client side so we notice when it goes away.
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-closed:
			return
		case ev, ok := <-ch:
			if !ok {
				return
			}
			if err := conn.WriteJSON(wsEvent{Type: ev.Name, Payload: ev.Data}); err != nil {
				logrus.Debugf("watch subscriber write failed: %v", err)
				return
			}
		}
	}
}
