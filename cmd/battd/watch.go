package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/battbridge/battd/pkg/batteryinfo"
	"github.com/battbridge/battd/pkg/events"
)

func NewWatchCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "watch",
		GroupID: gBasic,
		Short:   "Stream battery info updates",
		Long:    `Subscribe to the daemon's battery stream and print each update until interrupted.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dialer := websocket.Dialer{
				NetDialContext: func(_ context.Context, _, _ string) (net.Conn, error) {
					return net.Dial("unix", unixSocketPath)
				},
			}

			conn, _, err := dialer.Dial("ws://unix/v1/watch", nil)
			if err != nil {
				return fmt.Errorf("failed to connect to watch stream: %w", err)
			}
			defer func() {
				if err := conn.Close(); err != nil {
					logrus.Debugf("failed to close websocket: %v", err)
				}
			}()

			sigc := make(chan os.Signal, 1)
			signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
			go func() {
				<-sigc
				_ = conn.Close()
			}()

			for {
				var ev struct {
					Type    string          `json:"type"`
					Payload json.RawMessage `json:"payload"`
				}
				if err := conn.ReadJSON(&ev); err != nil {
					// Closed by the signal handler or the daemon going away.
					return nil
				}

				if ev.Type != events.BatteryInfo {
					continue
				}

				info, err := events.DecodeAs[batteryinfo.Info](events.Event{Name: ev.Type, Data: ev.Payload})
				if err != nil {
					logrus.Warnf("failed to decode battery event: %v", err)
					continue
				}

				cmd.Printf("level=%d%% charging=%t source=%q health=%s temp=%.1f°C voltage=%dmV\n",
					info.Level, info.IsCharging, info.ChargingSource, info.Health,
					info.TemperatureCelsius, info.VoltageMillivolts)
			}
		},
	}
}
