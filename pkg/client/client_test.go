package client

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"path/filepath"
	"testing"
)

func TestErrorFromResponse(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		body       string
		want       error
	}{
		{
			name:       "not implemented",
			statusCode: 501,
			body:       `{"kind":"not_implemented","message":"operation \"getFoo\" is not implemented"}`,
			want:       ErrNotImplemented,
		},
		{
			name:       "unavailable",
			statusCode: 503,
			body:       `{"kind":"unavailable","message":"failed to read battery snapshot: no battery device found"}`,
			want:       ErrUnavailable,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := errorFromResponse(tt.statusCode, tt.body)
			if !errors.Is(err, tt.want) {
				t.Errorf("errorFromResponse() = %v, want wrapped %v", err, tt.want)
			}
		})
	}
}

func TestErrorFromResponseUnknownBody(t *testing.T) {
	err := errorFromResponse(500, "something broke")
	if errors.Is(err, ErrNotImplemented) || errors.Is(err, ErrUnavailable) {
		t.Errorf("errorFromResponse() = %v, want a plain error", err)
	}
	if err == nil {
		t.Fatal("errorFromResponse() = nil, want error")
	}
}

func TestErrorFromResponseKeepsMessage(t *testing.T) {
	err := errorFromResponse(503, `{"kind":"unavailable","message":"no battery subsystem"}`)
	if got := err.Error(); got != "battery state unavailable: no battery subsystem" {
		t.Errorf("Error() = %q", got)
	}
}

func TestGetVersion(t *testing.T) {
	socketPath := filepath.Join(t.TempDir(), "battd.sock")

	l, err := net.Listen("unix", socketPath)
	if err != nil {
		t.Fatal(err)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/v1/version", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `"1.2.3"`)
	})

	srv := &http.Server{Handler: mux}
	go func() { _ = srv.Serve(l) }()
	defer srv.Close()

	c := NewClient(socketPath)

	got, err := c.GetVersion()
	if err != nil {
		t.Fatalf("GetVersion() error = %v", err)
	}
	if got != "1.2.3" {
		t.Errorf("GetVersion() = %q, want %q", got, "1.2.3")
	}
}
