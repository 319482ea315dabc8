package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Client is a struct for communicating with the battd daemon
type Client struct {
	socketPath string
	httpClient *http.Client
}

// NewClient is a constructor for creating a new Client
func NewClient(socketPath string) *Client {
	return &Client{
		socketPath: socketPath,
		httpClient: &http.Client{
			Transport: &http.Transport{
				DialContext: func(_ context.Context, _, _ string) (net.Conn, error) {
					conn, err := net.Dial("unix", socketPath)
					if err != nil {
						if os.IsNotExist(err) {
							return nil, ErrDaemonNotRunning
						}
						if os.IsPermission(err) {
							return nil, ErrPermissionDenied
						}
						logrus.Errorf("failed to connect to unix socket: %v", err)
						return nil, err
					}
					return conn, err
				},
			},
		},
	}
}

// errorReply mirrors the daemon's failure envelope.
type errorReply struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// Send is a method for sending a request to the battd daemon
func (c *Client) Send(method string, path string, data string) (string, error) {
	logrus.WithFields(logrus.Fields{
		"method": method,
		"path":   path,
		"data":   data,
		"unix":   c.socketPath,
	}).Debug("sending request")

	var resp *http.Response
	var err error
	url := "http://unix" + path

	switch method {
	case "GET":
		resp, err = c.httpClient.Get(url)
	case "POST":
		resp, err = c.httpClient.Post(url, "application/octet-stream", strings.NewReader(data))
	default:
		return "", fmt.Errorf("unknown method: %s", method)
	}

	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}

	defer func() {
		if err := resp.Body.Close(); err != nil {
			logrus.Errorf("failed to close response body: %v", err)
		}
	}()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}
	body := string(b)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", errorFromResponse(resp.StatusCode, body)
	}

	return body, nil
}

// errorFromResponse maps the daemon's typed failure envelope onto the
// client sentinel errors, so callers can errors.Is on the kind while
// still seeing the daemon's diagnostic message.
func errorFromResponse(statusCode int, body string) error {
	var reply errorReply
	if err := json.Unmarshal([]byte(body), &reply); err == nil {
		switch reply.Kind {
		case "not_implemented":
			return fmt.Errorf("%w: %s", ErrNotImplemented, reply.Message)
		case "unavailable":
			return fmt.Errorf("%w: %s", ErrUnavailable, reply.Message)
		}
	}

	return fmt.Errorf("got %d: %s", statusCode, body)
}

// Get is a method for sending a GET request to the battd daemon
func (c *Client) Get(path string) (string, error) {
	return c.Send("GET", path, "")
}
