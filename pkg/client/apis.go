package client

import (
	"encoding/json"
	"strconv"
	"strings"

	pkgerrors "github.com/pkg/errors"

	"github.com/battbridge/battd/pkg/batteryinfo"
)

// GetBatteryLevel returns the battery charge percentage.
func (c *Client) GetBatteryLevel() (int, error) {
	ret, err := c.Get("/v1/battery/level")
	if err != nil {
		return 0, pkgerrors.Wrapf(err, "failed to get battery level")
	}

	level, err := strconv.Atoi(strings.TrimSpace(ret))
	if err != nil {
		return 0, pkgerrors.Wrapf(err, "failed to unmarshal battery level")
	}

	return level, nil
}

// GetBatteryInfo returns the full battery record.
func (c *Client) GetBatteryInfo() (*batteryinfo.Info, error) {
	ret, err := c.Get("/v1/battery/info")
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to get battery info")
	}

	var info batteryinfo.Info
	if err := json.Unmarshal([]byte(ret), &info); err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to unmarshal battery info")
	}

	return &info, nil
}

// Call invokes an operation by name and returns the raw JSON reply.
// Unknown names fail with ErrNotImplemented.
func (c *Client) Call(name string) (string, error) {
	return c.Get("/v1/call/" + name)
}

// GetOperations returns the operation names the daemon recognizes.
func (c *Client) GetOperations() ([]string, error) {
	ret, err := c.Get("/v1/operations")
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to get operations")
	}

	var ops []string
	if err := json.Unmarshal([]byte(ret), &ops); err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to unmarshal operations")
	}

	return ops, nil
}

// GetVersion returns the daemon version.
func (c *Client) GetVersion() (string, error) {
	ret, err := c.Get("/v1/version")
	if err != nil {
		return "", pkgerrors.Wrapf(err, "failed to get version")
	}

	var v string
	if err := json.Unmarshal([]byte(ret), &v); err != nil {
		return "", pkgerrors.Wrapf(err, "failed to unmarshal version")
	}

	return v, nil
}
