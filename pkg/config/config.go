package config

import "github.com/sirupsen/logrus"

type Config interface {
	AllowNonRootAccess() bool
	PowerSupplyPath() string
	BatteryName() string
	WatchIntervalSeconds() int

	SetAllowNonRootAccess(bool)
	SetPowerSupplyPath(string)
	SetBatteryName(string)
	SetWatchIntervalSeconds(int)

	// Load reads the configuration from the source.
	Load() error
	// Save saves the configuration to the source.
	Save() error

	LogrusFields() logrus.Fields
}
