package config

import (
	"encoding/json"
	"io"
	"os"
	"strings"
	"sync"

	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/battbridge/battd/pkg/powersupply"
	"github.com/battbridge/battd/pkg/utils/ptr"
)

var (
	defaultFileConfig = &RawFileConfig{
		AllowNonRootAccess: ptr.To(false),
		PowerSupplyPath:    ptr.To(powersupply.DefaultRoot),
		// Empty means autodetect the first battery device.
		BatteryName:          ptr.To(""),
		WatchIntervalSeconds: ptr.To(5),
	}
)

var _ Config = &File{}

type File struct {
	c        *RawFileConfig
	mu       *sync.RWMutex
	filepath string
}

func NewFile(configPath string) (*File, error) {
	f := &File{
		filepath: configPath,
		mu:       &sync.RWMutex{},
	}
	err := f.Load()
	if err != nil {
		return nil, err
	}

	return f, nil
}

func NewFileFromConfig(c *RawFileConfig, configPath string) *File {
	if c == nil {
		c = defaultFileConfig
	}

	f := &File{
		c:        c,
		mu:       &sync.RWMutex{},
		filepath: configPath,
	}

	return f
}

type RawFileConfig struct {
	AllowNonRootAccess   *bool   `json:"allowNonRootAccess,omitempty"`
	PowerSupplyPath      *string `json:"powerSupplyPath,omitempty"`
	BatteryName          *string `json:"batteryName,omitempty"`
	WatchIntervalSeconds *int    `json:"watchIntervalSeconds,omitempty"`
}

func (f *File) AllowNonRootAccess() bool {
	if f.c == nil {
		panic("config is nil")
	}

	f.mu.RLock()
	defer f.mu.RUnlock()

	var allowNonRootAccess bool

	if f.c.AllowNonRootAccess != nil {
		allowNonRootAccess = *f.c.AllowNonRootAccess
	} else {
		allowNonRootAccess = *defaultFileConfig.AllowNonRootAccess
	}

	return allowNonRootAccess
}

func (f *File) PowerSupplyPath() string {
	if f.c == nil {
		panic("config is nil")
	}

	f.mu.RLock()
	defer f.mu.RUnlock()

	var powerSupplyPath string

	if f.c.PowerSupplyPath != nil {
		powerSupplyPath = *f.c.PowerSupplyPath
	} else {
		powerSupplyPath = *defaultFileConfig.PowerSupplyPath
	}

	return powerSupplyPath
}

func (f *File) BatteryName() string {
	if f.c == nil {
		panic("config is nil")
	}

	f.mu.RLock()
	defer f.mu.RUnlock()

	var batteryName string

	if f.c.BatteryName != nil {
		batteryName = *f.c.BatteryName
	} else {
		batteryName = *defaultFileConfig.BatteryName
	}

	return batteryName
}

func (f *File) WatchIntervalSeconds() int {
	if f.c == nil {
		panic("config is nil")
	}

	f.mu.RLock()
	defer f.mu.RUnlock()

	var watchInterval int

	if f.c.WatchIntervalSeconds != nil {
		watchInterval = *f.c.WatchIntervalSeconds
	} else {
		watchInterval = *defaultFileConfig.WatchIntervalSeconds
	}

	if watchInterval < 1 {
		watchInterval = *defaultFileConfig.WatchIntervalSeconds
	}

	return watchInterval
}

func (f *File) SetAllowNonRootAccess(b bool) {
	if f.c == nil {
		panic("config is nil")
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.c.AllowNonRootAccess = &b
}

func (f *File) SetPowerSupplyPath(s string) {
	if f.c == nil {
		panic("config is nil")
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.c.PowerSupplyPath = &s
}

func (f *File) SetBatteryName(s string) {
	if f.c == nil {
		panic("config is nil")
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.c.BatteryName = &s
}

func (f *File) SetWatchIntervalSeconds(i int) {
	if f.c == nil {
		panic("config is nil")
	}

	if i < 1 {
		panic("watch interval must be at least 1 second")
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.c.WatchIntervalSeconds = &i
}

func (f *File) Load() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	fp, err := os.Open(f.filepath)
	if err != nil {
		if os.IsNotExist(err) {
			// If the file does not exist, return the empty config.
			// Do not make f.c a nil.
			f.c = &RawFileConfig{}
			return nil
		}
		return pkgerrors.Wrapf(err, "failed to open file %s", f.filepath)
	}
	defer func(fp *os.File) {
		err := fp.Close()
		if err != nil {
			logrus.Warnf("failed to close file %s", f.filepath)
		}
	}(fp)

	// Since we want to tell if the file is empty, using json.Decoder will
	// not work.
	b, err := io.ReadAll(fp)
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to read file %s", f.filepath)
	}
	configString := string(b)

	if strings.TrimSpace(configString) == "" {
		// If the file is empty, return the empty config.
		// Do not make f.c a nil.
		f.c = &RawFileConfig{}
		return nil
	}

	conf := RawFileConfig{}
	err = json.Unmarshal(b, &conf)
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to unmarshal config from file %s", f.filepath)
	}
	f.c = &conf

	return nil
}

func (f *File) Save() error {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if f.c == nil {
		return pkgerrors.New("config is nil")
	}

	fp, err := os.OpenFile(f.filepath, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to open file %s", f.filepath)
	}
	defer func(fp *os.File) {
		err := fp.Close()
		if err != nil {
			logrus.Warnf("failed to close file %s", f.filepath)
		}
	}(fp)

	enc := json.NewEncoder(fp)
	enc.SetIndent("", "  ")
	err = enc.Encode(f.c)
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to encode config to file %s", f.filepath)
	}

	return nil
}

func (f *File) LogrusFields() logrus.Fields {
	if f.c == nil {
		panic("config is nil")
	}

	return logrus.Fields{
		"allowNonRootAccess":   f.AllowNonRootAccess(),
		"powerSupplyPath":      f.PowerSupplyPath(),
		"batteryName":          f.BatteryName(),
		"watchIntervalSeconds": f.WatchIntervalSeconds(),
	}
}
