package batteryinfo

import (
	"math"

	pkgerrors "github.com/pkg/errors"

	"github.com/battbridge/battd/pkg/powersupply"
)

// healthCodes maps the host's health strings to the Health enum. Anything
// not in here resolves to HealthUnknown.
var healthCodes = map[string]Health{
	"Good":                HealthGood,
	"Overheat":            HealthOverheat,
	"Dead":                HealthDead,
	"Over voltage":        HealthOverVoltage,
	"Unspecified failure": HealthUnspecifiedFailure,
	"Cold":                HealthCold,
}

// HealthFromHost maps a raw host health code to the Health enum.
func HealthFromHost(code string) Health {
	if h, ok := healthCodes[code]; ok {
		return h
	}
	return HealthUnknown
}

// LevelFromCharge computes a percentage from raw charge counters,
// rounded and clamped to [0,100].
func LevelFromCharge(now, full int64) (int, error) {
	if full <= 0 {
		return 0, pkgerrors.Errorf("invalid full charge %d", full)
	}

	return clampLevel(int(math.Round(float64(now) / float64(full) * 100))), nil
}

// clampLevel forces a percentage into [0,100]. Hosts with a worn
// battery controller can report capacities above 100.
func clampLevel(level int) int {
	if level < 0 {
		return 0
	}
	if level > 100 {
		return 100
	}
	return level
}

// FromSnapshot derives the battery record from one host snapshot. Every
// field comes from the same snapshot so the record is internally
// consistent.
func FromSnapshot(s *powersupply.Snapshot) (*Info, error) {
	if s == nil {
		return nil, pkgerrors.New("nil snapshot")
	}

	level, err := LevelFromCharge(s.ChargeNow, s.ChargeFull)
	if err != nil {
		// Hosts without charge counters still report a direct percentage.
		if !s.HasCapacity {
			return nil, pkgerrors.Wrap(err, "snapshot has no usable charge reading")
		}
		level = clampLevel(s.Capacity)
	}

	return &Info{
		Level:              level,
		IsCharging:         s.Status == powersupply.StatusCharging || s.Status == powersupply.StatusFull,
		ChargingSource:     chargingSource(s),
		Health:             HealthFromHost(s.Health),
		TemperatureCelsius: float64(s.TempTenths) / 10,
		VoltageMillivolts:  s.VoltageMilliVolts,
	}, nil
}

// chargingSource picks exactly one source, AC before USB before Wireless.
func chargingSource(s *powersupply.Snapshot) ChargingSource {
	switch {
	case s.ACOnline:
		return SourceAC
	case s.USBOnline:
		return SourceUSB
	case s.WirelessOnline:
		return SourceWireless
	default:
		return SourceNotCharging
	}
}
