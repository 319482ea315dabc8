package batteryinfo

// ChargingSource tells which charger the battery is drawing from.
type ChargingSource string

const (
	SourceAC          ChargingSource = "AC"
	SourceUSB         ChargingSource = "USB"
	SourceWireless    ChargingSource = "Wireless"
	SourceNotCharging ChargingSource = "Not charging"
)

// Health is the battery condition the host reports.
type Health string

const (
	HealthGood               Health = "Good"
	HealthOverheat           Health = "Overheat"
	HealthDead               Health = "Dead"
	HealthOverVoltage        Health = "OverVoltage"
	HealthUnspecifiedFailure Health = "UnspecifiedFailure"
	HealthCold               Health = "Cold"
	// HealthUnknown is what any unrecognized host code maps to.
	HealthUnknown Health = "Unknown"
)

// Info is the battery record delivered across the bridge.
type Info struct {
	Level              int            `json:"level"`
	IsCharging         bool           `json:"isCharging"`
	ChargingSource     ChargingSource `json:"chargingSource"`
	Health             Health         `json:"health"`
	TemperatureCelsius float64        `json:"temperatureCelsius"`
	VoltageMillivolts  int            `json:"voltageMillivolts"`
}
