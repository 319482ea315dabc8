package powersupply

// DefaultRoot is where the kernel exposes the power_supply class.
const DefaultRoot = "/sys/class/power_supply"

// Attribute file names under a power_supply device directory.
const (
	AttrType       = "type"
	AttrOnline     = "online"
	AttrStatus     = "status"
	AttrCapacity   = "capacity"
	AttrChargeNow  = "charge_now"
	AttrChargeFull = "charge_full"
	AttrEnergyNow  = "energy_now"
	AttrEnergyFull = "energy_full"
	AttrHealth     = "health"
	AttrTemp       = "temp"
	AttrVoltageNow = "voltage_now"
)

// Device types reported by the kernel.
const (
	TypeBattery  = "Battery"
	TypeMains    = "Mains"
	TypeUSB      = "USB"
	TypeWireless = "Wireless"
)

// Status strings reported by the kernel.
const (
	StatusCharging    = "Charging"
	StatusDischarging = "Discharging"
	StatusNotCharging = "Not charging"
	StatusFull        = "Full"
	StatusUnknown     = "Unknown"
)
