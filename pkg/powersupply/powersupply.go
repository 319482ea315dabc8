package powersupply

import (
	"strconv"

	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Reader reads battery state from a power_supply Source.
type Reader struct {
	src Source

	// batteryName pins the battery device to read. Empty means autodetect
	// (first device of type Battery).
	batteryName string
}

// New returns a Reader over the host sysfs tree rooted at root.
// An empty root means DefaultRoot.
func New(root string) *Reader {
	if root == "" {
		root = DefaultRoot
	}
	return &Reader{
		src: &sysfsSource{root: root},
	}
}

// NewMock returns a Reader over an in-memory source with prefill values,
// keyed by "<device>/<attr>".
func NewMock(prefill map[string]string) *Reader {
	attrs := make(map[string]string, len(prefill))
	for k, v := range prefill {
		attrs[k] = v
	}
	return &Reader{
		src: &mockSource{attrs: attrs},
	}
}

// SetBatteryName pins the battery device name instead of autodetecting.
func (r *Reader) SetBatteryName(name string) {
	r.batteryName = name
}

// BatteryName returns the name of the battery device to read.
func (r *Reader) BatteryName() (string, error) {
	if r.batteryName != "" {
		return r.batteryName, nil
	}

	devices, err := r.src.Devices()
	if err != nil {
		return "", err
	}

	for _, d := range devices {
		if d.Type == TypeBattery {
			return d.Name, nil
		}
	}

	return "", ErrNoBattery
}

// HasCapacity reports whether the battery exposes a direct capacity
// percentage attribute.
func (r *Reader) HasCapacity() bool {
	name, err := r.BatteryName()
	if err != nil {
		return false
	}

	_, err = r.src.ReadAttr(name, AttrCapacity)
	return err == nil
}

// Capacity returns the battery's direct capacity percentage attribute.
func (r *Reader) Capacity() (int, error) {
	logrus.Tracef("Capacity called")

	name, err := r.BatteryName()
	if err != nil {
		return 0, err
	}

	v, err := r.src.ReadAttr(name, AttrCapacity)
	if err != nil {
		return 0, err
	}

	capacity, err := strconv.Atoi(v)
	if err != nil {
		return 0, pkgerrors.Wrapf(err, "malformed capacity %q of %s", v, name)
	}

	return capacity, nil
}

// Snapshot is one consistent read of the battery state. Every derived
// field must come from the same Snapshot to avoid torn reads.
type Snapshot struct {
	// HasCapacity is true when the host exposes a direct percentage.
	HasCapacity bool
	Capacity    int

	// ChargeNow and ChargeFull are raw charge counters (uAh, or uWh when
	// the host only exposes energy counters; the ratio is what matters).
	ChargeNow  int64
	ChargeFull int64

	Status string

	ACOnline       bool
	USBOnline      bool
	WirelessOnline bool

	Health string

	// TempTenths is in tenths of a degree Celsius.
	TempTenths int

	VoltageMilliVolts int
}

// Snapshot reads the battery and charger state in a single pass.
func (r *Reader) Snapshot() (*Snapshot, error) {
	logrus.Tracef("Snapshot called")

	name, err := r.BatteryName()
	if err != nil {
		return nil, err
	}

	s := &Snapshot{}

	if v, err := r.readOptionalInt(name, AttrCapacity); err != nil {
		return nil, err
	} else if v != nil {
		s.HasCapacity = true
		s.Capacity = int(*v)
	}

	if err := r.readCharge(name, s); err != nil {
		return nil, err
	}

	status, err := r.src.ReadAttr(name, AttrStatus)
	if err != nil && !pkgerrors.Is(err, ErrAttrNotFound) {
		return nil, err
	}
	if status == "" {
		status = StatusUnknown
	}
	s.Status = status

	health, err := r.src.ReadAttr(name, AttrHealth)
	if err != nil && !pkgerrors.Is(err, ErrAttrNotFound) {
		return nil, err
	}
	s.Health = health

	if v, err := r.readOptionalInt(name, AttrTemp); err != nil {
		return nil, err
	} else if v != nil {
		s.TempTenths = int(*v)
	}

	if v, err := r.readOptionalInt(name, AttrVoltageNow); err != nil {
		return nil, err
	} else if v != nil {
		// voltage_now is in uV.
		s.VoltageMilliVolts = int(*v / 1000)
	}

	if err := r.readChargers(s); err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"battery":  name,
		"status":   s.Status,
		"health":   s.Health,
		"capacity": s.Capacity,
	}).Trace("snapshot read")

	return s, nil
}

// readCharge fills the charge counters, preferring charge_now/charge_full
// and falling back to the energy counters on hosts that only have those.
func (r *Reader) readCharge(name string, s *Snapshot) error {
	now, err := r.readOptionalInt(name, AttrChargeNow)
	if err != nil {
		return err
	}
	full, err := r.readOptionalInt(name, AttrChargeFull)
	if err != nil {
		return err
	}

	if now == nil || full == nil {
		now, err = r.readOptionalInt(name, AttrEnergyNow)
		if err != nil {
			return err
		}
		full, err = r.readOptionalInt(name, AttrEnergyFull)
		if err != nil {
			return err
		}
	}

	if now != nil && full != nil {
		s.ChargeNow = *now
		s.ChargeFull = *full
	}

	return nil
}

// readChargers fills the plug online flags from every non-battery supply.
// Multiple supplies of the same type are ORed together.
func (r *Reader) readChargers(s *Snapshot) error {
	devices, err := r.src.Devices()
	if err != nil {
		return err
	}

	for _, d := range devices {
		if d.Type == TypeBattery {
			continue
		}

		v, err := r.src.ReadAttr(d.Name, AttrOnline)
		if pkgerrors.Is(err, ErrAttrNotFound) {
			continue
		}
		if err != nil {
			return err
		}

		online := v == "1"
		switch d.Type {
		case TypeMains:
			s.ACOnline = s.ACOnline || online
		case TypeUSB:
			s.USBOnline = s.USBOnline || online
		case TypeWireless:
			s.WirelessOnline = s.WirelessOnline || online
		}
	}

	return nil
}

// readOptionalInt reads an integer attribute, returning nil when the
// device does not expose it and an error when it exists but is malformed.
func (r *Reader) readOptionalInt(device, attr string) (*int64, error) {
	v, err := r.src.ReadAttr(device, attr)
	if err != nil {
		if pkgerrors.Is(err, ErrAttrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "malformed %s %q of %s", attr, v, device)
	}

	return &n, nil
}
