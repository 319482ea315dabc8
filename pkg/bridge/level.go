package bridge

import (
	"math"

	"github.com/distatus/battery"
	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/battbridge/battd/pkg/batteryinfo"
	"github.com/battbridge/battd/pkg/powersupply"
)

// levelProvider is one strategy for reading the battery percentage.
// Which one runs is decided per call from what the host exposes, so a
// kernel that grows or loses the capacity attribute is picked up
// without restarting the daemon.
type levelProvider interface {
	Name() string
	BatteryLevel() (int, error)
}

func (b *Bridge) levelProvider() levelProvider {
	if b.reader.HasCapacity() {
		return &capacityProvider{reader: b.reader}
	}

	if _, err := b.reader.BatteryName(); err == nil {
		return &chargeProvider{reader: b.reader}
	}

	logrus.Tracef("no power_supply battery found, using portable provider")
	return &portableProvider{}
}

// capacityProvider reads the percentage the host computed itself.
type capacityProvider struct {
	reader *powersupply.Reader
}

func (p *capacityProvider) Name() string { return "capacity attribute" }

func (p *capacityProvider) BatteryLevel() (int, error) {
	level, err := p.reader.Capacity()
	if err != nil {
		return 0, err
	}

	if level < 0 {
		level = 0
	}
	if level > 100 {
		level = 100
	}

	return level, nil
}

// chargeProvider computes the percentage from the raw charge counters of
// one snapshot, for hosts without a capacity attribute.
type chargeProvider struct {
	reader *powersupply.Reader
}

func (p *chargeProvider) Name() string { return "charge counters" }

func (p *chargeProvider) BatteryLevel() (int, error) {
	s, err := p.reader.Snapshot()
	if err != nil {
		return 0, err
	}

	return batteryinfo.LevelFromCharge(s.ChargeNow, s.ChargeFull)
}

// portableProvider asks the distatus/battery library, for hosts without
// a power_supply tree at all.
type portableProvider struct{}

func (p *portableProvider) Name() string { return "portable battery library" }

func (p *portableProvider) BatteryLevel() (int, error) {
	batteries, err := battery.GetAll()
	if err != nil {
		return 0, pkgerrors.Wrap(err, "failed to enumerate batteries")
	}

	if len(batteries) == 0 {
		return 0, pkgerrors.New("no batteries found")
	}

	bat := batteries[0]
	if bat.Full <= 0 {
		return 0, pkgerrors.Errorf("invalid full charge %f", bat.Full)
	}

	level := int(math.Round(bat.Current / bat.Full * 100))
	if level < 0 {
		level = 0
	}
	if level > 100 {
		level = 100
	}

	return level, nil
}
