// Package bridge exposes host battery state to UI callers as a closed
// set of named operations. Each call is a stateless request/response:
// the host state is re-read from scratch every time and nothing is
// cached between calls.
package bridge

import (
	"sort"

	"github.com/battbridge/battd/pkg/batteryinfo"
	"github.com/battbridge/battd/pkg/powersupply"
)

// Recognized operation names.
const (
	OpGetBatteryLevel = "getBatteryLevel"
	OpGetBatteryInfo  = "getBatteryInfo"
)

type operation func() (any, error)

// Bridge dispatches named operations to host accessors.
type Bridge struct {
	reader *powersupply.Reader
	ops    map[string]operation
}

// New returns a Bridge reading through the given power supply reader.
func New(reader *powersupply.Reader) *Bridge {
	b := &Bridge{reader: reader}
	b.ops = map[string]operation{
		OpGetBatteryLevel: func() (any, error) { return b.GetBatteryLevel() },
		OpGetBatteryInfo:  func() (any, error) { return b.GetBatteryInfo() },
	}
	return b
}

// Operations returns the recognized operation names, sorted.
func (b *Bridge) Operations() []string {
	names := make([]string, 0, len(b.ops))
	for name := range b.ops {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Call dispatches an operation by name. Unrecognized names fail with a
// not-implemented error, which is distinct from the host state being
// unavailable: the former is a contract mismatch, the latter a host
// condition.
func (b *Bridge) Call(name string) (any, error) {
	op, ok := b.ops[name]
	if !ok {
		return nil, NotImplemented(name)
	}
	return op()
}

// GetBatteryLevel returns the battery charge percentage in [0,100],
// using the most specific accessor the host supports.
func (b *Bridge) GetBatteryLevel() (int, error) {
	p := b.levelProvider()

	level, err := p.BatteryLevel()
	if err != nil {
		return 0, Unavailable(err, "failed to read battery level via %s", p.Name())
	}

	return level, nil
}

// GetBatteryInfo returns the full battery record, derived from a single
// host snapshot. On failure no partial record is returned.
func (b *Bridge) GetBatteryInfo() (*batteryinfo.Info, error) {
	s, err := b.reader.Snapshot()
	if err != nil {
		return nil, Unavailable(err, "failed to read battery snapshot")
	}

	info, err := batteryinfo.FromSnapshot(s)
	if err != nil {
		return nil, Unavailable(err, "failed to derive battery info")
	}

	return info, nil
}
