package powersupply

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	pkgerrors "github.com/pkg/errors"
)

var (
	// ErrAttrNotFound is returned when a device does not expose an attribute.
	ErrAttrNotFound = pkgerrors.New("attribute not found")

	// ErrNoBattery is returned when no battery device exists on the host.
	ErrNoBattery = pkgerrors.New("no battery device found")
)

// Device is a power_supply class device as reported by the host.
type Device struct {
	Name string
	Type string
}

// Source is the raw attribute store a Reader sits on top of. The real
// implementation reads sysfs; the mock keeps attributes in memory.
type Source interface {
	// Devices lists the power_supply devices the host exposes.
	Devices() ([]Device, error)
	// ReadAttr reads a single attribute of a device, trimmed of whitespace.
	// Returns ErrAttrNotFound if the device does not expose the attribute.
	ReadAttr(device, attr string) (string, error)
}

type sysfsSource struct {
	root string
}

func (s *sysfsSource) Devices() ([]Device, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to list power supplies in %s", s.root)
	}

	var devices []Device
	for _, e := range entries {
		typ, err := s.ReadAttr(e.Name(), AttrType)
		if err != nil {
			// A directory without a type attribute is not a power supply.
			continue
		}
		devices = append(devices, Device{Name: e.Name(), Type: typ})
	}

	return devices, nil
}

func (s *sysfsSource) ReadAttr(device, attr string) (string, error) {
	b, err := os.ReadFile(filepath.Join(s.root, device, attr))
	if err != nil {
		if os.IsNotExist(err) {
			return "", ErrAttrNotFound
		}
		return "", pkgerrors.Wrapf(err, "failed to read %s of %s", attr, device)
	}

	return strings.TrimSpace(string(b)), nil
}

type mockSource struct {
	// attrs is keyed by "<device>/<attr>".
	attrs map[string]string
}

func (s *mockSource) Devices() ([]Device, error) {
	var devices []Device
	for key, value := range s.attrs {
		device, attr, ok := strings.Cut(key, "/")
		if !ok || attr != AttrType {
			continue
		}
		devices = append(devices, Device{Name: device, Type: value})
	}

	// Map iteration order is random; battery autodetection wants a stable one.
	sort.Slice(devices, func(i, j int) bool { return devices[i].Name < devices[j].Name })

	return devices, nil
}

func (s *mockSource) ReadAttr(device, attr string) (string, error) {
	v, ok := s.attrs[device+"/"+attr]
	if !ok {
		return "", ErrAttrNotFound
	}
	return v, nil
}
