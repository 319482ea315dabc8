package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/battbridge/battd/pkg/powersupply"
)

func TestFileDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "battd.json")

	f, err := NewFile(path)
	if err != nil {
		t.Fatalf("NewFile() error = %v", err)
	}

	if f.AllowNonRootAccess() {
		t.Error("AllowNonRootAccess() = true, want false by default")
	}
	if got := f.PowerSupplyPath(); got != powersupply.DefaultRoot {
		t.Errorf("PowerSupplyPath() = %q, want %q", got, powersupply.DefaultRoot)
	}
	if got := f.BatteryName(); got != "" {
		t.Errorf("BatteryName() = %q, want autodetect", got)
	}
	if got := f.WatchIntervalSeconds(); got != 5 {
		t.Errorf("WatchIntervalSeconds() = %d, want 5", got)
	}
}

func TestFileSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "battd.json")

	f, err := NewFile(path)
	if err != nil {
		t.Fatalf("NewFile() error = %v", err)
	}

	f.SetAllowNonRootAccess(true)
	f.SetPowerSupplyPath("/tmp/power_supply")
	f.SetBatteryName("BAT1")
	f.SetWatchIntervalSeconds(30)

	if err := f.Save(); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	g, err := NewFile(path)
	if err != nil {
		t.Fatalf("NewFile() after save error = %v", err)
	}

	if !g.AllowNonRootAccess() {
		t.Error("AllowNonRootAccess() = false after round trip")
	}
	if got := g.PowerSupplyPath(); got != "/tmp/power_supply" {
		t.Errorf("PowerSupplyPath() = %q", got)
	}
	if got := g.BatteryName(); got != "BAT1" {
		t.Errorf("BatteryName() = %q", got)
	}
	if got := g.WatchIntervalSeconds(); got != 30 {
		t.Errorf("WatchIntervalSeconds() = %d", got)
	}
}

func TestFileEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "battd.json")
	if err := os.WriteFile(path, []byte("  \n"), 0644); err != nil {
		t.Fatal(err)
	}

	f, err := NewFile(path)
	if err != nil {
		t.Fatalf("NewFile() error = %v", err)
	}
	// Empty file means all defaults.
	if got := f.WatchIntervalSeconds(); got != 5 {
		t.Errorf("WatchIntervalSeconds() = %d, want 5", got)
	}
}

func TestFileMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "battd.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := NewFile(path); err == nil {
		t.Fatal("NewFile() expected error for malformed config")
	}
}

func TestWatchIntervalFloor(t *testing.T) {
	f := NewFileFromConfig(&RawFileConfig{WatchIntervalSeconds: new(int)}, "")
	// A configured zero is nonsense; the getter falls back to the default.
	if got := f.WatchIntervalSeconds(); got != 5 {
		t.Errorf("WatchIntervalSeconds() = %d, want 5", got)
	}
}
