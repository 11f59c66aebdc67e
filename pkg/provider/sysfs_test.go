package provider

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/charlie0129/powerstate/pkg/powerinfo"
)

func writeSupply(t *testing.T, root, name string, files map[string]string) {
	t.Helper()

	dir := filepath.Join(root, name)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	for f, content := range files {
		if err := os.WriteFile(filepath.Join(dir, f), []byte(content+"\n"), 0644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestSysfs_ListPowerSources(t *testing.T) {
	tests := []struct {
		name     string
		supplies map[string]map[string]string
		want     powerinfo.PowerInfo
	}{
		{
			name: "discharging laptop",
			supplies: map[string]map[string]string{
				"AC": {"type": "Mains", "online": "0"},
				"BAT0": {
					"type": "Battery", "present": "1", "status": "Discharging",
					"energy_now": "25000000", "energy_full": "50000000", "power_now": "12500000",
				},
			},
			want: powerinfo.PowerInfo{State: powerinfo.OnBattery, Seconds: 7200, Percent: 50},
		},
		{
			name: "charging laptop",
			supplies: map[string]map[string]string{
				"AC": {"type": "Mains", "online": "1"},
				"BAT0": {
					"type": "Battery", "status": "Charging",
					"charge_now": "3000000", "charge_full": "4000000",
				},
			},
			want: powerinfo.PowerInfo{State: powerinfo.Charging, Seconds: powerinfo.UnknownValue, Percent: 75},
		},
		{
			name: "plugged in and full",
			supplies: map[string]map[string]string{
				"ADP1": {"type": "Mains", "online": "1"},
				"BAT1": {"type": "Battery", "status": "Full", "capacity": "100"},
			},
			want: powerinfo.PowerInfo{State: powerinfo.Charged, Seconds: powerinfo.UnknownValue, Percent: 100},
		},
		{
			name: "desktop with only mains",
			supplies: map[string]map[string]string{
				"AC": {"type": "Mains", "online": "1"},
			},
			want: powerinfo.PowerInfo{State: powerinfo.NoBattery, Seconds: powerinfo.UnknownValue, Percent: powerinfo.UnknownValue},
		},
		{
			name: "time to empty reported directly",
			supplies: map[string]map[string]string{
				"BAT0": {"type": "Battery", "status": "Discharging", "capacity": "40", "time_to_empty_now": "5400"},
			},
			want: powerinfo.PowerInfo{State: powerinfo.OnBattery, Seconds: 5400, Percent: 40},
		},
		{
			name: "peripheral batteries are ignored",
			supplies: map[string]map[string]string{
				"hidpp_battery_0": {"type": "Keyboard", "capacity": "90"},
				"BAT0":            {"type": "Battery", "status": "Discharging", "capacity": "20"},
			},
			want: powerinfo.PowerInfo{State: powerinfo.OnBattery, Seconds: powerinfo.UnknownValue, Percent: 20},
		},
		{
			name: "removed battery",
			supplies: map[string]map[string]string{
				"BAT0": {"type": "Battery", "present": "0", "capacity": "0"},
			},
			want: powerinfo.PowerInfo{State: powerinfo.NoBattery, Seconds: powerinfo.UnknownValue, Percent: powerinfo.UnknownValue},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			for name, files := range tt.supplies {
				writeSupply(t, root, name, files)
			}

			sources, err := NewSysfs(root).ListPowerSources(context.Background())
			if err != nil {
				t.Fatalf("ListPowerSources() error = %v", err)
			}
			if got := powerinfo.Query(sources); got != tt.want {
				t.Errorf("Query() = %+v, want %+v (sources: %+v)", got, tt.want, sources)
			}
		})
	}
}

func TestSysfs_MissingRoot(t *testing.T) {
	sources, err := NewSysfs(filepath.Join(t.TempDir(), "missing")).ListPowerSources(context.Background())
	if err != nil {
		t.Fatalf("ListPowerSources() error = %v", err)
	}
	if len(sources) != 0 {
		t.Errorf("len(sources) = %d, want 0", len(sources))
	}
	if got := powerinfo.Query(sources); got != (powerinfo.PowerInfo{}) {
		t.Errorf("Query() = %+v, want zero value", got)
	}
}
