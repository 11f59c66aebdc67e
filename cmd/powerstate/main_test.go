package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"

	"github.com/charlie0129/powerstate/pkg/powerinfo"
)

func writeFixtureConfig(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	fixture := filepath.Join(dir, "sources.json")
	sources := `[{"name": "BAT0", "present": true, "kind": "battery", "maxCapacity": 200, "currentCapacity": 150, "timeToEmptyMinutes": 90}]`
	if err := os.WriteFile(fixture, []byte(sources), 0644); err != nil {
		t.Fatal(err)
	}

	conf := filepath.Join(dir, "powerstate.toml")
	content := "provider = \"fixture\"\nfixturePath = \"" + filepath.ToSlash(fixture) + "\"\n"
	if err := os.WriteFile(conf, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	return conf
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	color.NoColor = true
	providerName = ""

	var out bytes.Buffer
	cmd := NewCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()

	return out.String(), err
}

func TestStatusJSON(t *testing.T) {
	conf := writeFixtureConfig(t)

	out, err := run(t, "status", "--json", "--config", conf)
	if err != nil {
		t.Fatalf("status error = %v", err)
	}

	var got statusJSON
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("Unmarshal(%q) error = %v", out, err)
	}
	want := statusJSON{State: "onBattery", Seconds: 5400, Percent: 75}
	if got != want {
		t.Errorf("status --json = %+v, want %+v", got, want)
	}
}

func TestStatusText(t *testing.T) {
	conf := writeFixtureConfig(t)

	out, err := run(t, "status", "--config", conf)
	if err != nil {
		t.Fatalf("status error = %v", err)
	}
	for _, want := range []string{"State: onBattery", "Charge: 75%", "Time remaining: 1h30m0s"} {
		if !strings.Contains(out, want) {
			t.Errorf("status output missing %q:\n%s", want, out)
		}
	}
}

func TestStatusProviderOverride(t *testing.T) {
	conf := writeFixtureConfig(t)

	out, err := run(t, "status", "--json", "--config", conf, "--provider", "none")
	if err != nil {
		t.Fatalf("status error = %v", err)
	}

	var got statusJSON
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("Unmarshal(%q) error = %v", out, err)
	}
	if got.State != "unknown" || !got.SecondsUnknown || !got.PercentUnknown {
		t.Errorf("status --provider none = %+v", got)
	}
}

func TestSources(t *testing.T) {
	conf := writeFixtureConfig(t)

	out, err := run(t, "sources", "--config", conf)
	if err != nil {
		t.Fatalf("sources error = %v", err)
	}
	for _, want := range []string{"Provider: fixture", "BAT0 (battery):", "Capacity: 150 / 200", "Time to empty: 90 min"} {
		if !strings.Contains(out, want) {
			t.Errorf("sources output missing %q:\n%s", want, out)
		}
	}
}

func TestUnknownProvider(t *testing.T) {
	conf := writeFixtureConfig(t)

	if _, err := run(t, "status", "--config", conf, "--provider", "bogus"); err == nil {
		t.Errorf("status --provider bogus expected error")
	}
}

func TestInfoText(t *testing.T) {
	color.NoColor = true

	tests := []struct {
		name        string
		info        powerinfo.PowerInfo
		wantPercent string
		wantSeconds string
	}{
		{
			name:        "unknown",
			info:        powerinfo.PowerInfo{},
			wantPercent: "unknown",
			wantSeconds: "unknown",
		},
		{
			name:        "charging without estimate",
			info:        powerinfo.PowerInfo{State: powerinfo.Charging, Seconds: -1, Percent: 80},
			wantPercent: "80%",
			wantSeconds: "unknown",
		},
		{
			name:        "on battery",
			info:        powerinfo.PowerInfo{State: powerinfo.OnBattery, Seconds: 90, Percent: 3},
			wantPercent: "3%",
			wantSeconds: "1m30s",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := percentText(tt.info); got != tt.wantPercent {
				t.Errorf("percentText() = %q, want %q", got, tt.wantPercent)
			}
			if got := secondsText(tt.info); got != tt.wantSeconds {
				t.Errorf("secondsText() = %q, want %q", got, tt.wantSeconds)
			}
		})
	}
}
