package provider

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/charlie0129/powerstate/pkg/powerinfo"
)

func TestFixture_ListPowerSources(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sources.json")
	content := `[
  {"name": "AC", "present": true, "kind": "ac", "charging": true, "maxCapacity": 100, "currentCapacity": 42, "timeToEmptyMinutes": 0},
  {"name": "BAT1", "present": false, "kind": "battery", "maxCapacity": 100, "currentCapacity": 99}
]`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	p, err := New(NameFixture, Options{FixturePath: path})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	sources, err := p.ListPowerSources(context.Background())
	if err != nil {
		t.Fatalf("ListPowerSources() error = %v", err)
	}
	if len(sources) != 2 {
		t.Fatalf("len(sources) = %d, want 2", len(sources))
	}

	want := powerinfo.PowerInfo{State: powerinfo.Charging, Seconds: powerinfo.UnknownValue, Percent: 42}
	if got := powerinfo.Query(sources); got != want {
		t.Errorf("Query() = %+v, want %+v", got, want)
	}
}

func TestFixture_Missing(t *testing.T) {
	p := NewFixture(filepath.Join(t.TempDir(), "missing.json"))
	if _, err := p.ListPowerSources(context.Background()); err == nil {
		t.Errorf("ListPowerSources() expected error")
	}
}
