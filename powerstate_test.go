package powerstate

import (
	"context"
	"errors"
	"testing"

	"github.com/charlie0129/powerstate/pkg/powerinfo"
	"github.com/charlie0129/powerstate/pkg/provider"
)

type fakeProvider struct {
	sources []powerinfo.PowerSource
	err     error
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) ListPowerSources(context.Context) ([]powerinfo.PowerSource, error) {
	return f.sources, f.err
}

func TestGet(t *testing.T) {
	tests := []struct {
		name     string
		provider provider.PowerSourceProvider
		want     powerinfo.PowerInfo
	}{
		{
			name:     "unsupported platform",
			provider: provider.Noop{},
			want:     powerinfo.PowerInfo{State: powerinfo.Unknown, Seconds: 0, Percent: 0},
		},
		{
			name:     "nil provider",
			provider: nil,
			want:     powerinfo.PowerInfo{},
		},
		{
			name:     "provider error",
			provider: &fakeProvider{err: errors.New("ioreg: not found")},
			want:     powerinfo.PowerInfo{},
		},
		{
			name: "battery",
			provider: &fakeProvider{sources: []powerinfo.PowerSource{
				{Present: true, Kind: powerinfo.KindBattery, MaxCapacity: powerinfo.Int(100), CurrentCapacity: powerinfo.Int(50), TimeToEmptyMinutes: powerinfo.Int(120)},
			}},
			want: powerinfo.PowerInfo{State: powerinfo.OnBattery, Seconds: 7200, Percent: 50},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Get(context.Background(), tt.provider); got != tt.want {
				t.Errorf("Get() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestTake(t *testing.T) {
	p := &fakeProvider{sources: []powerinfo.PowerSource{
		{Name: "AC", Present: true, Kind: powerinfo.KindAC},
	}}

	snap, err := Take(context.Background(), p)
	if err != nil {
		t.Fatalf("Take() error = %v", err)
	}
	if snap.Provider != "fake" || len(snap.Sources) != 1 {
		t.Errorf("Take() = %+v", snap)
	}
	if snap.Info.State != powerinfo.NoBattery {
		t.Errorf("State = %v, want %v", snap.Info.State, powerinfo.NoBattery)
	}
}

func TestGetPowerState(t *testing.T) {
	// Whatever the host reports, the result must be well formed.
	info := GetPowerState()
	if info.State < powerinfo.Unknown || info.State > powerinfo.OnBattery {
		t.Errorf("GetPowerState() returned invalid state %d", info.State)
	}
	if info.Percent > 100 {
		t.Errorf("GetPowerState() percent = %d, want <= 100", info.Percent)
	}
}
