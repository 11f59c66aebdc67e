package client

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charlie0129/powerstate/pkg/events"
	"github.com/charlie0129/powerstate/pkg/powerinfo"
)

func serveUnix(t *testing.T, handler http.Handler) string {
	t.Helper()

	// Unix socket paths have a short length limit, so avoid t.TempDir.
	dir, err := os.MkdirTemp("", "powerstate")
	if err != nil {
		t.Fatalf("MkdirTemp() error = %v", err)
	}
	t.Cleanup(func() { _ = os.RemoveAll(dir) })

	sock := filepath.Join(dir, "d.sock")
	l, err := net.Listen("unix", sock)
	if err != nil {
		t.Fatalf("Listen() error = %v", err)
	}

	srv := &http.Server{Handler: handler, ReadHeaderTimeout: time.Second}
	go func() { _ = srv.Serve(l) }()
	t.Cleanup(func() { _ = srv.Close() })

	return sock
}

func newTestMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/power-state", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("cached") == "true" {
			fmt.Fprint(w, `{"state":"charged","seconds":-1,"percent":100}`)
			return
		}
		fmt.Fprint(w, `{"state":"onBattery","seconds":7200,"percent":50}`)
	})
	mux.HandleFunc("/power-sources", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"provider":"sysfs","sources":[{"name":"BAT0","present":true,"kind":"battery","charging":false,"maxCapacity":100,"currentCapacity":50}],"info":{"state":"onBattery","seconds":-1,"percent":50}}`)
	})
	mux.HandleFunc("/config", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"provider":"sysfs","pollIntervalSeconds":10}`)
	})
	mux.HandleFunc("/version", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, "\"v1.2.3\"\n")
	})
	mux.HandleFunc("/broken", func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})
	return mux
}

func TestClientAPIs(t *testing.T) {
	c := NewClient(serveUnix(t, newTestMux()))

	info, err := c.GetPowerState(false)
	if err != nil {
		t.Fatalf("GetPowerState() error = %v", err)
	}
	if want := (powerinfo.PowerInfo{State: powerinfo.OnBattery, Seconds: 7200, Percent: 50}); info != want {
		t.Errorf("GetPowerState() = %+v, want %+v", info, want)
	}

	info, err = c.GetPowerState(true)
	if err != nil {
		t.Fatalf("GetPowerState(cached) error = %v", err)
	}
	if info.State != powerinfo.Charged {
		t.Errorf("GetPowerState(cached) state = %v, want charged", info.State)
	}

	snap, err := c.GetPowerSources()
	if err != nil {
		t.Fatalf("GetPowerSources() error = %v", err)
	}
	if snap.Provider != "sysfs" || len(snap.Sources) != 1 || snap.Sources[0].Kind != powerinfo.KindBattery {
		t.Errorf("GetPowerSources() = %+v", snap)
	}

	conf, err := c.GetConfig()
	if err != nil {
		t.Fatalf("GetConfig() error = %v", err)
	}
	if conf.PollIntervalSeconds == nil || *conf.PollIntervalSeconds != 10 {
		t.Errorf("GetConfig() pollIntervalSeconds = %v, want 10", conf.PollIntervalSeconds)
	}

	v, err := c.GetVersion()
	if err != nil {
		t.Fatalf("GetVersion() error = %v", err)
	}
	if v != "v1.2.3" {
		t.Errorf("GetVersion() = %q, want v1.2.3", v)
	}
}

func TestGetVersionRejectsNonJSON(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/version", func(w http.ResponseWriter, _ *http.Request) {
		// Indented JSON from gin still decodes; a bare token does not.
		fmt.Fprint(w, "v1.2.3\n")
	})
	c := NewClient(serveUnix(t, mux))

	if v, err := c.GetVersion(); err == nil {
		t.Errorf("GetVersion() = %q, want error", v)
	}
}

func TestClientErrors(t *testing.T) {
	c := NewClient(serveUnix(t, newTestMux()))

	tests := []struct {
		name    string
		path    string
		wantErr error
	}{
		{name: "not found", path: "/nope", wantErr: ErrNotFound},
		{name: "server error", path: "/broken"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.Get(tt.path)
			if err == nil {
				t.Fatalf("Get(%s) expected error", tt.path)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("Get(%s) error = %v, want %v", tt.path, err, tt.wantErr)
			}
		})
	}

	if _, err := c.Send(http.MethodDelete, "/config", ""); err == nil {
		t.Errorf("Send(DELETE) expected error")
	}
}

func TestDaemonNotRunning(t *testing.T) {
	c := NewClient(filepath.Join(t.TempDir(), "missing.sock"))

	_, err := c.GetPowerState(false)
	if !errors.Is(err, ErrDaemonNotRunning) {
		t.Errorf("GetPowerState() error = %v, want %v", err, ErrDaemonNotRunning)
	}
}

func TestSubscribeEvents(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/events", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		fmt.Fprint(w, ": comment\n\n")
		fmt.Fprint(w, "event:power.state\ndata:{\"from\":\"charging\",\"to\":\"charged\",\"seconds\":-1,\"percent\":100,\"ts\":1}\n\n")
		fmt.Fprint(w, "event: power.state\ndata: {\"from\":\"charged\",\"to\":\"onBattery\",\"seconds\":600,\"percent\":99,\"ts\":2}\n\n")
	})
	c := NewClient(serveUnix(t, mux))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	ch, err := c.SubscribeEvents(ctx)
	if err != nil {
		t.Fatalf("SubscribeEvents() error = %v", err)
	}

	var got []events.PowerStateEvent
	for ev := range ch {
		if ev.Name != events.PowerState {
			t.Errorf("event name = %q, want %q", ev.Name, events.PowerState)
		}
		payload, err := events.DecodeAs[events.PowerStateEvent](ev)
		if err != nil {
			t.Fatalf("DecodeAs() error = %v", err)
		}
		got = append(got, payload)
	}

	if len(got) != 2 {
		t.Fatalf("got %d events, want 2", len(got))
	}
	if got[0].To != "charged" || got[1].To != "onBattery" || got[1].Seconds != 600 {
		t.Errorf("events = %+v", got)
	}
}
