package daemon

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/charlie0129/powerstate"
	"github.com/charlie0129/powerstate/pkg/config"
	"github.com/charlie0129/powerstate/pkg/events"
	"github.com/charlie0129/powerstate/pkg/powerinfo"
	"github.com/charlie0129/powerstate/pkg/provider"
)

// Daemon polls a power source provider and serves the result over HTTP.
type Daemon struct {
	// pollMu orders polls so published transitions form a chain.
	pollMu sync.Mutex

	mu       sync.RWMutex
	conf     config.Config
	src      provider.PowerSourceProvider
	last     powerinfo.PowerInfo
	lastPoll time.Time

	hub     *events.EventHub
	metrics *metrics

	done      chan struct{}
	closeOnce sync.Once
}

// New creates a Daemon using the provider named in conf.
func New(conf config.Config) (*Daemon, error) {
	src, err := provider.New(conf.Provider(), conf.ProviderOptions())
	if err != nil {
		return nil, err
	}

	return NewWithProvider(conf, src), nil
}

// NewWithProvider creates a Daemon that queries src.
func NewWithProvider(conf config.Config, src provider.PowerSourceProvider) *Daemon {
	return &Daemon{
		conf:    conf,
		src:     src,
		hub:     events.NewEventHub(),
		metrics: newMetrics(),
		done:    make(chan struct{}),
	}
}

// Close ends all event streams.
func (d *Daemon) Close() {
	d.closeOnce.Do(func() {
		close(d.done)
	})
}

func (d *Daemon) setupRoutes() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(ginLogger(logrus.StandardLogger()))
	router.GET("/power-state", d.getPowerState)
	router.GET("/power-sources", d.getPowerSources)
	router.GET("/config", d.getConfig)
	router.GET("/version", getVersion)
	router.GET("/events", d.streamEvents)
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(d.metrics.registry, promhttp.HandlerOpts{})))

	return router
}

func (d *Daemon) currentProvider() provider.PowerSourceProvider {
	d.mu.RLock()
	defer d.mu.RUnlock()

	return d.src
}

// Last returns the result of the most recent poll and when it happened.
func (d *Daemon) Last() (powerinfo.PowerInfo, time.Time) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	return d.last, d.lastPoll
}

// Poll queries the provider once, updates metrics and publishes a
// power.state event if the summary changed. A failed query counts as
// powerinfo.Unknown.
func (d *Daemon) Poll(ctx context.Context) (powerstate.Snapshot, error) {
	d.pollMu.Lock()
	defer d.pollMu.Unlock()

	snap, err := powerstate.Take(ctx, d.currentProvider())
	if err != nil {
		d.metrics.queryErrors.Inc()
		logrus.WithField("provider", snap.Provider).Errorf("failed to list power sources: %v", err)
		snap.Sources = nil
		snap.Info = powerinfo.PowerInfo{}
	}

	d.observe(snap)

	return snap, err
}

func (d *Daemon) observe(snap powerstate.Snapshot) {
	d.mu.Lock()
	prev := d.last
	d.last = snap.Info
	d.lastPoll = time.Now()
	d.mu.Unlock()

	d.metrics.observe(snap)

	fields := logrus.Fields{
		"provider": snap.Provider,
		"state":    snap.Info.State,
		"seconds":  snap.Info.Seconds,
		"percent":  snap.Info.Percent,
	}

	if prev == snap.Info {
		logrus.WithFields(fields).Trace("power state unchanged")
		return
	}

	logrus.WithFields(fields).Debug("power state changed")
	d.hub.Publish(events.PowerState, events.PowerStateEvent{
		From:    prev.State.String(),
		To:      snap.Info.State.String(),
		Seconds: snap.Info.Seconds,
		Percent: snap.Info.Percent,
		Ts:      time.Now().Unix(),
	})
}

func (d *Daemon) pollLoop(ctx context.Context) {
	for {
		_, _ = d.Poll(ctx)

		interval := time.Duration(d.conf.PollIntervalSeconds()) * time.Second
		select {
		case <-ctx.Done():
			return
		case <-time.After(interval):
		}
	}
}

// Reload re-reads the config and recreates the provider. The old provider
// is kept when the new one cannot be created.
func (d *Daemon) Reload() error {
	if err := d.conf.Load(); err != nil {
		return pkgerrors.Wrap(err, "failed to reload config")
	}

	src, err := provider.New(d.conf.Provider(), d.conf.ProviderOptions())
	if err != nil {
		return pkgerrors.Wrap(err, "failed to create provider")
	}

	d.mu.Lock()
	d.src = src
	d.mu.Unlock()

	return nil
}

func Run(conf config.Config, unixSocketPath string, allowNonRoot bool) error {
	d, err := New(conf)
	if err != nil {
		return err
	}
	logrus.WithFields(conf.LogrusFields()).WithField("resolvedProvider", d.currentProvider().Name()).Infof("config loaded")

	router := d.setupRoutes()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Receive SIGHUP to reload config
	go func() {
		sigc := make(chan os.Signal, 1)
		signal.Notify(sigc, syscall.SIGHUP)
		for range sigc {
			if err := d.Reload(); err != nil {
				logrus.Errorf("%v", err)
				continue
			}
			logrus.WithFields(conf.LogrusFields()).Infof("config reloaded")
			_, _ = d.Poll(ctx)
		}
	}()

	srv := &http.Server{
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// A stale socket is left behind if the daemon was killed.
	if err := os.Remove(unixSocketPath); err != nil && !os.IsNotExist(err) {
		return pkgerrors.Wrapf(err, "failed to remove stale socket %s", unixSocketPath)
	}

	l, err := net.Listen("unix", unixSocketPath)
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to listen on %s", unixSocketPath)
	}

	if conf.AllowNonRootAccess() || allowNonRoot {
		logrus.Infof("non-root access is allowed, changing permissions of %s to 0777", unixSocketPath)
		err = os.Chmod(unixSocketPath, 0777)
		if err != nil {
			return pkgerrors.Wrapf(err, "failed to chmod %s", unixSocketPath)
		}
	}

	go func() {
		logrus.Infof("http server listening on %s", l.Addr().String())
		if err := srv.Serve(l); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Fatal(err)
		}
	}()

	go func() {
		logrus.Debugln("poll loop starts")
		d.pollLoop(ctx)
		logrus.Debugln("poll loop stopped")
	}()

	// Handle common process-killing signals, so we can gracefully shut down:
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigc
	logrus.Infof("caught signal \"%s\": shutting down.", sig)

	cancel()
	d.Close()

	logrus.Info("shutting down http server")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logrus.Errorf("failed to shutdown http server: %v", err)
	}

	logrus.Info("exiting")
	return nil
}
