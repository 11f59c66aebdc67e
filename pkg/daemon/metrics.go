package daemon

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/charlie0129/powerstate"
	"github.com/charlie0129/powerstate/pkg/powerinfo"
)

const metricsNamespace = "powerstate"

var allStates = []powerinfo.State{
	powerinfo.Unknown,
	powerinfo.NoBattery,
	powerinfo.Charging,
	powerinfo.Charged,
	powerinfo.OnBattery,
}

type metrics struct {
	registry *prometheus.Registry

	state       *prometheus.GaugeVec
	seconds     prometheus.Gauge
	percent     prometheus.Gauge
	sources     prometheus.Gauge
	polls       prometheus.Counter
	queryErrors prometheus.Counter
}

func newMetrics() *metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &metrics{
		registry: reg,
		state: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "state",
			Help:      "1 for the current power state, 0 otherwise.",
		}, []string{"state"}),
		seconds: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "seconds_remaining",
			Help:      "Estimated seconds until empty (or full while charging), -1 if unknown.",
		}),
		percent: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "percent_remaining",
			Help:      "Estimated battery charge in percent, -1 if unknown.",
		}),
		sources: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "sources",
			Help:      "Number of power sources reported by the provider.",
		}),
		polls: factory.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "polls_total",
			Help:      "Total power source queries.",
		}),
		queryErrors: factory.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "query_errors_total",
			Help:      "Total failed power source queries.",
		}),
	}
}

func (m *metrics) observe(snap powerstate.Snapshot) {
	m.polls.Inc()
	for _, s := range allStates {
		v := 0.0
		if s == snap.Info.State {
			v = 1
		}
		m.state.WithLabelValues(s.String()).Set(v)
	}
	m.sources.Set(float64(len(snap.Sources)))

	if snap.Info.State == powerinfo.Unknown {
		m.seconds.Set(powerinfo.UnknownValue)
		m.percent.Set(powerinfo.UnknownValue)
		return
	}
	m.seconds.Set(float64(snap.Info.Seconds))
	m.percent.Set(float64(snap.Info.Percent))
}
