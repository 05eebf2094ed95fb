package csrf

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

// Validation outcomes used as the "result" label.
const (
	ResultOK      = "ok"
	ResultInvalid = "invalid"
	ResultExpired = "expired"
)

// Metrics exposes the store's activity as Prometheus collectors.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	issued      prometheus.Counter
	validations *prometheus.CounterVec
	swept       prometheus.Counter
	active      prometheus.Gauge
}

// NewMetrics creates the collectors and registers them with reg when non-nil.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		issued: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "csrf",
			Name:      "tokens_issued_total",
			Help:      "Number of CSRF tokens issued.",
		}),
		validations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "csrf",
			Name:      "validations_total",
			Help:      "Number of token validations by result.",
		}, []string{"result"}),
		swept: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "csrf",
			Name:      "tokens_swept_total",
			Help:      "Number of idle tokens removed by the background sweep.",
		}),
		active: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "csrf",
			Name:      "tokens_active",
			Help:      "Tokens currently held in the store, including expired ones not yet swept.",
		}),
	}
	if reg != nil {
		reg.MustRegister(m.issued, m.validations, m.swept, m.active)
	}
	return m
}

func (m *Metrics) observeIssue(live int) {
	if m == nil {
		return
	}
	m.issued.Inc()
	m.active.Set(float64(live))
}

func (m *Metrics) observeValidation(err error) {
	if m == nil {
		return
	}
	m.validations.WithLabelValues(resultOf(err)).Inc()
}

func (m *Metrics) observeSweep(removed, live int) {
	if m == nil {
		return
	}
	m.swept.Add(float64(removed))
	m.active.Set(float64(live))
}

func resultOf(err error) string {
	switch {
	case err == nil:
		return ResultOK
	case errors.Is(err, ErrSessionExpired):
		return ResultExpired
	default:
		return ResultInvalid
	}
}
