package client

import (
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// metrics records request outcomes. A nil *metrics records nothing.
type metrics struct {
	requests      *prometheus.CounterVec
	duration      *prometheus.HistogramVec
	uploadedBytes prometheus.Counter
}

func newMetrics(reg prometheus.Registerer) (*metrics, error) {
	requests, err := register(reg, prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hermes_requests_total",
			Help: "Total requests by method and outcome",
		},
		[]string{"method", "outcome"},
	))
	if err != nil {
		return nil, err
	}

	duration, err := register(reg, prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "hermes_request_duration_seconds",
			Help:    "Duration of requests from dispatch to body read",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method"},
	))
	if err != nil {
		return nil, err
	}

	uploaded, err := register(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "hermes_uploaded_bytes_total",
		Help: "Total bytes of successful uploads",
	}))
	if err != nil {
		return nil, err
	}

	m := metrics{
		requests:      requests,
		duration:      duration,
		uploadedBytes: uploaded,
	}

	return &m, nil
}

// register registers c with reg, reusing an identical collector
// registered by another client.
func register[T prometheus.Collector](reg prometheus.Registerer, c T) (T, error) {
	err := reg.Register(c)
	if err == nil {
		return c, nil
	}

	var are prometheus.AlreadyRegisteredError
	if errors.As(err, &are) {
		if existing, ok := are.ExistingCollector.(T); ok {
			return existing, nil
		}
	}

	var zero T
	return zero, fmt.Errorf("registering collector: %w", err)
}

// outcome is "success" or the kind of the returned NetworkError.
func outcome(err error) string {
	if err == nil {
		return "success"
	}

	var nerr *NetworkError
	if errors.As(err, &nerr) {
		return nerr.Kind.String()
	}
	return KindUnknown.String()
}

func (m *metrics) observe(method string, err error, d time.Duration) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(method, outcome(err)).Inc()
	m.duration.WithLabelValues(method).Observe(d.Seconds())
}

func (m *metrics) uploaded(n int) {
	if m == nil {
		return
	}
	m.uploadedBytes.Add(float64(n))
}
