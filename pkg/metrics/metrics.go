package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Outcome labels for a gh invocation.
const (
	OutcomeOK        = "ok"
	OutcomeExecError = "exec_error"
	OutcomeDecode    = "decode_error"
)

// Recorder keeps per-run instrumentation of gh invocations on a private registry.
type Recorder struct {
	registry     *prometheus.Registry
	callTotal    *prometheus.CounterVec
	callDuration *prometheus.HistogramVec
	rateRemain   prometheus.Gauge
}

// NewRecorder registers the collectors. runID becomes a constant label so dumps
// from different runs can be told apart.
func NewRecorder(runID string) *Recorder {
	registry := prometheus.NewRegistry()
	constLabels := prometheus.Labels{}
	if runID != "" {
		constLabels["run_id"] = runID
	}

	callTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name:        "gh_api_calls_total",
		Help:        "Total number of gh api invocations",
		ConstLabels: constLabels,
	}, []string{"endpoint", "outcome"})

	callDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:        "gh_api_call_duration_seconds",
		Help:        "Wall time of gh api invocations in seconds",
		Buckets:     prometheus.DefBuckets,
		ConstLabels: constLabels,
	}, []string{"endpoint"})

	rateRemain := prometheus.NewGauge(prometheus.GaugeOpts{
		Name:        "gh_rate_limit_remaining",
		Help:        "Last observed remaining core rate limit",
		ConstLabels: constLabels,
	})

	registry.MustRegister(callTotal, callDuration, rateRemain)

	return &Recorder{
		registry:     registry,
		callTotal:    callTotal,
		callDuration: callDuration,
		rateRemain:   rateRemain,
	}
}

// ObserveCall records one gh invocation.
func (r *Recorder) ObserveCall(endpoint, outcome string, d time.Duration) {
	if r == nil {
		return
	}
	r.callTotal.WithLabelValues(endpoint, outcome).Inc()
	r.callDuration.WithLabelValues(endpoint).Observe(d.Seconds())
}

// SetRateRemaining records the most recent rate-limit reading.
func (r *Recorder) SetRateRemaining(remaining int) {
	if r == nil {
		return
	}
	r.rateRemain.Set(float64(remaining))
}

// Registry exposes the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// WriteTextfile dumps the collected metrics in the node_exporter textfile format.
func (r *Recorder) WriteTextfile(path string) error {
	if r == nil || path == "" {
		return nil
	}
	return prometheus.WriteToTextfile(path, r.registry)
}
