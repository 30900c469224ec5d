// Package metrics counts what happens during one run of the parking CLI and
// writes the result in the Prometheus text format for a node-exporter
// textfile collector.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"parking-cli/parking"
)

const (
	OutcomeAssigned = "assigned"
	OutcomeFallback = "fallback"
	OutcomeNoSpace  = "no_space"
)

type Recorder struct {
	registry *prometheus.Registry
	attempts *prometheus.CounterVec
	saves    prometheus.Counter
	resets   prometheus.Counter
	used     *prometheus.GaugeVec
}

func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		attempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "parking_booking_attempts_total",
			Help: "Booking attempts by requested space type and outcome.",
		}, []string{"request", "outcome"}),
		saves: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "parking_saves_total",
			Help: "Snapshots written to the storage backend.",
		}),
		resets: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "parking_resets_total",
			Help: "Resets of the two-week allotment.",
		}),
		used: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "parking_spaces_used",
			Help: "Spaces used over the two-week allotment at the last save.",
		}, []string{"kind"}),
	}
	r.registry.MustRegister(r.attempts, r.saves, r.resets, r.used)
	return r
}

func (r *Recorder) BookingAttempt(accessible bool, outcome string) {
	request := "general"
	if accessible {
		request = "accessible"
	}
	r.attempts.WithLabelValues(request, outcome).Inc()
}

func (r *Recorder) Saved(report parking.Report) {
	r.saves.Inc()
	r.used.WithLabelValues("accessible").Set(float64(report.Accessible))
	r.used.WithLabelValues("general").Set(float64(report.General))
}

func (r *Recorder) GridReset() {
	r.resets.Inc()
}

// WriteTextfile writes every metric to path, replacing the file atomically.
func (r *Recorder) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.registry)
}
