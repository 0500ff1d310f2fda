package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus metrics for the session service.
type Metrics struct {
	SignUps               prometheus.Counter
	SignIns               prometheus.Counter
	SignInFailures        prometheus.Counter
	SignOuts              prometheus.Counter
	ProfileUpdates        prometheus.Counter
	SnapshotWriteFailures prometheus.Counter
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		SignUps: promauto.NewCounter(prometheus.CounterOpts{
			Name: "kaziid_signups_total",
			Help: "Total number of identities created through sign-up",
		}),
		SignIns: promauto.NewCounter(prometheus.CounterOpts{
			Name: "kaziid_signins_total",
			Help: "Total number of successful sign-ins",
		}),
		SignInFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "kaziid_signin_failures_total",
			Help: "Total number of rejected sign-in attempts",
		}),
		SignOuts: promauto.NewCounter(prometheus.CounterOpts{
			Name: "kaziid_signouts_total",
			Help: "Total number of sign-outs",
		}),
		ProfileUpdates: promauto.NewCounter(prometheus.CounterOpts{
			Name: "kaziid_profile_updates_total",
			Help: "Total number of profile merges applied",
		}),
		SnapshotWriteFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "kaziid_snapshot_write_failures_total",
			Help: "Snapshot writes that failed after the in-memory state was updated",
		}),
	}
}
