package database

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/janisto/trail-profiles/internal/platform/metrics"
)

// Op times a single storage operation.
type Op struct {
	name  string
	timer *prometheus.Timer
}

// Track starts timing the named operation. Defer Done on the result.
func Track(name string) *Op {
	return &Op{
		name:  name,
		timer: prometheus.NewTimer(metrics.DBOperationDuration.WithLabelValues(name)),
	}
}

// Done records the elapsed time.
func (o *Op) Done() {
	o.timer.ObserveDuration()
}

// Fail counts a storage error against the operation and returns err.
func (o *Op) Fail(err error) error {
	if err != nil {
		metrics.DBOperationErrorsTotal.WithLabelValues(o.name).Inc()
	}
	return err
}
