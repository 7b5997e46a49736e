package bookingbus

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Admission outcomes recorded by the admissions counter.
const (
	outcomeAdmitted     = "admitted"
	outcomeInvalidRange = "invalid_range"
	outcomeRoomRejected = "room_rejected"
	outcomeConflict     = "conflict"
	outcomeError        = "error"
)

var (
	admissions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "smartroom",
		Subsystem: "booking",
		Name:      "admissions_total",
		Help:      "Booking admission attempts by outcome.",
	}, []string{"outcome"})

	lockWait = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "smartroom",
		Subsystem: "booking",
		Name:      "scope_lock_wait_seconds",
		Help:      "Time spent waiting for the per scope admission lock.",
		Buckets:   []float64{.0005, .001, .005, .01, .05, .1, .5, 1},
	})
)
