package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	EntriesAppended = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "guestbook", Name: "entries_appended_total", Help: "Number of guestbook entries persisted."},
	)
	AppendFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "guestbook", Name: "append_failures_total", Help: "Number of rejected or failed appends by reason."},
		[]string{"reason"},
	)
	StoreLoadErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "guestbook", Name: "store_load_errors_total", Help: "Number of store reads that degraded to an empty document."},
		[]string{"backend"},
	)
	RateLimitAllowed = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "guestbook", Name: "rate_limit_allowed_total", Help: "Number of allowed requests by limiter type."},
		[]string{"limiter"},
	)
	RateLimitRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "guestbook", Name: "rate_limit_rejected_total", Help: "Number of rejected requests by limiter type."},
		[]string{"limiter"},
	)
)

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(EntriesAppended)
	reg.MustRegister(AppendFailures)
	reg.MustRegister(StoreLoadErrors)
	reg.MustRegister(RateLimitAllowed)
	reg.MustRegister(RateLimitRejected)
}
