package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	UsersRegistered prometheus.Counter
	Logins          prometheus.Counter
	LeavesCreated   prometheus.Counter
	LeaveDecisions  *prometheus.CounterVec
	RequestLatency  *prometheus.HistogramVec
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		UsersRegistered: promauto.NewCounter(prometheus.CounterOpts{
			Name: "leavedesk_users_registered_total",
			Help: "Total number of users registered in the system",
		}),
		Logins: promauto.NewCounter(prometheus.CounterOpts{
			Name: "leavedesk_logins_total",
			Help: "Total number of successful logins",
		}),
		LeavesCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "leavedesk_leave_requests_created_total",
			Help: "Total number of leave requests created",
		}),
		LeaveDecisions: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "leavedesk_leave_decisions_total",
			Help: "Total number of leave status decisions by outcome",
		}, []string{"status"}),
		RequestLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "leavedesk_http_request_duration_seconds",
			Help:    "Latency of HTTP requests by path and status",
			Buckets: prometheus.DefBuckets,
		}, []string{"path", "status"}),
	}
}

// IncrementUsersRegistered increments the registered-users counter by 1.
func (m *Metrics) IncrementUsersRegistered() {
	if m == nil {
		return
	}
	m.UsersRegistered.Inc()
}

// IncrementLogins increments the successful-logins counter by 1.
func (m *Metrics) IncrementLogins() {
	if m == nil {
		return
	}
	m.Logins.Inc()
}

// IncrementLeavesCreated increments the created-leaves counter by 1.
func (m *Metrics) IncrementLeavesCreated() {
	if m == nil {
		return
	}
	m.LeavesCreated.Inc()
}

// IncrementLeaveDecision counts a status decision ("approved" or "rejected").
func (m *Metrics) IncrementLeaveDecision(status string) {
	if m == nil {
		return
	}
	m.LeaveDecisions.WithLabelValues(status).Inc()
}

// ObserveRequestLatency records one request's duration.
func (m *Metrics) ObserveRequestLatency(path, status string, d time.Duration) {
	if m == nil {
		return
	}
	m.RequestLatency.WithLabelValues(path, status).Observe(d.Seconds())
}
