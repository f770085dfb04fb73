// Package metrics owns the portal's Prometheus registry. Every recording
// method is safe on a nil *Metrics so services can run without it.
package metrics

import (
	"database/sql"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "portal"

type Metrics struct {
	Registry *prometheus.Registry

	requestDuration *prometheus.HistogramVec
	invitations     *prometheus.CounterVec
	setups          *prometheus.CounterVec
	emails          *prometheus.CounterVec
	logins          *prometheus.CounterVec
	approvals       prometheus.Counter
	clicks          prometheus.Counter
	conversions     prometheus.Counter
}

// New registers the portal collectors plus the standard process and Go
// collectors. db may be nil; when set its pool stats are exported too.
func New(version string, db *sql.DB) *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		Registry: reg,
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "http",
			Name:      "request_duration_seconds",
			Help:      "A histogram of duration, in seconds, handling HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 15),
		}, []string{"method", "path", "status"}),
		invitations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "invitations_issued_total",
			Help:      "Invitation tokens issued, by account kind.",
		}, []string{"kind"}),
		setups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "setups_completed_total",
			Help:      "Invitation setups completed, by account kind.",
		}, []string{"kind"}),
		emails: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "emails_total",
			Help:      "Transactional emails by template and result.",
		}, []string{"template", "result"}),
		logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "logins_total",
			Help:      "Login attempts by account kind and outcome.",
		}, []string{"kind", "outcome"}),
		approvals: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "member_approvals_total",
			Help:      "Members moved from pending to approved.",
		}),
		clicks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "affiliate_clicks_total",
			Help:      "Tracked referral clicks.",
		}),
		conversions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "affiliate_conversions_total",
			Help:      "Recorded affiliate conversions.",
		}),
	}

	reg.MustRegister(
		m.requestDuration,
		m.invitations,
		m.setups,
		m.emails,
		m.logins,
		m.approvals,
		m.clicks,
		m.conversions,
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewGoCollector(),
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name:        "build_info",
			Help:        "A metric with a constant '1' value labeled by the portal version.",
			ConstLabels: prometheus.Labels{"version": version},
		}, func() float64 { return 1 }),
	)
	if db != nil {
		reg.MustRegister(collectors.NewDBStatsCollector(db, "sqlite"))
	}
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.InstrumentMetricHandler(m.Registry, promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{}))
}

// Middleware observes request_duration_seconds. It must wrap the ServeMux
// directly so the matched pattern is visible after the call.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	if m == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(sw, r)

		path := r.Pattern
		if path == "" {
			path = "unmatched"
		}
		m.requestDuration.With(prometheus.Labels{
			"method": r.Method,
			"path":   path,
			"status": strconv.Itoa(sw.status),
		}).Observe(time.Since(start).Seconds())
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Unwrap() http.ResponseWriter { return w.ResponseWriter }

func (m *Metrics) InvitationIssued(kind string) {
	if m == nil {
		return
	}
	m.invitations.WithLabelValues(kind).Inc()
}

func (m *Metrics) SetupCompleted(kind string) {
	if m == nil {
		return
	}
	m.setups.WithLabelValues(kind).Inc()
}

// EmailResult implements notify.Recorder.
func (m *Metrics) EmailResult(template string, err error) {
	if m == nil {
		return
	}
	result := "sent"
	if err != nil {
		result = "failed"
	}
	m.emails.WithLabelValues(template, result).Inc()
}

func (m *Metrics) Login(kind, outcome string) {
	if m == nil {
		return
	}
	m.logins.WithLabelValues(kind, outcome).Inc()
}

func (m *Metrics) MembersApproved(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.approvals.Add(float64(n))
}

func (m *Metrics) ClickTracked() {
	if m == nil {
		return
	}
	m.clicks.Inc()
}

func (m *Metrics) ConversionRecorded() {
	if m == nil {
		return
	}
	m.conversions.Inc()
}
