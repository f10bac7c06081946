// Package metrics exposes the service's Prometheus metrics: outcomes of the
// task reconciler, rejected lifecycle and gate changes, HTTP request latency
// and database pool statistics. Everything is registered on a private registry.
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

const namespace = "mes"

// Recorder implements commands.Recorder and records HTTP requests.
type Recorder struct {
	registry *prometheus.Registry

	splits        prometheus.Counter
	splitFailures prometheus.Counter
	tasksCreated  prometheus.Counter
	tasksDeleted  prometheus.Counter
	rejections    *prometheus.CounterVec
	requests      *prometheus.HistogramVec
}

func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		splits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "work_order_splits_total",
			Help:      "Committed task reconciliations.",
		}),
		splitFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "work_order_split_failures_total",
			Help:      "Task reconciliations that failed and were rolled back.",
		}),
		tasksCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tasks_created_total",
			Help:      "Tasks created by the reconciler.",
		}),
		tasksDeleted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tasks_deleted_total",
			Help:      "Tasks deleted by the reconciler.",
		}),
		rejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rule_rejections_total",
			Help:      "Changes rejected by a business rule, by operation.",
		}, []string{"operation"}),
		requests: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route and status.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}

	r.registry.MustRegister(
		r.splits,
		r.splitFailures,
		r.tasksCreated,
		r.tasksDeleted,
		r.rejections,
		r.requests,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return r
}

// RegisterDB adds connection pool statistics of db.
func (r *Recorder) RegisterDB(db *sql.DB, name string) error {
	return r.registry.Register(collectors.NewDBStatsCollector(db, name))
}

func (r *Recorder) RecordSplit(created, deleted int) {
	r.splits.Inc()
	r.tasksCreated.Add(float64(created))
	r.tasksDeleted.Add(float64(deleted))
}

func (r *Recorder) RecordSplitFailure() {
	r.splitFailures.Inc()
}

func (r *Recorder) RecordRejection(operation string) {
	r.rejections.WithLabelValues(operation).Inc()
}

// RecordRequest observes one HTTP request. route is the matched path template.
func (r *Recorder) RecordRequest(method, route string, status int, elapsed time.Duration) {
	r.requests.WithLabelValues(method, route, strconv.Itoa(status)).Observe(elapsed.Seconds())
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}

// Registry is exposed for tests.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}
