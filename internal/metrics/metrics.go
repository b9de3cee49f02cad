// Package metrics exposes Prometheus collectors for the engine, the
// evaluation cache and the HTTP API.
package metrics

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dustin-aeria/muster-sub008/pkg/sora"
)

// Collector bundles the soractl metrics. It satisfies memo.Observer.
type Collector struct {
	gatherer prometheus.Gatherer

	Evaluations   *prometheus.CounterVec
	CacheLookups  *prometheus.CounterVec
	HTTPRequests  *prometheus.CounterVec
	HTTPDurations *prometheus.HistogramVec
	ProjectSAIL   *prometheus.GaugeVec
}

// New registers the collectors against reg, defaulting to the global
// registry when nil. Registering twice against the same registry returns
// the existing collectors.
func New(reg prometheus.Registerer) (*Collector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	evaluations, err := register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "sora_site_evaluations_total",
		Help: "Site evaluations computed, labeled by result status.",
	}, []string{"status"}), "sora_site_evaluations_total")
	if err != nil {
		return nil, err
	}

	lookups, err := register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "sora_cache_lookups_total",
		Help: "Evaluation cache lookups, labeled by hit or miss.",
	}, []string{"result"}), "sora_cache_lookups_total")
	if err != nil {
		return nil, err
	}

	requests, err := register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "sora_http_requests_total",
		Help: "Handled API requests, labeled by method, route and status code.",
	}, []string{"method", "route", "code"}), "sora_http_requests_total")
	if err != nil {
		return nil, err
	}

	durations, err := register(reg, prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "sora_http_request_duration_seconds",
		Help:    "API request latency in seconds.",
		Buckets: []float64{0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
	}, []string{"method", "route"}), "sora_http_request_duration_seconds")
	if err != nil {
		return nil, err
	}

	projectSAIL, err := register(reg, prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "sora_project_sail_rank",
		Help: "Rank of the last summarized project SAIL (1-6, 7 for out of scope, 0 unresolved).",
	}, []string{"project"}), "sora_project_sail_rank")
	if err != nil {
		return nil, err
	}

	return &Collector{
		gatherer:      gatherer,
		Evaluations:   evaluations,
		CacheLookups:  lookups,
		HTTPRequests:  requests,
		HTTPDurations: durations,
		ProjectSAIL:   projectSAIL,
	}, nil
}

func (c *Collector) CacheHit() {
	if c == nil {
		return
	}
	c.CacheLookups.WithLabelValues("hit").Inc()
}

func (c *Collector) CacheMiss() {
	if c == nil {
		return
	}
	c.CacheLookups.WithLabelValues("miss").Inc()
}

func (c *Collector) Evaluated(status sora.Status) {
	if c == nil {
		return
	}
	c.Evaluations.WithLabelValues(string(status)).Inc()
}

// ObserveSummary records the project-level SAIL rank.
func (c *Collector) ObserveSummary(projectID string, sum sora.ProjectSummary) {
	if c == nil {
		return
	}
	c.ProjectSAIL.WithLabelValues(projectID).Set(float64(sum.SAIL.Rank()))
}

// Middleware records request counts and durations. Unmatched routes are
// labeled "unmatched" to keep label cardinality bounded.
func (c *Collector) Middleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()
		ctx.Next()

		if c == nil {
			return
		}
		route := ctx.FullPath()
		if route == "" {
			route = "unmatched"
		}
		method := ctx.Request.Method
		c.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(ctx.Writer.Status())).Inc()
		c.HTTPDurations.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
	}
}

// Handler exposes a ready-to-use /metrics handler.
func (c *Collector) Handler() http.Handler {
	gatherer := prometheus.DefaultGatherer
	if c != nil && c.gatherer != nil {
		gatherer = c.gatherer
	}
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

func register[T prometheus.Collector](reg prometheus.Registerer, col T, name string) (T, error) {
	if err := reg.Register(col); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(T); ok {
				return existing, nil
			}
			var zero T
			return zero, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		var zero T
		return zero, err
	}
	return col, nil
}
