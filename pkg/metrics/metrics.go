package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/amoylab/sessiongate/internal/common/cnst"
	"github.com/amoylab/sessiongate/internal/common/config"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// route label used for requests that matched no registered route (proxy mode)
const routeUpstream = "/*upstream"

type Metrics struct {
	registry    *prometheus.Registry
	namespace   string
	httpReqCnt  *prometheus.CounterVec
	httpDur     *prometheus.HistogramVec
	httpInfl    *prometheus.GaugeVec
	decisionCnt *prometheus.CounterVec
	decisionDur *prometheus.HistogramVec
	lookupCnt   *prometheus.CounterVec
	lookupDur   *prometheus.HistogramVec
}

func New(cfg config.MetricsConfig) *Metrics {
	ns := cfg.Namespace
	r := prometheus.NewRegistry()
	// Register standard process and Go collectors
	r.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	r.MustRegister(collectors.NewGoCollector())

	httpReqCnt := prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: ns, Name: "http_requests_total"}, []string{"method", "route", "status"})
	httpDur := prometheus.NewHistogramVec(prometheus.HistogramOpts{Namespace: ns, Name: "http_request_duration_seconds", Buckets: cfg.Buckets}, []string{"method", "route", "status"})
	httpInfl := prometheus.NewGaugeVec(prometheus.GaugeOpts{Namespace: ns, Name: "http_requests_inflight"}, []string{"route"})
	r.MustRegister(httpReqCnt, httpDur, httpInfl)

	// code is the envelope code, or "OK" when the request was let through
	decisionCnt := prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: ns, Name: "auth_decisions_total"}, []string{"code"})
	decisionDur := prometheus.NewHistogramVec(prometheus.HistogramOpts{Namespace: ns, Name: "auth_decision_duration_seconds", Buckets: cfg.Buckets}, []string{"code"})
	r.MustRegister(decisionCnt, decisionDur)

	lookupCnt := prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: ns, Name: "session_lookups_total"}, []string{"store", "result"})
	lookupDur := prometheus.NewHistogramVec(prometheus.HistogramOpts{Namespace: ns, Name: "session_lookup_duration_seconds", Buckets: cfg.Buckets}, []string{"store", "result"})
	r.MustRegister(lookupCnt, lookupDur)

	return &Metrics{
		registry:    r,
		namespace:   ns,
		httpReqCnt:  httpReqCnt,
		httpDur:     httpDur,
		httpInfl:    httpInfl,
		decisionCnt: decisionCnt,
		decisionDur: decisionDur,
		lookupCnt:   lookupCnt,
		lookupDur:   lookupDur,
	}
}

// ObserveDecision records the outcome of one authentication decision
func (m *Metrics) ObserveDecision(code string, d time.Duration) {
	m.decisionCnt.WithLabelValues(code).Inc()
	m.decisionDur.WithLabelValues(code).Observe(d.Seconds())
}

// ObserveLookup records one session store round trip. result is found, missing or error.
func (m *Metrics) ObserveLookup(store, result string, d time.Duration) {
	m.lookupCnt.WithLabelValues(store, result).Inc()
	m.lookupDur.WithLabelValues(store, result).Observe(d.Seconds())
}

func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		route := c.FullPath()
		if route == "" {
			route = routeFromURL(c.Request.URL.Path)
		}
		m.httpInfl.WithLabelValues(route).Inc()
		start := time.Now()
		c.Next()
		status := httpStatus(c.Writer.Status())
		m.httpReqCnt.WithLabelValues(c.Request.Method, route, status).Inc()
		m.httpDur.WithLabelValues(c.Request.Method, route, status).Observe(time.Since(start).Seconds())
		m.httpInfl.WithLabelValues(route).Dec()
	}
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry exposes the underlying registry, mostly for tests
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// proxied paths are unbounded, collapse them into one label value
func routeFromURL(path string) string {
	switch path {
	case cnst.PathHealthCheck, cnst.PathVerify:
		return path
	default:
		return routeUpstream
	}
}

func httpStatus(code int) string { return strconv.Itoa(code) }
