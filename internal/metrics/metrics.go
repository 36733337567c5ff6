package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Metrics 汇总服务暴露的 Prometheus 指标
type Metrics struct {
	Registry           *prometheus.Registry
	StoreWriteFailures prometheus.Counter
	Actions            *prometheus.CounterVec
	HTTPRequests       *prometheus.CounterVec
	HTTPDuration       *prometheus.HistogramVec
}

// New 创建独立的 registry 并注册全部指标
func New() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	m := &Metrics{
		Registry: registry,
		StoreWriteFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "wellcampus_store_write_failures_total",
			Help: "Slot writes that failed to encode or persist.",
		}),
		Actions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "wellcampus_actions_total",
			Help: "Dashboard actions by name and outcome.",
		}, []string{"action", "outcome"}),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "wellcampus_http_requests_total",
			Help: "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "wellcampus_http_request_duration_seconds",
			Help:    "HTTP request latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}

	registry.MustRegister(m.StoreWriteFailures, m.Actions, m.HTTPRequests, m.HTTPDuration)
	return m
}

// ObserveAction 记录一次业务动作的结果
func (m *Metrics) ObserveAction(action, outcome string) {
	if m == nil {
		return
	}
	m.Actions.WithLabelValues(action, outcome).Inc()
}
