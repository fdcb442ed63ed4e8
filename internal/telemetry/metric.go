package telemetry

import (
	"employeehub/config"
	"employeehub/internal/core"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metric struct
type Metric struct {
	HttpRequestsTotal      *prometheus.CounterVec
	HttpRequestDuration    *prometheus.HistogramVec
	ResponseSuccessTotal   *prometheus.CounterVec
	ResponseFailTotal      *prometheus.CounterVec
	EmployeeMutationsTotal *prometheus.CounterVec
	RateLimitedTotal       *prometheus.CounterVec
	config                 *config.Configuration
}

// NewMetric 建立所有指標
func NewMetric(config *config.Configuration) *Metric {
	if config == nil || !config.Telemetry.Metric.Enabled {
		return &Metric{}
	}
	buckets := prometheus.DefBuckets
	if len(config.Telemetry.Metric.Buckets) > 0 {
		buckets = config.Telemetry.Metric.Buckets
	}
	prefix := metricPrefix(config.App.Name)
	return &Metric{
		config: config,
		HttpRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + string(core.MetricHttpRequestsTotal),
				Help: "Total received API requests",
			},
			labelNames(core.MetricLabelEndpoint, core.MetricLabelStatus),
		),
		HttpRequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    prefix + string(core.MetricHttpRequestDuration),
				Help:    "API request duration (seconds)",
				Buckets: buckets,
			},
			labelNames(core.MetricLabelEndpoint),
		),
		ResponseSuccessTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + string(core.MetricResponseSuccessTotal),
				Help: "Successful responses written by the response middleware",
			},
			labelNames(core.MetricLabelEndpoint, core.MetricLabelStatus),
		),
		ResponseFailTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + string(core.MetricResponseFailTotal),
				Help: "Error responses written by the recovery middleware",
			},
			labelNames(core.MetricLabelReason),
		),
		EmployeeMutationsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + string(core.MetricEmployeeMutationTotal),
				Help: "Employee documents written, by operation",
			},
			labelNames(core.MetricLabelOp),
		),
		RateLimitedTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + string(core.MetricRateLimitTotal),
				Help: "Requests rejected by the rate limiter",
			},
			labelNames(core.MetricLabelEndpoint),
		),
	}
}

// IncEmployeeMutation 指標未啟用時為 no-op
func (m *Metric) IncEmployeeMutation(op string) {
	if m == nil || m.EmployeeMutationsTotal == nil {
		return
	}
	m.EmployeeMutationsTotal.WithLabelValues(op).Inc()
}

// labelNames helper: LabelName slice 轉成 []string
func labelNames(labels ...core.MetricLabelName) []string {
	strs := make([]string, len(labels))
	for i, l := range labels {
		strs[i] = string(l)
	}
	return strs
}

// Prometheus 指標名稱只允許 [a-zA-Z0-9_:]
func metricPrefix(name string) string {
	if name == "" {
		return ""
	}
	return strings.NewReplacer("-", "_", ".", "_", " ", "_").Replace(name) + "_"
}
