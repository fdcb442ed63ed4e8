package middleware

import (
	"net"
	"strconv"
	"time"

	"employeehub/config"
	"employeehub/internal/core"
	"employeehub/internal/telemetry"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

type TraceEntry struct {
	trace  *telemetry.Trace
	metric *telemetry.Metric
	conf   *config.Configuration
}

func NewTraceEntry(trace *telemetry.Trace, metric *telemetry.Metric, conf *config.Configuration) *TraceEntry {
	return &TraceEntry{trace: trace, metric: metric, conf: conf}
}

// Handler 建立 server span（沿用上游 traceparent / X-Cloud-Trace-Context）並記錄請求指標
func (m *TraceEntry) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		endpoint := c.FullPath()
		if isOperationalPath(endpoint) {
			c.Next()
			return
		}
		if endpoint == "" {
			endpoint = "unmatched"
		}

		carrier := propagation.HeaderCarrier(c.Request.Header)
		ctx := otel.GetTextMapPropagator().Extract(c.Request.Context(), carrier)
		spanName := c.Request.Method + " " + endpoint
		ctx, span := m.trace.StartSpanForLayer(ctx, core.TraceSpanName(spanName), trace.WithSpanKind(trace.SpanKindServer))
		c.Request = c.Request.WithContext(ctx)
		c.Set(core.ContextTraceKey, ctx)

		// 計時
		start := time.Now().UTC()
		if _, exists := c.Get(contextRequestTimeKey); !exists {
			c.Set(contextRequestTimeKey, start)
		}

		// peer ip:port
		peerAddr, peerPort := "", 0
		if host, port, err := net.SplitHostPort(c.Request.RemoteAddr); err == nil {
			peerAddr = host
			if p, err2 := strconv.Atoi(port); err2 == nil {
				peerPort = p
			}
		} else {
			peerAddr = c.ClientIP()
		}

		meta := core.TraceHttpServerMeta{
			ClientAddr:        c.ClientIP(),
			HttpRequestMethod: c.Request.Method,
			HttpRoute:         endpoint,
			UrlPath:           c.Request.URL.Path,
			UrlScheme: func() string {
				if c.Request.TLS != nil {
					return "https"
				}
				return "http"
			}(),
			UserAgent:       c.Request.UserAgent(),
			ServerAddress:   m.conf.App.Name,
			NetworkPeerAddr: peerAddr,
			NetworkPeerPort: peerPort,
			NetworkProtoVer: c.Request.Proto,
			SpanKind:        trace.SpanKindServer.String(),
			SpanTraceID:     span.SpanContext().TraceID().String(),
		}
		m.trace.ApplyTraceAttributes(span, &meta)

		c.Next()

		statusCode := c.Writer.Status()
		meta.HttpStatusCode = statusCode
		m.trace.ApplyTraceAttributes(span, &meta) // 補上 status

		var spanErr error
		if statusCode >= 500 && len(c.Errors) > 0 {
			spanErr = c.Errors.Last().Err
		}

		if m.metric.HttpRequestsTotal != nil && m.metric.HttpRequestDuration != nil {
			duration := time.Since(start)
			m.metric.HttpRequestsTotal.WithLabelValues(endpoint, strconv.Itoa(statusCode)).Inc()
			m.metric.HttpRequestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
		}
		m.trace.EndSpan(span, spanErr)
	}
}
