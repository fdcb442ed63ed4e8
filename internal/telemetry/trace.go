package telemetry

import (
	"context"
	"fmt"
	"runtime"
	"strings"
	"time"

	"employeehub/config"
	"employeehub/internal/core"

	gcppropagator "github.com/GoogleCloudPlatform/opentelemetry-operations-go/propagator"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.34.0"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// Trace 包住 TracerProvider；零值即為 noop，測試可直接使用 &Trace{}
type Trace struct {
	TracerProvider *sdktrace.TracerProvider
	ServiceName    string
}

func NewTrace(conf *config.Configuration) (*Trace, func(), error) {
	if conf == nil || !conf.Telemetry.Trace.Enabled {
		return &Trace{}, func() {}, nil
	}
	exporter, err := newExporter(conf.Telemetry.Trace.EndpointUrl)
	if err != nil {
		return nil, nil, fmt.Errorf("create otlp exporter: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSampler(sampler(conf.Telemetry.Trace.SampleRatio)),
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(conf.App.Name),
		)),
	)
	otel.SetTracerProvider(tp)
	// Cloud Trace 標頭只讀不寫，下游仍以 W3C traceparent 為主
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
		gcppropagator.CloudTraceOneWayPropagator{},
	))

	cleanup := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = tp.Shutdown(ctx)
	}
	return &Trace{TracerProvider: tp, ServiceName: conf.App.Name}, cleanup, nil
}

// 匯出失敗最多重試一分鐘，之後丟棄該批
func newExporter(endpoint string) (*otlptrace.Exporter, error) {
	return otlptracehttp.New(context.Background(),
		otlptracehttp.WithInsecure(),
		otlptracehttp.WithEndpointURL(endpoint),
		otlptracehttp.WithTimeout(30*time.Second),
		otlptracehttp.WithRetry(otlptracehttp.RetryConfig{
			Enabled:         true,
			InitialInterval: 5 * time.Second,
			MaxInterval:     10 * time.Second,
			MaxElapsedTime:  time.Minute,
		}),
	)
}

// sampler 尊重上游的取樣決定；根 span 依 ratio 取樣
func sampler(ratio float64) sdktrace.Sampler {
	if ratio <= 0 || ratio >= 1 {
		return sdktrace.ParentBased(sdktrace.AlwaysSample())
	}
	return sdktrace.ParentBased(sdktrace.TraceIDRatioBased(ratio))
}

func (t *Trace) tracer() trace.Tracer {
	if t.TracerProvider == nil {
		return noop.NewTracerProvider().Tracer("noop")
	}
	return t.TracerProvider.Tracer(t.ServiceName)
}

func (t *Trace) StartSpanForLayer(ctx context.Context, spanName core.TraceSpanName, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	return t.tracer().Start(ctx, string(spanName), opts...)
}

// WithSpan 開 span 並回傳結束函式。
// parent 為 *gin.Context 時沿用 trace middleware 放進去的 ctx，名稱取 handler；
// 其他情況名稱取呼叫者的方法名。name 可覆寫名稱。
func (t *Trace) WithSpan(parent context.Context, name ...string) (context.Context, trace.Span, func(error)) {
	ctx := parent
	var spanName string

	c, isGin := parent.(*gin.Context)
	if isGin {
		ctx = t.GetTraceContext(c)
		spanName = ginSpanName(c)
	} else {
		spanName = callerName(2)
	}
	if len(name) > 0 && strings.TrimSpace(name[0]) != "" {
		spanName = name[0]
	}
	if spanName == "" {
		spanName = "unknown"
	}

	ctx, span := t.StartSpanForLayer(ctx, core.TraceSpanName(spanName))
	if isGin {
		c.Set(core.ContextTraceKey, ctx)
	}
	return ctx, span, func(err error) { t.EndSpan(span, err) }
}

func (t *Trace) EndSpan(span trace.Span, err error) {
	if span == nil {
		return
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

// GetTraceContext 取 trace middleware 存進 gin 的 ctx，沒有就用 request ctx
func (t *Trace) GetTraceContext(c *gin.Context) context.Context {
	if v, ok := c.Get(core.ContextTraceKey); ok {
		if ctx, ok := v.(context.Context); ok {
			return ctx
		}
	}
	return c.Request.Context()
}

func ginSpanName(c *gin.Context) string {
	if hn := c.HandlerName(); hn != "" {
		return shortFuncName(hn)
	}
	route := c.FullPath()
	if route == "" {
		route = c.Request.URL.Path
	}
	return c.Request.Method + " " + route
}

// callerName skip=0 為 callerName 本身
func callerName(skip int) string {
	pc, _, _, ok := runtime.Caller(skip + 1)
	if !ok {
		return ""
	}
	fn := runtime.FuncForPC(pc)
	if fn == nil {
		return ""
	}
	return shortFuncName(fn.Name())
}

// shortFuncName "employeehub/internal/service.(*EmployeeService).GetEmployee-fm" → "EmployeeService.GetEmployee"
func shortFuncName(full string) string {
	full = full[strings.LastIndex(full, "/")+1:]
	full = strings.TrimSuffix(full, "-fm")
	if i := strings.Index(full, ".func"); i >= 0 {
		full = full[:i]
	}
	if _, rest, ok := strings.Cut(full, "."); ok {
		full = rest
	}
	if i, j := strings.Index(full, "["), strings.Index(full, "]"); i >= 0 && j > i {
		full = full[:i] + full[j+1:]
	}
	return strings.NewReplacer("(*", "", "(", "", ")", "").Replace(full)
}
