package middleware

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"runtime/debug"
	"strconv"
	"time"
	"unicode/utf8"

	"employeehub/internal/core"
	"employeehub/internal/database/fluentd/model"
	"employeehub/internal/database/fluentd/repository"
	cErr "employeehub/internal/pkg/error"
	res "employeehub/internal/pkg/response"
	"employeehub/internal/telemetry"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const msgInternalServerError = "Internal server error"

type Recovery struct {
	logger            *zap.Logger
	trace             *telemetry.Trace
	metric            *telemetry.Metric
	fluentdRepository *repository.LogRepository
}

func NewRecovery(
	logger *zap.Logger,
	trace *telemetry.Trace,
	metric *telemetry.Metric,
	fluentdRepository *repository.LogRepository,
) *Recovery {
	return &Recovery{
		logger:            logger,
		trace:             trace,
		metric:            metric,
		fluentdRepository: fluentdRepository,
	}
}

// ErrorHandler 攔截 panic 與 c.Errors，統一以 {"error": "..."} 輸出
func (middleware *Recovery) ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestTime := time.Now()
		if startTime, exists := c.Get(contextRequestTimeKey); exists {
			if t, ok := startTime.(time.Time); ok {
				requestTime = t
			}
		}
		requestID := res.RequestID(c)

		// ---- panic recover 必須在 c.Next() 之前註冊 ----
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			duration := time.Since(requestTime)

			ctx, span, end := middleware.trace.WithSpan(c.Request.Context(), string(core.SpanRecoveryMiddleware))
			traceID := span.SpanContext().TraceID()
			spanID := span.SpanContext().SpanID()

			meta := core.TracePanicMeta{
				Path:       c.Request.URL.Path,
				Method:     c.Request.Method,
				ClientIP:   c.ClientIP(),
				UserAgent:  c.Request.UserAgent(),
				DurationMs: float64(duration.Milliseconds()),
				Message:    toSafeString(fmt.Sprint(rec)),
				Stack:      toSafeStack(debug.Stack()),
				Status:     http.StatusInternalServerError,
			}
			middleware.trace.ApplyTraceAttributes(span, meta)

			middleware.logger.Error("[PANIC] Recovered",
				zap.String("path", meta.Path),
				zap.String("method", meta.Method),
				zap.String("client_ip", meta.ClientIP),
				zap.Duration("duration", duration),
				zap.String("panic", meta.Message),
				zap.String("stacktrace", meta.Stack),
				zap.String("requestId", requestID),
				zap.String("spanId", fmt.Sprintf("%x", spanID[:])),
				zap.String("traceId", fmt.Sprintf("%x", traceID[:])),
			)

			// 尚未回寫才輸出
			if !c.Writer.Written() {
				res.Fail(c, requestID, http.StatusInternalServerError, msgInternalServerError)
			}
			middleware.logResponse(ctx, c, requestID, cErr.INTERNAL_ERROR, http.StatusInternalServerError, meta.Message, duration)
			middleware.countFail("panic")
			end(fmt.Errorf("panic: %s", meta.Message))
			c.Abort()
		}()

		// 執行下游
		c.Next()

		// ---- 統一處理非 panic 的 gin errors（若尚未回寫）----
		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		duration := time.Since(requestTime)

		ctx, span, end := middleware.trace.WithSpan(c.Request.Context(), string(core.SpanRecoveryMiddleware))
		traceID := span.SpanContext().TraceID()
		spanID := span.SpanContext().SpanID()

		appErr := cErr.From(c.Errors.Last().Err)
		desc := appErr.ErrorDesc()
		if appErr.HttpCode() >= http.StatusInternalServerError && appErr.ErrorCode() == cErr.INTERNAL_ERROR {
			// 未知錯誤不把內部訊息回給呼叫端
			desc = msgInternalServerError
		}

		middleware.trace.ApplyTraceAttributes(span, core.TraceErrorMeta{
			Code:       appErr.ErrorCode(),
			Message:    appErr.Error(),
			Detail:     toSafeString(appErr.ErrorDesc()),
			DurationMs: float64(duration.Milliseconds()),
			Status:     appErr.HttpCode(),
		})

		logFields := []zap.Field{
			zap.Int("code", appErr.ErrorCode()),
			zap.Int("status", appErr.HttpCode()),
			zap.String("detail", appErr.ErrorDesc()),
			zap.Duration("duration", duration),
			zap.String("requestId", requestID),
			zap.String("spanId", fmt.Sprintf("%x", spanID[:])),
			zap.String("traceId", fmt.Sprintf("%x", traceID[:])),
		}
		if appErr.HttpCode() >= http.StatusInternalServerError {
			middleware.logger.Error("[ERROR] "+appErr.Error(), logFields...)
		} else {
			middleware.logger.Warn("[ERROR] "+appErr.Error(), logFields...)
		}

		res.Fail(c, requestID, appErr.HttpCode(), desc)
		middleware.logResponse(ctx, c, requestID, appErr.ErrorCode(), appErr.HttpCode(), appErr.ErrorDesc(), duration)
		middleware.countFail(appErr.Error())

		if appErr.HttpCode() >= http.StatusInternalServerError {
			end(appErr)
		} else {
			end(nil)
		}
		c.Abort()
	}
}

func (middleware *Recovery) logResponse(
	ctx context.Context,
	c *gin.Context,
	requestID string,
	code int,
	status int,
	detail string,
	duration time.Duration,
) {
	if err := middleware.fluentdRepository.LogResponse(ctx, model.ResponseLog{
		RequestID:  requestID,
		Path:       c.Request.URL.Path,
		StatusCode: status,
		ErrorCode:  strconv.Itoa(code),
		Error:      toSafeString(detail),
		LatencyMs:  float64(duration.Microseconds()) / 1000,
		ResponseTS: time.Now().UTC().Format("2006-01-02 15:04:05.999999 UTC"),
	}); err != nil {
		middleware.logger.Warn("fluentd response log failed", zap.Error(err))
	}
}

func (middleware *Recovery) countFail(reason string) {
	if middleware.metric.ResponseFailTotal != nil {
		middleware.metric.ResponseFailTotal.WithLabelValues(reason).Inc()
	}
}

// ---- helpers ----

func toSafeString(s string) string {
	const max = 8000
	if utf8.ValidString(s) {
		if len(s) > max {
			return s[:max] + "…"
		}
		return s
	}
	b := []byte(s)
	if len(b) > max {
		b = b[:max]
	}
	return "b64:" + base64.StdEncoding.EncodeToString(b)
}

func toSafeStack(b []byte) string {
	const max = 16000
	if utf8.Valid(b) {
		if len(b) > max {
			return string(b[:max]) + "…"
		}
		return string(b)
	}
	if len(b) > max {
		b = b[:max]
	}
	return "b64:" + base64.StdEncoding.EncodeToString(b)
}
