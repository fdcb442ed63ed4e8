package middleware

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"employeehub/internal/core"
	"employeehub/internal/database/fluentd/model"
	"employeehub/internal/database/fluentd/repository"
	cErr "employeehub/internal/pkg/error"
	"employeehub/internal/pkg/response"
	"employeehub/internal/telemetry"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Response struct {
	logger            *zap.Logger
	trace             *telemetry.Trace
	metric            *telemetry.Metric
	fluentdRepository *repository.LogRepository
}

func NewResponse(
	logger *zap.Logger,
	trace *telemetry.Trace,
	metric *telemetry.Metric,
	fluentdRepository *repository.LogRepository,
) *Response {
	return &Response{
		logger:            logger,
		trace:             trace,
		metric:            metric,
		fluentdRepository: fluentdRepository,
	}
}

// FormatHandler 把 handler 以 response.Success / response.Create 放入的資料寫成 JSON
func (middleware *Response) FormatHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		endpoint := c.FullPath()
		if isOperationalPath(endpoint) {
			c.Next()
			return
		}

		requestTime := time.Now()
		if startTime, exists := c.Get(contextRequestTimeKey); exists {
			if t, ok := startTime.(time.Time); ok {
				requestTime = t
			}
		} else {
			c.Set(contextRequestTimeKey, requestTime)
		}

		// 執行下游
		c.Next()

		// 若已經有錯誤交由 Recovery 處理，或已經寫出回應，就不要再動了
		if len(c.Errors) > 0 || c.Writer.Written() {
			return
		}

		// 以「下游結束後」的狀態碼為準（handler 可能設了 201）
		statusCode := c.Writer.Status()
		data, ok := response.Data(c)

		// 沒有資料且 status >= 400（例如 404 NoRoute）：轉為應用錯誤交給 Recovery 統一輸出
		if !ok {
			if statusCode >= http.StatusBadRequest {
				response.AbortWithError(c, cErr.MapHttpStatusToError(statusCode, http.StatusText(statusCode)))
			}
			return
		}

		// ---- 成功回應路徑 ----
		ctx, span, end := middleware.trace.WithSpan(c.Request.Context(), string(core.SpanResponseMiddleware))
		defer end(nil)

		jsonBytes, err := json.Marshal(data)
		if err != nil {
			// Marshal 失敗視為 500，交給 Recovery 處理
			response.AbortWithError(c, cErr.InternalServer("marshal response failed"))
			return
		}

		duration := time.Since(requestTime)
		traceID := span.SpanContext().TraceID()
		spanID := span.SpanContext().SpanID()
		requestID := response.RequestID(c)

		middleware.trace.ApplyTraceAttributes(span, core.TraceResponseMeta{
			Path:       c.Request.URL.Path,
			Method:     c.Request.Method,
			Status:     statusCode,
			DurationMs: float64(duration.Milliseconds()),
			Data:       safePreviewJSON(jsonBytes, 2000),
		})

		middleware.logger.Info("[Response] "+c.Request.Method+" "+c.Request.URL.Path,
			zap.Int("status", statusCode),
			zap.Duration("duration", duration),
			zap.String("requestId", requestID),
			zap.String("spanId", fmt.Sprintf("%x", spanID[:])),
			zap.String("traceId", fmt.Sprintf("%x", traceID[:])),
		)

		c.Data(statusCode, "application/json; charset=utf-8", jsonBytes)

		// fluentd
		if err := middleware.fluentdRepository.LogResponse(ctx, model.ResponseLog{
			RequestID:  requestID,
			Path:       c.Request.URL.Path,
			StatusCode: statusCode,
			LatencyMs:  float64(duration.Microseconds()) / 1000,
			ResponseTS: time.Now().UTC().Format("2006-01-02 15:04:05.999999 UTC"),
		}); err != nil {
			middleware.logger.Warn("fluentd response log failed", zap.Error(err))
		}

		// Metrics
		if middleware.metric.ResponseSuccessTotal != nil {
			middleware.metric.ResponseSuccessTotal.
				WithLabelValues(endpoint, strconv.Itoa(statusCode)).
				Inc()
		}
	}
}

// safePreviewJSON 限制 JSON 預覽長度
func safePreviewJSON(b []byte, max int) string {
	if len(b) > max {
		return string(b[:max]) + "…"
	}
	return string(b)
}
