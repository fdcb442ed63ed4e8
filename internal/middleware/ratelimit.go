package middleware

import (
	"errors"
	"strconv"

	"employeehub/config"
	"employeehub/internal/core"
	"employeehub/internal/database/redis/repository"
	cErr "employeehub/internal/pkg/error"
	"employeehub/internal/pkg/response"
	"employeehub/internal/telemetry"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type RateLimit struct {
	trace                 *telemetry.Trace
	logger                *zap.Logger
	config                *config.Configuration
	metric                *telemetry.Metric
	rateLimiterRepository *repository.RateLimiterRepository
}

func NewRateLimit(
	trace *telemetry.Trace,
	logger *zap.Logger,
	config *config.Configuration,
	metric *telemetry.Metric,
	rateLimiterRepository *repository.RateLimiterRepository,
) *RateLimit {
	return &RateLimit{
		trace:                 trace,
		logger:                logger,
		config:                config,
		metric:                metric,
		rateLimiterRepository: rateLimiterRepository,
	}
}

// Guard 以 client IP 做固定視窗限流；Redis 異常時放行
func (middleware *RateLimit) Guard() gin.HandlerFunc {
	conf := middleware.config.RateLimit
	return func(c *gin.Context) {
		if !conf.Enabled || !middleware.rateLimiterRepository.Enabled() || isOperationalPath(c.FullPath()) {
			c.Next()
			return
		}

		ctx, span, end := middleware.trace.WithSpan(c.Request.Context(), string(core.SpanRateLimitMiddleware))
		subject := c.ClientIP()
		remaining, ttlSec, err := middleware.rateLimiterRepository.Consume(ctx, subject, conf.WindowSeconds, conf.Limit)

		meta := core.TraceRateLimitMiddlewareMeta{
			Subject:     subject,
			ConfigLimit: conf.Limit,
			Remaining:   remaining,
			TTLSeconds:  ttlSec,
		}

		switch {
		case err == nil:
		case errors.Is(err, repository.ErrRateLimitExceeded):
			meta.Blocked = true
		default:
			// 讀取錯誤不阻斷主流程
			meta.FailedOpen = true
			middleware.logger.Warn("rate limit check failed, allowing request",
				zap.String("subject", subject),
				zap.Error(err),
			)
		}
		middleware.trace.ApplyTraceAttributes(span, meta)

		if !meta.FailedOpen {
			c.Header("X-RateLimit-Limit", strconv.Itoa(conf.Limit))
			c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
			if ttlSec > 0 {
				c.Header("X-RateLimit-Reset", strconv.FormatInt(ttlSec, 10))
			}
		}

		if meta.Blocked {
			if ttlSec > 0 {
				c.Header("Retry-After", strconv.FormatInt(ttlSec, 10))
			}
			if middleware.metric.RateLimitedTotal != nil {
				middleware.metric.RateLimitedTotal.WithLabelValues(c.FullPath()).Inc()
			}
			end(nil)
			response.AbortWithError(c, cErr.RateLimitExceeded("Rate limit exceeded"))
			return
		}
		end(nil)
		c.Next()
	}
}
