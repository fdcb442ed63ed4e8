package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"employeehub/internal/core"
	client "employeehub/internal/database/client"
	"employeehub/internal/telemetry"

	"github.com/redis/go-redis/v9"
)

type RateLimiterRepository struct {
	trace  *telemetry.Trace
	client *redis.Client
}

func NewRateLimiterRepository(trace *telemetry.Trace, client *client.RedisClient) *RateLimiterRepository {
	return &RateLimiterRepository{trace: trace, client: client.Client()}
}

var (
	ErrRateLimitExceeded = errors.New("rate limit exceeded")
	ErrRateLimitDisabled = errors.New("rate limit store not configured")
)

// Enabled Redis 未連線時為 false
func (repository *RateLimiterRepository) Enabled() bool {
	return repository != nil && repository.client != nil
}

// Consume 消耗一次配額；自動處理新週期初始化與剩餘 TTL。
// 回傳：remaining（剩餘次數）、ttlSec（剩餘秒數）、err（若超限為 ErrRateLimitExceeded）
func (repository *RateLimiterRepository) Consume(
	contextValue context.Context,
	subject string,
	windowSeconds int64,
	limitCount int,
) (remainingCount int, timeToLiveSeconds int64, returnedError error) {
	if !repository.Enabled() {
		return 0, 0, ErrRateLimitDisabled
	}

	contextValue, span, endSpan := repository.trace.WithSpan(contextValue)
	defer func() {
		// 超限屬正常結果，不標記 span error
		if errors.Is(returnedError, ErrRateLimitExceeded) {
			endSpan(nil)
			return
		}
		endSpan(returnedError)
	}()

	traceMetadata := core.TraceRateLimitMeta{
		Subject:   subject,
		Limit:     limitCount,
		WindowSec: windowSeconds,
		Op:        "consume",
	}
	repository.trace.ApplyTraceAttributes(span, traceMetadata)

	redisKey := repository.buildKey(subject)
	expirationDuration := time.Duration(windowSeconds) * time.Second

	// 嘗試初始化：SETNX key value EX expiration
	wasSet, setError := repository.client.SetNX(
		contextValue,
		redisKey,
		limitCount-1, // 本次消耗一次，所以初始值 = 總額-1
		expirationDuration,
	).Result()
	if setError != nil {
		returnedError = setError
		return 0, 0, returnedError
	}
	if wasSet {
		remainingCount = limitCount - 1
		if remainingCount < 0 {
			remainingCount = 0
			returnedError = ErrRateLimitExceeded
		}
		timeToLiveSeconds = windowSeconds
		traceMetadata.Remaining, traceMetadata.TTL = remainingCount, timeToLiveSeconds
		repository.trace.ApplyTraceAttributes(span, traceMetadata)
		return remainingCount, timeToLiveSeconds, returnedError
	}

	// Key 已存在 → 執行 DECR 扣一次
	newValue, decrError := repository.client.Decr(contextValue, redisKey).Result()
	if decrError != nil {
		returnedError = decrError
		return 0, 0, returnedError
	}

	ttlDuration, _ := repository.client.TTL(contextValue, redisKey).Result()
	if ttlDuration > 0 {
		timeToLiveSeconds = int64(ttlDuration.Seconds())
	} else {
		// key 沒有 TTL（例如 SETNX 後 EXPIRE 遺失）→ 補上，避免永久封鎖
		_ = repository.client.Expire(contextValue, redisKey, expirationDuration).Err()
		timeToLiveSeconds = windowSeconds
	}

	if newValue < 0 {
		remainingCount = 0
		traceMetadata.Remaining, traceMetadata.TTL = remainingCount, timeToLiveSeconds
		repository.trace.ApplyTraceAttributes(span, traceMetadata)
		returnedError = ErrRateLimitExceeded
		return remainingCount, timeToLiveSeconds, returnedError
	}

	remainingCount = int(newValue)
	traceMetadata.Remaining, traceMetadata.TTL = remainingCount, timeToLiveSeconds
	repository.trace.ApplyTraceAttributes(span, traceMetadata)
	return remainingCount, timeToLiveSeconds, nil
}

// buildKey 建構 RateLimiter 用的 Redis key
func (r *RateLimiterRepository) buildKey(subject string) string {
	return fmt.Sprintf("%s:%s:%s", core.RedisKeyServerName, core.RedisKeyRateLimit, subject)
}
