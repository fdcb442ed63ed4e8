package cron

import (
	"context"
	"sync"
	"time"

	"employeehub/internal/core"
	"employeehub/internal/database/store"
	"employeehub/internal/service"
	"employeehub/internal/telemetry"

	"go.uber.org/zap"
)

const heartbeatTimeout = 5 * time.Second

// StoreHeartbeat 定期 ping 文件資料庫並切換 readiness
type StoreHeartbeat struct {
	logger        *zap.Logger
	trace         *telemetry.Trace
	documentStore store.DocumentStore
	health        *service.HealthService

	mu      sync.Mutex
	healthy *bool
}

func NewStoreHeartbeat(
	logger *zap.Logger,
	trace *telemetry.Trace,
	documentStore store.DocumentStore,
	health *service.HealthService,
) *StoreHeartbeat {
	return &StoreHeartbeat{
		logger:        logger,
		trace:         trace,
		documentStore: documentStore,
		health:        health,
	}
}

func (h *StoreHeartbeat) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), heartbeatTimeout)
	defer cancel()
	_ = h.Check(ctx)
}

// Check 回傳 ping 結果；只有狀態轉換時才寫 log
func (h *StoreHeartbeat) Check(ctx context.Context) error {
	ctx, _, end := h.trace.WithSpan(ctx, string(core.SpanStoreHeartbeat))
	err := h.documentStore.Ping(ctx)
	end(err)

	ok := err == nil
	h.health.SetReady(ok)

	h.mu.Lock()
	changed := h.healthy == nil || *h.healthy != ok
	h.healthy = &ok
	h.mu.Unlock()

	if changed {
		if ok {
			h.logger.Info("document store reachable", zap.String("job", string(core.CronJobStoreHeartbeat)))
		} else {
			h.logger.Warn("document store unreachable", zap.String("job", string(core.CronJobStoreHeartbeat)), zap.Error(err))
		}
	}
	return err
}
