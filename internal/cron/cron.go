package cron

import (
	"context"

	"employeehub/config"
	"employeehub/internal/core"

	"github.com/google/wire"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

var ProviderSet = wire.NewSet(NewCron, NewStoreHeartbeat)

type Cron struct {
	logger    *zap.Logger
	config    *config.Configuration
	server    *cron.Cron
	heartbeat *StoreHeartbeat
}

// NewCron .
func NewCron(logger *zap.Logger, config *config.Configuration, heartbeat *StoreHeartbeat) *Cron {
	server := cron.New(
		cron.WithSeconds(),
		cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)),
	)

	return &Cron{
		logger:    logger,
		config:    config,
		server:    server,
		heartbeat: heartbeat,
	}
}

func (c *Cron) Run() error {
	if _, err := c.server.AddFunc(c.config.Cron.HeartbeatSpec, c.heartbeat.Run); err != nil {
		return err
	}
	// 啟動時先跑一次，讓 readiness 不必等第一個排程週期
	go c.heartbeat.Run()

	c.logger.Info("cron started",
		zap.String("job", string(core.CronJobStoreHeartbeat)),
		zap.String("spec", c.config.Cron.HeartbeatSpec),
	)
	c.server.Start()
	return nil
}

func (c *Cron) Stop(ctx context.Context) error {
	done := c.server.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
		return ctx.Err()
	}
	return nil
}
