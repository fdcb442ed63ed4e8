package client

import (
	"context"
	"employeehub/config"
	"time"

	"github.com/fluent/fluent-logger-golang/fluent"
	"go.uber.org/zap"
)

// Client is a minimal interface to allow mocking in tests.
type Client interface {
	Post(ctx context.Context, tag string, rec map[string]any) error
	Close() error
}

// FluentdClient implements Client using fluent-logger-golang.
type FluentdClient struct {
	client *fluent.Fluent
}

// NewFluentdClient returns a NoopClient when FLUENTD__HOST is empty.
func NewFluentdClient(logger *zap.Logger, config *config.Configuration) (Client, func(), error) {
	if config.Fluentd.Host == "" {
		logger.Info("fluentd host not set, request logs are not shipped")
		return &NoopClient{}, func() {}, nil
	}

	prefix := "employeehub"
	if config.Fluentd.TagPrefix != "" {
		prefix = config.Fluentd.TagPrefix
	}
	var timeout time.Duration
	if config.Fluentd.Timeout > 0 {
		timeout = time.Duration(config.Fluentd.Timeout) * time.Millisecond
	}

	f, err := fluent.New(fluent.Config{
		FluentHost: config.Fluentd.Host,
		FluentPort: config.Fluentd.Port,
		Timeout:    timeout,
		TagPrefix:  prefix,
		Async:      config.Fluentd.Async,
	})
	if err != nil {
		logger.Error("failed to connect to Fluentd", zap.Error(err))
		return nil, nil, err
	}
	c := &FluentdClient{client: f}
	cleanup := func() {
		if err := c.Close(); err != nil {
			logger.Error("failed to close Fluentd client", zap.Error(err))
		}
	}
	return c, cleanup, nil
}

func (c *FluentdClient) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// Post sends a record to Fluentd. TagPrefix is applied by the fluent client.
func (c *FluentdClient) Post(ctx context.Context, tag string, rec map[string]any) error {
	// fluent-logger-golang doesn't support context cancellation directly.
	return c.client.Post(tag, rec)
}

// --------------------
// Noop client (disabled mode)
// --------------------

type NoopClient struct{}

func (n *NoopClient) Post(ctx context.Context, tag string, rec map[string]any) error { return nil }
func (n *NoopClient) Close() error                                                   { return nil }
