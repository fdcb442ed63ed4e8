package client

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"employeehub/config"
	"employeehub/internal/database/store"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// connectFunc 建立連線並確認可用（測試可替換）
type connectFunc func(ctx context.Context, opts *options.ClientOptions) (*mongo.Client, error)

// MongoClient 延遲解析連線：第一次使用時才連線，成功後整個 process 共用，
// 失敗不快取，下一次呼叫會重試
type MongoClient struct {
	logger  *zap.Logger
	conf    config.Store
	connect connectFunc

	mu     sync.Mutex
	client *mongo.Client
}

func NewMongoClient(logger *zap.Logger, config *config.Configuration) (*MongoClient, func(), error) {
	mongoClient := newMongoClient(logger, config.Store, pingConnect)

	cleanup := func() {
		logger.Info("closing the MongoDB resources")
		if err := mongoClient.Close(); err != nil {
			logger.Error("failed to close MongoDB client", zap.Error(err))
		}
	}

	return mongoClient, cleanup, nil
}

func newMongoClient(logger *zap.Logger, conf config.Store, connect connectFunc) *MongoClient {
	return &MongoClient{logger: logger, conf: conf, connect: connect}
}

func pingConnect(ctx context.Context, opts *options.ClientOptions) (*mongo.Client, error) {
	c, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, err
	}
	if err := c.Ping(ctx, readpref.PrimaryPreferred()); err != nil {
		_ = c.Disconnect(context.Background())
		return nil, err
	}
	return c, nil
}

// Client 回傳已解析的 MongoDB 連線
func (m *MongoClient) Client(ctx context.Context) (*mongo.Client, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.client != nil {
		return m.client, nil
	}
	c, method, err := m.resolve(ctx)
	if err != nil {
		return nil, err
	}
	m.client = c
	m.logger.Info("Connected to MongoDB", zap.String("auth", method))
	return c, nil
}

// Database 回傳設定中的資料庫
func (m *MongoClient) Database(ctx context.Context) (*mongo.Database, error) {
	c, err := m.Client(ctx)
	if err != nil {
		return nil, err
	}
	return c.Database(m.conf.DatabaseName), nil
}

// Collection 回傳員工 collection
func (m *MongoClient) Collection(ctx context.Context) (*mongo.Collection, error) {
	db, err := m.Database(ctx)
	if err != nil {
		return nil, err
	}
	return db.Collection(m.conf.CollectionName), nil
}

// 1) endpoint + workload identity  2) 連線字串  3) 都沒有 → ErrNotConfigured
func (m *MongoClient) resolve(ctx context.Context) (*mongo.Client, string, error) {
	s := m.conf
	timeout := time.Duration(s.ConnectTimeout) * time.Millisecond

	var identityErr error
	if s.Endpoint != "" && !strings.EqualFold(s.AuthMechanism, config.AuthMechanismNone) {
		c, err := m.attempt(ctx, timeout, identityOptions(s, timeout))
		if err == nil {
			return c, s.AuthMechanism, nil
		}
		identityErr = err
		m.logger.Warn("identity connection failed, trying connection string",
			zap.String("endpoint", s.Endpoint),
			zap.String("mechanism", s.AuthMechanism),
			zap.Error(err),
		)
	}

	if s.ConnectionString != "" {
		opts := options.Client().ApplyURI(buildMongoURI(s.ConnectionString, s.Options))
		if timeout > 0 {
			opts.SetConnectTimeout(timeout)
		}
		c, err := m.attempt(ctx, timeout, opts)
		if err != nil {
			m.logger.Error("failed to connect to MongoDB", zap.Error(err))
			return nil, "", err
		}
		return c, "connection_string", nil
	}

	if identityErr != nil {
		return nil, "", fmt.Errorf("%w: %v", store.ErrNotConfigured, identityErr)
	}
	return nil, "", store.ErrNotConfigured
}

// attempt 每次嘗試各自計時，前一次逾時不影響下一次
func (m *MongoClient) attempt(ctx context.Context, timeout time.Duration, opts *options.ClientOptions) (*mongo.Client, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	return m.connect(ctx, opts)
}

func identityOptions(s config.Store, timeout time.Duration) *options.ClientOptions {
	props := map[string]string{}
	if s.AuthEnvironment != "" {
		props["ENVIRONMENT"] = s.AuthEnvironment
	}
	if s.TokenResource != "" {
		props["TOKEN_RESOURCE"] = s.TokenResource
	}
	opts := options.Client().
		ApplyURI(buildMongoURI(s.Endpoint, s.Options)).
		SetAuth(options.Credential{
			AuthMechanism:           s.AuthMechanism,
			AuthMechanismProperties: props,
		})
	if timeout > 0 {
		opts.SetConnectTimeout(timeout)
	}
	return opts
}

func buildMongoURI(baseURI, optionStr string) string {
	if optionStr == "" {
		return baseURI
	}
	if strings.Contains(baseURI, "?") {
		return baseURI + "&" + optionStr
	}
	return baseURI + "?" + optionStr
}

// Ping 解析連線（必要時）並確認可用
func (m *MongoClient) Ping(ctx context.Context) error {
	c, err := m.Client(ctx)
	if err != nil {
		return err
	}
	return c.Ping(ctx, readpref.PrimaryPreferred())
}

// Close 關閉 MongoDB 連線
func (m *MongoClient) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.client == nil {
		return nil
	}
	err := m.client.Disconnect(context.Background())
	m.client = nil
	if errors.Is(err, mongo.ErrClientDisconnected) {
		return nil
	}
	return err
}
