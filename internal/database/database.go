package database

import (
	"employeehub/config"
	"employeehub/internal/core"
	client "employeehub/internal/database/client"
	fluentdRepo "employeehub/internal/database/fluentd/repository"
	"employeehub/internal/database/memory"
	mongoRepo "employeehub/internal/database/mongodb/repository"
	redisRepo "employeehub/internal/database/redis/repository"
	"employeehub/internal/database/store"

	"github.com/google/wire"
	"go.uber.org/zap"
)

// ProviderSet 定義所有 DB Client 的依賴
var ProviderSet = wire.NewSet(
	client.NewMongoClient,
	client.NewRedisClient,
	client.NewFluentdClient,
	mongoRepo.ProviderSet,
	redisRepo.ProviderSet,
	fluentdRepo.ProviderSet,
	memory.NewStore,
	ProvideDocumentStore,
)

// ProvideDocumentStore 依 STORE__DRIVER 選擇文件資料庫實作
func ProvideDocumentStore(
	config *config.Configuration,
	logger *zap.Logger,
	mongoRepository *mongoRepo.EmployeeRepository,
	memoryStore *memory.Store,
) store.DocumentStore {
	if config.Store.Driver == string(core.Memory) {
		logger.Warn("using in-memory document store, data is not persisted")
		return memoryStore
	}
	return mongoRepository
}
