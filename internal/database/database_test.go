package database

import (
	"testing"

	"employeehub/config"
	"employeehub/internal/database/memory"
	mongoRepo "employeehub/internal/database/mongodb/repository"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestProvideDocumentStore(t *testing.T) {
	memoryStore := memory.NewStore()
	mongoRepository := &mongoRepo.EmployeeRepository{}

	conf := &config.Configuration{}
	conf.Store.Driver = config.StoreDriverMemory
	assert.Same(t, memoryStore, ProvideDocumentStore(conf, zap.NewNop(), mongoRepository, memoryStore))

	conf.Store.Driver = config.StoreDriverMongo
	assert.Same(t, mongoRepository, ProvideDocumentStore(conf, zap.NewNop(), mongoRepository, memoryStore))
}
