package repository

import (
	"context"
	"fmt"
	"regexp"
	"sync"
	"time"

	"employeehub/config"
	"employeehub/internal/core"
	client "employeehub/internal/database/client"
	"employeehub/internal/database/mongodb/model"
	"employeehub/internal/database/store"
	"employeehub/internal/telemetry"

	"github.com/cenkalti/backoff/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// EmployeeRepository 以 MongoDB collection 實作 store.DocumentStore
type EmployeeRepository struct {
	trace       *telemetry.Trace
	logger      *zap.Logger
	mongoClient *client.MongoClient
	storeConf   config.Store

	indexMu      sync.Mutex
	indexed      bool
	indexRetryAt time.Time
	indexBackoff *backoff.ExponentialBackOff
	createIndex  func(ctx context.Context, coll *mongo.Collection) error
	now          func() time.Time
}

var _ store.DocumentStore = (*EmployeeRepository)(nil)

func NewEmployeeRepository(
	trace *telemetry.Trace,
	logger *zap.Logger,
	config *config.Configuration,
	mongoClient *client.MongoClient,
) *EmployeeRepository {
	return &EmployeeRepository{
		trace:        trace,
		logger:       logger,
		mongoClient:  mongoClient,
		storeConf:    config.Store,
		indexBackoff: newIndexBackoff(),
		createIndex:  createEmployeeIndexes,
		now:          time.Now,
	}
}

// 索引建立失敗後的重試間隔，上限 10 分鐘，不會放棄
func newIndexBackoff() *backoff.ExponentialBackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 30 * time.Second
	b.MaxInterval = 10 * time.Minute
	b.MaxElapsedTime = 0
	b.Reset()
	return b
}

// collection 取得 collection；連線第一次成功後建立索引
func (repository *EmployeeRepository) collection(contextValue context.Context) (*mongo.Collection, error) {
	coll, err := repository.mongoClient.Collection(contextValue)
	if err != nil {
		return nil, err
	}
	repository.ensureIndexes(contextValue, coll)
	return coll, nil
}

// ensureIndexes 同時只有一個請求嘗試；失敗後依 backoff 間隔才再試，其餘請求直接略過
func (repository *EmployeeRepository) ensureIndexes(contextValue context.Context, coll *mongo.Collection) {
	if !repository.indexMu.TryLock() {
		return
	}
	defer repository.indexMu.Unlock()

	if repository.indexed || repository.now().Before(repository.indexRetryAt) {
		return
	}
	if err := repository.createIndex(contextValue, coll); err != nil {
		wait := repository.indexBackoff.NextBackOff()
		repository.indexRetryAt = repository.now().Add(wait)
		repository.logger.Warn("ensure employee indexes failed",
			zap.Duration("retryIn", wait),
			zap.Error(err),
		)
		return
	}
	repository.indexed = true
}

func createEmployeeIndexes(contextValue context.Context, coll *mongo.Collection) error {
	_, err := coll.Indexes().CreateMany(contextValue, model.EmployeeIndexes)
	return err
}

func (repository *EmployeeRepository) startSpan(contextValue context.Context, op string, query store.QueryTemplate) (context.Context, func(count int, err error)) {
	contextValue, span, endSpan := repository.trace.WithSpan(contextValue, "mongo."+op)
	meta := core.TraceStoreMeta{
		Driver:     string(core.Mongo),
		Database:   repository.storeConf.DatabaseName,
		Collection: repository.storeConf.CollectionName,
		Op:         op,
		Query:      string(query),
	}
	return contextValue, func(count int, err error) {
		meta.Count = count
		repository.trace.ApplyTraceAttributes(span, meta)
		endSpan(err)
	}
}

// QueryDocuments 把具名查詢轉成 Mongo filter 並執行
func (repository *EmployeeRepository) QueryDocuments(
	contextValue context.Context,
	query store.QueryTemplate,
	params store.Parameters,
) (results []*model.Employee, returnedError error) {
	contextValue, end := repository.startSpan(contextValue, "find", query)
	defer func() { end(len(results), returnedError) }()

	filter, findOptions, err := translateQuery(query, params)
	if err != nil {
		return nil, err
	}
	return repository.find(contextValue, filter, findOptions)
}

func (repository *EmployeeRepository) ReadAllDocuments(contextValue context.Context) (results []*model.Employee, returnedError error) {
	contextValue, end := repository.startSpan(contextValue, "find", "")
	defer func() { end(len(results), returnedError) }()

	return repository.find(contextValue, bson.M{}, options.Find())
}

func (repository *EmployeeRepository) InsertDocument(
	contextValue context.Context,
	employee *model.Employee,
) (_ *model.Employee, returnedError error) {
	contextValue, end := repository.startSpan(contextValue, "insert", "")
	defer func() { end(1, returnedError) }()

	coll, err := repository.collection(contextValue)
	if err != nil {
		return nil, err
	}
	if _, insertError := coll.InsertOne(contextValue, employee); insertError != nil {
		if mongo.IsDuplicateKeyError(insertError) {
			return nil, fmt.Errorf("%w: %s", store.ErrConflict, employee.ID)
		}
		return nil, insertError
	}
	return employee, nil
}

func (repository *EmployeeRepository) ReplaceDocument(
	contextValue context.Context,
	employeeIdentifier string,
	employee *model.Employee,
) (_ *model.Employee, returnedError error) {
	contextValue, end := repository.startSpan(contextValue, "replace", "")
	defer func() { end(1, returnedError) }()

	coll, err := repository.collection(contextValue)
	if err != nil {
		return nil, err
	}
	result, replaceError := coll.ReplaceOne(contextValue, bson.M{"_id": employeeIdentifier}, employee)
	if replaceError != nil {
		return nil, replaceError
	}
	if result.MatchedCount == 0 {
		return nil, store.ErrNotFound
	}
	return employee, nil
}

func (repository *EmployeeRepository) Ping(contextValue context.Context) error {
	if _, err := repository.collection(contextValue); err != nil {
		return err
	}
	return repository.mongoClient.Ping(contextValue)
}

func (repository *EmployeeRepository) find(
	contextValue context.Context,
	filter bson.M,
	findOptions *options.FindOptions,
) (_ []*model.Employee, returnedError error) {
	coll, err := repository.collection(contextValue)
	if err != nil {
		return nil, err
	}
	cursor, findError := coll.Find(contextValue, filter, findOptions)
	if findError != nil {
		return nil, findError
	}
	defer cursor.Close(contextValue)

	results := make([]*model.Employee, 0)
	for cursor.Next(contextValue) {
		var employee model.Employee
		if decodeError := cursor.Decode(&employee); decodeError != nil {
			return nil, decodeError
		}
		results = append(results, &employee)
	}
	if cursorError := cursor.Err(); cursorError != nil {
		return nil, cursorError
	}
	return results, nil
}

// translateQuery 具名查詢 → filter / options
func translateQuery(query store.QueryTemplate, params store.Parameters) (bson.M, *options.FindOptions, error) {
	switch query {
	case store.QueryEmployeeByID:
		return bson.M{"_id": params.String(store.ParamID)}, options.Find(), nil
	case store.QueryEmployeesByDepartment:
		return bson.M{"department": params.String(store.ParamDepartment)}, options.Find(), nil
	case store.QueryEmployeesSearch:
		pattern := containsIgnoreCase(params.String(store.ParamSearch))
		return bson.M{"$or": bson.A{
			bson.M{"firstName": pattern},
			bson.M{"lastName": pattern},
			bson.M{"email": pattern},
		}}, options.Find(), nil
	case store.QueryActiveDepartments:
		return bson.M{"isActive": true}, options.Find().SetProjection(bson.M{"department": 1}), nil
	default:
		return nil, nil, fmt.Errorf("%w: %s", store.ErrUnknownQuery, query)
	}
}

// 子字串比對：跳脫 regex 特殊字元，i = 不分大小寫
func containsIgnoreCase(search string) bson.M {
	return bson.M{"$regex": regexp.QuoteMeta(search), "$options": "i"}
}
