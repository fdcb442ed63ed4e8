package repository

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"employeehub/config"
	client "employeehub/internal/database/client"
	"employeehub/internal/database/mongodb/model"
	"employeehub/internal/database/store"
	"employeehub/internal/telemetry"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func TestEnsureIndexesBacksOffAfterFailure(t *testing.T) {
	now := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	calls := 0
	failing := true

	repo := NewEmployeeRepository(&telemetry.Trace{}, zap.NewNop(), &config.Configuration{}, nil)
	repo.now = func() time.Time { return now }
	repo.createIndex = func(ctx context.Context, coll *mongo.Collection) error {
		calls++
		if failing {
			return errors.New("createIndexes not supported")
		}
		return nil
	}

	ctx := context.Background()
	for i := 0; i < 5; i++ {
		repo.ensureIndexes(ctx, nil)
	}
	assert.Equal(t, 1, calls)
	assert.False(t, repo.indexed)

	now = now.Add(15 * time.Minute)
	failing = false
	repo.ensureIndexes(ctx, nil)
	assert.Equal(t, 2, calls)
	assert.True(t, repo.indexed)

	now = now.Add(time.Hour)
	repo.ensureIndexes(ctx, nil)
	assert.Equal(t, 2, calls)
}

func TestTranslateQuery(t *testing.T) {
	tests := []struct {
		name   string
		query  store.QueryTemplate
		params store.Parameters
		want   bson.M
	}{
		{
			name:   "by id",
			query:  store.QueryEmployeeByID,
			params: store.Parameters{store.ParamID: "abc"},
			want:   bson.M{"_id": "abc"},
		},
		{
			name:   "by department",
			query:  store.QueryEmployeesByDepartment,
			params: store.Parameters{store.ParamDepartment: "Engineering"},
			want:   bson.M{"department": "Engineering"},
		},
		{
			name:   "search escapes regex",
			query:  store.QueryEmployeesSearch,
			params: store.Parameters{store.ParamSearch: "j.doe+"},
			want: bson.M{"$or": bson.A{
				bson.M{"firstName": bson.M{"$regex": `j\.doe\+`, "$options": "i"}},
				bson.M{"lastName": bson.M{"$regex": `j\.doe\+`, "$options": "i"}},
				bson.M{"email": bson.M{"$regex": `j\.doe\+`, "$options": "i"}},
			}},
		},
		{
			name:  "active departments",
			query: store.QueryActiveDepartments,
			want:  bson.M{"isActive": true},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filter, _, err := translateQuery(tt.query, tt.params)
			require.NoError(t, err)
			assert.Equal(t, tt.want, filter)
		})
	}

	_, _, err := translateQuery("employees_by_salary", nil)
	assert.ErrorIs(t, err, store.ErrUnknownQuery)
}

func TestEmployeeRepository_Mongo(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "mongo:7",
			ExposedPorts: []string{"27017/tcp"},
			WaitingFor:   wait.ForListeningPort("27017/tcp").WithStartupTimeout(2 * time.Minute),
		},
		Started: true,
	})
	require.NoError(t, err)
	defer func() {
		_ = container.Terminate(ctx)
	}()

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "27017/tcp")
	require.NoError(t, err)

	conf := &config.Configuration{}
	conf.Store.ConnectionString = fmt.Sprintf("mongodb://%s:%s", host, port.Port())
	conf.Store.AuthMechanism = config.AuthMechanismNone
	conf.ApplyDefaults()

	mongoClient, cleanup, err := client.NewMongoClient(zap.NewNop(), conf)
	require.NoError(t, err)
	defer cleanup()

	repo := NewEmployeeRepository(&telemetry.Trace{}, zap.NewNop(), conf, mongoClient)
	require.NoError(t, repo.Ping(ctx))

	now := time.Now().UTC().Truncate(time.Millisecond)
	newEmployee := func(first, last, email, dept string, active bool) *model.Employee {
		return &model.Employee{
			ID:         uuid.NewString(),
			FirstName:  first,
			LastName:   last,
			Email:      email,
			Department: dept,
			HireDate:   now.Format(model.HireDateLayout),
			IsActive:   active,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
	}

	jane := newEmployee("Jane", "Smith", "jane.smith@company.com", "HR", true)
	john := newEmployee("John", "Doe", "john.doe@company.com", "Engineering", true)
	bob := newEmployee("Bob", "Johnson", "bob.j@company.com", "Engineering", false)
	for _, e := range []*model.Employee{jane, john, bob} {
		_, err := repo.InsertDocument(ctx, e)
		require.NoError(t, err)
	}

	t.Run("insert conflict", func(t *testing.T) {
		_, err := repo.InsertDocument(ctx, jane.Clone())
		assert.ErrorIs(t, err, store.ErrConflict)
	})

	t.Run("by id", func(t *testing.T) {
		got, err := repo.QueryDocuments(ctx, store.QueryEmployeeByID, store.Parameters{store.ParamID: jane.ID})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, jane, got[0])
	})

	t.Run("search is case insensitive", func(t *testing.T) {
		got, err := repo.QueryDocuments(ctx, store.QueryEmployeesSearch, store.Parameters{store.ParamSearch: "JANE"})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "Smith", got[0].LastName)
	})

	t.Run("department is exact", func(t *testing.T) {
		got, err := repo.QueryDocuments(ctx, store.QueryEmployeesByDepartment, store.Parameters{store.ParamDepartment: "engineering"})
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("active departments", func(t *testing.T) {
		got, err := repo.QueryDocuments(ctx, store.QueryActiveDepartments, nil)
		require.NoError(t, err)
		assert.Len(t, got, 2)
		for _, e := range got {
			assert.Empty(t, e.Email, "projection returns department only")
		}
	})

	t.Run("replace", func(t *testing.T) {
		updated := john.Clone()
		updated.Department = "Platform"
		_, err := repo.ReplaceDocument(ctx, john.ID, updated)
		require.NoError(t, err)

		all, err := repo.ReadAllDocuments(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 3)

		_, err = repo.ReplaceDocument(ctx, "missing", updated)
		assert.ErrorIs(t, err, store.ErrNotFound)
	})
}
