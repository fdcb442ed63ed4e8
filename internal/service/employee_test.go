package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"employeehub/internal/database/memory"
	"employeehub/internal/database/mongodb/model"
	"employeehub/internal/database/store"
	"employeehub/internal/dto"
	cErr "employeehub/internal/pkg/error"
	"employeehub/internal/telemetry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeClock struct {
	t time.Time
}

func (f *fakeClock) Now() time.Time {
	f.t = f.t.Add(time.Second)
	return f.t
}

func newTestService(t *testing.T, documentStore store.DocumentStore) *EmployeeService {
	t.Helper()
	clock := &fakeClock{t: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)}
	return NewEmployeeService(&telemetry.Trace{}, zap.NewNop(), &telemetry.Metric{}, documentStore).WithClock(clock.Now)
}

func validCreate() *dto.CreateEmployeeRequest {
	return &dto.CreateEmployeeRequest{
		FirstName:  "Jane",
		LastName:   "Smith",
		Email:      "jane.smith@company.com",
		Department: "HR",
		Position:   "HR Manager",
	}
}

func strPtr(s string) *string { return &s }

func assertAppError(t *testing.T, err error, status int, desc string) {
	t.Helper()
	var appErr *cErr.Error
	require.True(t, errors.As(err, &appErr), "expected *cErr.Error, got %T", err)
	assert.Equal(t, status, appErr.HttpCode())
	assert.Equal(t, desc, appErr.ErrorDesc())
}

func TestCreateEmployee(t *testing.T) {
	svc := newTestService(t, memory.NewStore())

	created, err := svc.CreateEmployee(context.Background(), validCreate())
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.True(t, created.IsActive)
	assert.Equal(t, created.CreatedAt, created.UpdatedAt)
	assert.Equal(t, "2024-03-01", created.HireDate)
	assert.Equal(t, float64(0), created.Salary)
	assert.Empty(t, created.Phone)
	assert.Nil(t, created.DeletedAt)
}

func TestCreateEmployeeKeepsHireDate(t *testing.T) {
	svc := newTestService(t, memory.NewStore())

	req := validCreate()
	req.HireDate = "2020-01-15"
	req.Salary = 85000
	created, err := svc.CreateEmployee(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "2020-01-15", created.HireDate)
	assert.Equal(t, float64(85000), created.Salary)
}

func TestCreateEmployeeValidation(t *testing.T) {
	svc := newTestService(t, memory.NewStore())

	tests := []struct {
		name   string
		mutate func(r *dto.CreateEmployeeRequest)
		want   string
	}{
		{"missing firstName", func(r *dto.CreateEmployeeRequest) { r.FirstName = "" }, "Missing required field: firstName"},
		{"missing lastName", func(r *dto.CreateEmployeeRequest) { r.LastName = "" }, "Missing required field: lastName"},
		{"missing email", func(r *dto.CreateEmployeeRequest) { r.Email = "" }, "Missing required field: email"},
		{"missing department", func(r *dto.CreateEmployeeRequest) { r.Department = "" }, "Missing required field: department"},
		{"first missing field wins", func(r *dto.CreateEmployeeRequest) { r.Email = ""; r.LastName = "" }, "Missing required field: lastName"},
		{"bad hireDate", func(r *dto.CreateEmployeeRequest) { r.HireDate = "01/15/2020" }, "Invalid field: hireDate"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validCreate()
			tt.mutate(req)
			_, err := svc.CreateEmployee(context.Background(), req)
			assertAppError(t, err, http.StatusBadRequest, tt.want)
		})
	}
}

func TestGetEmployeeNotFound(t *testing.T) {
	svc := newTestService(t, memory.NewStore())

	_, err := svc.GetEmployee(context.Background(), "does-not-exist")
	assertAppError(t, err, http.StatusNotFound, "Employee not found")
}

func TestUpdateEmployeeAdvancesUpdatedAtWithinSameMillisecond(t *testing.T) {
	frozen := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	svc := NewEmployeeService(&telemetry.Trace{}, zap.NewNop(), &telemetry.Metric{}, memory.NewStore()).
		WithClock(func() time.Time { return frozen })
	ctx := context.Background()

	created, err := svc.CreateEmployee(ctx, validCreate())
	require.NoError(t, err)

	updated, err := svc.UpdateEmployee(ctx, created.ID, &dto.UpdateEmployeeRequest{Position: strPtr("Director")})
	require.NoError(t, err)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt))

	again, err := svc.UpdateEmployee(ctx, created.ID, &dto.UpdateEmployeeRequest{Position: strPtr("VP")})
	require.NoError(t, err)
	assert.True(t, again.UpdatedAt.After(updated.UpdatedAt))

	_, err = svc.DeleteEmployee(ctx, created.ID)
	require.NoError(t, err)
	got, err := svc.GetEmployee(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, got.UpdatedAt.After(again.UpdatedAt))
}

func TestUpdateEmployeeMergesProvidedFields(t *testing.T) {
	svc := newTestService(t, memory.NewStore())
	ctx := context.Background()

	req := validCreate()
	req.Salary = 50000
	created, err := svc.CreateEmployee(ctx, req)
	require.NoError(t, err)

	salary := 75000.0
	updated, err := svc.UpdateEmployee(ctx, created.ID, &dto.UpdateEmployeeRequest{Salary: &salary})
	require.NoError(t, err)

	assert.Equal(t, 75000.0, updated.Salary)
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt))

	// 其餘欄位不變
	expected := *created
	expected.Salary = updated.Salary
	expected.UpdatedAt = updated.UpdatedAt
	assert.Equal(t, &expected, updated)
}

func TestUpdateEmployeeExplicitZeroValues(t *testing.T) {
	svc := newTestService(t, memory.NewStore())
	ctx := context.Background()

	req := validCreate()
	req.Salary = 50000
	req.Phone = "555-0100"
	created, err := svc.CreateEmployee(ctx, req)
	require.NoError(t, err)

	zero := 0.0
	inactive := false
	updated, err := svc.UpdateEmployee(ctx, created.ID, &dto.UpdateEmployeeRequest{
		Salary:   &zero,
		Phone:    strPtr(""),
		IsActive: &inactive,
	})
	require.NoError(t, err)
	assert.Equal(t, 0.0, updated.Salary)
	assert.Empty(t, updated.Phone)
	assert.False(t, updated.IsActive)
	assert.Equal(t, created.Department, updated.Department)
}

func TestUpdateEmployeeErrors(t *testing.T) {
	svc := newTestService(t, memory.NewStore())
	ctx := context.Background()

	_, err := svc.UpdateEmployee(ctx, "missing", &dto.UpdateEmployeeRequest{Department: strPtr("Eng")})
	assertAppError(t, err, http.StatusNotFound, "Employee not found")

	created, err := svc.CreateEmployee(ctx, validCreate())
	require.NoError(t, err)

	_, err = svc.UpdateEmployee(ctx, created.ID, &dto.UpdateEmployeeRequest{Email: strPtr("")})
	assertAppError(t, err, http.StatusBadRequest, "Missing required field: email")

	_, err = svc.UpdateEmployee(ctx, created.ID, &dto.UpdateEmployeeRequest{HireDate: strPtr("yesterday")})
	assertAppError(t, err, http.StatusBadRequest, "Invalid field: hireDate")
}

func TestDeleteEmployeeIsSoft(t *testing.T) {
	svc := newTestService(t, memory.NewStore())
	ctx := context.Background()

	created, err := svc.CreateEmployee(ctx, validCreate())
	require.NoError(t, err)

	msg, err := svc.DeleteEmployee(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Employee deleted successfully", msg.Message)

	got, err := svc.GetEmployee(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, got.IsActive)
	require.NotNil(t, got.DeletedAt)
	assert.Equal(t, *got.DeletedAt, got.UpdatedAt)
	assert.Equal(t, created.CreatedAt, got.CreatedAt)

	_, err = svc.DeleteEmployee(ctx, "missing")
	assertAppError(t, err, http.StatusNotFound, "Employee not found")
}

func TestListEmployees(t *testing.T) {
	svc := newTestService(t, memory.NewStore())
	ctx := context.Background()

	empty, err := svc.ListEmployees(ctx, dto.ListEmployeesQuery{})
	require.NoError(t, err)
	assert.NotNil(t, empty.Employees)
	assert.Equal(t, 0, empty.Count)

	for _, r := range []*dto.CreateEmployeeRequest{
		{FirstName: "John", LastName: "Doe", Email: "john.doe@company.com", Department: "Engineering"},
		{FirstName: "Jane", LastName: "Smith", Email: "jane.smith@company.com", Department: "HR"},
		{FirstName: "Bob", LastName: "Johnson", Email: "bob.j@company.com", Department: "Engineering"},
	} {
		_, err := svc.CreateEmployee(ctx, r)
		require.NoError(t, err)
	}

	tests := []struct {
		name  string
		query dto.ListEmployeesQuery
		want  int
	}{
		{"all", dto.ListEmployeesQuery{}, 3},
		{"department", dto.ListEmployeesQuery{Department: "Engineering"}, 2},
		{"department is case sensitive", dto.ListEmployeesQuery{Department: "engineering"}, 0},
		{"search by email", dto.ListEmployeesQuery{Search: "JANE"}, 1},
		{"department wins over search", dto.ListEmployeesQuery{Department: "HR", Search: "john"}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.ListEmployees(ctx, tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Count)
			assert.Len(t, got.Employees, tt.want)
		})
	}
}

func TestDepartmentStats(t *testing.T) {
	s := memory.NewStore()
	ctx := context.Background()
	for i, e := range []*model.Employee{
		{Department: "Eng", IsActive: true},
		{Department: "Eng", IsActive: true},
		{Department: "HR", IsActive: false},
		{Department: "", IsActive: true},
	} {
		e.ID = fmt.Sprintf("e%d", i)
		_, err := s.InsertDocument(ctx, e)
		require.NoError(t, err)
	}
	svc := newTestService(t, s)

	stats, err := svc.DepartmentStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, []dto.DepartmentStat{
		{Name: "Eng", Count: 2},
		{Name: "Unknown", Count: 1},
	}, stats.Departments)
}

// failingStore 每個操作都回傳固定錯誤
type failingStore struct {
	err error
}

func (f failingStore) QueryDocuments(context.Context, store.QueryTemplate, store.Parameters) ([]*model.Employee, error) {
	return nil, f.err
}
func (f failingStore) ReadAllDocuments(context.Context) ([]*model.Employee, error) {
	return nil, f.err
}
func (f failingStore) InsertDocument(context.Context, *model.Employee) (*model.Employee, error) {
	return nil, f.err
}
func (f failingStore) ReplaceDocument(context.Context, string, *model.Employee) (*model.Employee, error) {
	return nil, f.err
}
func (f failingStore) Ping(context.Context) error { return f.err }

func TestStoreErrorsMapToServerErrors(t *testing.T) {
	ctx := context.Background()

	svc := newTestService(t, failingStore{err: errors.New("connection reset by peer")})
	_, err := svc.ListEmployees(ctx, dto.ListEmployeesQuery{})
	assertAppError(t, err, http.StatusInternalServerError, "connection reset by peer")
	_, err = svc.CreateEmployee(ctx, validCreate())
	assertAppError(t, err, http.StatusInternalServerError, "connection reset by peer")

	svc = newTestService(t, failingStore{err: fmt.Errorf("%w: endpoint unreachable", store.ErrNotConfigured)})
	_, err = svc.DepartmentStats(ctx)
	assertAppError(t, err, http.StatusInternalServerError, "No valid document store credentials found")
	var appErr *cErr.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, cErr.CONFIGURATION_ERROR, appErr.ErrorCode())
}

func TestInsertConflictMapsTo409(t *testing.T) {
	svc := newTestService(t, failingStore{err: fmt.Errorf("insert: %w", store.ErrConflict)})
	_, err := svc.CreateEmployee(context.Background(), validCreate())
	assertAppError(t, err, http.StatusConflict, "Employee already exists")
}
