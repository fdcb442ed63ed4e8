package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"employeehub/internal/core"
	"employeehub/internal/database/mongodb/model"
	"employeehub/internal/database/store"
	"employeehub/internal/dto"
	cErr "employeehub/internal/pkg/error"
	"employeehub/internal/pkg/request"
	"employeehub/internal/telemetry"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	msgEmployeeNotFound = "Employee not found"
	msgEmployeeDeleted  = "Employee deleted successfully"
	msgNoCredentials    = "No valid document store credentials found"
	msgEmployeeExists   = "Employee already exists"
	unknownDepartment   = "Unknown"
)

const (
	opGet    = "get"
	opCreate = "create"
	opUpdate = "update"
	opDelete = "delete"
)

// EmployeeService 員工 CRUD；所有驗證與預設值都在這一層，store 只負責存取
type EmployeeService struct {
	trace    *telemetry.Trace
	logger   *zap.Logger
	metric   *telemetry.Metric
	store    store.DocumentStore
	validate *validator.Validate
	now      func() time.Time
	newID    func() string
}

func NewEmployeeService(
	trace *telemetry.Trace,
	logger *zap.Logger,
	metric *telemetry.Metric,
	documentStore store.DocumentStore,
) *EmployeeService {
	v := validator.New()
	// 與 gin binding 共用同一組 tag
	v.SetTagName("binding")
	return &EmployeeService{
		trace:    trace,
		logger:   logger,
		metric:   metric,
		store:    documentStore,
		validate: v,
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

// WithClock 替換時間來源（測試用）
func (s *EmployeeService) WithClock(now func() time.Time) *EmployeeService {
	s.now = now
	return s
}

// Mongo 時間精度為毫秒，先截斷讓回傳值與儲存值一致
func (s *EmployeeService) timestamp() time.Time {
	return s.now().UTC().Truncate(time.Millisecond)
}

// touchedAt 回傳下一個 updatedAt，保證晚於 prev；同一毫秒內的修改往後推 1ms
func (s *EmployeeService) touchedAt(prev time.Time) time.Time {
	now := s.timestamp()
	if !now.After(prev) {
		now = prev.Add(time.Millisecond)
	}
	return now
}

// ListEmployees department 優先，其次 search，都沒有則回傳全部
func (s *EmployeeService) ListEmployees(ctx context.Context, query dto.ListEmployeesQuery) (_ *dto.EmployeeListResponse, returnedError error) {
	ctx, span, end := s.trace.WithSpan(ctx)
	defer func() { end(returnedError) }()

	meta := core.TraceEmployeeListMeta{Department: query.Department, Search: query.Search}
	var (
		employees []*model.Employee
		err       error
	)
	switch {
	case query.Department != "":
		meta.Query = string(store.QueryEmployeesByDepartment)
		employees, err = s.store.QueryDocuments(ctx, store.QueryEmployeesByDepartment, store.Parameters{store.ParamDepartment: query.Department})
	case query.Search != "":
		meta.Query = string(store.QueryEmployeesSearch)
		employees, err = s.store.QueryDocuments(ctx, store.QueryEmployeesSearch, store.Parameters{store.ParamSearch: query.Search})
	default:
		meta.Query = "read_all"
		employees, err = s.store.ReadAllDocuments(ctx)
	}
	if err != nil {
		msg := err.Error()
		meta.Error = &msg
		s.trace.ApplyTraceAttributes(span, meta)
		return nil, s.storeError("list", err)
	}

	meta.ResultCount = len(employees)
	s.trace.ApplyTraceAttributes(span, meta)

	resp := &dto.EmployeeListResponse{
		Employees: make([]*dto.EmployeeResponse, 0, len(employees)),
		Count:     len(employees),
	}
	for _, e := range employees {
		resp.Employees = append(resp.Employees, modelToEmployeeResponse(e))
	}
	return resp, nil
}

func (s *EmployeeService) GetEmployee(ctx context.Context, id string) (_ *dto.EmployeeResponse, returnedError error) {
	ctx, span, end := s.trace.WithSpan(ctx)
	defer func() { end(returnedError) }()
	s.trace.ApplyTraceAttributes(span, core.TraceEmployeeMeta{Op: opGet, EmployeeID: id})

	employee, err := s.findByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return modelToEmployeeResponse(employee), nil
}

func (s *EmployeeService) CreateEmployee(ctx context.Context, req *dto.CreateEmployeeRequest) (_ *dto.EmployeeResponse, returnedError error) {
	ctx, span, end := s.trace.WithSpan(ctx)
	defer func() { end(returnedError) }()

	if req == nil {
		req = &dto.CreateEmployeeRequest{}
	}
	if err := s.validate.Struct(req); err != nil {
		return nil, request.GetError(req, err)
	}

	now := s.timestamp()
	hireDate := req.HireDate
	if hireDate == "" {
		hireDate = now.Format(model.HireDateLayout)
	}
	employee := &model.Employee{
		ID:         s.newID(),
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Email:      req.Email,
		Department: req.Department,
		Position:   req.Position,
		Phone:      req.Phone,
		HireDate:   hireDate,
		Salary:     req.Salary,
		IsActive:   true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	s.trace.ApplyTraceAttributes(span, core.TraceEmployeeMeta{Op: opCreate, EmployeeID: employee.ID, Department: employee.Department})

	created, err := s.store.InsertDocument(ctx, employee)
	if err != nil {
		return nil, s.storeError(opCreate, err)
	}
	s.metric.IncEmployeeMutation(opCreate)
	return modelToEmployeeResponse(created), nil
}

// UpdateEmployee 逐欄合併後整份覆寫；id / createdAt / deletedAt 不會被請求改動
func (s *EmployeeService) UpdateEmployee(ctx context.Context, id string, req *dto.UpdateEmployeeRequest) (_ *dto.EmployeeResponse, returnedError error) {
	ctx, span, end := s.trace.WithSpan(ctx)
	defer func() { end(returnedError) }()
	s.trace.ApplyTraceAttributes(span, core.TraceEmployeeMeta{Op: opUpdate, EmployeeID: id})

	if req == nil {
		req = &dto.UpdateEmployeeRequest{}
	}
	if err := s.validate.Struct(req); err != nil {
		return nil, request.GetError(req, err)
	}

	existing, err := s.findByID(ctx, id)
	if err != nil {
		return nil, err
	}

	merged := mergeEmployee(existing, req)
	merged.UpdatedAt = s.touchedAt(existing.UpdatedAt)

	updated, err := s.store.ReplaceDocument(ctx, existing.ID, merged)
	if err != nil {
		return nil, s.storeError(opUpdate, err)
	}
	s.metric.IncEmployeeMutation(opUpdate)
	return modelToEmployeeResponse(updated), nil
}

// DeleteEmployee 軟刪除：文件保留，isActive=false 並記錄 deletedAt
func (s *EmployeeService) DeleteEmployee(ctx context.Context, id string) (_ *dto.MessageResponse, returnedError error) {
	ctx, span, end := s.trace.WithSpan(ctx)
	defer func() { end(returnedError) }()
	s.trace.ApplyTraceAttributes(span, core.TraceEmployeeMeta{Op: opDelete, EmployeeID: id})

	existing, err := s.findByID(ctx, id)
	if err != nil {
		return nil, err
	}

	now := s.touchedAt(existing.UpdatedAt)
	deleted := existing.Clone()
	deleted.IsActive = false
	deleted.DeletedAt = &now
	deleted.UpdatedAt = now

	if _, err := s.store.ReplaceDocument(ctx, existing.ID, deleted); err != nil {
		return nil, s.storeError(opDelete, err)
	}
	s.metric.IncEmployeeMutation(opDelete)
	return &dto.MessageResponse{Message: msgEmployeeDeleted}, nil
}

// DepartmentStats 只計算在職員工，依部門名稱排序
func (s *EmployeeService) DepartmentStats(ctx context.Context) (_ *dto.DepartmentStatsResponse, returnedError error) {
	ctx, _, end := s.trace.WithSpan(ctx)
	defer func() { end(returnedError) }()

	employees, err := s.store.QueryDocuments(ctx, store.QueryActiveDepartments, nil)
	if err != nil {
		return nil, s.storeError("departments", err)
	}

	counts := make(map[string]int)
	for _, e := range employees {
		name := e.Department
		if name == "" {
			name = unknownDepartment
		}
		counts[name]++
	}

	resp := &dto.DepartmentStatsResponse{Departments: make([]dto.DepartmentStat, 0, len(counts))}
	for name, count := range counts {
		resp.Departments = append(resp.Departments, dto.DepartmentStat{Name: name, Count: count})
	}
	sort.Slice(resp.Departments, func(i, j int) bool {
		return resp.Departments[i].Name < resp.Departments[j].Name
	})
	return resp, nil
}

// findByID 多筆時以第一筆為準
func (s *EmployeeService) findByID(ctx context.Context, id string) (*model.Employee, error) {
	employees, err := s.store.QueryDocuments(ctx, store.QueryEmployeeByID, store.Parameters{store.ParamID: id})
	if err != nil {
		return nil, s.storeError(opGet, err)
	}
	if len(employees) == 0 {
		return nil, cErr.NotFound(msgEmployeeNotFound)
	}
	if len(employees) > 1 {
		s.logger.Warn("duplicate employee id in store", zap.String("id", id), zap.Int("matches", len(employees)))
	}
	return employees[0], nil
}

func (s *EmployeeService) storeError(op string, err error) *cErr.Error {
	s.logger.Error("document store operation failed", zap.String("op", op), zap.Error(err))
	switch {
	case errors.Is(err, store.ErrNotConfigured):
		return cErr.ConfigurationError(msgNoCredentials)
	case errors.Is(err, store.ErrNotFound):
		// 查到後、覆寫前被移除
		return cErr.NotFound(msgEmployeeNotFound)
	case errors.Is(err, store.ErrConflict):
		return cErr.Conflict(msgEmployeeExists)
	default:
		return cErr.DatabaseError(err.Error())
	}
}

func mergeEmployee(existing *model.Employee, req *dto.UpdateEmployeeRequest) *model.Employee {
	merged := existing.Clone()
	if req.FirstName != nil {
		merged.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		merged.LastName = *req.LastName
	}
	if req.Email != nil {
		merged.Email = *req.Email
	}
	if req.Department != nil {
		merged.Department = *req.Department
	}
	if req.Position != nil {
		merged.Position = *req.Position
	}
	if req.Phone != nil {
		merged.Phone = *req.Phone
	}
	if req.HireDate != nil {
		merged.HireDate = *req.HireDate
	}
	if req.Salary != nil {
		merged.Salary = *req.Salary
	}
	if req.IsActive != nil {
		merged.IsActive = *req.IsActive
	}
	return merged
}

func modelToEmployeeResponse(e *model.Employee) *dto.EmployeeResponse {
	return &dto.EmployeeResponse{
		ID:         e.ID,
		FirstName:  e.FirstName,
		LastName:   e.LastName,
		Email:      e.Email,
		Department: e.Department,
		Position:   e.Position,
		Phone:      e.Phone,
		HireDate:   e.HireDate,
		Salary:     e.Salary,
		IsActive:   e.IsActive,
		CreatedAt:  e.CreatedAt,
		UpdatedAt:  e.UpdatedAt,
		DeletedAt:  e.DeletedAt,
	}
}
