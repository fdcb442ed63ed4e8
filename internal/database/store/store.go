package store

import (
	"context"
	"errors"

	"employeehub/internal/database/mongodb/model"
)

// QueryTemplate 具名的參數化查詢，由各 driver 自行轉譯
type QueryTemplate string

const (
	// @id
	QueryEmployeeByID QueryTemplate = "employee_by_id"
	// @department，大小寫敏感
	QueryEmployeesByDepartment QueryTemplate = "employees_by_department"
	// @search，firstName / lastName / email 不分大小寫的子字串
	QueryEmployeesSearch QueryTemplate = "employees_search"
	// isActive = true，只投影 department
	QueryActiveDepartments QueryTemplate = "active_departments"
)

const (
	ParamID         = "id"
	ParamDepartment = "department"
	ParamSearch     = "search"
)

// Parameters 查詢參數（不含前綴 @）
type Parameters map[string]any

// String 取字串參數，不存在或型別不符回傳空字串
func (p Parameters) String(name string) string {
	if p == nil {
		return ""
	}
	v, _ := p[name].(string)
	return v
}

var (
	ErrNotFound      = errors.New("document not found")
	ErrConflict      = errors.New("document already exists")
	ErrNotConfigured = errors.New("no valid document store credentials found")
	ErrUnknownQuery  = errors.New("unknown query template")
)

// DocumentStore 員工文件的持久層，不含任何商業邏輯
type DocumentStore interface {
	QueryDocuments(ctx context.Context, query QueryTemplate, params Parameters) ([]*model.Employee, error)
	ReadAllDocuments(ctx context.Context) ([]*model.Employee, error)
	// 相同 id 已存在時回傳 ErrConflict
	InsertDocument(ctx context.Context, employee *model.Employee) (*model.Employee, error)
	// id 不存在時回傳 ErrNotFound
	ReplaceDocument(ctx context.Context, id string, employee *model.Employee) (*model.Employee, error)
	Ping(ctx context.Context) error
}
