package dto

import (
	"time"

	"employeehub/internal/pkg/request"
)

// 新增員工；欄位順序即驗證順序（firstName → lastName → email → department）
type CreateEmployeeRequest struct {
	FirstName  string  `json:"firstName" binding:"required"`
	LastName   string  `json:"lastName" binding:"required"`
	Email      string  `json:"email" binding:"required"`
	Department string  `json:"department" binding:"required"`
	Position   string  `json:"position,omitempty"`
	Phone      string  `json:"phone,omitempty"`
	HireDate   string  `json:"hireDate,omitempty" binding:"omitempty,datetime=2006-01-02"` // YYYY-MM-DD，預設建立當天
	Salary     float64 `json:"salary,omitempty"`
}

func (CreateEmployeeRequest) GetMessages() request.ValidatorMessages {
	return request.ValidatorMessages{
		"FirstName.required":  "Missing required field: firstName",
		"LastName.required":   "Missing required field: lastName",
		"Email.required":      "Missing required field: email",
		"Department.required": "Missing required field: department",
		"HireDate.datetime":   "Invalid field: hireDate",
	}
}

// 部分更新：nil = 保留原值，非 nil（含 0 / "" / false）= 覆寫
type UpdateEmployeeRequest struct {
	FirstName  *string  `json:"firstName,omitempty" binding:"omitnil,min=1"`
	LastName   *string  `json:"lastName,omitempty" binding:"omitnil,min=1"`
	Email      *string  `json:"email,omitempty" binding:"omitnil,min=1"`
	Department *string  `json:"department,omitempty" binding:"omitnil,min=1"`
	Position   *string  `json:"position,omitempty"`
	Phone      *string  `json:"phone,omitempty"`
	HireDate   *string  `json:"hireDate,omitempty" binding:"omitnil,datetime=2006-01-02"`
	Salary     *float64 `json:"salary,omitempty"`
	IsActive   *bool    `json:"isActive,omitempty"`
}

func (UpdateEmployeeRequest) GetMessages() request.ValidatorMessages {
	return request.ValidatorMessages{
		"FirstName.min":     "Missing required field: firstName",
		"LastName.min":      "Missing required field: lastName",
		"Email.min":         "Missing required field: email",
		"Department.min":    "Missing required field: department",
		"HireDate.datetime": "Invalid field: hireDate",
	}
}

// 列表查詢；Department 優先於 Search
type ListEmployeesQuery struct {
	Department string `form:"department"`
	Search     string `form:"search"`
}

type EmployeeResponse struct {
	ID         string     `json:"id"`
	FirstName  string     `json:"firstName"`
	LastName   string     `json:"lastName"`
	Email      string     `json:"email"`
	Department string     `json:"department"`
	Position   string     `json:"position"`
	Phone      string     `json:"phone"`
	HireDate   string     `json:"hireDate"`
	Salary     float64    `json:"salary"`
	IsActive   bool       `json:"isActive"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
	DeletedAt  *time.Time `json:"deletedAt,omitempty"`
}

type EmployeeListResponse struct {
	Employees []*EmployeeResponse `json:"employees"`
	Count     int                 `json:"count"`
}

type DepartmentStat struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type DepartmentStatsResponse struct {
	Departments []DepartmentStat `json:"departments"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}
