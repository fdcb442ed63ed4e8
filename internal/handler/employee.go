package handler

import (
	"employeehub/internal/dto"
	"employeehub/internal/pkg/response"
	"employeehub/internal/service"
	"employeehub/internal/telemetry"
	"employeehub/utils/validate"

	"github.com/gin-gonic/gin"
)

type EmployeeHandler struct {
	trace           *telemetry.Trace
	employeeService *service.EmployeeService
}

func NewEmployeeHandler(trace *telemetry.Trace, employeeService *service.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{trace: trace, employeeService: employeeService}
}

// List 員工列表
// @Summary 取得員工列表
// @Description department（完全相符）優先於 search（firstName / lastName / email 不分大小寫）
// @Tags Employee
// @Produce json
// @Param department query string false "部門"
// @Param search query string false "關鍵字"
// @Success 200 {object} dto.EmployeeListResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /employees [get]
func (h *EmployeeHandler) List(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)

	query := dto.ListEmployeesQuery{
		Department: c.Query("department"),
		Search:     c.Query("search"),
	}
	res, err := h.employeeService.ListEmployees(ctx, query)
	if err != nil {
		end(err)
		response.AbortWithError(c, err)
		return
	}
	response.Success(c, res)
}

// Get 取得員工
// @Summary 取得單一員工
// @Tags Employee
// @Produce json
// @Param id path string true "Employee ID"
// @Success 200 {object} dto.EmployeeResponse
// @Failure 404 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /employees/{id} [get]
func (h *EmployeeHandler) Get(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)

	id, err := validate.PathParam(c, "id")
	if err != nil {
		response.AbortWithError(c, err)
		return
	}
	res, err := h.employeeService.GetEmployee(ctx, id)
	if err != nil {
		end(err)
		response.AbortWithError(c, err)
		return
	}
	response.Success(c, res)
}

// Create 新增員工
// @Summary 新增員工
// @Tags Employee
// @Accept json
// @Produce json
// @Param body body dto.CreateEmployeeRequest true "員工資料"
// @Success 201 {object} dto.EmployeeResponse
// @Failure 400 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /employees [post]
func (h *EmployeeHandler) Create(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)

	var req dto.CreateEmployeeRequest
	if cause, respErr := validate.BindAndValidate(c, &req); cause != nil {
		end(cause)
		response.AbortWithError(c, respErr)
		return
	}
	res, err := h.employeeService.CreateEmployee(ctx, &req)
	if err != nil {
		end(err)
		response.AbortWithError(c, err)
		return
	}
	response.Create(c, res)
}

// Update 部分更新員工
// @Summary 更新員工（只覆寫有帶的欄位）
// @Tags Employee
// @Accept json
// @Produce json
// @Param id path string true "Employee ID"
// @Param body body dto.UpdateEmployeeRequest true "要更新的欄位"
// @Success 200 {object} dto.EmployeeResponse
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /employees/{id} [put]
func (h *EmployeeHandler) Update(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)

	id, err := validate.PathParam(c, "id")
	if err != nil {
		response.AbortWithError(c, err)
		return
	}
	var req dto.UpdateEmployeeRequest
	if cause, respErr := validate.BindAndValidate(c, &req); cause != nil {
		end(cause)
		response.AbortWithError(c, respErr)
		return
	}
	res, err := h.employeeService.UpdateEmployee(ctx, id, &req)
	if err != nil {
		end(err)
		response.AbortWithError(c, err)
		return
	}
	response.Success(c, res)
}

// Delete 軟刪除員工
// @Summary 軟刪除員工（isActive=false，文件保留）
// @Tags Employee
// @Produce json
// @Param id path string true "Employee ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /employees/{id} [delete]
func (h *EmployeeHandler) Delete(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)

	id, err := validate.PathParam(c, "id")
	if err != nil {
		response.AbortWithError(c, err)
		return
	}
	res, err := h.employeeService.DeleteEmployee(ctx, id)
	if err != nil {
		end(err)
		response.AbortWithError(c, err)
		return
	}
	response.Success(c, res)
}

// Departments 部門統計
// @Summary 在職員工依部門統計
// @Tags Employee
// @Produce json
// @Success 200 {object} dto.DepartmentStatsResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /departments [get]
func (h *EmployeeHandler) Departments(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)

	res, err := h.employeeService.DepartmentStats(ctx)
	if err != nil {
		end(err)
		response.AbortWithError(c, err)
		return
	}
	response.Success(c, res)
}
