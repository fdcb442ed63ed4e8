package router

import (
	"strings"

	"employeehub/config"
	"employeehub/internal/handler"
	"employeehub/internal/middleware"

	"github.com/gin-gonic/gin"
)

type EmployeeRouter struct {
	config              *config.Configuration
	employeeHandler     *handler.EmployeeHandler
	ratelimitMiddleware *middleware.RateLimit
}

func NewEmployeeRouter(
	config *config.Configuration,
	employeeHandler *handler.EmployeeHandler,
	ratelimitMiddleware *middleware.RateLimit,
) *EmployeeRouter {
	return &EmployeeRouter{
		config:              config,
		employeeHandler:     employeeHandler,
		ratelimitMiddleware: ratelimitMiddleware,
	}
}

// RegisterRoutes 掛在根路徑；有設定 BasePath 時另外掛一份（例如 /api/employees）
func (employeeRouter *EmployeeRouter) RegisterRoutes(engine *gin.Engine) {
	employeeRouter.register(engine.Group("/"))

	basePath := "/" + strings.Trim(employeeRouter.config.App.BasePath, "/")
	if basePath != "/" {
		employeeRouter.register(engine.Group(basePath))
	}
}

func (employeeRouter *EmployeeRouter) register(group *gin.RouterGroup) {
	group.Use(employeeRouter.ratelimitMiddleware.Guard())

	employees := group.Group("/employees")
	{
		employees.GET("", employeeRouter.employeeHandler.List)
		employees.POST("", employeeRouter.employeeHandler.Create)
		employees.GET("/:id", employeeRouter.employeeHandler.Get)
		employees.PUT("/:id", employeeRouter.employeeHandler.Update)
		employees.DELETE("/:id", employeeRouter.employeeHandler.Delete)
	}
	group.GET("/departments", employeeRouter.employeeHandler.Departments)
}
