package router

import (
	docs "employeehub/cmd/docs"
	"employeehub/config"
	"employeehub/internal/middleware"

	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"
	"github.com/google/wire"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

var ProviderSet = wire.NewSet(
	NewRouter,
	NewEmployeeRouter,
	NewHealthRouter,
)

// 透過依賴注入組裝 gin engine
func NewRouter(
	config *config.Configuration,
	traceEntry *middleware.TraceEntry,
	recovery *middleware.Recovery,
	cors *middleware.Cors,
	logger *middleware.Logger,
	responseMiddleware *middleware.Response,
	employeeRouter *EmployeeRouter,
	healthRouter *HealthRouter,
) *gin.Engine {

	switch config.App.Env {
	case "production":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}
	router := gin.New()
	// 全域版本標頭
	router.Use(func(c *gin.Context) {
		if v := config.App.Version; v != "" {
			c.Writer.Header().Set("X-App-Version", v)
		}
		c.Next()
	})
	router.Use(traceEntry.Handler())
	router.Use(logger.LoggerHandler())
	router.Use(cors.CorsHandler())
	router.Use(recovery.ErrorHandler())
	router.Use(responseMiddleware.FormatHandler())

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if config.App.SwaggerEnabled {
		router.GET("/swagger/*any", func(c *gin.Context) {
			docs.SwaggerInfo.Host = c.Request.Host
			if config.App.Env == "production" {
				docs.SwaggerInfo.Schemes = []string{"https"}
			}
		}, ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	healthRouter.RegisterHealthRoutes(router)
	employeeRouter.RegisterRoutes(router)
	if config.App.PprofEnabled {
		pprof.Register(router)
	}
	return router
}
