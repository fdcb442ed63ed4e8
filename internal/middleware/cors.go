package middleware

import (
	"employeehub/internal/core"
	"employeehub/internal/telemetry"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type Cors struct {
	trace *telemetry.Trace
}

func NewCors(trace *telemetry.Trace) *Cors {
	return &Cors{trace: trace}
}

// CorsHandler 允許所有來源（靜態前端直接呼叫），跳過特定路徑的 tracing 但仍套用 CORS
func (m *Cors) CorsHandler() gin.HandlerFunc {
	cfg := cors.Config{
		AllowAllOrigins: true,
		AllowMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut,
			http.MethodDelete, http.MethodOptions,
		},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "X-Request-ID", "traceparent"},
		ExposeHeaders: []string{"X-Request-ID", "X-App-Version"},
	}
	corsHandler := cors.New(cfg)

	type corsMeta struct {
		AllowMethods []string `trace:"http.cors.allow_methods"`
		AllowHeaders []string `trace:"http.cors.allow_headers"`
		AllowAll     bool     `trace:"http.cors.allow_all_origins"`
	}

	return func(c *gin.Context) {
		if isOperationalPath(c.FullPath()) {
			corsHandler(c)
			return
		}

		_, span, end := m.trace.WithSpan(c.Request.Context(), string(core.SpanCorsMiddleware))
		m.trace.ApplyTraceAttributes(span, corsMeta{
			AllowMethods: cfg.AllowMethods,
			AllowHeaders: cfg.AllowHeaders,
			AllowAll:     cfg.AllowAllOrigins,
		})
		end(nil)

		// 實際的 CORS middleware（preflight 會在這裡直接回 204）
		corsHandler(c)
	}
}
