package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"employeehub/config"
	"employeehub/internal/database/client"
	"employeehub/internal/database/fluentd/repository"
	cErr "employeehub/internal/pkg/error"
	"employeehub/internal/pkg/response"
	"employeehub/internal/telemetry"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newEngine(t *testing.T, register func(r *gin.Engine)) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	tr := &telemetry.Trace{}
	metric := &telemetry.Metric{}
	logRepository := repository.NewLogRepository(&config.Configuration{}, &client.NoopClient{})

	r := gin.New()
	r.Use(NewRecovery(zap.NewNop(), tr, metric, logRepository).ErrorHandler())
	r.Use(NewResponse(zap.NewNop(), tr, metric, logRepository).FormatHandler())
	register(r)
	return r
}

func errorBody(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body response.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), w.Body.String())
	return body.Error
}

func TestRecovery(t *testing.T) {
	r := newEngine(t, func(r *gin.Engine) {
		r.GET("/panic", func(c *gin.Context) { panic("boom") })
		r.GET("/app-error", func(c *gin.Context) {
			response.AbortWithError(c, cErr.NotFound("Employee not found"))
		})
		r.GET("/unknown-error", func(c *gin.Context) {
			response.AbortWithError(c, errors.New("driver: socket closed"))
		})
		r.GET("/db-error", func(c *gin.Context) {
			response.AbortWithError(c, cErr.DatabaseError("socket closed"))
		})
	})

	tests := []struct {
		path   string
		status int
		body   string
	}{
		{path: "/panic", status: http.StatusInternalServerError, body: "Internal server error"},
		{path: "/app-error", status: http.StatusNotFound, body: "Employee not found"},
		{path: "/unknown-error", status: http.StatusInternalServerError, body: "Internal server error"},
		{path: "/db-error", status: http.StatusInternalServerError, body: "socket closed"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.path, nil))
			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, tt.body, errorBody(t, w))
			assert.NotEmpty(t, w.Header().Get(response.HeaderRequestID))
		})
	}
}

func TestResponse_WritesHandlerData(t *testing.T) {
	r := newEngine(t, func(r *gin.Engine) {
		r.GET("/ok", func(c *gin.Context) { response.Success(c, gin.H{"count": 1}) })
		r.POST("/created", func(c *gin.Context) { response.Create(c, gin.H{"id": "x"}) })
		r.GET("/raw", func(c *gin.Context) { c.String(http.StatusTeapot, "short and stout") })
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ok", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"count":1}`, w.Body.String())

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/created", nil))
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"id":"x"}`, w.Body.String())

	// 已自行寫出的回應不再包裝
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/raw", nil))
	assert.Equal(t, http.StatusTeapot, w.Code)
	assert.Equal(t, "short and stout", w.Body.String())
}

func TestRateLimit_SkipsWithoutRedis(t *testing.T) {
	conf := &config.Configuration{}
	conf.RateLimit.Enabled = true
	conf.RateLimit.Limit = 1
	conf.RateLimit.WindowSeconds = 60

	tr := &telemetry.Trace{}
	rl := NewRateLimit(tr, zap.NewNop(), conf, &telemetry.Metric{}, nil)
	r := newEngine(t, func(r *gin.Engine) {
		r.GET("/employees", rl.Guard(), func(c *gin.Context) { response.Success(c, gin.H{}) })
	})

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/employees", nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, w.Header().Get("X-RateLimit-Limit"))
	}
}

func TestIsOperationalPath(t *testing.T) {
	assert.True(t, isOperationalPath("/metrics"))
	assert.True(t, isOperationalPath("/swagger/*any"))
	assert.True(t, isOperationalPath("/health/readiness"))
	assert.True(t, isOperationalPath("/debug/pprof/heap"))
	assert.False(t, isOperationalPath("/health"))
	assert.False(t, isOperationalPath("/employees/:id"))
	assert.False(t, isOperationalPath(""))
}

func TestToSafePreview(t *testing.T) {
	assert.Equal(t, "", toSafePreview(nil, 10))
	assert.Equal(t, "hello", toSafePreview([]byte("hello"), 10))
	assert.Equal(t, "hel…", toSafePreview([]byte("hello"), 3))
	assert.Equal(t, "b64:/w==", toSafePreview([]byte{0xff}, 10))
	assert.True(t, isBinaryContent("multipart/form-data"))
	assert.False(t, isBinaryContent("application/json"))
}
