package response

import (
	cErr "employeehub/internal/pkg/error"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	HeaderRequestID = "X-Request-ID"

	contextRequestIDKey = "requestId"
	contextDataKey      = "data"
)

// ErrorResponse 所有錯誤回應的 body
type ErrorResponse struct {
	Error string `json:"error"`
}

// RequestID 取得本次請求的 id；第一次呼叫時建立（沿用上游的 X-Request-ID）並寫入回應標頭
func RequestID(c *gin.Context) string {
	if v, ok := c.Get(contextRequestIDKey); ok {
		if id, ok := v.(string); ok {
			return id
		}
	}
	id := c.GetHeader(HeaderRequestID)
	if id == "" || len(id) > 128 {
		if u, err := uuid.NewV7(); err == nil {
			id = u.String()
		} else {
			id = uuid.NewString()
		}
	}
	c.Set(contextRequestIDKey, id)
	c.Writer.Header().Set(HeaderRequestID, id)
	return id
}

// Data 取出 handler 設定的回應內容
func Data(c *gin.Context) (any, bool) {
	return c.Get(contextDataKey)
}

func Create(c *gin.Context, data any) {
	c.Status(http.StatusCreated)
	c.Set(contextDataKey, data)
	c.Abort()
}

func Success(c *gin.Context, data any) {
	c.Set(contextDataKey, data)
	c.Abort()
}

func AbortWithError(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

func Fail(c *gin.Context, requestID string, httpCode int, desc string) {
	if requestID != "" {
		c.Writer.Header().Set(HeaderRequestID, requestID)
	}
	c.JSON(httpCode, ErrorResponse{Error: desc})
	c.Abort()
}

func FailByErr(c *gin.Context, requestID string, err error) {
	v := cErr.From(err)
	Fail(c, requestID, v.HttpCode(), v.ErrorDesc())
}
