package validate

import (
	"errors"

	cErr "employeehub/internal/pkg/error"
	"employeehub/internal/pkg/request"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

const invalidBody = "Invalid request body"

// BindAndValidate JSON 解析失敗 → Invalid request body；規則不符 → 第一個欄位錯誤
func BindAndValidate(c *gin.Context, req any) (cause error, responseErr error) {
	if err := c.ShouldBindJSON(req); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			return err, request.GetError(req, err)
		}
		return err, cErr.ValidateErr(invalidBody)
	}
	return nil, nil
}

// PathParam 取路徑參數，原值傳回不做修剪，只有空字串視為錯誤
func PathParam(c *gin.Context, key string) (string, error) {
	v := c.Param(key)
	if v == "" {
		return "", cErr.ValidatePathParamsErr("Missing path parameter: " + key)
	}
	return v, nil
}
