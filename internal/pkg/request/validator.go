package request

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	cErr "employeehub/internal/pkg/error"

	"github.com/go-playground/validator/v10"
)

type Validator interface {
	GetMessages() ValidatorMessages
}

type ValidatorMessages map[string]string

var reg = regexp.MustCompile(`\[\d\]`)

// GetError 從請求和錯誤中獲取錯誤信息，只回傳第一個（fail-fast）
func GetError(request interface{}, err error) *cErr.Error {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		messages, isValidator := request.(Validator)

		var errorMessages []string
		for _, v := range validationErrors {
			if isValidator {
				field := v.Field() // 獲取字段名稱
				field = reg.ReplaceAllString(field, ".*")
				if message, exist := messages.GetMessages()[field+"."+v.Tag()]; exist {
					errorMessages = append(errorMessages, message)
					continue
				}
			}
			errorMessages = append(errorMessages, "Invalid field: "+jsonFieldName(request, v.StructField()))
		}
		if len(errorMessages) > 0 {
			return cErr.ValidateErr(errorMessages[0]) // Return the first error message
		}
	}

	return cErr.ValidateErr("Parameter error")
}

func jsonFieldName(obj interface{}, structField string) string {
	t := reflect.TypeOf(obj)
	if t == nil {
		return structField
	}
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return structField
	}
	if f, ok := t.FieldByName(structField); ok {
		tag := f.Tag.Get("json")
		if tag != "" && tag != "-" {
			return strings.Split(tag, ",")[0]
		}
	}
	return structField
}
