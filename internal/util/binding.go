package util

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

func lowerFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToLower(r)) + s[size:]
}

// fieldName 去掉 dive 产生的下标，如 WeekDays[2] -> weekDays
func fieldName(fe validator.FieldError) string {
	name := fe.Field()
	if i := strings.IndexByte(name, '['); i >= 0 {
		name = name[:i]
	}
	return lowerFirst(name)
}

// BindError 把请求体解析/校验错误转换为带字段名的 400 响应
func BindError(c *gin.Context, err error) {
	var validationErrs validator.ValidationErrors
	var typeErr *json.UnmarshalTypeError
	var syntaxErr *json.SyntaxError

	switch {
	case errors.As(err, &validationErrs) && len(validationErrs) > 0:
		fe := validationErrs[0]
		field := fieldName(fe)
		FieldError(c, field, fmt.Sprintf("invalid %s: failed on '%s' rule", field, fe.Tag()))
	case errors.As(err, &typeErr):
		FieldError(c, typeErr.Field, fmt.Sprintf("invalid %s: expected %s", typeErr.Field, typeErr.Type))
	case errors.As(err, &syntaxErr):
		FieldError(c, "body", "malformed JSON body")
	default:
		FieldError(c, "body", err.Error())
	}
}
