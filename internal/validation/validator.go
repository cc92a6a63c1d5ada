// Package validation 以 go-playground/validator 實作 echo.Validator。
package validation

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

// CustomValidator wraps go-playground/validator for Echo
// swagger:ignore
type CustomValidator struct {
	validator *validator.Validate
}

func New() *CustomValidator {
	return &CustomValidator{validator: validator.New()}
}

// Validate calls the underlying validator
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// FailedFields 回傳驗證失敗的欄位名稱與其 tag；err 不是 ValidationErrors 時 ok 為 false
func FailedFields(err error) (map[string]string, bool) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil, false
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.StructField()] = fe.Tag()
	}
	return fields, true
}
