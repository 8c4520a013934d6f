// Package validate собирает валидатор запросов с дополнительными правилами,
// общими для HTTP-обработчиков.
package validate

import (
	"time"

	"github.com/go-playground/validator"
)

// New возвращает валидатор с зарегистрированным правилом datetime:
// значение поля должно разбираться time.Parse по формату из параметра тега,
// например `validate:"datetime=2006-01"`.
func New() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("datetime", func(fl validator.FieldLevel) bool {
		_, err := time.Parse(fl.Param(), fl.Field().String())
		return err == nil
	})
	return v
}
