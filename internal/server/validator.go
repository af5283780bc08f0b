package server

import (
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator создает валидатор на базе go-playground/validator.
// Тег notblank отклоняет строки из одних пробелов.
func NewValidator() *CustomValidator {
	v := validator.New()
	_ = v.RegisterValidation("notblank", validators.NotBlank)
	return &CustomValidator{validator: v}
}

// Validate запускает проверку структуры по тегам.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
