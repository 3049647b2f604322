package middleware

import (
	"github.com/compras/backend/internal/domain/bolsa"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// SetupValidator registers custom validations with gin's binding engine.
func SetupValidator() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("tipo_bolsa", validTipoBolsa)
	}
}

// validTipoBolsa accepts only known pool type names.
func validTipoBolsa(fl validator.FieldLevel) bool {
	_, err := bolsa.ParseTipo(fl.Field().String())
	return err == nil
}
