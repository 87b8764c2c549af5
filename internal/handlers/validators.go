package handlers

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// phoneRegex accepts digits with an optional leading +, 7 to 15 digits total.
var phoneRegex = regexp.MustCompile(`^\+?[0-9]{7,15}$`)

// registerCustomValidators adds the binding rules the dto structs rely on to
// gin's validator engine. Safe to call once at startup.
func registerCustomValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("phonenum", func(fl validator.FieldLevel) bool {
			return phoneRegex.MatchString(fl.Field().String())
		})
	}
}
